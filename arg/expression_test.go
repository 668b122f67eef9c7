package arg

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// canonical is the result every variant of the dialect tests must produce.
var canonical = []Argument{
	{"one", "true"},
	{"two", "intval($id)"},
	{"three", "123"},
	{"four", "string"},
	{"five", "null"},
}

var positional = []Argument{
	{"0", "true"},
	{"1", "intval($id)"},
	{"2", "123"},
	{"3", "string"},
	{"4", "null"},
}

func TestExpression_Dialect_UnsetBeforeParse(t *testing.T) {
	e := New()

	if d, ok := e.Dialect(); ok {
		t.Errorf("Dialect() = %v, true before any Parse", d)
	}
}

func TestExpression_Parse_Empty(t *testing.T) {
	e := New()

	got, err := e.Parse(context.Background(), "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.Len() != 0 {
		t.Errorf("got %d arguments, want 0", got.Len())
	}

	if d, ok := e.Dialect(); !ok || d != DialectNone {
		t.Errorf("Dialect() = %v, %v; want none, true", d, ok)
	}
}

func TestExpression_Parse_Array(t *testing.T) {
	variants := []string{
		`[ "one" => true, "two" => intval($id), "three" => 123, "four" => "string", "five" => null ]`,
		`[ 'one' => true, 'two' => intval($id), 'three' => 123, 'four' => 'string', 'five' => null ]`,
		`[ "one" => true, "two" => intval($id), "three" => 123, "four" => 'string', "five" => null ]`,
		`[ 'one' => true, 'two' => intval($id), 'three' => 123, 'four' => "string", 'five' => null ]`,

		`["one"=>true,"two"=>intval($id),"three"=>123,"four"=>"string","five"=>null]`,
		`['one'=>true,'two'=>intval($id),'three'=>123,'four'=>'string','five'=>null]`,
		`["one"=>true,"two"=>intval($id),"three"=>123,"four"=>'string',"five"=>null]`,
		`['one'=>true,'two'=>intval($id),'three'=>123,'four'=>"string",'five'=>null]`,

		`[
			"one" => true,
			"two" => intval($id),
			"three" => 123,
			"four" => "string",
			"five" => null
		]`,
		`[
			'one' => true,
			'two' => intval($id),
			'three' => 123,
			'four' => 'string',
			'five' => null
		]`,
		`[
			"one" => true,
			"two" => intval($id),
			"three" => 123,
			"four" => 'string',
			"five" => null
		]`,
		`[
			'one' => true,
			'two' => intval($id),
			'three' => 123,
			'four' => "string",
			'five' => null
		]`,

		`["one"         => true,                "two" => intval($id),
			"three"         =>  123,
			"four"      =>      "string",
			"five"      =>      null
		]`,
		`['one'         => true,               'two' => intval($id),
			'three'         => 123,
			'four'      => 'string',
			'five'      => null
		]`,
		`[
			"one"   =>  true,
			"two"       =>  intval($id),"three"    => 123,
			"four" => 'string',                "five" => null]`,
		`[  'one' => true,   'two'    =>  intval($id),
			'three' =>     123,'four'   => "string",
			'five'    => null]`,

		// Colons are accepted in place of "=>".
		`[ "one": true, "two": intval($id), "three": 123, "four": "string", "five": null ]`,
	}

	for _, expr := range variants {
		t.Run(expr, func(t *testing.T) {
			assertParse(t, New(), expr, DialectArray, canonical)
		})
	}
}

func TestExpression_Parse_JSON(t *testing.T) {
	variants := []string{
		`{ "one" : true, "two" : intval($id), "three" : 123, "four" : "string", "five" : null }`,
		`{ 'one' : true, 'two' : intval($id), 'three' : 123, 'four' : 'string', 'five' : null }`,
		`{ "one" : true, "two" : intval($id), "three" : 123, "four" : 'string', "five" : null }`,
		`{ 'one' : true, 'two' : intval($id), 'three' : 123, 'four' : "string", 'five' : null }`,

		`{"one":true,"two":intval($id),"three":123,"four":"string","five":null}`,
		`{'one':true,'two':intval($id),'three':123,'four':'string','five':null}`,
		`{"one":true,"two":intval($id),"three":123,"four":'string',"five":null}`,
		`{'one':true,'two':intval($id),'three':123,'four':"string",'five':null}`,

		`{
			"one" : true,
			"two" : intval($id),
			"three" : 123,
			"four" : "string",
			"five" : null
		}`,
		`{
			'one' : true,
			'two' : intval($id),
			'three' : 123,
			'four' : 'string',
			'five' : null
		}`,
		`{
			"one" : true,
			"two" : intval($id),
			"three" : 123,
			"four" : 'string',
			"five" : null
		}`,
		`{
			'one' : true,
			'two' : intval($id),
			'three' : 123,
			'four' : "string",
			'five' : null
		}`,

		`{
				'one'   :   true,
			'two' :         intval($id),          'three' : 123,
			'four'  :    "string",
			'five'          :   null }`,
	}

	for _, expr := range variants {
		t.Run(expr, func(t *testing.T) {
			assertParse(t, New(), expr, DialectJSON, canonical)
		})
	}
}

func TestExpression_Parse_Inline(t *testing.T) {
	variants := []string{
		`true, intval($id), 123, "string", null`,
		`true, intval($id), 123, 'string', null`,
		`
			true,
			intval($id),
			123,
			"string",
			null
		`,
	}

	for _, expr := range variants {
		t.Run(expr, func(t *testing.T) {
			assertParse(t, New(), expr, DialectInline, positional)
		})
	}
}

func TestExpression_Parse_InlineNamed(t *testing.T) {
	e := New().SetDefaultArgs("one", "two", "three", "four", "five")

	assertParse(t, e, `true, intval($id), 123, "string", null`, DialectInline, canonical)
}

func TestExpression_Parse_InvalidSyntax(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		dialect Dialect
	}{
		{
			name: "array with stray parentheses",
			expr: `[
				"one" => true,()
				"two" => intval($id),
			]`,
			dialect: DialectArray,
		},
		{
			name: "json with stray parentheses",
			expr: `{
				"one" : true,()
				"two" : intval($id),
			}`,
			dialect: DialectJSON,
		},
		{"empty array", `[]`, DialectArray},
		{"empty object", `{ }`, DialectJSON},
		{"bare key", `{ one: 1 }`, DialectJSON},
		{"missing colon", `{ "one" 1 }`, DialectJSON},
		{"arrow in json", `{ "one" => 1 }`, DialectJSON},
		{"trailing comma after quoted value", `[ "one" => "a", ]`, DialectArray},
		{"text after close", `{ "one": "a" } tail`, DialectJSON},
		{"unterminated", `[ "one" => true`, DialectArray},
		{"unterminated string", `{ "one": "a }`, DialectJSON},
		{"invalid escape", `{ "one": "\q" }`, DialectJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			e.AddArgument("kept", "yes")

			got, err := e.Parse(context.Background(), tt.expr)
			if !errors.Is(err, ErrInvalidSyntax) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalidSyntax", tt.expr, err)
			}

			if got.Len() != 0 {
				t.Errorf("failed Parse returned %v", got.Pairs())
			}

			if d, ok := e.Dialect(); !ok || d != tt.dialect {
				t.Errorf("Dialect() = %v, %v; want %v, true", d, ok, tt.dialect)
			}

			want := []Argument{{"kept", "yes"}}
			if diff := cmp.Diff(want, e.Arguments().Pairs()); diff != "" {
				t.Errorf("store changed by failed Parse (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpression_AppendArguments(t *testing.T) {
	e := New().SetDefaultArgs("class", "style", "id")
	e.AddArgument("class", "btn")
	e.SetAppendArgs("class", "style")

	if _, err := e.Parse(context.Background(), `"btn-success", "color", "meu-id"`); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	e.AddArgument("class", "disabled")
	e.AddArgument("id", "meu-id-sobrescrito")

	if d, _ := e.Dialect(); d != DialectInline {
		t.Errorf("Dialect() = %v, want inline", d)
	}

	want := []Argument{
		{"class", "btn btn-success disabled"},
		{"style", "color"},
		{"id", "meu-id-sobrescrito"},
	}

	if diff := cmp.Diff(want, e.Arguments().Pairs()); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestExpression_AppendAcrossParses(t *testing.T) {
	ctx := context.Background()
	e := New().SetAppendArgs("class")

	for _, expr := range []string{
		`{ "class": "a" }`,
		`[ 'class' => b ]`,
		`{ "class": "\"c\"" }`,
	} {
		if _, err := e.Parse(ctx, expr); err != nil {
			t.Fatalf("Parse(%q): %v", expr, err)
		}
	}

	if got, _ := e.Argument("class"); got != "a b c" {
		t.Errorf("class = %q, want %q", got, "a b c")
	}
}

func TestExpression_OverrideArgument(t *testing.T) {
	e := New().SetAppendArgs("class")
	e.AddArgument("class", "a")
	e.AddArgument("class", "b")

	got := e.OverrideArgument("class", " 'c' ")
	if diff := cmp.Diff(Argument{"class", "c"}, got); diff != "" {
		t.Errorf("OverrideArgument (-want +got):\n%s", diff)
	}

	if v, _ := e.Argument("class"); v != "c" {
		t.Errorf("class = %q, want c", v)
	}
}

func TestExpression_Accessors(t *testing.T) {
	e := New()
	e.AddArgument("id", 42)

	if !e.HasArgument("id") || e.HasArgument("missing") {
		t.Error("HasArgument reports wrong membership")
	}

	if v, ok := e.Argument("id"); !ok || v != "42" {
		t.Errorf("Argument(id) = %q, %v", v, ok)
	}

	if _, ok := e.Argument("missing"); ok {
		t.Error("Argument(missing) reports present")
	}

	snapshot := e.Arguments()
	snapshot.Set("id", "changed")

	if v, _ := e.Argument("id"); v != "42" {
		t.Errorf("snapshot shares storage: id = %q", v)
	}
}

func TestExpression_Dialect_FollowsLastParse(t *testing.T) {
	ctx := context.Background()
	e := New()

	steps := []struct {
		expr string
		want Dialect
	}{
		{`{"a":1}`, DialectJSON},
		{`x`, DialectInline},
		{``, DialectNone},
		{`  [ "b" => 2 ]`, DialectArray},
		{"\n\t{ broken", DialectJSON},
	}

	for _, s := range steps {
		_, _ = e.Parse(ctx, s.expr)

		if d, ok := e.Dialect(); !ok || d != s.want {
			t.Errorf("after Parse(%q): Dialect() = %v, %v; want %v", s.expr, d, ok, s.want)
		}
	}
}

func TestExpression_Parse_ReturnsWholeStore(t *testing.T) {
	ctx := context.Background()
	e := New()
	e.AddArgument("pre", "1")

	got, err := e.Parse(ctx, `{ "post": 2 }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Argument{{"pre", "1"}, {"post", "2"}}
	if diff := cmp.Diff(want, got.Pairs()); diff != "" {
		t.Errorf("Parse result (-want +got):\n%s", diff)
	}

	got, err = e.Parse(ctx, "")
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}

	if diff := cmp.Diff(want, got.Pairs()); diff != "" {
		t.Errorf("Parse empty result (-want +got):\n%s", diff)
	}
}

func assertParse(t *testing.T, e *Expression, expr string, dialect Dialect, want []Argument) {
	t.Helper()

	got, err := e.Parse(context.Background(), expr)
	if err != nil {
		t.Fatalf("Parse(%q): %v", expr, err)
	}

	if d, ok := e.Dialect(); !ok || d != dialect {
		t.Errorf("Dialect() = %v, %v; want %v, true", d, ok, dialect)
	}

	if diff := cmp.Diff(want, got.Pairs()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", expr, diff)
	}
}

func TestExpression_Parse_InlineTrailingSpaceAfterCall(t *testing.T) {
	// Only a part whose last byte is ')' closes a call.
	assertParse(t, New(), "foo(a) , b", DialectInline,
		[]Argument{{"0", "foo(a), b"}})

	assertParse(t, New().SetDefaultArgs("x", "y"), "foo(a), b", DialectInline,
		[]Argument{{"x", "foo(a)"}, {"y", "b"}})
}
