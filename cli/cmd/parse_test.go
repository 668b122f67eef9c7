package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/strargs/arg"
)

// run executes fn with a context whose output is captured and returns what
// was written.
func run(
	t *testing.T,
	cfg arg.Config,
	stdin string,
	fn func(context.Context) error,
) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	ctx := WithConfig(context.Background(), cfg)
	ctx = WithOutput(ctx, &buf)
	ctx = WithInput(ctx, strings.NewReader(stdin))

	err := fn(ctx)

	return buf.String(), err
}

func TestParseRun(t *testing.T) {
	t.Parallel()

	cfg := arg.MakeConfig([]string{"tag", "class"}, nil)

	tests := []struct {
		name  string
		cmd   Parse
		stdin string
		want  string
	}{
		{
			name: "json_compact",
			cmd:  Parse{Format: "json", Expr: []string{"div, btn"}},
			want: `{"tag":"div","class":"btn"}` + "\n",
		},
		{
			name: "json_indent",
			cmd:  Parse{Format: "json", Indent: 2, Expr: []string{`{"a": 1}`}},
			want: "{\n  \"a\": \"1\"\n}\n",
		},
		{
			name:  "text_from_stdin",
			cmd:   Parse{Format: "text"},
			stdin: "['id' => 7,\n 'ok' => true]\n",
			want:  "id=7\nok=true\n",
		},
		{
			name: "inline",
			cmd:  Parse{Format: "inline", Expr: []string{"['x' => 'one', 'y' => 'two']"}},
			want: "one, two\n",
		},
		{
			name: "array",
			cmd:  Parse{Format: "array", Expr: []string{"a"}},
			want: `[ "tag" => "a" ]` + "\n",
		},
		{
			name: "empty",
			cmd:  Parse{Format: "json", Expr: []string{""}},
			want: "{}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, cfg, tt.stdin, tt.cmd.Run)
			if err != nil {
				t.Fatalf("Parse.Run() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Parse.Run() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRunErrors(t *testing.T) {
	t.Parallel()

	_, err := run(t, arg.Config{}, "", (&Parse{Format: "xml", Expr: []string{"a"}}).Run)
	if !errors.Is(err, arg.ErrInvalidFormat) {
		t.Errorf("error = %v, want arg.ErrInvalidFormat", err)
	}

	_, err = run(t, arg.Config{}, "", (&Parse{Format: "json", Expr: []string{"[1,]"}}).Run)
	if !errors.Is(err, arg.ErrInvalidSyntax) {
		t.Errorf("error = %v, want arg.ErrInvalidSyntax", err)
	}
}

func TestDialectRun(t *testing.T) {
	t.Parallel()

	cmd := Dialect{Expr: []string{"a, b", " [1]", "{\"a\":1}", ""}}

	got, err := run(t, arg.Config{}, "", cmd.Run)
	if err != nil {
		t.Fatalf("Dialect.Run() error = %v", err)
	}

	if want := "inline\narray\njson\nnone\n"; got != want {
		t.Errorf("Dialect.Run() output = %q, want %q", got, want)
	}
}

func TestGetRun(t *testing.T) {
	t.Parallel()

	cfg := arg.MakeConfig([]string{"tag", "class", "style"}, nil)

	got, err := run(t, cfg, "", (&Get{Name: "class", Expr: []string{"div, btn"}}).Run)
	if err != nil {
		t.Fatalf("Get.Run() error = %v", err)
	}

	if got != "btn\n" {
		t.Errorf("Get.Run() output = %q, want %q", got, "btn\n")
	}

	_, err = run(t, cfg, "", (&Get{Name: "cls", Expr: []string{"div, btn"}}).Run)
	if !errors.Is(err, ErrArgumentNotFound) {
		t.Fatalf("error = %v, want ErrArgumentNotFound", err)
	}

	if !strings.Contains(err.Error(), `did you mean "class"`) {
		t.Errorf("error = %q, want a suggestion for \"class\"", err)
	}

	_, err = run(t, cfg, "", (&Get{Name: "zzz", Expr: []string{"div"}}).Run)
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want a miss without suggestions", err)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	names := []string{"class", "style", "id", "classic", "subclass", "title"}

	got := suggest("cls", names)
	if len(got) == 0 || len(got) > maxSuggestions {
		t.Fatalf("suggest() = %v, want 1..%d names", got, maxSuggestions)
	}

	if got[0] != "class" {
		t.Errorf("suggest()[0] = %q, want %q", got[0], "class")
	}

	if got := suggest("q", names); len(got) != 0 {
		t.Errorf("suggest(%q) = %v, want none", "q", got)
	}
}
