package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
)

func testSession(opts ...Option) *session {
	expr := arg.New().SetDefaultArgs("tag", "class").SetAppendArgs("class")

	return newSession(expr, log.Logger{}, opts...)
}

func TestSessionEval(t *testing.T) {
	ctx := context.Background()
	s := testSession(WithFormat(arg.FormatText))

	out, err := s.eval(ctx, "div, btn")
	if err != nil {
		t.Fatal(err)
	}

	if want := "tag=div\nclass=btn"; out != want {
		t.Errorf("eval() = %q, want %q", out, want)
	}

	// Later lines accumulate into the same expression.
	out, err = s.eval(ctx, "['class' => 'active']")
	if err != nil {
		t.Fatal(err)
	}

	if want := "tag=div\nclass=btn active"; out != want {
		t.Errorf("eval() = %q, want %q", out, want)
	}

	// A failed line keeps earlier arguments.
	if _, err := s.eval(ctx, "{bad}"); !errors.Is(err, arg.ErrInvalidSyntax) {
		t.Errorf("eval() error = %v, want ErrInvalidSyntax", err)
	}

	if got, _ := s.expr.Argument("class"); got != "btn active" {
		t.Errorf("class = %q after failed line", got)
	}
}

func TestSessionExec(t *testing.T) {
	ctx := context.Background()
	s := testSession()

	if _, err := s.eval(ctx, "div, btn"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line    string
		want    string
		act     action
		wantErr error
	}{
		{line: "get tag", want: "div"},
		{line: "g class", want: "btn"},
		{line: "get", wantErr: ErrMissingOperand},
		{line: "get nope", wantErr: ErrArgumentNotFound},
		{line: "list", want: `{"tag":"div","class":"btn"}`},
		{line: "format yaml", want: "yaml"},
		{line: "list", want: "tag: div\nclass: btn"},
		{line: "format xml", wantErr: arg.ErrInvalidFormat},
		{line: "format", want: "yaml"},
		{line: "default", want: "tag,class"},
		{line: "default id, name", want: "id,name"},
		{line: "append", want: "class"},
		{line: "append style,class", want: "class,style"},
		{line: "edit", act: actionEdit},
		{line: "clear", act: actionClear},
		{line: "exit", act: actionQuit},
		{line: "q", act: actionQuit},
		{line: "", act: actionNone},
		{line: "bogus", wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		out, act, err := s.exec(ctx, tt.line)

		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("exec(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}

			continue
		}

		if err != nil {
			t.Errorf("exec(%q) error = %v", tt.line, err)

			continue
		}

		if out != tt.want || act != tt.act {
			t.Errorf("exec(%q) = (%q, %v), want (%q, %v)", tt.line, out, act, tt.want, tt.act)
		}
	}
}

func TestSessionReset(t *testing.T) {
	ctx := context.Background()
	s := testSession()

	if _, err := s.eval(ctx, "div"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.exec(ctx, "reset"); err != nil {
		t.Fatal(err)
	}

	if n := s.expr.Arguments().Len(); n != 0 {
		t.Errorf("%d arguments after reset, want 0", n)
	}

	// The naming policy survives a reset.
	if diff := cmp.Diff([]string{"tag", "class"}, s.expr.Config().Defaults()); diff != "" {
		t.Errorf("defaults after reset (-want +got):\n%s", diff)
	}
}

func TestHelpMessageListsCommands(t *testing.T) {
	help := helpMessage()

	for _, name := range commandNames() {
		if !strings.Contains(help, "  "+name) {
			t.Errorf("help is missing %q", name)
		}
	}
}
