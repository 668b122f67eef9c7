package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/strargs/arg"
)

// initCLI is a reduced flag set resembling the global flags.
type initCLI struct {
	Default []string `name:"default" sep:","`
	Append  []string `name:"append"  sep:","`
	Source  []string `name:"source"`
	Level   string   `name:"log-level" default:"info"`
	Caller  bool     `name:"log-caller"`
	Hidden  string   `name:"secret" hidden:""`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--default=tag,class", "--append=class", "--log-caller")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			// The generated file must parse back with the array dialect.
			expr := arg.New()

			got, err := expr.Parse(context.Background(), string(content))
			if err != nil {
				t.Fatalf("generated config does not parse: %v\n%s", err, content)
			}

			if d, _ := expr.Dialect(); d != arg.DialectArray {
				t.Errorf("generated config dialect = %v, want array", d)
			}

			want := []arg.Argument{
				{Name: "default", Value: "tag,class"},
				{Name: "append", Value: "class"},
				{Name: "log-level", Value: "info"},
				{Name: "log-caller", Value: "true"},
			}

			if diff := cmp.Diff(want, got.Pairs()); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInitBuildArgumentsSkipsUnset(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "unused")

	got := (&Init{}).buildArguments(ctx)

	// Empty slices and strings are omitted; the false bool is kept.
	want := []arg.Argument{
		{Name: "log-level", Value: "info"},
		{Name: "log-caller", Value: "false"},
	}

	if diff := cmp.Diff(want, got.Pairs()); diff != "" {
		t.Errorf("buildArguments() mismatch (-want +got):\n%s", diff)
	}
}
