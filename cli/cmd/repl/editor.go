package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
)

const defaultEditor = "vi"

// editIndent is the indent width of the array expression opened in the
// editor.
const editIndent = 2

// editCommand implements [tea.ExecCommand] for the edit-parse-retry loop.
// It writes the current arguments as an array expression to a temp file,
// opens the user's editor, and parses the result into a fresh expression
// with the same naming policy. On parse error the user is prompted to
// re-edit; declining exits the program.
type editCommand struct {
	args    arg.Arguments
	config  arg.Config
	ctxFunc func() context.Context
	newExpr *arg.Expression
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. If the user declines to re-edit,
// it returns [ErrEditDeclined]. An emptied file cancels the edit and leaves
// newExpr nil.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := arg.Write(ctx, &buf, c.args, arg.FormatArray, editIndent); err != nil {
		return fmt.Errorf("format arguments: %w", err)
	}

	content := buf.String()

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "strargs-repl-*.txt")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		expr, parseErr := c.parse(ctx, string(data))
		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.newExpr = expr

			return nil
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}

		// Keep the failed content for the next editor iteration.
		content = string(data)
	}
}

// parse returns a new expression holding the arguments of text.
func (c *editCommand) parse(ctx context.Context, text string) (*arg.Expression, error) {
	expr := arg.New(arg.WithConfig(c.config), arg.WithLogger(c.logger))

	if _, err := expr.Parse(ctx, text); err != nil {
		return nil, err
	}

	return expr, nil
}

// confirm reads one line from r and reports whether it is not a "no".
// End of input declines.
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	response := strings.ToLower(strings.TrimSpace(scanner.Text()))

	return response != "n" && response != "no"
}

// runEditor launches the user's editor on the given file path and returns
// the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) ([]byte, error) {
	// EDITOR may carry arguments, such as "code --wait".
	fields := strings.Fields(os.Getenv("EDITOR"))
	if len(fields) == 0 {
		fields = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
