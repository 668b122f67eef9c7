package repl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
)

// action is a side effect of a command that only the terminal model can
// perform.
type action int

const (
	actionNone action = iota
	actionQuit
	actionClear
	actionEdit
)

// command describes one control command.
type command struct {
	name    string
	alias   string
	operand string
	help    string
}

// commands are the available control-mode commands, in help order.
var commands = []command{
	{"help", "h", "", "Print this cruft"},
	{"list", "l", "", "List all arguments in the output format"},
	{"get", "g", "NAME", "Print the value of one argument"},
	{"default", "d", "[N,...]", "Show or replace the positional names"},
	{"append", "a", "[N,...]", "Show or replace the append names"},
	{"format", "f", "[FMT]", "Show or set the output format"},
	{"reset", "r", "", "Discard all arguments"},
	{"edit", "e", "", "Edit arguments in external $EDITOR"},
	{"clear", "c", "", "Clear screen"},
	{"quit", "q", "", "Exit REPL"},
}

// commandNames returns the full name of every command.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// lookupCommand resolves a command name or alias. "exit" is accepted for
// quit.
func lookupCommand(name string) (command, bool) {
	if name == "exit" {
		name = "quit"
	}

	i := slices.IndexFunc(commands, func(c command) bool {
		return c.name == name || c.alias == name
	})
	if i < 0 {
		return command{}, false
	}

	return commands[i], true
}

// session is the state shared by every line of one REPL: a long-lived
// expression and the format used to print arguments.
type session struct {
	expr   *arg.Expression
	logger log.Logger
	format arg.Format
	indent int
}

func newSession(expr *arg.Expression, logger log.Logger, opts ...Option) *session {
	s := &session{
		expr:   expr,
		logger: logger,
		format: arg.FormatJSON,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// eval parses line into the session expression and renders all arguments.
// A failed parse leaves the arguments from earlier lines intact.
func (s *session) eval(ctx context.Context, line string) (string, error) {
	args, err := s.expr.Parse(ctx, line)
	if err != nil {
		return "", err
	}

	dialect, _ := s.expr.Dialect()
	s.logger.TraceContext(ctx, "repl eval result",
		slog.String("dialect", dialect.String()),
		slog.Int("argument_count", args.Len()),
	)

	return s.render(ctx, args)
}

// exec runs one control command. Commands that need the terminal are
// reported through the returned action.
func (s *session) exec(ctx context.Context, line string) (string, action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", actionNone, nil
	}

	cmd, ok := lookupCommand(fields[0])
	if !ok {
		return "", actionNone, fmt.Errorf("%w: %q (try 'help')", ErrUnknownCommand, fields[0])
	}

	operand := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	s.logger.TraceContext(ctx, "repl exec command",
		slog.String("command", cmd.name),
		slog.String("operand", operand),
	)

	switch cmd.name {
	case "quit":
		return "", actionQuit, nil

	case "clear":
		return "", actionClear, nil

	case "edit":
		return "", actionEdit, nil

	case "help":
		return helpMessage(), actionNone, nil

	case "list":
		out, err := s.render(ctx, s.expr.Arguments())

		return out, actionNone, err

	case "get":
		if operand == "" {
			return "", actionNone, fmt.Errorf("%w: get NAME", ErrMissingOperand)
		}

		value, ok := s.expr.Argument(operand)
		if !ok {
			return "", actionNone, fmt.Errorf("%w: %q", ErrArgumentNotFound, operand)
		}

		return value, actionNone, nil

	case "default":
		if operand != "" {
			s.expr.SetDefaultArgs(splitNames(operand)...)
		}

		return strings.Join(s.expr.Config().Defaults(), ","), actionNone, nil

	case "append":
		if operand != "" {
			s.expr.SetAppendArgs(splitNames(operand)...)
		}

		return strings.Join(s.expr.Config().AppendNames(), ","), actionNone, nil

	case "format":
		if operand != "" {
			f, err := arg.ParseFormat(operand)
			if err != nil {
				return "", actionNone, err
			}

			s.format = f
		}

		return s.format.String(), actionNone, nil

	case "reset":
		s.reset(s.expr.Config())

		return "arguments cleared", actionNone, nil
	}

	return "", actionNone, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.name)
}

// reset replaces the session expression with an empty one using cfg.
func (s *session) reset(cfg arg.Config) {
	s.expr = arg.New(arg.WithConfig(cfg), arg.WithLogger(s.logger))
}

// render writes args in the session format without a trailing newline.
func (s *session) render(ctx context.Context, args arg.Arguments) (string, error) {
	var b strings.Builder

	if err := arg.Write(ctx, &b, args, s.format, s.indent); err != nil {
		return "", err
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// splitNames splits a comma- or space-separated list of names.
func splitNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
