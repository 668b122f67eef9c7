// Package repl implements an interactive session that accumulates arguments
// from successive expressions.
package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
)

// Messages delivered when the external editor returns.
type (
	editDoneMsg      struct{ expr *arg.Expression }
	editCancelledMsg struct{} // file was emptied
	editDeclinedMsg  struct{} // user refused to fix a parse error
	editErrorMsg     struct{ err error }
)

// Option configures a REPL session.
type Option func(*session)

// WithFormat sets the format used to print arguments.
func WithFormat(f arg.Format) Option {
	return func(s *session) { s.format = f }
}

// WithIndent sets the indent width used to print arguments.
func WithIndent(n int) Option {
	return func(s *session) { s.indent = n }
}

const (
	defaultWidth = 80
	inputLimit   = 4096
)

// draft is unsubmitted input text and its cursor.
type draft struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx      func() context.Context
	session  *session
	history  *History
	peek     *peekState
	logger   log.Logger
	input    textinput.Model
	tab      tabState
	drafts   [2]draft // indexed by inputMode
	pos      int      // history position, history.Len() when not browsing
	width    int
	mode     inputMode
	quitting bool
}

// Run starts the REPL on expr, which keeps every argument parsed during the
// session. History is stored in cacheDir, or kept in memory if cacheDir is
// empty.
func Run(
	ctx context.Context,
	expr *arg.Expression,
	cacheDir string,
	logger log.Logger,
	opts ...Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var path string
	if cacheDir != "" {
		path = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("history", path),
		slog.Int("history_count", history.Len()),
		slog.Int("argument_count", expr.Arguments().Len()),
	)

	m := newModel(ctx, newSession(expr, logger, opts...), history, logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

func newModel(
	ctx context.Context,
	sess *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = modeEval.prompt()
	ti.CharLimit = inputLimit
	ti.Width = defaultWidth
	ti.Focus()

	return model{
		ctx:     func() context.Context { return ctx },
		session: sess,
		history: history,
		logger:  logger,
		input:   ti,
		tab:     tabState{sel: -1},
		pos:     history.Len(),
		width:   defaultWidth,
		mode:    modeEval,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		m.session.expr = msg.expr
		m.logger.TraceContext(m.ctx(), "repl edit complete",
			slog.Int("argument_count", msg.expr.Arguments().Len()))

		return m, tea.Println(resultStyle.Render("✔ arguments updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("✘ edit cancelled"))

	case editDeclinedMsg:
		return m.quit()

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("✘ error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hint() + "\n"
}

// hint returns the line shown below the input: the history position while
// browsing, usage on an empty line, or else the completion candidates.
func (m model) hint() string {
	switch {
	case m.pos < m.history.Len():
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.pos+1)),
			m.history.Len()))

	case strings.TrimSpace(m.input.Value()) == "":
		return hintStyle.Render(emptyHint(m.mode))

	case len(m.tab.matches) > 0:
		return renderCandidateBar(m.tab.matches, m.tab.sel, m.tab.active, m.width)
	}

	return ""
}

func (m model) quit() (model, tea.Cmd) {
	m.quitting = true

	return m, tea.Quit
}

// current returns the input text and cursor.
func (m model) current() draft {
	return draft{text: m.input.Value(), cursor: m.input.Position()}
}

func (m *model) restore(d draft) {
	m.input.SetValue(d.text)
	m.input.SetCursor(d.cursor)
}

// submit records the input line in history and evaluates it, or runs it as
// a command in control mode or after a leading ":".
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.drafts = [2]draft{}
	m.input.SetValue("")
	m.tab = tabState{sel: -1}

	if err := m.history.Append(line, m.mode); err != nil {
		m.logger.DebugContext(m.ctx(), "repl history write failed",
			slog.Any("error", err))
	}

	m.pos = m.history.Len()
	echo := tea.Println(m.mode.echo(line))

	if m.mode == modeCtrl {
		return m.run(line, echo)
	}

	if cmdLine, ok := strings.CutPrefix(line, commandPrefix); ok {
		return m.run(cmdLine, echo)
	}

	m.logger.TraceContext(m.ctx(), "repl eval", slog.String("input", line))

	out, err := m.session.eval(m.ctx(), line)

	return m, tea.Sequence(echo, resultLine(out, err))
}

// run executes one command and carries out its terminal action.
func (m model) run(line string, echo tea.Cmd) (model, tea.Cmd) {
	out, act, err := m.session.exec(m.ctx(), line)

	switch {
	case err != nil:
		return m, tea.Sequence(echo, resultLine("", err))

	case act == actionQuit:
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case act == actionClear:
		return m, tea.ClearScreen

	case act == actionEdit:
		return m, tea.Sequence(echo, m.edit())

	case out == "":
		return m, echo
	}

	return m, tea.Sequence(echo, resultLine(out, nil))
}

// edit suspends the program and runs the external editor on the session
// arguments.
func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		args:    m.session.expr.Arguments(),
		config:  m.session.expr.Config(),
		ctxFunc: m.ctx,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.newExpr == nil:
			return editCancelledMsg{}
		}

		return editDoneMsg{expr: cmd.newExpr}
	})
}
