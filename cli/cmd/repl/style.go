package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// inputMode selects how a submitted line is interpreted.
type inputMode int

const (
	modeEval inputMode = iota // parse as an argument expression
	modeCtrl                  // run as a command
)

// prompt returns the styled prompt shown for the mode.
func (mode inputMode) prompt() string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

// echo returns the styled copy of a submitted line printed above the input.
func (mode inputMode) echo(line string) string {
	return mode.prompt() + inputStyle.Render(line)
}

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

const usage = `
Usage:
  Type an argument expression to parse it into the session
    inline:  div, btn, intval($id, 2)
    array:   ['class' => 'active', 'id' => 7]
    json:    {"class": "active", "id": 7}
  Completions of argument names and commands appear as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down to walk the history of both modes
  Use Shift+Up/Shift+Down to stay within the current mode
  Use Alt+Up/Alt+Down to browse command history only
    (the original mode returns when browsing runs off the end)
  Press Ctrl+C on empty line or Ctrl+D to exit
`

func helpMessage() string {
	var b strings.Builder

	b.WriteString("\n: Commands (press Esc to toggle mode, or prefix with ':'):\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-16s %s\n", strings.TrimSpace(c.name+" "+c.operand), c.help)
	}

	b.WriteString(usage)

	return b.String()
}

// emptyHint is shown below an empty input line.
func emptyHint(mode inputMode) string {
	if mode == modeEval {
		return "Type an argument expression or press Esc for commands"
	}

	return "Type: " + strings.Join(commandNames(), ", ") + " (press Esc to return)"
}

// resultLine prints the outcome of one submitted line, or nothing when there
// is neither output nor error.
func resultLine(out string, err error) tea.Cmd {
	if err != nil {
		return tea.Println(errorStyle.Render("error: " + err.Error()))
	}

	if out == "" {
		return nil
	}

	return tea.Println(resultStyle.Render(out))
}
