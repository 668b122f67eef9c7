package repl

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		return m.interrupt()

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			return m.quit()
		}

		return m, nil

	case tea.KeyEnter:
		return m.enter()

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp, tea.KeyDown:
		step := -1
		if msg.Type == tea.KeyDown {
			step = +1
		}

		if msg.Alt {
			return m.peekCommands(step), nil
		}

		return m.browse(step), nil

	case tea.KeyShiftUp:
		return m.browseMode(-1), nil

	case tea.KeyShiftDown:
		return m.browseMode(+1), nil

	case tea.KeyEsc:
		return m.escape(), nil

	case tea.KeyRunes, tea.KeySpace:
		return m.insert(msg)
	}

	return m.editLine(msg)
}

// interrupt clears the input, or quits when it is already empty.
func (m model) interrupt() (model, tea.Cmd) {
	if m.input.Value() == "" {
		return m.quit()
	}

	m.input.SetValue("")
	m.tab.active = false
	m.peek = nil
	m.pos = m.history.Len()
	m.refresh(false)

	return m, nil
}

// enter submits the line. While cycling candidates it only accepts the
// selected one.
func (m model) enter() (model, tea.Cmd) {
	m.peek = nil

	if !m.tab.active || len(m.tab.matches) == 0 {
		return m.submit()
	}

	m.tab.active = false
	m.refresh(true)

	return m, nil
}

// escape abandons tab cycling, restoring the typed word, or else toggles
// the input mode.
func (m model) escape() model {
	if m.tab.active {
		m.tab.active = false
		m.restore(m.tab.saved)
		m.refresh(false)

		return m
	}

	m.peek = nil

	if m.mode == modeEval {
		return m.switchMode(modeCtrl)
	}

	return m.switchMode(modeEval)
}

// insert types runes into the input. Space accepts the selected candidate.
func (m model) insert(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.tab.active && msg.String() == " " {
		m.tab.active = false
	}

	var cmd tea.Cmd

	m.pos = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh(true)

	return m, cmd
}

// editLine forwards deletion and cursor keys to the input without
// auto-confirming a completion.
func (m model) editLine(msg tea.KeyMsg) (model, tea.Cmd) {
	var cmd tea.Cmd

	m.tab.active = false
	m.peek = nil
	m.pos = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh(false)

	return m, cmd
}

// switchMode saves the draft of the current mode and restores the draft of
// mode.
func (m model) switchMode(mode inputMode) model {
	m.drafts[m.mode] = m.current()
	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.restore(m.drafts[mode])
	m.refresh(false)

	return m
}
