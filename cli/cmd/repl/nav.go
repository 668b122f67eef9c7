package repl

// peekState records what to restore when command-history browsing started
// from another mode ends.
type peekState struct {
	saved draft
	mode  inputMode
}

// show loads history entry i into the input.
func (m model) show(i int, entry HistoryEntry) model {
	m.pos = i
	m.restore(draft{text: entry.Line, cursor: len(entry.Line)})
	m.refresh(false)

	return m
}

// leave stops browsing with an empty input.
func (m model) leave() model {
	m.pos = m.history.Len()
	m.input.SetValue("")
	m.refresh(false)

	return m
}

// browse steps through the history of both modes, switching mode to match
// each entry. Stepping past the newest entry leaves history.
func (m model) browse(step int) model {
	i := m.pos + step

	switch {
	case i < 0:
		return m
	case i >= m.history.Len():
		return m.leave()
	}

	entry, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	if entry.Mode != m.mode {
		m = m.switchMode(entry.Mode)
	}

	return m.show(i, entry)
}

// nearest returns the closest entry in mode from the current position in
// direction step, or -1.
func (m model) nearest(mode inputMode, step int) (int, HistoryEntry) {
	for i := m.pos + step; i >= 0 && i < m.history.Len(); i += step {
		if entry, err := m.history.Entry(i); err == nil && entry.Mode == mode {
			return i, entry
		}
	}

	return -1, HistoryEntry{}
}

// browseMode steps through the history of the current mode only.
func (m model) browseMode(step int) model {
	if i, entry := m.nearest(m.mode, step); i >= 0 {
		return m.show(i, entry)
	}

	if step > 0 && m.pos < m.history.Len() {
		return m.leave()
	}

	return m
}

// peekCommands steps through command history from any mode. Running off
// either end restores the mode and input from before browsing began.
func (m model) peekCommands(step int) model {
	if m.peek == nil {
		m.peek = &peekState{saved: m.current(), mode: m.mode}

		if m.mode != modeCtrl {
			m = m.switchMode(modeCtrl)
		}
	}

	if i, entry := m.nearest(modeCtrl, step); i >= 0 {
		return m.show(i, entry)
	}

	orig := *m.peek
	m.peek = nil

	if orig.mode != m.mode {
		m = m.switchMode(orig.mode)
	}

	m.restore(orig.saved)
	m.pos = m.history.Len()
	m.refresh(false)

	return m
}
