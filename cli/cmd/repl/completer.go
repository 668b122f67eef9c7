package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/strargs/arg"
)

// commandPrefix introduces a control command typed in eval mode.
const commandPrefix = ":"

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. This includes whitespace and the punctuation of all three
// dialects. Hyphens and dots are intentionally excluded because argument
// names may contain them (e.g., data-id).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'[', ']', '{', '}', '(', ')',
		',', ':', '=', '>',
		'\'', '"':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// after a quote, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// commandCandidates returns the completions for a word of a control command
// whose text before the word is prefix. The first word completes to command
// names; operands complete to argument names or format names.
//
// browse reports whether all candidates should be offered for an empty word.
func commandCandidates(prefix string, names []string) (candidates []string, browse bool) {
	fields := strings.Fields(prefix)
	if len(fields) == 0 {
		return commandNames(), false
	}

	cmd, ok := lookupCommand(fields[0])
	if !ok {
		return nil, false
	}

	switch cmd.name {
	case "get", "default", "append":
		return names, true
	case "format":
		return slices.Collect(arg.Formats()), true
	}

	return nil, false
}

// completions returns the fuzzy matches (ranked best-first) for the word at
// cursor and the word boundaries.
//
// In control mode, and in eval mode after a leading ":", words complete to
// commands and their operands. Any other eval word completes to the names of
// the arguments parsed so far.
func completions(
	mode inputMode,
	input string,
	cursor int,
	names []string,
) (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, wordStart, wordEnd := wordBounds(input, cursor)

	var (
		candidates []string
		browse     bool
	)

	switch {
	case mode == modeCtrl:
		candidates, browse = commandCandidates(input[:wordStart], names)

	case strings.HasPrefix(input, commandPrefix):
		candidates, browse = commandCandidates(
			strings.TrimPrefix(input[:wordStart], commandPrefix), names)

	default:
		candidates = names
	}

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	// When the word is empty, only command operands are offered, so that the
	// hint text stays visible on an empty line.
	if word == "" {
		if !browse {
			return nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// tabState tracks the completion candidates for the word under the cursor.
type tabState struct {
	matches    fuzzy.Matches
	saved      draft // input before cycling began
	start, end int   // byte bounds of the word being completed
	sel        int   // selected candidate, -1 for none
	active     bool  // cycling with Tab
}

// refresh recomputes the candidates unless cycling is in progress. With
// autoConfirm, a sole candidate equal to the typed word is dropped so the
// bar disappears once the word is complete. Deletions and cursor movement
// pass false so editing never completes unexpectedly.
func (m *model) refresh(autoConfirm bool) {
	if m.tab.active {
		return
	}

	input := m.input.Value()

	m.tab.matches, m.tab.start, m.tab.end = completions(
		m.mode,
		input,
		m.input.Position(),
		m.session.expr.Arguments().Names(),
	)
	m.tab.sel = -1

	if autoConfirm && len(m.tab.matches) == 1 &&
		input[m.tab.start:m.tab.end] == m.tab.matches[0].Str {
		m.tab.matches = nil
	}
}

// cycle moves the selection by step and writes the selected candidate over
// the current word. A sole candidate is accepted at once.
func (m model) cycle(step int) model {
	t := &m.tab
	n := len(t.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(t.matches[0].Str)
		t.matches, t.sel, t.active = nil, -1, false

		return m

	case t.active:
		t.sel = (t.sel + step + n) % n

	case step > 0:
		t.sel = 0

	default:
		t.sel = n - 1
	}

	if !t.active {
		t.active = true
		t.saved = m.current()
	}

	m.replaceWord(t.matches[t.sel].Str)

	return m
}

// replaceWord substitutes s for the word being completed and moves the
// cursor after it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.tab.start] + s + input[m.tab.end:])
	m.tab.end = m.tab.start + len(s)
	m.input.SetCursor(m.tab.end)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	sel int,
	cycling bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := cycling && i == sel
		rendered := renderCandidate(match, selected)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		// The last candidate needs no room reserved for the ellipsis.
		reserve := ellipsisWidth
		if i == len(matches)-1 {
			reserve = 0
		}

		if i > 0 && used+entryWidth+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := matchStyle

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedMatchStyle
	}

	// MatchedIndexes are byte offsets into Str.
	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
