package arg

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// callOpen matches the start of a function-call-like value: a letter
// followed by an opening parenthesis, optionally separated by one space.
var callOpen = regexp.MustCompile(`[a-zA-Z] ?\(`)

// inlineState is the state of the inline splitter between parts.
type inlineState int

const (
	stateIdle   inlineState = iota // between values
	stateInCall                    // inside an unclosed call
)

// inline folds the comma-separated parts of an inline expression into
// positional arguments, rejoining the parts of a call whose arguments were
// split on their commas.
type inline struct {
	state inlineState
	index int
	out   Arguments
}

// parseInline splits expression on commas and returns positional raw
// arguments keyed "0", "1", ... in order. It never fails.
func parseInline(expression string) Arguments {
	var p inline

	for _, part := range strings.Split(expression, ",") {
		p.feed(part)
	}

	return p.out
}

// feed advances the state machine by one comma-delimited part. A part
// closes a call only when its last byte is ')', so trailing space keeps
// the call open.
func (p *inline) feed(part string) {
	closed := strings.HasSuffix(part, ")")
	tail := strings.TrimRightFunc(part, unicode.IsSpace)

	switch {
	case callOpen.MatchString(part) && !closed:
		p.state = stateInCall
		p.out.Set(p.key(), strings.TrimSpace(part))

	case p.state == stateInCall && closed:
		p.state = stateIdle
		p.rejoin(tail)
		p.index++

	case p.state == stateInCall:
		p.rejoin(tail)

	default:
		s := strings.TrimSpace(part)
		s = unquote(s, '"')
		s = unquote(s, '\'')
		p.out.Set(p.key(), s)
		p.index++
	}
}

// rejoin restores the comma consumed by the split and appends part to the
// value at the current index.
func (p *inline) rejoin(part string) {
	prev, _ := p.out.Get(p.key())
	p.out.Set(p.key(), prev+","+part)
}

func (p *inline) key() string { return strconv.Itoa(p.index) }
