package arg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// structured rewrites a relaxed JSON-like or array-like literal into strict
// JSON text.
//
// The scanner alternates between key mode and value mode. Keys must be
// double-quoted strings or single-quoted identifiers. Values may also be
// bare runs of text, which are quoted on output; a bare run ends at a comma
// followed by a quote, or at the final closing bracket.
type structured struct {
	dialect Dialect
	src     string
	pos     int
	out     strings.Builder
}

// parseStructured parses expression in dialect d (either [DialectJSON] or
// [DialectArray]) into raw arguments.
func parseStructured(d Dialect, expression string) (Arguments, error) {
	s := &structured{dialect: d, src: expression}

	text, err := s.normalize()
	if err != nil {
		return Arguments{}, err
	}

	return decodeObject(d, text)
}

// normalize scans the whole input and returns the equivalent strict JSON.
func (s *structured) normalize() (string, error) {
	s.skipSpace()

	if !s.consume(s.dialect.open()) {
		return "", s.fail("expected %q", s.dialect.open())
	}

	s.out.WriteByte('{')

	for first := true; ; first = false {
		if !first {
			s.out.WriteByte(',')
		}

		s.skipSpace()

		if err := s.key(); err != nil {
			return "", err
		}

		s.skipSpace()

		if !s.colon() {
			return "", s.fail("expected %s after key", s.colonName())
		}

		s.out.WriteByte(':')
		s.skipSpace()

		if err := s.value(); err != nil {
			return "", err
		}

		s.skipSpace()

		switch {
		case s.consume(','):
			continue

		case s.consume(s.dialect.close()):
			s.out.WriteByte('}')
			s.skipSpace()

			if !s.eof() {
				return "", s.fail("unexpected text after %q", s.dialect.close())
			}

			return s.out.String(), nil

		default:
			return "", s.fail("expected ',' or %q", s.dialect.close())
		}
	}
}

// key scans one key and writes it as a JSON string.
func (s *structured) key() error {
	switch s.peek() {
	case '"':
		raw, err := s.quoted()
		if err != nil {
			return err
		}

		s.out.WriteString(raw)

		return nil

	case '\'':
		ident, ok := s.identifier()
		if !ok {
			return s.fail("single-quoted key must be an identifier")
		}

		s.writeString(ident)

		return nil

	default:
		return s.fail("expected quoted key")
	}
}

// value scans one value and writes it as a JSON string.
func (s *structured) value() error {
	switch s.peek() {
	case '"':
		raw, err := s.quoted()
		if err != nil {
			return err
		}

		s.out.WriteString(raw)

		return nil

	case '\'':
		start := s.pos

		if ident, ok := s.identifier(); ok && s.atBoundary() {
			s.writeString(ident)

			return nil
		}

		// Not a plain identifier: the quotes become part of a bare value.
		s.pos = start
	}

	return s.bare()
}

// bare scans an unquoted value run.
func (s *structured) bare() error {
	start := s.pos

	for ; ; s.pos++ {
		if s.eof() {
			return s.fail("unterminated value")
		}

		c := s.src[s.pos]

		switch {
		case c == '"':
			return s.fail("unexpected '\"' in unquoted value")

		case c == ',' && s.quoteAt(s.pos+1):
			goto done

		case c == s.dialect.close() && s.spaceFrom(s.pos+1):
			goto done
		}
	}

done:
	text := collapseSpace(strings.TrimSpace(s.src[start:s.pos]))
	if text == "" {
		return s.fail("missing value")
	}

	s.writeString(text)

	return nil
}

// quoted scans a double-quoted string starting at the current position and
// returns it verbatim, quotes included. Escapes are validated by the JSON
// decoder, not here.
func (s *structured) quoted() (string, error) {
	start := s.pos
	s.pos++ // opening quote

	for !s.eof() {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2

			continue

		case '"':
			s.pos++

			return s.src[start:s.pos], nil
		}

		s.pos++
	}

	s.pos = len(s.src)

	return "", s.fail("unterminated string")
}

// identifier scans a single-quoted identifier ('[A-Za-z0-9_-]*'). On
// failure the position is left unchanged.
func (s *structured) identifier() (string, bool) {
	start := s.pos
	i := s.pos + 1

	for i < len(s.src) && isIdentByte(s.src[i]) {
		i++
	}

	if i >= len(s.src) || s.src[i] != '\'' {
		return "", false
	}

	s.pos = i + 1

	return s.src[start+1 : i], true
}

// colon consumes a key/value separator.
func (s *structured) colon() bool {
	if s.consume(':') {
		return true
	}

	if s.dialect == DialectArray && strings.HasPrefix(s.src[s.pos:], "=>") {
		s.pos += 2

		return true
	}

	return false
}

func (s *structured) colonName() string {
	if s.dialect == DialectArray {
		return "'=>'"
	}

	return "':'"
}

// atBoundary reports whether the next non-space byte ends a value.
func (s *structured) atBoundary() bool {
	i := skipSpaceFrom(s.src, s.pos)

	return i < len(s.src) && (s.src[i] == ',' || s.src[i] == s.dialect.close())
}

// quoteAt reports whether the next non-space byte at or after i is a quote.
func (s *structured) quoteAt(i int) bool {
	i = skipSpaceFrom(s.src, i)

	return i < len(s.src) && (s.src[i] == '"' || s.src[i] == '\'')
}

// spaceFrom reports whether only whitespace remains at or after i.
func (s *structured) spaceFrom(i int) bool {
	return skipSpaceFrom(s.src, i) == len(s.src)
}

func (s *structured) writeString(text string) {
	b, _ := json.Marshal(text) // marshaling a string cannot fail
	s.out.Write(b)
}

func (s *structured) skipSpace() { s.pos = skipSpaceFrom(s.src, s.pos) }

func (s *structured) peek() byte {
	if s.eof() {
		return 0
	}

	return s.src[s.pos]
}

func (s *structured) consume(c byte) bool {
	if s.peek() == c && !s.eof() {
		s.pos++

		return true
	}

	return false
}

func (s *structured) eof() bool { return s.pos >= len(s.src) }

func (s *structured) fail(format string, args ...any) error {
	return syntaxError(s.dialect, s.pos, fmt.Errorf(format, args...))
}

// decodeObject decodes strict JSON text into ordered raw arguments.
// Non-string scalars are converted back to their literal text.
func decodeObject(d Dialect, text string) (Arguments, error) {
	var out Arguments

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	fail := func(err error) (Arguments, error) {
		return Arguments{}, syntaxError(d, int(dec.InputOffset()), err)
	}

	if tok, err := dec.Token(); err != nil {
		return fail(err)
	} else if tok != json.Delim('{') {
		return fail(errors.New("expected object"))
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fail(err)
		}

		key, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return fail(err)
		}

		value, ok := scalarText(tok)
		if !ok {
			return fail(fmt.Errorf("nested value for key %q", key))
		}

		out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fail(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fail(errors.New("unexpected trailing data"))
	}

	return out, nil
}

// scalarText returns the literal text of a decoded JSON scalar.
func scalarText(tok json.Token) (string, bool) {
	switch v := tok.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return Stringify(v), true
	case nil:
		return "null", true
	default:
		return "", false
	}
}

func syntaxError(d Dialect, offset int, cause error) error {
	return ErrInvalidSyntax.
		With(
			slog.String("dialect", d.String()),
			slog.Int("offset", offset),
		).
		Wrap(fmt.Errorf("%s: %w at offset %d", d, cause, offset))
}

// collapseSpace removes whitespace adjacent to ',' and ':' in s.
func collapseSpace(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); {
		if !isSpaceByte(s[i]) {
			b.WriteByte(s[i])
			i++

			continue
		}

		j := skipSpaceFrom(s, i)

		var prev, next byte
		if b.Len() > 0 {
			prev = b.String()[b.Len()-1]
		}

		if j < len(s) {
			next = s[j]
		}

		if !isDelimByte(prev) && !isDelimByte(next) {
			b.WriteString(s[i:j])
		}

		i = j
	}

	return b.String()
}

func skipSpaceFrom(s string, i int) int {
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}

	return i
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDelimByte(c byte) bool { return c == ',' || c == ':' }

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
