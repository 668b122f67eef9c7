package arg

//go:generate go tool stringer --linecomment --type Format --output format_string.go

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects how [Arguments] are rendered by [Write].
type Format int

const (
	FormatJSON   Format = iota // json
	FormatYAML                 // yaml
	FormatArray                // array
	FormatInline               // inline
	FormatText                 // text
)

// ErrInvalidFormat is returned by [ParseFormat] for unknown format names.
var ErrInvalidFormat = NewError("invalid format")

// Formats returns an iterator over the names of all output formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{
			FormatJSON,
			FormatYAML,
			FormatArray,
			FormatInline,
			FormatText,
		} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format with the given name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for f := FormatJSON; f <= FormatText; f++ {
		if f.String() == name {
			return f, nil
		}
	}

	return 0, ErrInvalidFormat.Wrap(fmt.Errorf("%q", s))
}

// MarshalJSON encodes the arguments as a JSON object in insertion order.
func (a Arguments) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	i := 0
	for name, value := range a.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString(quoteJSON(name))
		buf.WriteByte(':')
		buf.WriteString(quoteJSON(value))

		i++
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes the arguments as an ordered YAML mapping.
func (a Arguments) MarshalYAML() (any, error) {
	return a.mapSlice(), nil
}

func (a Arguments) mapSlice() yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, a.Len())

	for name, value := range a.All() {
		ms = append(ms, yaml.MapItem{Key: name, Value: value})
	}

	return ms
}

// Write renders a to w in format f.
//
// A positive indent selects multi-line output with that indent width for
// json and array, and the nesting indent for yaml; zero selects compact
// json and array output and the default yaml indent.
func Write(ctx context.Context, w io.Writer, a Arguments, f Format, indent int) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, a, indent)
	case FormatYAML:
		return writeYAML(ctx, w, a, indent)
	case FormatArray:
		return writeArray(w, a, indent)
	case FormatInline:
		return writeInline(w, a)
	case FormatText:
		return writeText(w, a)
	default:
		return ErrInvalidFormat.Wrap(fmt.Errorf("%d", int(f)))
	}
}

func writeJSON(w io.Writer, a Arguments, indent int) error {
	data, err := a.MarshalJSON()
	if err != nil {
		return err
	}

	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
			return err
		}

		data = buf.Bytes()
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func writeYAML(ctx context.Context, w io.Writer, a Arguments, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	data, err := yaml.MarshalContext(ctx, a.mapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// writeArray renders a in the array dialect, which [Expression.Parse]
// reads back to the same arguments.
func writeArray(w io.Writer, a Arguments, indent int) error {
	var b strings.Builder

	sep, pad, end := ", ", " ", " ]"
	if indent > 0 {
		sep = ",\n" + strings.Repeat(" ", indent)
		pad = "\n" + strings.Repeat(" ", indent)
		end = "\n]"
	}

	if a.Len() == 0 {
		end = "]"
	}

	b.WriteByte('[')

	i := 0
	for name, value := range a.All() {
		if i == 0 {
			b.WriteString(pad)
		} else {
			b.WriteString(sep)
		}

		b.WriteString(quoteJSON(name))
		b.WriteString(" => ")
		b.WriteString(quoteJSON(value))

		i++
	}

	b.WriteString(end)

	_, err := fmt.Fprintln(w, b.String())

	return err
}

// writeInline renders the values of a in the inline dialect. Names are not
// representable inline, so they are dropped.
func writeInline(w io.Writer, a Arguments) error {
	values := make([]string, 0, a.Len())

	for _, value := range a.All() {
		values = append(values, value)
	}

	_, err := fmt.Fprintln(w, strings.Join(values, ", "))

	return err
}

func writeText(w io.Writer, a Arguments) error {
	for name, value := range a.All() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, value); err != nil {
			return err
		}
	}

	return nil
}

// quoteJSON returns s as a JSON string literal without HTML escaping.
func quoteJSON(s string) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // encoding a string cannot fail

	return strings.TrimSuffix(buf.String(), "\n")
}
