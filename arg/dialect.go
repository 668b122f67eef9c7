package arg

//go:generate go tool stringer --linecomment --type Dialect --output dialect_string.go

import (
	"iter"
	"strings"
	"unicode"
)

// Dialect identifies the syntax an argument expression was written in.
type Dialect int

const (
	DialectNone   Dialect = iota // none
	DialectJSON                  // json
	DialectArray                 // array
	DialectInline                // inline
)

// Dialects returns an iterator over the names of all dialects.
func Dialects() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, d := range []Dialect{
			DialectNone,
			DialectJSON,
			DialectArray,
			DialectInline,
		} {
			if !yield(d.String()) {
				return
			}
		}
	}
}

// Detect reports the dialect of expression without parsing it.
//
// The literal empty string is [DialectNone]. Otherwise the first character
// that is neither whitespace nor a newline selects the dialect: '{' for
// [DialectJSON], '[' for [DialectArray], and anything else for
// [DialectInline].
func Detect(expression string) Dialect {
	if expression == "" {
		return DialectNone
	}

	s := strings.TrimLeftFunc(expression, unicode.IsSpace)
	if s == "" {
		return DialectInline
	}

	switch s[0] {
	case '{':
		return DialectJSON
	case '[':
		return DialectArray
	default:
		return DialectInline
	}
}

// open returns the bracket that opens an expression in dialect d.
func (d Dialect) open() byte {
	if d == DialectArray {
		return '['
	}

	return '{'
}

// close returns the bracket that closes an expression in dialect d.
func (d Dialect) close() byte {
	if d == DialectArray {
		return ']'
	}

	return '}'
}
