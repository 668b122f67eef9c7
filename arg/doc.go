// Package arg interprets free-form argument expressions.
//
// An expression is written in one of three dialects, selected by its first
// non-whitespace character:
//
//	{ "one": true, 'two': intval($id) }    json
//	[ "one" => true, 'two' => intval($id) ] array
//	true, intval($id), "string"            inline
//
// The JSON-like and array-like dialects are relaxed: keys may be
// single-quoted identifiers, and values may be bare text, which is kept
// verbatim. Function-call-like values are opaque; nothing is evaluated.
// Inline expressions produce positional arguments keyed "0", "1", and so
// on; parentheses keep the commas of a call's argument list together.
//
// Every value is a string. Parsed and added arguments pass through
// [Register], which trims and unquotes the value, renames positional keys
// using the configured default names, and appends to existing values for
// the configured append names:
//
//	e := arg.New().SetDefaultArgs("class", "style").SetAppendArgs("class")
//	e.AddArgument("class", "btn")
//	e.Parse(ctx, `"btn-success", "color: red"`)
//	// class="btn btn-success" style="color: red"
//
// [Arguments] keeps names in first-insertion order and renders as JSON,
// YAML, or any of the dialects with [Write].
package arg
