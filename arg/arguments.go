package arg

import (
	"iter"
	"maps"
	"slices"
)

// Argument is a single name/value pair as stored by the registry.
type Argument struct {
	Name  string
	Value string
}

// Arguments is an insertion-ordered mapping from argument name to value.
//
// Setting an existing name replaces its value in place; the position of a
// name is fixed by its first insertion. The zero value is an empty mapping
// ready to use.
type Arguments struct {
	names  []string
	values map[string]string
}

// MakeArguments returns an Arguments populated with the given pairs in order.
func MakeArguments(pairs ...Argument) Arguments {
	var a Arguments

	for _, p := range pairs {
		a.Set(p.Name, p.Value)
	}

	return a
}

// Set stores value under name.
func (a *Arguments) Set(name, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}

	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}

	a.values[name] = value
}

// Get returns the value stored under name and whether it exists.
func (a Arguments) Get(name string) (string, bool) {
	v, ok := a.values[name]

	return v, ok
}

// Has reports whether name exists.
func (a Arguments) Has(name string) bool {
	_, ok := a.values[name]

	return ok
}

// Len returns the number of stored arguments.
func (a Arguments) Len() int { return len(a.names) }

// Names returns the argument names in insertion order.
func (a Arguments) Names() []string { return slices.Clone(a.names) }

// All returns an iterator over all name/value pairs in insertion order.
func (a Arguments) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range a.names {
			if !yield(name, a.values[name]) {
				return
			}
		}
	}
}

// Pairs returns all arguments as a slice in insertion order.
func (a Arguments) Pairs() []Argument {
	pairs := make([]Argument, 0, len(a.names))

	for name, value := range a.All() {
		pairs = append(pairs, Argument{Name: name, Value: value})
	}

	return pairs
}

// Map returns an unordered copy of the arguments.
func (a Arguments) Map() map[string]string {
	if a.values == nil {
		return map[string]string{}
	}

	return maps.Clone(a.values)
}

// Clone returns a deep copy that shares no storage with a.
func (a Arguments) Clone() Arguments {
	return Arguments{
		names:  slices.Clone(a.names),
		values: maps.Clone(a.values),
	}
}
