package arg

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Config holds the naming policy applied while registering arguments.
//
// Defaults renames positional keys: the name at index i replaces key "i".
// Appends names the arguments whose values accumulate across registrations
// instead of being replaced.
//
// The zero value applies no renaming and no append policy.
type Config struct {
	defaults []string
	appends  map[string]struct{}
}

// MakeConfig returns a Config with the given default and append names.
func MakeConfig(defaults, appends []string) Config {
	return Config{}.WithDefaults(defaults...).WithAppends(appends...)
}

// WithDefaults returns a copy of c whose positional names are replaced by
// names.
func (c Config) WithDefaults(names ...string) Config {
	c.defaults = append([]string(nil), names...)

	return c
}

// WithAppends returns a copy of c whose append set is replaced by names.
// Duplicate names are collapsed.
func (c Config) WithAppends(names ...string) Config {
	c.appends = make(map[string]struct{}, len(names))

	for _, name := range names {
		c.appends[name] = struct{}{}
	}

	return c
}

// Defaults returns the positional names in order.
func (c Config) Defaults() []string {
	return append([]string(nil), c.defaults...)
}

// AppendNames returns the names using the append policy in sorted order.
func (c Config) AppendNames() []string {
	return slices.Sorted(maps.Keys(c.appends))
}

// Appends reports whether name uses the append policy.
func (c Config) Appends(name string) bool {
	_, ok := c.appends[name]

	return ok
}

// rename returns the positional name for key, if key is the canonical
// decimal form of an index that has a configured name. "01" names nothing.
func (c Config) rename(key string) (string, bool) {
	if !isIndex(key) {
		return "", false
	}

	i, err := strconv.Atoi(key)
	if err != nil || i >= len(c.defaults) || strconv.Itoa(i) != key {
		return "", false
	}

	return c.defaults[i], true
}

// Register folds one name/value pair into store according to cfg and
// returns the pair actually stored.
//
// The value is stringified, trimmed, stripped of one layer of single quotes
// and then one layer of double quotes, and trimmed again. A purely numeric
// key is renamed when cfg has a positional name for it. Unless force is set,
// a key in the append set that already holds a value receives the new value
// appended after a single space.
func Register(
	cfg Config,
	store *Arguments,
	key string,
	value any,
	force bool,
) Argument {
	v := normalizeValue(Stringify(value))

	if name, ok := cfg.rename(key); ok {
		key = name
	}

	if !force && cfg.Appends(key) {
		if prev, ok := store.Get(key); ok {
			v = unquote(prev, '"') + " " + v
		}
	}

	store.Set(key, v)

	return Argument{Name: key, Value: v}
}

// normalizeValue applies the registration trimming rules to s.
func normalizeValue(s string) string {
	s = strings.TrimSpace(s)
	s = unquote(s, '\'')
	s = unquote(s, '"')

	return strings.TrimSpace(s)
}

// unquote removes one layer of quote from both ends of s, if s is wrapped
// in it.
func unquote(s string, quote byte) string {
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		return s[1 : len(s)-1]
	}

	return s
}

// isIndex reports whether s is a non-empty run of ASCII digits.
func isIndex(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// Stringify converts an arbitrary registration value to its text form.
// Nil becomes the empty string; booleans and numbers use their literal
// representation.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
