package arg

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRegister_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"plain", "x", "x"},
		{"surrounding space", "  x  ", "x"},
		{"single quotes", "'x'", "x"},
		{"double quotes", `"x"`, "x"},
		{"double inside single", `'"x"'`, "x"},
		{"single inside double keeps inner", `"'x'"`, "'x'"},
		{"one layer only", `""x""`, `"x"`},
		{"space inside quotes trimmed", `" x "`, "x"},
		{"unmatched quote kept", `"x`, `"x`},
		{"lone quote kept", `"`, `"`},
		{"nil", nil, ""},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 123, "123"},
		{"int64", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"bytes", []byte(" b "), "b"},
		{"stringer", time.Second, "1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var store Arguments

			got := Register(Config{}, &store, "k", tt.value, false)
			if diff := cmp.Diff(Argument{"k", tt.want}, got); diff != "" {
				t.Errorf("Register(%#v) (-want +got):\n%s", tt.value, diff)
			}

			if v, _ := store.Get("k"); v != tt.want {
				t.Errorf("stored %q, want %q", v, tt.want)
			}
		})
	}
}

func TestRegister_PositionalRename(t *testing.T) {
	cfg := Config{}.WithDefaults("class", "style")

	tests := []struct {
		key  string
		want string
	}{
		{"0", "class"},
		{"1", "style"},
		{"2", "2"},     // no name at that index
		{"01", "01"},   // not the canonical form of index 1
		{"00", "00"},   // not the canonical form of index 0
		{"-1", "-1"},   // not purely numeric
		{"1.0", "1.0"}, // not purely numeric
		{"class", "class"},
		{"", ""},
		{"١", "١"}, // non-ASCII digit
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var store Arguments

			if got := Register(cfg, &store, tt.key, "v", false); got.Name != tt.want {
				t.Errorf("Register key %q stored as %q, want %q", tt.key, got.Name, tt.want)
			}
		})
	}
}

func TestRegister_AppendPolicy(t *testing.T) {
	cfg := MakeConfig([]string{"class"}, []string{"class", "class"})

	var store Arguments

	steps := []struct {
		key, value string
		force      bool
		want       string
	}{
		{"class", "a", false, "a"},
		{"0", "b", false, "a b"},         // renamed, then appended
		{"class", `"c"`, false, "a b c"}, // quotes stripped before append
		{"class", "d", true, "d"},        // force replaces
		{"other", "x", false, "x"},
		{"other", "y", false, "y"}, // not in the append set
	}

	for _, s := range steps {
		got := Register(cfg, &store, s.key, s.value, s.force)
		if got.Value != s.want {
			t.Errorf("Register(%q, %q, force=%v) = %q, want %q",
				s.key, s.value, s.force, got.Value, s.want)
		}
	}

	want := []Argument{{"class", "d"}, {"other", "y"}}
	if diff := cmp.Diff(want, store.Pairs()); diff != "" {
		t.Errorf("store (-want +got):\n%s", diff)
	}
}

func TestRegister_AppendStripsQuotedPrevious(t *testing.T) {
	cfg := Config{}.WithAppends("class")
	store := MakeArguments(Argument{"class", `"a"`})

	if got := Register(cfg, &store, "class", "b", false); got.Value != "a b" {
		t.Errorf("got %q, want %q", got.Value, "a b")
	}
}

func TestConfig_Copies(t *testing.T) {
	names := []string{"a", "b"}
	cfg := Config{}.WithDefaults(names...)
	names[0] = "changed"

	if diff := cmp.Diff([]string{"a", "b"}, cfg.Defaults()); diff != "" {
		t.Errorf("Defaults aliases its input (-want +got):\n%s", diff)
	}

	appended := cfg.WithAppends("x")
	if cfg.Appends("x") {
		t.Error("WithAppends modified the receiver")
	}

	if !appended.Appends("x") || appended.Appends("y") {
		t.Error("Appends reports wrong membership")
	}

	if replaced := appended.WithAppends("y"); replaced.Appends("x") {
		t.Error("WithAppends did not replace the set")
	}
}

func TestConfig_AppendNames(t *testing.T) {
	cfg := MakeConfig(nil, []string{"style", "class", "style"})

	if diff := cmp.Diff([]string{"class", "style"}, cfg.AppendNames()); diff != "" {
		t.Errorf("AppendNames mismatch (-want +got):\n%s", diff)
	}

	if got := (Config{}).AppendNames(); len(got) != 0 {
		t.Errorf("zero Config AppendNames = %v, want empty", got)
	}
}
