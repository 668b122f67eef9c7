package cli

import (
	"testing"

	"github.com/ardnew/strargs/pkg"
)

func TestExecutablePrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/strargs", "strargs"},
		{"strargs.exe", "strargs"},
		{"/tmp/__debug_bin3345", pkg.Name},
		{"./.hidden.sh", "hidden"},
		{"/opt/args", "args"},
		{"...", pkg.Name},
	}

	for _, tt := range tests {
		if got := executablePrefix(tt.path); got != tt.want {
			t.Errorf("executablePrefix(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
