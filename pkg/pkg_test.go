package pkg

import (
	"regexp"
	"testing"
)

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	if !semver.MatchString(Version) {
		t.Errorf("Version = %q, want semantic version", Version)
	}
}
