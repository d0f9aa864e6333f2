package version

import (
	"strings"
	"testing"
)

func TestStringStartsWithVersion(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "1.2.3"
	if got := String(); !strings.HasPrefix(got, "1.2.3") {
		t.Fatalf("String() = %q; want prefix 1.2.3", got)
	}
}

func TestStringNeverEmpty(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = ""
	if got := String(); !strings.HasPrefix(got, "dev") {
		t.Fatalf("String() = %q; want dev fallback", got)
	}
}
