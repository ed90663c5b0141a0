package buildinfo

import "testing"

func TestShortPrefersVersionThenCommit(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("expected dev, got %q", got)
	}
	Commit = "abc123"
	if got := Short(); got != "abc123" {
		t.Fatalf("expected commit, got %q", got)
	}
	Version = "v0.3.0"
	if got := Short(); got != "v0.3.0" {
		t.Fatalf("expected version, got %q", got)
	}
	if got := String(); got != "tally v0.3.0 (commit abc123, built "+Date+")" {
		t.Fatalf("unexpected build string %q", got)
	}
}
