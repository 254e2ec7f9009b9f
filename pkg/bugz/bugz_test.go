package bugz

import (
	"testing"
)

func TestParseBugList(t *testing.T) {
	output := []byte(` * Using [jsonrpc] https://bugs.gentoo.org/xmlrpc.cgi
 12345 bug-wranglers@gentoo.org  app-misc/screen-4.0.3 fails to build
 12346 bug-wranglers@gentoo.org  Random crash somewhere
not a bug line
 12347 larry@gentoo.org sys-apps/portage: version bump
`)

	bugs := ParseBugList(output)
	if len(bugs) != 0 {
		t.Fatalf("indented lines should not match, got %d bugs", len(bugs))
	}

	// Real bugz rows start at column zero
	output = []byte(`12345 bug-wranglers@gentoo.org  app-misc/screen-4.0.3 fails to build
12346 bug-wranglers@gentoo.org  Random crash somewhere
not a bug line
12347 larry@gentoo.org sys-apps/portage: version bump
`)

	bugs = ParseBugList(output)
	if len(bugs) != 3 {
		t.Fatalf("len(bugs) = %d, want 3", len(bugs))
	}

	first := bugs[0]
	if first.ID != "12345" {
		t.Errorf("ID = %q, want %q", first.ID, "12345")
	}
	if first.Assignee != "bug-wranglers@gentoo.org" {
		t.Errorf("Assignee = %q", first.Assignee)
	}
	if first.Summary != "app-misc/screen-4.0.3 fails to build" {
		t.Errorf("Summary = %q", first.Summary)
	}

	if bugs[2].Summary != "sys-apps/portage: version bump" {
		t.Errorf("Summary = %q", bugs[2].Summary)
	}
}

func TestParseBugListEmpty(t *testing.T) {
	if bugs := ParseBugList(nil); len(bugs) != 0 {
		t.Errorf("ParseBugList(nil) = %v, want empty", bugs)
	}
	if bugs := ParseBugList([]byte("no bugs here\n")); len(bugs) != 0 {
		t.Errorf("ParseBugList = %v, want empty", bugs)
	}
}

func TestNewExecRunnerDefaults(t *testing.T) {
	r := NewExecRunner("", nil)
	if r.Command != "bugz" {
		t.Errorf("Command = %q, want bugz", r.Command)
	}
	if len(r.Args) != len(DefaultSearchArgs) {
		t.Errorf("Args = %v, want defaults", r.Args)
	}

	custom := NewExecRunner("/usr/local/bin/bugz", []string{"search"})
	if custom.Command != "/usr/local/bin/bugz" || len(custom.Args) != 1 {
		t.Errorf("custom runner = %+v", custom)
	}
}
