package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if dir != filepath.Join(home, ".cache", appName) {
		t.Errorf("cacheDir() = %q, want %q", dir, filepath.Join(home, ".cache", appName))
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestPortDir(t *testing.T) {
	c := New(io.Discard, LogInfo)

	if got := c.portDir(""); got != "/usr/portage" {
		t.Errorf("portDir(\"\") = %q, want config default", got)
	}
	if got := c.portDir("/tmp/tree"); got != "/tmp/tree" {
		t.Errorf("portDir should prefer the flag, got %q", got)
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "portmaint" {
		t.Errorf("Use = %q", root.Use)
	}

	want := []string{"bugs", "files", "proxy", "port", "serve", "cache", "completion"}
	registered := map[string]bool{}
	for _, cmd := range root.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLoadConfigMissing(t *testing.T) {
	c := New(io.Discard, LogInfo)

	if err := c.loadConfig(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if c.Config.PortDir != "/usr/portage" {
		t.Errorf("PortDir = %q, want default", c.Config.PortDir)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`portdir = "/var/db/repos/gentoo"`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.loadConfig(path); err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if c.Config.PortDir != "/var/db/repos/gentoo" {
		t.Errorf("PortDir = %q", c.Config.PortDir)
	}
}

func TestRootCommandHelpMentionsTree(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if !strings.Contains(root.Long, "Portage tree") {
		t.Errorf("Long description should mention the Portage tree: %q", root.Long)
	}
}
