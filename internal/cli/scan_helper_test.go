package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/portmaint/portmaint/pkg/cache"
)

// writeTestTree lays out a minimal tree with one package per status.
func writeTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(atom, content string) {
		path := filepath.Join(root, atom, "metadata.xml")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("sys-apps/portage", `<pkgmetadata>
  <herd>tools-portage</herd>
  <maintainer><email>dev-portage@gentoo.org</email></maintainer>
</pkgmetadata>`)
	write("app-misc/screen", `<pkgmetadata>
  <herd>proxy-maintainers</herd>
  <maintainer><email>jane@example.com</email><name>Jane Doe</name></maintainer>
</pkgmetadata>`)
	write("app-misc/abandoned", `<pkgmetadata>
  <herd>proxy-maintainers</herd>
  <maintainer><email>maintainer-needed@gentoo.org</email></maintainer>
</pkgmetadata>`)

	return root
}

func TestLoadTreeReport(t *testing.T) {
	root := writeTestTree(t)
	c := New(io.Discard, LogInfo)

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()

	report, cached, err := c.loadTreeReport(ctx, store, root, false)
	if err != nil {
		t.Fatalf("loadTreeReport error: %v", err)
	}
	if cached {
		t.Error("first load should not be a cache hit")
	}
	if report.Total != 3 || len(report.Proxied) != 1 || len(report.Orphans) != 1 {
		t.Errorf("report = %+v", report)
	}

	report2, cached, err := c.loadTreeReport(ctx, store, root, false)
	if err != nil {
		t.Fatalf("loadTreeReport error: %v", err)
	}
	if !cached {
		t.Error("second load should hit the cache")
	}
	if report2.Total != report.Total || len(report2.Proxied) != len(report.Proxied) {
		t.Errorf("cached report differs: %+v vs %+v", report2, report)
	}

	// refresh bypasses the cache
	_, cached, err = c.loadTreeReport(ctx, store, root, true)
	if err != nil {
		t.Fatalf("loadTreeReport error: %v", err)
	}
	if cached {
		t.Error("refresh should bypass the cache")
	}
}

func TestLoadTreeReportNullCache(t *testing.T) {
	root := writeTestTree(t)
	c := New(io.Discard, LogInfo)

	store := cache.NewNullCache()
	ctx := context.Background()

	if _, _, err := c.loadTreeReport(ctx, store, root, false); err != nil {
		t.Fatalf("loadTreeReport error: %v", err)
	}
	_, cached, err := c.loadTreeReport(ctx, store, root, false)
	if err != nil {
		t.Fatalf("loadTreeReport error: %v", err)
	}
	if cached {
		t.Error("null cache can never hit")
	}
}

func TestLoadIndex(t *testing.T) {
	root := writeTestTree(t)
	c := New(io.Discard, LogInfo)

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	index, err := c.loadIndex(context.Background(), store, root, false)
	if err != nil {
		t.Fatalf("loadIndex error: %v", err)
	}
	if !index.Contains("app-misc/screen") || !index.Contains("sys-apps/portage") {
		t.Errorf("index missing atoms: %v", index.Atoms())
	}

	// Cached copy round-trips
	index2, err := c.loadIndex(context.Background(), store, root, false)
	if err != nil {
		t.Fatalf("loadIndex error: %v", err)
	}
	if index2.Len() != index.Len() {
		t.Errorf("cached index Len = %d, want %d", index2.Len(), index.Len())
	}
}
