package maint

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeScanTree lays out a small tree with one package per classification.
func writeScanTree(t *testing.T) string {
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

func TestScanTree(t *testing.T) {
	root := writeScanTree(t)

	report, err := DefaultPolicy().ScanTree(context.Background(), root)
	if err != nil {
		t.Fatalf("ScanTree error: %v", err)
	}

	if report.Total != 3 {
		t.Errorf("Total = %d, want 3", report.Total)
	}
	if report.Official != 1 {
		t.Errorf("Official = %d, want 1", report.Official)
	}
	if len(report.Orphans) != 1 || report.Orphans[0] != "app-misc/abandoned" {
		t.Errorf("Orphans = %v", report.Orphans)
	}
	if len(report.Proxied) != 1 || report.Proxied[0].Atom != "app-misc/screen" {
		t.Errorf("Proxied = %v", report.Proxied)
	}
}

func TestScanTreeCancelled(t *testing.T) {
	root := writeScanTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := DefaultPolicy().ScanTree(ctx, root); err == nil {
		t.Error("ScanTree should stop on a cancelled context")
	}
}

func TestTreeReportGroups(t *testing.T) {
	root := writeScanTree(t)
	p := DefaultPolicy()

	report, err := p.ScanTree(context.Background(), root)
	if err != nil {
		t.Fatalf("ScanTree error: %v", err)
	}

	groups, err := report.Groups(p)
	if err != nil {
		t.Fatalf("Groups error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if groups[0].Contact.Email != "jane@example.com" {
		t.Errorf("Contact = %+v", groups[0].Contact)
	}
	if len(groups[0].Atoms) != 1 || groups[0].Atoms[0] != "app-misc/screen" {
		t.Errorf("Atoms = %v", groups[0].Atoms)
	}
}
