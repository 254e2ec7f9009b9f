package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/portmaint/portmaint/pkg/errors"
)

const screenMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE pkgmetadata SYSTEM "http://www.gentoo.org/dtd/metadata.dtd">
<pkgmetadata>
  <herd>proxy-maintainers</herd>
  <maintainer>
    <email>larry@gentoo.org</email>
    <name>Larry the Cow</name>
  </maintainer>
  <maintainer>
    <email>outside@example.com</email>
    <name>Jane Doe</name>
    <description>Proxy maintainer; assign bugs
      to her</description>
  </maintainer>
</pkgmetadata>
`

func TestParsePackage(t *testing.T) {
	pkg, err := ParsePackage("app-misc/screen", []byte(screenMetadata))
	if err != nil {
		t.Fatalf("ParsePackage error: %v", err)
	}

	if pkg.Atom != "app-misc/screen" {
		t.Errorf("Atom = %q, want %q", pkg.Atom, "app-misc/screen")
	}
	if len(pkg.Herds) != 1 || pkg.Herds[0] != "proxy-maintainers" {
		t.Errorf("Herds = %v, want [proxy-maintainers]", pkg.Herds)
	}
	if len(pkg.Maintainers) != 2 {
		t.Fatalf("len(Maintainers) = %d, want 2", len(pkg.Maintainers))
	}

	first := pkg.Maintainers[0]
	if first.Email != "larry@gentoo.org" || first.Name != "Larry the Cow" {
		t.Errorf("first maintainer = %+v", first)
	}

	second := pkg.Maintainers[1]
	if second.Email != "outside@example.com" {
		t.Errorf("second maintainer email = %q", second.Email)
	}
	// Newlines and indentation in descriptions collapse to single spaces
	want := "Proxy maintainer; assign bugs to her"
	if second.Description != want {
		t.Errorf("Description = %q, want %q", second.Description, want)
	}
}

func TestParsePackageNoMaintainers(t *testing.T) {
	pkg, err := ParsePackage("app-misc/orphan", []byte(`<pkgmetadata></pkgmetadata>`))
	if err != nil {
		t.Fatalf("ParsePackage error: %v", err)
	}
	if len(pkg.Herds) != 0 || len(pkg.Maintainers) != 0 {
		t.Errorf("expected empty package, got %+v", pkg)
	}
}

func TestParsePackageMissingEmail(t *testing.T) {
	_, err := ParsePackage("app-misc/bad", []byte(
		`<pkgmetadata><maintainer><name>No Address</name></maintainer></pkgmetadata>`))
	if err == nil {
		t.Fatal("ParsePackage should reject a maintainer without email")
	}
	if !errors.Is(err, errors.ErrCodeInvalidMaintainer) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidMaintainer)
	}
}

func TestParsePackageMalformedXML(t *testing.T) {
	_, err := ParsePackage("app-misc/bad", []byte(`<pkgmetadata><herd>`))
	if err == nil {
		t.Fatal("ParsePackage should reject malformed XML")
	}
}

func TestAtomFromPath(t *testing.T) {
	path := filepath.Join("/usr/portage", "app-misc", "screen", "metadata.xml")
	if atom := AtomFromPath(path); atom != "app-misc/screen" {
		t.Errorf("AtomFromPath = %q, want %q", atom, "app-misc/screen")
	}
}

// writeTree lays out a minimal Portage tree for walker tests.
func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(parts ...string) {
		path := filepath.Join(parts...)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(`<pkgmetadata></pkgmetadata>`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write(root, "app-misc", "screen", "metadata.xml")
	write(root, "app-misc", "tmux", "metadata.xml")
	write(root, "sys-apps", "portage", "metadata.xml")
	// Category-level metadata must be skipped
	write(root, "app-misc", "metadata.xml")
	// Profiles never hold packages but the walker does not special-case it;
	// only the directory depth matters
	if err := os.MkdirAll(filepath.Join(root, "profiles"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestWalk(t *testing.T) {
	root := writeTree(t)

	var atoms []string
	err := Walk(root, func(path string) error {
		atoms = append(atoms, AtomFromPath(path))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}

	want := []string{"app-misc/screen", "app-misc/tmux", "sys-apps/portage"}
	if len(atoms) != len(want) {
		t.Fatalf("Walk found %v, want %v", atoms, want)
	}
	for i := range want {
		if atoms[i] != want[i] {
			t.Errorf("atoms[%d] = %q, want %q", i, atoms[i], want[i])
		}
	}
}

func TestWalkInvalidRoot(t *testing.T) {
	if err := Walk("", func(string) error { return nil }); err == nil {
		t.Error("Walk should reject an empty root")
	}
}

func TestReadTree(t *testing.T) {
	root := writeTree(t)

	packages, err := ReadTree(root)
	if err != nil {
		t.Fatalf("ReadTree error: %v", err)
	}
	if len(packages) != 3 {
		t.Fatalf("len(packages) = %d, want 3", len(packages))
	}
	if packages[0].Atom != "app-misc/screen" {
		t.Errorf("first atom = %q", packages[0].Atom)
	}
}

func TestBuildIndex(t *testing.T) {
	root := writeTree(t)

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	for _, atom := range []string{"app-misc/screen", "app-misc/tmux", "sys-apps/portage"} {
		if !idx.Contains(atom) {
			t.Errorf("Contains(%q) = false, want true", atom)
		}
	}
	if idx.Contains("app-misc/unknown") {
		t.Error("Contains(app-misc/unknown) = true, want false")
	}
	if idx.Contains("profiles/anything") {
		t.Error("profiles must not be treated as a category")
	}
	if idx.Len() != 3 {
		t.Errorf("Len = %d, want 3", idx.Len())
	}
}

func TestIndexJSONRoundTrip(t *testing.T) {
	idx := NewIndex([]string{"app-misc/screen", "sys-apps/portage"})

	data, err := idx.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}

	var decoded Index
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON error: %v", err)
	}
	if decoded.Len() != 2 || !decoded.Contains("app-misc/screen") {
		t.Errorf("round trip lost atoms: %v", decoded.Atoms())
	}
}
