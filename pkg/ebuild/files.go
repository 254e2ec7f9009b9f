// Package ebuild audits the files/ directory of an ebuild directory:
// every ${FILESDIR} reference in an ebuild must name a file that exists,
// and every file under files/ should still be referenced by some ebuild.
//
// Only the variables an ebuild commonly interpolates into FILESDIR paths
// are expanded (${P}, ${PN}, ${PV}); anything beyond that is reported as an
// unparseable reference rather than guessed at.
package ebuild

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/portmaint/portmaint/pkg/errors"
)

var (
	revisionSuffix = regexp.MustCompile(`-r\d+$`)
	versionSuffix  = regexp.MustCompile(`-\d.*$`)
	commentLine    = regexp.MustCompile(`^\s*#`)
	filesPath      = regexp.MustCompile(`files\S+`)
)

// Name holds the naming variables derived from an ebuild file name.
type Name struct {
	P  string // package-version, revision stripped (e.g. "screen-4.0.3")
	PN string // package name (e.g. "screen")
	PV string // version (e.g. "4.0.3")
}

// ParseName derives ${P}, ${PN} and ${PV} from an ebuild file name.
func ParseName(ebuild string) Name {
	p := strings.TrimSuffix(filepath.Base(ebuild), ".ebuild")
	p = revisionSuffix.ReplaceAllString(p, "")

	n := Name{P: p, PN: versionSuffix.ReplaceAllString(p, "")}
	if v := versionSuffix.FindString(p); v != "" {
		n.PV = v[1:]
	}
	return n
}

// expand substitutes the supported variables into a FILESDIR line and
// strips quoting artifacts.
func (n Name) expand(line string) string {
	line = strings.ReplaceAll(line, "${FILESDIR}", "files")
	line = strings.ReplaceAll(line, "${P}", n.P)
	line = strings.ReplaceAll(line, "${PN}", n.PN)
	line = strings.ReplaceAll(line, "${PV}", n.PV)
	line = strings.ReplaceAll(line, `"`, "")
	// epatch lines often close a subshell right after the file name
	line = strings.ReplaceAll(line, ".patch)", ".patch")
	return line
}

// FileStatus is one required file and whether it exists on disk.
type FileStatus struct {
	Path  string `json:"path"` // relative to the ebuild directory, e.g. "files/foo.patch"
	Found bool   `json:"found"`
}

// Result is the outcome of auditing one ebuild directory.
type Result struct {
	// Required maps ${P} to the file references its ebuild makes, in
	// source order. Duplicate references are kept.
	Required map[string][]FileStatus

	// Packages lists the keys of Required, sorted.
	Packages []string

	// Missing counts required files that do not exist.
	Missing int

	// Unused lists entries under files/ that no ebuild references.
	Unused []string

	// NoFilesDir is set when references exist but files/ itself does not.
	NoFilesDir bool

	// Unparseable holds FILESDIR lines no path could be extracted from.
	Unparseable []string
}

// Check audits the ebuild directory at dir. It fails when dir contains no
// ebuilds at all; individual unparseable lines are collected, not fatal.
func Check(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", dir)
	}

	var ebuilds []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".ebuild") {
			ebuilds = append(ebuilds, entry.Name())
		}
	}
	if len(ebuilds) == 0 {
		return nil, errors.New(errors.ErrCodeNotEbuildDir, "not a valid ebuild directory: %s", dir)
	}

	result := &Result{Required: make(map[string][]FileStatus)}

	for _, ebuild := range ebuilds {
		name := ParseName(ebuild)

		data, err := os.ReadFile(filepath.Join(dir, ebuild))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", ebuild)
		}

		for _, line := range strings.Split(string(data), "\n") {
			if !strings.Contains(line, "FILESDIR") || commentLine.MatchString(line) {
				continue
			}

			path := filesPath.FindString(name.expand(line))
			if path == "" {
				result.Unparseable = append(result.Unparseable, strings.TrimSpace(line))
				continue
			}

			result.Required[name.P] = append(result.Required[name.P], FileStatus{Path: path})
		}
	}

	for p := range result.Required {
		result.Packages = append(result.Packages, p)
	}
	sort.Strings(result.Packages)

	filesDir := filepath.Join(dir, "files")
	info, err := os.Stat(filesDir)
	hasFilesDir := err == nil && info.IsDir()

	if !hasFilesDir && len(result.Packages) > 0 {
		// Everything referenced is missing
		result.NoFilesDir = true
		for _, files := range result.Required {
			result.Missing += len(files)
		}
		return result, nil
	}

	required := make(map[string]struct{})
	for _, p := range result.Packages {
		files := result.Required[p]
		for i := range files {
			if _, err := os.Stat(filepath.Join(dir, files[i].Path)); err == nil {
				files[i].Found = true
			} else {
				result.Missing++
			}
			required[files[i].Path] = struct{}{}
		}
	}

	if hasFilesDir {
		entries, err := os.ReadDir(filesDir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", filesDir)
		}
		for _, entry := range entries {
			path := "files/" + entry.Name()
			if _, ok := required[path]; !ok {
				result.Unused = append(result.Unused, path)
			}
		}
		sort.Strings(result.Unused)
	}

	return result, nil
}
