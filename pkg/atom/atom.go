// Package atom implements the subset of Portage atom syntax the triage
// tools need: validating category/package atoms, detecting whether an atom
// carries a version, and reducing a versioned atom (CPV) to its
// category/package (CP) form.
//
// The grammar follows PMS naming rules: a category is [\w+][\w+.-]*, a
// package name is [\w+][\w+-]* and may not end in a hyphenated version, and
// a version is digits with optional dotted components, a single letter, any
// number of _alpha/_beta/_pre/_rc/_p suffixes, and an optional -rN revision.
package atom

import (
	"regexp"
	"strings"

	"github.com/portmaint/portmaint/pkg/errors"
)

var (
	categoryRe = regexp.MustCompile(`^[\w+][\w+.-]*$`)
	nameRe     = regexp.MustCompile(`^[\w+][\w+-]*$`)
	versionRe  = regexp.MustCompile(`^\d+(\.\d+)*[a-z]?(_(alpha|beta|pre|rc|p)\d*)*$`)
	revisionRe = regexp.MustCompile(`^r\d+$`)
)

// operators orders the recognized version-relation prefixes so that the
// two-character forms are tried before their one-character prefixes.
var operators = []string{">=", "<=", "=", "~", ">", "<"}

// splitCP splits an unprefixed atom into category and package halves.
func splitCP(atom string) (category, pkg string, ok bool) {
	category, pkg, ok = strings.Cut(atom, "/")
	if !ok || category == "" || pkg == "" || strings.Contains(pkg, "/") {
		return "", "", false
	}
	return category, pkg, true
}

// splitPV splits a package-version string into name, version and revision.
// Returns ok=false when the string carries no trailing version.
func splitPV(pv string) (name, version, revision string, ok bool) {
	parts := strings.Split(pv, "-")
	if len(parts) < 2 {
		return "", "", "", false
	}

	last := parts[len(parts)-1]
	if revisionRe.MatchString(last) && len(parts) >= 3 && versionRe.MatchString(parts[len(parts)-2]) {
		name = strings.Join(parts[:len(parts)-2], "-")
		return name, parts[len(parts)-2], last, name != ""
	}
	if versionRe.MatchString(last) {
		name = strings.Join(parts[:len(parts)-1], "-")
		return name, last, "", name != ""
	}
	return "", "", "", false
}

// validName reports whether pkg is a well-formed package name without a
// trailing version (names like "foo-1" are reserved for versioned atoms).
func validName(pkg string) bool {
	if !nameRe.MatchString(pkg) {
		return false
	}
	_, _, _, versioned := splitPV(pkg)
	return !versioned
}

// IsValid reports whether atom is a well-formed package atom.
// A bare category/name atom must not carry a version; an atom with a
// version-relation operator (=, ~, >=, <=, >, <) must carry one.
func IsValid(atom string) bool {
	op := ""
	for _, candidate := range operators {
		if strings.HasPrefix(atom, candidate) {
			op = candidate
			break
		}
	}
	rest := strings.TrimPrefix(atom, op)

	category, pkg, ok := splitCP(rest)
	if !ok || !categoryRe.MatchString(category) {
		return false
	}

	if op == "" {
		return validName(pkg)
	}

	name, _, _, versioned := splitPV(pkg)
	return versioned && validName(name)
}

// IsJustName reports whether atom names a package without any version
// component (e.g. "app-misc/foo" but not "app-misc/foo-1.2.3").
func IsJustName(atom string) bool {
	_, pkg, ok := splitCP(atom)
	if !ok {
		return false
	}
	_, _, _, versioned := splitPV(pkg)
	return !versioned
}

// CP reduces a possibly versioned atom to category/name form, stripping any
// leading operator, version and revision. Returns an error when the input
// cannot be parsed as an atom at all.
func CP(atom string) (string, error) {
	rest := atom
	for _, candidate := range operators {
		if strings.HasPrefix(rest, candidate) {
			rest = strings.TrimPrefix(rest, candidate)
			break
		}
	}

	category, pkg, ok := splitCP(rest)
	if !ok || !categoryRe.MatchString(category) {
		return "", errors.New(errors.ErrCodeInvalidAtom, "not a valid atom: %q", atom)
	}

	if name, _, _, versioned := splitPV(pkg); versioned {
		return category + "/" + name, nil
	}
	return category + "/" + pkg, nil
}
