// Package metadata reads Gentoo package metadata.xml files and provides the
// package model consumed by the maintainer classifier.
//
// A metadata.xml lives at <tree>/<category>/<package>/metadata.xml; the
// package atom is derived from those two path segments. Maintainer entries
// must carry an email address - entries without one are rejected at parse
// time rather than skipped, since a silently dropped maintainer would
// corrupt classification downstream.
package metadata

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/portmaint/portmaint/pkg/errors"
)

// Maintainer is one <maintainer> entry from metadata.xml.
type Maintainer struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Package is the parsed metadata record for one category/package directory.
// Herds and Maintainers preserve document order. A Package is never mutated
// after construction.
type Package struct {
	Atom        string       `json:"atom"`
	Herds       []string     `json:"herds,omitempty"`
	Maintainers []Maintainer `json:"maintainers,omitempty"`
}

// String returns the package atom.
func (p *Package) String() string {
	return p.Atom
}

// xmlMetadata mirrors the subset of the pkgmetadata DTD the tools read.
type xmlMetadata struct {
	XMLName     xml.Name        `xml:"pkgmetadata"`
	Herds       []string        `xml:"herd"`
	Maintainers []xmlMaintainer `xml:"maintainer"`
}

type xmlMaintainer struct {
	Email       string `xml:"email"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
}

// AtomFromPath derives the category/package atom from a metadata.xml path.
func AtomFromPath(path string) string {
	pkgDir := filepath.Dir(path)
	return filepath.Base(filepath.Dir(pkgDir)) + "/" + filepath.Base(pkgDir)
}

// ReadPackage parses one metadata.xml into a Package.
func ReadPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMetadataNotFound, err, "read %s", path)
	}
	return ParsePackage(AtomFromPath(path), data)
}

// ParsePackage parses raw metadata.xml content for the given atom.
func ParsePackage(atom string, data []byte) (*Package, error) {
	var meta xmlMetadata
	if err := xml.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse metadata for %s", atom)
	}

	pkg := &Package{Atom: atom}

	for _, herd := range meta.Herds {
		if herd = strings.TrimSpace(herd); herd != "" {
			pkg.Herds = append(pkg.Herds, herd)
		}
	}

	for _, m := range meta.Maintainers {
		email := strings.TrimSpace(m.Email)
		if email == "" {
			return nil, errors.New(errors.ErrCodeInvalidMaintainer,
				"maintainer without email in metadata for %s", atom)
		}
		pkg.Maintainers = append(pkg.Maintainers, Maintainer{
			Email:       email,
			Name:        strings.TrimSpace(m.Name),
			Description: collapseWhitespace(m.Description),
		})
	}

	return pkg, nil
}

// collapseWhitespace flattens newlines and surrounding indentation in
// free-text descriptions to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
