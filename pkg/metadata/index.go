package metadata

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Index is the set of all category/package atoms known to a tree. It is
// built once by the caller and passed by reference into consumers that need
// membership checks (such as bug-summary atom matching), rather than being
// hidden behind package-level state.
type Index struct {
	atoms map[string]struct{}
}

// nonCategoryDirs are top-level tree directories that never hold packages.
var nonCategoryDirs = map[string]struct{}{
	"distfiles": {},
	"eclass":    {},
	"licenses":  {},
	"metadata":  {},
	"packages":  {},
	"profiles":  {},
	"scripts":   {},
}

// NewIndex creates an index from a list of atoms.
func NewIndex(atoms []string) *Index {
	idx := &Index{atoms: make(map[string]struct{}, len(atoms))}
	for _, atom := range atoms {
		idx.atoms[atom] = struct{}{}
	}
	return idx
}

// BuildIndex scans the tree's directory layout and records every
// category/package pair. It reads directory names only, no file contents,
// so it is much cheaper than a metadata scan.
func BuildIndex(root string) (*Index, error) {
	idx := &Index{atoms: make(map[string]struct{})}

	categories, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}
		name := cat.Name()
		if _, skip := nonCategoryDirs[name]; skip {
			continue
		}
		if name[0] == '.' {
			continue
		}

		pkgs, err := os.ReadDir(filepath.Join(root, name))
		if err != nil {
			// Unreadable category - skip rather than abort the index
			if _, ok := err.(*fs.PathError); ok {
				continue
			}
			return nil, err
		}
		for _, pkg := range pkgs {
			if pkg.IsDir() && pkg.Name()[0] != '.' {
				idx.atoms[name+"/"+pkg.Name()] = struct{}{}
			}
		}
	}

	return idx, nil
}

// Contains reports whether the atom names a known package.
func (i *Index) Contains(atom string) bool {
	_, ok := i.atoms[atom]
	return ok
}

// Len returns the number of known atoms.
func (i *Index) Len() int {
	return len(i.atoms)
}

// Atoms returns all known atoms, sorted.
func (i *Index) Atoms() []string {
	atoms := make([]string, 0, len(i.atoms))
	for atom := range i.atoms {
		atoms = append(atoms, atom)
	}
	sort.Strings(atoms)
	return atoms
}

// MarshalJSON encodes the index as a sorted atom list, for caching.
func (i *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Atoms())
}

// UnmarshalJSON decodes an index from an atom list.
func (i *Index) UnmarshalJSON(data []byte) error {
	var atoms []string
	if err := json.Unmarshal(data, &atoms); err != nil {
		return err
	}
	i.atoms = make(map[string]struct{}, len(atoms))
	for _, atom := range atoms {
		i.atoms[atom] = struct{}{}
	}
	return nil
}
