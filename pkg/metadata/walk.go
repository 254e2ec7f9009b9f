package metadata

import (
	"io/fs"
	"path/filepath"

	"github.com/portmaint/portmaint/pkg/errors"
)

// Walk streams the path of every package-level metadata.xml under root, in
// lexical order, calling fn for each. Category-level metadata files (for
// example sys-apps/metadata.xml) are skipped: a package metadata.xml always
// sits two levels below the tree root.
//
// Walk stops and returns the first error fn returns.
func Walk(root string, fn func(path string) error) error {
	if err := errors.ValidateTreePath(root); err != nil {
		return err
	}

	root = filepath.Clean(root)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "metadata.xml" {
			return nil
		}
		// Keep only <root>/<category>/<package>/metadata.xml.
		catDir := filepath.Dir(filepath.Dir(path))
		if catDir == root || filepath.Dir(catDir) != root {
			return nil
		}
		return fn(path)
	})
	if err != nil {
		return err
	}
	return nil
}

// ReadTree walks root and parses every package metadata.xml it finds.
func ReadTree(root string) ([]*Package, error) {
	var packages []*Package
	err := Walk(root, func(path string) error {
		pkg, err := ReadPackage(path)
		if err != nil {
			return err
		}
		packages = append(packages, pkg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return packages, nil
}
