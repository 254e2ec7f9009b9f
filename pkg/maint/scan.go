package maint

import (
	"context"

	"github.com/portmaint/portmaint/pkg/metadata"
)

// TreeReport summarizes the classification of every package in a tree.
// Proxied keeps the full metadata records so contacts can be resolved and
// grouped without re-reading the tree; the other buckets only need atoms.
type TreeReport struct {
	Total    int                 `json:"total"`
	Official int                 `json:"official"`
	Orphans  []string            `json:"orphans"`
	Proxied  []*metadata.Package `json:"proxied"`
}

// ScanTree reads every package metadata.xml under root and classifies it.
// The walk is sequential and honors ctx between packages, so a cancelled
// scan stops at the next package boundary.
func (p Policy) ScanTree(ctx context.Context, root string) (*TreeReport, error) {
	report := &TreeReport{}

	err := metadata.Walk(root, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		pkg, err := metadata.ReadPackage(path)
		if err != nil {
			return err
		}
		report.Total++

		status, err := p.Classify(pkg)
		if err != nil {
			return err
		}
		switch status {
		case OfficiallyMaintained:
			report.Official++
		case Orphaned:
			report.Orphans = append(report.Orphans, pkg.Atom)
		case ProxyMaintained:
			report.Proxied = append(report.Proxied, pkg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// Groups resolves and groups the proxy contacts of the report's
// proxy-maintained packages.
func (r *TreeReport) Groups(p Policy) (Report, error) {
	return p.GroupByContact(r.Proxied)
}
