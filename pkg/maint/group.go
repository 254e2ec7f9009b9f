package maint

import (
	"sort"

	"github.com/portmaint/portmaint/pkg/metadata"
)

// Group collects the packages one contact is responsible for.
type Group struct {
	Contact metadata.Maintainer `json:"contact"`
	Atoms   []string            `json:"atoms"`
}

// Report is a list of groups ordered lexicographically by contact email.
type Report []Group

// GroupByContact resolves each package's proxy contact and groups the
// package atoms by contact email. Emails are compared case-sensitively as
// plain strings. Atoms within a group and groups within the report are
// sorted, so the result is deterministic regardless of input order.
//
// The first package resolved for a contact supplies the display name and
// description kept for the group.
func (p Policy) GroupByContact(pkgs []*metadata.Package) (Report, error) {
	byEmail := make(map[string]*Group)

	for _, pkg := range pkgs {
		contact, err := p.ResolveProxyContact(pkg)
		if err != nil {
			return nil, err
		}

		group, ok := byEmail[contact.Email]
		if !ok {
			group = &Group{Contact: contact}
			byEmail[contact.Email] = group
		}
		group.Atoms = append(group.Atoms, pkg.Atom)
	}

	report := make(Report, 0, len(byEmail))
	for _, group := range byEmail {
		sort.Strings(group.Atoms)
		report = append(report, *group)
	}
	sort.Slice(report, func(i, j int) bool {
		return report[i].Contact.Email < report[j].Contact.Email
	})

	return report, nil
}
