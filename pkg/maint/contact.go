package maint

import (
	"github.com/portmaint/portmaint/pkg/metadata"
)

// ResolveProxyContact selects the single maintainer to surface as the
// package's proxy contact in reports.
//
// The maintainer list is scanned once, front to back, with two candidate
// slots updated independently: the last maintainer whose address is an
// "unmaintained" sentinel, and the last maintainer whose address is outside
// the organization domain (a true proxy). The proxy slot takes priority when
// both matched. When neither matched (every entry is an ordinary internal
// maintainer) the first maintainer is returned, and a package with no
// maintainers at all yields a synthetic contact carrying the policy's
// no-maintainer address.
//
// The last-match-wins ordering is deliberate: it determines which contact is
// surfaced when several maintainers are listed, and must not be collapsed
// into a single combined condition.
func (p Policy) ResolveProxyContact(pkg *metadata.Package) (metadata.Maintainer, error) {
	if err := checkMaintainers(pkg); err != nil {
		return metadata.Maintainer{}, err
	}

	if len(pkg.Maintainers) == 0 {
		return metadata.Maintainer{Email: p.NoMaintainer}, nil
	}

	var sentinel, proxy *metadata.Maintainer
	for i := range pkg.Maintainers {
		m := &pkg.Maintainers[i]
		if p.IsSentinel(m.Email) {
			sentinel = m
		}
		if !p.IsInternal(m.Email) {
			proxy = m
		}
	}

	switch {
	case proxy != nil:
		return *proxy, nil
	case sentinel != nil:
		return *sentinel, nil
	default:
		return pkg.Maintainers[0], nil
	}
}
