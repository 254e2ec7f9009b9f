// Package maint classifies packages by maintainer status.
//
// A package is either officially maintained (by core developers),
// proxy-maintained (by an outside contributor with developer oversight), or
// orphaned (no effective maintainer). Classification depends only on the
// package's herd tags and maintainer list, evaluated against a Policy that
// names the organization domain, the proxy herd tag, and the sentinel
// addresses meaning "nobody maintains this".
//
// Classification is a pure function of its input: nothing is mutated and
// there is no hidden state.
package maint

import (
	"strings"

	"github.com/portmaint/portmaint/pkg/errors"
	"github.com/portmaint/portmaint/pkg/metadata"
)

// Status is the maintainer classification of a package.
type Status int

const (
	// OfficiallyMaintained packages are owned by core developers (or by
	// more than one herd).
	OfficiallyMaintained Status = iota

	// Orphaned packages have no effective maintainer: only sentinel
	// entries, or none at all.
	Orphaned

	// ProxyMaintained packages have at least one maintainer outside the
	// organization domain.
	ProxyMaintained
)

// String returns the human-readable status name.
func (s Status) String() string {
	switch s {
	case OfficiallyMaintained:
		return "officially-maintained"
	case Orphaned:
		return "orphaned"
	case ProxyMaintained:
		return "proxy-maintained"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Policy holds the organization-specific inputs of classification.
// A Policy is constructed once by the caller and passed by value; it carries
// no mutable state.
type Policy struct {
	// Domain is the organization domain substring. Any maintainer address
	// containing it is internal; any other address is an external (proxy)
	// maintainer.
	Domain string

	// ProxyHerd is the herd tag marking packages maintained by outside
	// contributors under developer supervision.
	ProxyHerd string

	// Unmaintained lists sentinel addresses meaning "explicitly no
	// maintainer assigned".
	Unmaintained []string

	// NoMaintainer is the synthetic contact address reported for packages
	// with an empty maintainer list.
	NoMaintainer string
}

// DefaultPolicy returns the Gentoo policy the original tools hardcoded.
func DefaultPolicy() Policy {
	return Policy{
		Domain:       "gentoo.org",
		ProxyHerd:    "proxy-maintainers",
		Unmaintained: []string{"", "NO MAINTAINER", "maintainer-needed@gentoo.org"},
		NoMaintainer: "NO MAINTAINER",
	}
}

// IsInternal reports whether the address belongs to the organization.
func (p Policy) IsInternal(email string) bool {
	return strings.Contains(email, p.Domain)
}

// IsSentinel reports whether the address is an "unmaintained" placeholder.
func (p Policy) IsSentinel(email string) bool {
	for _, addr := range p.Unmaintained {
		if email == addr {
			return true
		}
	}
	return false
}

// checkMaintainers enforces the reader contract: every maintainer carries a
// non-empty email. A violation is a caller bug and fails fast rather than
// being skipped, since a dropped record would corrupt the classification.
func checkMaintainers(pkg *metadata.Package) error {
	for _, m := range pkg.Maintainers {
		if m.Email == "" {
			return errors.New(errors.ErrCodeInvalidMaintainer,
				"maintainer without email for %s", pkg.Atom)
		}
	}
	return nil
}

// Classify decides the maintainer status of pkg. The rules are evaluated in
// precedence order, first match wins:
//
//  1. Officially maintained: more than one herd; or a non-empty herd list
//     that lacks the proxy herd tag; or at least one non-sentinel
//     maintainer with every non-sentinel maintainer internal.
//  2. Orphaned: every maintainer is a sentinel entry (or there are none at
//     all), and any herds present are exactly the proxy herd tag.
//  3. Proxy-maintained: the residual case - some maintainer has an
//     external, non-sentinel address.
//
// The input is not mutated. The only error condition is a maintainer record
// without an email, which is a contract violation by the metadata reader.
func (p Policy) Classify(pkg *metadata.Package) (Status, error) {
	if err := checkMaintainers(pkg); err != nil {
		return OfficiallyMaintained, err
	}

	if p.officiallyMaintained(pkg) {
		return OfficiallyMaintained, nil
	}
	if p.orphaned(pkg) {
		return Orphaned, nil
	}
	return ProxyMaintained, nil
}

func (p Policy) officiallyMaintained(pkg *metadata.Package) bool {
	if len(pkg.Herds) > 1 {
		return true
	}
	if len(pkg.Herds) > 0 && !p.hasProxyHerd(pkg.Herds) {
		return true
	}

	// All genuine maintainers internal means no proxy is involved.
	// Sentinel entries do not count as maintainers here; a package whose
	// only entry is the maintainer-needed placeholder is not "maintained
	// by core developers", it is a candidate orphan.
	real := 0
	for _, m := range pkg.Maintainers {
		if p.IsSentinel(m.Email) {
			continue
		}
		if !p.IsInternal(m.Email) {
			return false
		}
		real++
	}
	return real > 0
}

func (p Policy) orphaned(pkg *metadata.Package) bool {
	for _, m := range pkg.Maintainers {
		if !p.IsInternal(m.Email) {
			// External addresses disqualify orphan status even when
			// they match a sentinel spelling; sentinels are internal
			// placeholders.
			return false
		}
		if !p.IsSentinel(m.Email) {
			return false
		}
	}

	// The whole herd list is scanned even though, under the precedence
	// rules, only an exact [ProxyHerd] list can reach this point.
	for _, herd := range pkg.Herds {
		if herd != p.ProxyHerd {
			return false
		}
	}
	return true
}

func (p Policy) hasProxyHerd(herds []string) bool {
	for _, herd := range herds {
		if herd == p.ProxyHerd {
			return true
		}
	}
	return false
}
