package bugz

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/portmaint/portmaint/pkg/atom"
	"github.com/portmaint/portmaint/pkg/errors"
	"github.com/portmaint/portmaint/pkg/metadata"
)

// DefaultBugURL is the bug-tracker URL prefix suggestions link to.
const DefaultBugURL = "https://bugs.gentoo.org/"

// MaintainerNeeded is the assignee used when a package lists no maintainers.
const MaintainerNeeded = "maintainer-needed@gentoo.org"

// summaryAtom finds the first thing in a bug summary that looks like a
// package atom.
var summaryAtom = regexp.MustCompile(`(\w+-\w+/\S+)`)

// Suggestion is one triaged bug with its resolved package and contacts.
type Suggestion struct {
	Bug         Bug      `json:"bug"`
	Atom        string   `json:"atom"`
	Maintainers []string `json:"maintainers"` // first entry is the suggested assignee
	URL         string   `json:"url"`
	Command     string   `json:"command"` // ready-to-run bugz modify line
}

// Assignee returns the suggested assignee address.
func (s Suggestion) Assignee() string {
	return s.Maintainers[0]
}

// CC returns the remaining maintainer addresses.
func (s Suggestion) CC() []string {
	return s.Maintainers[1:]
}

// Suggester matches bug summaries to packages and their maintainers. The
// known-atoms index is built once by the caller and injected here; the
// suggester never scans the tree on its own.
type Suggester struct {
	index  *metadata.Index
	root   string
	bugURL string
}

// NewSuggester creates a suggester for the tree at root using the given
// index of known atoms.
func NewSuggester(index *metadata.Index, root string) *Suggester {
	return &Suggester{index: index, root: root, bugURL: DefaultBugURL}
}

// FindAtom searches a bug summary for a known package atom. The match is
// cleaned (trailing colon stripped), validated as atom syntax - retrying
// with a version-relation prefix for bare versioned spellings like
// "foo/bar-1.2.3" - reduced to category/name, and finally checked against
// the index. Returns false when nothing in the summary names a known
// package.
func (s *Suggester) FindAtom(summary string) (string, bool) {
	match := summaryAtom.FindString(summary)
	if match == "" {
		return "", false
	}
	match = strings.TrimSuffix(match, ":")

	if !atom.IsValid(match) && !atom.IsValid("="+match) {
		return "", false
	}

	cp := match
	if !atom.IsJustName(match) {
		reduced, err := atom.CP(match)
		if err != nil {
			return "", false
		}
		cp = reduced
	}

	if !s.index.Contains(cp) {
		return "", false
	}
	return cp, true
}

// Maintainers returns the maintainer addresses for a known atom, in
// metadata document order. A package without maintainers yields the
// maintainer-needed placeholder so the bug still gets an assignee.
func (s *Suggester) Maintainers(cp string) ([]string, error) {
	path := filepath.Join(s.root, cp, "metadata.xml")
	pkg, err := metadata.ReadPackage(path)
	if err != nil {
		return nil, err
	}

	if len(pkg.Maintainers) == 0 {
		return []string{MaintainerNeeded}, nil
	}

	addresses := make([]string, 0, len(pkg.Maintainers))
	for _, m := range pkg.Maintainers {
		addresses = append(addresses, m.Email)
	}
	return addresses, nil
}

// Suggest triages the given bugs. Bugs whose summary names no known package
// are counted as unmatched; when address is non-empty, suggestions whose
// maintainer list does not include it are dropped.
func (s *Suggester) Suggest(bugs []Bug, address string) ([]Suggestion, int, error) {
	if address != "" {
		if err := errors.ValidateAddress(address); err != nil {
			return nil, 0, err
		}
	}

	var suggestions []Suggestion
	unmatched := 0

	for _, bug := range bugs {
		cp, ok := s.FindAtom(bug.Summary)
		if !ok {
			unmatched++
			continue
		}

		maintainers, err := s.Maintainers(cp)
		if err != nil {
			return nil, 0, err
		}

		if address != "" && !contains(maintainers, address) {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			Bug:         bug,
			Atom:        cp,
			Maintainers: maintainers,
			URL:         s.bugURL + bug.ID,
			Command:     modifyCommand(bug.ID, maintainers),
		})
	}

	return suggestions, unmatched, nil
}

// modifyCommand builds the bugz invocation that applies the suggestion.
func modifyCommand(id string, maintainers []string) string {
	if len(maintainers) == 1 {
		return fmt.Sprintf("bugz modify -a %s %s", maintainers[0], id)
	}
	return fmt.Sprintf("bugz modify -a %s --add-cc %s %s",
		maintainers[0], strings.Join(maintainers[1:], " --add-cc "), id)
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
