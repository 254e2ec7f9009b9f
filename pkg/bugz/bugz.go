// Package bugz consumes the output of the bugzilla CLI (pybugz) and turns
// unassigned bugs into assignment suggestions.
//
// The bugz command itself stays an external collaborator: this package
// parses its column output and matches bug summaries against the package
// tree, it never talks to bugzilla directly.
package bugz

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/portmaint/portmaint/pkg/errors"
)

// Bug is one row of `bugz search` output.
type Bug struct {
	ID       string `json:"id"`
	Assignee string `json:"assignee"`
	Summary  string `json:"summary"`
}

// DefaultSearchArgs reproduce the wrangler queue search the original tool
// hardcoded: unassigned bugs in any open state, with summaries wide enough
// to carry a full atom.
var DefaultSearchArgs = []string{
	"--columns", "500", "search",
	"-a", "bug-wranglers@gentoo.org",
	"-s", "CONFIRMED", "-s", "IN_PROGRESS", "-s", "UNCONFIRMED",
}

// bugLine matches "<id> <assignee> <summary>" rows; anything else in the
// output (headers, separators) is skipped.
var bugLine = regexp.MustCompile(`^(\d+) (\S+) *(.*)`)

// ParseBugList extracts bugs from raw bugz output. Lines that do not start
// with a bug number are ignored.
func ParseBugList(output []byte) []Bug {
	var bugs []Bug
	for _, line := range bytes.Split(output, []byte("\n")) {
		match := bugLine.FindStringSubmatch(string(line))
		if match == nil {
			continue
		}
		bugs = append(bugs, Bug{
			ID:       match[1],
			Assignee: match[2],
			Summary:  strings.TrimSpace(match[3]),
		})
	}
	return bugs
}

// Runner produces raw bugz search output. The interface exists so tests and
// offline runs can substitute canned output for the real subprocess.
type Runner interface {
	Search(ctx context.Context) ([]byte, error)
}

// ExecRunner shells out to the bugz executable.
type ExecRunner struct {
	Command string   // executable name, default "bugz"
	Args    []string // search arguments, default DefaultSearchArgs
}

// NewExecRunner creates a runner for the given executable. Empty arguments
// select the defaults.
func NewExecRunner(command string, args []string) *ExecRunner {
	if command == "" {
		command = "bugz"
	}
	if len(args) == 0 {
		args = DefaultSearchArgs
	}
	return &ExecRunner{Command: command, Args: args}
}

// Search runs the bugz search and returns its stdout.
func (r *ExecRunner) Search(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBugzFailed, err,
			"running %s %s", r.Command, strings.Join(r.Args, " "))
	}
	return output, nil
}
