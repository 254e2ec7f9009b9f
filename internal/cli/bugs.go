package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/portmaint/portmaint/pkg/bugz"
	"github.com/portmaint/portmaint/pkg/cache"
	"github.com/portmaint/portmaint/pkg/metadata"
	"github.com/portmaint/portmaint/pkg/observability"
)

// bugsOpts holds the command-line flags for the bugs command.
type bugsOpts struct {
	portdir string // tree root override
	address string // only suggest bugs whose package lists this maintainer
	refresh bool   // rebuild the atom index
	noCache bool   // disable the index cache
	jsonOut bool   // machine-readable output
}

// bugsCommand creates the bugs command. It searches the bug tracker for
// unassigned bugs, matches each summary against the packages in the tree and
// prints a ready-to-run reassignment command per match.
func (c *CLI) bugsCommand() *cobra.Command {
	opts := bugsOpts{}

	cmd := &cobra.Command{
		Use:   "bugs",
		Short: "Suggest assignees for unassigned bugs",
		Long: `Suggest assignees for unassigned bugs.

The external bugz client is used to search for bugs still assigned to the
bug wranglers. Each bug summary is matched against the package atoms in the
tree; for matched bugs the package's maintainers become the suggested
assignee and CC list, and a bugz modify command is printed.

Examples:
  portmaint bugs
  portmaint bugs --address larry@gentoo.org
  portmaint bugs --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBugs(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.portdir, "portdir", "p", "", "portage tree root (default from config)")
	cmd.Flags().StringVarP(&opts.address, "address", "a", "", "only show bugs for packages this maintainer is listed on")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild the package index")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the index cache")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print suggestions as JSON")

	return cmd
}

func (c *CLI) runBugs(ctx context.Context, opts *bugsOpts) error {
	root := c.portDir(opts.portdir)

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	index, err := c.loadIndex(ctx, store, root, opts.refresh)
	if err != nil {
		return err
	}
	c.Logger.Debugf("index holds %d atoms", index.Len())

	runner := bugz.NewExecRunner(c.Config.Bugz.Command, c.Config.Bugz.Args)

	observability.Bugz().OnSearchStart(ctx, runner.Command)
	start := time.Now()
	spin := newSpinner(ctx, "Searching for unassigned bugs")
	spin.Start()
	output, err := runner.Search(ctx)
	spin.Stop()
	if err != nil {
		observability.Bugz().OnSearchComplete(ctx, runner.Command, 0, time.Since(start), err)
		return err
	}

	bugs := bugz.ParseBugList(output)
	observability.Bugz().OnSearchComplete(ctx, runner.Command, len(bugs), time.Since(start), nil)
	if len(bugs) == 0 {
		printInfo("No unassigned bugs found")
		return nil
	}

	suggester := bugz.NewSuggester(index, root)
	suggestions, unmatched, err := suggester.Suggest(bugs, opts.address)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return writeJSON(suggestions)
	}

	for _, s := range suggestions {
		printAtom(s.Atom)
		printDetail("%s", s.Bug.Summary)
		fmt.Println("  " + StyleLink.Render(s.URL))
		printCommand(s.Command)
		printNewline()
	}

	printInfo("%d of %d bugs matched a package", len(suggestions), len(bugs))
	if unmatched > 0 {
		printDetail("%d summaries named no known package", unmatched)
	}
	return nil
}

// loadIndex returns the known-atoms index for root, building and caching it
// when no fresh copy exists.
func (c *CLI) loadIndex(ctx context.Context, store cache.Cache, root string, refresh bool) (*metadata.Index, error) {
	key := cache.IndexKey(root)

	if !refresh {
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			var index metadata.Index
			if json.Unmarshal(data, &index) == nil {
				return &index, nil
			}
		}
	}

	index, err := metadata.BuildIndex(root)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(index); err == nil {
		if err := store.Set(ctx, key, data, scanTTL); err != nil {
			c.Logger.Debugf("cache write failed: %v", err)
		}
	}
	return index, nil
}
