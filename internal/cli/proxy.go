package cli

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/portmaint/portmaint/pkg/maint"
)

// proxyOpts holds the flags shared by the proxy subcommands.
type proxyOpts struct {
	portdir string // tree root override
	refresh bool   // ignore cached scans
	noCache bool   // disable the scan cache entirely
	jsonOut bool   // machine-readable output
}

// proxyCommand creates the proxy command with its report subcommands.
func (c *CLI) proxyCommand() *cobra.Command {
	opts := proxyOpts{}

	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Report on proxy-maintained and orphaned packages",
		Long: `Report on proxy-maintained and orphaned packages.

The tree is scanned once and the result cached; use --refresh to force a
new scan after metadata changes.

Examples:
  portmaint proxy local                  # proxy-maintained packages
  portmaint proxy users                  # packages grouped by proxy contact
  portmaint proxy users --interactive    # browse contacts in a TUI
  portmaint proxy orphans --json         # orphaned packages as JSON`,
	}

	cmd.PersistentFlags().StringVarP(&opts.portdir, "portdir", "p", "", "portage tree root (default from config)")
	cmd.PersistentFlags().BoolVar(&opts.refresh, "refresh", false, "ignore cached scan results")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable the scan cache")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")

	cmd.AddCommand(c.proxyLocalCommand(&opts))
	cmd.AddCommand(c.proxyUsersCommand(&opts))
	cmd.AddCommand(c.proxyOrphansCommand(&opts))

	return cmd
}

// scanForProxy runs (or loads) the tree scan the proxy subcommands share.
func (c *CLI) scanForProxy(cmd *cobra.Command, opts *proxyOpts) (*maint.TreeReport, error) {
	ctx := cmd.Context()

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	root := c.portDir(opts.portdir)
	prog := newProgress(c.Logger)

	spin := newSpinner(ctx, "Scanning "+root)
	spin.Start()
	report, cached, err := c.loadTreeReport(ctx, store, root, opts.refresh)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	if !cached {
		prog.done(fmt.Sprintf("Scanned %d packages", report.Total))
	}

	if !opts.jsonOut {
		printScanStats(report.Total, report.Official, len(report.Proxied), len(report.Orphans), cached)
		printNewline()
	}
	return report, nil
}

// proxyLocalCommand creates the "proxy local" subcommand listing every
// proxy-maintained package with its maintainer entries.
func (c *CLI) proxyLocalCommand(opts *proxyOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "local",
		Short: "List proxy-maintained packages in the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.scanForProxy(cmd, opts)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return writeJSON(report.Proxied)
			}

			for _, pkg := range report.Proxied {
				printAtom(pkg.Atom)
				for _, m := range pkg.Maintainers {
					printContact(m.Email, m.Name, m.Description)
				}
				printNewline()
			}
			printInfo("%d proxy-maintained packages", len(report.Proxied))
			return nil
		},
	}
}

// proxyUsersCommand creates the "proxy users" subcommand grouping packages
// by their resolved proxy contact.
func (c *CLI) proxyUsersCommand(opts *proxyOpts) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Group proxy-maintained packages by contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.scanForProxy(cmd, opts)
			if err != nil {
				return err
			}

			groups, err := report.Groups(c.Config.MaintPolicy())
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return writeJSON(groups)
			}
			if interactive {
				_, err := tea.NewProgram(NewGroupListModel(groups)).Run()
				return err
			}

			for _, g := range groups {
				printContact(g.Contact.Email, g.Contact.Name, g.Contact.Description)
				for _, atom := range g.Atoms {
					printDetail("%s", atom)
				}
				printNewline()
			}
			printInfo("%d proxy contacts", len(groups))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse contacts interactively")
	return cmd
}

// proxyOrphansCommand creates the "proxy orphans" subcommand listing
// packages with no effective maintainer.
func (c *CLI) proxyOrphansCommand(opts *proxyOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List orphaned packages in the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.scanForProxy(cmd, opts)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return writeJSON(report.Orphans)
			}

			for _, atom := range report.Orphans {
				printAtom(atom)
			}
			printNewline()
			printInfo("%d orphaned packages", len(report.Orphans))
			return nil
		},
	}
}

// writeJSON prints v to stdout as indented JSON.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
