package cli

import (
	"github.com/spf13/cobra"

	"github.com/portmaint/portmaint/pkg/ebuild"
)

// filesCommand creates the files command auditing FILESDIR references of an
// ebuild directory.
func (c *CLI) filesCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "files [dir]",
		Short: "Audit FILESDIR references in an ebuild directory",
		Long: `Audit FILESDIR references in an ebuild directory.

Every ${FILESDIR} reference in the directory's ebuilds is resolved against
the files/ subdirectory: references to missing files are flagged, and files
no ebuild references anymore are listed as unused. With no argument the
current directory is audited.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			result, err := ebuild.Check(dir)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(result)
			}

			for _, p := range result.Packages {
				printAtom(p)
				for _, f := range result.Required[p] {
					printFileStatus(f.Path, f.Found)
				}
				printNewline()
			}

			if result.NoFilesDir {
				printWarning("files/ directory does not exist")
			}
			for _, line := range result.Unparseable {
				printWarning("could not parse reference: %s", line)
			}
			for _, path := range result.Unused {
				printWarning("unused: %s", path)
			}

			if result.Missing == 0 {
				printSuccess("All referenced files present")
			} else {
				printError("%d referenced files missing", result.Missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the audit as JSON")
	return cmd
}
