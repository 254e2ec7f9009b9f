package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/portmaint/portmaint/pkg/errors"
	"github.com/portmaint/portmaint/pkg/portscan"
)

// portOpts holds the command-line flags for the port command.
type portOpts struct {
	timeout time.Duration // per-probe connect timeout
	delay   time.Duration // pause between probes
	list    bool          // print known service names and exit
	verbose bool          // show local/remote endpoints and failure reasons
}

// portCommand creates the port command probing TCP services on a host.
func (c *CLI) portCommand() *cobra.Command {
	opts := portOpts{timeout: portscan.DefaultTimeout}

	cmd := &cobra.Command{
		Use:   "port <host>[:<ports>] [ports]",
		Short: "Test TCP connectivity to a host",
		Long: `Test TCP connectivity to a host.

Ports are probed one at a time. A port specification is a number, an
inclusive range (6881-6889), a service name (ssh, https), the keyword all
for every known service, or a comma-separated mix. Without a specification
every known port is probed.

Examples:
  portmaint port router.local:22
  portmaint port example.com 80,443
  portmaint port example.com 6881-6889 --delay 500ms
  portmaint port --list`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				for _, name := range portscan.KnownServices() {
					fmt.Println(name)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New(errors.ErrCodeInvalidTarget, "host argument required")
			}

			host, spec, err := splitTarget(args)
			if err != nil {
				return err
			}

			ports, err := portscan.ResolveSpec(spec)
			if err != nil {
				return err
			}

			return c.runScan(cmd, &opts, host, ports)
		},
	}

	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", opts.timeout, "connect timeout per port")
	cmd.Flags().DurationVarP(&opts.delay, "delay", "d", 0, "pause between probes")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list known service names")
	cmd.Flags().BoolVar(&opts.verbose, "show-endpoints", false, "show endpoints and failure reasons")

	return cmd
}

// splitTarget extracts host and port specification from the arguments,
// accepting both "host:ports" and "host ports" forms.
func splitTarget(args []string) (host, spec string, err error) {
	if strings.Contains(args[0], ":") {
		if len(args) > 1 {
			return "", "", errors.New(errors.ErrCodeInvalidTarget,
				"give ports either as host:ports or as a second argument, not both")
		}
		if err := errors.ValidateTarget(args[0]); err != nil {
			return "", "", err
		}
		host, spec, _ = strings.Cut(args[0], ":")
		return host, spec, nil
	}

	host = args[0]
	if host == "" {
		return "", "", errors.New(errors.ErrCodeInvalidTarget, "target hostname cannot be empty")
	}
	spec = "all"
	if len(args) == 2 {
		spec = args[1]
	}
	return host, spec, nil
}

func (c *CLI) runScan(cmd *cobra.Command, opts *portOpts, host string, ports []int) error {
	c.Logger.Infof("Probing %d ports on %s", len(ports), host)

	scanner := portscan.NewScanner(opts.timeout, opts.delay)

	open, closed := 0, 0
	err := scanner.Scan(cmd.Context(), host, ports, func(p portscan.Probe) {
		label := fmt.Sprintf("%d/tcp", p.Port)
		if p.Service != "" {
			label += " (" + p.Service + ")"
		}

		if p.Open {
			open++
			printSuccess("%s open", label)
			if opts.verbose {
				printDetail("%s %s %s", p.LocalAddr, iconArrow, p.RemoteAddr)
			}
		} else {
			closed++
			printError("%s closed", label)
			if opts.verbose {
				printDetail("%s", p.Reason)
			}
		}
	})
	if err != nil {
		return err
	}

	printNewline()
	printInfo("%d open, %d closed", open, closed)
	return nil
}
