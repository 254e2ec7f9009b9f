// Package pkg provides the core libraries behind the portmaint tool.
//
// # Overview
//
// Portmaint answers one question about a Portage tree: who maintains what.
// The pkg directory splits that into small, independently testable pieces:
//
//   - [metadata] - metadata.xml parsing, tree walking, known-atoms index
//   - [maint] - maintainer classification, proxy contact resolution, grouping
//   - [atom] - package atom grammar (category/name, versions, operators)
//   - [bugz] - bug tracker search parsing and assignee suggestions
//   - [ebuild] - FILESDIR reference auditing for ebuild directories
//   - [portscan] - sequential TCP connect testing with named ports
//   - [cache] - file, redis and null backends for scan results
//   - [errors] - structured error codes and input validation
//   - [observability] - optional hooks for metrics and tracing
//   - [buildinfo] - version information injected at build time
//
// # Data Flow
//
// The typical flow through a maintainer report:
//
//	Portage tree
//	     ↓
//	[metadata] package (walk + parse metadata.xml)
//	     ↓
//	[maint] package (classify, resolve proxy contacts, group)
//	     ↓
//	text / JSON / HTTP report
//
// Classification is a pure function of a package's herds and maintainer
// list evaluated against a [maint.Policy]; everything stateful (caching,
// I/O, presentation) lives outside pkg/maint.
//
// # Quick Start
//
// Classify every package in a tree and group the proxy-maintained ones by
// contact:
//
//	policy := maint.DefaultPolicy()
//	report, err := policy.ScanTree(ctx, "/usr/portage")
//	if err != nil {
//	    return err
//	}
//	groups, err := report.Groups(policy)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/maint/...     # Specific package
//
// [metadata]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/metadata
// [maint]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/maint
// [atom]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/atom
// [bugz]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/bugz
// [ebuild]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/ebuild
// [portscan]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/portscan
// [cache]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/cache
// [errors]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/errors
// [observability]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/portmaint/portmaint/pkg/buildinfo
package pkg
