// Package portscan implements sequential TCP connect tests against a remote
// host, with a table of well-known ports addressable by protocol name.
package portscan

import (
	"sort"
	"strconv"
	"strings"

	"github.com/portmaint/portmaint/pkg/errors"
)

// KnownPorts maps common port numbers to their protocol aliases. The first
// alias is the display name.
var KnownPorts = map[int][]string{
	7:    {"echo"},
	20:   {"ftp"},
	21:   {"ftp"},
	22:   {"ssh", "scp"},
	23:   {"telnet"},
	25:   {"smtp"},
	53:   {"dns"},
	67:   {"dhcp", "bootp"},
	68:   {"dhcp", "bootp"},
	80:   {"http"},
	88:   {"kerberos", "krb"},
	110:  {"pop3"},
	123:  {"ntp", "time"},
	143:  {"imap", "imap4"},
	389:  {"ldap"},
	443:  {"https"},
	464:  {"kerberos", "krb"},
	465:  {"smtps"},
	500:  {"isakmp"},
	515:  {"lpd", "lpr"},
	587:  {"smtps", "tls"},
	631:  {"cupsd"},
	636:  {"ldaps"},
	989:  {"ftps"},
	990:  {"ftps"},
	993:  {"imaps", "imap4s"},
	995:  {"pops", "pop3s"},
	1194: {"ovpn", "openvpn"},
	1701: {"l2tp"},
	1723: {"pptp"},
	2049: {"nfs"},
	2483: {"ora"},
	2484: {"ora"},
	3389: {"rdp", "ts"},
	5900: {"vnc"},
	8080: {"http", "proxy"},
}

// ServiceName returns the display name for a known port, or "".
func ServiceName(port int) string {
	if aliases, ok := KnownPorts[port]; ok {
		return aliases[0]
	}
	return ""
}

// KnownServices returns every protocol alias in the table, sorted and
// deduplicated.
func KnownServices() []string {
	seen := make(map[string]struct{})
	for _, aliases := range KnownPorts {
		for _, alias := range aliases {
			seen[alias] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveOne expands a single port specification: a port number, an
// inclusive "lo-hi" range, a protocol alias, or the keyword "all" for every
// known port.
func resolveOne(spec string) ([]int, error) {
	if spec == "" {
		return nil, errors.New(errors.ErrCodeInvalidPortSpec, "empty port specification")
	}

	if port, err := strconv.Atoi(spec); err == nil {
		if port < 1 || port > 65535 {
			return nil, errors.New(errors.ErrCodeInvalidPortSpec, "port out of range: %d", port)
		}
		return []int{port}, nil
	}

	if lo, hi, ok := strings.Cut(spec, "-"); ok {
		start, err1 := strconv.Atoi(lo)
		end, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil {
			return nil, errors.New(errors.ErrCodeInvalidPortSpec, "invalid port range: %q", spec)
		}
		if start > end {
			return nil, errors.New(errors.ErrCodeInvalidPortSpec,
				"invalid range %q: use <x>-<y> with <y> greater than <x>", spec)
		}
		if start < 1 || end > 65535 {
			return nil, errors.New(errors.ErrCodeInvalidPortSpec, "range out of bounds: %q", spec)
		}
		ports := make([]int, 0, end-start+1)
		for p := start; p <= end; p++ {
			ports = append(ports, p)
		}
		return ports, nil
	}

	if strings.EqualFold(spec, "all") {
		ports := make([]int, 0, len(KnownPorts))
		for port := range KnownPorts {
			ports = append(ports, port)
		}
		return ports, nil
	}

	// Protocol alias lookup
	var ports []int
	name := strings.ToLower(spec)
	for port, aliases := range KnownPorts {
		for _, alias := range aliases {
			if alias == name {
				ports = append(ports, port)
				break
			}
		}
	}
	if len(ports) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPortSpec, "port name %q not known", spec)
	}
	return ports, nil
}

// ResolveSpec expands a comma-separated list of port specifications into a
// sorted, deduplicated port list.
func ResolveSpec(spec string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		ports, err := resolveOne(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		for _, port := range ports {
			seen[port] = struct{}{}
		}
	}

	ports := make([]int, 0, len(seen))
	for port := range seen {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports, nil
}
