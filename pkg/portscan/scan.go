package portscan

import (
	"context"
	"net"
	"strconv"
	"time"
)

// Probe is the outcome of one connect attempt.
type Probe struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Service string `json:"service,omitempty"`
	Open    bool   `json:"open"`

	// LocalAddr is the local endpoint of the established connection,
	// only set for open ports.
	LocalAddr string `json:"local_addr,omitempty"`

	// RemoteAddr is the resolved remote endpoint for open ports.
	RemoteAddr string `json:"remote_addr,omitempty"`

	// Reason carries the dial error for closed ports.
	Reason string `json:"reason,omitempty"`
}

// Scanner probes TCP ports on a host one at a time. A failed probe is a
// result, not an error; Scan only fails when the context is cancelled.
type Scanner struct {
	// Timeout bounds each connect attempt.
	Timeout time.Duration

	// Delay is the pause between consecutive attempts.
	Delay time.Duration
}

// DefaultTimeout bounds a single connect attempt when none is configured.
const DefaultTimeout = 5 * time.Second

// NewScanner returns a Scanner with the given per-probe timeout and
// inter-probe delay. A zero timeout falls back to DefaultTimeout.
func NewScanner(timeout, delay time.Duration) *Scanner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Scanner{Timeout: timeout, Delay: delay}
}

// Scan probes each port in order and invokes fn with every result as it
// arrives. Ports are probed sequentially so the target sees at most one
// connection at a time.
func (s *Scanner) Scan(ctx context.Context, host string, ports []int, fn func(Probe)) error {
	dialer := net.Dialer{Timeout: s.Timeout}

	for i, port := range ports {
		if i > 0 && s.Delay > 0 {
			select {
			case <-time.After(s.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		probe := Probe{Host: host, Port: port, Service: ServiceName(port)}

		addr := net.JoinHostPort(host, strconv.Itoa(port))
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			probe.Reason = err.Error()
		} else {
			probe.Open = true
			probe.LocalAddr = conn.LocalAddr().String()
			probe.RemoteAddr = conn.RemoteAddr().String()
			conn.Close()
		}

		fn(probe)
	}

	return nil
}
