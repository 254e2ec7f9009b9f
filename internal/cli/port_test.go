package cli

import (
	"testing"
)

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantHost string
		wantSpec string
		wantErr  bool
	}{
		{"combined form", []string{"router.local:22"}, "router.local", "22", false},
		{"combined with list", []string{"example.com:80,443"}, "example.com", "80,443", false},
		{"two arguments", []string{"example.com", "ssh"}, "example.com", "ssh", false},
		{"host only defaults to all", []string{"example.com"}, "example.com", "all", false},
		{"both forms at once", []string{"example.com:22", "80"}, "", "", true},
		{"empty spec after colon", []string{"example.com:"}, "", "", true},
		{"empty host", []string{":22"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, spec, err := splitTarget(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitTarget(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if host != tt.wantHost || spec != tt.wantSpec {
				t.Errorf("splitTarget(%v) = %q, %q; want %q, %q", tt.args, host, spec, tt.wantHost, tt.wantSpec)
			}
		})
	}
}
