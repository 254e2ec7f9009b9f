package errors

import (
	"strings"
	"testing"
)

func TestValidateTreePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid absolute path", "/usr/portage", false},
		{"valid relative path", "portage", false},
		{"empty path", "", true},
		{"null byte", "/usr/\x00portage", true},
		{"control character", "/usr/\tportage", true},
		{"too long", "/" + strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTreePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTreePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"host and port", "example.com:22", false},
		{"host and range", "example.com:20-25", false},
		{"host and name", "mail.example.com:smtp", false},
		{"host and all", "example.com:all", false},
		{"missing colon", "example.com", true},
		{"empty host", ":22", true},
		{"empty spec", "example.com:", true},
		{"empty target", "", true},
		{"embedded space", "example .com:22", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTarget(%q) error = %v, wantErr %v", tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"developer address", "larry@gentoo.org", false},
		{"proxy address", "outside@example.com", false},
		{"no at sign", "larry.gentoo.org", true},
		{"empty", "", true},
		{"embedded space", "larry @gentoo.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
			}
		})
	}
}
