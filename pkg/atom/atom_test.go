package atom

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		atom string
		want bool
	}{
		{"bare atom", "app-misc/screen", true},
		{"bare atom with plus", "net-libs/libsoup+", true},
		{"bare atom with digits", "dev-lang/python", true},
		{"versioned without operator", "app-misc/screen-4.0.3", false},
		{"versioned with equals", "=app-misc/screen-4.0.3", true},
		{"versioned with revision", "=app-misc/screen-4.0.3-r2", true},
		{"versioned with suffix", "=dev-lang/python-3.12_rc1", true},
		{"greater equal", ">=sys-apps/portage-2.1", true},
		{"tilde", "~x11-terms/xterm-390", true},
		{"operator without version", "=app-misc/screen", false},
		{"no category", "screen", false},
		{"empty", "", false},
		{"double slash", "app-misc//screen", false},
		{"bad category chars", "app misc/screen", false},
		{"trailing slash", "app-misc/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.atom); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.atom, got, tt.want)
			}
		})
	}
}

func TestIsJustName(t *testing.T) {
	tests := []struct {
		name string
		atom string
		want bool
	}{
		{"plain name", "app-misc/screen", true},
		{"hyphenated name", "net-misc/openssh-contrib", true},
		{"with version", "app-misc/screen-4.0.3", false},
		{"with revision", "app-misc/screen-4.0.3-r2", false},
		{"with suffix version", "dev-lang/python-3.12_rc1", false},
		{"not an atom", "screen", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsJustName(tt.atom); got != tt.want {
				t.Errorf("IsJustName(%q) = %v, want %v", tt.atom, got, tt.want)
			}
		})
	}
}

func TestCP(t *testing.T) {
	tests := []struct {
		name    string
		atom    string
		want    string
		wantErr bool
	}{
		{"already just name", "app-misc/screen", "app-misc/screen", false},
		{"strip version", "app-misc/screen-4.0.3", "app-misc/screen", false},
		{"strip revision", "app-misc/screen-4.0.3-r2", "app-misc/screen", false},
		{"strip operator", "=app-misc/screen-4.0.3", "app-misc/screen", false},
		{"strip ge operator", ">=sys-apps/portage-2.1", "sys-apps/portage", false},
		{"hyphenated name with version", "net-misc/openssh-contrib-9.6", "net-misc/openssh-contrib", false},
		{"suffix version", "dev-lang/python-3.12_rc1", "dev-lang/python", false},
		{"not an atom", "screen", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CP(tt.atom)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CP(%q) error = %v, wantErr %v", tt.atom, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CP(%q) = %q, want %q", tt.atom, got, tt.want)
			}
		})
	}
}
