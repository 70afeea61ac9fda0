package version

import "testing"

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version {
		t.Errorf("expected version %q, got %q", Version, info.Version)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "dev"}, "dev"},
		{"with commit", Info{Version: "1.2.0", GitCommit: "abc1234"}, "1.2.0 (abc1234)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestShorten(t *testing.T) {
	if got := shorten("0123456789abcdef"); got != "0123456" {
		t.Errorf("expected 7-char commit, got %q", got)
	}
	if got := shorten("abc"); got != "abc" {
		t.Errorf("short commit should pass through, got %q", got)
	}
}
