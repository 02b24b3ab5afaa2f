package browser

import (
	"strings"
	"testing"
)

func TestOpenArgs_PerPlatform(t *testing.T) {
	tests := []struct {
		name string
		goos string
		url  string
		want []string
	}{
		{
			name: "darwin uses open",
			goos: "darwin",
			url:  "https://www.overleaf.com/docs?snip_uri=data",
			want: []string{"open", "https://www.overleaf.com/docs?snip_uri=data"},
		},
		{
			name: "linux uses xdg-open",
			goos: "linux",
			url:  "https://www.overleaf.com/docs",
			want: []string{"xdg-open", "https://www.overleaf.com/docs"},
		},
		{
			name: "windows uses cmd start",
			goos: "windows",
			url:  "http://localhost:8000/",
			want: []string{"cmd", "/c", "start", "", "http://localhost:8000/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := openArgs(tt.goos, tt.url)
			if err != nil {
				t.Fatalf("openArgs() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("openArgs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("openArgs() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestOpenArgs_RejectsNonWebSchemes(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"file scheme", "file:///etc/passwd"},
		{"custom scheme", "vscode://file/main.tex"},
		{"no scheme", "www.overleaf.com/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := openArgs("linux", tt.url); err == nil {
				t.Fatalf("expected error for %q", tt.url)
			}
		})
	}
}

func TestOpenArgs_UnsupportedPlatform(t *testing.T) {
	_, err := openArgs("plan9", "https://www.overleaf.com/docs")
	if err == nil {
		t.Fatal("expected error for unsupported platform")
	}
	if !strings.Contains(err.Error(), "plan9") {
		t.Errorf("error should name the platform: %v", err)
	}
}
