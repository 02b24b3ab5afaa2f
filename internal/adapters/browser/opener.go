// Package browser opens URLs with the operating system's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener launches the system browser. Only web URLs are accepted; the
// import hand-off must never shell out to an arbitrary scheme handler.
type Opener struct{}

// NewOpener creates a new browser opener
func NewOpener() *Opener {
	return &Opener{}
}

// OpenURL opens the given URL in the default browser
func (o *Opener) OpenURL(rawURL string) error {
	argv, err := openArgs(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	return exec.Command(argv[0], argv[1:]...).Run()
}

// openArgs builds the platform launch command for a URL
func openArgs(goos, rawURL string) ([]string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("refusing to open non-web URL scheme: %q", parsed.Scheme)
	}

	switch goos {
	case "darwin":
		return []string{"open", rawURL}, nil
	case "linux":
		return []string{"xdg-open", rawURL}, nil
	case "windows":
		return []string{"cmd", "/c", "start", "", rawURL}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
