package domain

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// TeX engines the remote compile service accepts
const (
	EnginePDFLaTeX    = "pdflatex"
	EngineXeLaTeX     = "xelatex"
	EngineLuaLaTeX    = "lualatex"
	EngineLaTeXDVIPDF = "latex_dvipdf"
)

var validEngines = []string{EnginePDFLaTeX, EngineXeLaTeX, EngineLuaLaTeX, EngineLaTeXDVIPDF}

// ProjectSnippet describes a new project to be opened through the remote
// editor's import form. Nothing here performs a network call; the snippet
// only formats a browser-openable URL and the equivalent form fields.
type ProjectSnippet struct {
	Content string // raw .tex source, or a base64-encoded zip when IsZip
	Name    string // optional display name for the new project
	Engine  string // one of the engine constants; empty means pdflatex
	IsZip   bool
}

// Validate checks the snippet fields
func (s ProjectSnippet) Validate() error {
	if s.Content == "" {
		return fmt.Errorf("snippet content is required")
	}
	if s.Engine == "" {
		return nil
	}
	for _, e := range validEngines {
		if s.Engine == e {
			return nil
		}
	}
	return fmt.Errorf("unknown engine '%s'; valid engines: %s", s.Engine, strings.Join(validEngines, ", "))
}

// DataURI encodes the snippet content as a data: URI. Zip content is
// expected to arrive already base64-encoded; raw .tex source is encoded
// here.
func (s ProjectSnippet) DataURI() string {
	if s.IsZip {
		return "data:application/zip;base64," + s.Content
	}
	return "data:application/x-tex;base64," + base64.StdEncoding.EncodeToString([]byte(s.Content))
}

// EngineOrDefault returns the configured engine, defaulting to pdflatex
func (s ProjectSnippet) EngineOrDefault() string {
	if s.Engine == "" {
		return EnginePDFLaTeX
	}
	return s.Engine
}

// FormData returns the import form fields for the snippet
func (s ProjectSnippet) FormData() url.Values {
	v := url.Values{}
	v.Set("snip_uri", s.DataURI())
	v.Set("engine", s.EngineOrDefault())
	if s.Name != "" {
		v.Set("snip_name", s.Name)
	}
	return v
}

// BrowserURL returns the URL that opens the import form pre-filled with
// the snippet.
func (s ProjectSnippet) BrowserURL(docsURL string) string {
	return docsURL + "?" + s.FormData().Encode()
}
