package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SectionKind is the level of a LaTeX sectioning command
type SectionKind int

const (
	KindPart SectionKind = iota
	KindChapter
	KindSection
	KindSubsection
	KindSubsubsection
	KindParagraph
	KindSubparagraph
)

func (k SectionKind) String() string {
	switch k {
	case KindPart:
		return "part"
	case KindChapter:
		return "chapter"
	case KindSection:
		return "section"
	case KindSubsection:
		return "subsection"
	case KindSubsubsection:
		return "subsubsection"
	case KindParagraph:
		return "paragraph"
	case KindSubparagraph:
		return "subparagraph"
	default:
		return "unknown"
	}
}

// sectionKeywords lists every recognized sectioning command. No keyword is
// a prefix of another, so at most one can match at a given scan position.
var sectionKeywords = []struct {
	name string
	kind SectionKind
}{
	{"part", KindPart},
	{"chapter", KindChapter},
	{"section", KindSection},
	{"subsection", KindSubsection},
	{"subsubsection", KindSubsubsection},
	{"paragraph", KindParagraph},
	{"subparagraph", KindSubparagraph},
}

// ParseSectionKind parses a kind name back into a SectionKind
func ParseSectionKind(name string) (SectionKind, bool) {
	for _, kw := range sectionKeywords {
		if kw.name == name {
			return kw.kind, true
		}
	}
	return 0, false
}

// previewLimit is the maximum preview length in runes
const previewLimit = 200

// Section is an ephemeral view over one titled span of a document,
// computed fresh from the document text on every request. Offsets are
// byte offsets into the text it was parsed from.
type Section struct {
	Kind       SectionKind
	Title      string
	Starred    bool
	Start      int // offset of the heading command's backslash
	HeaderEnd  int // offset just past the heading's closing brace
	ContentEnd int // start of the next heading, or len(doc)
	Preview    string
}

// Body returns the section content without its heading
func (s Section) Body(doc string) string {
	return doc[s.HeaderEnd:s.ContentEnd]
}

// Span returns the full section including its heading
func (s Section) Span(doc string) string {
	return doc[s.Start:s.ContentEnd]
}

// headingToken is one sectioning command found by the scanner
type headingToken struct {
	kind    SectionKind
	title   string
	starred bool
	start   int
	end     int
}

// scanHeadings walks the document and returns every sectioning command in
// order of appearance. A heading is a backslash, a keyword, an optional
// star, and a braced title of at least one character containing no
// closing brace. Anything that fails those steps is skipped and the scan
// resumes one byte past the backslash.
func scanHeadings(doc string) []headingToken {
	var tokens []headingToken
	for i := 0; i < len(doc); i++ {
		if doc[i] != '\\' {
			continue
		}
		tok, ok := matchHeading(doc, i)
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
		i = tok.end - 1
	}
	return tokens
}

func matchHeading(doc string, start int) (headingToken, bool) {
	rest := doc[start+1:]
	for _, kw := range sectionKeywords {
		if !strings.HasPrefix(rest, kw.name) {
			continue
		}
		j := start + 1 + len(kw.name)
		starred := false
		if j < len(doc) && doc[j] == '*' {
			starred = true
			j++
		}
		if j >= len(doc) || doc[j] != '{' {
			return headingToken{}, false
		}
		j++
		n := strings.IndexByte(doc[j:], '}')
		if n <= 0 {
			return headingToken{}, false
		}
		return headingToken{
			kind:    kw.kind,
			title:   doc[j : j+n],
			starred: starred,
			start:   start,
			end:     j + n + 1,
		}, true
	}
	return headingToken{}, false
}

// ParseSections extracts the ordered section list from a document. Each
// section runs from its heading to the start of the next heading (or the
// end of the document), so the sections tile the text from the first
// heading onward with no gaps or overlaps.
func ParseSections(doc string) []Section {
	tokens := scanHeadings(doc)
	sections := make([]Section, 0, len(tokens))
	for i, tok := range tokens {
		contentEnd := len(doc)
		if i+1 < len(tokens) {
			contentEnd = tokens[i+1].start
		}
		body := strings.TrimSpace(doc[tok.end:contentEnd])
		sections = append(sections, Section{
			Kind:       tok.kind,
			Title:      tok.title,
			Starred:    tok.starred,
			Start:      tok.start,
			HeaderEnd:  tok.end,
			ContentEnd: contentEnd,
			Preview:    truncatePreview(body),
		})
	}
	return sections
}

func truncatePreview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLimit {
		return body
	}
	return string(runes[:previewLimit]) + "..."
}

// FindSection returns the first section whose title matches, ignoring
// case. Titles are not required to be unique; when several sections share
// a title, only the first occurrence is addressable by title.
func FindSection(sections []Section, title string) (Section, bool) {
	for _, s := range sections {
		if strings.EqualFold(s.Title, title) {
			return s, true
		}
	}
	return Section{}, false
}

// SectionTitles returns the titles of all sections in order
func SectionTitles(sections []Section) []string {
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	return titles
}

// ErrHeaderNotLocated reports that a section found by title lookup could
// not be re-located in the document, which signals an internal
// inconsistency rather than bad caller input.
var ErrHeaderNotLocated = errors.New("could not locate section header")

// SectionNotFoundError reports a title lookup miss along with the titles
// that do exist.
type SectionNotFoundError struct {
	Title     string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("section '%s' not found; the file has no sections", e.Title)
	}
	quoted := make([]string, len(e.Available))
	for i, t := range e.Available {
		quoted[i] = "'" + t + "'"
	}
	return fmt.Sprintf("section '%s' not found; available sections: %s", e.Title, strings.Join(quoted, ", "))
}

// ReplaceSection rebuilds the document with the body of the titled
// section replaced. The target is found by case-insensitive title lookup,
// then its heading is re-located by scanning the whole document for the
// first heading with the recorded kind and byte-exact title, so the
// heading itself is always preserved. Everything before the heading's end
// and from the next section's start onward is carried over unchanged.
func ReplaceSection(doc, title, body string) (string, error) {
	sections := ParseSections(doc)
	target, ok := FindSection(sections, title)
	if !ok {
		return "", &SectionNotFoundError{Title: title, Available: SectionTitles(sections)}
	}

	headerEnd, ok := locateHeader(doc, target.Kind, target.Title)
	if !ok {
		return "", fmt.Errorf("%w for '%s'", ErrHeaderNotLocated, title)
	}

	return doc[:headerEnd] + "\n" + strings.TrimSpace(body) + "\n" + doc[target.ContentEnd:], nil
}

func locateHeader(doc string, kind SectionKind, title string) (int, bool) {
	for _, tok := range scanHeadings(doc) {
		if tok.kind == kind && tok.title == title {
			return tok.end, true
		}
	}
	return 0, false
}
