// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// maxDisplayedAuthors is the number of authors shown before "et al.".
const maxDisplayedAuthors = 3

// Citation is one attributable source backing an answer. Toolkits construct
// citations when packaging a result; they are immutable afterwards and live
// only for the duration of a single tool-call response.
type Citation struct {
	// SourceType identifies which toolkit produced this citation.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// Title is the display title of the source.
	Title string `json:"title" yaml:"title"`

	// URL links to the source. May be empty for local documents.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Authors lists the source authors in original order. May be empty.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Date is the publication date as free text (e.g. "2023-01-17").
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// Snippet is a short excerpt from the source.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// Markdown renders the citation as a Markdown line. Missing fields degrade
// gracefully: an untitled citation renders a placeholder, a citation without
// a URL renders the bare title, and author lists longer than three entries
// are truncated with "et al.".
func (c Citation) Markdown() string {
	title := c.Title
	if title == "" {
		title = "(untitled)"
	}

	link := title
	if c.URL != "" {
		link = fmt.Sprintf("[%s](%s)", title, c.URL)
	}

	switch c.SourceType {
	case SourceArxiv:
		var b strings.Builder
		b.WriteString(link)
		if authors := formatAuthorList(c.Authors); authors != "" {
			b.WriteString(" - " + authors)
		}
		if c.Date != "" {
			b.WriteString(fmt.Sprintf(" (%s)", c.Date))
		}
		return b.String()
	case SourceYouTube:
		return "\U0001F4FA " + link
	case SourceGitHub:
		return "\U0001F4BB " + link
	default:
		return link
	}
}

// formatAuthorList joins up to maxDisplayedAuthors names, appending
// "et al." when the list is longer.
func formatAuthorList(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	shown := authors
	if len(shown) > maxDisplayedAuthors {
		shown = shown[:maxDisplayedAuthors]
	}
	s := strings.Join(shown, ", ")
	if len(authors) > maxDisplayedAuthors {
		s += " et al."
	}
	return s
}
