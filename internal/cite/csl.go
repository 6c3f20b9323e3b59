// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite exports citations as CSL (Citation Style Language) YAML.
// The field names follow the CSL-JSON/CSL-YAML schema so output is
// consumable by Pandoc and reference managers.
package cite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-copilot/pkg/types"
)

// CSLItem represents one bibliographic entry in CSL format.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps each source type to its CSL entry type.
var cslTypes = map[types.SourceType]string{
	types.SourceArxiv:   "article",
	types.SourceYouTube: "motion_picture",
	types.SourceGitHub:  "software",
	types.SourceWeb:     "webpage",
	types.SourceLocal:   "document",
}

// FormatCSL writes the citations as a CSL-YAML list to w.
func FormatCSL(citations []types.Citation, w io.Writer) error {
	items := make([]CSLItem, len(citations))
	for i, c := range citations {
		items[i] = toCSLItem(i+1, c)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts one citation. The ID is positional: citations carry no
// stable identifier of their own.
func toCSLItem(n int, c types.Citation) CSLItem {
	entryType, ok := cslTypes[c.SourceType]
	if !ok {
		entryType = "document"
	}

	item := CSLItem{
		ID:       fmt.Sprintf("%s-%d", c.SourceType, n),
		Type:     entryType,
		Title:    c.Title,
		URL:      c.URL,
		Abstract: c.Snippet,
	}

	for _, a := range c.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	if t, err := time.Parse("2006-01-02", c.Date); err == nil {
		item.Issued = &CSLDate{
			DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}},
		}
	}

	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
