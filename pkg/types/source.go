// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-copilot:
// source types, citations, tool results, and configuration.
package types

import "fmt"

// SourceType identifies a retrieval origin. It is the registration key for
// toolkits and the tag carried by every citation and result.
type SourceType string

const (
	SourceLocal   SourceType = "local"
	SourceArxiv   SourceType = "arxiv"
	SourceYouTube SourceType = "youtube"
	SourceGitHub  SourceType = "github"
	SourceWeb     SourceType = "web"
)

// AllSourceTypes lists the closed set of source types in canonical order.
func AllSourceTypes() []SourceType {
	return []SourceType{SourceLocal, SourceArxiv, SourceYouTube, SourceGitHub, SourceWeb}
}

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceLocal, SourceArxiv, SourceYouTube, SourceGitHub, SourceWeb:
		return true
	}
	return false
}

func (s SourceType) String() string { return string(s) }

// ParseSourceType maps a free-text name to a SourceType. Unknown names
// return an error so callers can skip or report them.
func ParseSourceType(name string) (SourceType, error) {
	s := SourceType(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown source type %q", name)
	}
	return s, nil
}
