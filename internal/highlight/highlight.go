// Package highlight flags candidate skills that match a set of priority keywords.
package highlight

import (
	"strings"
)

// DefaultKeywords is the priority set used when the configuration sets none.
var DefaultKeywords = []string{"ruby", "postgresql", "node", "react", "python"}

// Classify reports whether any priority keyword is a substring of the
// lower-cased label. Keywords are expected in lower case.
func Classify(label string, priority []string) bool {
	lowered := strings.ToLower(label)
	for _, keyword := range priority {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// Highlighter holds a fixed priority keyword set.
type Highlighter struct {
	keywords []string
}

// New builds a Highlighter. Keywords are trimmed, lower-cased and
// deduplicated; blank ones are dropped.
func New(keywords []string) *Highlighter {
	seen := make(map[string]struct{}, len(keywords))
	h := &Highlighter{keywords: make([]string, 0, len(keywords))}
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		h.keywords = append(h.keywords, keyword)
	}
	return h
}

// NewDefault builds a Highlighter over DefaultKeywords.
func NewDefault() *Highlighter {
	return New(DefaultKeywords)
}

func (h *Highlighter) Classify(label string) bool {
	if h == nil {
		return false
	}
	return Classify(label, h.keywords)
}

// Keywords returns a copy of the normalized priority set.
func (h *Highlighter) Keywords() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.keywords...)
}
