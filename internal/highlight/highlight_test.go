package highlight

import (
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		label    string
		priority []string
		expect   bool
	}{
		{name: "exact match ignoring case", label: "PostgreSQL", priority: []string{"postgresql"}, expect: true},
		{name: "different database", label: "SQL Server", priority: []string{"postgresql"}, expect: false},
		{name: "substring match", label: "Python 3", priority: []string{"python"}, expect: true},
		{name: "keyword inside word", label: "Node.js", priority: []string{"node"}, expect: true},
		{name: "any keyword matches", label: "React Native", priority: []string{"ruby", "react"}, expect: true},
		{name: "no keywords", label: "Go", priority: nil, expect: false},
		{name: "blank keyword ignored", label: "Go", priority: []string{""}, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.label, tt.priority); got != tt.expect {
				t.Fatalf("Classify(%q, %v) = %v, want %v", tt.label, tt.priority, got, tt.expect)
			}
		})
	}
}

func TestClassifyOrderIndependent(t *testing.T) {
	a := Classify("Ruby on Rails", []string{"python", "ruby"})
	b := Classify("Ruby on Rails", []string{"ruby", "python"})
	if a != b || !a {
		t.Fatalf("expected both orders to match, got %v and %v", a, b)
	}
}

func TestNewNormalizesKeywords(t *testing.T) {
	h := New([]string{"  Ruby ", "ruby", "", "   ", "PostgreSQL"})

	keywords := h.Keywords()
	if len(keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", keywords)
	}
	if keywords[0] != "ruby" || keywords[1] != "postgresql" {
		t.Fatalf("unexpected keywords: %v", keywords)
	}

	if !h.Classify("RUBY") {
		t.Fatalf("expected upper-case label to match")
	}
}

func TestDefaultHighlighter(t *testing.T) {
	h := NewDefault()
	for _, label := range []string{"Ruby", "PostgreSQL", "Node", "React", "Python"} {
		if !h.Classify(label) {
			t.Fatalf("expected %q to be highlighted", label)
		}
	}
	if h.Classify("Docker") {
		t.Fatalf("did not expect Docker to be highlighted")
	}
}

func TestNilHighlighter(t *testing.T) {
	var h *Highlighter
	if h.Classify("Ruby") {
		t.Fatalf("nil highlighter must not highlight")
	}
}
