package candidate

import (
	"math"
	"strings"
)

const pipeSeparator = "|"

// SkillClassifier decides whether a skill label should be highlighted.
type SkillClassifier interface {
	Classify(label string) bool
}

// SkillTag is one entry of a candidate skill list.
type SkillTag struct {
	Label       string `json:"label"`
	Highlighted bool   `json:"highlighted"`
}

// QAPair is a numbered screening question with the candidate answer.
// At least one of Question and Answer is set.
type QAPair struct {
	Index    int     `json:"index"`
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
}

// Metadata holds the optional descriptive fields of a candidate.
type Metadata struct {
	JobTitle     *string `json:"job_title,omitempty"`
	Department   *string `json:"department,omitempty"`
	Location     *string `json:"location,omitempty"`
	Stage        *string `json:"stage,omitempty"`
	CreationTime *string `json:"creation_time,omitempty"`
	Source       *string `json:"source,omitempty"`
}

// Candidate is the normalized view of one scored record.
type Candidate struct {
	Name        string     `json:"name"`
	Score       *float64   `json:"score,omitempty"`
	Skills      []SkillTag `json:"skills"`
	QAPairs     []QAPair   `json:"qa_pairs"`
	Experiences []string   `json:"experiences"`
	Education   *string    `json:"education,omitempty"`
	Metadata    Metadata   `json:"metadata"`
}

// Normalize builds a Candidate from a raw record. It never fails: missing or
// blank fields are left absent and rendered with fallbacks later.
// A nil classifier highlights nothing.
func Normalize(raw *Raw, classifier SkillClassifier) *Candidate {
	if raw == nil {
		raw = &Raw{}
	}

	c := &Candidate{
		Name:        UnnamedCandidate,
		Score:       finite(raw.Score),
		Skills:      make([]SkillTag, 0),
		QAPairs:     make([]QAPair, 0),
		Experiences: ParsePipeList(value(raw.Experiences)),
		Education:   present(raw.Educations),
		Metadata: Metadata{
			JobTitle:     present(raw.JobTitle),
			Department:   present(raw.JobDepartment),
			Location:     present(raw.JobLocation),
			Stage:        present(raw.Stage),
			CreationTime: present(raw.CreationTime),
			Source:       present(raw.Source),
		},
	}

	if name := present(raw.Name); name != nil {
		c.Name = *name
	}

	for _, label := range ParsePipeList(value(raw.Skills)) {
		highlighted := false
		if classifier != nil {
			highlighted = classifier.Classify(label)
		}
		c.Skills = append(c.Skills, SkillTag{Label: label, Highlighted: highlighted})
	}

	for n := 1; n <= QuestionCount; n++ {
		q, a := raw.qa(n)
		q, a = present(q), present(a)
		if q == nil && a == nil {
			continue
		}
		c.QAPairs = append(c.QAPairs, QAPair{Index: n, Question: q, Answer: a})
	}

	return c
}

// ParsePipeList splits a pipe-delimited string, trims every segment and drops
// the empty ones. The order of the remaining segments is kept.
func ParsePipeList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, pipeSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// HasScore reports whether the candidate has a usable score. NaN and
// infinities count as absent.
func (c *Candidate) HasScore() bool {
	return finite(c.Score) != nil
}

// BarPercent returns the score clamped to [0,100] for proportional rendering.
// The second value is false when there is no score.
func (c *Candidate) BarPercent() (float64, bool) {
	if !c.HasScore() {
		return 0, false
	}
	s := *c.Score
	switch {
	case s < 0:
		return 0, true
	case s > 100:
		return 100, true
	}
	return s, true
}

// HighlightedSkills returns the labels flagged by the classifier.
func (c *Candidate) HighlightedSkills() []string {
	var out []string
	for _, skill := range c.Skills {
		if skill.Highlighted {
			out = append(out, skill.Label)
		}
	}
	return out
}

func present(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func finite(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	return f
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
