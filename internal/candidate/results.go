package candidate

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"
)

// Display fallbacks for absent fields.
const (
	UnnamedCandidate = "Unnamed Candidate"
	NoJobTitle       = "No job title"
	NotAvailable     = "N/A"
	NoSkills         = "No Skills"
	NoQuestion       = "Question?"
	NoAnswer         = "No answer"
	NoExperience     = "No experience data"
)

// ResultSet is the ordered list of candidates of one submission.
// The position of a candidate is its rank; rank 0 is the best match as
// ordered by the scoring service.
type ResultSet struct {
	Items []*Candidate `json:"candidates"`
}

// Empty returns a result set without candidates.
func Empty() *ResultSet {
	return &ResultSet{Items: make([]*Candidate, 0)}
}

// FromRecords decodes and normalizes every record returned by the service.
// A record that decodes only partially is kept with the fields that could be
// read; the problem is logged and never fails the whole set.
func FromRecords(records []map[string]interface{}, classifier SkillClassifier, logger *zap.Logger) *ResultSet {
	if logger == nil {
		logger = zap.NewNop()
	}

	set := &ResultSet{Items: make([]*Candidate, 0, len(records))}
	for idx, record := range records {
		raw, err := Decode(record)
		if err != nil {
			logger.Debug("candidate record decoded partially",
				zap.Int("rank", idx),
				zap.Error(err),
			)
		}
		set.Items = append(set.Items, Normalize(raw, classifier))
	}

	return set
}

func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// At returns the candidate at the given rank or nil when out of range.
func (r *ResultSet) At(rank int) *Candidate {
	if rank < 0 || rank >= r.Len() {
		return nil
	}
	return r.Items[rank]
}

// Names lists candidate display names in rank order.
func (r *ResultSet) Names() []string {
	names := make([]string, 0, r.Len())
	if r == nil {
		return names
	}
	for _, c := range r.Items {
		names = append(names, c.Name)
	}
	return names
}

// DumpToTmpFile writes the result set as indented JSON into a new temporary
// file and returns its name.
func (r *ResultSet) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	set := r
	if set == nil {
		set = Empty()
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set); err != nil {
		return "", err
	}
	return file.Name(), nil
}
