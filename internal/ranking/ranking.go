// Package ranking labels an ordered candidate list and tracks which single
// entry has its details expanded.
package ranking

import (
	"strconv"

	"github.com/spigell/candidate-matcher/internal/candidate"
)

// BestMatchLabel is the badge attached to rank 0.
const BestMatchLabel = "Best Match"

// Rank is the zero-based position of a candidate in a result set.
type Rank int

// None means that no entry is expanded.
const None Rank = -1

func (r Rank) IsNone() bool { return r < 0 }

func (r Rank) String() string {
	if r.IsNone() {
		return "none"
	}
	return strconv.Itoa(int(r))
}

// Entry is one labeled candidate.
type Entry struct {
	Rank      Rank
	Candidate *candidate.Candidate
	BestMatch bool
	Expanded  bool
}

// Presentation is the labeled list together with the expansion state.
type Presentation struct {
	Entries  []Entry
	Expanded Rank
}

// Present labels results in their given order. Only rank 0 is marked as the
// best match, and only when the list is not empty. The previous expansion is
// kept when it still points inside the list; callers presenting a new result
// set pass None.
func Present(results *candidate.ResultSet, previous Rank) Presentation {
	n := results.Len()
	expanded := previous
	if expanded.IsNone() || int(expanded) >= n {
		expanded = None
	}

	p := Presentation{
		Entries:  make([]Entry, 0, n),
		Expanded: expanded,
	}
	for i := 0; i < n; i++ {
		rank := Rank(i)
		p.Entries = append(p.Entries, Entry{
			Rank:      rank,
			Candidate: results.At(i),
			BestMatch: i == 0,
			Expanded:  rank == expanded,
		})
	}

	return p
}

// Toggle returns the expansion after the user toggles target: toggling the
// expanded entry collapses it, toggling any other entry expands that one.
func Toggle(current, target Rank) Rank {
	if target.IsNone() {
		return current
	}
	if current == target {
		return None
	}
	return target
}

// BestMatch returns the best match entry, if any.
func (p Presentation) BestMatch() (Entry, bool) {
	for _, e := range p.Entries {
		if e.BestMatch {
			return e, true
		}
	}
	return Entry{}, false
}
