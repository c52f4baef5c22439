// Package session owns the interactive state of one matching session: the
// job description being edited and the outcome of the latest submission.
package session

import (
	"github.com/spigell/candidate-matcher/internal/candidate"
	"github.com/spigell/candidate-matcher/internal/ranking"
)

const (
	// NoCandidatesMessage is shown when the service returns an empty list.
	NoCandidatesMessage = "No candidates found with the given job description"
	// FetchErrorMessage is shown for any failed lookup. The cause is only logged.
	FetchErrorMessage = "An error occurred while fetching data"
)

// BannerKind tells the view how to style a Banner.
type BannerKind int

const (
	// BannerNone means there is nothing to show.
	BannerNone BannerKind = iota
	// BannerInfo is a neutral notice, such as an empty result list.
	BannerInfo
	// BannerError reports a failed lookup.
	BannerError
)

func (k BannerKind) String() string {
	switch k {
	case BannerInfo:
		return "info"
	case BannerError:
		return "error"
	default:
		return "none"
	}
}

// Banner is the single status message summarizing the latest submission.
type Banner struct {
	Kind    BannerKind
	Message string
}

// NoBanner returns the empty banner of a successful submission or a fresh session.
func NoBanner() Banner { return Banner{Kind: BannerNone} }

// InfoBanner returns a neutral banner carrying msg.
func InfoBanner(msg string) Banner { return Banner{Kind: BannerInfo, Message: msg} }

// ErrorBanner returns an error banner carrying msg.
func ErrorBanner(msg string) Banner { return Banner{Kind: BannerError, Message: msg} }

// IsNone reports whether there is no banner to show.
func (b Banner) IsNone() bool { return b.Kind == BannerNone }

// State is an immutable snapshot of the session. Results, ExpandedRank and
// Banner always belong to the same submission.
type State struct {
	Query        string
	Results      *candidate.ResultSet
	ExpandedRank ranking.Rank
	Banner       Banner
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{
		Query:        "",
		Results:      candidate.Empty(),
		ExpandedRank: ranking.None,
		Banner:       NoBanner(),
	}
}

// Presentation labels the results and marks the expanded entry.
func (s State) Presentation() ranking.Presentation {
	return ranking.Present(s.Results, s.ExpandedRank)
}
