package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/candidate-matcher/internal/candidate"
	"github.com/spigell/candidate-matcher/internal/logger"
	"github.com/spigell/candidate-matcher/internal/ranking"
)

// MaxQueryLength is the longest accepted job description, in characters.
const MaxQueryLength = 3500

var (
	ErrQueryTooLong   = fmt.Errorf("job description is longer than %d characters", MaxQueryLength)
	ErrRankOutOfRange = errors.New("rank is out of range")
)

// Scorer looks up ranked candidate records for a job description.
type Scorer interface {
	Score(ctx context.Context, jobDescription string) ([]map[string]interface{}, error)
}

// Outcome is how a submission resolved.
type Outcome int

const (
	OutcomeResults Outcome = iota
	OutcomeEmpty
	OutcomeFailed
	// OutcomeStale means a newer submission started before this one
	// resolved; its result was dropped.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResults:
		return "results"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Controller is the only mutation path of a session State.
type Controller struct {
	mu         sync.Mutex
	state      State
	generation uint64

	scorer     Scorer
	classifier candidate.SkillClassifier
	logger     *zap.Logger
	newID      func() string
}

func New(scorer Scorer, classifier candidate.SkillClassifier, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}

	return &Controller{
		state:      NewState(),
		scorer:     scorer,
		classifier: classifier,
		logger:     log,
		newID:      uuid.NewString,
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// UpdateQuery replaces the job description. Text over MaxQueryLength
// characters is rejected and the previous query is kept.
func (c *Controller) UpdateQuery(text string) error {
	if utf8.RuneCountInString(text) > MaxQueryLength {
		return ErrQueryTooLong
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	next.Query = text
	c.state = next
	return nil
}

// ToggleDetail expands the entry at rank, or collapses it when it is
// already expanded.
func (c *Controller) ToggleDetail(rank ranking.Rank) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rank.IsNone() || int(rank) >= c.state.Results.Len() {
		return fmt.Errorf("%w: %s", ErrRankOutOfRange, rank)
	}

	next := c.state
	next.ExpandedRank = ranking.Toggle(c.state.ExpandedRank, rank)
	c.state = next
	return nil
}

// Submit sends the current query to the scorer and replaces results,
// expansion and banner in one step once the lookup resolves.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	query := c.state.Query
	c.mu.Unlock()

	log := logger.WithSubmission(c.logger, c.newID(), query)
	log.Info("submitting job description")

	results, banner, outcome := c.resolve(ctx, log, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		log.Debug("dropping stale submission result",
			zap.Uint64("generation", generation),
			zap.Uint64("latest_generation", c.generation),
			zap.Stringer("outcome", outcome),
		)
		return OutcomeStale
	}

	c.state = State{
		Query:        c.state.Query,
		Results:      results,
		ExpandedRank: ranking.None,
		Banner:       banner,
	}

	log.Info("submission resolved",
		zap.Stringer("outcome", outcome),
		zap.Int("candidates", results.Len()),
	)

	if best, ok := c.state.Presentation().BestMatch(); ok {
		log.Debug("best match",
			zap.String("name", best.Candidate.Name),
			zap.Strings("highlighted_skills", best.Candidate.HighlightedSkills()),
		)
	}

	return outcome
}

func (c *Controller) resolve(ctx context.Context, log *zap.Logger, query string) (*candidate.ResultSet, Banner, Outcome) {
	records, err := c.lookup(ctx, query)
	if err != nil {
		log.Error("fetching candidates failed", zap.Error(err))
		return candidate.Empty(), ErrorBanner(FetchErrorMessage), OutcomeFailed
	}

	results := candidate.FromRecords(records, c.classifier, log)
	if results.Len() == 0 {
		return results, InfoBanner(NoCandidatesMessage), OutcomeEmpty
	}

	return results, NoBanner(), OutcomeResults
}

// lookup calls the scorer and turns a panic in it into an error.
func (c *Controller) lookup(ctx context.Context, query string) (records []map[string]interface{}, err error) {
	if c.scorer == nil {
		return nil, errors.New("scorer is not configured")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panicked: %v", r)
		}
	}()

	return c.scorer.Score(ctx, query)
}
