package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MaxJobDescriptionLength is the longest job description the service accepts, in characters.
const MaxJobDescriptionLength = 3500

// ErrMissingCandidates is returned when the response has no candidates field
// or the field is null. An empty list is a valid response.
var ErrMissingCandidates = errors.New("response has no candidates field")

var validate = validator.New()

type ScoreRequest struct {
	JobDescription string `json:"job_description" validate:"required,max=3500"`
}

type ScoreResponse struct {
	JobDescription string                    `json:"job_description,omitempty"`
	Candidates     *[]map[string]interface{} `json:"candidates"`
}

func (c *Client) score(ctx context.Context, req *ScoreRequest) ([]map[string]interface{}, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid score request: %w", err)
	}

	var resp ScoreResponse
	if err := c.postJSON(ctx, c.APIURL, req, &resp); err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	if resp.Candidates == nil {
		return nil, fmt.Errorf("score: %w", ErrMissingCandidates)
	}

	c.logger.Debug("got response from scoring service", zap.Int("candidates", len(*resp.Candidates)))

	return *resp.Candidates, nil
}
