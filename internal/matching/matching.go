// Package matching is a client for the external candidate scoring service.
package matching

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultUserAgent = "spigell/candidate-matcher"
	defaultTimeout   = 30 * time.Second
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a client for the scoring service at apiURL. An empty token
// disables the Authorization header.
func New(apiURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: defaultUserAgent,
	}
}

// WithTimeout sets the HTTP timeout. Non-positive values keep the current one.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.HTTPClient.Timeout = d
	}
	return c
}

// Score submits a job description and returns the ranked candidate records
// in the order the service returned them.
func (c *Client) Score(ctx context.Context, jobDescription string) ([]map[string]interface{}, error) {
	return c.score(ctx, &ScoreRequest{JobDescription: jobDescription})
}
