package matching

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "", zap.NewNop())
}

func TestScorePostsJobDescription(t *testing.T) {
	var got ScoreRequest
	var headers http.Header

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		headers = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"job_description": "x", "candidates": [{"Name": "Ada", "score": 92.5}, {"Name": "Bob", "score": 74.0}]}`)
	})

	records, err := client.Score(context.Background(), "Senior backend engineer, Ruby, PostgreSQL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.JobDescription != "Senior backend engineer, Ruby, PostgreSQL" {
		t.Fatalf("unexpected job description: %q", got.JobDescription)
	}
	if headers.Get("Content-Type") != contentType {
		t.Fatalf("unexpected content type: %q", headers.Get("Content-Type"))
	}
	if headers.Get("Authorization") != "" {
		t.Fatalf("did not expect authorization header without token")
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["Name"] != "Ada" {
		t.Fatalf("expected service order to be preserved, got %v", records[0]["Name"])
	}
}

func TestScoreSendsTokenAndUserAgent(t *testing.T) {
	var auth, ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		ua = r.Header.Get("User-Agent")
		io.WriteString(w, `{"candidates": []}`)
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, "secret", nil)
	client.UserAgent = "tester"

	if _, err := client.Score(context.Background(), "Go developer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Bearer secret" {
		t.Fatalf("unexpected authorization header: %q", auth)
	}
	if ua != "tester" {
		t.Fatalf("unexpected user agent: %q", ua)
	}
}

func TestScoreEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"candidates": []}`)
	})

	records, err := client.Score(context.Background(), "Go developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil records, got %#v", records)
	}
}

func TestScoreMissingCandidates(t *testing.T) {
	for _, body := range []string{`{}`, `{"candidates": null}`, `{"message": "oops"}`} {
		body := body
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, body)
			})

			_, err := client.Score(context.Background(), "Go developer")
			if !errors.Is(err, ErrMissingCandidates) {
				t.Fatalf("expected ErrMissingCandidates, got %v", err)
			}
		})
	}
}

func TestScoreBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message": "Please provide a valid Job Description (1-3500 chars)."}`)
	})

	_, err := client.Score(context.Background(), "Go developer")
	if err == nil || !strings.Contains(err.Error(), "bad status") {
		t.Fatalf("expected bad status error, got %v", err)
	}
}

func TestScoreMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"candidates": [`)
	})

	if _, err := client.Score(context.Background(), "Go developer"); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}

func TestScoreGzipResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		io.WriteString(gz, `{"candidates": [{"Name": "Zip"}]}`)
		gz.Close()
	})

	records, err := client.Score(context.Background(), "Go developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["Name"] != "Zip" {
		t.Fatalf("unexpected records: %#v", records)
	}
}

func TestScoreRejectsInvalidDescriptionBeforeSending(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		io.WriteString(w, `{"candidates": []}`)
	})

	for _, desc := range []string{"", strings.Repeat("a", MaxJobDescriptionLength+1)} {
		if _, err := client.Score(context.Background(), desc); err == nil {
			t.Fatalf("expected validation error for description of length %d", len(desc))
		}
	}

	if _, err := client.Score(context.Background(), strings.Repeat("ж", MaxJobDescriptionLength)); err != nil {
		t.Fatalf("expected description at the limit to be accepted: %v", err)
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly one request to reach the service, got %d", calls)
	}
}

func TestScoreTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, `{"candidates": []}`)
	})
	client.WithTimeout(20 * time.Millisecond)

	if _, err := client.Score(context.Background(), "Go developer"); err == nil {
		t.Fatalf("expected timeout error")
	}
}
