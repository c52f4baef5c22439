package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newRunFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().StringP("query", "q", "", "")
	cmd.Flags().String("query-file", "", "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestInitialQueryFromFlag(t *testing.T) {
	got, err := initialQuery(newRunFlags(t, "--query", "  Go developer  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Go developer" {
		t.Fatalf("unexpected query: %q", got)
	}
}

func TestInitialQueryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	if err := os.WriteFile(path, []byte("Senior backend engineer, Ruby, PostgreSQL\n"), 0o600); err != nil {
		t.Fatalf("write job file: %v", err)
	}

	got, err := initialQuery(newRunFlags(t, "--query-file", path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Senior backend engineer, Ruby, PostgreSQL" {
		t.Fatalf("unexpected query: %q", got)
	}
}

func TestInitialQueryMutuallyExclusive(t *testing.T) {
	_, err := initialQuery(newRunFlags(t, "--query", "a", "--query-file", "b"))
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected mutually exclusive error, got %v", err)
	}
}

func TestResolveToken(t *testing.T) {
	t.Setenv("MATCHER_TOKEN", "")

	token, err := resolveToken(&Config{Service: &ServiceConfig{}})
	if err != nil {
		t.Fatalf("token must be optional: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("secret\n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	token, err = resolveToken(&Config{Service: &ServiceConfig{TokenFile: path}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "secret" {
		t.Fatalf("unexpected token: %q", token)
	}

	if _, err := resolveToken(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Service == nil || config.Service.URL == "" {
		t.Fatalf("expected default service url, got %+v", config.Service)
	}
	if config.Service.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", config.Service.Timeout)
	}
	if config.Highlight == nil || len(config.Highlight.Skills) == 0 {
		t.Fatalf("expected default highlight skills")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(buf.String(), app+" version: ") {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
}
