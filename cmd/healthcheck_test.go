package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/coderFeedForwardAlg/web-term/internal/ledger"
	"github.com/coderFeedForwardAlg/web-term/testutil"
)

func TestHealthcheckCommand(t *testing.T) {
	dir := showFixture(t)

	stdout, _, err := runCommand(t, "", "healthcheck", "--details",
		"--storage", dir, "--base-url", "https://example.com/run")
	if err != nil {
		t.Fatalf("healthcheck error = %v", err)
	}

	for _, want := range []string{
		"Storage directory exists",
		"Backend: json",
		"Found 2 chat(s)",
		"1 chat(s) without a transcript",
		"Endpoint configured",
		"Base URL: https://example.com/run",
		"Chats: 2",
		"ready to chat",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestHealthcheckCommand_NoEndpoint(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteJSONSnapshot(t, dir, map[string]string{"trip": "run_abc123"})
	testutil.WriteTranscript(t, dir, "trip", testutil.Exchange{User: "hi", Assistant: "hello"})

	stdout, _, err := runCommand(t, "", "healthcheck", "--storage", dir)
	if err != nil {
		t.Fatalf("healthcheck error = %v", err)
	}
	if !strings.Contains(stdout, "No endpoint configured") || !strings.Contains(stdout, "All transcripts present") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestHealthcheckCommand_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chats.json", "not json at all")

	stdout, _, err := runCommand(t, "", "healthcheck", "--storage", dir)
	if !errors.Is(err, ledger.ErrCorruptState) {
		t.Fatalf("error = %v, want corrupt state", err)
	}
	if !strings.Contains(stdout, "Failed to load chat index") {
		t.Errorf("stdout = %q", stdout)
	}
}
