package cmd

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/coderFeedForwardAlg/web-term/internal/ledger"
	"github.com/coderFeedForwardAlg/web-term/internal/protocol"
	"github.com/coderFeedForwardAlg/web-term/testutil"
)

func TestNewCommand_CreatesChat(t *testing.T) {
	endpoint := testutil.NewFakeEndpoint(t)
	dir := t.TempDir()

	stdout, stderr, err := runCommand(t, "", "new", "trip", "Plan", "a", "weekend", "in", "Kyoto",
		"--base-url", endpoint.URL(), "--storage", dir)
	if err != nil {
		t.Fatalf("new error = %v", err)
	}

	if !strings.Contains(stdout, "AI: echo: Plan a weekend in Kyoto") {
		t.Errorf("stdout = %q, want the reply", stdout)
	}
	if !strings.Contains(stderr, `New chat "trip" started with ID: run_`) {
		t.Errorf("stderr = %q, want the confirmation", stderr)
	}

	got := testutil.ReadFile(t, dir, "trip.txt")
	want := "User: Plan a weekend in Kyoto\nAI: echo: Plan a weekend in Kyoto\n\n"
	if got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}

	l, err := ledger.Load(dir)
	if err != nil {
		t.Fatalf("ledger.Load() error = %v", err)
	}
	sessionID, err := l.Resolve("trip")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if msgs := endpoint.Messages(sessionID); len(msgs) != 1 || msgs[0] != "Plan a weekend in Kyoto" {
		t.Errorf("endpoint messages for %s = %v", sessionID, msgs)
	}
}

func TestNewCommand_DuplicateNameSkipsEndpoint(t *testing.T) {
	endpoint := testutil.NewFakeEndpoint(t)
	dir := t.TempDir()
	testutil.WriteJSONSnapshot(t, dir, map[string]string{"trip": "run_abc123"})
	before := testutil.ReadFile(t, dir, "chats.json")

	_, _, err := runCommand(t, "", "new", "trip", "hello", "--base-url", endpoint.URL(), "--storage", dir)
	if !errors.Is(err, ledger.ErrDuplicateName) {
		t.Fatalf("error = %v, want duplicate name", err)
	}
	if n := len(endpoint.Requests()); n != 0 {
		t.Errorf("endpoint received %d request(s), want 0", n)
	}
	if after := testutil.ReadFile(t, dir, "chats.json"); after != before {
		t.Errorf("snapshot changed:\nbefore %q\nafter  %q", before, after)
	}
}

func TestNewCommand_Validation(t *testing.T) {
	endpoint := testutil.NewFakeEndpoint(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "missing message", args: []string{"new", "trip"}},
		{name: "blank message", args: []string{"new", "trip", "   "}},
		{name: "name with separator", args: []string{"new", "a/b", "hello"}, wantErr: ledger.ErrInvalidName},
		{name: "dot name", args: []string{"new", "..", "hello"}, wantErr: ledger.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append(tt.args, "--base-url", endpoint.URL(), "--storage", dir)
			_, _, err := runCommand(t, "", args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if testutil.FileExists(t, dir, "chats.json") {
				t.Error("no snapshot should be written")
			}
		})
	}
	if n := len(endpoint.Requests()); n != 0 {
		t.Errorf("endpoint received %d request(s), want 0", n)
	}
}

func TestNewCommand_RequiresEndpoint(t *testing.T) {
	_, _, err := runCommand(t, "", "new", "trip", "hello", "--storage", t.TempDir())
	var cfgErr *internal.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Key != "base-url" {
		t.Fatalf("error = %v, want ConfigError for base-url", err)
	}
}

func TestNewCommand_MissingSessionHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "hi"}`))
	}))
	defer server.Close()
	dir := t.TempDir()

	_, _, err := runCommand(t, "", "new", "trip", "hello", "--base-url", server.URL, "--storage", dir)
	if !errors.Is(err, protocol.ErrProtocol) {
		t.Fatalf("error = %v, want protocol error", err)
	}
	if testutil.FileExists(t, dir, "chats.json") || testutil.FileExists(t, dir, "trip.txt") {
		t.Error("nothing may be stored when the session id is missing")
	}
}

func TestNewCommand_CustomSessionHeader(t *testing.T) {
	endpoint := testutil.NewFakeEndpoint(t)
	endpoint.SessionHeader = "X-Conversation"
	dir := t.TempDir()

	_, _, err := runCommand(t, "", "new", "trip", "hello",
		"--base-url", endpoint.URL(), "--storage", dir, "--session-header", "x-conversation")
	if err != nil {
		t.Fatalf("new error = %v", err)
	}
	if !testutil.FileExists(t, dir, "trip.txt") {
		t.Error("transcript not written")
	}
}

func TestNewCommand_Backends(t *testing.T) {
	files := map[string]string{"json": "chats.json", "sqlite": "chats.db", "bolt": "chats.bolt"}
	endpoint := testutil.NewFakeEndpoint(t)

	for backend, file := range files {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			_, _, err := runCommand(t, "", "new", "trip", "hello",
				"--base-url", endpoint.URL(), "--storage", dir, "--backend", backend)
			if err != nil {
				t.Fatalf("new error = %v", err)
			}
			if !testutil.FileExists(t, dir, file) {
				t.Errorf("%s not written", file)
			}

			stdout, _, err := runCommand(t, "", "list", "--storage", dir, "--backend", backend)
			if err != nil {
				t.Fatalf("list error = %v", err)
			}
			if !strings.Contains(stdout, "trip") {
				t.Errorf("list output = %q, want trip", stdout)
			}
		})
	}
}

func TestNewCommand_Interactive(t *testing.T) {
	endpoint := testutil.NewFakeEndpoint(t)
	dir := t.TempDir()

	stdout, _, err := runCommand(t, "more please\nexit\n", "new", "trip", "hello", "-i",
		"--base-url", endpoint.URL(), "--storage", dir)
	if err != nil {
		t.Fatalf("new -i error = %v", err)
	}
	if !strings.Contains(stdout, "AI: echo: more please") {
		t.Errorf("stdout = %q", stdout)
	}

	want := "User: hello\nAI: echo: hello\n\nUser: more please\nAI: echo: more please\n\n"
	if got := testutil.ReadFile(t, dir, "trip.txt"); got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
	if endpoint.Sessions() != 1 {
		t.Errorf("sessions = %d, want 1", endpoint.Sessions())
	}
}

func TestNewCommand_EmptyReplyWarns(t *testing.T) {
	endpoint := testutil.NewFakeEndpoint(t)
	endpoint.Reply = func(_, _ string) string { return "" }
	dir := t.TempDir()

	_, stderr, err := runCommand(t, "", "new", "trip", "hello", "--base-url", endpoint.URL(), "--storage", dir)
	if err != nil {
		t.Fatalf("new error = %v", err)
	}
	if !strings.Contains(stderr, "WARNING: the endpoint returned an empty reply") {
		t.Errorf("stderr = %q, want an empty reply warning", stderr)
	}
	if got := testutil.ReadFile(t, dir, "trip.txt"); got != "User: hello\nAI: \n\n" {
		t.Errorf("transcript = %q", got)
	}
}

func TestNewCommand_SaveFailure(t *testing.T) {
	endpoint := testutil.NewFakeEndpoint(t)
	dir := t.TempDir()
	// a directory where the snapshot temp file goes makes every save fail
	if err := os.Mkdir(filepath.Join(dir, "chats.json.tmp"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCommand(t, "", "new", "trip", "hello", "--base-url", endpoint.URL(), "--storage", dir)
	var storageErr *internal.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("error = %v, want *StorageError", err)
	}
	if endpoint.Sessions() != 1 {
		t.Errorf("sessions = %d, want 1", endpoint.Sessions())
	}
	if testutil.FileExists(t, dir, "trip.txt") || testutil.FileExists(t, dir, "chats.json") {
		t.Error("an unsaved chat must not leave a transcript or snapshot")
	}
}
