package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

// RecordedRequest is one request seen by a FakeEndpoint
type RecordedRequest struct {
	Method      string
	Path        string
	EscapedPath string
	RequestID   string
	Message     string
}

// FakeEndpoint imitates the remote conversational endpoint. POST creates a
// session and answers with its id in the session header, PUT /<id> continues it.
type FakeEndpoint struct {
	Server        *httptest.Server
	SessionHeader string
	// Reply builds the reply text; it defaults to echoing the message.
	Reply func(sessionID, message string) string

	mu       sync.Mutex
	requests []RecordedRequest
	sessions map[string][]string
}

// NewFakeEndpoint starts an endpoint that is closed when the test ends
func NewFakeEndpoint(t *testing.T) *FakeEndpoint {
	t.Helper()
	e := &FakeEndpoint{
		SessionHeader: "x-toolhouse-run-id",
		Reply: func(_, message string) string {
			return "echo: " + message
		},
		sessions: map[string][]string{},
	}
	e.Server = httptest.NewServer(http.HandlerFunc(e.handle))
	t.Cleanup(e.Server.Close)
	return e
}

// URL returns the base URL of the endpoint
func (e *FakeEndpoint) URL() string { return e.Server.URL }

// Requests returns a copy of every request received so far
func (e *FakeEndpoint) Requests() []RecordedRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]RecordedRequest, len(e.requests))
	copy(out, e.requests)
	return out
}

// Messages returns the messages received by one session
func (e *FakeEndpoint) Messages(sessionID string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.sessions[sessionID]...)
}

// Sessions returns the number of sessions created
func (e *FakeEndpoint) Sessions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

func (e *FakeEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	e.mu.Lock()
	e.requests = append(e.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		EscapedPath: r.URL.EscapedPath(),
		RequestID:   r.Header.Get("X-Request-Id"),
		Message:     req.Message,
	})

	var sessionID string
	switch r.Method {
	case http.MethodPost:
		sessionID = "run_" + uuid.NewString()
		e.sessions[sessionID] = nil
		w.Header().Set(e.SessionHeader, sessionID)
	case http.MethodPut:
		sessionID = strings.TrimPrefix(r.URL.Path, "/")
		if _, ok := e.sessions[sessionID]; !ok {
			e.mu.Unlock()
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
	default:
		e.mu.Unlock()
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	e.sessions[sessionID] = append(e.sessions[sessionID], req.Message)
	reply := e.Reply
	e.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"response": reply(sessionID, req.Message)})
}
