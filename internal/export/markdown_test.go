package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		session *internal.Session
		want    []string
		notWant []string
	}{
		{
			name:    "basic session",
			session: internal.CreateTestSession("trip"),
			want: []string{
				"# Chat trip",
				"**Session:** `run_trip`",
				"**Exchanges:** 1",
				"**User:**\n\nPlan a weekend in Kyoto",
				"**AI:**\n\nHere are three itinerary options...",
			},
		},
		{
			name: "empty reply",
			session: internal.CreateTestSessionWithMessages("quiet", []internal.Message{
				{Actor: internal.ActorUser, Content: "hello?"},
				{Actor: internal.ActorAssistant, Content: ""},
			}),
			want: []string{"_(empty reply)_"},
		},
		{
			name: "markdown escaped outside code",
			session: internal.CreateTestSessionWithMessages("code", []internal.Message{
				{Actor: internal.ActorUser, Content: "**bold**"},
				{Actor: internal.ActorAssistant, Content: "```\n**kept**\n```"},
			}),
			want:    []string{"\\*\\*bold\\*\\*", "**kept**"},
			notWant: []string{"\\*\\*kept"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&MarkdownExporter{}).Export(tt.session, &buf); err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestMarkdownExporter_RulesBetweenExchanges(t *testing.T) {
	session := internal.CreateTestSessionWithMessages("trip", []internal.Message{
		{Actor: internal.ActorUser, Content: "u1"},
		{Actor: internal.ActorAssistant, Content: "a1"},
		{Actor: internal.ActorUser, Content: "u2"},
		{Actor: internal.ActorAssistant, Content: "a2"},
	})

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	// one rule under the header, one between the two exchanges
	if got := strings.Count(buf.String(), "---\n"); got != 2 {
		t.Errorf("got %d rules, want 2:\n%s", got, buf.String())
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "a **b** c", want: "a \\*\\*b\\*\\* c"},
		{in: "__init__", want: "\\_\\_init\\_\\_"},
		{in: "```go\n__x__\n```", want: "```go\n__x__\n```"},
	}
	for _, tt := range tests {
		if got := escapeMarkdown(tt.in); got != tt.want {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
