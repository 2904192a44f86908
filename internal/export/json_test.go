package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("trip")

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded chatDocument
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Chat != "trip" || decoded.SessionID != "run_trip" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Exchanges) != 1 {
		t.Fatalf("exchanges = %+v, want 1", decoded.Exchanges)
	}
	got := decoded.Exchanges[0]
	if got.Turn != 1 || got.User != "Plan a weekend in Kyoto" || got.Assistant != "Here are three itinerary options..." {
		t.Errorf("exchange = %+v", got)
	}
}

func TestJSONExporter_EmptyChat(t *testing.T) {
	session := internal.CreateTestSessionWithMessages("blank", nil)

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"exchanges": []`)) {
		t.Errorf("an empty chat should export an empty list:\n%s", buf.String())
	}
}

func TestJSONExporter_NoHTMLEscaping(t *testing.T) {
	session := internal.CreateTestSessionWithMessages("code", []internal.Message{
		{Actor: internal.ActorUser, Content: "is a < b && b > c?"},
		{Actor: internal.ActorAssistant, Content: "yes"},
	})

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("a < b && b > c")) {
		t.Errorf("content was escaped:\n%s", buf.String())
	}
}
