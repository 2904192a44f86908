package internal

// Session is a read-only view of one named chat and its transcript
type Session struct {
	Name      string    `json:"name" yaml:"name"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	Messages  []Message `json:"messages" yaml:"messages"`
	Metadata  Metadata  `json:"metadata" yaml:"metadata"`
}

// Message represents one side of an exchange
type Message struct {
	Actor   string `json:"actor" yaml:"actor"` // "user", "assistant"
	Content string `json:"content" yaml:"content"`
}

// Metadata contains additional chat information
type Metadata struct {
	TranscriptPath string `json:"transcript_path,omitempty" yaml:"transcript_path,omitempty"`
	Backend        string `json:"backend,omitempty" yaml:"backend,omitempty"`
	ExchangeCount  int    `json:"exchange_count" yaml:"exchange_count"`
	MessageCount   int    `json:"message_count" yaml:"message_count"`
}

const (
	ActorUser      = "user"
	ActorAssistant = "assistant"
)
