package export

import "github.com/coderFeedForwardAlg/web-term/internal"

// chatDocument is the structured export shape shared by the json and yaml formats
type chatDocument struct {
	Chat      string        `json:"chat" yaml:"chat"`
	SessionID string        `json:"session_id" yaml:"session_id"`
	Exchanges []exchangeDoc `json:"exchanges" yaml:"exchanges"`
}

type exchangeDoc struct {
	Turn      int    `json:"turn" yaml:"turn"`
	User      string `json:"user" yaml:"user"`
	Assistant string `json:"assistant" yaml:"assistant"`
}

// newChatDocument pairs each user message with the reply that follows it.
// A reply without a preceding question gets a turn of its own.
func newChatDocument(session *internal.Session) chatDocument {
	doc := chatDocument{
		Chat:      session.Name,
		SessionID: session.SessionID,
		Exchanges: make([]exchangeDoc, 0, session.Metadata.ExchangeCount),
	}
	open := false
	for _, msg := range session.Messages {
		switch {
		case msg.Actor == internal.ActorUser:
			doc.Exchanges = append(doc.Exchanges, exchangeDoc{Turn: len(doc.Exchanges) + 1, User: msg.Content})
			open = true
		case open:
			doc.Exchanges[len(doc.Exchanges)-1].Assistant = msg.Content
			open = false
		default:
			doc.Exchanges = append(doc.Exchanges, exchangeDoc{Turn: len(doc.Exchanges) + 1, Assistant: msg.Content})
		}
	}
	return doc
}
