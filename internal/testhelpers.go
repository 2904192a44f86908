package internal

// CreateTestSession creates a test session with one exchange
func CreateTestSession(name string) *Session {
	return &Session{
		Name:      name,
		SessionID: "run_" + name,
		Messages: []Message{
			{Actor: ActorUser, Content: "Plan a weekend in Kyoto"},
			{Actor: ActorAssistant, Content: "Here are three itinerary options..."},
		},
		Metadata: Metadata{
			TranscriptPath: name + ".txt",
			Backend:        "json",
			ExchangeCount:  1,
			MessageCount:   2,
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(name string, messages []Message) *Session {
	exchanges := 0
	for _, m := range messages {
		if m.Actor == ActorUser {
			exchanges++
		}
	}
	return &Session{
		Name:      name,
		SessionID: "run_" + name,
		Messages:  messages,
		Metadata: Metadata{
			TranscriptPath: name + ".txt",
			ExchangeCount:  exchanges,
			MessageCount:   len(messages),
		},
	}
}
