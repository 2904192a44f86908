package ledger

import (
	"io"
	"os"
	"strings"
)

const (
	userPrefix = "User: "
	aiPrefix   = "AI: "
)

// TranscriptEntry is one user message and the reply it received
type TranscriptEntry struct {
	User      string `json:"user" yaml:"user"`
	Assistant string `json:"assistant" yaml:"assistant"`
}

// FormatExchange renders one exchange exactly as it is appended to a transcript
func FormatExchange(user, assistant string) string {
	return userPrefix + user + "\n" + aiPrefix + assistant + "\n\n"
}

// appendTranscript opens path in append mode, writes one exchange and closes it
func appendTranscript(path, user, assistant string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, FormatExchange(user, assistant)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ParseTranscript reads transcript text back into entries.
// A "User: " line opens an entry at the start of the text or after the blank
// separator that closes a reply; the next "AI: " line opens its reply. Any
// other line continues the field in progress, so replies that quote "User: "
// or "AI: " lines stay in one entry. Text before the first entry is ignored.
func ParseTranscript(r io.Reader) ([]TranscriptEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var (
		entries   []TranscriptEntry
		cur       *TranscriptEntry
		inReply   bool
		prevBlank bool
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.User = strings.TrimRight(cur.User, "\n")
		cur.Assistant = strings.TrimRight(cur.Assistant, "\n")
		entries = append(entries, *cur)
		cur = nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		opensEntry := strings.HasPrefix(line, userPrefix) && (cur == nil || (inReply && prevBlank))
		prevBlank = line == ""

		switch {
		case opensEntry:
			flush()
			cur = &TranscriptEntry{User: strings.TrimPrefix(line, userPrefix)}
			inReply = false
		case cur == nil:
			continue
		case !inReply && strings.HasPrefix(line, aiPrefix):
			cur.Assistant = strings.TrimPrefix(line, aiPrefix)
			inReply = true
		case inReply:
			cur.Assistant += "\n" + line
		default:
			cur.User += "\n" + line
		}
	}
	flush()

	if entries == nil {
		entries = []TranscriptEntry{}
	}
	return entries, nil
}

func readTranscript(path string) ([]TranscriptEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []TranscriptEntry{}, nil
		}
		return nil, err
	}
	defer f.Close()
	return ParseTranscript(f)
}
