package protocol

import (
	"encoding/json"
	"net/http"
	"strings"
)

// DefaultSessionHeader carries the session id on creation responses
const DefaultSessionHeader = "x-toolhouse-run-id"

// SessionIDExtractor pulls the session identifier out of a creation response.
// body is the already-read response body.
type SessionIDExtractor interface {
	ExtractSessionID(resp *http.Response, body []byte) (string, error)
}

// HeaderExtractor reads the session id from a response header.
// Header lookup is case-insensitive.
type HeaderExtractor struct {
	Header string
}

func (h HeaderExtractor) ExtractSessionID(resp *http.Response, body []byte) (string, error) {
	name := h.Header
	if name == "" {
		name = DefaultSessionHeader
	}
	id := strings.TrimSpace(resp.Header.Get(name))
	if id == "" {
		return "", &ProtocolError{Header: name, Status: resp.StatusCode, Body: snippet(body)}
	}
	return id, nil
}

// ExtractReply returns the "response" string of a JSON object body, or the
// body text verbatim when there is no such field.
func ExtractReply(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		if raw, ok := obj["response"]; ok {
			// null decodes into *string without error, so only a non-nil result is a reply
			var reply *string
			if err := json.Unmarshal(raw, &reply); err == nil && reply != nil {
				return *reply
			}
		}
	}
	return string(body)
}
