package protocol

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	ErrProtocol  = errors.New("protocol error")
	ErrTransport = errors.New("transport error")
)

const maxSnippet = 200

// ProtocolError reports a response that lacks the session identifier
type ProtocolError struct {
	Header string
	Status int
	Body   string
}

func (e *ProtocolError) Error() string {
	if e == nil {
		return ErrProtocol.Error()
	}
	msg := fmt.Sprintf("%s: response (status %d) has no %q header", ErrProtocol, e.Status, e.Header)
	if e.Body != "" {
		msg += fmt.Sprintf("; body: %q", e.Body)
	}
	return msg
}

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

// TransportError reports a failed request or a non-2xx status
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ErrTransport.Error()
	}
	msg := fmt.Sprintf("%s: %s %s", ErrTransport, e.Method, e.URL)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += fmt.Sprintf("; body: %q", e.Body)
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func snippet(body []byte) string {
	s := string(body)
	if len(s) <= maxSnippet {
		return s
	}
	cut := maxSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
