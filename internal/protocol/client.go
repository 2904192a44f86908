// Package protocol talks to the remote conversational endpoint: POST to
// create a session, PUT to continue one.
package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

// RequestIDHeader is set on every outgoing request for log correlation
const RequestIDHeader = "X-Request-Id"

type messageRequest struct {
	Message string `json:"message"`
}

// Client is a synchronous client for one endpoint. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	extractor  SessionIDExtractor
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSessionHeader reads the session id from a different header
func WithSessionHeader(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.extractor = HeaderExtractor{Header: name}
		}
	}
}

// WithExtractor replaces the session id extraction entirely
func WithExtractor(e SessionIDExtractor) Option {
	return func(c *Client) {
		if e != nil {
			c.extractor = e
		}
	}
}

// NewClient validates baseURL and returns a client for it
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("unsupported base URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.Errorf("base URL %q has no host", baseURL)
	}

	c := &Client{
		baseURL:    base,
		httpClient: http.DefaultClient,
		extractor:  HeaderExtractor{Header: DefaultSessionHeader},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized endpoint
func (c *Client) BaseURL() string { return c.baseURL }

// CreateSession posts the first message and returns the new session id with
// the first reply.
func (c *Client) CreateSession(ctx context.Context, message string) (string, string, error) {
	resp, body, err := c.send(ctx, http.MethodPost, c.baseURL, message)
	if err != nil {
		return "", "", err
	}

	sessionID, err := c.extractor.ExtractSessionID(resp, body)
	if err != nil {
		return "", "", err
	}
	internal.LogDebug("Created session %s", sessionID)
	return sessionID, ExtractReply(body), nil
}

// ContinueSession sends a message into an existing session and returns the reply
func (c *Client) ContinueSession(ctx context.Context, sessionID, message string) (string, error) {
	target := c.baseURL + "/" + url.PathEscape(sessionID)
	_, body, err := c.send(ctx, http.MethodPut, target, message)
	if err != nil {
		return "", err
	}
	return ExtractReply(body), nil
}

// send performs one request and reads the full body. Any non-2xx status is
// a *TransportError.
func (c *Client) send(ctx context.Context, method, target, message string) (*http.Response, []byte, error) {
	payload, err := json.Marshal(messageRequest{Message: message})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, &TransportError{Method: method, URL: target, Err: errors.Wrap(err, "failed to build request")}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	internal.LogDebug("%s %s (request %s)", method, target, requestID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Method: method, URL: target, Err: errors.Wrap(err, "request failed")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        errors.Wrap(err, "failed to read response body"),
		}
	}
	internal.LogDebug("%s %s -> %d, %d bytes (request %s)", method, target, resp.StatusCode, len(body), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
		}
	}
	return resp, body, nil
}
