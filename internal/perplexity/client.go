// Package perplexity is a minimal client for the Perplexity chat completions
// endpoint. It sends one user message per request and hands back both the
// raw JSON body and the fields pplx displays.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public API endpoint root.
const DefaultBaseURL = "https://api.perplexity.ai"

// maxErrorBody caps how much of a failed response is echoed back in errors.
const maxErrorBody = 4 << 10

// ErrNoContent is returned by Response.Text when the response carries no
// assistant message.
var ErrNoContent = errors.New("no content in response")

// Client posts queries to the chat completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a Client. A zero timeout disables the client-side deadline; the
// caller's context still applies.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

// Response is a decoded chat completion.
type Response struct {
	// Raw is the unmodified response body.
	Raw json.RawMessage

	Content    string
	HasContent bool
	Citations  []string
}

type wireResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations json.RawMessage `json:"citations"`
}

// Query sends query to model and returns the decoded response. Non-2xx
// statuses are returned as errors carrying the status and response body.
func (c *Client) Query(ctx context.Context, model, query string) (*Response, error) {
	body, err := json.Marshal(request{
		Model:    model,
		Messages: []message{{Role: "user", Content: query}},
	})
	if err != nil {
		return nil, fmt.Errorf("perplexity: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("perplexity: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perplexity: reach API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(msg))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("perplexity: read response: %w", err)
	}
	return Decode(raw)
}

// Decode parses a chat completion body. A content field that is not a string
// counts as missing, and citations that are not strings are dropped.
func Decode(raw []byte) (*Response, error) {
	var w wireResponse
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("perplexity: parse response: %w", err)
	}

	out := &Response{Raw: json.RawMessage(raw)}
	if len(w.Choices) > 0 {
		var content *string
		if json.Unmarshal(w.Choices[0].Message.Content, &content) == nil && content != nil {
			out.Content = *content
			out.HasContent = true
		}
	}
	var cites []json.RawMessage
	if json.Unmarshal(w.Citations, &cites) == nil {
		for _, c := range cites {
			var s *string
			if json.Unmarshal(c, &s) == nil && s != nil {
				out.Citations = append(out.Citations, *s)
			}
		}
	}
	return out, nil
}

// Text returns the assistant message, or ErrNoContent if there is none.
func (r *Response) Text() (string, error) {
	if !r.HasContent {
		return "", ErrNoContent
	}
	return r.Content, nil
}

// Indented returns the raw body pretty-printed with two-space indentation.
func (r *Response) Indented() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
		return nil, fmt.Errorf("perplexity: indent response: %w", err)
	}
	return buf.Bytes(), nil
}

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("perplexity: API returned %s", e.Status)
	}
	return fmt.Sprintf("perplexity: API returned %s: %s", e.Status, e.Body)
}

const thinkClose = "</think>"

// StripThinking drops everything up to and including the first </think>
// marker, plus the whitespace that follows it. Text without the marker is
// returned unchanged.
func StripThinking(text string) string {
	i := strings.Index(text, thinkClose)
	if i < 0 {
		return text
	}
	return strings.TrimLeft(text[i+len(thinkClose):], " \t\r\n")
}
