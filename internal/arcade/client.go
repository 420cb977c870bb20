// Package arcade is a minimal client for the Arcade.dev tool platform:
// authorizing a tool for a user and executing tool calls on their
// behalf. Reimplementing the tool-auth protocol itself is out of scope;
// this speaks to the hosted API.
package arcade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultEndpoint = "https://api.arcade.dev/v1"

// AuthRequiredError is returned when a tool is not yet authorized for
// the user; URL is where they must complete the OAuth flow.
type AuthRequiredError struct {
	Tool string
	URL  string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("authorization required for %s: visit %s", e.Tool, e.URL)
}

// ToolError is a failure reported by the tool itself (as opposed to a
// transport or API-level failure).
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed: %s", e.Tool, e.Message)
}

type Option func(*Client)

// WithEndpoint overrides the API endpoint. Meant for tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client talks to the Arcade.dev tools API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logrus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authorizeRequest struct {
	ToolName string `json:"tool_name"`
	UserID   string `json:"user_id"`
}

type authorizeResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// EnsureAuthorized checks whether the tool is authorized for the user.
// It returns nil when authorization is complete and *AuthRequiredError
// with the login URL when the user still has to approve access.
func (c *Client) EnsureAuthorized(ctx context.Context, toolName, userID string) error {
	var resp authorizeResponse
	err := c.post(ctx, "/tools/authorize", authorizeRequest{ToolName: toolName, UserID: userID}, &resp)
	if err != nil {
		return fmt.Errorf("authorize %s: %w", toolName, err)
	}
	if resp.Status == "completed" {
		return nil
	}
	return &AuthRequiredError{Tool: toolName, URL: resp.URL}
}

type executeRequest struct {
	ToolName string         `json:"tool_name"`
	Input    map[string]any `json:"input"`
	UserID   string         `json:"user_id"`
}

type executeResponse struct {
	Output *toolOutput `json:"output"`
}

type toolOutput struct {
	Value json.RawMessage `json:"value"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Execute runs a tool call and returns the raw output value.
func (c *Client) Execute(ctx context.Context, toolName string, input map[string]any, userID string) (json.RawMessage, error) {
	c.log.WithFields(logrus.Fields{"tool": toolName, "user": userID}).Debug("executing arcade tool")

	var resp executeResponse
	if err := c.post(ctx, "/tools/execute", executeRequest{ToolName: toolName, Input: input, UserID: userID}, &resp); err != nil {
		return nil, fmt.Errorf("execute %s: %w", toolName, err)
	}
	if resp.Output == nil {
		return nil, &ToolError{Tool: toolName, Message: "no output in response"}
	}
	if resp.Output.Error != nil {
		return nil, &ToolError{Tool: toolName, Message: resp.Output.Error.Message}
	}
	return resp.Output.Value, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("arcade API status %d: %s", resp.StatusCode, truncate(raw, 200))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// listKeys are the envelope keys Arcade tool outputs wrap lists in.
var listKeys = []string{"emails", "messages", "items", "data", "results", "databases", "pages"}

// DecodeList decodes a tool output value into a slice, tolerating both
// a bare JSON array and an object wrapping the array under a common
// envelope key.
func DecodeList(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err == nil {
		return nil
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("tool output is neither a list nor an object: %w", err)
	}
	for _, key := range listKeys {
		if inner, ok := envelope[key]; ok {
			if err := json.Unmarshal(inner, out); err == nil {
				return nil
			}
		}
	}
	// No known key: leave out empty, mirroring the tolerant behavior of
	// list extraction on unknown shapes.
	return nil
}
