package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	openAIBaseURL   = "https://api.openai.com/v1"
	deepSeekBaseURL = "https://api.deepseek.com/v1"

	defaultOpenAIModel   = "gpt-4o-mini"
	defaultDeepSeekModel = "deepseek-chat"

	// text-embedding-3-small, 1536 dimensions.
	defaultEmbeddingModel = "text-embedding-3-small"
)

// OpenAIProvider implements Provider and Embedder against any
// OpenAI-compatible chat-completions API (OpenAI itself, DeepSeek).
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string

	embeddingModel string

	httpClient *http.Client
	debug      bool
}

// NewOpenAIProvider creates a provider for api.openai.com.
func NewOpenAIProvider(apiKey, model string, timeout time.Duration, debug bool) *OpenAIProvider {
	return newProvider(apiKey, openAIBaseURL, model, defaultOpenAIModel, timeout, debug)
}

// NewDeepSeekProvider creates a provider for DeepSeek's
// OpenAI-compatible endpoint. DeepSeek has no embedding models; Embed
// returns an error.
func NewDeepSeekProvider(apiKey, model string, timeout time.Duration, debug bool) *OpenAIProvider {
	return newProvider(apiKey, deepSeekBaseURL, model, defaultDeepSeekModel, timeout, debug)
}

func newProvider(apiKey, baseURL, model, fallbackModel string, timeout time.Duration, debug bool) *OpenAIProvider {
	if model == "" {
		model = fallbackModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIProvider{
		apiKey:         apiKey,
		baseURL:        baseURL,
		model:          model,
		embeddingModel: defaultEmbeddingModel,
		httpClient:     &http.Client{Timeout: timeout},
		debug:          debug,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (p *OpenAIProvider) WithBaseURL(u string) *OpenAIProvider {
	p.baseURL = strings.TrimSuffix(u, "/")
	return p
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"` // e.g., "json_object"
}

type chatMessage struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// extractionPrompt asks for a strict JSON object so the response parses
// with response_format json_object.
func extractionPrompt(emailsText string) string {
	today := time.Now().Format("2006-01-02")
	return fmt.Sprintf(`Analyze these emails and extract actionable tasks. Ignore promotional emails.

Emails:
%s

For each actionable email, create a task with:
- name: Clear task description
- priority: 1 (HIGH), 2 (MEDIUM), or 3 (LOW)
- due_date: ISO format date (today is %s; pick a reasonable deadline based on urgency)
- source: short reference to the originating email (sender and subject)

Return JSON with format:
{"tasks": [{"name": "...", "priority": 1, "due_date": "%s", "source": "..."}], "summary": "Brief summary of what was found"}

If no actionable tasks, return: {"tasks": [], "summary": "No actionable tasks found"}
`, emailsText, today, today)
}

func (p *OpenAIProvider) ExtractTasks(ctx context.Context, emailsText string) (Extraction, error) {
	payload := chatRequest{
		Model:          p.model,
		Messages:       []chatMessage{{Role: "user", Content: extractionPrompt(emailsText)}},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	var resp chatResponse
	if err := p.post(ctx, "/chat/completions", payload, &resp); err != nil {
		return Extraction{}, err
	}
	if len(resp.Choices) == 0 {
		return Extraction{}, fmt.Errorf("llm returned no choices")
	}

	content := resp.Choices[0].Message.Content
	var out Extraction
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return Extraction{}, fmt.Errorf("parse extraction response: %w", err)
	}
	for i := range out.Tasks {
		if out.Tasks[i].Priority < 1 || out.Tasks[i].Priority > 3 {
			out.Tasks[i].Priority = 2
		}
		if out.Tasks[i].DueDate == "" {
			out.Tasks[i].DueDate = time.Now().Format("2006-01-02")
		}
	}
	if out.Summary == "" {
		out.Summary = "Analysis complete"
	}
	return out, nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.baseURL == deepSeekBaseURL {
		return nil, fmt.Errorf("deepseek has no embedding models")
	}
	var resp embeddingResponse
	if err := p.post(ctx, "/embeddings", embeddingRequest{Model: p.embeddingModel, Input: text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}

func (p *OpenAIProvider) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	if p.debug {
		fmt.Fprintf(os.Stderr, "[llm] POST %s%s %s\n", p.baseURL, path, body)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read llm response: %w", err)
	}
	if p.debug {
		fmt.Fprintf(os.Stderr, "[llm] %d %s\n", resp.StatusCode, raw)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("llm API error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("llm API error: status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode llm response: %w", err)
	}
	return nil
}
