package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestExtractTasks(t *testing.T) {
	content := `{"tasks":[{"name":"Pay invoice #42","priority":1,"due_date":"2026-09-01","source":"billing@acme.com: Invoice overdue"},{"name":"RSVP to offsite","priority":9}],"summary":"Two actionable emails"}`
	srv := chatServer(t, content)
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "", time.Second, false).WithBaseURL(srv.URL)
	out, err := p.ExtractTasks(context.Background(), "1. From: billing@acme.com ...")
	require.NoError(t, err)

	assert.Equal(t, "Two actionable emails", out.Summary)
	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "Pay invoice #42", out.Tasks[0].Name)
	assert.Equal(t, 1, out.Tasks[0].Priority)
	assert.Equal(t, "billing@acme.com: Invoice overdue", out.Tasks[0].Source)
	// Out-of-range priority collapses to medium, empty due date to today.
	assert.Equal(t, 2, out.Tasks[1].Priority)
	assert.Equal(t, time.Now().Format("2006-01-02"), out.Tasks[1].DueDate)
}

func TestExtractTasksBadJSON(t *testing.T) {
	srv := chatServer(t, "sorry, no JSON today")
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "", time.Second, false).WithBaseURL(srv.URL)
	_, err := p.ExtractTasks(context.Background(), "emails")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse extraction response")
}

func TestExtractTasksAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-bad", "", time.Second, false).WithBaseURL(srv.URL)
	_, err := p.ExtractTasks(context.Background(), "emails")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultEmbeddingModel, req.Model)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "", time.Second, false).WithBaseURL(srv.URL)
	vec, err := p.Embed(context.Background(), "File taxes")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestDeepSeekEmbedUnsupported(t *testing.T) {
	p := NewDeepSeekProvider("ds-test", "", time.Second, false)
	_, err := p.Embed(context.Background(), "anything")
	assert.Error(t, err)
}
