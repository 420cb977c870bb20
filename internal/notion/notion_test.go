package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskslip/taskslip/internal/arcade"
	"github.com/taskslip/taskslip/models"
	"github.com/taskslip/taskslip/store"
	"github.com/taskslip/taskslip/types"
)

type capturedPage struct {
	Parent     map[string]any `json:"parent"`
	Properties map[string]any `json:"properties"`
}

func notionStub(t *testing.T, failName string, pages *[]capturedPage, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tools/authorize":
			_, _ = w.Write([]byte(`{"status":"completed"}`))
		case "/tools/execute":
			atomic.AddInt64(calls, 1)
			var req struct {
				ToolName string          `json:"tool_name"`
				Input    json.RawMessage `json:"input"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			switch req.ToolName {
			case "Notion.SearchPages":
				_, _ = w.Write([]byte(`{"output":{"value":{"databases":[{"id":"db-1","title":"Tasks"}]}}}`))
			case "Notion.CreatePage":
				var page capturedPage
				require.NoError(t, json.Unmarshal(req.Input, &page))
				name := page.Properties["Name"].(map[string]any)["title"].([]any)[0].(map[string]any)["text"].(map[string]any)["content"].(string)
				if name == failName {
					_, _ = w.Write([]byte(`{"output":{"error":{"message":"validation failed"}}}`))
					return
				}
				*pages = append(*pages, page)
				_, _ = w.Write([]byte(`{"output":{"value":{"id":"page-1"}}}`))
			}
		}
	}))
}

func TestSearchDatabases(t *testing.T) {
	var (
		pages []capturedPage
		calls int64
	)
	srv := notionStub(t, "", &pages, &calls)
	defer srv.Close()

	s := NewSync(arcade.NewClient("key", arcade.WithEndpoint(srv.URL)), "me@example.com", "", nil)
	dbs, err := s.SearchDatabases(context.Background(), "tasks")
	require.NoError(t, err)
	require.Len(t, dbs, 1)
	assert.Equal(t, "db-1", dbs[0].ID)
	assert.Equal(t, "Tasks", dbs[0].Title)
}

func TestPublishBuildsNotionProperties(t *testing.T) {
	var (
		pages []capturedPage
		calls int64
	)
	srv := notionStub(t, "", &pages, &calls)
	defer srv.Close()

	task := models.NewTask("Pay invoice", models.PriorityHigh, "2026-09-01")
	task.Status = models.StatusInProgress

	s := NewSync(arcade.NewClient("key", arcade.WithEndpoint(srv.URL)), "me@example.com", "db-1", nil)
	report, err := s.Publish(context.Background(), []models.Task{task}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Success)

	require.Len(t, pages, 1)
	page := pages[0]
	assert.Equal(t, "db-1", page.Parent["database_id"])
	status := page.Properties["Status"].(map[string]any)["select"].(map[string]any)["name"]
	assert.Equal(t, "In Progress", status)
	priority := page.Properties["Priority"].(map[string]any)["select"].(map[string]any)["name"]
	assert.Equal(t, "High", priority)
	due := page.Properties["Due Date"].(map[string]any)["date"].(map[string]any)["start"]
	assert.Equal(t, "2026-09-01", due)
}

func TestPublishTalliesFailures(t *testing.T) {
	var (
		pages []capturedPage
		calls int64
	)
	srv := notionStub(t, "Broken task", &pages, &calls)
	defer srv.Close()

	tasks := []models.Task{
		models.NewTask("Good task", models.PriorityMedium, ""),
		models.NewTask("Broken task", models.PriorityMedium, ""),
	}
	s := NewSync(arcade.NewClient("key", arcade.WithEndpoint(srv.URL)), "me@example.com", "db-1", nil)
	report, err := s.Publish(context.Background(), tasks, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Success)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Broken task")
}

func TestPublishRequiresDatabaseID(t *testing.T) {
	s := NewSync(arcade.NewClient("key"), "me@example.com", "", nil)
	_, err := s.Publish(context.Background(), []models.Task{models.NewTask("x", "", "")}, "")
	assert.Error(t, err)
}

func TestSyncRecent(t *testing.T) {
	var (
		pages []capturedPage
		calls int64
	)
	srv := notionStub(t, "", &pages, &calls)
	defer srv.Close()

	st, err := store.Open(types.DatabaseConfig{Path: filepath.Join(t.TempDir(), "tasks.db")})
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	for _, name := range []string{"one", "two", "three"} {
		_, err := st.Add(ctx, models.NewTask(name, models.PriorityMedium, ""))
		require.NoError(t, err)
	}

	s := NewSync(arcade.NewClient("key", arcade.WithEndpoint(srv.URL)), "me@example.com", "db-1", nil)
	report, err := s.SyncRecent(ctx, st, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Success)
	assert.Len(t, pages, 2)
}
