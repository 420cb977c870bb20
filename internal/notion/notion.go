// Package notion publishes tasks to a Notion database through the
// Arcade.dev Notion integration.
package notion

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/taskslip/taskslip/internal/arcade"
	"github.com/taskslip/taskslip/models"
	"github.com/taskslip/taskslip/store"
)

const (
	searchPagesTool = "Notion.SearchPages"
	createPageTool  = "Notion.CreatePage"
)

// Database is a Notion database hit from a search.
type Database struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Sync pushes local tasks into a Notion database.
type Sync struct {
	client     *arcade.Client
	userID     string
	databaseID string
	log        *logrus.Logger
}

func NewSync(client *arcade.Client, userID, databaseID string, log *logrus.Logger) *Sync {
	if log == nil {
		log = logrus.New()
	}
	return &Sync{client: client, userID: userID, databaseID: databaseID, log: log}
}

// EnsureAuthorized checks Notion access; returns *arcade.AuthRequiredError
// with the login URL when the user still needs to approve.
func (s *Sync) EnsureAuthorized(ctx context.Context) error {
	return s.client.EnsureAuthorized(ctx, searchPagesTool, s.userID)
}

// SearchDatabases lists Notion databases matching the query (empty
// query lists all).
func (s *Sync) SearchDatabases(ctx context.Context, query string) ([]Database, error) {
	raw, err := s.client.Execute(ctx, searchPagesTool, map[string]any{
		"query":  query,
		"filter": map[string]any{"property": "object", "value": "database"},
	}, s.userID)
	if err != nil {
		return nil, err
	}
	var dbs []Database
	if err := arcade.DecodeList(raw, &dbs); err != nil {
		return nil, err
	}
	return dbs, nil
}

// pageProperties builds the Notion property payload for one task.
func pageProperties(t models.Task) map[string]any {
	props := map[string]any{
		"Name": map[string]any{
			"title": []map[string]any{{"text": map[string]any{"content": t.Name}}},
		},
		"Status":   map[string]any{"select": map[string]any{"name": t.Status.Label()}},
		"Priority": map[string]any{"select": map[string]any{"name": t.Priority.Label()}},
	}
	if t.DueDate != "" {
		props["Due Date"] = map[string]any{"date": map[string]any{"start": t.DueDate}}
	}
	return props
}

// CreatePage creates one task page in the database.
func (s *Sync) CreatePage(ctx context.Context, databaseID string, t models.Task) error {
	_, err := s.client.Execute(ctx, createPageTool, map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": pageProperties(t),
	}, s.userID)
	return err
}

// Report tallies one publish run.
type Report struct {
	Success int
	Failed  int
	Errors  []string
}

// Publish pushes the tasks to the given database (falling back to the
// configured default). Individual page failures are tallied rather
// than aborting the run.
func (s *Sync) Publish(ctx context.Context, tasks []models.Task, databaseID string) (Report, error) {
	if databaseID == "" {
		databaseID = s.databaseID
	}
	if databaseID == "" {
		return Report{Failed: len(tasks)}, fmt.Errorf("no Notion database ID configured")
	}
	if err := s.EnsureAuthorized(ctx); err != nil {
		return Report{Failed: len(tasks)}, err
	}

	var report Report
	for _, t := range tasks {
		if err := s.CreatePage(ctx, databaseID, t); err != nil {
			s.log.WithError(err).WithField("task", t.Name).Warn("failed to create Notion page")
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("failed to create: %s", t.Name))
			continue
		}
		report.Success++
	}
	return report, nil
}

// SyncRecent publishes up to limit recent local tasks.
func (s *Sync) SyncRecent(ctx context.Context, st store.TaskStore, limit int) (Report, error) {
	if limit <= 0 {
		limit = 100
	}
	tasks, err := st.Recent(ctx, limit)
	if err != nil {
		return Report{}, fmt.Errorf("load local tasks: %w", err)
	}
	return s.Publish(ctx, tasks, "")
}
