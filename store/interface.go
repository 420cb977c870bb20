package store

import (
	"context"
	"errors"

	"github.com/taskslip/taskslip/models"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// Stats summarizes the task table for the dashboard.
type Stats struct {
	Total    int                       `json:"total"`
	High     int                       `json:"high_priority"`
	Medium   int                       `json:"medium_priority"`
	Low      int                       `json:"low_priority"`
	DueToday int                       `json:"due_today"`
	ByStatus map[models.TaskStatus]int `json:"by_status"`
}

// TaskStore is the persistence contract shared by the CLI, the
// extraction agent, the dashboard and the Notion sync.
type TaskStore interface {
	// Add persists a task, generating an embedding when a backend is
	// configured, and returns the task with its assigned ID.
	Add(ctx context.Context, task models.Task) (models.Task, error)
	Get(ctx context.Context, id int64) (models.Task, error)
	// Recent returns up to limit tasks, newest first.
	Recent(ctx context.Context, limit int) ([]models.Task, error)
	// FindSimilar ranks tasks by embedding distance to the query,
	// falling back to name search when embeddings are unavailable.
	FindSimilar(ctx context.Context, query string, limit int) ([]models.Task, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Task, error)
	SetStatus(ctx context.Context, id int64, status models.TaskStatus) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
