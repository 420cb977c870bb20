package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/taskslip/taskslip/models"
	"github.com/taskslip/taskslip/types"
)

// Embedder produces the vector stored alongside a task. A nil Embedder
// or an (nil, nil) return disables semantic search for that row.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SQLStore implements TaskStore on SQLite (modernc driver) or a remote
// Turso/libSQL database, selected by configuration.
type SQLStore struct {
	db       *sql.DB
	embedder Embedder
	log      *logrus.Logger
}

type Option func(*SQLStore)

// WithEmbedder enables embedding generation on Add and semantic
// ranking in FindSimilar.
func WithEmbedder(e Embedder) Option {
	return func(s *SQLStore) { s.embedder = e }
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *SQLStore) { s.log = l }
}

// Open connects to the configured database and ensures the schema
// exists. Remote Turso databases win over the local file path.
func Open(cfg types.DatabaseConfig, opts ...Option) (*SQLStore, error) {
	var (
		db  *sql.DB
		err error
	)
	if cfg.TursoURL != "" {
		dsn := cfg.TursoURL
		if cfg.TursoAuth != "" {
			dsn += "?authToken=" + url.QueryEscape(cfg.TursoAuth)
		}
		db, err = sql.Open("libsql", dsn)
	} else {
		path := cfg.Path
		if path == "" {
			path = "tasks.db"
		}
		if path != ":memory:" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("create database directory: %w", err)
				}
			}
		}
		db, err = sql.Open("sqlite", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLStore{db: db, log: logrus.New()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'todo',
		priority INTEGER NOT NULL,
		due_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		source TEXT,
		embedding BLOB
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// embedText mirrors the agent's duplicate check: the task name plus its
// email context when present.
func embedText(t models.Task) string {
	if t.Source != "" {
		return t.Name + " Context: " + t.Source
	}
	return t.Name
}

func (s *SQLStore) Add(ctx context.Context, task models.Task) (models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	if s.embedder != nil && task.Embedding == nil {
		vec, err := s.embedder.Embed(ctx, embedText(task))
		if err != nil {
			// A failed embedding downgrades the row to text search only.
			s.log.WithError(err).Warn("embedding generation failed, storing task without vector")
		} else {
			task.Embedding = vec
		}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (name, status, priority, due_date, created_at, source, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.Name, string(task.Status), task.Priority.Level(), task.DueDate,
		task.CreatedAt.Format(time.RFC3339), nullable(task.Source), encodeVector(task.Embedding),
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	task.ID = id
	return task, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const taskColumns = `id, name, status, priority, due_date, created_at, source`

func scanTask(scanner interface{ Scan(...any) error }) (models.Task, error) {
	var (
		t         models.Task
		status    string
		priority  int
		createdAt string
		source    sql.NullString
	)
	if err := scanner.Scan(&t.ID, &t.Name, &status, &priority, &t.DueDate, &createdAt, &source); err != nil {
		return models.Task{}, err
	}
	t.Status = models.TaskStatus(status)
	t.Priority = models.PriorityFromLevel(priority)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	t.Source = source.String
	return t, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *SQLStore) Recent(ctx context.Context, limit int) ([]models.Task, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLStore) SearchByName(ctx context.Context, query string, limit int) ([]models.Task, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE name LIKE ? ORDER BY created_at DESC LIMIT ?`,
		"%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// FindSimilar embeds the query and ranks stored vectors by cosine
// distance. Plain SQLite has no vector index, so the scan happens in Go
// over rows that carry embeddings; the ordering contract matches
// libSQL's vector_top_k ascending by distance.
func (s *SQLStore) FindSimilar(ctx context.Context, query string, limit int) ([]models.Task, error) {
	if limit <= 0 {
		limit = 5
	}
	if s.embedder == nil {
		return s.SearchByName(ctx, query, limit)
	}
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil || len(queryVec) == 0 {
		if err != nil {
			s.log.WithError(err).Warn("query embedding failed, falling back to name search")
		}
		return s.SearchByName(ctx, query, limit)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+`, embedding FROM tasks WHERE embedding IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("similarity scan: %w", err)
	}
	defer rows.Close()

	var scored []models.Task
	for rows.Next() {
		var (
			t         models.Task
			status    string
			priority  int
			createdAt string
			source    sql.NullString
			blob      []byte
		)
		if err := rows.Scan(&t.ID, &t.Name, &status, &priority, &t.DueDate, &createdAt, &source, &blob); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			s.log.WithError(err).WithField("task_id", t.ID).Warn("skipping task with corrupt embedding")
			continue
		}
		t.Status = models.TaskStatus(status)
		t.Priority = models.PriorityFromLevel(priority)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			t.CreatedAt = ts
		}
		t.Source = source.String
		d := cosineDistance(queryVec, vec)
		t.SimilarityDistance = &d
		scored = append(scored, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return s.SearchByName(ctx, query, limit)
	}

	sortByDistance(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func sortByDistance(tasks []models.Task) {
	// Insertion sort: candidate sets are small (every embedded task in a
	// personal database).
	for i := 1; i < len(tasks); i++ {
		for j := i; j > 0 && *tasks[j].SimilarityDistance < *tasks[j-1].SimilarityDistance; j-- {
			tasks[j], tasks[j-1] = tasks[j-1], tasks[j]
		}
	}
}

func (s *SQLStore) SetStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByStatus: map[models.TaskStatus]int{}}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, priority, COUNT(*) FROM tasks GROUP BY status, priority`)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status   string
			priority int
			count    int
		)
		if err := rows.Scan(&status, &priority, &count); err != nil {
			return Stats{}, err
		}
		stats.Total += count
		stats.ByStatus[models.TaskStatus(status)] += count
		switch models.PriorityFromLevel(priority) {
		case models.PriorityHigh:
			stats.High += count
		case models.PriorityLow:
			stats.Low += count
		default:
			stats.Medium += count
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	today := time.Now().Format("2006-01-02")
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE substr(due_date, 1, 10) = ?`, today).Scan(&stats.DueToday)
	if err != nil {
		return Stats{}, fmt.Errorf("stats due today: %w", err)
	}
	return stats, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
