package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// Label returns the human-facing form used by the dashboard and Notion
// ("To Do", "In Progress", "Done").
func (s TaskStatus) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// StatusFromLabel parses either the enum value or the human-facing label.
func StatusFromLabel(v string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "todo", "to do", "to-do":
		return StatusTodo, nil
	case "in-progress", "in progress", "doing":
		return StatusInProgress, nil
	case "done", "completed":
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown task status %q", v)
}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Level returns the numeric priority stored in the database and spoken
// by the extraction prompt: 1 high, 2 medium, 3 low.
func (p TaskPriority) Level() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	}
	return 2
}

// Label returns the capitalized form used by Notion selects.
func (p TaskPriority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityLow:
		return "Low"
	}
	return "Medium"
}

// PriorityFromLevel maps the numeric wire form back to the enum.
// Unknown levels collapse to medium, matching the extraction default.
func PriorityFromLevel(n int) TaskPriority {
	switch n {
	case 1:
		return PriorityHigh
	case 3:
		return PriorityLow
	}
	return PriorityMedium
}

// Task represents a single captured task. Embedding is populated only
// when an embedding backend is configured; SimilarityDistance is set on
// similarity-search results and never persisted.
type Task struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name" validate:"required,min=1,max=500"`
	Status    TaskStatus   `json:"status" validate:"required,oneof=todo in-progress done"`
	Priority  TaskPriority `json:"priority" validate:"required,oneof=high medium low"`
	DueDate   string       `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt time.Time    `json:"created_at"`
	// Source references the originating email (sender and subject) for
	// tasks captured by the extraction agent.
	Source             string    `json:"source,omitempty"`
	Embedding          []float32 `json:"-"`
	SimilarityDistance *float64  `json:"similarity_distance,omitempty"`
}

// NewTask builds a task with defaults applied: status todo, priority
// medium when empty, due date today when empty.
func NewTask(name string, priority TaskPriority, dueDate string) Task {
	if priority == "" {
		priority = PriorityMedium
	}
	if dueDate == "" {
		dueDate = time.Now().Format("2006-01-02")
	}
	return Task{
		Name:      strings.TrimSpace(name),
		Status:    StatusTodo,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: time.Now(),
	}
}

// global validator instance
var validate = validator.New()

// Validate checks enum membership and field constraints.
func (t *Task) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var msgs []string
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
