package server

import (
	"time"

	"github.com/taskslip/taskslip/models"
)

// taskJSON is the wire form of a task on the dashboard API. Priority is
// carried both as the enum string and the numeric level the original
// integrations speak.
type taskJSON struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Status             string   `json:"status"`
	Priority           string   `json:"priority"`
	PriorityLevel      int      `json:"priority_level"`
	DueDate            string   `json:"due_date"`
	CreatedAt          string   `json:"created_at"`
	Source             string   `json:"source,omitempty"`
	SimilarityDistance *float64 `json:"similarity_distance,omitempty"`
}

func toTaskJSON(t models.Task) taskJSON {
	return taskJSON{
		ID:                 t.ID,
		Name:               t.Name,
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		PriorityLevel:      t.Priority.Level(),
		DueDate:            t.DueDate,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
		Source:             t.Source,
		SimilarityDistance: t.SimilarityDistance,
	}
}

func toTaskListJSON(tasks []models.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t))
	}
	return out
}

type createTaskRequest struct {
	Name     string `json:"name"`
	Priority string `json:"priority"`
	// PriorityLevel is accepted as an alternative to the string enum.
	PriorityLevel int    `json:"priority_level"`
	DueDate       string `json:"due_date"`
	Source        string `json:"source"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
