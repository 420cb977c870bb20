package llm

import "context"

// ExtractedTask is a single task parsed out of an email batch. Priority
// uses the numeric wire form: 1 high, 2 medium, 3 low.
type ExtractedTask struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	DueDate  string `json:"due_date"`
	// Source is a short reference to the originating email
	// (sender and subject).
	Source string `json:"source,omitempty"`
}

// Extraction is the model's answer for one batch of emails.
type Extraction struct {
	Tasks   []ExtractedTask `json:"tasks"`
	Summary string          `json:"summary"`
}

// Provider defines the interface for turning email text into tasks.
type Provider interface {
	// ExtractTasks sends the formatted email batch to the model and
	// returns the parsed tasks plus a one-line summary.
	ExtractTasks(ctx context.Context, emailsText string) (Extraction, error)
}

// Embedder produces embedding vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
