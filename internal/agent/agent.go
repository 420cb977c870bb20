// Package agent runs the Gmail task-extraction pipeline: fetch mail
// through Arcade, ask the LLM for actionable tasks, deduplicate against
// the datastore and persist what is new.
package agent

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/taskslip/taskslip/internal/arcade"
	"github.com/taskslip/taskslip/internal/mail"
	"github.com/taskslip/taskslip/llm"
	"github.com/taskslip/taskslip/models"
	"github.com/taskslip/taskslip/store"
)

const gmailListTool = "Google.ListEmails"

// duplicateThreshold is the cosine distance below which an extracted
// task is considered a re-capture of an existing one.
const duplicateThreshold = 0.1

// Config controls one extraction run.
type Config struct {
	// UserID is the mailbox read through Arcade.
	UserID string
	// MaxUnread caps the unread fetch, RecentCount the recent fetch.
	MaxUnread   int
	RecentCount int
}

// TaskPrinter receives each newly stored task when auto-print is on.
type TaskPrinter interface {
	PrintTask(t models.Task) error
}

// Extractor wires the pipeline's collaborators together.
type Extractor struct {
	arcade  *arcade.Client
	llm     llm.Provider
	store   store.TaskStore
	printer TaskPrinter
	log     *logrus.Logger
	cfg     Config
}

func New(client *arcade.Client, provider llm.Provider, st store.TaskStore, log *logrus.Logger, cfg Config) *Extractor {
	if cfg.MaxUnread <= 0 {
		cfg.MaxUnread = 10
	}
	if cfg.RecentCount <= 0 {
		cfg.RecentCount = 5
	}
	if log == nil {
		log = logrus.New()
	}
	return &Extractor{arcade: client, llm: provider, store: st, log: log, cfg: cfg}
}

// WithPrinter enables auto-printing of newly captured tasks.
func (e *Extractor) WithPrinter(p TaskPrinter) *Extractor {
	e.printer = p
	return e
}

// Result reports one extraction run.
type Result struct {
	Summary    string
	Emails     int
	Created    []models.Task
	Duplicates []llm.ExtractedTask
}

// Run executes the pipeline. When Gmail is not yet authorized it
// returns *arcade.AuthRequiredError so the caller can surface the
// login URL.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	if err := e.arcade.EnsureAuthorized(ctx, gmailListTool, e.cfg.UserID); err != nil {
		return nil, err
	}

	emails, err := e.fetchEmails(ctx)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return &Result{Summary: "No emails found"}, nil
	}
	e.log.WithField("count", len(emails)).Info("analyzing emails")

	extraction, err := e.llm.ExtractTasks(ctx, mail.FormatForPrompt(emails))
	if err != nil {
		return nil, fmt.Errorf("extract tasks: %w", err)
	}

	result := &Result{Summary: extraction.Summary, Emails: len(emails)}
	for _, et := range extraction.Tasks {
		dup, err := e.isDuplicate(ctx, et)
		if err != nil {
			return result, err
		}
		if dup {
			e.log.WithField("task", et.Name).Info("skipping duplicate task")
			result.Duplicates = append(result.Duplicates, et)
			continue
		}

		task := models.NewTask(et.Name, models.PriorityFromLevel(et.Priority), et.DueDate)
		task.Source = et.Source
		stored, err := e.store.Add(ctx, task)
		if err != nil {
			return result, fmt.Errorf("store task %q: %w", et.Name, err)
		}
		result.Created = append(result.Created, stored)

		if e.printer != nil {
			if err := e.printer.PrintTask(stored); err != nil {
				// Printing is best effort; the task is already saved.
				e.log.WithError(err).WithField("task", stored.Name).Warn("print failed")
			}
		}
	}
	return result, nil
}

func (e *Extractor) fetchEmails(ctx context.Context) ([]mail.Email, error) {
	unread, err := e.listEmails(ctx, map[string]any{"n_emails": e.cfg.MaxUnread, "query": "is:unread"})
	if err != nil {
		return nil, fmt.Errorf("fetch unread emails: %w", err)
	}
	recent, err := e.listEmails(ctx, map[string]any{"n_emails": e.cfg.RecentCount})
	if err != nil {
		return nil, fmt.Errorf("fetch recent emails: %w", err)
	}
	return mail.Merge(unread, recent), nil
}

func (e *Extractor) listEmails(ctx context.Context, input map[string]any) ([]mail.Email, error) {
	raw, err := e.arcade.Execute(ctx, gmailListTool, input, e.cfg.UserID)
	if err != nil {
		return nil, err
	}
	var emails []mail.Email
	if err := arcade.DecodeList(raw, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

func (e *Extractor) isDuplicate(ctx context.Context, et llm.ExtractedTask) (bool, error) {
	similar, err := e.store.FindSimilar(ctx, et.Name, 1)
	if err != nil {
		return false, fmt.Errorf("similarity lookup for %q: %w", et.Name, err)
	}
	if len(similar) == 0 || similar[0].SimilarityDistance == nil {
		return false, nil
	}
	return *similar[0].SimilarityDistance < duplicateThreshold, nil
}
