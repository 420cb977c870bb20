package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/models"
	"github.com/taskslip/taskslip/store"
)

// ErrNoTasksFound is returned when an interactive selection is
// attempted but no tasks are available.
var ErrNoTasksFound = errors.New("no tasks found matching your criteria")

var completeCmd = &cobra.Command{
	Use:   "complete [task id]",
	Short: "Mark a task as done",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		id, err := resolveTaskID(cmd.Context(), st, args, func(t models.Task) bool {
			return t.Status != models.StatusDone
		}, "Select task to complete")
		if err != nil {
			return err
		}
		if err := st.SetStatus(cmd.Context(), id, models.StatusDone); err != nil {
			return err
		}
		fmt.Printf("Task %d marked as done.\n", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [task id]",
	Short: "Delete a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		id, err := resolveTaskID(cmd.Context(), st, args, nil, "Select task to delete")
		if err != nil {
			return err
		}
		if err := st.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Task %d deleted.\n", id)
		return nil
	},
}

// resolveTaskID parses an explicit id argument or falls back to an
// interactive selection over recent tasks.
func resolveTaskID(ctx context.Context, st store.TaskStore, args []string, filter func(models.Task) bool, label string) (int64, error) {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid task id %q", args[0])
		}
		return id, nil
	}

	tasks, err := st.Recent(ctx, 50)
	if err != nil {
		return 0, err
	}
	if filter != nil {
		filtered := tasks[:0]
		for _, t := range tasks {
			if filter(t) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	if len(tasks) == 0 {
		return 0, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Name | cyan }} (due {{ .DueDate }}, {{ .Priority }})`,
		Inactive: `  {{ .Name | faint }} (due {{ .DueDate }}, {{ .Priority }})`,
		Selected: `{{ "✔" | green }} {{ .Name | faint }}`,
	}
	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Size:      10,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return tasks[idx].ID, nil
}

func init() {
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(deleteCmd)
}
