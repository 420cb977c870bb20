package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/models"
)

var (
	listLimit  int
	listStatus string
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
)

func priorityStyle(p models.TaskPriority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return highStyle
	case models.PriorityLow:
		return lowStyle
	}
	return mediumStyle
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		tasks, err := st.Recent(cmd.Context(), listLimit)
		if err != nil {
			return err
		}
		if listStatus != "" {
			status, err := models.StatusFromLabel(listStatus)
			if err != nil {
				return err
			}
			filtered := tasks[:0]
			for _, t := range tasks {
				if t.Status == status {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Fprintln(os.Stdout, headerStyle.Render(fmt.Sprintf("%-5s %-44s %-12s %-8s %s", "ID", "TASK", "STATUS", "PRIO", "DUE")))
		for _, t := range tasks {
			name := t.Name
			if len(name) > 42 {
				name = name[:41] + "…"
			}
			line := fmt.Sprintf("%-5d %-44s %-12s %-8s %s", t.ID, name, t.Status, t.Priority, t.DueDate)
			if t.Status == models.StatusDone {
				line = doneStyle.Render(line)
			} else {
				line = priorityStyle(t.Priority).Render(line)
			}
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum number of tasks to show")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (todo, in-progress, done)")
	rootCmd.AddCommand(listCmd)
}
