package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/models"
)

var (
	addPriority string
	addDueDate  string
	addPrint    bool
)

var addCmd = &cobra.Command{
	Use:   "add <task name>",
	Short: "Add a task by hand",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		task := models.NewTask(strings.Join(args, " "), models.TaskPriority(addPriority), addDueDate)
		if err := task.Validate(); err != nil {
			return err
		}
		created, err := st.Add(cmd.Context(), task)
		if err != nil {
			return err
		}
		fmt.Printf("Added task [%d] %s (%s, due %s)\n", created.ID, created.Name, created.Priority.Label(), created.DueDate)

		if addPrint {
			return printTask(created)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "task priority (high, medium, low)")
	addCmd.Flags().StringVarP(&addDueDate, "due", "d", "", "due date (YYYY-MM-DD, default today)")
	addCmd.Flags().BoolVar(&addPrint, "print", false, "print a slip for the new task")
	rootCmd.AddCommand(addCmd)
}
