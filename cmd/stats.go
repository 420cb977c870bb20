package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Total tasks:  %d\n", stats.Total)
		fmt.Printf("  High:       %d\n", stats.High)
		fmt.Printf("  Medium:     %d\n", stats.Medium)
		fmt.Printf("  Low:        %d\n", stats.Low)
		fmt.Printf("Due today:    %d\n", stats.DueToday)
		for _, status := range []models.TaskStatus{models.StatusTodo, models.StatusInProgress, models.StatusDone} {
			if n, ok := stats.ByStatus[status]; ok {
				fmt.Printf("%-13s %d\n", status.Label()+":", n)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
