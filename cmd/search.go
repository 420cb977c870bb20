package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find tasks similar to a query",
	Long: `Searches stored tasks by embedding similarity when an embedding
backend is configured, falling back to name matching otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		query := strings.Join(args, " ")
		tasks, err := st.FindSimilar(cmd.Context(), query, searchLimit)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No matching tasks.")
			return nil
		}
		for _, t := range tasks {
			if t.SimilarityDistance != nil {
				fmt.Printf("[%d] %s (%s, due %s) distance=%.3f\n", t.ID, t.Name, t.Priority.Label(), t.DueDate, *t.SimilarityDistance)
			} else {
				fmt.Printf("[%d] %s (%s, due %s)\n", t.ID, t.Name, t.Priority.Label(), t.DueDate)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
