package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initialize the database and verify it works",
	Long: `Create the task database schema if it does not exist, then run a
quick write/read/delete smoke test against it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Database.TursoURL != "" {
			fmt.Printf("Connecting to Turso database %s\n", cfg.Database.TursoURL)
		} else {
			fmt.Printf("Using local database %s\n", cfg.Database.Path)
		}

		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		fmt.Println("Schema ready.")

		ctx := cmd.Context()
		probe := models.NewTask("Connection test", models.PriorityLow, "")
		created, err := st.Add(ctx, probe)
		if err != nil {
			return fmt.Errorf("smoke test insert: %w", err)
		}
		if _, err := st.Get(ctx, created.ID); err != nil {
			return fmt.Errorf("smoke test read: %w", err)
		}
		if err := st.Delete(ctx, created.ID); err != nil {
			return fmt.Errorf("smoke test cleanup: %w", err)
		}
		fmt.Println("Smoke test passed.")

		stats, err := st.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Database contains %d task(s).\n", stats.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
