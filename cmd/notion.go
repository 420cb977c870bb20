package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/internal/arcade"
	"github.com/taskslip/taskslip/internal/notion"
)

var (
	notionSyncLimit int
	notionSyncDB    string
)

var notionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Sync tasks to Notion",
}

var notionSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push recent local tasks to the configured Notion database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newNotionSync()
		if err != nil {
			return err
		}
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ctx := cmd.Context()
		if err := ensureNotionAuth(cmd, s); err != nil {
			return err
		}

		tasks, err := st.Recent(ctx, notionSyncLimit)
		if err != nil {
			return err
		}
		report, err := s.Publish(ctx, tasks, notionSyncDB)
		if err != nil {
			return err
		}
		fmt.Printf("Synced to Notion: %d succeeded, %d failed\n", report.Success, report.Failed)
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
		return nil
	},
}

var notionDatabasesCmd = &cobra.Command{
	Use:   "databases [query]",
	Short: "List Notion databases available to the integration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newNotionSync()
		if err != nil {
			return err
		}
		if err := ensureNotionAuth(cmd, s); err != nil {
			return err
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		dbs, err := s.SearchDatabases(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(dbs) == 0 {
			fmt.Println("No databases found.")
			return nil
		}
		fmt.Printf("Found %d database(s):\n", len(dbs))
		for _, db := range dbs {
			title := db.Title
			if title == "" {
				title = "Untitled"
			}
			fmt.Printf("  %s  %s\n", db.ID, title)
		}
		return nil
	},
}

func newNotionSync() (*notion.Sync, error) {
	client, err := GetArcadeClient()
	if err != nil {
		return nil, err
	}
	cfg := GetConfig()
	return notion.NewSync(client, cfg.Arcade.UserID, cfg.Notion.DatabaseID, GetLogger()), nil
}

// ensureNotionAuth surfaces the OAuth URL and waits for the user to
// complete it, mirroring the Gmail flow in the agent command.
func ensureNotionAuth(cmd *cobra.Command, s *notion.Sync) error {
	err := s.EnsureAuthorized(cmd.Context())
	var authErr *arcade.AuthRequiredError
	if errors.As(err, &authErr) {
		fmt.Printf("\nNotion authorization required. Please visit:\n%s\n", authErr.URL)
		fmt.Print("\nPress Enter after authorizing...")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		return s.EnsureAuthorized(cmd.Context())
	}
	return err
}

func init() {
	notionSyncCmd.Flags().IntVarP(&notionSyncLimit, "limit", "n", 100, "maximum number of tasks to sync")
	notionSyncCmd.Flags().StringVar(&notionSyncDB, "database", "", "Notion database ID (overrides config)")
	notionCmd.AddCommand(notionSyncCmd)
	notionCmd.AddCommand(notionDatabasesCmd)
	rootCmd.AddCommand(notionCmd)
}
