package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/internal/agent"
	"github.com/taskslip/taskslip/internal/arcade"
	"github.com/taskslip/taskslip/internal/printer"
	"github.com/taskslip/taskslip/llm"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Extract tasks from recent Gmail messages",
	Long: `Fetches unread and recent emails through Arcade.dev, asks the
configured LLM for actionable tasks, skips tasks that look like
duplicates of stored ones, and saves the rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		log := GetLogger()

		client, err := GetArcadeClient()
		if err != nil {
			return err
		}
		provider, _, err := llm.NewProvider(&cfg.LLM)
		if err != nil {
			return err
		}
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ext := agent.New(client, provider, st, log, agent.Config{
			UserID:      mailAddress(),
			MaxUnread:   cfg.Mail.MaxUnread,
			RecentCount: cfg.Mail.RecentCount,
		})

		if cfg.Printer.AutoPrint {
			p, closer, err := printer.OpenDevice(cfg.Printer.Device)
			if err != nil {
				log.WithError(err).Warn("printer unavailable, auto-print disabled for this run")
			} else {
				defer func() { _ = closer.Close() }()
				ext = ext.WithPrinter(p)
			}
		}

		fmt.Printf("Analyzing emails for %s...\n", mailAddress())

		ctx := cmd.Context()
		res, err := ext.Run(ctx)
		var authErr *arcade.AuthRequiredError
		if errors.As(err, &authErr) {
			fmt.Printf("\nAuthorization required. Please visit:\n%s\n", authErr.URL)
			fmt.Print("\nPress Enter after authorizing...")
			_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
			res, err = ext.Run(ctx)
		}
		if err != nil {
			return err
		}

		fmt.Printf("\nSummary: %s\n", res.Summary)
		if len(res.Created) == 0 && len(res.Duplicates) == 0 {
			fmt.Println("No actionable tasks found in recent emails.")
			return nil
		}
		if len(res.Created) > 0 {
			fmt.Printf("\nSaved %d new task(s):\n", len(res.Created))
			for _, t := range res.Created {
				fmt.Printf("  [%d] %s (%s, due %s)\n", t.ID, t.Name, t.Priority.Label(), t.DueDate)
			}
		}
		if len(res.Duplicates) > 0 {
			fmt.Printf("\nSkipped %d duplicate task(s):\n", len(res.Duplicates))
			for _, t := range res.Duplicates {
				fmt.Printf("  - %s\n", t.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
}
