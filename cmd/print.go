package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/internal/printer"
	"github.com/taskslip/taskslip/models"
)

var printCmd = &cobra.Command{
	Use:   "print [task ID]",
	Short: "Print a task slip on the thermal printer",
	Long: `Print a task as a receipt slip on the configured ESC/POS printer.
Without an ID you pick the task interactively. When no printer device is
available the slip is rendered to stdout instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		id, err := resolveTaskID(cmd.Context(), st, args, nil, "Select task to print")
		if err != nil {
			return err
		}
		t, err := st.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printTask(t)
	},
}

// printTask sends the task to the configured printer device, falling
// back to a stdout preview when the device cannot be opened.
func printTask(t models.Task) error {
	cfg := GetConfig()
	p, closer, err := printer.OpenDevice(cfg.Printer.Device)
	if err != nil {
		GetLogger().WithError(err).Debug("printer device unavailable, previewing")
		fmt.Println(printer.FormatSlip(t))
		return nil
	}
	defer func() { _ = closer.Close() }()
	if err := p.PrintTask(t); err != nil {
		return err
	}
	fmt.Printf("Printed task #%d\n", t.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(printCmd)
}
