package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskslip/taskslip/internal/server"
)

var (
	dashboardHost string
	dashboardPort int
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the local web dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		host := cfg.Dashboard.Host
		port := cfg.Dashboard.Port
		if dashboardHost != "" {
			host = dashboardHost
		}
		if dashboardPort != 0 {
			port = dashboardPort
		}

		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		srv := server.New(st, GetLogger(), host, port)
		fmt.Printf("Dashboard running at http://%s:%d (Ctrl+C to stop)\n", host, port)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardHost, "host", "", "host to bind (overrides config)")
	dashboardCmd.Flags().IntVar(&dashboardPort, "port", 0, "port to bind (overrides config)")
	rootCmd.AddCommand(dashboardCmd)
}
