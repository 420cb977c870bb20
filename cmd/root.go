package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskslip/taskslip/internal/arcade"
	"github.com/taskslip/taskslip/internal/logger"
	"github.com/taskslip/taskslip/llm"
	"github.com/taskslip/taskslip/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taskslip",
	Short: "Capture tasks from email, print them, and keep them in sync.",
	Long: `taskslip extracts actionable tasks from Gmail with an LLM, stores
them locally (SQLite or Turso), serves a small web dashboard, syncs
tasks to Notion, and prints task slips to a thermal receipt printer.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskslip.yaml or $HOME/.taskslip.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetLogger returns the shared logger honoring --verbose.
func GetLogger() *logrus.Logger {
	return logger.New(GetConfig().Verbose)
}

// GetStore opens the configured datastore with the embedding backend
// attached when one is available.
func GetStore() (store.TaskStore, error) {
	cfg := GetConfig()
	opts := []store.Option{store.WithLogger(GetLogger())}
	if emb := llm.NewEmbedder(&cfg.LLM); emb != nil {
		opts = append(opts, store.WithEmbedder(emb))
	}
	s, err := store.Open(cfg.Database, opts...)
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}
	return s, nil
}

// GetArcadeClient builds the Arcade.dev client from configuration.
func GetArcadeClient() (*arcade.Client, error) {
	cfg := GetConfig()
	if cfg.Arcade.APIKey == "" {
		return nil, fmt.Errorf("ARCADE_API_KEY is not set")
	}
	return arcade.NewClient(cfg.Arcade.APIKey, arcade.WithLogger(GetLogger())), nil
}

// mailAddress is the mailbox the agent reads: MAIL_ADDRESS when set,
// otherwise the Arcade user id.
func mailAddress() string {
	cfg := GetConfig()
	if cfg.Mail.Address != "" {
		return cfg.Mail.Address
	}
	return cfg.Arcade.UserID
}
