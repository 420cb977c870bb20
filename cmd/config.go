package cmd

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskslip/taskslip/internal/printer"
	"github.com/taskslip/taskslip/types"
)

const (
	configName = ".taskslip"
	envPrefix  = "TASKSLIP"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate = validator.New()

// envBindings maps config keys to the plain environment variable names
// the original deployment used. These take precedence over config-file
// values and sit below flags.
var envBindings = map[string]string{
	"arcade.apiKey":           "ARCADE_API_KEY",
	"arcade.userId":           "ARCADE_USER_ID",
	"mail.address":            "MAIL_ADDRESS",
	"mail.maxUnread":          "MAX_UNREAD_EMAILS",
	"mail.recentCount":        "RECENT_EMAILS_COUNT",
	"llm.provider":            "LLM_PROVIDER",
	"llm.openaiApiKey":        "OPENAI_API_KEY",
	"llm.deepseekApiKey":      "DEEPSEEK_API_KEY",
	"llm.embeddingProvider":   "EMBEDDING_PROVIDER",
	"database.path":           "DATABASE_PATH",
	"database.tursoUrl":       "TURSO_DATABASE_URL",
	"database.tursoAuthToken": "TURSO_AUTH_TOKEN",
	"dashboard.host":          "DASHBOARD_HOST",
	"dashboard.port":          "DASHBOARD_PORT",
	"notion.databaseId":       "NOTION_DATABASE_ID",
	"printer.device":          "PRINTER_DEVICE",
	"printer.autoPrint":       "AUTO_PRINT",
}

// InitConfig reads in the config file and environment variables.
func InitConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	for key, env := range envBindings {
		_ = viper.BindEnv(key, env)
	}

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	} else if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	setDefaults()

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing configuration:", err)
		os.Exit(1)
	}
	if err := validate.Struct(&GlobalAppConfig); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("mail.maxUnread", 10)
	viper.SetDefault("mail.recentCount", 5)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.requestTimeoutSeconds", 60)
	viper.SetDefault("database.path", "tasks.db")
	viper.SetDefault("dashboard.host", "127.0.0.1")
	viper.SetDefault("dashboard.port", 5000)
	viper.SetDefault("printer.device", printer.DefaultDevice)
	viper.SetDefault("printer.autoPrint", false)
}

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		fmt.Println("Configuration")
		fmt.Printf("  LLM provider:    %s\n", cfg.LLM.Provider)
		fmt.Printf("  Arcade user:     %s\n", cfg.Arcade.UserID)
		fmt.Printf("  Mail address:    %s\n", mailAddress())
		fmt.Printf("  Max unread:      %d\n", cfg.Mail.MaxUnread)
		fmt.Printf("  Recent count:    %d\n", cfg.Mail.RecentCount)
		if cfg.Database.TursoURL != "" {
			fmt.Printf("  Database:        %s (Turso)\n", cfg.Database.TursoURL)
		} else {
			fmt.Printf("  Database:        %s\n", cfg.Database.Path)
		}
		fmt.Printf("  Dashboard:       %s:%d\n", cfg.Dashboard.Host, cfg.Dashboard.Port)
		fmt.Printf("  Printer device:  %s (auto-print: %v)\n", cfg.Printer.Device, cfg.Printer.AutoPrint)
		fmt.Println("API keys")
		fmt.Printf("  Arcade:          %s\n", present(cfg.Arcade.APIKey))
		fmt.Printf("  OpenAI:          %s\n", present(cfg.LLM.OpenAIAPIKey))
		fmt.Printf("  DeepSeek:        %s\n", present(cfg.LLM.DeepSeekAPIKey))
	},
}

func present(secret string) string {
	if secret == "" {
		return "missing"
	}
	return "set"
}

func init() {
	rootCmd.AddCommand(configCmd)
}
