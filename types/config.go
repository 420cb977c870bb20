package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Arcade    ArcadeConfig    `mapstructure:"arcade"`
	Mail      MailConfig      `mapstructure:"mail"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Dashboard DashboardConfig `mapstructure:"dashboard" validate:"required"`
	Notion    NotionConfig    `mapstructure:"notion"`
	Printer   PrinterConfig   `mapstructure:"printer" validate:"required"`
}

// ArcadeConfig holds credentials for the Arcade.dev tool platform.
type ArcadeConfig struct {
	APIKey string `mapstructure:"apiKey"`
	UserID string `mapstructure:"userId" validate:"omitempty,email"`
}

// MailConfig controls which mailbox is read and how many messages are pulled.
type MailConfig struct {
	// Address is the mailbox the agent reads. Defaults to Arcade.UserID.
	Address     string `mapstructure:"address" validate:"omitempty,email"`
	MaxUnread   int    `mapstructure:"maxUnread" validate:"min=1,max=100"`
	RecentCount int    `mapstructure:"recentCount" validate:"min=1,max=100"`
}

// LLMConfig holds configuration for the hosted LLM used for task
// extraction and embeddings.
type LLMConfig struct {
	Provider       string `mapstructure:"provider" validate:"omitempty,oneof=openai deepseek"`
	ModelName      string `mapstructure:"modelName" validate:"omitempty,min=1"`
	OpenAIAPIKey   string `mapstructure:"openaiApiKey"`
	DeepSeekAPIKey string `mapstructure:"deepseekApiKey"`
	// EmbeddingProvider forces the embedding backend. Empty means "OpenAI
	// when a key is available". DeepSeek has no embedding models.
	EmbeddingProvider string `mapstructure:"embeddingProvider" validate:"omitempty,oneof=openai none"`
	// RequestTimeoutSeconds controls the HTTP client timeout for LLM calls.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// Debug enables request/response logging within the LLM provider.
	Debug bool `mapstructure:"debug"`
}

// DatabaseConfig selects the task datastore: a remote Turso/libSQL
// database when TursoURL is set, otherwise a local SQLite file.
type DatabaseConfig struct {
	Path      string `mapstructure:"path" validate:"required"`
	TursoURL  string `mapstructure:"tursoUrl" validate:"omitempty,url"`
	TursoAuth string `mapstructure:"tursoAuthToken"`
}

// DashboardConfig holds the local web dashboard listen address.
type DashboardConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
}

// NotionConfig holds the target Notion database for task sync.
type NotionConfig struct {
	DatabaseID string `mapstructure:"databaseId"`
}

// PrinterConfig holds the thermal printer device settings.
type PrinterConfig struct {
	Device string `mapstructure:"device" validate:"required"`
	// AutoPrint prints every newly extracted task as a slip.
	AutoPrint bool `mapstructure:"autoPrint"`
}
