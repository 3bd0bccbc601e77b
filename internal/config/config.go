package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// LLM settings
	LLMProvider      string  `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string  `env:"OPENAI_BASE_URL"`
	OpenAIModel      string  `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	Temperature      float32 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	YandexOAuthToken string  `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string  `env:"YANDEX_FOLDER_ID"`
	MockLLM          bool    `env:"MOCK_LLM" envDefault:"false"`
	Debug            bool    `env:"DEBUG" envDefault:"false"`

	// Request handling
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	HistoryPairs int   `env:"HISTORY_PAIRS" envDefault:"1"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH" envDefault:"prompts/system_prompt.txt"`

	// Auth
	SignupAuthCode string `env:"SIGNUP_AUTH_CODE"`

	// Storage
	UsersFilePath string `env:"USERS_FILE_PATH" envDefault:"data/users.json"`
	TurnsFilePath string `env:"TURNS_FILE_PATH" envDefault:"data/turns.json"`
	StrictStore   bool   `env:"STRICT_STORE" envDefault:"false"`

	// Static assets
	StaticDir string `env:"STATIC_DIR" envDefault:"web"`

	// Backups
	BackupDir  string `env:"BACKUP_DIR"`
	BackupCron string `env:"BACKUP_CRON" envDefault:"0 3 * * *"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
