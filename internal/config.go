package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Journal JournalConfig     `yaml:"journal"`
	Model   ModelConfig       `yaml:"model"`
	Inbox   InboxConfig       `yaml:"inbox"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if err := c.Inbox.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds the primary database configuration. FallbackPath is the
// flat JSON file used when the database cannot be opened.
type SQLiteConfig struct {
	Path         string `yaml:"path"`
	FallbackPath string `yaml:"fallback_path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.FallbackPath, validation.Required),
	)
}

// JournalConfig bounds the annotation pipeline.
type JournalConfig struct {
	SummaryMaxWords int `yaml:"summary_max_words"`
	SummaryMinWords int `yaml:"summary_min_words"`
	KeywordCount    int `yaml:"keyword_count"`
	ClusterCount    int `yaml:"cluster_count"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.SummaryMaxWords, validation.Required, validation.Min(10)),
		validation.Field(&c.SummaryMinWords, validation.Required, validation.Min(1)),
		validation.Field(&c.KeywordCount, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.ClusterCount, validation.Required, validation.Min(2), validation.Max(20)),
	); err != nil {
		return err
	}
	if c.SummaryMinWords >= c.SummaryMaxWords {
		return fmt.Errorf("journal: summary_min_words (%d) must be below summary_max_words (%d)",
			c.SummaryMinWords, c.SummaryMaxWords)
	}
	return nil
}

// ModelConfig holds the local model runtime configuration. When Enabled is
// false, or the runtime is unreachable, annotation falls back to the
// built-in extractive and lexicon paths.
type ModelConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Endpoint       string `yaml:"endpoint"`
	SummaryModel   string `yaml:"summary_model"`
	SentimentModel string `yaml:"sentiment_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Validate validates the model configuration.
func (c *ModelConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.SummaryModel, validation.Required),
		validation.Field(&c.SentimentModel, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Min(1), validation.Max(600)),
	)
}

// InboxConfig holds the Markdown drop directory configuration.
type InboxConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Validate validates the inbox configuration.
func (c *InboxConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path:         "./laguz.db",
			FallbackPath: "./laguz-fallback.json",
		},
		Journal: JournalConfig{
			SummaryMaxWords: 100,
			SummaryMinWords: 20,
			KeywordCount:    5,
			ClusterCount:    5,
		},
		Model: ModelConfig{
			Enabled:        true,
			Endpoint:       "http://localhost:11434",
			SummaryModel:   "llama3.2",
			SentimentModel: "llama3.2",
			TimeoutSeconds: 30,
		},
		Inbox: InboxConfig{
			Enabled: false,
			Path:    "./inbox",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
