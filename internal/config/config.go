package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when CONFIG_PATH is not set.
const DefaultPath = "config/config.toml"

type LLMConfig struct {
	Provider  string `toml:"provider" env:"LLM_PROVIDER"`
	Model     string `toml:"model" env:"LLM_MODEL"`
	APIKey    string `toml:"api_key" env:"LLM_API_KEY"`
	BaseURL   string `toml:"base_url" env:"LLM_BASE_URL"`
	MaxTokens int    `toml:"max_tokens" env:"LLM_MAX_TOKENS"`
}

// PromptConfig holds fmt templates. Translate takes the language name and
// the text; Review takes the language name, the text and the first-pass JSON.
type PromptConfig struct {
	Translate string `toml:"translate"`
	Review    string `toml:"review"`
}

type InterpreterConfig struct {
	MaxResponseBytes int  `toml:"max_response_bytes" env:"INTERPRETER_MAX_RESPONSE_BYTES"`
	ReviewEnabled    bool `toml:"review_enabled" env:"INTERPRETER_REVIEW_ENABLED"`
}

type ValidationConfig struct {
	MinLength      int  `toml:"min_length" env:"VALIDATION_MIN_LENGTH"`
	MaxLength      int  `toml:"max_length" env:"VALIDATION_MAX_LENGTH"`
	StrictLanguage bool `toml:"strict_language" env:"VALIDATION_STRICT_LANGUAGE"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" env:"MEMGRAPH_URI"`
	User     string `toml:"user" env:"MEMGRAPH_USER"`
	Password string `toml:"password" env:"MEMGRAPH_PASSWORD"`
}

type ConcurrencyConfig struct {
	BatchTranslate int `toml:"batch_translate" env:"CONCURRENCY_BATCH_TRANSLATE"`
}

type ServerConfig struct {
	Port string `toml:"port" env:"PORT"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Prompts     PromptConfig      `toml:"prompts"`
	Interpreter InterpreterConfig `toml:"interpreter"`
	Validation  ValidationConfig  `toml:"validation"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			MaxTokens: 2048,
		},
		Prompts: PromptConfig{
			Translate: DefaultTranslatePrompt,
			Review:    DefaultReviewPrompt,
		},
		Interpreter: InterpreterConfig{
			MaxResponseBytes: 32 << 10,
			ReviewEnabled:    true,
		},
		Validation: ValidationConfig{
			MinLength: 3,
			MaxLength: 1000,
		},
		Concurrency: ConcurrencyConfig{
			BatchTranslate: 4,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file over the defaults, then applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return finish(cfg)
}

// LoadFromEnv loads the file named by CONFIG_PATH. Without CONFIG_PATH it
// falls back to DefaultPath, and to defaults plus environment when that file
// does not exist.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		return Load(path)
	}

	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file '%s': %w", DefaultPath, err)
	}

	return finish(Default())
}

func finish(cfg *Config) (*Config, error) {
	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "gemini", "claude", "ollama":
	default:
		errs = append(errs, fmt.Errorf("llm.provider: unsupported provider %q", c.LLM.Provider))
	}
	if c.LLM.Model == "" {
		errs = append(errs, errors.New("llm.model: required"))
	}
	if n := strings.Count(c.Prompts.Translate, "%s"); n != 2 {
		errs = append(errs, fmt.Errorf("prompts.translate: want 2 %%s verbs, got %d", n))
	}
	if n := strings.Count(c.Prompts.Review, "%s"); n != 3 {
		errs = append(errs, fmt.Errorf("prompts.review: want 3 %%s verbs, got %d", n))
	}
	if c.Interpreter.MaxResponseBytes <= 0 {
		errs = append(errs, errors.New("interpreter.max_response_bytes: must be positive"))
	}
	if c.Validation.MinLength < 1 {
		errs = append(errs, errors.New("validation.min_length: must be at least 1"))
	}
	if c.Validation.MaxLength < c.Validation.MinLength {
		errs = append(errs, errors.New("validation.max_length: must not be below min_length"))
	}
	if c.Concurrency.BatchTranslate < 1 {
		errs = append(errs, errors.New("concurrency.batch_translate: must be at least 1"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port: required"))
	}

	return errors.Join(errs...)
}
