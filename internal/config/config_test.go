package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "claude"
model = "claude-3-5-haiku-latest"

[interpreter]
max_response_bytes = 4096

[concurrency]
batch_translate = 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, 4096, cfg.Interpreter.MaxResponseBytes)
	assert.Equal(t, 8, cfg.Concurrency.BatchTranslate)

	// Keys absent from the file keep their defaults.
	assert.True(t, cfg.Interpreter.ReviewEnabled)
	assert.Equal(t, DefaultTranslatePrompt, cfg.Prompts.Translate)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "openai"
model = "gpt-4o-mini"
`)
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("INTERPRETER_REVIEW_ENABLED", "false")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.False(t, cfg.Interpreter.ReviewEnabled)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("bad toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[llm\nprovider ="))
		assert.ErrorContains(t, err, "failed to parse TOML")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
[llm]
provider = "mistral"

[prompts]
review = "only %s here"
`))
		require.Error(t, err)
		assert.ErrorContains(t, err, "llm.provider")
		assert.ErrorContains(t, err, "prompts.review")
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, `
[server]
port = "7000"
`))
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "7000", cfg.Server.Port)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.toml"))
		_, err := LoadFromEnv()
		assert.Error(t, err)
	})

	t.Run("defaults when no file", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, Default().LLM.Model, cfg.LLM.Model)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Validation.MinLength = 10
	cfg.Validation.MaxLength = 5
	cfg.Concurrency.BatchTranslate = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "validation.max_length")
	assert.ErrorContains(t, err, "concurrency.batch_translate")
}
