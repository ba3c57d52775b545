package llm

import (
	"fmt"
	"strings"
)

const ollamaAPIKey = "ollama"

// NewOllamaClient talks to Ollama through its OpenAI-compatible endpoint.
// Ollama ignores the API key but the client requires one.
func NewOllamaClient(model string, baseURL string, maxTokens int) *OpenAIClient {
	return NewOpenAIClient(ollamaAPIKey, model, OllamaBaseURL(baseURL), maxTokens)
}

// OllamaBaseURL appends the /v1 suffix the OpenAI-compatible API lives under.
func OllamaBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL
	}
	return fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
}
