package server

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/padwhen/language-learning-app/internal/driver"
)

// MockLLM answers first-pass prompts with First and review prompts with
// Review. Prompts containing FailOn fail.
type MockLLM struct {
	mu     sync.Mutex
	First  string
	Review string
	FailOn string
	Calls  int
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.FailOn != "" && strings.Contains(prompt, m.FailOn) {
		return "", errors.New("upstream unavailable")
	}
	if strings.HasPrefix(prompt, "review") {
		return m.Review, nil
	}
	return m.First, nil
}

type MockHistory struct {
	Entries      []driver.TranslationEntry
	Err          error
	LastLanguage string
	LastLimit    int
}

func (m *MockHistory) RecentTranslations(ctx context.Context, language string, limit int) ([]driver.TranslationEntry, error) {
	m.LastLanguage = language
	m.LastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entries, nil
}
