package core

import (
	"context"
	"errors"
	"sync"

	"github.com/padwhen/language-learning-app/internal/driver"
)

type MockLLM struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	ErrQueue      []error
	Prompts       []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	var err error
	if len(m.ErrQueue) > 0 {
		err = m.ErrQueue[0]
		m.ErrQueue = m.ErrQueue[1:]
	}
	resp := m.Response
	if len(m.ResponseQueue) > 0 {
		resp = m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
	}
	if err != nil {
		return "", err
	}
	return resp, nil
}

// MockStreamLLM streams Chunks for the first pass and answers the review
// pass through the embedded MockLLM.
type MockStreamLLM struct {
	MockLLM
	Chunks    []string
	StreamErr error
}

func (m *MockStreamLLM) GenerateStream(ctx context.Context, prompt string, onDelta func(string)) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	var full string
	for _, c := range m.Chunks {
		full += c
		onDelta(c)
	}
	if m.StreamErr != nil {
		return full, m.StreamErr
	}
	return full, nil
}

type MockHistory struct {
	Saved []driver.TranslationRecord
	Err   error
}

func (m *MockHistory) SaveTranslation(ctx context.Context, rec driver.TranslationRecord) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Saved = append(m.Saved, rec)
	return "translation-uuid", nil
}

var errNetwork = errors.New("network unreachable")
