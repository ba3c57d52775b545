package llm

import (
	"context"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StreamClient is implemented by clients that can deliver a response
// incrementally. onDelta is called with each piece of text in order; the
// returned string is the whole response.
type StreamClient interface {
	GenerateStream(ctx context.Context, prompt string, onDelta func(string)) (string, error)
}
