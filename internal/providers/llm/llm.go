package llm

import "context"

// Options tune a single generation call.
type Options struct {
	SystemInstruction string
	Temperature       float32
	MaxOutputTokens   int32
}

type Provider interface {
	// GenerateText returns the model's full text response for prompt.
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
	Close() error
}
