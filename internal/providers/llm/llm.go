package llm

import "context"

type Provider interface {
	// Generate returns the full completion for a prompt.
	Generate(ctx context.Context, system, prompt string) (string, error)
	Close() error
}
