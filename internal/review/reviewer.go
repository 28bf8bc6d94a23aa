// Package review builds the review prompt and invokes the text-generation
// model for a single code submission.
package review

import (
	"context"
	"fmt"
	"log/slog"
)

// Generator maps a prompt to generated text. The Gemini client implements
// it; tests substitute a fake so no network call is needed.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Reviewer runs one review per call. It holds no state between calls.
type Reviewer struct {
	gen    Generator
	logger *slog.Logger
}

// NewReviewer creates a Reviewer backed by the given generator.
func NewReviewer(gen Generator, logger *slog.Logger) *Reviewer {
	return &Reviewer{gen: gen, logger: logger}
}

// Review sends the code to the model and returns its response verbatim.
// It never returns an error: any failure is logged and surfaced to the
// caller as a user-visible string embedding the error detail. There is no
// retry; a failure is terminal for this invocation.
func (r *Reviewer) Review(ctx context.Context, code string) string {
	result, err := r.gen.Generate(ctx, BuildPrompt(code))
	if err != nil {
		r.logger.Error("error during LLM review", "error", err)
		return fmt.Sprintf("Error during review: %v", err)
	}
	return result
}
