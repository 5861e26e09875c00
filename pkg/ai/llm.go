package ai

import "context"

// Completer abstracts the external chat-completion service so the
// summarization pipeline can be tested without network access.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
