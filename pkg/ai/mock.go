package ai

import (
	"context"
	"strings"
)

// MockCompleter is a local placeholder that never calls an external
// model. It echoes a structured response so the whole pipeline can be
// exercised without an API key.
type MockCompleter struct{}

// Complete returns a canned structured summary built from the prompt head
func (m MockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	head := prompt
	if len(head) > 200 {
		head = head[:200]
	}

	var sb strings.Builder
	sb.WriteString("[OVERVIEW]\n")
	sb.WriteString("This is a locally generated placeholder summary.\n\n")
	sb.WriteString("[KEY INSIGHTS]\n")
	sb.WriteString("- Prompt received: ")
	sb.WriteString(strings.ReplaceAll(head, "\n", " "))
	sb.WriteString("\n\n[RISKS]\n\n[RECOMMENDATIONS]\n")
	return sb.String(), nil
}
