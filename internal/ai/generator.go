package ai

import (
	"context"
	"fmt"

	"vmap-rag/internal/rag"
)

// Generator binds the client to one chat model and satisfies the core's
// generation boundary.
type Generator struct {
	client *Client
	model  string
}

func NewGenerator(client *Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

func (g *Generator) Complete(ctx context.Context, messages []rag.Message) (string, error) {
	converted := make([]ChatMessage, len(messages))
	for i, m := range messages {
		converted[i] = ChatMessage{Role: m.Role, Content: m.Content}
	}
	answer, err := g.client.Complete(ctx, g.model, converted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", rag.ErrGeneration, err)
	}
	return answer, nil
}
