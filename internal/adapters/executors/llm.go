package executors

import (
	"context"
	"errors"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

const (
	HandleSystemPrompt = "system_prompt"
	HandleUserMessage  = "user_message"
	HandleImage        = "image"
)

// LLM generates a product description from three fan-in handles. All
// three are hard requirements; an empty one is a fatal error rather
// than a degraded call.
type LLM struct {
	Generator ports.TextGenerator
}

func (LLM) Name() string { return "llm" }

func (LLM) RequiredHandles() []string {
	return []string{HandleSystemPrompt, HandleUserMessage, HandleImage}
}

func (LLM) AcceptsNullInput() bool { return false }

func (l LLM) Execute(ctx context.Context, node domain.Node, inputs ports.Inputs) (*string, error) {
	systemPrompt := inputs.Text(HandleSystemPrompt)
	userMessage := inputs.Text(HandleUserMessage)
	imageRef := inputs.Text(HandleImage)

	if systemPrompt == "" || userMessage == "" || imageRef == "" {
		return nil, errors.New("llm node requires system_prompt, user_message, and image")
	}

	description, err := l.Generator.Describe(ctx, systemPrompt, userMessage, imageRef)
	if err != nil {
		return nil, err
	}
	return &description, nil
}

// Model renders an image from the default text input using the
// configured model label. An empty prompt passes through as no-output.
type Model struct {
	Generator ports.TextGenerator
}

func (Model) Name() string              { return "model" }
func (Model) RequiredHandles() []string { return []string{domain.DefaultHandle} }
func (Model) AcceptsNullInput() bool    { return false }

func (m Model) Execute(ctx context.Context, node domain.Node, inputs ports.Inputs) (*string, error) {
	prompt := inputs.Text(domain.DefaultHandle)
	if prompt == "" {
		return nil, nil
	}

	imageURL, err := m.Generator.GenerateImage(ctx, prompt, node.Config.String("model"))
	if err != nil {
		return nil, err
	}
	return &imageURL, nil
}
