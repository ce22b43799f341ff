package executors

import (
	"context"
	"strings"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

const (
	TextTypeSystemPrompt   = "system_prompt"
	TextTypeProductDetails = "product_details"
)

// Text normalizes the configured text content. Empty text is an error:
// a blank prompt would silently poison every downstream node, so the
// failure surfaces here instead.
type Text struct{}

func (Text) Name() string              { return "text" }
func (Text) RequiredHandles() []string { return nil }
func (Text) AcceptsNullInput() bool    { return false }

func (Text) ConfigDefaults() domain.NodeConfig {
	return domain.NodeConfig{"textType": TextTypeProductDetails}
}

func (Text) Execute(_ context.Context, node domain.Node, _ ports.Inputs) (*string, error) {
	trimmed := strings.TrimSpace(node.Config.String("text"))
	if trimmed == "" {
		return nil, domain.NewNodeError(node.ID, "normalize_text", domain.ErrEmptyText)
	}
	return &trimmed, nil
}

// TextType returns the node's validated text type tag.
func TextType(node domain.Node) string {
	if t := node.Config.String("textType"); t == TextTypeSystemPrompt {
		return TextTypeSystemPrompt
	}
	return TextTypeProductDetails
}
