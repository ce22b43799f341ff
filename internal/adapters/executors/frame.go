package executors

import (
	"context"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

const defaultFramePosition = 50

// ExtractFrame grabs one frame from the incoming video at the
// configured position (percent of duration). A missing video passes
// through as no-output.
type ExtractFrame struct {
	Extractor ports.FrameExtractor
}

func (ExtractFrame) Name() string              { return "extractFrame" }
func (ExtractFrame) RequiredHandles() []string { return []string{domain.DefaultHandle} }
func (ExtractFrame) AcceptsNullInput() bool    { return false }

func (ExtractFrame) ConfigDefaults() domain.NodeConfig {
	return domain.NodeConfig{"timestamp": defaultFramePosition}
}

func (e ExtractFrame) Execute(ctx context.Context, node domain.Node, inputs ports.Inputs) (*string, error) {
	video := inputs.Get(domain.DefaultHandle)
	if video == nil || *video == "" {
		return nil, nil
	}

	frame, err := e.Extractor.ExtractFrame(ctx, *video, node.Config.Int("timestamp", defaultFramePosition))
	if err != nil {
		return nil, err
	}
	return &frame, nil
}
