package executors

import (
	"context"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

const defaultCropSize = 512

// Crop resizes the incoming image through the media service. A missing
// image passes through as no-output rather than failing: the upstream
// upload may legitimately be empty.
type Crop struct {
	Processor ports.ImageProcessor
}

func (Crop) Name() string              { return "crop" }
func (Crop) RequiredHandles() []string { return []string{domain.DefaultHandle} }
func (Crop) AcceptsNullInput() bool    { return false }

func (Crop) ConfigDefaults() domain.NodeConfig {
	return domain.NodeConfig{
		"width":  defaultCropSize,
		"height": defaultCropSize,
	}
}

func (c Crop) Execute(ctx context.Context, node domain.Node, inputs ports.Inputs) (*string, error) {
	image := inputs.Get(domain.DefaultHandle)
	if image == nil {
		image = inputs.Get("image")
	}
	if image == nil || *image == "" {
		return nil, nil
	}

	processed, err := c.Processor.Resize(ctx, *image,
		node.Config.Int("width", defaultCropSize),
		node.Config.Int("height", defaultCropSize))
	if err != nil {
		return nil, err
	}
	return &processed, nil
}
