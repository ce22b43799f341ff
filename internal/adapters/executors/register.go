package executors

import (
	"github.com/adityaraj1236/linqai/internal/ports"
)

// Services holds the external capabilities the built-in executors
// delegate to.
type Services struct {
	Images ports.ImageProcessor
	Frames ports.FrameExtractor
	Models ports.TextGenerator
}

// RegisterBuiltins registers every canvas node type with the registry.
func RegisterBuiltins(registry ports.ExecutorRegistry, services Services) error {
	builtins := []ports.NodeExecutor{
		Upload{},
		UploadVideo{},
		Input{},
		Text{},
		Crop{Processor: services.Images},
		LLM{Generator: services.Models},
		Model{Generator: services.Models},
		ExtractFrame{Extractor: services.Frames},
		Output{},
		MarketingOutput{},
		Description{},
	}

	for _, executor := range builtins {
		if err := registry.Register(executor); err != nil {
			return err
		}
	}
	return nil
}
