package ports

import "context"

// ImageProcessor is the external capability behind the crop executor.
// References are opaque to the engine: URLs, data URIs, or blob handles.
type ImageProcessor interface {
	// Resize fits the image to the given dimensions and returns a
	// reference to the processed image.
	Resize(ctx context.Context, imageRef string, width, height int) (string, error)
}

// FrameExtractor is the external capability behind the extractFrame
// executor.
type FrameExtractor interface {
	// ExtractFrame grabs one frame from the video at position (percent
	// of duration, 0-100) and returns a reference to it.
	ExtractFrame(ctx context.Context, videoRef string, position int) (string, error)
}

// TextGenerator is the external model capability behind the llm and
// model executors.
type TextGenerator interface {
	// Describe produces text from a system prompt, a user message, and
	// an image reference.
	Describe(ctx context.Context, systemPrompt, userMessage, imageRef string) (string, error)

	// GenerateImage renders an image from a text prompt and returns a
	// reference to it.
	GenerateImage(ctx context.Context, prompt, model string) (string, error)
}
