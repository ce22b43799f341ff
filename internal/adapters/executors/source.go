// Package executors contains the built-in node executors for the canvas
// node types. Each executor declares its required input handles, derives
// its unit of work from node config plus resolved inputs, and maps the
// result to a single opaque output reference.
package executors

import (
	"context"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// Upload emits the image reference captured by the canvas upload node.
// It is a source: no required handles, executes on the first pass.
type Upload struct{}

func (Upload) Name() string              { return "upload" }
func (Upload) RequiredHandles() []string { return nil }
func (Upload) AcceptsNullInput() bool    { return false }

func (Upload) Execute(_ context.Context, node domain.Node, _ ports.Inputs) (*string, error) {
	return configRef(node, "imageUrl"), nil
}

// UploadVideo emits the video reference captured by the canvas video
// upload node.
type UploadVideo struct{}

func (UploadVideo) Name() string              { return "uploadVideo" }
func (UploadVideo) RequiredHandles() []string { return nil }
func (UploadVideo) AcceptsNullInput() bool    { return false }

func (UploadVideo) Execute(_ context.Context, node domain.Node, _ ports.Inputs) (*string, error) {
	return configRef(node, "videoUrl"), nil
}

// Input emits its configured raw text unchanged.
type Input struct{}

func (Input) Name() string              { return "input" }
func (Input) RequiredHandles() []string { return nil }
func (Input) AcceptsNullInput() bool    { return false }

func (Input) Execute(_ context.Context, node domain.Node, _ ports.Inputs) (*string, error) {
	return configRef(node, "text"), nil
}

// configRef reads a reference out of node config, mapping the empty
// string to an explicit no-output.
func configRef(node domain.Node, key string) *string {
	if v := node.Config.String(key); v != "" {
		return &v
	}
	return nil
}
