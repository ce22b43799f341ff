package executors

import (
	"context"

	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// Output is the terminal display node: it echoes its default input and
// tolerates an empty upstream so a graph with a null producer still
// reaches its sink instead of deadlocking.
type Output struct{}

func (Output) Name() string              { return "output" }
func (Output) RequiredHandles() []string { return []string{domain.DefaultHandle} }
func (Output) AcceptsNullInput() bool    { return true }

func (Output) Execute(_ context.Context, _ domain.Node, inputs ports.Inputs) (*string, error) {
	return inputs.Get(domain.DefaultHandle), nil
}

// MarketingOutput is the terminal display node of the marketing branch.
// Same pass-through semantics as Output.
type MarketingOutput struct{}

func (MarketingOutput) Name() string              { return "marketingOutput" }
func (MarketingOutput) RequiredHandles() []string { return []string{domain.DefaultHandle} }
func (MarketingOutput) AcceptsNullInput() bool    { return true }

func (MarketingOutput) Execute(_ context.Context, _ domain.Node, inputs ports.Inputs) (*string, error) {
	return inputs.Get(domain.DefaultHandle), nil
}

// Description relays generated text to downstream consumers. Unlike the
// terminal sinks it does not tolerate an empty upstream.
type Description struct{}

func (Description) Name() string              { return "description" }
func (Description) RequiredHandles() []string { return []string{domain.DefaultHandle} }
func (Description) AcceptsNullInput() bool    { return false }

func (Description) Execute(_ context.Context, _ domain.Node, inputs ports.Inputs) (*string, error) {
	return inputs.Get(domain.DefaultHandle), nil
}
