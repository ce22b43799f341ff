package engine

import (
	"github.com/adityaraj1236/linqai/internal/domain"
	"github.com/adityaraj1236/linqai/internal/ports"
)

// ResolveInputs builds the named-input map for node from the outputs
// recorded so far: one entry per incoming edge, keyed by target handle.
// Edges whose source has not produced anything resolve to nil, so
// optional handles outside the required set are populated when available
// without gating readiness.
//
// Multiple edges into the same handle resolve deterministically:
// last write in graph edge order wins.
func ResolveInputs(graph domain.Graph, node domain.Node, outputs map[string]*string) ports.Inputs {
	inputs := make(ports.Inputs)
	for _, edge := range graph.IncomingEdges(node.ID) {
		if value, ok := outputs[edge.Source]; ok && value != nil {
			v := *value
			inputs[edge.Handle()] = &v
		} else {
			inputs[edge.Handle()] = nil
		}
	}
	return inputs
}
