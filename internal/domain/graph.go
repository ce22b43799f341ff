// Package domain holds the pure types of the canvas engine: the graph
// snapshot, node configuration, run records, and the error taxonomy.
// Nothing here touches I/O; adapters depend on this package, never the
// other way around.
package domain

// DefaultHandle is the implicit input handle used by edges that do not
// name one. Single-input node types read from it.
const DefaultHandle = "default"

// Node is one typed unit of work on the canvas. Type selects the
// executor; Config carries the type-specific settings captured by the
// canvas (upload references, text content, crop dimensions).
type Node struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"`
	Label  string     `json:"label,omitempty"`
	Config NodeConfig `json:"config,omitempty"`
}

// DisplayLabel returns the node's label, falling back to its type tag
// for unlabeled nodes.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Type
}

// Edge is a directed data dependency: the source node's output feeds
// the target node's named input handle.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Handle returns the edge's target handle, defaulting unnamed handles
// to DefaultHandle.
func (e Edge) Handle() string {
	if e.TargetHandle != "" {
		return e.TargetHandle
	}
	return DefaultHandle
}

// Graph is an immutable snapshot of the canvas. The engine never
// mutates it; a run observes exactly the snapshot it was handed.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Validate checks the snapshot's structural integrity: node ids must be
// unique and every edge must reference nodes in the snapshot.
func (g Graph) Validate() error {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, node := range g.Nodes {
		if _, exists := ids[node.ID]; exists {
			return NewGraphError("node", node.ID, ErrDuplicateNode)
		}
		ids[node.ID] = struct{}{}
	}

	for _, edge := range g.Edges {
		if _, exists := ids[edge.Source]; !exists {
			return NewGraphError("edge", edge.ID, ErrUnknownNode)
		}
		if _, exists := ids[edge.Target]; !exists {
			return NewGraphError("edge", edge.ID, ErrUnknownNode)
		}
	}
	return nil
}

// IncomingEdges returns the edges targeting nodeID in snapshot order.
func (g Graph) IncomingEdges(nodeID string) []Edge {
	var incoming []Edge
	for _, edge := range g.Edges {
		if edge.Target == nodeID {
			incoming = append(incoming, edge)
		}
	}
	return incoming
}

// NodeByID returns the node with the given id.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}
