package domain

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Validate(t *testing.T) {
	valid := Graph{
		Nodes: []Node{{ID: "a", Type: "upload"}, {ID: "b", Type: "crop"}},
		Edges: []Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
	assert.NoError(t, valid.Validate())

	duplicate := Graph{
		Nodes: []Node{{ID: "a", Type: "upload"}, {ID: "a", Type: "crop"}},
	}
	err := duplicate.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateNode)

	var graphErr *GraphError
	require.ErrorAs(t, err, &graphErr)
	assert.Equal(t, "node", graphErr.Kind)
	assert.Equal(t, "a", graphErr.ID)

	danglingSource := Graph{
		Nodes: []Node{{ID: "a", Type: "upload"}},
		Edges: []Edge{{ID: "e1", Source: "ghost", Target: "a"}},
	}
	assert.ErrorIs(t, danglingSource.Validate(), ErrUnknownNode)

	danglingTarget := Graph{
		Nodes: []Node{{ID: "a", Type: "upload"}},
		Edges: []Edge{{ID: "e1", Source: "a", Target: "ghost"}},
	}
	assert.ErrorIs(t, danglingTarget.Validate(), ErrUnknownNode)

	assert.NoError(t, Graph{}.Validate())
}

func TestEdge_Handle(t *testing.T) {
	assert.Equal(t, DefaultHandle, Edge{Source: "a", Target: "b"}.Handle())
	assert.Equal(t, "system_prompt", Edge{Source: "a", Target: "b", TargetHandle: "system_prompt"}.Handle())
}

func TestNode_DisplayLabel(t *testing.T) {
	assert.Equal(t, "Crop Image", Node{ID: "c", Type: "crop", Label: "Crop Image"}.DisplayLabel())
	assert.Equal(t, "crop", Node{ID: "c", Type: "crop"}.DisplayLabel())
}

func TestGraph_IncomingEdges(t *testing.T) {
	graph := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{
			{ID: "e1", Source: "a", Target: "c"},
			{ID: "e2", Source: "b", Target: "c", TargetHandle: "image"},
			{ID: "e3", Source: "a", Target: "b"},
		},
	}

	incoming := graph.IncomingEdges("c")
	require.Len(t, incoming, 2)
	assert.Equal(t, "e1", incoming[0].ID)
	assert.Equal(t, "e2", incoming[1].ID)

	assert.Empty(t, graph.IncomingEdges("a"))
}

func TestGraph_NodeByID(t *testing.T) {
	graph := Graph{Nodes: []Node{{ID: "a", Type: "upload"}}}

	node, found := graph.NodeByID("a")
	assert.True(t, found)
	assert.Equal(t, "upload", node.Type)

	_, found = graph.NodeByID("missing")
	assert.False(t, found)
}

func TestGraph_DecodesCanvasShape(t *testing.T) {
	raw := `{
		"nodes": [
			{"id": "upload-1", "type": "upload", "config": {"imageUrl": "img.png"}},
			{"id": "crop-1", "type": "crop", "label": "Crop", "config": {"width": 512}}
		],
		"edges": [
			{"id": "e1", "source": "upload-1", "target": "crop-1", "targetHandle": "default"}
		]
	}`

	var graph Graph
	require.NoError(t, json.Unmarshal([]byte(raw), &graph))
	require.NoError(t, graph.Validate())

	require.Len(t, graph.Nodes, 2)
	assert.Equal(t, "img.png", graph.Nodes[0].Config.String("imageUrl"))
	assert.Equal(t, 512, graph.Nodes[1].Config.Int("width", 0))

	require.Len(t, graph.Edges, 1)
	assert.Equal(t, DefaultHandle, graph.Edges[0].Handle())
}
