package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeConfig_String(t *testing.T) {
	config := NodeConfig{"text": "hello", "width": 512}

	assert.Equal(t, "hello", config.String("text"))
	assert.Equal(t, "", config.String("width"))
	assert.Equal(t, "", config.String("missing"))
	assert.Equal(t, "", NodeConfig(nil).String("text"))
}

func TestNodeConfig_Int(t *testing.T) {
	config := NodeConfig{
		"native":  512,
		"wide":    int64(600),
		"decoded": float64(768),
		"text":    "not a number",
	}

	assert.Equal(t, 512, config.Int("native", 0))
	assert.Equal(t, 600, config.Int("wide", 0))
	assert.Equal(t, 768, config.Int("decoded", 0))
	assert.Equal(t, 99, config.Int("text", 99))
	assert.Equal(t, 99, config.Int("missing", 99))
	assert.Equal(t, 99, NodeConfig(nil).Int("native", 99))
}

func TestNodeConfig_Clone(t *testing.T) {
	config := NodeConfig{"k": "v"}

	clone := config.Clone()
	clone["k"] = "changed"
	clone["added"] = true

	assert.Equal(t, "v", config["k"])
	assert.NotContains(t, config, "added")

	// A nil config clones to an empty, writable map.
	nilClone := NodeConfig(nil).Clone()
	assert.NotNil(t, nilClone)
	nilClone["k"] = "v"
}
