package domain

// NodeConfig is the arbitrary key/value data attached to a node by the
// canvas. Values arrive from JSON, so numbers are float64.
type NodeConfig map[string]interface{}

func (c NodeConfig) String(key string) string {
	if c == nil {
		return ""
	}
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}

// Int reads a numeric config value, accepting both JSON float64 and
// native int, returning fallback when absent or non-numeric.
func (c NodeConfig) Int(key string, fallback int) int {
	if c == nil {
		return fallback
	}
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// Clone returns a shallow copy so merged defaults never leak back into
// the caller's graph snapshot.
func (c NodeConfig) Clone() NodeConfig {
	if c == nil {
		return NodeConfig{}
	}
	clone := make(NodeConfig, len(c))
	for k, v := range c {
		clone[k] = v
	}
	return clone
}
