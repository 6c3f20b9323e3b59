// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ToolResult is the outcome of one tool invocation. Error is set exactly
// when Success is false; Data may be nil on failure.
type ToolResult struct {
	// Success reports whether the invocation produced usable data.
	Success bool `json:"success" yaml:"success"`

	// Data is the structured payload. Its shape is defined by the
	// producing toolkit; consumers treat it opaquely.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	// Citations lists the sources backing Data, in relevance order.
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Error describes the failure. Empty when Success is true.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Ok builds a successful result with the given payload and citations.
func Ok(data map[string]any, citations ...Citation) ToolResult {
	return ToolResult{Success: true, Data: data, Citations: citations}
}

// Fail builds a failed result carrying the error text.
func Fail(err error) ToolResult {
	return ToolResult{Success: false, Error: err.Error()}
}
