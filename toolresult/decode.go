// Package toolresult normalizes completed tool invocation payloads across the
// wire schemas the backend has shipped over time. Rather than ad hoc shape
// sniffing, decoding is an explicit ordered chain of schema decoders that
// short-circuits on the first match; input matching no known schema yields
// nil, which callers must read as "not a tool result", never as an error.
package toolresult

import (
	"chat-transcript/metrics"
	"chat-transcript/normalize"
	"chat-transcript/types"
)

// Schema variant names, used for metrics labels and debugging.
const (
	SchemaToolExecution = "tool_execution" // current: {tool_execution: {result: {...}}}
	SchemaLegacyTool    = "legacy_tool"    // older: {tool, parameters, output}
	SchemaDirect        = "direct"         // oldest: {success, output} at top level
)

// decoder attempts to read one schema variant out of a decoded payload.
type decoder struct {
	schema string
	decode func(map[string]any) (*types.ParsedToolResult, bool)
}

// decoders is tried in priority order; first success wins.
var decoders = []decoder{
	{SchemaToolExecution, decodeToolExecution},
	{SchemaLegacyTool, decodeLegacyTool},
	{SchemaDirect, decodeDirect},
}

// ParseToolResult accepts a string, a decoded object, or nil, and returns
// the normalized result or nil when the input is not a tool result.
// Malformed JSON never panics; it simply yields nil.
func ParseToolResult(input any) *types.ParsedToolResult {
	if input == nil {
		return nil
	}

	raw := normalize.SafeParse(input, nil)
	m, ok := normalize.AsMap(raw)
	if !ok {
		return nil
	}

	for _, d := range decoders {
		if result, matched := d.decode(m); matched {
			metrics.ToolResultsDecodedTotal.WithLabelValues(d.schema).Inc()
			return result
		}
	}
	return nil
}

// decodeToolExecution handles the current schema:
// {tool_execution: {function_name, arguments, result: {success, output, error}}}
func decodeToolExecution(m map[string]any) (*types.ParsedToolResult, bool) {
	exec := normalize.DecodeToolExecution(m["tool_execution"])
	if exec == nil || exec.Result == nil {
		return nil, false
	}
	return &types.ParsedToolResult{
		FunctionName: exec.FunctionName,
		Success:      exec.Result.Success,
		Output:       exec.Result.Output,
		Error:        exec.Result.Error,
		Arguments:    exec.Arguments,
		ToolCallID:   exec.ToolCallID,
	}, true
}

// decodeLegacyTool handles the older schema: {tool, parameters, output}.
// Presence of "tool" is the discriminator; success defaults to true because
// the old writer only recorded completed runs.
func decodeLegacyTool(m map[string]any) (*types.ParsedToolResult, bool) {
	name, ok := m["tool"].(string)
	if !ok || name == "" {
		return nil, false
	}
	params, _ := normalize.AsMap(m["parameters"])

	result := &types.ParsedToolResult{
		FunctionName: name,
		Success:      true,
		Output:       m["output"],
		Arguments:    params,
	}
	if success, ok := m["success"].(bool); ok {
		result.Success = success
	}
	if errText, ok := m["error"].(string); ok {
		result.Error = errText
		result.Success = false
	}
	return result, true
}

// decodeDirect handles the oldest shape: {success, output} at top level.
// Both keys must be present to avoid swallowing unrelated payloads.
func decodeDirect(m map[string]any) (*types.ParsedToolResult, bool) {
	success, hasSuccess := m["success"].(bool)
	output, hasOutput := m["output"]
	if !hasSuccess || !hasOutput {
		return nil, false
	}

	result := &types.ParsedToolResult{
		Success: success,
		Output:  output,
	}
	if name, ok := m["function_name"].(string); ok {
		result.FunctionName = name
	}
	if errText, ok := m["error"].(string); ok {
		result.Error = errText
	}
	return result, true
}
