// Package normalize absorbs the backend's historically inconsistent message
// encodings. Content and metadata fields may arrive as plain strings, JSON
// strings, doubly-encoded JSON strings, or already-decoded objects; every
// function here returns a documented fallback instead of an error, so this is
// the single point where malformed backend payloads are absorbed.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"chat-transcript/metrics"
	"chat-transcript/types"
)

// maxUnwrapDepth bounds nested {"content": "..."} unwrapping.
const maxUnwrapDepth = 4

// SafeParse decodes a possibly JSON-encoded value. Doubly-encoded JSON
// strings are decoded twice; a string that decodes to a non-JSON string is
// returned once-decoded. Malformed JSON-looking input yields fallback, plain
// strings are returned verbatim, and already-decoded values pass through
// unchanged. SafeParse never panics on backend data.
func SafeParse(input any, fallback any) any {
	if isFalsy(input) {
		return fallback
	}

	str, isString := input.(string)
	if !isString {
		// Already a decoded object (map, slice, number, bool): pass through.
		return input
	}

	var decoded any
	if err := json.Unmarshal([]byte(str), &decoded); err != nil {
		if looksLikeJSON(str) {
			// JSON-shaped but broken: absorb, report the fallback.
			metrics.MalformedPayloadsTotal.Inc()
			return fallback
		}
		// Plain prose string.
		return str
	}

	// A literal "null" decodes to nil; report it as the fallback so a second
	// pass over the result is a no-op.
	if decoded == nil {
		return fallback
	}

	// A string decoding to a string may be doubly encoded.
	if inner, ok := decoded.(string); ok && looksLikeJSON(inner) {
		var twice any
		if err := json.Unmarshal([]byte(inner), &twice); err == nil {
			return twice
		}
		return inner
	}

	return decoded
}

// isFalsy is the emptiness check applied to raw backend fields. Only nil and
// the empty string count: coerced values like false or 0 must survive a
// second SafeParse pass unchanged, so decoding stays idempotent.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}

// looksLikeJSON reports whether a trimmed string starts like a JSON
// object or array.
func looksLikeJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// AsMap returns v as a string-keyed map when it is one.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// ParseMessageMetadata decodes Message.Metadata into ParsedMetadata. Absent
// or malformed metadata yields the zero value (ToolIndex -1).
func ParseMessageMetadata(msg types.Message) types.ParsedMetadata {
	meta := types.ParsedMetadata{ToolIndex: -1}
	if msg.Metadata == nil {
		return meta
	}

	raw := SafeParse(msg.Metadata, map[string]any{})
	m, ok := AsMap(raw)
	if !ok {
		return meta
	}

	extra := make(map[string]any)
	for key, value := range m {
		switch key {
		case "stream_status":
			meta.StreamStatus, _ = value.(string)
		case "thread_run_id":
			meta.ThreadRunID, _ = value.(string)
		case "tool_index":
			if n, ok := value.(float64); ok {
				meta.ToolIndex = int(n)
			}
		case "assistant_message_id":
			meta.AssistantMessageID, _ = value.(string)
		case "linked_tool_result_message_id":
			meta.LinkedToolResultMessageID, _ = value.(string)
		case "tool_execution":
			meta.ToolExecution = DecodeToolExecution(value)
		case "parsing_details":
			meta.ParsingDetails, _ = AsMap(value)
		default:
			extra[key] = value
		}
	}
	if len(extra) > 0 {
		meta.Extra = extra
	}
	return meta
}

// ParseMessageContent decodes Message.Content into ParsedContent. A plain
// string becomes the Content field; decoded objects have their known keys
// lifted and the rest passed through in Extra.
func ParseMessageContent(msg types.Message) types.ParsedContent {
	var content types.ParsedContent
	if msg.Content == nil {
		return content
	}

	raw := SafeParse(msg.Content, map[string]any{})
	switch v := raw.(type) {
	case string:
		content.Content = v
		return content
	case map[string]any:
		extra := make(map[string]any)
		for key, value := range v {
			switch key {
			case "content":
				if s, ok := value.(string); ok {
					content.Content = s
				} else {
					extra[key] = value
				}
			case "role":
				content.Role, _ = value.(string)
			case "summary":
				content.Summary, _ = value.(string)
			case "tool_execution":
				content.ToolExecution = DecodeToolExecution(value)
			default:
				extra[key] = value
			}
		}
		if len(extra) > 0 {
			content.Extra = extra
		}
		return content
	default:
		return content
	}
}

// ExtractContentText returns the innermost human-readable text of a
// message's content: a raw string, a JSON-string wrapping {"content": ...},
// or an object carrying a content field. Structured content with no wrapper
// is rendered as its JSON encoding.
func ExtractContentText(msg types.Message) string {
	return extractText(msg.Content, 0)
}

func extractText(v any, depth int) string {
	if v == nil || depth > maxUnwrapDepth {
		return ""
	}

	switch c := v.(type) {
	case string:
		if looksLikeJSON(c) {
			var decoded any
			if err := json.Unmarshal([]byte(c), &decoded); err == nil {
				if m, ok := decoded.(map[string]any); ok {
					if inner, exists := m["content"]; exists {
						return extractText(inner, depth+1)
					}
				}
			}
		}
		return c
	case map[string]any:
		if inner, exists := c["content"]; exists {
			return extractText(inner, depth+1)
		}
		return stringify(c)
	default:
		return stringify(c)
	}
}

// stringify is the last-resort rendering of structured content with no
// recognizable text wrapper.
func stringify(v any) string {
	if encoded, err := json.Marshal(v); err == nil {
		return string(encoded)
	}
	return fmt.Sprintf("%v", v)
}

// DecodeToolExecution converts a decoded tool_execution map into a typed
// record. Returns nil when v is not a map.
func DecodeToolExecution(v any) *types.ToolExecution {
	m, ok := AsMap(v)
	if !ok {
		return nil
	}

	exec := &types.ToolExecution{}
	exec.FunctionName, _ = m["function_name"].(string)
	exec.XMLTagName, _ = m["xml_tag_name"].(string)
	exec.ToolCallID, _ = m["tool_call_id"].(string)
	exec.Arguments, _ = AsMap(m["arguments"])

	if resultMap, ok := AsMap(m["result"]); ok {
		result := &types.ToolExecutionResult{}
		result.Success, _ = resultMap["success"].(bool)
		result.Output = resultMap["output"]
		result.Error, _ = resultMap["error"].(string)
		exec.Result = result
	}
	return exec
}
