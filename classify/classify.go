// Package classify decides whether a message is dialogue prose to display or
// a tool-result/status record that renders only as a tool card. Tool-result
// records share the message stream with chat turns for ordering, so the
// decision is a fixed-precedence rule chain over type, metadata, and content
// shape; the first matching rule wins and ambiguity never raises an error.
package classify

import (
	"encoding/json"
	"strings"

	"chat-transcript/normalize"
	"chat-transcript/types"
)

// Reason identifies which classification rule fired, for audit logging.
type Reason string

const (
	ReasonStatusType       Reason = "status_or_system_type"
	ReasonToolType         Reason = "tool_type"
	ReasonToolExecution    Reason = "tool_execution_key"
	ReasonLinkedSideEffect Reason = "linked_side_effect"
	ReasonContentShape     Reason = "content_shape"
	ReasonRoleOverride     Reason = "role_override"
	ReasonDefault          Reason = "default"
)

// contentShapeKeys are the discriminator keys whose presence in decoded
// content marks a tool-result payload.
var contentShapeKeys = []string{"tool_execution", "function_name", "xml_tag_name", "tool_name"}

// IsToolResultMessage reports whether msg should render as a tool-result
// card instead of prose. meta and content are the already-normalized views
// of the message (see the normalize package).
func IsToolResultMessage(msg types.Message, meta types.ParsedMetadata, content types.ParsedContent) bool {
	isToolResult, _ := Classify(msg, meta, content)
	return isToolResult
}

// Classify applies the precedence-ordered rules and reports which one fired.
func Classify(msg types.Message, meta types.ParsedMetadata, content types.ParsedContent) (bool, Reason) {
	// Rule 1: status and system records are never prose.
	if msg.Type == types.MessageTypeSystem || msg.Type == types.MessageTypeStatus {
		return true, ReasonStatusType
	}

	// Rule 2: explicit tool type, even when upstream type lists omit it.
	if msg.Type == types.MessageTypeTool {
		return true, ReasonToolType
	}

	// Rule 3: a tool_execution key anywhere in metadata or content.
	if meta.ToolExecution != nil || content.ToolExecution != nil {
		return true, ReasonToolExecution
	}

	// Rule 4: a side-effect record synthesized against a specific assistant
	// turn carries both a back-reference and parsing details.
	if meta.AssistantMessageID != "" && meta.ParsingDetails != nil {
		return true, ReasonLinkedSideEffect
	}

	// Rules 5/6: content shape, for both JSON-string and object content,
	// including one level of nested content.content unwrapping.
	if hasToolResultShape(content) {
		return true, ReasonContentShape
	}

	// Known fragility, preserved on purpose: a decoded object phrased with a
	// chat role and none of the discriminator keys is read as a serialized
	// chat turn, even though a tool-result payload could in principle carry a
	// role field for unrelated reasons.
	if content.Role == "user" || content.Role == "assistant" {
		return false, ReasonRoleOverride
	}

	return false, ReasonDefault
}

// hasToolResultShape checks the decoded content and one nested
// content.content JSON string for the discriminator keys.
func hasToolResultShape(content types.ParsedContent) bool {
	if extraHasToolResultKeys(content.Extra) {
		return true
	}

	// One level of nested unwrapping: {"content": "{\"tool_execution\": ...}"}.
	inner := strings.TrimSpace(content.Content)
	if strings.HasPrefix(inner, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(inner), &decoded); err == nil {
			if m, ok := normalize.AsMap(decoded); ok && mapHasToolResultKeys(m) {
				return true
			}
		}
	}
	return false
}

func extraHasToolResultKeys(extra map[string]any) bool {
	if extra == nil {
		return false
	}
	for _, key := range contentShapeKeys {
		if _, exists := extra[key]; exists {
			return true
		}
	}
	// Legacy writers paired a bare result with the function name.
	_, hasResult := extra["result"]
	_, hasFunction := extra["function_name"]
	return hasResult && hasFunction
}

func mapHasToolResultKeys(m map[string]any) bool {
	for _, key := range contentShapeKeys {
		if _, exists := m[key]; exists {
			return true
		}
	}
	_, hasResult := m["result"]
	_, hasFunction := m["function_name"]
	return hasResult && hasFunction
}
