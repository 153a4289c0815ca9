package types

import "strings"

// ParsedToolCall is a legacy inline XML tool invocation extracted from
// display text. Ephemeral: recomputed from content each parse, never stored.
type ParsedToolCall struct {
	FunctionName string         `json:"function_name"`
	Parameters   map[string]any `json:"parameters"`
	RawXML       string         `json:"raw_xml"` // exact matched span, reused verbatim for removal
}

// ParsedToolResult is the normalized outcome of a tool invocation, decoded
// from one of the historical wire shapes (see the toolresult package).
type ParsedToolResult struct {
	FunctionName string         `json:"function_name,omitempty"`
	Success      bool           `json:"success"`
	Output       any            `json:"output"`
	Error        string         `json:"error,omitempty"`
	Arguments    map[string]any `json:"arguments,omitempty"`
	ToolCallID   string         `json:"tool_call_id,omitempty"`
}

// ParsedMessage is the unit the rendering layer consumes. It is a pure
// projection of a Message: created fresh per render pass, no lifecycle.
type ParsedMessage struct {
	Original            Message            `json:"original_message"`
	CleanContent        string             `json:"clean_content"`
	ToolCalls           []ParsedToolCall   `json:"tool_calls"`
	ToolResults         []ParsedToolResult `json:"tool_results"`
	HasTools            bool               `json:"has_tools"`
	IsToolOnly          bool               `json:"is_tool_only"`
	Metadata            ParsedMetadata     `json:"metadata"`
	Content             ParsedContent      `json:"parsed_content"`
	IsToolResultMessage bool               `json:"is_tool_result_message"`
}

// HasCleanContent reports whether any prose survives after trimming.
func (p *ParsedMessage) HasCleanContent() bool {
	return strings.TrimSpace(p.CleanContent) != ""
}

// GroupType classifies a MessageGroup by its anchor message.
type GroupType string

const (
	GroupTypeUser      GroupType = "user"
	GroupTypeAssistant GroupType = "assistant"
	GroupTypeOther     GroupType = "other"
)

// MessageGroup pairs an anchor message with the tool-result messages whose
// metadata links back to it. Every message of a thread appears in exactly
// one group.
type MessageGroup struct {
	Type    GroupType `json:"type"`
	Primary Message   `json:"primary"`
	Related []Message `json:"related,omitempty"`
}
