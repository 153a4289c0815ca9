// Package types defines the raw message record delivered by the backend and
// the parsed structures the rendering layer consumes.
package types

import "time"

// MessageType enumerates the message kinds the backend writes into a thread.
type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
	MessageTypeSystem    MessageType = "system"
	MessageTypeStatus    MessageType = "status"
	MessageTypeTool      MessageType = "tool"
)

// Message is a raw backend message record. Immutable once received; owned by
// the fetch/subscription layer. Content and Metadata arrive in whatever shape
// the backend produced over the product's history: a plain string, a JSON
// string, a doubly-encoded JSON string, or an already-decoded object.
type Message struct {
	MessageID    string      `json:"message_id"`
	Type         MessageType `json:"type"`
	Content      any         `json:"content"`
	Metadata     any         `json:"metadata,omitempty"`
	IsLLMMessage bool        `json:"is_llm_message"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Stream status values carried in metadata while a message is being generated.
const (
	StreamStatusChunk    = "chunk"
	StreamStatusComplete = "complete"
)

// ToolExecutionResult mirrors tool_execution.result in the current schema.
type ToolExecutionResult struct {
	Success bool   `json:"success"`
	Output  any    `json:"output"`
	Error   string `json:"error,omitempty"`
}

// ToolExecution is the nested execution record carried by current-schema
// tool-result messages, in either content or metadata.
type ToolExecution struct {
	FunctionName string               `json:"function_name"`
	XMLTagName   string               `json:"xml_tag_name,omitempty"`
	ToolCallID   string               `json:"tool_call_id,omitempty"`
	Arguments    map[string]any       `json:"arguments,omitempty"`
	Result       *ToolExecutionResult `json:"result,omitempty"`
}

// ParsedMetadata is the decoded form of Message.Metadata. Known keys are
// lifted into fields; anything else passes through in Extra. Never mutated
// after creation.
type ParsedMetadata struct {
	StreamStatus              string         `json:"stream_status,omitempty"`
	ThreadRunID               string         `json:"thread_run_id,omitempty"`
	ToolIndex                 int            `json:"tool_index,omitempty"` // -1 when absent
	AssistantMessageID        string         `json:"assistant_message_id,omitempty"`
	LinkedToolResultMessageID string         `json:"linked_tool_result_message_id,omitempty"`
	ToolExecution             *ToolExecution `json:"tool_execution,omitempty"`
	ParsingDetails            map[string]any `json:"parsing_details,omitempty"`
	Extra                     map[string]any `json:"extra,omitempty"`
}

// ParsedContent is the decoded form of Message.Content.
type ParsedContent struct {
	Content       string         `json:"content,omitempty"`
	Role          string         `json:"role,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	ToolExecution *ToolExecution `json:"tool_execution,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}
