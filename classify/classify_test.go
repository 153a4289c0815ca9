package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chat-transcript/normalize"
	"chat-transcript/types"
)

// classifyMessage normalizes and classifies in one step, the way the
// orchestrator drives this package.
func classifyMessage(msg types.Message) (bool, Reason) {
	meta := normalize.ParseMessageMetadata(msg)
	content := normalize.ParseMessageContent(msg)
	return Classify(msg, meta, content)
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		msg        types.Message
		want       bool
		wantReason Reason
	}{
		{
			name:       "status type always wins",
			msg:        types.Message{Type: types.MessageTypeStatus, Content: "plain prose"},
			want:       true,
			wantReason: ReasonStatusType,
		},
		{
			name:       "system type always wins",
			msg:        types.Message{Type: types.MessageTypeSystem, Content: `{"role": "user", "content": "hi"}`},
			want:       true,
			wantReason: ReasonStatusType,
		},
		{
			name:       "tool type",
			msg:        types.Message{Type: types.MessageTypeTool, Content: "output"},
			want:       true,
			wantReason: ReasonToolType,
		},
		{
			name: "tool_execution in metadata",
			msg: types.Message{
				Type:     types.MessageTypeAssistant,
				Content:  "some text",
				Metadata: `{"tool_execution": {"function_name": "ask"}}`,
			},
			want:       true,
			wantReason: ReasonToolExecution,
		},
		{
			name: "tool_execution in content",
			msg: types.Message{
				Type:    types.MessageTypeAssistant,
				Content: `{"tool_execution": {"result": {"success": true, "output": "ok"}}}`,
			},
			want:       true,
			wantReason: ReasonToolExecution,
		},
		{
			name: "linked side-effect record",
			msg: types.Message{
				Type:     types.MessageTypeAssistant,
				Content:  "anything",
				Metadata: `{"assistant_message_id": "msg_1", "parsing_details": {"source": "xml"}}`,
			},
			want:       true,
			wantReason: ReasonLinkedSideEffect,
		},
		{
			name: "assistant_message_id alone is not enough",
			msg: types.Message{
				Type:     types.MessageTypeAssistant,
				Content:  "hello",
				Metadata: `{"assistant_message_id": "msg_1"}`,
			},
			want:       false,
			wantReason: ReasonDefault,
		},
		{
			name:       "function_name in decoded content",
			msg:        types.Message{Type: types.MessageTypeAssistant, Content: `{"function_name": "web-search", "result": "ok"}`},
			want:       true,
			wantReason: ReasonContentShape,
		},
		{
			name:       "xml_tag_name in decoded content",
			msg:        types.Message{Type: types.MessageTypeAssistant, Content: `{"xml_tag_name": "execute-command"}`},
			want:       true,
			wantReason: ReasonContentShape,
		},
		{
			name:       "tool_name in object content",
			msg:        types.Message{Type: types.MessageTypeAssistant, Content: map[string]any{"tool_name": "ask"}},
			want:       true,
			wantReason: ReasonContentShape,
		},
		{
			name: "nested content.content json string",
			msg: types.Message{
				Type:    types.MessageTypeAssistant,
				Content: map[string]any{"content": `{"tool_execution": {"result": {"success": true}}}`},
			},
			want:       true,
			wantReason: ReasonContentShape,
		},
		{
			name:       "serialized chat turn with role is prose",
			msg:        types.Message{Type: types.MessageTypeAssistant, Content: `{"role": "user", "content": "hello"}`},
			want:       false,
			wantReason: ReasonRoleOverride,
		},
		{
			name:       "plain assistant prose",
			msg:        types.Message{Type: types.MessageTypeAssistant, Content: "Here's what I found."},
			want:       false,
			wantReason: ReasonDefault,
		},
		{
			name:       "plain user message",
			msg:        types.Message{Type: types.MessageTypeUser, Content: "help me with this"},
			want:       false,
			wantReason: ReasonDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := classifyMessage(tt.msg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

// Rule 1 pre-empts all content-based rules: a status record stays a tool
// result no matter what shape its content takes.
func TestClassifyStatusPreemptsContentShape(t *testing.T) {
	contents := []any{
		"plain text",
		`{"role": "user", "content": "hello"}`,
		`{"tool_execution": {"result": {"success": true}}}`,
		map[string]any{"anything": "at all"},
		nil,
	}

	for _, content := range contents {
		got, reason := classifyMessage(types.Message{Type: types.MessageTypeStatus, Content: content})
		assert.True(t, got)
		assert.Equal(t, ReasonStatusType, reason)
	}
}

func TestIsToolResultMessage(t *testing.T) {
	msg := types.Message{Type: types.MessageTypeStatus}
	meta := normalize.ParseMessageMetadata(msg)
	content := normalize.ParseMessageContent(msg)
	assert.True(t, IsToolResultMessage(msg, meta, content))
}
