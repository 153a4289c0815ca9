package parser

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-transcript/types"
)

func toolResultFor(assistantID string) types.Message {
	return types.Message{
		MessageID: uuid.NewString(),
		Type:      types.MessageTypeStatus,
		Content:   `{"tool_execution": {"function_name": "execute-command", "result": {"success": true, "output": "ok"}}}`,
		Metadata:  fmt.Sprintf(`{"assistant_message_id": %q}`, assistantID),
	}
}

func TestGroupRelatedMessages(t *testing.T) {
	userID := uuid.NewString()
	assistantID := uuid.NewString()
	result1 := toolResultFor(assistantID)
	result2 := toolResultFor(assistantID)

	msgs := []types.Message{
		{MessageID: userID, Type: types.MessageTypeUser, Content: "list the files"},
		{MessageID: assistantID, Type: types.MessageTypeAssistant, Content: "Listing. <execute-command>ls</execute-command>"},
		result1,
		result2,
	}

	groups := GroupRelatedMessages(msgs)
	require.Len(t, groups, 2)

	assert.Equal(t, types.GroupTypeUser, groups[0].Type)
	assert.Equal(t, userID, groups[0].Primary.MessageID)
	assert.Empty(t, groups[0].Related)

	assert.Equal(t, types.GroupTypeAssistant, groups[1].Type)
	assert.Equal(t, assistantID, groups[1].Primary.MessageID)
	require.Len(t, groups[1].Related, 2)
	assert.Equal(t, result1.MessageID, groups[1].Related[0].MessageID)
	assert.Equal(t, result2.MessageID, groups[1].Related[1].MessageID)
}

// A linked tool result delivered before its assistant turn still attaches to
// that turn's group.
func TestGroupRelatedMessagesLinkedResultPrecedesAnchor(t *testing.T) {
	assistantID := uuid.NewString()
	early := toolResultFor(assistantID)

	msgs := []types.Message{
		early,
		{MessageID: assistantID, Type: types.MessageTypeAssistant, Content: "done already"},
	}

	groups := GroupRelatedMessages(msgs)
	require.Len(t, groups, 1)
	assert.Equal(t, types.GroupTypeAssistant, groups[0].Type)
	require.Len(t, groups[0].Related, 1)
	assert.Equal(t, early.MessageID, groups[0].Related[0].MessageID)
}

// Every message lands in exactly one group: no omissions, no duplicates.
func TestGroupRelatedMessagesPartition(t *testing.T) {
	assistant1 := uuid.NewString()
	assistant2 := uuid.NewString()
	orphan := toolResultFor(uuid.NewString()) // anchor not in the list

	msgs := []types.Message{
		{MessageID: uuid.NewString(), Type: types.MessageTypeUser, Content: "first ask"},
		toolResultFor(assistant1),
		{MessageID: assistant1, Type: types.MessageTypeAssistant, Content: "working"},
		toolResultFor(assistant1),
		{MessageID: uuid.NewString(), Type: types.MessageTypeStatus, Content: `{"status_type": "thread_run_start"}`},
		{MessageID: assistant2, IsLLMMessage: true, Content: "follow-up"},
		toolResultFor(assistant2),
		orphan,
		{MessageID: uuid.NewString(), Type: types.MessageTypeUser, Content: "second ask"},
	}

	groups := GroupRelatedMessages(msgs)

	seen := make(map[string]int, len(msgs))
	for _, group := range groups {
		seen[group.Primary.MessageID]++
		for _, related := range group.Related {
			seen[related.MessageID]++
		}
	}

	require.Len(t, seen, len(msgs))
	for _, msg := range msgs {
		assert.Equal(t, 1, seen[msg.MessageID], "message %s", msg.MessageID)
	}

	// The orphaned result could not be claimed, so it stands alone.
	var orphanGroup *types.MessageGroup
	for i := range groups {
		if groups[i].Primary.MessageID == orphan.MessageID {
			orphanGroup = &groups[i]
		}
	}
	require.NotNil(t, orphanGroup)
	assert.Equal(t, types.GroupTypeOther, orphanGroup.Type)
}

func TestFindLinkedToolResults(t *testing.T) {
	assistantID := uuid.NewString()
	assistant := types.Message{MessageID: assistantID, Type: types.MessageTypeAssistant}
	linked := toolResultFor(assistantID)
	unrelated := toolResultFor(uuid.NewString())
	prose := types.Message{
		MessageID: uuid.NewString(),
		Type:      types.MessageTypeAssistant,
		Content:   "just chatting",
		Metadata:  fmt.Sprintf(`{"assistant_message_id": %q}`, assistantID),
	}

	all := []types.Message{assistant, linked, unrelated, prose}

	found := FindLinkedToolResults(assistant, all)
	require.Len(t, found, 1)
	assert.Equal(t, linked.MessageID, found[0].MessageID)
}

func TestFindLinkedToolResultsEmptyID(t *testing.T) {
	all := []types.Message{toolResultFor("")}
	assert.Nil(t, FindLinkedToolResults(types.Message{}, all))
}

func TestStreamingStatusHelpers(t *testing.T) {
	chunk := types.Message{Metadata: `{"stream_status": "chunk"}`}
	complete := types.Message{Metadata: `{"stream_status": "complete"}`}
	bare := types.Message{}

	assert.True(t, IsStreamingMessage(chunk))
	assert.False(t, IsCompleteMessage(chunk))
	assert.True(t, IsCompleteMessage(complete))
	assert.False(t, IsStreamingMessage(complete))
	assert.False(t, IsStreamingMessage(bare))
	assert.False(t, IsCompleteMessage(bare))
}
