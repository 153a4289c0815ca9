package parser

import (
	"chat-transcript/classify"
	"chat-transcript/normalize"
	"chat-transcript/types"
)

// GroupRelatedMessages partitions an ordered thread into render groups using
// the default parser.
func GroupRelatedMessages(msgs []types.Message) []types.MessageGroup {
	return defaultParser.GroupRelatedMessages(msgs)
}

// FindLinkedToolResults returns the tool-result messages linked to an
// assistant turn, using the default parser.
func FindLinkedToolResults(assistant types.Message, all []types.Message) []types.Message {
	return defaultParser.FindLinkedToolResults(assistant, all)
}

// GroupRelatedMessages makes a single left-to-right pass over msgs,
// anchoring a group at each first-seen message: user turns become singleton
// groups, assistant turns pull in every tool-result message whose metadata
// back-references them, and whatever remains becomes an "other" singleton.
// Every message lands in exactly one group.
func (p *Parser) GroupRelatedMessages(msgs []types.Message) []types.MessageGroup {
	groups := make([]types.MessageGroup, 0, len(msgs))
	processed := make(map[string]bool, len(msgs))

	anchors := make(map[string]bool, len(msgs))
	for _, msg := range msgs {
		if msg.Type == types.MessageTypeAssistant || msg.IsLLMMessage {
			anchors[msg.MessageID] = true
		}
	}

	for _, msg := range msgs {
		if processed[msg.MessageID] {
			continue
		}

		switch {
		case msg.Type == types.MessageTypeUser:
			processed[msg.MessageID] = true
			groups = append(groups, types.MessageGroup{
				Type:    types.GroupTypeUser,
				Primary: msg,
			})

		case msg.Type == types.MessageTypeAssistant || msg.IsLLMMessage:
			processed[msg.MessageID] = true
			// Linked results can precede their assistant message in
			// created_at order, so the whole list is scanned, not just the
			// tail.
			var related []types.Message
			for _, linked := range p.FindLinkedToolResults(msg, msgs) {
				if processed[linked.MessageID] {
					continue
				}
				processed[linked.MessageID] = true
				related = append(related, linked)
			}
			groups = append(groups, types.MessageGroup{
				Type:    types.GroupTypeAssistant,
				Primary: msg,
				Related: related,
			})

		default:
			// A tool result whose assistant anchor appears later in the list
			// is left for that anchor to claim instead of becoming a
			// premature singleton.
			if p.claimedByLaterAnchor(msg, anchors) {
				continue
			}
			processed[msg.MessageID] = true
			groups = append(groups, types.MessageGroup{
				Type:    types.GroupTypeOther,
				Primary: msg,
			})
		}
	}

	return groups
}

// claimedByLaterAnchor reports whether msg is a tool result back-referencing
// an assistant turn present in the same list. FindLinkedToolResults applies
// the same checks, so a deferred message is always claimed eventually.
func (p *Parser) claimedByLaterAnchor(msg types.Message, anchors map[string]bool) bool {
	meta := normalize.ParseMessageMetadata(msg)
	if meta.AssistantMessageID == "" || meta.AssistantMessageID == msg.MessageID {
		return false
	}
	if !anchors[meta.AssistantMessageID] {
		return false
	}
	content := normalize.ParseMessageContent(msg)
	return classify.IsToolResultMessage(msg, meta, content)
}

// FindLinkedToolResults scans all messages for tool-result records whose
// parsed metadata carries assistant_message_id equal to the assistant turn's
// id. Returns an empty slice when the assistant message has no id.
func (p *Parser) FindLinkedToolResults(assistant types.Message, all []types.Message) []types.Message {
	if assistant.MessageID == "" {
		return nil
	}

	var linked []types.Message
	for _, candidate := range all {
		if candidate.MessageID == assistant.MessageID {
			continue
		}
		meta := normalize.ParseMessageMetadata(candidate)
		if meta.AssistantMessageID != assistant.MessageID {
			continue
		}
		content := normalize.ParseMessageContent(candidate)
		if classify.IsToolResultMessage(candidate, meta, content) {
			linked = append(linked, candidate)
		}
	}
	return linked
}

// IsStreamingMessage reports whether metadata marks the message as an
// in-flight chunk, so the rendering layer can show a loading affordance.
func IsStreamingMessage(msg types.Message) bool {
	meta := normalize.ParseMessageMetadata(msg)
	return meta.StreamStatus == types.StreamStatusChunk
}

// IsCompleteMessage reports whether metadata marks the message as finalized.
func IsCompleteMessage(msg types.Message) bool {
	meta := normalize.ParseMessageMetadata(msg)
	return meta.StreamStatus == types.StreamStatusComplete
}
