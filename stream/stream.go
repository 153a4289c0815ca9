// Package stream processes the raw, growing content buffer of the message
// currently being generated. It runs on every chunk append and splits the
// buffer into text that is safe to display and a tool tag still arriving, so
// partial XML is never flashed to the user.
package stream

import (
	"chat-transcript/metrics"
	"chat-transcript/xmlcall"
)

// Result is the per-chunk projection for the actively streaming message.
type Result struct {
	CleanContent      string `json:"clean_content"`
	CurrentToolName   string `json:"current_tool_name,omitempty"`
	ShouldHideContent bool   `json:"should_hide_content"`
	IsStreamingTool   bool   `json:"is_streaming_tool"`
}

// Process splits a partial content buffer at the first in-flight tool tag.
// It is pure and idempotent over a monotonically growing buffer: a prefix
// already revealed as clean stays clean, shrinking only at the exact moment
// a new tag opens inside previously clean text. With no in-flight tag the
// buffer passes through unchanged.
func Process(buffer string) Result {
	metrics.StreamChunksTotal.Inc()

	tag, start := xmlcall.DetectStreamingTag(buffer)
	if start < 0 {
		return Result{CleanContent: buffer}
	}

	metrics.StreamToolTagsDetectedTotal.Inc()

	toolName := tag
	if tag == "function_calls" {
		toolName = xmlcall.ExtractToolNameFromStream(buffer)
	}

	return Result{
		CleanContent:      buffer[:start],
		CurrentToolName:   toolName,
		ShouldHideContent: true,
		IsStreamingTool:   true,
	}
}
