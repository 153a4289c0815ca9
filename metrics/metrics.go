// Package metrics exposes Prometheus counters for the transcript parsing
// pipeline. The embedding application decides whether and where to serve
// them; parsing code only increments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesParsedTotal counts full-parse passes by classification outcome.
	MessagesParsedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chat_transcript",
		Name:      "messages_parsed_total",
		Help:      "Messages run through the full parser, by classification.",
	}, []string{"classification"})

	// ToolCallsExtractedTotal counts XML tool calls recovered from display text.
	ToolCallsExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chat_transcript",
		Name:      "tool_calls_extracted_total",
		Help:      "Inline XML tool calls extracted from message content.",
	})

	// ToolResultsDecodedTotal counts decoded tool results by schema variant.
	ToolResultsDecodedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chat_transcript",
		Name:      "tool_results_decoded_total",
		Help:      "Tool results decoded, by wire schema variant.",
	}, []string{"schema"})

	// MalformedPayloadsTotal counts malformed backend payloads absorbed as
	// fallback values instead of propagating as errors.
	MalformedPayloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chat_transcript",
		Name:      "malformed_payloads_total",
		Help:      "Malformed JSON payloads absorbed by the normalizer.",
	})

	// StreamChunksTotal counts streaming buffer passes.
	StreamChunksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chat_transcript",
		Name:      "stream_chunks_total",
		Help:      "Streaming content buffers processed.",
	})

	// StreamToolTagsDetectedTotal counts in-flight tool tags spotted mid-stream.
	StreamToolTagsDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chat_transcript",
		Name:      "stream_tool_tags_detected_total",
		Help:      "Unclosed tool tags detected in streaming buffers.",
	})
)

// Classification label values for MessagesParsedTotal.
const (
	ClassificationProse      = "prose"
	ClassificationToolResult = "tool_result"
)
