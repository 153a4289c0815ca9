// Package parser composes the normalizer, classifier, XML extractor, and
// tool-result decoder into the single projection the rendering layer
// consumes: one ParsedMessage per raw message, plus assistant/tool-result
// grouping over an ordered thread.
package parser

import (
	"strings"

	"chat-transcript/classify"
	"chat-transcript/config"
	"chat-transcript/logger"
	"chat-transcript/metrics"
	"chat-transcript/normalize"
	"chat-transcript/toolresult"
	"chat-transcript/types"
	"chat-transcript/xmlcall"
)

// Parser holds the injected collaborators. All parsing methods are pure
// functions of their message inputs; the logger and audit trail are the only
// side channels and both default to inert implementations.
type Parser struct {
	cfg        *config.Config
	log        logger.Logger
	obs        *logger.ObservabilityLogger
	transcript *logger.TranscriptLogger
	registry   types.ToolRegistry
}

// New creates a Parser. A nil cfg falls back to defaults and a nil log to
// the no-op logger.
func New(cfg *config.Config, log logger.Logger) *Parser {
	if cfg == nil {
		cfg = config.GetDefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Parser{
		cfg:      cfg,
		log:      log,
		registry: types.DefaultToolRegistry(),
	}
}

// WithObservability attaches a structured JSONL logger for classification
// and extraction events.
func (p *Parser) WithObservability(obs *logger.ObservabilityLogger) *Parser {
	p.obs = obs
	return p
}

// WithTranscriptLogger attaches a per-message parse audit trail.
func (p *Parser) WithTranscriptLogger(tl *logger.TranscriptLogger) *Parser {
	p.transcript = tl
	return p
}

// WithRegistry replaces the tool registry consulted for display metadata.
func (p *Parser) WithRegistry(registry types.ToolRegistry) *Parser {
	if registry != nil {
		p.registry = registry
	}
	return p
}

// defaultParser backs the package-level convenience functions.
var defaultParser = New(nil, nil)

// ParseMessage projects one raw message into its renderable form using the
// default parser.
func ParseMessage(msg types.Message) types.ParsedMessage {
	return defaultParser.ParseMessage(msg)
}

// ParseMessages projects an ordered message list using the default parser.
func ParseMessages(msgs []types.Message) []types.ParsedMessage {
	return defaultParser.ParseMessages(msgs)
}

// ParseMessage turns a raw message into the structure the rendering layer
// consumes. It never fails: malformed payloads degrade to empty fields per
// the normalizer's fallback contract.
func (p *Parser) ParseMessage(msg types.Message) types.ParsedMessage {
	meta := normalize.ParseMessageMetadata(msg)
	content := normalize.ParseMessageContent(msg)

	isToolResult, reason := classify.Classify(msg, meta, content)

	// Tool-result messages never show raw prose.
	display := ""
	if !isToolResult {
		display = normalize.ExtractContentText(msg)
	}

	toolCalls := xmlcall.ParseToolCalls(display)

	var toolResults []types.ParsedToolResult
	if result := toolresult.ParseToolResult(msg.Content); result != nil {
		toolResults = append(toolResults, *result)
	}
	if result := toolresult.ParseToolResult(msg.Metadata); result != nil {
		toolResults = append(toolResults, *result)
	}

	clean := display
	for _, call := range toolCalls {
		// RawXML is the exact matched span, so removal never leaves partial
		// tag fragments behind.
		clean = strings.Replace(clean, call.RawXML, "", 1)
	}
	clean = xmlcall.StripWrappers(clean)

	hasTools := len(toolCalls) > 0 || len(toolResults) > 0
	parsed := types.ParsedMessage{
		Original:            msg,
		CleanContent:        clean,
		ToolCalls:           toolCalls,
		ToolResults:         toolResults,
		HasTools:            hasTools,
		IsToolOnly:          hasTools && strings.TrimSpace(clean) == "",
		Metadata:            meta,
		Content:             content,
		IsToolResultMessage: isToolResult,
	}

	p.record(parsed, reason)
	return parsed
}

// ParseMessages projects an ordered message list, preserving order.
func (p *Parser) ParseMessages(msgs []types.Message) []types.ParsedMessage {
	parsed := make([]types.ParsedMessage, 0, len(msgs))
	for _, msg := range msgs {
		parsed = append(parsed, p.ParseMessage(msg))
	}
	return parsed
}

// record updates metrics and the optional audit channels.
func (p *Parser) record(parsed types.ParsedMessage, reason classify.Reason) {
	classification := metrics.ClassificationProse
	if parsed.IsToolResultMessage {
		classification = metrics.ClassificationToolResult
	}
	metrics.MessagesParsedTotal.WithLabelValues(classification).Inc()
	if len(parsed.ToolCalls) > 0 {
		metrics.ToolCallsExtractedTotal.Add(float64(len(parsed.ToolCalls)))
	}

	p.log.Debug("parsed message %s: tool_result=%v calls=%d results=%d clean_len=%d",
		parsed.Original.MessageID, parsed.IsToolResultMessage,
		len(parsed.ToolCalls), len(parsed.ToolResults), len(parsed.CleanContent))

	if p.obs != nil {
		p.obs.ClassificationDecision(parsed.Metadata.ThreadRunID, parsed.Original.MessageID,
			string(reason), parsed.IsToolResultMessage)
		if parsed.HasTools {
			p.obs.ExtractionEvent(parsed.Metadata.ThreadRunID, parsed.Original.MessageID,
				len(parsed.ToolCalls), len(parsed.ToolResults))
		}
	}
	p.transcript.Record(parsed, string(reason))
}
