package logger

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ObservabilityLogger provides structured JSONL logging using logrus, for
// ingestion by whatever log pipeline the embedding app ships to.
type ObservabilityLogger struct {
	logger *logrus.Logger
	file   *os.File
}

// Component constants for consistent labeling
const (
	ComponentNormalizer   = "normalizer"
	ComponentXMLExtractor = "xml_extractor"
	ComponentToolResult   = "tool_result_parser"
	ComponentClassifier   = "classifier"
	ComponentParser       = "message_parser"
	ComponentStream       = "stream_processor"
)

// Category constants for log classification
const (
	CategoryParse          = "parse"
	CategoryClassification = "classification"
	CategoryExtraction     = "extraction"
	CategoryFallback       = "fallback"
	CategoryStream         = "stream"
	CategoryError          = "error"
)

// NewObservabilityLogger creates a structured JSONL logger under logDir.
func NewObservabilityLogger(logDir string) (*ObservabilityLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, "chat-transcript.jsonl")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetLevel(logrus.InfoLevel)

	return &ObservabilityLogger{
		logger: logger,
		file:   file,
	}, nil
}

// Close closes the log file
func (o *ObservabilityLogger) Close() error {
	if o.file != nil {
		return o.file.Close()
	}
	return nil
}

// createEntry creates a logrus entry with standard fields
func (o *ObservabilityLogger) createEntry(component, category, threadID string, fields map[string]interface{}) *logrus.Entry {
	entry := o.logger.WithFields(logrus.Fields{
		"service":   "chat-transcript",
		"component": component,
		"category":  category,
	})

	if threadID != "" {
		entry = entry.WithField("thread_id", threadID)
	}

	if fields != nil {
		entry = entry.WithFields(fields)
	}

	return entry
}

// Debug logs a debug message
func (o *ObservabilityLogger) Debug(component, category, threadID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, threadID, fields).Debug(message)
}

// Info logs an info message
func (o *ObservabilityLogger) Info(component, category, threadID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, threadID, fields).Info(message)
}

// Warn logs a warning message
func (o *ObservabilityLogger) Warn(component, category, threadID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, threadID, fields).Warn(message)
}

// Error logs an error message
func (o *ObservabilityLogger) Error(component, category, threadID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, threadID, fields).Error(message)
}

// ClassificationDecision logs which classifier rule fired for a message.
func (o *ObservabilityLogger) ClassificationDecision(threadID, messageID, reason string, isToolResult bool) {
	o.Info(ComponentClassifier, CategoryClassification, threadID, "Message classified", map[string]interface{}{
		"message_id":     messageID,
		"reason":         reason,
		"is_tool_result": isToolResult,
	})
}

// ExtractionEvent logs tool-call extraction from a message's display text.
func (o *ObservabilityLogger) ExtractionEvent(threadID, messageID string, toolCalls, toolResults int) {
	o.Info(ComponentXMLExtractor, CategoryExtraction, threadID, "Tool markup extracted", map[string]interface{}{
		"message_id":   messageID,
		"tool_calls":   toolCalls,
		"tool_results": toolResults,
	})
}
