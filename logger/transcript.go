package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chat-transcript/types"
)

// TranscriptLogger writes a per-message parse audit trail to a session file:
// what each raw message was classified as and what was extracted from it.
// Useful when debugging why a live thread renders the way it does.
type TranscriptLogger struct {
	sessionID string
	logFile   *os.File
	mu        sync.Mutex
	enabled   bool
	logLevel  Level
}

// TranscriptConfig holds configuration for transcript audit logging
type TranscriptConfig struct {
	Enabled  bool
	LogLevel Level
	LogDir   string
}

// transcriptEntry is one audit line, JSON-encoded.
type transcriptEntry struct {
	Timestamp    string `json:"timestamp"`
	SessionID    string `json:"session_id"`
	MessageID    string `json:"message_id"`
	Type         string `json:"type"`
	IsToolResult bool   `json:"is_tool_result"`
	Reason       string `json:"reason,omitempty"`
	CleanLength  int    `json:"clean_length"`
	ToolCalls    int    `json:"tool_calls"`
	ToolResults  int    `json:"tool_results"`
}

// NewTranscriptLogger creates a transcript audit logger writing under logDir.
// A disabled config yields an inert logger, not an error.
func NewTranscriptLogger(config TranscriptConfig) (*TranscriptLogger, error) {
	if !config.Enabled {
		return &TranscriptLogger{enabled: false}, nil
	}

	if err := os.MkdirAll(config.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	sessionID := fmt.Sprintf("session_%d", time.Now().UnixNano()%100000)
	filename := fmt.Sprintf("transcript-%s-%s.jsonl", sessionID, time.Now().Format("20060102-150405"))
	logFile, err := os.OpenFile(filepath.Join(config.LogDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript log file: %v", err)
	}

	return &TranscriptLogger{
		sessionID: sessionID,
		logFile:   logFile,
		enabled:   true,
		logLevel:  config.LogLevel,
	}, nil
}

// GetSessionID returns the session ID
func (tl *TranscriptLogger) GetSessionID() string {
	return tl.sessionID
}

// Record writes one audit line for a parsed message.
func (tl *TranscriptLogger) Record(parsed types.ParsedMessage, reason string) {
	if tl == nil || !tl.enabled {
		return
	}

	entry := transcriptEntry{
		Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
		SessionID:    tl.sessionID,
		MessageID:    parsed.Original.MessageID,
		Type:         string(parsed.Original.Type),
		IsToolResult: parsed.IsToolResultMessage,
		Reason:       reason,
		CleanLength:  len(parsed.CleanContent),
		ToolCalls:    len(parsed.ToolCalls),
		ToolResults:  len(parsed.ToolResults),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.logFile.Write(append(line, '\n'))
}

// Close closes the underlying file.
func (tl *TranscriptLogger) Close() error {
	if tl == nil || tl.logFile == nil {
		return nil
	}
	return tl.logFile.Close()
}
