// Package config carries the small amount of configuration the parsing core
// honors: logging behavior and display-name overrides for tool-call chips.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the parsing core configuration - all settings from .env
// plus the optional tool_display.yaml override file.
type Config struct {
	// Logging settings
	MinLogLevel         string `json:"min_log_level"`         // DEBUG, INFO, WARN, ERROR
	TruncateLogPayloads bool   `json:"truncate_log_payloads"` // Trim message content echoed into logs

	// Transcript audit logging settings
	TranscriptLoggingEnabled bool   `json:"transcript_logging_enabled"` // Write per-message parse audit lines
	TranscriptLogDir         string `json:"transcript_log_dir"`         // Directory for audit files

	// Tool display-name overrides (loaded from tool_display.yaml)
	ToolDisplayOverrides map[string]string `json:"tool_display_overrides"`
}

// GetDefaultConfig returns a default configuration for tests and embedding
// apps that skip env loading.
func GetDefaultConfig() *Config {
	return &Config{
		MinLogLevel:              "INFO",
		TruncateLogPayloads:      true,
		TranscriptLoggingEnabled: false,
		TranscriptLogDir:         "logs",
		ToolDisplayOverrides:     make(map[string]string),
	}
}

// LoadConfigWithEnv loads configuration from an optional .env file, process
// environment, and the optional tool_display.yaml override file.
func LoadConfigWithEnv() (*Config, error) {
	cfg := GetDefaultConfig()

	envVars, err := loadEnvFile()
	if err != nil {
		// .env is optional for a library; process env still applies.
		envVars = map[string]string{}
	}
	lookup := func(key string) (string, bool) {
		if v, exists := envVars[key]; exists {
			return v, true
		}
		v := os.Getenv(key)
		return v, v != ""
	}

	if level, ok := lookup("PARSER_LOG_LEVEL"); ok {
		cfg.MinLogLevel = strings.ToUpper(level)
	}
	if v, ok := lookup("PARSER_TRUNCATE_LOG_PAYLOADS"); ok {
		cfg.TruncateLogPayloads = v != "false" && v != "0"
	}
	if v, ok := lookup("TRANSCRIPT_LOGGING_ENABLED"); ok {
		cfg.TranscriptLoggingEnabled = v == "true" || v == "1"
	}
	if dir, ok := lookup("TRANSCRIPT_LOG_DIR"); ok {
		cfg.TranscriptLogDir = dir
	}

	overrides, err := LoadToolDisplayOverrides()
	if err != nil {
		return nil, err
	}
	cfg.ToolDisplayOverrides = overrides

	return cfg, nil
}

// loadEnvFile reads KEY=VALUE pairs from .env in the working directory.
func loadEnvFile() (map[string]string, error) {
	file, err := os.Open(".env")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	envVars := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		envVars[key] = value
	}
	return envVars, scanner.Err()
}

// toolDisplayYAML is the schema of tool_display.yaml.
type toolDisplayYAML struct {
	DisplayNames map[string]string `yaml:"display_names"`
}

// LoadToolDisplayOverrides loads tool display-name overrides from
// tool_display.yaml. Returns an empty map if the file doesn't exist (no
// error).
func LoadToolDisplayOverrides() (map[string]string, error) {
	file, err := os.Open("tool_display.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to open tool_display.yaml: %v", err)
	}
	defer file.Close()

	var yamlData toolDisplayYAML
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse tool_display.yaml: %v", err)
	}

	if yamlData.DisplayNames == nil {
		yamlData.DisplayNames = make(map[string]string)
	}
	return yamlData.DisplayNames, nil
}

// GetToolDisplayName returns the override label if available, otherwise the
// provided fallback.
func GetToolDisplayName(overrides map[string]string, toolName, fallback string) string {
	if override, exists := overrides[toolName]; exists {
		return override
	}
	return fallback
}
