package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test body in a fresh temp directory so the optional
// .env and tool_display.yaml lookups see a controlled working directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "INFO", cfg.MinLogLevel)
	assert.True(t, cfg.TruncateLogPayloads)
	assert.False(t, cfg.TranscriptLoggingEnabled)
	assert.Equal(t, "logs", cfg.TranscriptLogDir)
	assert.NotNil(t, cfg.ToolDisplayOverrides)
	assert.Empty(t, cfg.ToolDisplayOverrides)
}

func TestLoadConfigWithEnvDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfigWithEnv()
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.MinLogLevel)
	assert.False(t, cfg.TranscriptLoggingEnabled)
	assert.Empty(t, cfg.ToolDisplayOverrides)
}

func TestLoadConfigWithEnvFile(t *testing.T) {
	dir := chdirTemp(t)

	envContent := `# parsing core settings
PARSER_LOG_LEVEL=debug
PARSER_TRUNCATE_LOG_PAYLOADS=false
TRANSCRIPT_LOGGING_ENABLED=true
TRANSCRIPT_LOG_DIR="audit"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envContent), 0644))

	cfg, err := LoadConfigWithEnv()
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.MinLogLevel)
	assert.False(t, cfg.TruncateLogPayloads)
	assert.True(t, cfg.TranscriptLoggingEnabled)
	assert.Equal(t, "audit", cfg.TranscriptLogDir)
}

func TestLoadToolDisplayOverrides(t *testing.T) {
	dir := chdirTemp(t)

	yamlContent := `display_names:
  execute-command: "Run Shell"
  web-search: "Search the Web"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool_display.yaml"), []byte(yamlContent), 0644))

	overrides, err := LoadToolDisplayOverrides()
	require.NoError(t, err)
	assert.Equal(t, "Run Shell", overrides["execute-command"])
	assert.Equal(t, "Search the Web", overrides["web-search"])
}

func TestLoadToolDisplayOverridesMissingFile(t *testing.T) {
	chdirTemp(t)

	overrides, err := LoadToolDisplayOverrides()
	require.NoError(t, err)
	assert.NotNil(t, overrides)
	assert.Empty(t, overrides)
}

func TestLoadToolDisplayOverridesMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool_display.yaml"), []byte("display_names: [not a map"), 0644))

	_, err := LoadToolDisplayOverrides()
	assert.Error(t, err)
}

func TestGetToolDisplayName(t *testing.T) {
	overrides := map[string]string{"execute-command": "Run Shell"}

	assert.Equal(t, "Run Shell", GetToolDisplayName(overrides, "execute-command", "Execute Command"))
	assert.Equal(t, "Web Search", GetToolDisplayName(overrides, "web-search", "Web Search"))
	assert.Equal(t, "Deploy", GetToolDisplayName(nil, "deploy", "Deploy"))
}
