package xmlcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStreamingTag(t *testing.T) {
	tests := []struct {
		name      string
		partial   string
		wantTag   string
		wantStart int
	}{
		{
			name:      "empty buffer",
			partial:   "",
			wantTag:   "",
			wantStart: -1,
		},
		{
			name:      "plain prose",
			partial:   "Running the build now",
			wantTag:   "",
			wantStart: -1,
		},
		{
			name:      "opening tag still arriving",
			partial:   "Running <execute",
			wantTag:   "execute",
			wantStart: 8,
		},
		{
			name:      "opened but unclosed tool tag",
			partial:   `Running <execute-command session_name="s1">ls -la`,
			wantTag:   "execute-command",
			wantStart: 8,
		},
		{
			name:      "closed tag is complete, nothing in flight",
			partial:   `Done <execute-command>ls</execute-command> output follows`,
			wantTag:   "",
			wantStart: -1,
		},
		{
			name:      "new tag opening after a closed one",
			partial:   `<web-search query="x">q</web-search> and now <create`,
			wantTag:   "create",
			wantStart: 45,
		},
		{
			name:      "unclosed function_calls wrapper",
			partial:   "<function_calls>\n<invoke name=\"create-file\">",
			wantTag:   "function_calls",
			wantStart: 0,
		},
		{
			name:      "bare angle bracket is not yet a tag",
			partial:   "Running <",
			wantTag:   "",
			wantStart: -1,
		},
		{
			name:      "incidental markup does not trip detection",
			partial:   "use <b>bold</b> everywhere",
			wantTag:   "",
			wantStart: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, start := DetectStreamingTag(tt.partial)
			assert.Equal(t, tt.wantTag, tag)
			assert.Equal(t, tt.wantStart, start)
		})
	}
}

func TestExtractToolNameFromStream(t *testing.T) {
	tests := []struct {
		name    string
		partial string
		want    string
	}{
		{
			name:    "no tag in flight",
			partial: "just text",
			want:    "",
		},
		{
			name:    "bare tag name so far",
			partial: "Running <execute-comm",
			want:    "execute-comm",
		},
		{
			name:    "wrapper with invoke name visible",
			partial: `<function_calls><invoke name="web-search">`,
			want:    "web-search",
		},
		{
			name:    "wrapper before any invoke arrives",
			partial: "<function_calls>\n",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractToolNameFromStream(tt.partial))
		})
	}
}

func TestFormatToolNameForDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"registered kebab tool", "execute-command", "Execute Command"},
		{"registered with curated label", "str-replace", "Edit File"},
		{"unknown kebab tool", "fetch-weather", "Fetch Weather"},
		{"unknown snake tool", "fetch_weather_data", "Fetch Weather Data"},
		{"single word", "deploy", "Deploy"},
		{"empty name", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatToolNameForDisplay(tt.in))
		})
	}
}
