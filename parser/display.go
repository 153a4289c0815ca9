package parser

import (
	"fmt"

	"chat-transcript/config"
	"chat-transcript/types"
	"chat-transcript/xmlcall"
)

// ToolDisplayInfo is the projection a tool-call chip renders: a human
// readable tool name and the single most useful parameter value.
type ToolDisplayInfo struct {
	DisplayName  string `json:"display_name"`
	PrimaryParam string `json:"primary_param"`
}

// genericPrimaryParams is the fallback preference order when the registry
// has no entry for a tool: file path, command, query, URL, then free text.
var genericPrimaryParams = []string{"file_path", "command", "query", "url", "text"}

// GetToolDisplayInfo resolves chip display info using the default parser.
func GetToolDisplayInfo(call types.ParsedToolCall) ToolDisplayInfo {
	return defaultParser.GetToolDisplayInfo(call)
}

// GetToolDisplayInfo resolves the human label (config overrides win over the
// registry, which wins over generic title-casing) and the primary parameter
// for a tool call.
func (p *Parser) GetToolDisplayInfo(call types.ParsedToolCall) ToolDisplayInfo {
	displayName := xmlcall.FormatToolNameForDisplay(call.FunctionName)
	displayName = config.GetToolDisplayName(p.cfg.ToolDisplayOverrides, call.FunctionName, displayName)

	return ToolDisplayInfo{
		DisplayName:  displayName,
		PrimaryParam: p.resolvePrimaryParam(call),
	}
}

// resolvePrimaryParam picks the parameter to show on the chip: the tool's
// registered preference order first, then the generic order.
func (p *Parser) resolvePrimaryParam(call types.ParsedToolCall) string {
	if len(call.Parameters) == 0 {
		return ""
	}

	if info, ok := p.registry.GetTool(call.FunctionName); ok {
		for _, key := range info.PrimaryParams {
			if value, exists := call.Parameters[key]; exists {
				return stringifyParam(value)
			}
		}
	}

	for _, key := range genericPrimaryParams {
		if value, exists := call.Parameters[key]; exists {
			return stringifyParam(value)
		}
	}
	return ""
}

func stringifyParam(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
