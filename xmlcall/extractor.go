// Package xmlcall recognizes the legacy inline XML tool-call markup the
// assistant historically emitted in plain text, e.g.
// <execute-command session_name="s1">ls -la</execute-command> or an
// Anthropic-style <function_calls> wrapper with <invoke> entries. It extracts
// structured calls without corrupting the surrounding prose and detects
// in-flight tags while content is still streaming.
package xmlcall

import (
	"regexp"
	"sort"
	"strings"

	"chat-transcript/types"
)

var (
	// Precompiled at init time, reused for all messages. Go's RE2 engine has
	// no backreferences, so closing tags are located by literal search after
	// an opening-tag match.
	reOpenTag            = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9_-]*)((?:\s+[a-zA-Z_][a-zA-Z0-9_-]*="[^"]*")*)\s*(/?)>`)
	reAttr               = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_-]*)="([^"]*)"`)
	reFunctionCallsBlock = regexp.MustCompile(`(?s)<function_calls>(.*?)</function_calls>`)
	reInvokeBlock        = regexp.MustCompile(`(?s)<invoke\s+name="([^"]+)"[^>]*>(.*?)</invoke>`)
	reParamTag           = regexp.MustCompile(`(?s)<parameter\s+name="([^"]+)"[^>]*>(.*?)</parameter>`)
	rePartialOpenTag     = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9_-]*)[^>]*$`)
	reInvokeName         = regexp.MustCompile(`<invoke\s+name="([^"]+)"`)
)

// structuralTags are markup plumbing, never tool names in their own right.
var structuralTags = map[string]bool{
	"function_calls": true,
	"function_call":  true,
	"invoke":         true,
	"parameter":      true,
	"param":          true,
}

// isPlausibleToolName filters bare tags down to ones that look like agent
// tool identifiers, so prose containing incidental markup like <b> is left
// alone. Known registry tools always qualify; otherwise the snake/kebab
// naming convention is required.
func isPlausibleToolName(name string) bool {
	if structuralTags[name] {
		return false
	}
	if _, known := types.DefaultToolRegistry().GetTool(name); known {
		return true
	}
	return strings.ContainsAny(name, "-_")
}

// ParseToolCalls extracts every tool call found in text, in source order.
// Both <function_calls> wrappers and bare tool tags are recognized. A tag
// that fails to parse is skipped, never fatal.
func ParseToolCalls(text string) []types.ParsedToolCall {
	if text == "" || !strings.Contains(text, "<") {
		return nil
	}

	type located struct {
		call  types.ParsedToolCall
		start int
	}
	var found []located

	// Wrapper blocks first, so the bare-tag scan can skip their spans.
	wrapperSpans := reFunctionCallsBlock.FindAllStringSubmatchIndex(text, -1)
	for _, span := range wrapperSpans {
		inner := text[span[2]:span[3]]
		innerOffset := span[2]

		invokes := reInvokeBlock.FindAllStringSubmatchIndex(inner, -1)
		if len(invokes) > 0 {
			for _, inv := range invokes {
				name := inner[inv[2]:inv[3]]
				body := inner[inv[4]:inv[5]]
				found = append(found, located{
					call: types.ParsedToolCall{
						FunctionName: name,
						Parameters:   parseParameterTags(body),
						RawXML:       inner[inv[0]:inv[1]],
					},
					start: innerOffset + inv[0],
				})
			}
			continue
		}

		// Legacy wrappers sometimes hold bare tool tags directly.
		for _, loc := range scanBareTags(inner) {
			loc.start += innerOffset
			found = append(found, located{call: loc.call, start: loc.start})
		}
	}

	// Bare tags outside any wrapper.
	for _, loc := range scanBareTags(text) {
		if insideAnySpan(loc.start, wrapperSpans) {
			continue
		}
		found = append(found, located{call: loc.call, start: loc.start})
	}

	if len(found) == 0 {
		return nil
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	calls := make([]types.ParsedToolCall, 0, len(found))
	for _, f := range found {
		calls = append(calls, f.call)
	}
	return calls
}

type bareTag struct {
	call  types.ParsedToolCall
	start int
}

// scanBareTags walks the text left to right looking for complete tool tag
// islands. The cursor jumps past each captured island so markup nested in a
// tag body is not re-matched.
func scanBareTags(text string) []bareTag {
	var tags []bareTag
	cursor := 0

	for _, m := range reOpenTag.FindAllStringSubmatchIndex(text, -1) {
		if m[0] < cursor {
			continue
		}

		name := text[m[2]:m[3]]
		if !isPlausibleToolName(name) {
			continue
		}

		attrText := text[m[4]:m[5]]
		selfClosing := m[6] != m[7] // the "/" group matched

		if selfClosing {
			tags = append(tags, bareTag{
				call: types.ParsedToolCall{
					FunctionName: name,
					Parameters:   parseAttributes(attrText),
					RawXML:       text[m[0]:m[1]],
				},
				start: m[0],
			})
			cursor = m[1]
			continue
		}

		closing := "</" + name + ">"
		rel := strings.Index(text[m[1]:], closing)
		if rel < 0 {
			// Unclosed tag: not a complete call, leave the text alone.
			continue
		}
		bodyEnd := m[1] + rel
		rawEnd := bodyEnd + len(closing)

		params := parseAttributes(attrText)
		for key, value := range parseParameterTags(text[m[1]:bodyEnd]) {
			params[key] = value
		}

		tags = append(tags, bareTag{
			call: types.ParsedToolCall{
				FunctionName: name,
				Parameters:   params,
				RawXML:       text[m[0]:rawEnd],
			},
			start: m[0],
		})
		cursor = rawEnd
	}

	return tags
}

// parseAttributes turns `a="1" b="2"` into a parameter map.
func parseAttributes(attrText string) map[string]any {
	params := make(map[string]any)
	for _, m := range reAttr.FindAllStringSubmatch(attrText, -1) {
		params[m[1]] = m[2]
	}
	return params
}

// parseParameterTags collects <parameter name="x">value</parameter> entries.
func parseParameterTags(body string) map[string]any {
	params := make(map[string]any)
	for _, m := range reParamTag.FindAllStringSubmatch(body, -1) {
		params[m[1]] = strings.TrimSpace(m[2])
	}
	return params
}

func insideAnySpan(pos int, spans [][]int) bool {
	for _, span := range spans {
		if pos >= span[0] && pos < span[1] {
			return true
		}
	}
	return false
}

// StripWrappers removes every <function_calls> block from text. Used by the
// orchestrator after individual RawXML spans are removed.
func StripWrappers(text string) string {
	return reFunctionCallsBlock.ReplaceAllString(text, "")
}
