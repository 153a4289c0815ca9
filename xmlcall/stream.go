package xmlcall

import "strings"

// DetectStreamingTag reports whether an in-progress tool tag has started in a
// partial content buffer but not yet closed. It returns the tag name seen so
// far and the byte offset where the open tag begins, so the caller can
// truncate display text at that point. Returns ("", -1) when no open tag is
// present.
func DetectStreamingTag(partial string) (string, int) {
	if partial == "" || !strings.Contains(partial, "<") {
		return "", -1
	}

	cursor := 0
	for _, m := range reOpenTag.FindAllStringSubmatchIndex(partial, -1) {
		if m[0] < cursor {
			continue
		}
		name := partial[m[2]:m[3]]

		if name == "function_calls" {
			rel := strings.Index(partial[m[1]:], "</function_calls>")
			if rel < 0 {
				return name, m[0]
			}
			cursor = m[1] + rel + len("</function_calls>")
			continue
		}

		if !isPlausibleToolName(name) {
			continue
		}
		if m[6] != m[7] { // self-closing: complete, skip past
			cursor = m[1]
			continue
		}

		closing := "</" + name + ">"
		rel := strings.Index(partial[m[1]:], closing)
		if rel < 0 {
			return name, m[0]
		}
		cursor = m[1] + rel + len(closing)
	}

	// An opening tag may itself still be arriving: "<exec" with no ">" yet.
	if m := rePartialOpenTag.FindStringSubmatchIndex(partial); m != nil && m[0] >= cursor {
		return partial[m[2]:m[3]], m[0]
	}

	return "", -1
}

// ExtractToolNameFromStream makes a best-effort guess at the tool name inside
// a partially streamed tag, used for a "running: toolname" indicator before
// the call completes. Returns "" when nothing usable has arrived.
func ExtractToolNameFromStream(partial string) string {
	tag, start := DetectStreamingTag(partial)
	if start < 0 {
		return ""
	}
	if tag == "function_calls" {
		if m := reInvokeName.FindStringSubmatch(partial[start:]); m != nil {
			return m[1]
		}
		return ""
	}
	return tag
}
