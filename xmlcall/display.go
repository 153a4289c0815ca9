package xmlcall

import (
	"strings"

	"chat-transcript/types"
)

// FormatToolNameForDisplay maps an internal snake/kebab tool identifier to a
// human label, e.g. "execute-command" becomes "Execute Command". Registered
// tools use their curated display name; unknown names are title-cased per
// word. Pure, no side effects.
func FormatToolNameForDisplay(name string) string {
	if name == "" {
		return ""
	}
	if info, ok := types.DefaultToolRegistry().GetTool(name); ok && info.DisplayName != "" {
		return info.DisplayName
	}
	return titleCaseIdentifier(name)
}

func titleCaseIdentifier(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
