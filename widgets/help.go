package widgets

import (
	"fmt"
	"strings"
)

// RenderKeyHelp lists bindings one per line under their section titles.
// Descriptions line up in a column sized to the longest key.
func RenderKeyHelp(sections []KeySection) string {
	width := 0
	for _, sec := range sections {
		for _, k := range sec.Keys {
			width = max(width, len(k.Key))
		}
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if sec.Title != "" {
			b.WriteString(sec.Title + ":")
		}
		for j, k := range sec.Keys {
			if j > 0 || sec.Title != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "  %-*s  %s", width, k.Key, k.Desc)
		}
	}
	return b.String()
}

// RenderKeyLine formats key bindings on a single line
func RenderKeyLine(keys []KeyBinding) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.Key + ":" + k.Desc
	}
	return strings.Join(parts, "  ")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
