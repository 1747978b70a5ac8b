package tui

import (
	"fmt"
	"sort"
	"strings"
)

// renderSettingsTree renders the nested server settings snapshot the
// endpoint returns alongside the authentication record. The tree is
// read-only: it is displayed for reference and never sent back.
func renderSettingsTree(settings map[string]any) string {
	if len(settings) == 0 {
		return CommentStyle.Render("No server settings loaded. Press ctrl+r to reload.")
	}

	var b strings.Builder
	writeTree(&b, settings, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, node map[string]any, depth int) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	indent := strings.Repeat("  ", depth)
	for _, k := range keys {
		switch v := node[k].(type) {
		case map[string]any:
			b.WriteString(indent + SectionStyle.Render(k) + "\n")
			writeTree(b, v, depth+1)
		case []any:
			b.WriteString(indent + LabelStyle.Render(k) + renderTreeList(v) + "\n")
		default:
			b.WriteString(indent + LabelStyle.Render(k) + renderTreeValue(v) + "\n")
		}
	}
}

func renderTreeList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%v", it))
	}
	return NormalStyle.Render("[" + strings.Join(parts, ", ") + "]")
}

func renderTreeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return CommentStyle.Render("~")
	case bool:
		if t {
			return SuccessStyle.Render("true")
		}
		return CommentStyle.Render("false")
	case float64:
		if t == float64(int64(t)) {
			return NormalStyle.Render(fmt.Sprintf("%d", int64(t)))
		}
		return NormalStyle.Render(fmt.Sprintf("%g", t))
	default:
		return NormalStyle.Render(fmt.Sprintf("%v", t))
	}
}
