package expand

import (
	"strings"
)

// splice replaces each invocation in src with the text at the same index.
// Lines after the first are indented like the line the invocation starts on.
func splice(src string, invs []Invocation, texts []string) string {
	var b strings.Builder

	b.Grow(len(src))

	pos := 0
	for i, inv := range invs {
		b.WriteString(src[pos:inv.Start])
		b.WriteString(reindent(texts[i], lineIndent(src, inv.Start)))
		pos = inv.End
	}

	b.WriteString(src[pos:])

	return b.String()
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(src string, offset int) string {
	start := strings.LastIndexByte(src[:offset], '\n') + 1

	end := start
	for end < offset && (src[end] == ' ' || src[end] == '\t') {
		end++
	}

	return src[start:end]
}

// reindent prefixes every line but the first with indent. Blank lines stay
// empty.
func reindent(text, indent string) string {
	if indent == "" || !strings.Contains(text, "\n") {
		return text
	}

	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
