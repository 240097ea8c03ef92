package manifest

import "strings"

// Indent prefixes every line of text with the given number of spaces.
// Lines split on "\n", "\r\n" or "\r"; a trailing line break does not
// produce an extra line. Empty text yields the bare prefix so a block
// scalar is never left without content.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)

	lines := splitLines(text)
	if len(lines) == 0 {
		return prefix
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n")
}
