package transform

import "strings"

// NormalizeText collapses JSX text the way JSX whitespace rules require:
// tabs become spaces, whitespace-only lines disappear, every line is
// trimmed on the sides that touch a line break and the survivors are
// joined by single spaces.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\t", " ")
	lines := strings.Split(text, "\n")

	var sb strings.Builder
	last := len(lines) - 1
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if i > 0 {
			line = strings.TrimLeft(line, " ")
		}
		if i < last {
			line = strings.TrimRight(line, " ")
		}
		if line == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
	}
	return sb.String()
}
