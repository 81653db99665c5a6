package crk

import "strings"

// sections splits lines into blank-line-delimited groups. Lines are trimmed,
// runs of blank lines collapse into one separator, and leading blank lines are
// skipped. Blank-line detection happens on the raw trimmed line, before any
// comment stripping, so a comment-only line does not end a section.
func sections(lines []string) [][]string {
	var out [][]string
	var current []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if current != nil {
				out = append(out, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if current != nil {
		out = append(out, current)
	}
	return out
}

// stripComments removes everything from the first ';' to end of line and drops
// lines that become empty.
func stripComments(lines []string) []string {
	var out []string
	for _, line := range lines {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
