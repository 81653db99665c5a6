package crk

import (
	"io"
	"strings"
)

// Patch is a named, ordered group of Changes scoped to one target file.
// Filename is relative to a working directory chosen at apply time.
type Patch struct {
	Title    string
	Filename string
	Changes  []Change
}

// Valid reports whether every change recognizes the file's current state.
func (p *Patch) Valid(r io.ReadSeeker) bool {
	for _, c := range p.Changes {
		if !c.Valid(r) {
			return false
		}
	}
	return true
}

// Applied reports whether every change has been applied to the file.
func (p *Patch) Applied(r io.ReadSeeker) bool {
	for _, c := range p.Changes {
		if !c.Applied(r) {
			return false
		}
	}
	return true
}

// Apply applies every change in order. Each change is attempted even if an
// earlier one failed; the result is true only if all of them succeeded.
func (p *Patch) Apply(w io.WriteSeeker, unpatch bool) bool {
	applied := true
	for _, c := range p.Changes {
		applied = c.Apply(w, unpatch) && applied
	}
	return applied
}

// parsePatch parses one document section: title, filename, then one change
// per line, comments stripped.
func parsePatch(lines []string) (*Patch, error) {
	invalid := func() error {
		return &FormatError{Msg: "invalid patch", Text: strings.Join(lines, "\n")}
	}
	stripped := stripComments(lines)
	if len(stripped) < 3 {
		// title + filename + at least one change
		return nil, invalid()
	}
	p := &Patch{Title: stripped[0], Filename: stripped[1]}
	for _, line := range stripped[2:] {
		c, err := ParseChange(line)
		if err != nil {
			return nil, invalid()
		}
		p.Changes = append(p.Changes, c)
	}
	return p, nil
}

// Serialize returns the patch as a crk document section. Title continuation
// lines and the underline are emitted as comments so they survive reparsing.
func (p *Patch) Serialize() string {
	var buf strings.Builder
	buf.WriteString(commentContinued(p.Title))
	buf.WriteString("\n")
	buf.WriteString(p.Filename)
	buf.WriteString("\n;")
	if n := len(p.Title) - 1; n > 0 {
		buf.WriteString(strings.Repeat("-", n))
	}
	for _, c := range p.Changes {
		buf.WriteString("\n")
		buf.WriteString(c.Serialize())
	}
	return buf.String()
}

// commentContinued joins a multi-line string so every line after the first is
// a comment.
func commentContinued(s string) string {
	return strings.Join(strings.Split(s, "\n"), "\n;")
}
