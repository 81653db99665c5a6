// Package crk implements the crk byte-patch format: a text document that
// records sparse single-byte modifications between an original and a patched
// version of one or more files. The package covers the data model, the text
// grammar, and the diff engine that produces patch sets from pairs of files
// or directory trees.
package crk

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Crk is a titled, ordered collection of Patches, one per target file.
type Crk struct {
	Title   string
	Patches []*Patch
}

// FromLines parses a crk document. The first section is the title; every
// following section is a patch. A section that fails to parse as a patch is
// dropped and reported as a Warning rather than failing the whole document,
// so the returned Crk may hold fewer patches than the document has sections.
// A document with no title section at all is a *FormatError.
func FromLines(lines []string) (*Crk, []Warning, error) {
	secs := sections(lines)
	if len(secs) == 0 {
		return nil, nil, &FormatError{Msg: "invalid crk", Text: strings.Join(lines, "\n")}
	}
	c := &Crk{Title: strings.Join(stripComments(secs[0]), "\n")}
	var warnings []Warning
	for _, sec := range secs[1:] {
		p, err := parsePatch(sec)
		if err != nil {
			warnings = append(warnings, Warning{
				Subject: "ignoring invalid patch",
				Msg:     strings.Join(sec, "\n"),
			})
			continue
		}
		c.Patches = append(c.Patches, p)
	}
	return c, warnings, nil
}

// FromReader parses a crk document from r.
func FromReader(r io.Reader) (*Crk, []Warning, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return FromLines(lines)
}

// FromPath parses the crk document at path.
func FromPath(path string) (*Crk, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return FromReader(f)
}

// Serialize returns the whole patch set as a crk document.
func (c *Crk) Serialize() string {
	parts := make([]string, 0, len(c.Patches)+1)
	parts = append(parts, commentContinued(c.Title))
	for _, p := range c.Patches {
		parts = append(parts, p.Serialize())
	}
	return strings.Join(parts, "\n\n")
}
