package crk

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
)

var changeRE = regexp.MustCompile(`(?i)^\s*([0-9a-f]+)\s*:\s*([0-9a-f]{2})\s+([0-9a-f]{2})\s*$`)

// Change is a single byte substitution at a fixed file offset. It knows both
// the original and the patched value so it can be applied in either direction.
type Change struct {
	Offset uint64
	Orig   byte
	Patch  byte
}

// ParseChange parses a change line of the form "<hex-offset>: <hex-byte> <hex-byte>".
func ParseChange(line string) (Change, error) {
	m := changeRE.FindStringSubmatch(line)
	if m == nil {
		return Change{}, &FormatError{Msg: "not a valid change", Text: line}
	}
	offset, err := strconv.ParseUint(m[1], 16, 64)
	if err != nil {
		return Change{}, &FormatError{Msg: "offset out of range", Text: line}
	}
	orig, _ := strconv.ParseUint(m[2], 16, 8)
	patch, _ := strconv.ParseUint(m[3], 16, 8)
	return Change{Offset: offset, Orig: byte(orig), Patch: byte(patch)}, nil
}

func (c Change) readAt(r io.ReadSeeker) (byte, bool) {
	if _, err := r.Seek(int64(c.Offset), io.SeekStart); err != nil {
		return 0, false
	}
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, false
	}
	return buf[0], true
}

// Valid reports whether the byte at Offset is in one of the two recognized
// states, i.e. equals either Orig or Patch.
func (c Change) Valid(r io.ReadSeeker) bool {
	b, ok := c.readAt(r)
	return ok && (b == c.Orig || b == c.Patch)
}

// Applied reports whether the byte at Offset equals Patch.
func (c Change) Applied(r io.ReadSeeker) bool {
	b, ok := c.readAt(r)
	return ok && b == c.Patch
}

// Apply writes Patch (or Orig when unpatch is set) at Offset. It reports
// whether exactly one byte was written.
func (c Change) Apply(w io.WriteSeeker, unpatch bool) bool {
	if _, err := w.Seek(int64(c.Offset), io.SeekStart); err != nil {
		return false
	}
	b := c.Patch
	if unpatch {
		b = c.Orig
	}
	n, err := w.Write([]byte{b})
	return err == nil && n == 1
}

// Serialize returns the change as it appears in a crk document.
func (c Change) Serialize() string {
	return fmt.Sprintf("%08X: %02X %02X", c.Offset, c.Orig, c.Patch)
}

func (c Change) String() string {
	return fmt.Sprintf("Change(offset=%08X, orig=%02X, patch=%02X)", c.Offset, c.Orig, c.Patch)
}
