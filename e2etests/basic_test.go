package e2etests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestBasicRoundTrip(t *testing.T) {
	out := NewTest(t,
		map[string][]byte{
			"game.exe": {0x01, 0x02, 0x03, 0x04},
		},
		map[string][]byte{
			"game.exe": {0x01, 0xF2, 0x03, 0xF4},
		},
	).Run()
	assert.Contains(t, out, "[ PATCHED ] [game.exe] Patch 2 bytes in game.exe")
}

func TestMultipleFilesWithSubdirs(t *testing.T) {
	out := NewTest(t,
		map[string][]byte{
			"a.bin":       bytes.Repeat([]byte{0x00}, 5000),
			"sub/b.bin":   {0x10, 0x20, 0x30},
			"sub/c.bin":   {0x42, 0x42},
			"unchanged":   {0x07},
			"deeper/d/e":  {0xAA, 0xBB},
			"deeper/d/f":  {0x00},
			"another.dat": {0x01, 0x02, 0x03},
		},
		map[string][]byte{
			"a.bin":       flip(bytes.Repeat([]byte{0x00}, 5000), 10, 4500, 4999),
			"sub/b.bin":   {0x10, 0xFF, 0x30},
			"sub/c.bin":   {0x42, 0x43},
			"unchanged":   {0x07},
			"deeper/d/e":  {0xAA, 0xCC},
			"deeper/d/f":  {0x00},
			"another.dat": {0x01, 0x02, 0x03},
		},
	).Run()
	// unchanged files get no patch at all
	assert.NotContains(t, out, "unchanged")
	assert.NotContains(t, out, "deeper/d/f")
	assert.Equal(t, 4, strings.Count(out, "PATCHED"))
}

func TestExtraFilesAreSkipped(t *testing.T) {
	out := NewTest(t,
		map[string][]byte{
			"common.bin": {0x01, 0x02},
			"only-old":   {0x00},
		},
		map[string][]byte{
			"common.bin": {0x01, 0xF2},
			"only-new":   {0x00},
		},
	).Run()
	assert.Contains(t, out, "common.bin")
	assert.NotContains(t, out, "only-old")
	assert.NotContains(t, out, "only-new")
}

// flip returns a copy of data with the bytes at the given offsets replaced by
// their complement.
func flip(data []byte, offsets ...int) []byte {
	out := append([]byte(nil), data...)
	for _, o := range offsets {
		out[o] = ^out[o]
	}
	return out
}
