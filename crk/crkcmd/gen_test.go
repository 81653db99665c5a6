package crkcmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinpt/crk/crk"
	"github.com/pinpt/crk/crk/pkg/logger"
	"github.com/pinpt/crk/crk/pkg/testutil"
)

func TestRunGenFiles(t *testing.T) {
	assert := assert.New(t)
	tree := testutil.WriteTree(map[string][]byte{
		"old/game.exe": {0x01, 0x02, 0x03},
		"new/game.exe": {0x01, 0xFF, 0x03},
	})
	defer tree.Remove()

	var out bytes.Buffer
	err := RunGen(context.Background(), &out, GenOpts{
		Original: tree.Path("old/game.exe"),
		Patched:  tree.Path("new/game.exe"),
		Logger:   logger.Discard,
	})
	assert.NoError(err)

	c, warnings, err := crk.FromReader(&out)
	assert.NoError(err)
	assert.Empty(warnings)
	assert.Equal("Patch for game.exe", c.Title)
	if assert.Len(c.Patches, 1) {
		assert.Equal([]crk.Change{{Offset: 1, Orig: 0x02, Patch: 0xFF}}, c.Patches[0].Changes)
	}
}

func TestRunGenDirsToFile(t *testing.T) {
	assert := assert.New(t)
	tree := testutil.WriteTree(map[string][]byte{
		"old/a.bin": {0x01, 0x02},
		"new/a.bin": {0x01, 0xF2},
	})
	defer tree.Remove()

	var out bytes.Buffer
	err := RunGen(context.Background(), &out, GenOpts{
		Original: tree.Path("old"),
		Patched:  tree.Path("new"),
		Output:   tree.Path("out.crk"),
		Logger:   logger.Discard,
	})
	assert.NoError(err)
	assert.Empty(out.String())

	c, _, err := crk.FromPath(tree.Path("out.crk"))
	assert.NoError(err)
	assert.Equal("Patch for 1 files in `old`", c.Title)
}

func TestRunGenMixedInputs(t *testing.T) {
	assert := assert.New(t)
	tree := testutil.WriteTree(map[string][]byte{
		"dir/a": {0x01},
		"file":  {0x01},
	})
	defer tree.Remove()

	for _, test := range [][2]string{
		{"file", "dir"},
		{"dir", "file"},
	} {
		var out bytes.Buffer
		err := RunGen(context.Background(), &out, GenOpts{
			Original: tree.Path(test[0]),
			Patched:  tree.Path(test[1]),
			Logger:   logger.Discard,
		})
		if assert.Error(err) {
			_, ok := err.(*crk.TypeMismatchError)
			assert.True(ok)
		}
	}
}

func TestRunGenIdenticalFiles(t *testing.T) {
	assert := assert.New(t)
	tree := testutil.WriteTree(map[string][]byte{
		"old/a": {0x01},
		"new/a": {0x01},
	})
	defer tree.Remove()

	var out bytes.Buffer
	err := RunGen(context.Background(), &out, GenOpts{
		Original: tree.Path("old/a"),
		Patched:  tree.Path("new/a"),
		Logger:   logger.Discard,
	})
	assert.Equal(crk.ErrNoChanges, err)
	assert.False(strings.Contains(out.String(), "Patch"))
}
