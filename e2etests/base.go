package e2etests

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/karrick/godirwalk"

	"github.com/pinpt/crk/crk/crkcmd"
	"github.com/pinpt/crk/crk/pkg/logger"
	"github.com/pinpt/crk/crk/pkg/testutil"
)

// Test drives a full generate -> apply -> revert cycle: a crk document is
// generated from the original and patched trees, applied to a pristine copy
// of the original tree, checked against the patched tree, then reverted and
// checked against the original again.
type Test struct {
	t        *testing.T
	original map[string][]byte
	patched  map[string][]byte
}

func NewTest(t *testing.T, original, patched map[string][]byte) *Test {
	s := &Test{}
	s.t = t
	s.original = original
	s.patched = patched
	return s
}

// Run performs the cycle and returns the statuses printed while applying.
func (s *Test) Run() string {
	t := s.t

	files := map[string][]byte{}
	for rel, data := range s.original {
		files[filepath.Join("original", rel)] = data
		files[filepath.Join("work", rel)] = data
	}
	for rel, data := range s.patched {
		files[filepath.Join("patched", rel)] = data
	}
	tree := testutil.WriteTree(files)
	defer tree.Remove()

	ctx := context.Background()
	err := crkcmd.RunGen(ctx, io.Discard, crkcmd.GenOpts{
		Original: tree.Path("original"),
		Patched:  tree.Path("patched"),
		Output:   tree.Path("patch.crk"),
		Logger:   logger.Discard,
	})
	if err != nil {
		t.Fatal("generating crk returned error", err)
	}

	apply := func(mode crkcmd.Mode) string {
		var out bytes.Buffer
		err := crkcmd.Run(ctx, &out, strings.NewReader(""), crkcmd.Opts{
			CrkPath: tree.Path("patch.crk"),
			WD:      tree.Path("work"),
			Mode:    mode,
			Logger:  logger.Discard,
		})
		if err != nil {
			t.Fatal("applying crk returned error", err)
		}
		return out.String()
	}

	applied := apply(crkcmd.ModePatch)

	// every common file must now match the patched tree
	workHashes := hashTree(t, tree.Path("work"))
	patchedHashes := hashTree(t, tree.Path("patched"))
	for rel, sum := range workHashes {
		if want, ok := patchedHashes[rel]; ok && want != sum {
			t.Fatalf("file %v does not match the patched tree after apply", rel)
		}
	}

	// reverting must restore the original tree exactly
	apply(crkcmd.ModeUnpatch)
	originalHashes := hashTree(t, tree.Path("original"))
	workHashes = hashTree(t, tree.Path("work"))
	if len(workHashes) != len(originalHashes) {
		t.Fatalf("work tree has %v files, original has %v", len(workHashes), len(originalHashes))
	}
	for rel, sum := range originalHashes {
		if workHashes[rel] != sum {
			t.Fatalf("file %v does not match the original tree after revert", rel)
		}
	}

	return applied
}

// hashTree fingerprints every file under dir by relative path.
func hashTree(t *testing.T, dir string) map[string]uint64 {
	res := map[string]uint64{}
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(dir, osPathname)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(osPathname)
			if err != nil {
				return err
			}
			res[rel] = xxhash.Sum64(data)
			return nil
		},
	})
	if err != nil {
		t.Fatal("hashing tree returned error", err)
	}
	return res
}
