package crk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

// readBuffer is the chunk size used when comparing files. It has no effect on
// the results, only on how much is held in memory at once.
const readBuffer = 4 * 1024

// DiffFiles compares two files byte-for-byte and returns one Change per
// differing offset. It returns a *SizeMismatchError if the files differ in
// length and ErrNoChanges if they are identical.
func DiffFiles(original, patched string) ([]Change, error) {
	f1, err := os.Open(original)
	if err != nil {
		return nil, err
	}
	defer f1.Close()
	f2, err := os.Open(patched)
	if err != nil {
		return nil, err
	}
	defer f2.Close()

	var changes []Change
	var offset uint64
	buf1 := make([]byte, readBuffer)
	buf2 := make([]byte, readBuffer)
	for {
		n1, err1 := io.ReadFull(f1, buf1)
		n2, err2 := io.ReadFull(f2, buf2)
		if err1 != nil && err1 != io.EOF && err1 != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("error reading %v: %v", original, err1)
		}
		if err2 != nil && err2 != io.EOF && err2 != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("error reading %v: %v", patched, err2)
		}

		// Both streams are read in lockstep, so the first short chunk
		// exposes any difference in total length.
		if n1 != n2 {
			return nil, &SizeMismatchError{Original: original, Patched: patched}
		}
		if n1 == 0 {
			break
		}

		for i := 0; i < n1; i++ {
			if buf1[i] != buf2[i] {
				changes = append(changes, Change{
					Offset: offset + uint64(i),
					Orig:   buf1[i],
					Patch:  buf2[i],
				})
			}
		}
		offset += uint64(n1)
	}

	if len(changes) == 0 {
		return nil, ErrNoChanges
	}
	return changes, nil
}

// FileCrk builds a single-patch Crk from the differences between two regular
// files.
func FileCrk(original, patched string) (*Crk, error) {
	for _, path := range []string{original, patched} {
		stat, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !stat.Mode().IsRegular() {
			return nil, &TypeMismatchError{Path: path, Want: "file"}
		}
	}

	changes, err := DiffFiles(original, patched)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(patched)
	return &Crk{
		Title: fmt.Sprintf("Patch for %s", name),
		Patches: []*Patch{{
			Title:    fmt.Sprintf("Patch %d bytes in %s", len(changes), name),
			Filename: name,
			Changes:  changes,
		}},
	}, nil
}

// DirCrk builds a Crk from the differences between two directory trees. Files
// present in only one tree are skipped with a Warning, as are common files
// whose sizes differ. Identical files are skipped silently. It returns
// ErrNoCommonFiles if the trees share no relative paths, and ErrNoChanges if
// every common file is identical.
func DirCrk(originalDir, patchedDir string) (*Crk, []Warning, error) {
	for _, path := range []string{originalDir, patchedDir} {
		stat, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}
		if !stat.IsDir() {
			return nil, nil, &TypeMismatchError{Path: path, Want: "directory"}
		}
	}

	original, err := walkFiles(originalDir)
	if err != nil {
		return nil, nil, err
	}
	patched, err := walkFiles(patchedDir)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if extra := symmetricDiff(original, patched); len(extra) > 0 {
		warnings = append(warnings, Warning{
			Subject: "ignoring files not common to both directories",
			Msg:     strings.Join(extra, ", "),
		})
	}

	var common []string
	for path := range original {
		if patched[path] {
			common = append(common, path)
		}
	}
	if len(common) == 0 {
		return nil, warnings, ErrNoCommonFiles
	}
	// deterministic patch order
	sort.Strings(common)

	var patches []*Patch
	for _, path := range common {
		changes, err := DiffFiles(
			filepath.Join(originalDir, path),
			filepath.Join(patchedDir, path),
		)
		if err == ErrNoChanges {
			continue
		}
		if _, ok := err.(*SizeMismatchError); ok {
			warnings = append(warnings, Warning{Subject: "skipping " + path, Msg: err.Error()})
			continue
		}
		if err != nil {
			return nil, warnings, err
		}
		patches = append(patches, &Patch{
			Title:    fmt.Sprintf("Patch %d bytes in %s", len(changes), filepath.Base(path)),
			Filename: path,
			Changes:  changes,
		})
	}

	if len(patches) == 0 {
		return nil, warnings, ErrNoChanges
	}
	return &Crk{
		Title:   fmt.Sprintf("Patch for %d files in `%s`", len(patches), filepath.Base(filepath.Clean(originalDir))),
		Patches: patches,
	}, warnings, nil
}

// walkFiles returns the set of regular-file paths under dir, relative to dir.
func walkFiles(dir string) (map[string]bool, error) {
	files := make(map[string]bool)
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(dir, osPathname)
			if err != nil {
				return err
			}
			files[rel] = true
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %v: %v", dir, err)
	}
	return files, nil
}

// symmetricDiff returns the sorted paths present in exactly one of the sets.
func symmetricDiff(a, b map[string]bool) []string {
	var out []string
	for path := range a {
		if !b[path] {
			out = append(out, path)
		}
	}
	for path := range b {
		if !a[path] {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}
