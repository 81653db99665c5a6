package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// TestTree is a temporary directory populated with files for a test.
type TestTree struct {
	Dir string
}

func (s TestTree) Remove() {
	if err := os.RemoveAll(s.Dir); err != nil {
		panic(err)
	}
}

// Path returns the absolute location of a file in the tree.
func (s TestTree) Path(rel string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}

// ReadFile returns the current content of a file in the tree.
func (s TestTree) ReadFile(rel string) []byte {
	data, err := ioutil.ReadFile(s.Path(rel))
	if err != nil {
		panic(err)
	}
	return data
}

// WriteTree creates a temp directory holding the given files. Keys are
// slash-separated paths relative to the tree root; intermediate directories
// are created as needed.
func WriteTree(files map[string][]byte) TestTree {
	dir, err := ioutil.TempDir("", "crk-test-")
	if err != nil {
		panic(err)
	}
	res := TestTree{Dir: dir}
	for rel, data := range files {
		p := res.Path(rel)
		if err := os.MkdirAll(filepath.Dir(p), 0777); err != nil {
			panic(err)
		}
		if err := ioutil.WriteFile(p, data, 0666); err != nil {
			panic(err)
		}
	}
	return res
}

// WriteFile creates a single temp file with the given content and returns its
// location along with a cleanup function.
func WriteFile(data []byte) (string, func()) {
	f, err := ioutil.TempFile("", "crk-test-")
	if err != nil {
		panic(err)
	}
	if _, err := f.Write(data); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	return f.Name(), func() {
		os.Remove(f.Name())
	}
}
