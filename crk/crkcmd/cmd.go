// Package crkcmd implements the command drivers on top of the crk package:
// applying/reverting/reporting a patch set against a working directory, and
// generating a patch set from two files or directory trees.
package crkcmd

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/fatih/color"

	"github.com/pinpt/crk/crk"
	"github.com/pinpt/crk/crk/pkg/logger"
)

// Mode selects what Run does to each patch target.
type Mode int

const (
	// ModeStatus only reports whether each patch is applied.
	ModeStatus Mode = iota
	// ModePatch applies each patch.
	ModePatch
	// ModeUnpatch reverts each patch.
	ModeUnpatch
)

// Opts configures Run.
type Opts struct {
	// CrkPath is the crk document to process.
	CrkPath string
	// WD is the directory the patch filenames are relative to.
	WD   string
	Mode Mode
	// Ask prompts before each apply/revert. Ignored in ModeStatus.
	Ask bool
	// Logger receives diagnostics. Defaults to logging to stderr.
	Logger logger.Logger
}

type status string

const (
	statusNoFile    status = "NO FILE"
	statusInvalid   status = "INVALID"
	statusPatched   status = "PATCHED"
	statusUnpatched status = "UNPATCHED"
	statusSkipped   status = "SKIPPED"
)

func (s status) colored() string {
	switch s {
	case statusPatched:
		return color.GreenString(center(string(s), 9))
	case statusInvalid, statusNoFile:
		return color.RedString(center(string(s), 9))
	default:
		return color.YellowString(center(string(s), 9))
	}
}

// Run processes every patch in a crk document against the files under
// opts.WD, printing one status line per patch. A patch that cannot be
// processed (missing file, unrecognized byte state) gets a failure status but
// does not abort the rest of the batch.
func Run(ctx context.Context, out io.Writer, in io.Reader, opts Opts) error {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(os.Stderr)
	}

	c, warnings, err := crk.FromPath(opts.CrkPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn(w.Subject, "detail", w.Msg)
	}

	// pad filenames to the widest one so titles line up
	var nameWidth int
	for _, p := range c.Patches {
		if l := len(p.Filename); l > nameWidth {
			nameWidth = l
		}
	}

	prompts := bufio.NewReader(in)
	fmt.Fprintf(out, "%s\n\n", c.Title)
	for _, p := range c.Patches {
		if err := ctx.Err(); err != nil {
			return err
		}
		st, err := runPatch(p, out, prompts, opts, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%s] [%-*s] %s\n", st.colored(), nameWidth, p.Filename, p.Title)
	}
	return nil
}

func runPatch(p *crk.Patch, out io.Writer, prompts *bufio.Reader, opts Opts, log logger.Logger) (status, error) {
	path := filepath.Join(opts.WD, p.Filename)
	stat, err := os.Stat(path)
	if err != nil || !stat.Mode().IsRegular() {
		return statusNoFile, nil
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return "", fmt.Errorf("error opening %v: %v", path, err)
	}
	defer f.Close()

	if !p.Valid(f) {
		return statusInvalid, nil
	}

	applied := p.Applied(f)
	current := statusUnpatched
	if applied {
		current = statusPatched
	}

	// already in the requested state, or just reporting
	if opts.Mode == ModeStatus || applied == (opts.Mode == ModePatch) {
		return current, nil
	}

	if opts.Ask && !confirm(out, prompts, opts.Mode, p.Title) {
		return statusSkipped, nil
	}

	if !p.Apply(f, opts.Mode == ModeUnpatch) {
		return statusInvalid, nil
	}
	if sum, err := fingerprint(f); err == nil {
		log.Debug("file modified", "file", path, "xxhash", sum)
	}
	if opts.Mode == ModePatch {
		return statusPatched, nil
	}
	return statusUnpatched, nil
}

func confirm(out io.Writer, prompts *bufio.Reader, mode Mode, title string) bool {
	verb := "Apply"
	if mode == ModeUnpatch {
		verb = "Remove"
	}
	fmt.Fprintf(out, "%s '%s'? [y/N]: ", verb, title)
	line, err := prompts.ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

// fingerprint returns the xxhash64 of the file's full content, leaving the
// offset wherever it ends up.
func fingerprint(f io.ReadSeeker) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func center(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	}
	return s
}
