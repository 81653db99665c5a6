package crkcmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pinpt/crk/crk"
	"github.com/pinpt/crk/crk/pkg/logger"
)

// GenOpts configures RunGen.
type GenOpts struct {
	// Original and Patched are the two inputs to diff. Both must be files
	// or both must be directories.
	Original string
	Patched  string
	// Output is where the generated document is written. Empty means the
	// writer passed to RunGen.
	Output string
	// Logger receives diagnostics. Defaults to logging to stderr.
	Logger logger.Logger
}

// RunGen diffs the two inputs and writes the resulting crk document.
func RunGen(ctx context.Context, out io.Writer, opts GenOpts) error {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(os.Stderr)
	}

	stat, err := os.Stat(opts.Original)
	if err != nil {
		return err
	}

	var c *crk.Crk
	var warnings []crk.Warning
	if stat.IsDir() {
		c, warnings, err = crk.DirCrk(opts.Original, opts.Patched)
	} else {
		c, err = crk.FileCrk(opts.Original, opts.Patched)
	}
	for _, w := range warnings {
		log.Warn(w.Subject, "detail", w.Msg)
	}
	if err != nil {
		return err
	}

	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err = fmt.Fprintln(out, c.Serialize())
	return err
}
