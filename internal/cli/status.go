package cli

import (
	"io"

	"github.com/fatih/color"

	"github.com/mvp-joe/loppers/internal/concat"
)

// statusPrinter writes per-file status lines to stderr.
type statusPrinter struct {
	w       io.Writer
	ok      *color.Color
	info    *color.Color
	warn    *color.Color
	verbose bool
}

func newStatusPrinter(w io.Writer, verbose bool) *statusPrinter {
	return &statusPrinter{
		w:       w,
		ok:      color.New(color.FgGreen),
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		verbose: verbose,
	}
}

// File reports one concatenated file. Failures are always shown; the rest only
// when verbose.
func (p *statusPrinter) File(f concat.File) {
	switch f.Status {
	case concat.StatusFailed:
		p.warn.Fprintf(p.w, "⚠ Could not extract skeleton from %s: %v\n", f.Path, f.Err)
	case concat.StatusExtracted:
		if p.verbose {
			p.ok.Fprintf(p.w, "✓ Extracted skeleton from %s\n", f.Path)
		}
	case concat.StatusUnsupported:
		if p.verbose {
			p.info.Fprintf(p.w, "ℹ No skeleton extraction for %s, including as-is\n", f.Path)
		}
	case concat.StatusIncluded:
		if p.verbose {
			p.info.Fprintf(p.w, "ℹ Included %s\n", f.Path)
		}
	}
}

// Wrote reports an output file.
func (p *statusPrinter) Wrote(path string, n int) {
	p.ok.Fprintf(p.w, "✓ Wrote %d bytes to %s\n", n, path)
}

// Warn reports a non-fatal problem.
func (p *statusPrinter) Warn(format string, args ...interface{}) {
	p.warn.Fprintf(p.w, "⚠ "+format+"\n", args...)
}
