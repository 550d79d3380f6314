package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// fileProgress reports per-file progress of a concatenation on a progress bar.
type fileProgress struct {
	bar *progressbar.ProgressBar
}

// newFileProgress creates a progress bar for total files. A nil *fileProgress is
// valid and reports nothing.
func newFileProgress(w io.Writer, total int, description string) *fileProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
	return &fileProgress{bar: bar}
}

func (p *fileProgress) OnFile() {
	if p == nil {
		return
	}
	p.bar.Add(1)
}

func (p *fileProgress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}
