package cli

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/mediaforge/mediaconv/pkg/convert"
)

// progressHooks renders a single batch-level progress bar. OnJobDone arrives
// from worker goroutines, so bar updates are serialized with a mutex.
type progressHooks struct {
	w   io.Writer
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newProgressHooks(w io.Writer) *progressHooks {
	return &progressHooks{w: w}
}

func (h *progressHooks) OnBatchStart(total int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(h.w),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (h *progressHooks) OnJobDone(convert.Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.bar != nil {
		_ = h.bar.Add(1)
	}
}
