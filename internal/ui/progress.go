// Package ui renders transfer progress and summaries on the console.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ConsoleProgress renders one transfer as a progress bar. It implements
// transfer.Progress.
type ConsoleProgress struct {
	operation string // "Sending" or "Receiving"
	bar       *progressbar.ProgressBar
}

// NewConsoleProgress creates a progress observer for one transfer.
func NewConsoleProgress(operation string) *ConsoleProgress {
	return &ConsoleProgress{operation: operation}
}

// Start initializes the bar once the file name and size are known.
func (p *ConsoleProgress) Start(name string, total uint64) {
	p.bar = progressbar.NewOptions64(int64(total),
		progressbar.OptionSetDescription(fmt.Sprintf("%s %s", p.operation, name)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}

// Update moves the bar to the cumulative byte count.
func (p *ConsoleProgress) Update(transferred, _ uint64) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Set64(int64(transferred))
}

// Done finishes the bar.
func (p *ConsoleProgress) Done() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(os.Stderr)
}
