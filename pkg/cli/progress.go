package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mercator-hq/chatifier/pkg/detect"
)

// ProgressReporter reports progress for long-running operations.
type ProgressReporter interface {
	Start(total int64)
	Update(current int64)
	Finish()
	Error(err error)
}

// SimpleProgress implements a simple text-based progress reporter.
type SimpleProgress struct {
	mu      sync.Mutex
	total   int64
	current int64
	label   string
	started time.Time
	writer  io.Writer
}

// NewProgressReporter creates a new progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &SimpleProgress{
		writer: w,
	}
}

// Start initializes the progress reporter with the total number of items.
func (p *SimpleProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.started = time.Now()

	p.render()
}

// Update updates the current progress.
func (p *SimpleProgress) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if current > p.total {
		current = p.total
	}
	p.current = current
	p.render()
}

// SetLabel sets the text shown after the bar.
func (p *SimpleProgress) SetLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.label = label
}

// Finish marks the progress as complete.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = p.total
	p.label = ""
	p.render()
	fmt.Fprintln(p.writer)
}

// Error reports an error during progress.
func (p *SimpleProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "\n✗ Error: %v\n", err)
}

func (p *SimpleProgress) render() {
	if p.total == 0 {
		return
	}

	percent := float64(p.current) / float64(p.total) * 100
	barWidth := 30
	filled := int(float64(barWidth) * percent / 100)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	rate := 0.0
	if elapsed := time.Since(p.started).Seconds(); elapsed > 0 {
		rate = float64(p.current) / elapsed
	}

	// \033[K clears what a longer previous label left behind
	fmt.Fprintf(p.writer, "\rProbing: [%s] %d/%d %.1f probes/s %s\033[K",
		bar, p.current, p.total, rate, p.label)
}

// MaxProbes is the most probes a detection run over ports can send: two
// schemes per port, every signature path per scheme.
func MaxProbes(ports int) int64 {
	paths := 0
	for _, s := range detect.Signatures() {
		paths += len(s.Paths)
	}
	return int64(ports * 2 * paths)
}

// DetectionProgress adapts a ProgressReporter to detect.WithProgress. It
// may be called concurrently.
func DetectionProgress(p ProgressReporter) detect.ProgressFunc {
	var count atomic.Int64
	return func(a detect.Attempt) {
		n := count.Add(1)
		if sp, ok := p.(*SimpleProgress); ok {
			sp.SetLabel(a.BaseURL + a.Path)
		}
		p.Update(n)
	}
}
