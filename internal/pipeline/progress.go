package pipeline

import (
	"fmt"
	"io"
	"strings"
)

const barLength = 50

// Bar renders "[###---] current/total" with a fixed 50-cell bar.
func Bar(current, total int) string {
	if total <= 0 {
		return ""
	}
	current = min(max(current, 0), total)
	filled := barLength * current / total
	return fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("#", filled), strings.Repeat("-", barLength-filled), current, total)
}

// ProgressPrinter redraws a single progress line on w.
type ProgressPrinter struct {
	w     io.Writer
	label string
	done  bool
}

func NewProgressPrinter(w io.Writer, label string) *ProgressPrinter {
	return &ProgressPrinter{w: w, label: label}
}

func (p *ProgressPrinter) Update(current, total int) {
	if p == nil || p.w == nil || total <= 0 || p.done {
		return
	}
	fmt.Fprintf(p.w, "\r%s: %s", p.label, Bar(current, total))
	if current >= total {
		p.Finish()
	}
}

// Finish ends the progress line once.
func (p *ProgressPrinter) Finish() {
	if p == nil || p.w == nil || p.done {
		return
	}
	p.done = true
	fmt.Fprintln(p.w)
}
