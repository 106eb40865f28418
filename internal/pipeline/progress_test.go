package pipeline

import (
	"bytes"
	"strings"
	"testing"
)

func TestBar(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		filled         int
		suffix         string
	}{
		{"start", 0, 10, 0, "] 0/10"},
		{"half", 5, 10, 25, "] 5/10"},
		{"done", 10, 10, 50, "] 10/10"},
		{"overflow clamps", 12, 10, 50, "] 10/10"},
		{"rounds down", 1, 3, 16, "] 1/3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bar(tt.current, tt.total)
			if n := strings.Count(got, "#"); n != tt.filled {
				t.Errorf("Bar(%d, %d) has %d filled cells, want %d", tt.current, tt.total, n, tt.filled)
			}
			if n := strings.Count(got, "#") + strings.Count(got, "-"); n != barLength {
				t.Errorf("Bar(%d, %d) has %d cells, want %d", tt.current, tt.total, n, barLength)
			}
			if !strings.HasSuffix(got, tt.suffix) {
				t.Errorf("Bar(%d, %d) = %q, want suffix %q", tt.current, tt.total, got, tt.suffix)
			}
		})
	}

	if Bar(1, 0) != "" {
		t.Error("unknown total should render nothing")
	}
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressPrinter(&buf, "Processing video frames")

	p.Update(1, 2)
	p.Update(2, 2)
	p.Update(3, 2)
	p.Finish()

	out := buf.String()
	if strings.Count(out, "\r") != 2 {
		t.Errorf("expected 2 redraws, got %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single trailing newline, got %q", out)
	}
	if !strings.Contains(out, "Processing video frames: [") {
		t.Errorf("missing label in %q", out)
	}

	var nilPrinter *ProgressPrinter
	nilPrinter.Update(1, 1)
}
