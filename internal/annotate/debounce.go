package annotate

import (
	"image"

	"foresight/internal/models"
)

// MatchIoU is the overlap at which a box is considered the same liquid as
// one seen on a previous frame.
const MatchIoU = 0.3

// Reading is one metric value and whether it passed toggle and threshold gating.
type Reading struct {
	Value float64
	Shown bool
}

type Readings map[models.Metric]Reading

type sample struct {
	value   float64
	present bool
}

type track struct {
	label    string
	box      image.Rectangle
	lastSeen int
	history  map[models.Metric][]sample
}

// Debouncer smooths liquid metrics over a rolling window of frames.
// A metric stays visible while at least one frame in the window produced
// it and displays the mean of those values.
type Debouncer struct {
	window int
	frame  int
	tracks []*track
}

func NewDebouncer(window int) *Debouncer {
	if window < 1 {
		window = 1
	}
	return &Debouncer{window: window}
}

// NextFrame advances the frame clock and forgets tracks that have not been
// observed for a full window.
func (d *Debouncer) NextFrame() {
	d.frame++
	kept := d.tracks[:0]
	for _, t := range d.tracks {
		if d.frame-t.lastSeen <= d.window {
			kept = append(kept, t)
		}
	}
	d.tracks = kept
}

// Observe records this frame's readings for the liquid at box and returns
// the debounced readings to display.
func (d *Debouncer) Observe(label string, box image.Rectangle, readings Readings) Readings {
	t := d.match(label, box)
	if t == nil {
		t = &track{label: label, history: make(map[models.Metric][]sample)}
		d.tracks = append(d.tracks, t)
	} else if gap := min(d.frame-t.lastSeen-1, d.window); gap > 0 {
		// Frames where the liquid went undetected count as absent readings.
		for m, h := range t.history {
			t.history[m] = append(h, make([]sample, gap)...)
		}
	}
	t.box = box
	t.lastSeen = d.frame

	out := make(Readings, len(models.AllMetrics()))
	for _, m := range models.AllMetrics() {
		r := readings[m]
		h := append(t.history[m], sample{value: r.Value, present: r.Shown})
		if len(h) > d.window {
			h = h[len(h)-d.window:]
		}
		t.history[m] = h
		out[m] = smooth(h)
	}
	return out
}

func (d *Debouncer) match(label string, box image.Rectangle) *track {
	var best *track
	bestIoU := MatchIoU
	for _, t := range d.tracks {
		if t.label != label || t.lastSeen == d.frame {
			continue
		}
		if iou := IoU(t.box, box); iou >= bestIoU {
			best, bestIoU = t, iou
		}
	}
	return best
}

func smooth(history []sample) Reading {
	var sum float64
	var n int
	for _, s := range history {
		if s.present {
			sum += s.value
			n++
		}
	}
	if n == 0 {
		return Reading{}
	}
	return Reading{Value: sum / float64(n), Shown: true}
}

// IoU is the intersection over union of two rectangles.
func IoU(a, b image.Rectangle) float64 {
	inter := a.Intersect(b)
	if inter.Empty() {
		return 0
	}
	ia := area(inter)
	union := area(a) + area(b) - ia
	if union <= 0 {
		return 0
	}
	return float64(ia) / float64(union)
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
