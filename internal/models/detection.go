package models

import (
	"fmt"
	"image"
	"strings"
)

type Stage int

const (
	StageVessel Stage = iota
	StageContents
)

func (s Stage) String() string {
	if s == StageVessel {
		return "vessel"
	}
	return "contents"
}

// Detection is one box returned by the detector, in frame coordinates.
type Detection struct {
	Label      string
	Confidence float64
	Box        image.Rectangle
	Stage      Stage
	Parent     int // index of the enclosing vessel for contents detections, -1 otherwise
}

// IsLiquid reports whether the detection is a liquid phase that gets T/C/V metrics.
func (d Detection) IsLiquid() bool {
	lower := strings.ToLower(d.Label)
	return strings.HasPrefix(lower, "homo") || strings.HasPrefix(lower, "hetero")
}

func (d Detection) IsVessel() bool {
	return strings.Contains(strings.ToLower(d.Label), "vessel")
}

func (d Detection) Text() string {
	return fmt.Sprintf("%s %.2f", d.Label, d.Confidence)
}

// ClipBox normalizes r and clips it to bounds.
func ClipBox(r, bounds image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(bounds)
}

// LiquidMetrics holds the measurements taken inside a liquid box.
type LiquidMetrics struct {
	Turbidity float64 // mean HSV value channel, 0-255
	Hue       float64 // mean HSV hue channel, 0-180
	Volume    float64 // box height over frame height, 0-1
}

func (m LiquidMetrics) Value(metric Metric) float64 {
	switch metric {
	case MetricTurbidity:
		return m.Turbidity
	case MetricColor:
		return m.Hue
	case MetricVolume:
		return m.Volume
	}
	return 0
}
