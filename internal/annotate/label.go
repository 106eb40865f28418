package annotate

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"foresight/internal/models"
)

var (
	VesselColor  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ContentColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ListColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// FormatReadings renders the shown metrics as "T=xx.x, C=xx.x, V=x.xx".
func FormatReadings(r Readings) string {
	var parts []string
	if t := r[models.MetricTurbidity]; t.Shown {
		parts = append(parts, fmt.Sprintf("T=%.1f", t.Value))
	}
	if c := r[models.MetricColor]; c.Shown {
		parts = append(parts, fmt.Sprintf("C=%.1f", c.Value))
	}
	if v := r[models.MetricVolume]; v.Shown {
		parts = append(parts, fmt.Sprintf("V=%.2f", v.Value))
	}
	return strings.Join(parts, ", ")
}

// HueColor converts an OpenCV hue (0-180) into a fully saturated display color.
func HueColor(hue float64) color.RGBA {
	c := colorful.Hsv(clampHue(hue)*2, 1, 1).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clampHue(h float64) float64 {
	switch {
	case h < 0:
		return 0
	case h >= 180:
		return 179.999
	}
	return h
}
