package annotate

import (
	"image"
	"image/color"

	"foresight/internal/models"
)

// Measurer reads liquid metrics for a box of the current frame.
type Measurer interface {
	Measure(box image.Rectangle) (models.LiquidMetrics, bool)
}

// Annotation is one labelled box ready to draw.
type Annotation struct {
	Box      image.Rectangle
	Text     string
	Color    color.RGBA
	Patch    bool
	PatchHue float64
}

// Planner turns detections into annotations according to a settings snapshot.
// One planner serves one run so that debounce state never leaks between runs.
type Planner struct {
	settings  models.Settings
	debouncer *Debouncer
}

func NewPlanner(settings models.Settings) *Planner {
	p := &Planner{settings: settings}
	if settings.Debounce {
		p.debouncer = NewDebouncer(settings.DebounceWindow)
	}
	return p
}

func (p *Planner) Settings() models.Settings {
	return p.settings
}

// Plan filters hidden classes, measures liquids and builds label text for one frame.
func (p *Planner) Plan(detections []models.Detection, m Measurer) []Annotation {
	if p.debouncer != nil {
		p.debouncer.NextFrame()
	}

	annotations := make([]Annotation, 0, len(detections))
	for _, d := range detections {
		if !p.settings.LabelVisible(d.Label) {
			continue
		}

		a := Annotation{Box: d.Box, Text: d.Text(), Color: ContentColor}
		if d.IsVessel() {
			a.Color = VesselColor
		}

		if p.settings.AdvancedOverlay && d.IsLiquid() && m != nil {
			if metrics, ok := m.Measure(d.Box); ok {
				if suffix := FormatReadings(p.readings(d, metrics)); suffix != "" {
					a.Text += " | " + suffix
				}
				if p.settings.ColorPatch {
					a.Patch = true
					a.PatchHue = metrics.Hue
				}
			}
		}

		annotations = append(annotations, a)
	}
	return annotations
}

func (p *Planner) readings(d models.Detection, metrics models.LiquidMetrics) Readings {
	readings := make(Readings, 3)
	for _, metric := range models.AllMetrics() {
		v := metrics.Value(metric)
		readings[metric] = Reading{
			Value: v,
			Shown: p.settings.AdvancedOverlay && p.settings.MetricVisible(metric) && v >= p.settings.MinimumFor(metric),
		}
	}
	if p.debouncer != nil {
		readings = p.debouncer.Observe(d.Label, d.Box, readings)
	}
	return readings
}

// Lines returns the annotation texts in draw order, for the top-left summary.
func Lines(annotations []Annotation) []string {
	lines := make([]string, len(annotations))
	for i, a := range annotations {
		lines[i] = a.Text
	}
	return lines
}
