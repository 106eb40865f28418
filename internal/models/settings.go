package models

import (
	"errors"
	"fmt"
	"strings"
)

// Class is one of the detector's object classes that can be hidden from the overlay.
type Class int

const (
	ClassVessel Class = iota
	ClassSolid
	ClassResidue
	ClassEmpty
	ClassHomo
	ClassHetero
	classCount
)

var classNames = [classCount]string{"Vessel", "Solid", "Residue", "Empty", "Homo", "Hetero"}

func (c Class) String() string {
	if c < 0 || c >= classCount {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

func Classes() []Class {
	classes := make([]Class, classCount)
	for i := range classes {
		classes[i] = Class(i)
	}
	return classes
}

// ClassOf matches a detector label against the known classes by
// case-insensitive substring, in declaration order.
func ClassOf(label string) (Class, bool) {
	lower := strings.ToLower(label)
	for i, name := range classNames {
		if strings.Contains(lower, strings.ToLower(name)) {
			return Class(i), true
		}
	}
	return 0, false
}

// Metric is one of the liquid measurements drawn next to a box.
type Metric int

const (
	MetricTurbidity Metric = iota
	MetricColor
	MetricVolume
	metricCount
)

var metricNames = [metricCount]string{"Turbidity", "Color", "Volume"}
var metricShort = [metricCount]string{"T", "C", "V"}

func (m Metric) String() string {
	if m < 0 || m >= metricCount {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// Short is the single-letter tag used in overlay text.
func (m Metric) Short() string {
	if m < 0 || m >= metricCount {
		return "?"
	}
	return metricShort[m]
}

func AllMetrics() []Metric {
	return []Metric{MetricTurbidity, MetricColor, MetricVolume}
}

var ErrOutOfRange = errors.New("value out of range")

const (
	DefaultFontScale      = 0.6
	MinFontScale          = 0.1
	MaxFontScale          = 5.0
	DefaultDebounceWindow = 3
	MinDebounceWindow     = 1
	MaxDebounceWindow     = 30
	DefaultConfidence     = 0.4
)

// Thresholds gate which metrics are displayed and which detections are kept.
type Thresholds struct {
	Turbidity  float64 // 0-255
	Color      float64 // 0-180
	Volume     float64 // 0-1
	Confidence float64 // 0-1
}

func DefaultThresholds() Thresholds {
	return Thresholds{Turbidity: 50, Color: 20, Volume: 0.1, Confidence: DefaultConfidence}
}

// Range is an inclusive numeric bound.
type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	TurbidityRange  = Range{0, 255}
	ColorRange      = Range{0, 180}
	VolumeRange     = Range{0, 1}
	ConfidenceRange = Range{0, 1}
)

func (t Thresholds) Validate() error {
	checks := []struct {
		name  string
		value float64
		r     Range
	}{
		{"turbidity", t.Turbidity, TurbidityRange},
		{"color", t.Color, ColorRange},
		{"volume", t.Volume, VolumeRange},
		{"confidence", t.Confidence, ConfidenceRange},
	}
	for _, c := range checks {
		if !c.r.Contains(c.value) {
			return fmt.Errorf("%s %.3g not in [%g, %g]: %w", c.name, c.value, c.r.Min, c.r.Max, ErrOutOfRange)
		}
	}
	return nil
}

func (t Thresholds) String() string {
	return fmt.Sprintf("(turb=%g, color=%g, volume=%g, conf=%g)", t.Turbidity, t.Color, t.Volume, t.Confidence)
}

// Settings is the mutable run configuration edited through the menu.
// It is owned by the menu goroutine; the pipeline receives a copy per run.
type Settings struct {
	Thresholds *Thresholds // nil: no metric gating, default confidence

	InputFile string
	OutputDir string

	AdvancedOverlay bool
	AutoOpen        bool
	SideBySide      bool
	FontScale       float64
	TopLeftList     bool
	ColorPatch      bool
	Debounce        bool
	DebounceWindow  int

	classVisible  [classCount]bool
	metricVisible [metricCount]bool
}

func NewSettings() *Settings {
	s := &Settings{
		AdvancedOverlay: true,
		FontScale:       DefaultFontScale,
		DebounceWindow:  DefaultDebounceWindow,
	}
	for i := range s.classVisible {
		s.classVisible[i] = true
	}
	for i := range s.metricVisible {
		s.metricVisible[i] = true
	}
	return s
}

// Snapshot returns an independent copy for a single run.
func (s *Settings) Snapshot() Settings {
	c := *s
	if s.Thresholds != nil {
		t := *s.Thresholds
		c.Thresholds = &t
	}
	return c
}

func (s *Settings) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.Thresholds = &t
	return nil
}

func (s *Settings) ClassVisible(c Class) bool {
	if c < 0 || c >= classCount {
		return true
	}
	return s.classVisible[c]
}

func (s *Settings) ToggleClass(c Class) bool {
	if c < 0 || c >= classCount {
		return true
	}
	s.classVisible[c] = !s.classVisible[c]
	return s.classVisible[c]
}

// LabelVisible reports whether boxes with the given detector label are drawn.
// Labels that match no known class are always visible.
func (s *Settings) LabelVisible(label string) bool {
	c, ok := ClassOf(label)
	if !ok {
		return true
	}
	return s.classVisible[c]
}

func (s *Settings) MetricVisible(m Metric) bool {
	if m < 0 || m >= metricCount {
		return false
	}
	return s.metricVisible[m]
}

func (s *Settings) ToggleMetric(m Metric) bool {
	if m < 0 || m >= metricCount {
		return false
	}
	s.metricVisible[m] = !s.metricVisible[m]
	return s.metricVisible[m]
}

func (s *Settings) SetFontScale(v float64) error {
	if !(Range{MinFontScale, MaxFontScale}).Contains(v) {
		return fmt.Errorf("font scale %g not in [%g, %g]: %w", v, MinFontScale, MaxFontScale, ErrOutOfRange)
	}
	s.FontScale = v
	return nil
}

func (s *Settings) SetDebounceWindow(n int) error {
	if n < MinDebounceWindow || n > MaxDebounceWindow {
		return fmt.Errorf("debounce window %d not in [%d, %d]: %w", n, MinDebounceWindow, MaxDebounceWindow, ErrOutOfRange)
	}
	s.DebounceWindow = n
	return nil
}

// Confidence is the detector confidence threshold for the next run.
func (s *Settings) Confidence() float64 {
	if s.Thresholds == nil {
		return DefaultConfidence
	}
	return s.Thresholds.Confidence
}

// MinimumFor is the display threshold for a metric; zero when thresholds are unset.
func (s *Settings) MinimumFor(m Metric) float64 {
	if s.Thresholds == nil {
		return 0
	}
	switch m {
	case MetricTurbidity:
		return s.Thresholds.Turbidity
	case MetricColor:
		return s.Thresholds.Color
	case MetricVolume:
		return s.Thresholds.Volume
	}
	return 0
}

func OnOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
