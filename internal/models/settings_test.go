package models

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings()

	if s.Thresholds != nil {
		t.Errorf("Thresholds: got %v, want nil", s.Thresholds)
	}
	if !s.AdvancedOverlay {
		t.Error("AdvancedOverlay should default to ON")
	}
	if s.AutoOpen || s.SideBySide || s.TopLeftList || s.ColorPatch || s.Debounce {
		t.Error("optional overlays should default to OFF")
	}
	if s.FontScale != DefaultFontScale {
		t.Errorf("FontScale: got %v, want %v", s.FontScale, DefaultFontScale)
	}
	if s.DebounceWindow != 3 {
		t.Errorf("DebounceWindow: got %d, want 3", s.DebounceWindow)
	}
	for _, c := range Classes() {
		if !s.ClassVisible(c) {
			t.Errorf("class %s should default to visible", c)
		}
	}
	for _, m := range AllMetrics() {
		if !s.MetricVisible(m) {
			t.Errorf("metric %s should default to visible", m)
		}
	}
	if s.Confidence() != DefaultConfidence {
		t.Errorf("Confidence: got %v", s.Confidence())
	}
}

func TestLabelVisible(t *testing.T) {
	s := NewSettings()
	s.ToggleClass(ClassResidue)
	s.ToggleClass(ClassHomo)

	tests := []struct {
		label string
		want  bool
	}{
		{"Vessel", true},
		{"Residue", false},
		{"residue_dry", false},
		{"Homo", false},
		{"Hetero", true},
		{"Solid", true},
		{"bubble", true},
	}

	for _, tt := range tests {
		if got := s.LabelVisible(tt.label); got != tt.want {
			t.Errorf("LabelVisible(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestToggleRoundTrip(t *testing.T) {
	s := NewSettings()

	if s.ToggleMetric(MetricColor) {
		t.Fatal("first toggle should turn the metric off")
	}
	if !s.ToggleMetric(MetricColor) {
		t.Fatal("second toggle should turn the metric back on")
	}
	if s.ToggleClass(ClassVessel) {
		t.Fatal("first toggle should hide vessels")
	}
}

func TestSetThresholdsValidates(t *testing.T) {
	s := NewSettings()

	bad := DefaultThresholds()
	bad.Color = 200
	if err := s.SetThresholds(bad); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if s.Thresholds != nil {
		t.Fatal("rejected thresholds must not be stored")
	}

	good := Thresholds{Turbidity: 10, Color: 5, Volume: 0.2, Confidence: 0.6}
	if err := s.SetThresholds(good); err != nil {
		t.Fatalf("SetThresholds failed: %v", err)
	}
	if s.Confidence() != 0.6 {
		t.Errorf("Confidence: got %v", s.Confidence())
	}
	if s.MinimumFor(MetricVolume) != 0.2 {
		t.Errorf("MinimumFor(volume): got %v", s.MinimumFor(MetricVolume))
	}
}

func TestSetFontScaleAndWindow(t *testing.T) {
	s := NewSettings()

	if err := s.SetFontScale(0); err == nil {
		t.Error("font scale 0 should be rejected")
	}
	if s.FontScale != DefaultFontScale {
		t.Errorf("rejected font scale changed state: %v", s.FontScale)
	}
	if err := s.SetFontScale(1.5); err != nil || s.FontScale != 1.5 {
		t.Errorf("SetFontScale(1.5): err=%v scale=%v", err, s.FontScale)
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := s.SetFontScale(v); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetFontScale(%v): err=%v, want ErrOutOfRange", v, err)
		}
	}
	if s.FontScale != 1.5 {
		t.Errorf("non-finite font scale changed state: %v", s.FontScale)
	}

	if err := s.SetDebounceWindow(0); err == nil {
		t.Error("window 0 should be rejected")
	}
	if err := s.SetDebounceWindow(5); err != nil || s.DebounceWindow != 5 {
		t.Errorf("SetDebounceWindow(5): err=%v window=%d", err, s.DebounceWindow)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewSettings()
	_ = s.SetThresholds(DefaultThresholds())

	snap := s.Snapshot()
	s.Thresholds.Turbidity = 99
	s.ToggleClass(ClassSolid)

	if snap.Thresholds.Turbidity != 50 {
		t.Errorf("snapshot thresholds followed the original: %v", snap.Thresholds.Turbidity)
	}
	if !snap.ClassVisible(ClassSolid) {
		t.Error("snapshot class visibility followed the original")
	}
}

func TestDetectionHelpers(t *testing.T) {
	tests := []struct {
		label  string
		liquid bool
		vessel bool
	}{
		{"Homo", true, false},
		{"hetero", true, false},
		{"Solid", false, false},
		{"Vessel", false, true},
	}
	for _, tt := range tests {
		d := Detection{Label: tt.label}
		if d.IsLiquid() != tt.liquid || d.IsVessel() != tt.vessel {
			t.Errorf("%q: liquid=%v vessel=%v", tt.label, d.IsLiquid(), d.IsVessel())
		}
	}

	d := Detection{Label: "Homo", Confidence: 0.876}
	if d.Text() != "Homo 0.88" {
		t.Errorf("Text: got %q", d.Text())
	}

	clipped := ClipBox(image.Rect(90, 50, -10, 10), image.Rect(0, 0, 80, 40))
	if clipped != image.Rect(0, 10, 80, 40) {
		t.Errorf("ClipBox: got %v", clipped)
	}
}
