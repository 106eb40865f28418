package app

import (
	"fmt"

	"foresight/internal/menu"
	"foresight/internal/models"
)

func currently(on bool) string {
	return fmt.Sprintf("(currently: %s)", models.OnOff(on))
}

func (a *Application) MainMenu() *menu.Menu {
	s := a.settings
	return &menu.Menu{
		Title:  "Foresight Menu - Choose an option:",
		Framed: true,
		Items: []menu.Item{
			menu.Static("Set or Update Thresholds (turb, color, volume, confidence)", a.handleSetThresholds),
			menu.Static("Pick Input File (Image/Video)", a.handlePickInput),
			menu.Static("Pick Output Directory", a.handlePickOutputDir),
			{Label: func() string { return "Toggle Advanced Overlay " + currently(s.AdvancedOverlay) }, Action: a.handleToggleOverlay},
			menu.Static("Reload YOLO Models", a.handleReloadModels),
			menu.Static("Display Current Configuration", a.handleDisplayConfig),
			menu.Static("Run Detection & Overlay", a.handleRun),
			menu.Static("Pick Model Directory (if models were not found)", a.handlePickModelDir),
			{Label: func() string { return "Toggle Auto-Open Output " + currently(s.AutoOpen) }, Action: a.handleToggleAutoOpen},
			menu.Static("Additional Overlay Options (side-by-side, font size, top-left listing, color patch, etc.)", a.handleOverlayOptions),
			{Label: func() string { return "Toggle Value Debouncing " + currently(s.Debounce) }, Action: a.handleToggleDebounce},
			menu.Static("Label Visibility Toggles (per-class + T/C/V overlays)", a.handleLabelVisibility),
			menu.Static("Quit", a.handleQuit),
		},
	}
}

func (a *Application) OverlayMenu() *menu.Menu {
	s := a.settings
	return &menu.Menu{
		Title: "Additional Overlay Options",
		Items: []menu.Item{
			{Label: func() string { return "Toggle Side-by-Side Output " + currently(s.SideBySide) }, Action: a.toggle("Side-by-Side", &s.SideBySide)},
			{Label: func() string { return fmt.Sprintf("Set Annotation Font Scale (currently: %g)", s.FontScale) }, Action: a.handleFontScale},
			{Label: func() string { return "Toggle Top-Left List of Detected Items " + currently(s.TopLeftList) }, Action: a.toggle("Top-Left List", &s.TopLeftList)},
			{Label: func() string { return "Toggle Color Patch for Hue " + currently(s.ColorPatch) }, Action: a.toggle("Color Patch for Hue", &s.ColorPatch)},
			{Label: func() string { return fmt.Sprintf("Set Debounce Window (currently: %d frames)", s.DebounceWindow) }, Action: a.handleDebounceWindow},
			menu.Static("Return to Main Menu", func() menu.Result { return menu.Exit }),
		},
	}
}

var metricLabels = map[models.Metric]string{
	models.MetricTurbidity: "Turbidity (T)",
	models.MetricColor:     "Color (C)",
	models.MetricVolume:    "Volume (V)",
}

func (a *Application) LabelMenu() *menu.Menu {
	s := a.settings
	items := make([]menu.Item, 0, len(models.Classes())+len(models.AllMetrics())+1)
	for _, c := range models.Classes() {
		c := c
		items = append(items, menu.Item{
			Label: func() string { return fmt.Sprintf("Toggle %s Label %s", c, currently(s.ClassVisible(c))) },
			Action: func() menu.Result {
				a.console.Success("%s Label is now %s.", c, models.OnOff(s.ToggleClass(c)))
				return menu.Continue
			},
		})
	}
	for _, m := range models.AllMetrics() {
		m := m
		items = append(items, menu.Item{
			Label: func() string {
				return fmt.Sprintf("Toggle %s Overlay %s", metricLabels[m], currently(s.MetricVisible(m)))
			},
			Action: func() menu.Result {
				a.console.Success("%s Overlay is now %s.", metricLabels[m], models.OnOff(s.ToggleMetric(m)))
				return menu.Continue
			},
		})
	}
	items = append(items, menu.Static("Return to Main Menu", func() menu.Result { return menu.Exit }))

	return &menu.Menu{Title: "Label Visibility Toggles", Items: items}
}

func (a *Application) toggle(name string, flag *bool) func() menu.Result {
	return func() menu.Result {
		*flag = !*flag
		a.console.Success("%s is now %s.", name, models.OnOff(*flag))
		return menu.Continue
	}
}
