package app

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"foresight/internal/media"
	"foresight/internal/menu"
	"foresight/internal/models"
)

func (a *Application) handleSetThresholds() menu.Result {
	a.console.Section("Set or Update Thresholds")
	def := models.DefaultThresholds()

	prompts := []struct {
		prompt string
		def    float64
		r      models.Range
		dst    *float64
	}{
		{"Min turbidity (0-255)", def.Turbidity, models.TurbidityRange, &def.Turbidity},
		{"Min color/Hue (0-180)", def.Color, models.ColorRange, &def.Color},
		{"Min volume fraction (0-1)", def.Volume, models.VolumeRange, &def.Volume},
		{"Detection confidence (0-1)", def.Confidence, models.ConfidenceRange, &def.Confidence},
	}
	for _, p := range prompts {
		v, err := a.console.AskFloat(p.prompt, p.def, p.r.Min, p.r.Max)
		if err != nil {
			a.console.Error("Thresholds not changed.")
			return a.done(err)
		}
		*p.dst = v
	}

	if err := a.settings.SetThresholds(def); err != nil {
		a.console.Error("Thresholds not changed: %v", err)
		return menu.Continue
	}
	a.console.Success("\nUpdated thresholds: %s\n", def)
	a.logger.Debug("Application", "thresholds updated", map[string]interface{}{
		"turbidity":  def.Turbidity,
		"color":      def.Color,
		"volume":     def.Volume,
		"confidence": def.Confidence,
	})
	return menu.Continue
}

func (a *Application) handlePickInput() menu.Result {
	path, err := a.picker.PickFile(a.ctx)
	if menu.IsClosed(err) {
		return a.done(err)
	}
	if err != nil || !media.IsFile(path) {
		a.console.Error("No valid file selected. Input file not changed.")
		return menu.Continue
	}

	a.settings.InputFile = path
	a.console.Success("Input file set to: %s", path)
	if media.Classify(path) == media.KindUnknown {
		a.console.Warn("WARNING: %s is not a supported image or video; the run will refuse it.", path)
	}
	return menu.Continue
}

func (a *Application) handlePickOutputDir() menu.Result {
	path, err := a.picker.PickDir(a.ctx)
	if menu.IsClosed(err) {
		return a.done(err)
	}
	if err != nil || !media.IsDir(path) {
		a.console.Error("No valid directory selected. Output directory not changed.")
		return menu.Continue
	}

	a.settings.OutputDir = path
	a.console.Success("Output directory set to: %s", path)
	return menu.Continue
}

func (a *Application) handleToggleOverlay() menu.Result {
	a.settings.AdvancedOverlay = !a.settings.AdvancedOverlay
	a.console.Success("Advanced overlay is now %s.", models.OnOff(a.settings.AdvancedOverlay))
	return menu.Continue
}

func (a *Application) handleReloadModels() menu.Result {
	if !a.models.Available() {
		a.console.Error("ERROR: Model files not found in %s. Try picking the model directory (option 8).", a.models.ModelDir())
		return menu.Continue
	}

	a.console.Success("Reloading YOLO models...")
	if err := a.models.Load(); err != nil {
		a.console.Error("Failed to reload models: %v", err)
		a.logger.Error("Application", err, map[string]interface{}{"model_dir": a.models.ModelDir()})
		return menu.Continue
	}
	a.console.Success("Models reloaded successfully.")
	return menu.Continue
}

func (a *Application) handleDisplayConfig() menu.Result {
	s := a.settings
	c := a.console

	c.Header("\n=== Current Configuration ===")
	c.Printf("Model Directory: %s\n", a.models.ModelDir())
	if a.models.Available() {
		c.Success("Model Files: FOUND")
	} else {
		c.Error("Model Files: NOT FOUND")
	}
	if a.models.Loaded() {
		c.Success("YOLO Models: Loaded")
	} else {
		c.Error("YOLO Models: Not loaded or reloading needed.")
	}

	if s.Thresholds == nil {
		c.Println("Thresholds: (none) => all T/C/V displayed")
	} else {
		c.Printf("Thresholds: %s\n", s.Thresholds)
	}
	c.Printf("Input File: %s\n", orNone(s.InputFile))
	c.Printf("Output Dir: %s\n", orNone(s.OutputDir))

	c.Status("Advanced Overlay", s.AdvancedOverlay)
	c.Status("Auto-Open Output", s.AutoOpen)
	c.Status("Side-by-Side Output", s.SideBySide)
	c.Printf("Annotation Font Scale: %g\n", s.FontScale)
	c.Status("Top-Left List", s.TopLeftList)
	c.Status("Color Patch for Hue", s.ColorPatch)
	c.Status("Debouncing for T/C/V", s.Debounce)
	c.Printf("Debounce Window: %d frames\n", s.DebounceWindow)

	c.Info("\n--- Class Label Visibility ---")
	for _, cls := range models.Classes() {
		c.Status(cls.String(), s.ClassVisible(cls))
	}
	c.Info("--- Metric Visibility (T/C/V) ---")
	c.Status("Turbidity (T)", s.MetricVisible(models.MetricTurbidity))
	c.Status("Color/Hue (C)", s.MetricVisible(models.MetricColor))
	c.Status("Volume Fraction (V)", s.MetricVisible(models.MetricVolume))
	c.Info("================================")
	return menu.Continue
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func (a *Application) handleRun() menu.Result {
	snapshot := a.settings.Snapshot()

	if !a.models.Loaded() {
		a.console.Error("ERROR: YOLO models not loaded. (option 5)")
		return menu.Continue
	}
	if !media.IsFile(snapshot.InputFile) {
		a.console.Error("ERROR: No valid input file. (option 2)")
		return menu.Continue
	}
	if dir, fellBack := media.OutputDir(snapshot.OutputDir, snapshot.InputFile); fellBack {
		a.console.Warn("WARNING: No valid output directory. Using %s", dir)
	}

	a.console.Success("\nRunning detection on: %s", snapshot.InputFile)
	result, err := a.runner.Run(a.ctx, snapshot)
	if err != nil {
		a.reportRunError(err)
		return menu.Continue
	}

	a.console.Success("Annotated output saved to: %s", result.OutputPath)
	a.logger.Info("Application", "output written", map[string]interface{}{
		"run_id":     result.RunID,
		"output":     result.OutputPath,
		"frames":     result.Frames,
		"elapsed_ms": result.Elapsed.Milliseconds(),
	})

	if snapshot.AutoOpen && a.opener != nil {
		if err := a.opener.Open(result.OutputPath); err != nil {
			a.console.Warn("Could not open output: %v", err)
		}
	}
	return menu.Continue
}

func (a *Application) reportRunError(err error) {
	switch {
	case errors.Is(err, models.ErrModelsNotLoaded):
		a.console.Error("ERROR: YOLO models not loaded. (option 5)")
	case errors.Is(err, models.ErrNoInput), errors.Is(err, media.ErrUnreadableInput):
		a.console.Error("ERROR: No valid input file. (option 2)")
	case errors.Is(err, media.ErrUnsupportedExtension):
		a.console.Error("ERROR: unsupported file extension. Supported: %s", strings.Join(media.Extensions(), " "))
	default:
		a.console.Error("ERROR during detection: %v", err)
	}
}

func (a *Application) handlePickModelDir() menu.Result {
	path, err := a.picker.PickDir(a.ctx)
	if menu.IsClosed(err) {
		return a.done(err)
	}
	if err != nil || path == "" {
		a.console.Error("No directory selected for models. Aborting.")
		return menu.Continue
	}
	if !media.IsDir(path) {
		a.console.Error("The selected path is not a directory. Aborting.")
		return menu.Continue
	}

	if err := a.models.SetModelDir(path); err != nil {
		a.console.Error("Model files still not found: %v", err)
		return menu.Continue
	}
	a.console.Success("Model directory set to: %s", a.models.ModelDir())

	if err := a.models.Load(); err != nil {
		a.console.Error("Failed to load models: %v", err)
		a.logger.Error("Application", err, map[string]interface{}{"model_dir": a.models.ModelDir()})
		return menu.Continue
	}
	a.console.Success("Models loaded successfully.")
	return menu.Continue
}

func (a *Application) handleToggleAutoOpen() menu.Result {
	a.settings.AutoOpen = !a.settings.AutoOpen
	a.console.Success("Auto-Open Output is now %s.", models.OnOff(a.settings.AutoOpen))
	return menu.Continue
}

func (a *Application) handleOverlayOptions() menu.Result {
	return a.submenu(a.OverlayMenu())
}

func (a *Application) handleFontScale() menu.Result {
	line, err := a.console.ReadLine("Enter new font scale (float), current=" + strconv.FormatFloat(a.settings.FontScale, 'g', -1, 64) + ": ")
	if err != nil {
		return a.done(err)
	}
	if line == "" {
		return menu.Continue
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		a.console.Error("Invalid float, no change made.")
		return menu.Continue
	}
	if err := a.settings.SetFontScale(v); err != nil {
		a.console.Error("Font scale must be between %g and %g, no change made.", models.MinFontScale, models.MaxFontScale)
		return menu.Continue
	}
	a.console.Success("Annotation font scale set to %g.", a.settings.FontScale)
	return menu.Continue
}

func (a *Application) handleDebounceWindow() menu.Result {
	line, err := a.console.ReadLine("Enter debounce window in frames (" +
		strconv.Itoa(models.MinDebounceWindow) + "-" + strconv.Itoa(models.MaxDebounceWindow) +
		"), current=" + strconv.Itoa(a.settings.DebounceWindow) + ": ")
	if err != nil {
		return a.done(err)
	}
	if line == "" {
		return menu.Continue
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		a.console.Error("Invalid integer, no change made.")
		return menu.Continue
	}
	if err := a.settings.SetDebounceWindow(n); err != nil {
		a.console.Error("Debounce window must be between %d and %d, no change made.", models.MinDebounceWindow, models.MaxDebounceWindow)
		return menu.Continue
	}
	a.console.Success("Debounce window set to %d frames.", n)
	return menu.Continue
}

func (a *Application) handleToggleDebounce() menu.Result {
	a.settings.Debounce = !a.settings.Debounce
	a.console.Success("Value Debouncing is now %s.", models.OnOff(a.settings.Debounce))
	return menu.Continue
}

func (a *Application) handleLabelVisibility() menu.Result {
	return a.submenu(a.LabelMenu())
}

func (a *Application) handleQuit() menu.Result {
	a.console.Info("Goodbye.")
	return menu.Exit
}
