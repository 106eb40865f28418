package main

import (
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"foresight/internal/app"
	"foresight/internal/config"
	"foresight/internal/detection"
	"foresight/internal/dialog"
	"foresight/internal/logger"
	"foresight/internal/menu"
	"foresight/internal/pipeline"
	"foresight/internal/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "foresight: %v\n", err)
		os.Exit(1)
	}
	log := newLogger(cfg)

	log.Info("Main", "foresight starting", map[string]interface{}{
		"version":    app.AppVersion,
		"go_version": runtime.Version(),
		"picker":     cfg.Picker,
		"model_dir":  cfg.ModelDir,
		"input_size": cfg.InputSize,
	})

	sd := shutdown.NewManager(log)
	sd.Listen()

	console := menu.NewTerminal()
	modelManager := detection.NewManager(cfg, log)
	sd.Register("models", modelManager)

	// Registered after the models so it stops first: nets stay open until
	// the current run has returned.
	runner := pipeline.NewRunner(modelManager, log, console.Writer())
	sd.Register("runner", runner)

	deps := app.Dependencies{
		Console: console,
		Models:  modelManager,
		Runner:  runner,
		Logger:  log,
	}

	if cfg.Picker == config.PickerPrompt {
		deps.Picker = dialog.NewPromptPicker(console)
		deps.Opener = dialog.NewSystemOpener()
		err = runHeadless(sd, deps)
	} else {
		err = runWithGUI(sd, deps, log)
	}

	sd.Shutdown()
	if err != nil {
		log.Error("Main", err, nil)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *logger.ZerologAdapter {
	level := logger.ParseLevel(cfg.LogLevel, cfg.Debug)
	if cfg.JSONLogs {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}

// runHeadless runs the menu without a GUI toolkit. A signal ends the wait
// even while the menu is blocked on input.
func runHeadless(sd *shutdown.Manager, deps app.Dependencies) error {
	application := app.NewApplication(sd.Context(), deps)

	done := make(chan error, 1)
	go func() { done <- application.Run() }()

	select {
	case err := <-done:
		return err
	case <-sd.Context().Done():
		return nil
	}
}

// runWithGUI keeps the fyne loop on the main goroutine, as the toolkit
// requires, and drives the menu from a second goroutine.
func runWithGUI(sd *shutdown.Manager, deps app.Dependencies, log logger.Logger) error {
	fyneApp := fyneapp.NewWithID(app.AppID)
	deps.Picker = dialog.NewFynePicker(fyneApp, log)
	deps.Opener = dialog.NewFyneOpener(fyneApp, dialog.NewSystemOpener(), log)

	sd.Register("gui", shutdown.Func(func() {
		fyne.Do(fyneApp.Quit)
	}))

	application := app.NewApplication(sd.Context(), deps)

	errc := make(chan error, 1)
	go func() {
		defer sd.Shutdown()
		if err := application.Run(); err != nil {
			errc <- fmt.Errorf("menu: %w", err)
		}
	}()

	fyneApp.Run()
	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}
