// Package app wires the Foresight menu to settings, models and the run pipeline.
package app

import (
	"context"

	"foresight/internal/logger"
	"foresight/internal/menu"
	"foresight/internal/models"
)

const (
	AppName    = "Foresight"
	AppID      = "io.foresight.menu"
	AppVersion = "1.0.0"
)

// ModelStore discovers and loads the detection models.
type ModelStore interface {
	ModelDir() string
	Available() bool
	Loaded() bool
	SetModelDir(dir string) error
	Load() error
}

// Runner performs one detection and overlay run.
type Runner interface {
	Run(ctx context.Context, settings models.Settings) (*models.RunResult, error)
}

// Picker asks the user for a file or directory.
type Picker interface {
	PickFile(ctx context.Context) (string, error)
	PickDir(ctx context.Context) (string, error)
}

// Opener shows a file in the system viewer.
type Opener interface {
	Open(path string) error
}

type Dependencies struct {
	Console *menu.Console
	Models  ModelStore
	Runner  Runner
	Picker  Picker
	Opener  Opener
	Logger  logger.Logger
}

// Application holds the menu state. Settings are only touched from the
// goroutine that calls Run.
type Application struct {
	ctx      context.Context
	settings *models.Settings
	console  *menu.Console
	models   ModelStore
	runner   Runner
	picker   Picker
	opener   Opener
	logger   logger.Logger
}

func NewApplication(ctx context.Context, deps Dependencies) *Application {
	return &Application{
		ctx:      ctx,
		settings: models.NewSettings(),
		console:  deps.Console,
		models:   deps.Models,
		runner:   deps.Runner,
		picker:   deps.Picker,
		opener:   deps.Opener,
		logger:   deps.Logger,
	}
}

// Settings exposes the live configuration.
func (a *Application) Settings() *models.Settings {
	return a.settings
}

// Run shows the banner, tries to load models and loops over the main menu
// until Quit or end of input.
func (a *Application) Run() error {
	a.console.Header("=== Foresight Terminal Menu ===")
	a.logger.Info("Application", "starting menu", map[string]interface{}{
		"version":   AppVersion,
		"model_dir": a.models.ModelDir(),
	})

	a.Startup()

	err := a.console.Run(a.MainMenu(), a.logger)
	if menu.IsClosed(err) {
		a.logger.Info("Application", "input closed, exiting", nil)
		return nil
	}
	return err
}

// Startup loads the models when their files are already present.
func (a *Application) Startup() {
	if !a.models.Available() {
		a.console.Warn("Model files not found in %s. Use option 8 to pick the model directory.", a.models.ModelDir())
		return
	}
	if err := a.models.Load(); err != nil {
		a.console.Error("Failed to load models: %v", err)
		a.logger.Error("Application", err, map[string]interface{}{"model_dir": a.models.ModelDir()})
		return
	}
	a.console.Success("Models loaded from %s", a.models.ModelDir())
}

// done converts the end of input inside a handler into a menu exit.
func (a *Application) done(err error) menu.Result {
	if menu.IsClosed(err) {
		return menu.Exit
	}
	return menu.Continue
}

func (a *Application) submenu(m *menu.Menu) menu.Result {
	return a.done(a.console.Run(m, a.logger))
}
