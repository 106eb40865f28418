package dialog

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"foresight/internal/logger"
)

// Opener shows a finished output in the system viewer.
type Opener interface {
	Open(path string) error
}

// SystemOpener shells out to the platform's open command.
type SystemOpener struct {
	start func(name string, args ...string) error
}

func NewSystemOpener() *SystemOpener {
	return &SystemOpener{start: func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	}}
}

// OpenCommand returns the command that opens path on goos.
func OpenCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

func (o *SystemOpener) Open(path string) error {
	name, args := OpenCommand(runtime.GOOS, path)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("%s %s: %w", name, path, err)
	}
	return nil
}

// FyneOpener asks the fyne app to open a file URL and falls back to the
// platform command when that fails.
type FyneOpener struct {
	app      fyne.App
	fallback Opener
	logger   logger.Logger
}

func NewFyneOpener(a fyne.App, fallback Opener, log logger.Logger) *FyneOpener {
	return &FyneOpener{app: a, fallback: fallback, logger: log}
}

func (o *FyneOpener) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	u, err := url.Parse(storage.NewFileURI(abs).String())
	if err == nil {
		errc := make(chan error, 1)
		fyne.Do(func() { errc <- o.app.OpenURL(u) })
		if err = <-errc; err == nil {
			return nil
		}
	}

	o.logger.Warning("Opener", "fyne could not open output, using system command", map[string]interface{}{
		"path":  abs,
		"error": err.Error(),
	})
	return o.fallback.Open(abs)
}
