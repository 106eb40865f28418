package dialog

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	fynedialog "fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"foresight/internal/logger"
	"foresight/internal/media"
)

const (
	hostTitle  = "Foresight"
	hostWidth  = 900
	hostHeight = 640
)

type pick struct {
	path string
	err  error
}

// FynePicker shows fyne file and folder dialogs on a host window that stays
// hidden between selections. Calls block the caller until the user answers;
// all widget work runs on the fyne main loop.
type FynePicker struct {
	app    fyne.App
	logger logger.Logger

	mu      sync.Mutex
	window  fyne.Window
	pending chan pick
}

func NewFynePicker(a fyne.App, log logger.Logger) *FynePicker {
	return &FynePicker{app: a, logger: log}
}

func (p *FynePicker) PickFile(ctx context.Context) (string, error) {
	return p.run(ctx, "Select Input", "Choose an image or video file to annotate.", func(w fyne.Window, done func(pick)) {
		d := fynedialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			switch {
			case err != nil:
				done(pick{err: err})
			case r == nil:
				done(pick{err: ErrCancelled})
			default:
				path := r.URI().Path()
				r.Close()
				done(pick{path: path})
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter(media.Extensions()))
		d.Resize(fyne.NewSize(hostWidth, hostHeight))
		d.Show()
	})
}

func (p *FynePicker) PickDir(ctx context.Context) (string, error) {
	return p.run(ctx, "Select Directory", "Choose a directory.", func(w fyne.Window, done func(pick)) {
		d := fynedialog.NewFolderOpen(func(u fyne.ListableURI, err error) {
			switch {
			case err != nil:
				done(pick{err: err})
			case u == nil:
				done(pick{err: ErrCancelled})
			default:
				done(pick{path: u.Path()})
			}
		}, w)
		d.Resize(fyne.NewSize(hostWidth, hostHeight))
		d.Show()
	})
}

func (p *FynePicker) run(ctx context.Context, title, message string, open func(fyne.Window, func(pick))) (string, error) {
	result := make(chan pick, 1)

	p.mu.Lock()
	p.pending = result
	p.mu.Unlock()

	var once sync.Once
	done := func(r pick) {
		once.Do(func() {
			select {
			case result <- r:
			default:
			}
			p.mu.Lock()
			if p.pending == result {
				p.pending = nil
			}
			w := p.window
			p.mu.Unlock()
			if w != nil {
				w.Hide()
			}
		})
	}

	fyne.Do(func() {
		w := p.host(done)
		w.Show()
		w.RequestFocus()
		info := fynedialog.NewInformation(title, message, w)
		info.SetOnClosed(func() { open(w, done) })
		info.Show()
	})

	select {
	case r := <-result:
		if r.err != nil {
			p.logger.Debug("FilePicker", "selection ended without a path", map[string]interface{}{
				"title": title,
				"error": r.err.Error(),
			})
			return "", r.err
		}
		return r.path, nil
	case <-ctx.Done():
		fyne.Do(func() { done(pick{err: ctx.Err()}) })
		return "", ctx.Err()
	}
}

// host returns the shared dialog window. Closing it cancels the pending
// selection instead of closing the window, so the fyne loop never loses its
// last window.
func (p *FynePicker) host(done func(pick)) fyne.Window {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.window == nil {
		w := p.app.NewWindow(hostTitle)
		w.Resize(fyne.NewSize(hostWidth, hostHeight))
		w.CenterOnScreen()
		w.SetCloseIntercept(func() {
			p.mu.Lock()
			pending := p.pending
			p.pending = nil
			p.mu.Unlock()
			if pending != nil {
				select {
				case pending <- pick{err: ErrCancelled}:
				default:
				}
			}
			w.Hide()
		})
		p.window = w
	}
	return p.window
}
