package dialog

import (
	"context"
	"errors"
	"strings"

	"foresight/internal/menu"
)

// ErrCancelled is returned when the user closes a picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

// Picker asks the user for a file or a directory.
type Picker interface {
	PickFile(ctx context.Context) (string, error)
	PickDir(ctx context.Context) (string, error)
}

// PromptPicker reads paths from the terminal, for machines without a display.
type PromptPicker struct {
	console *menu.Console
}

func NewPromptPicker(console *menu.Console) *PromptPicker {
	return &PromptPicker{console: console}
}

func (p *PromptPicker) PickFile(ctx context.Context) (string, error) {
	return p.ask(ctx, "Path to image or video (blank to cancel): ")
}

func (p *PromptPicker) PickDir(ctx context.Context) (string, error) {
	return p.ask(ctx, "Directory path (blank to cancel): ")
}

func (p *PromptPicker) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.console.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	path := CleanPath(line)
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

// CleanPath strips the quotes terminals add around dragged-in paths.
func CleanPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
