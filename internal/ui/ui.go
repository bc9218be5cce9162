// Package ui implements the drive menu as a command-line user interface using
// [tea]. Key presses become menu events and the rendered [menu.Bitmap] is
// drawn as the device display.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
)

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	program *tea.Program

	LogWriter *TeaLogWriter
}

// NewHandler returns a pointer to a new user interface [Handler] driving the
// given controller.
func NewHandler(ctx context.Context, cancel context.CancelFunc, controller menuController) *Handler {
	handler := &Handler{}

	model := NewTeaModel(controller, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]). While it
// runs, logs are redirected into the log panel of the interface.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	previous := slog.Default()
	defer slog.SetDefault(previous)

	slog.SetDefault(slog.New(
		tint.NewHandler(uiHandler.LogWriter, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			NoColor:    true,
		}),
	))

	if _, err := uiHandler.program.Run(); err != nil {
		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
