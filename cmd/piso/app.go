package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/desertwitch/piso/internal/controller"
	"github.com/desertwitch/piso/internal/menu"
	"github.com/dustin/go-humanize"
)

// App is the principal structure of the program, running the drive menu
// without the command-line user interface.
type App struct {
	controller *controller.Controller
}

// NewApp returns a pointer to a new [App].
func NewApp(ctrl *controller.Controller) *App {
	return &App{
		controller: ctrl,
	}
}

// List prints a table of all drives and the pool usage.
func (app *App) List(out io.Writer) {
	for _, d := range app.controller.Drives() {
		fmt.Fprintf(out, "%-10s %10s %10s  %s  %s\n",
			d.Name, humanize.IBytes(d.Capacity), humanize.IBytes(d.Used), d.Serial(), d.Path)
	}

	free := "unknown"
	usage, err := app.controller.Usage()
	if err == nil {
		free = humanize.IBytes(usage.Free())
	}

	fmt.Fprintf(out, "%d drives, %.1f%% of the pool committed, %s free\n",
		len(app.controller.Drives()), usage.Fraction()*100, free) //nolint:mnd
}

// RunHeadless runs the menu with line-based input, one command per line, and
// prints the display after every command. It returns once the input ends,
// a quit command is read or the context is cancelled.
func (app *App) RunHeadless(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errChan <- scanner.Err()
	}()

	drawBitmap(out, app.controller.Render())

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errChan:
					if err != nil {
						return fmt.Errorf("(app-headless) failed to read input: %w", err)
					}
				default:
				}

				return nil
			}

			if quit := app.handleCommand(strings.TrimSpace(line)); quit {
				return nil
			}
			drawBitmap(out, app.controller.Render())
		}
	}
}

// handleCommand turns a command into a menu event, returning true on quit.
func (app *App) handleCommand(cmd string) bool {
	switch strings.ToLower(cmd) {
	case "n", "next", "j", "down":
		app.controller.OnNext()
	case "p", "prev", "k", "up":
		app.controller.OnPrev()
	case "", "s", "select", "enter":
		app.controller.OnSelect()
	case "b", "back", "esc":
		app.controller.Back()
	case "r", "rescan":
		if err := app.controller.RebuildFromVolumes(); err != nil {
			slog.Error("Failed to refresh drives from volumes.",
				"err", err,
			)
		}
	case "q", "quit":
		return true
	default:
		slog.Warn("Unknown command (next, prev, select, back, rescan, quit).",
			"command", cmd,
		)
	}

	return false
}

// drawBitmap prints a [menu.Bitmap] framed, marking inverted rows with '>'.
func drawBitmap(out io.Writer, b *menu.Bitmap) {
	border := "+" + strings.Repeat("-", b.Width()+1) + "+"

	fmt.Fprintln(out, border)
	for y, line := range b.Lines() {
		marker := " "
		if b.IsInverted(0, y) {
			marker = ">"
		}
		fmt.Fprintf(out, "|%s%-*s|\n", marker, b.Width(), line)
	}
	fmt.Fprintln(out, border)
}
