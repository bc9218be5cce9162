package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/piso/internal/controller"
	"github.com/desertwitch/piso/internal/menu"
	"github.com/desertwitch/piso/internal/schema"
	"github.com/dustin/go-humanize"
)

const (
	// RefreshInterval is the interval at which the drives are reconciled
	// with the volume store.
	RefreshInterval = 5 * time.Second

	maxLogLines = 100
)

//nolint:gochecknoglobals
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	litStyle = lipgloss.NewStyle().Reverse(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

type menuController interface {
	OnSelect() bool
	OnNext() bool
	OnPrev() bool
	Back() bool
	Render() *menu.Bitmap
	Usage() (controller.Usage, error)
	Drives() []schema.VirtualDrive
	RebuildFromVolumes() error
}

type refreshMsg time.Time

// TeaModel is the [tea.Model] of the drive menu. All calls into the
// controller happen from [TeaModel.Update] and [TeaModel.View], which the
// [tea.Program] runs on a single goroutine.
type TeaModel struct {
	width  int
	height int

	cancel     context.CancelFunc
	controller menuController

	fullWidthWithBorders int

	capacityProgress progress.Model
	logsViewport     viewport.Model
	logs             []string

	capacityFailing bool
	ready           bool
}

// NewTeaModel returns a new [TeaModel] for the controller.
//
//nolint:mnd
func NewTeaModel(controller menuController, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		controller: controller,
		cancel:     cancel,
		capacityProgress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
		),
		logsViewport: viewport.New(80, 10),
		logs:         make([]string, 0, maxLogLines),
	}
}

func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		scheduleRefresh(),
	)
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

//nolint:mnd,ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		case "up", "k":
			m.controller.OnPrev()
		case "down", "j":
			m.controller.OnNext()
		case "enter", " ", "right", "l":
			m.controller.OnSelect()
		case "esc", "backspace", "left", "h":
			m.controller.Back()
		case "r":
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.fullWidthWithBorders = m.width - 2
		m.capacityProgress.Width = max(m.fullWidthWithBorders-2, 10)

		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = max(m.height/3, 3)

		if len(m.logs) > 0 {
			m.logsViewport.SetContent(strings.Join(m.logs, ""))
		}

		m.ready = true

	case refreshMsg:
		m.refresh()
		cmds = append(cmds, scheduleRefresh())

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, string(msg))

		m.logsViewport.SetContent(strings.Join(m.logs, ""))
		m.logsViewport.GotoBottom()
	}

	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// refresh reconciles the drives and logs when the pool capacity becomes
// unavailable or available again. [TeaModel.View] must not log, since every
// log line comes back as a [LogMsg] and renders another view.
func (m *TeaModel) refresh() {
	if err := m.controller.RebuildFromVolumes(); err != nil {
		slog.Error("Failed to refresh drives from volumes.",
			"err", err,
		)
	}

	_, err := m.controller.Usage()
	switch {
	case err != nil && !m.capacityFailing:
		slog.Error("Failed to get the pool capacity.",
			"err", err,
		)
	case err == nil && m.capacityFailing:
		slog.Info("Pool capacity is available again.")
	}
	m.capacityFailing = err != nil
}

func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	display := borderStyle.Render(renderBitmap(m.controller.Render()))
	usage, usageErr := m.controller.Usage()

	capacitySection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Capacity"),
				m.capacityProgress.ViewAs(usage.Fraction()),
				infoStyle.Render(m.capacityDetails(usage, usageErr)),
			),
		)

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Process Information"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("↑/↓: move • enter: select • esc: back • r: rescan • q: quit gui • ctrl+c: quit program")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		display,
		capacitySection,
		logsSection,
		helpSection,
	)
}

func (m TeaModel) capacityDetails(usage controller.Usage, err error) string {
	free := "unknown"
	if err == nil {
		free = humanize.IBytes(usage.Free())
	}

	return fmt.Sprintf("Drives: %d • Allocated: %s • Free: %s",
		len(m.controller.Drives()), humanize.IBytes(usage.Allocated), free)
}

// renderBitmap draws a [menu.Bitmap] as text, with inverted cells drawn lit.
func renderBitmap(b *menu.Bitmap) string {
	var s strings.Builder

	for y := range b.Height() {
		if y > 0 {
			s.WriteByte('\n')
		}

		var run strings.Builder
		runLit := false

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runLit {
				s.WriteString(litStyle.Render(run.String()))
			} else {
				s.WriteString(run.String())
			}
			run.Reset()
		}

		for x := range b.Width() {
			if lit := b.IsInverted(x, y); lit != runLit {
				flush()
				runLit = lit
			}
			run.WriteRune(b.Cell(x, y))
		}
		flush()
	}

	return s.String()
}
