package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Status is a snapshot of the player for rendering.
type Status struct {
	File     string
	Time     float64
	Duration float64
	Speed    float64
	Playing  bool
}

// Transport is the UI's handle on the player. Implementations are
// responsible for confining the underlying player to its loop goroutine.
type Transport interface {
	TogglePlay()
	Rewind()
	SeekBy(seconds float64)
	AdjustSpeed(delta float64)
	Status() Status
}

// UI refresh rate
const refreshFPS = 30

// seek step for the arrow keys, in seconds
const seekStep = 5.0

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	playStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	stopStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	barBgStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

type Model struct {
	Transport Transport
	status    Status
	quitting  bool
}

type tickMsg time.Time

func NewModel(t Transport) Model {
	return Model{
		Transport: t,
		status:    t.Status(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/refreshFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			m.Transport.TogglePlay()

		case "r":
			m.Transport.Rewind()

		case "left", "h":
			m.Transport.SeekBy(-seekStep)

		case "right", "l":
			m.Transport.SeekBy(seekStep)

		case "+", "=":
			m.Transport.AdjustSpeed(0.1)

		case "-", "_":
			m.Transport.AdjustSpeed(-0.1)
		}
		m.status = m.Transport.Status()

	case tickMsg:
		m.status = m.Transport.Status()
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.status

	var b strings.Builder
	b.WriteString(titleStyle.Render("smfplay") + "\n\n")
	b.WriteString(detailStyle.Render(fmt.Sprintf("File: %s", s.File)) + "\n\n")

	b.WriteString(renderProgress(s, 50) + "\n")
	b.WriteString(fmt.Sprintf("%s / %s", formatTime(s.Time), formatTime(s.Duration)))
	b.WriteString(detailStyle.Render(fmt.Sprintf("   speed %.1fx", s.Speed)))
	b.WriteString("   ")
	if s.Playing {
		b.WriteString(playStyle.Render("Playing"))
	} else {
		b.WriteString(stopStyle.Render("Stopped"))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("space: play/stop • r: rewind • ←/→: seek ±5s") + "\n")
	b.WriteString(helpStyle.Render("+/-: speed • q: quit") + "\n")

	return b.String()
}

func renderProgress(s Status, width int) string {
	filled := 0
	if s.Duration > 0 {
		progress := s.Time / s.Duration
		if progress > 1 {
			progress = 1
		}
		if progress < 0 {
			progress = 0
		}
		filled = int(progress * float64(width))
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < width; i++ {
		switch {
		case i < filled:
			bar.WriteString(barStyle.Render("█"))
		case i == filled && s.Playing:
			bar.WriteString(barStyle.Render("▶"))
		default:
			bar.WriteString(barBgStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	min := int(seconds) / 60
	sec := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", min, sec)
}
