// Package viz plays a recorded snapshot series in the terminal as a colored
// heatmap, with the same nearest-frame sampling used for GIF rendering.
package viz

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"

	"github.com/mkarlsen/convect/internal/field"
	"github.com/mkarlsen/convect/internal/heatmap"
	"github.com/mkarlsen/convect/internal/series"
)

const (
	maxCols = 96
	maxRows = 32
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	frameStyle  = lipgloss.NewStyle().Padding(1, 2)
)

type TickMsg time.Time

// Model holds playback state over an immutable series.
type Model struct {
	series   *series.Series
	opts     heatmap.Options
	duration float64
	fps      int

	elapsed float64
	frame   int
	playing bool

	palette color.Palette
	means   []float64 // per-snapshot spatial mean, for the trend chart
}

// NewModel prepares playback of a series over the given animation duration.
func NewModel(s *series.Series, opts heatmap.Options, duration float64, fps int) Model {
	if fps < 1 {
		fps = 15
	}
	means := make([]float64, s.Len())
	for i := range means {
		means[i] = stat.Mean(s.Snapshot(i).Values(), nil)
	}
	return Model{
		series:   s,
		opts:     opts,
		duration: duration,
		fps:      fps,
		playing:  true,
		palette:  heatmap.Palette(),
		means:    means,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.elapsed = 0
			m.frame = 0
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		}
	case TickMsg:
		if m.playing {
			m.elapsed += 1.0 / float64(m.fps)
			if m.elapsed > m.duration {
				m.elapsed = 0
			}
			if idx, err := m.series.FrameAt(m.elapsed, m.duration); err == nil {
				m.frame = idx
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) scrub(dir int) {
	m.playing = false
	m.frame += dir
	if m.frame < 0 {
		m.frame = 0
	}
	if m.frame >= m.series.Len() {
		m.frame = m.series.Len() - 1
	}
	m.elapsed = m.series.Time(m.frame) / m.series.Last() * m.duration
}

func (m Model) View() string {
	grid := m.series.Snapshot(m.frame).Slice2D()
	frameView := frameStyle.Render(m.renderGrid(grid))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.series.FieldName)+" PLAYBACK") + "\n")
	status := "PLAYING"
	if !m.playing {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d / %d", m.frame+1, m.series.Len())) + "\n")
	s.WriteString(labelStyle.Render("Sim time") + valueStyle.Render(fmt.Sprintf("%.0fs", m.series.Time(m.frame))) + "\n")
	s.WriteString(labelStyle.Render("Playback") + valueStyle.Render(fmt.Sprintf("%.1fs / %.1fs", m.elapsed, m.duration)) + "\n")
	if len(m.means) > 1 {
		chart := asciigraph.Plot(m.means,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("mean "+m.series.FieldName),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Restart [ ]:Scrub Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, frameView, frameStyle.Render(s.String()))
}

// renderGrid draws the section with half-block characters, packing two grid
// rows into each terminal line. Row 0 of the grid is the deepest, so rows
// are emitted top-down from the end of the grid.
func (m Model) renderGrid(grid field.Grid2D) string {
	rows, cols := grid.Rows(), grid.Cols()
	if rows == 0 || cols == 0 {
		return ""
	}
	colStride := (cols + maxCols - 1) / maxCols
	rowStride := (rows + maxRows - 1) / maxRows

	sampled := make([][]float64, 0, rows/rowStride+1)
	for r := rows - 1; r >= 0; r -= rowStride {
		row := make([]float64, 0, cols/colStride+1)
		for c := 0; c < cols; c += colStride {
			row = append(row, grid[r][c])
		}
		sampled = append(sampled, row)
	}

	var sb strings.Builder
	for r := 0; r < len(sampled); r += 2 {
		for c := range sampled[r] {
			top := m.colorFor(sampled[r][c])
			bottom := top
			if r+1 < len(sampled) {
				bottom = m.colorFor(sampled[r+1][c])
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			sb.WriteString(style.Render("▀"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) colorFor(v float64) string {
	if v < m.opts.Min {
		v = m.opts.Min
	}
	if v > m.opts.Max {
		v = m.opts.Max
	}
	idx := uint8((v - m.opts.Min) / (m.opts.Max - m.opts.Min) * 255)
	rgba := m.palette[idx].(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
