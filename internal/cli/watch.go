package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/webforce/webforce/pkg/layout"
	"github.com/webforce/webforce/pkg/topology"
)

// Watch styles
var (
	watchRootStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	watchNodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	watchDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusRows is the number of terminal rows reserved below the canvas.
const statusRows = 2

// watchCommand creates the watch command: an animated terminal view of
// a synthetically growing graph being laid out live.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		configPath string
		maxNodes   int
		growMS     int
		viewHeight float64
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a growing graph settle into a layout",
		Long: `Watch a growing graph settle into a layout.

The watch command runs the paced simulation loop against a synthetic
topology stream that grows one node at a time, and draws the current
layout as glyphs on the terminal. The root node is highlighted.

Keys: space pauses the simulation, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEngineConfig(configPath)
			if err != nil {
				return err
			}

			engine := layout.New(cfg)
			engine.SetDisplayScale(80, 24, viewHeight)

			m := newWatchModel(engine, topology.NewGenerator(seed), maxNodes, time.Duration(growMS)*time.Millisecond, viewHeight)

			engine.Run()
			defer engine.Stop()

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("watch session ended", "nodes", engine.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ./webforce.toml if present)")
	cmd.Flags().IntVar(&maxNodes, "nodes", 40, "number of nodes to grow to")
	cmd.Flags().IntVar(&growMS, "grow-interval", 400, "milliseconds between node arrivals")
	cmd.Flags().Float64Var(&viewHeight, "view-height", 15, "vertical extent of the viewport in simulation units")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the synthetic topology")

	return cmd
}

// frameMsg triggers a repaint and, when due, the next topology event.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// watchModel is the bubbletea model for the watch command.
type watchModel struct {
	engine *layout.Engine
	gen    *topology.Generator

	maxNodes   int
	growEvery  time.Duration
	viewHeight float64

	rootID   string
	lastGrow time.Time
	paused   bool

	width  int
	height int
}

func newWatchModel(engine *layout.Engine, gen *topology.Generator, maxNodes int, growEvery time.Duration, viewHeight float64) watchModel {
	return watchModel{
		engine:     engine,
		gen:        gen,
		maxNodes:   maxNodes,
		growEvery:  growEvery,
		viewHeight: viewHeight,
		width:      80,
		height:     24,
	}
}

func (m watchModel) Init() tea.Cmd {
	return frameTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.engine.Stop()
			return m, tea.Quit
		case " ":
			if m.paused {
				m.engine.Run()
			} else {
				m.engine.Stop()
			}
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		canvasH := m.height - statusRows
		if canvasH < 1 {
			canvasH = 1
		}
		m.engine.SetDisplayScale(float64(m.width), float64(canvasH), m.viewHeight)

	case frameMsg:
		now := time.Time(msg)
		if !m.paused && m.engine.Len() < m.maxNodes && now.Sub(m.lastGrow) >= m.growEvery {
			ev := m.gen.Next()
			m.engine.AddNode(ev.ID, ev.Parent)
			if m.rootID == "" {
				m.rootID = ev.ID
			}
			m.lastGrow = now
		}
		return m, frameTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	canvasH := m.height - statusRows
	if canvasH < 1 || m.width < 1 {
		return ""
	}

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, m.width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	coords := m.engine.AllCoordinates()
	var rootX, rootY = -1, -1
	for id, pt := range coords {
		x := int(math.Round(pt.X))
		y := int(math.Round(pt.Y))
		if x < 0 || x >= m.width || y < 0 || y >= canvasH {
			continue
		}
		grid[y][x] = '●'
		if id == m.rootID {
			rootX, rootY = x, y
		}
	}

	var b strings.Builder
	for y, row := range grid {
		line := string(row)
		if y == rootY && rootX >= 0 {
			// Style the root cell separately from the rest of the row.
			line = watchNodeStyle.Render(string(row[:rootX])) +
				watchRootStyle.Render("◉") +
				watchNodeStyle.Render(string(row[rootX+1:]))
		} else {
			line = watchNodeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	status := fmt.Sprintf("nodes %d/%d", m.engine.Len(), m.maxNodes)
	if m.paused {
		status += " · paused"
	}
	b.WriteString(watchDimStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(watchDimStyle.Render("space pause · q quit"))
	return b.String()
}
