package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/jostle/internal/dynamo"
	"github.com/san-kum/jostle/internal/particle"
)

const (
	canvasPadX = 2
	canvasPadY = 1

	defaultCols     = 64
	minCols         = 16
	statsWidth      = 48
	historyCapacity = 120
)

type TickMsg time.Time

// Model shows a World on a braille canvas. Terminal mouse motion over the
// canvas adds particles; a timer ticks the world.
type Model struct {
	world    *dynamo.World
	canvas   *Canvas
	fps      int
	running  bool
	history  []float64
	pointer  particle.Vec2
	pointing bool
	theme    Theme
	styles   styles
	showHelp bool
}

func NewModel(w *dynamo.World, fps int, theme string) Model {
	if fps <= 0 {
		fps = 60
	}
	t := GetTheme(theme)
	return Model{
		world:   w,
		canvas:  NewCanvas(defaultCols, defaultCols/2),
		fps:     fps,
		running: true,
		history: make([]float64, 0, historyCapacity),
		theme:   t,
		styles:  t.styles(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = m.theme.styles()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if p, ok := m.toWorld(msg.X, msg.Y); ok {
			m.pointer, m.pointing = p, true
			m.world.OnPointerMove(p.X, p.Y)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.world.OnTick()
	if len(m.history) == historyCapacity {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, float64(m.world.LastStats().Resolutions))
}

// resize fits a square domain into the space left of the stats panel. A
// braille cell is two dots wide and four high, so the canvas is twice as
// many characters wide as it is tall.
func (m *Model) resize(width, height int) {
	cols := width - statsWidth - 2*canvasPadX
	if byHeight := (height - 2*canvasPadY) * 2; byHeight < cols {
		cols = byHeight
	}
	if cols < minCols {
		cols = minCols
	}
	cols -= cols % 2
	m.canvas = NewCanvas(cols, cols/2)
}

// toWorld maps a terminal cell to world space, aiming at the middle of the
// character. It reports false outside the canvas.
func (m Model) toWorld(x, y int) (particle.Vec2, bool) {
	col, row := x-canvasPadX, y-canvasPadY
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return particle.Vec2{}, false
	}
	extent := m.world.Geometry().Extent()
	half := extent / 2
	fx := (float64(col) + 0.5) / float64(m.canvas.Width)
	fy := (float64(row) + 0.5) / float64(m.canvas.Height)
	return particle.V(fx*extent-half, half-fy*extent), true
}

// toDots maps world space to canvas dots.
func (m Model) toDots(p particle.Vec2) (int, int) {
	extent := m.world.Geometry().Extent()
	half := extent / 2
	x := (p.X + half) / extent * float64(m.canvas.DotsWide())
	y := (half - p.Y) / extent * float64(m.canvas.DotsHigh())
	return int(math.Floor(x)), int(math.Floor(y))
}

func (m *Model) draw() {
	m.canvas.Clear()

	// the ring of border cells is never scanned; outline the inner edge
	g := m.world.Geometry()
	inner := g.Extent()/2 - g.Diameter()
	x0, y0 := m.toDots(particle.V(-inner, inner))
	x1, y1 := m.toDots(particle.V(inner, -inner))
	m.canvas.DrawRect(x0, y0, x1, y1)

	r := int(math.Round(g.Radius / g.Extent() * float64(m.canvas.DotsWide())))
	for _, p := range m.world.Particles() {
		x, y := m.toDots(p)
		m.canvas.DrawCircle(x, y, r)
	}
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	var s strings.Builder
	s.WriteString(st.header.Render("JOSTLE") + "\n")
	if m.running {
		s.WriteString(st.status.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("resolutions / tick"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	last := m.world.LastStats()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Elements", fmt.Sprintf("%d", m.world.ParticleCount()))
	row("Tick", fmt.Sprintf("%d", m.world.Ticks()))
	row("Pairs", fmt.Sprintf("%d", last.PairsTested))
	row("Resolved", fmt.Sprintf("%d", last.Resolutions))
	if last.ZeroDistance > 0 {
		row("Coincident", fmt.Sprintf("%d", last.ZeroDistance))
	}
	if m.pointing {
		row("Pointer", fmt.Sprintf("%.0f, %.0f", m.pointer.X, m.pointer.Y))
	}

	s.WriteString(st.help.Render("─────────────────────\nMOUSE:Add  SP:Pause  .:Step\nT:Theme  ?:Help  Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.canvas.String()), st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Every move adds particle ║
║  Space    - Pause/Resume ticking     ║
║  .        - Single tick while paused ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run opens the live view on w until the user quits.
func Run(w *dynamo.World, fps int, theme string) error {
	p := tea.NewProgram(NewModel(w, fps, theme), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
