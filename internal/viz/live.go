package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/wavepkt/internal/packet"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	maxSpeed        = 64
)

// Display modes.
const (
	ModeWave     = "wave"
	ModeSpectrum = "spectrum"
	ModeAll      = "all"
)

var modes = []string{ModeWave, ModeSpectrum, ModeAll}

type TickMsg time.Time

// Options configure the live view. A zero Step uses the packet's frame step.
type Options struct {
	Mode  string
	Axis  packet.AxisConvention
	FPS   int
	Step  float64
	Theme string
}

// Model animates one packet. Frame i is rendered at t = i*step, so stepping
// backwards re-evaluates the same frames.
type Model struct {
	pkt   *packet.Packet
	step  float64
	fps   int
	frame int
	speed int

	mode     string
	axis     packet.AxisConvention
	axisVals []float64
	axisErr  error

	wave     []float64
	spectrum []float64
	err      error
	peak     float64

	energyHistory []float64
	theme         Theme
	running       bool
	showHelp      bool
}

func NewModel(p *packet.Packet, opts Options) (Model, error) {
	step := opts.Step
	if step <= 0 {
		s, err := p.FrameStep()
		if err != nil {
			return Model{}, err
		}
		step = s
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeAll
	}
	if !validMode(mode) {
		return Model{}, &packet.ConfigurationError{Option: "mode", Value: mode}
	}

	m := Model{
		pkt:           p,
		step:          step,
		fps:           fps,
		speed:         1,
		mode:          mode,
		wave:          make([]float64, p.Points()),
		energyHistory: make([]float64, 0, historyCapacity),
		theme:         GetTheme(opts.Theme),
		running:       true,
	}
	m.setAxis(opts.Axis)
	m.compute()
	m.record()
	return m, nil
}

func validMode(mode string) bool {
	for _, md := range modes {
		if md == mode {
			return true
		}
	}
	return false
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "m":
			m.cycleMode()
		case "a":
			if m.axis == packet.AxisPosition {
				m.setAxis(packet.AxisLegacy)
			} else {
				m.setAxis(packet.AxisPosition)
			}
		case "t":
			m.theme = NextTheme(m.theme)
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "[":
			if m.frame > 0 {
				m.frame--
				m.compute()
			}
		case "]":
			m.frame++
			m.compute()
			m.record()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.frame += m.speed
			m.compute()
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

// Time is the simulated time of the current frame.
func (m Model) Time() float64 { return float64(m.frame) * m.step }

func (m *Model) compute() {
	t := m.Time()
	m.pkt.WaveInto(m.wave, t)

	if hi := math.Max(floats.Max(m.wave), -floats.Min(m.wave)); hi > m.peak {
		m.peak = hi
	}

	m.spectrum, m.err = nil, nil
	if m.mode != ModeWave {
		m.spectrum, m.err = packet.NormalizedPowerSpectrum(m.wave)
	}
}

// record appends the current frame's energy to the history chart. It is
// called only when the frame index moves forward or restarts.
func (m *Model) record() {
	m.energyHistory = append(m.energyHistory, floats.Dot(m.wave, m.wave)/float64(len(m.wave)))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.frame = 0
	m.peak = 0
	m.energyHistory = m.energyHistory[:0]
	m.compute()
	m.record()
}

func (m *Model) cycleMode() {
	for i, md := range modes {
		if md == m.mode {
			m.mode = modes[(i+1)%len(modes)]
			break
		}
	}
	m.compute()
}

func (m *Model) setAxis(conv packet.AxisConvention) {
	m.axis = conv
	m.axisVals, m.axisErr = m.pkt.SpectrumAxis(conv)
}

// plotBins returns the positive-frequency bins of s, without the DC bin.
func plotBins(s []float64) []float64 {
	lo, hi := packet.PositiveBins(len(s))
	return s[lo:hi]
}

// dominant returns the frequency of the strongest positive bin.
func (m Model) dominant() (float64, bool) {
	lo, hi := packet.PositiveBins(len(m.spectrum))
	if hi <= lo || m.axisErr != nil || len(m.axisVals) != len(m.spectrum) {
		return 0, false
	}
	return math.Abs(m.axisVals[lo+floats.MaxIdx(m.spectrum[lo:hi])]), true
}

// WaveCanvas plots wave on a w x h cell canvas around a zero line, scaled
// so that -peak and peak touch the edges. A non-positive peak scales to the
// wave's own extremes.
func WaveCanvas(wave []float64, peak float64, w, h int) *Canvas {
	c := NewCanvas(w, h)
	ch := h * 4
	c.HLine(ch / 2)
	if peak <= 0 && len(wave) > 0 {
		peak = math.Max(floats.Max(wave), -floats.Min(wave))
	}
	if peak <= 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		peak = 1
	}
	c.PlotSeries(wave, -peak, peak, 0, ch)
	return c
}

func (m Model) drawWave(h int) string {
	c := WaveCanvas(m.wave, m.peak, width, h)
	return lipgloss.NewStyle().Foreground(m.theme.Wave).Render(c.String())
}

func (m Model) drawSpectrum(h int) string {
	if m.err != nil {
		return m.palette().warning.Render(m.err.Error())
	}
	c := NewCanvas(width, h)
	c.PlotSeries(plotBins(m.spectrum), 0, 1, 0, h*4)
	return lipgloss.NewStyle().Foreground(m.theme.Spectrum).Render(c.String())
}

// palette is the stats panel styled with the current theme.
type palette struct {
	header, label, value, hint, paused, warning lipgloss.Style
}

func (m Model) palette() palette {
	return palette{
		header:  HeaderStyle.Foreground(m.theme.Accent),
		label:   MetricLabel.Foreground(m.theme.Muted),
		value:   MetricValue.Foreground(m.theme.Text),
		hint:    KeyHint.Foreground(m.theme.Muted),
		paused:  StatusPaused.Foreground(m.theme.Warning),
		warning: StatusError.Foreground(m.theme.Warning),
	}
}

func (m Model) View() string {
	var plots string
	switch m.mode {
	case ModeWave:
		plots = m.drawWave(height)
	case ModeSpectrum:
		plots = m.drawSpectrum(height)
	default:
		plots = lipgloss.JoinVertical(lipgloss.Left, m.drawWave(height/2), m.drawSpectrum(height/2))
	}
	canvasView := canvasStyle.Render(plots)

	law := m.pkt.Law()
	pal := m.palette()
	var s strings.Builder
	s.WriteString(pal.header.Render(strings.ToUpper(law.String())+"  "+law.Relation()) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(pal.warning.Render("DEGENERATE") + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(pal.paused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(pal.label.Render(label) + pal.value.Render(value) + "\n")
	}
	row("Components", fmt.Sprintf("%d", m.pkt.Len()))
	if law.UsesC() {
		row("c", fmt.Sprintf("%g", m.pkt.C()))
	}
	if law == packet.SBCK2 {
		row("b", fmt.Sprintf("%g", m.pkt.B()))
	}
	row("Time", fmt.Sprintf("%.5f", m.Time()))
	row("Frame", fmt.Sprintf("%d", m.frame))
	row("Step", fmt.Sprintf("%g x%d", m.step, m.speed))
	row("Axis", m.axis.String())
	if f, ok := m.dominant(); ok {
		row("Dominant", fmt.Sprintf("%.4g", f))
	} else {
		row("Dominant", "-")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(m.energyHistory, 30) + "\n")
	}

	s.WriteString(pal.hint.Render("SP:Pause R:Reset Q:Quit\nM:Mode A:Axis T:Theme\n+/-:Speed [ ]:Step ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset to t = 0           ║
║  Q        - Quit                     ║
║  M        - Cycle wave/spectrum/all  ║
║  A        - Toggle axis convention   ║
║  T        - Cycle themes             ║
║  + / -    - Double/halve speed       ║
║  [ / ]    - Step one frame           ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
