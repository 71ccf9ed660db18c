// Package tui 是基于 bubbletea 的终端前端：把鼠标单元映射为场景坐标，
// 以固定帧率推进 Studio，并提供导出与复制。
package tui

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/typeforce/interact"
	"github.com/ByLCY/typeforce/renderer"
	"github.com/ByLCY/typeforce/studio"
)

// 强度与字号键每次调整的步长，字号不小于 minFontSize。
const (
	strengthStep = 0.01
	fontStep     = 2.0
	minFontSize  = 4.0
)

// Options 配置终端前端。CellWidth/CellHeight 任一为 0 时按窗口大小适配单元尺寸。
type Options struct {
	CellWidth  float64
	CellHeight float64
	FPS        int
	// Export 用于 e 键导出到 OutPath；Clipboard 用于 y 键复制 SVG。
	Export    renderer.Renderer
	OutPath   string
	Clipboard renderer.Renderer
}

// Run 启动终端前端，直到用户退出。
func Run(s *studio.Studio, opts Options) error {
	m := newModel(s, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

type tickMsg time.Time

var statusStyle = lipgloss.NewStyle().Faint(true)

// editor 让 textarea 充当分派器的文本编辑协作方：esc 结束编辑时提交内容。
type editor struct {
	ta textarea.Model
}

func (e *editor) Begin(current string) {
	e.ta.SetValue(current)
	e.ta.Focus()
}

func (e *editor) End() (string, bool) {
	e.ta.Blur()
	return e.ta.Value(), true
}

type model struct {
	s      *studio.Studio
	opts   Options
	cs     cellSize
	keys   keyMap
	help   help.Model
	ed     *editor
	styles styles

	fit        bool
	cols, rows int
	status     string
	interval   time.Duration
}

func newModel(s *studio.Studio, opts Options) *model {
	fit := opts.CellWidth <= 0 || opts.CellHeight <= 0
	if fit {
		opts.CellWidth, opts.CellHeight = 10, 20
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	ta := textarea.New()
	ta.Placeholder = "text"
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ed := &editor{ta: ta}
	s.Input().SetEditor(ed)

	w, h := s.Size()
	typo := s.Typography()
	return &model{
		s:        s,
		opts:     opts,
		cs:       cellSize{w: opts.CellWidth, h: opts.CellHeight},
		keys:     newKeyMap(),
		help:     help.New(),
		ed:       ed,
		styles:   newStyles(typo.Color, s.UIColor()),
		fit:      fit,
		cols:     int(w / opts.CellWidth),
		rows:     int(h / opts.CellHeight),
		interval: time.Second / time.Duration(opts.FPS),
	}
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd { return m.tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.s.Frame()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height - 3
		if m.rows < 1 {
			m.rows = 1
		}
		if m.fit && m.cols > 0 {
			w, h := m.s.Size()
			m.cs = cellSize{w: w / float64(m.cols), h: h / float64(m.rows)}
		}
		m.ed.ta.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m *model) mouse(msg tea.MouseMsg) {
	in := m.s.Input()
	p := m.cs.toScene(msg.X, msg.Y)
	mods := interact.Modifiers{Constrain: msg.Shift}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			in.Wheel(-1)
		case tea.MouseButtonWheelDown:
			in.Wheel(1)
		case tea.MouseButtonLeft:
			in.PointerDown(p, mods)
		}
	case tea.MouseActionRelease:
		in.PointerUp(p)
	case tea.MouseActionMotion:
		in.PointerMove(p, mods)
	}
}

func (m *model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.s.Input()
	if in.State() == interact.TextEditing {
		if key.Matches(msg, m.keys.Done) {
			in.Key("esc")
			m.status = "text updated"
			return m, nil
		}
		var cmd tea.Cmd
		m.ed.ta, cmd = m.ed.ta.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Export):
		m.status = m.export()
	case key.Matches(msg, m.keys.Copy):
		m.status = m.copySVG()
	case key.Matches(msg, m.keys.Stronger):
		m.adjustStrength(strengthStep)
	case key.Matches(msg, m.keys.Weaker):
		m.adjustStrength(-strengthStep)
	case key.Matches(msg, m.keys.Bigger):
		m.adjustFontSize(fontStep)
	case key.Matches(msg, m.keys.Smaller):
		m.adjustFontSize(-fontStep)
	default:
		if in.Key(msg.String()) && in.State() == interact.TextEditing {
			return m, textarea.Blink
		}
	}
	return m, nil
}

// adjustStrength 调整力场强度，强度不低于 0。
func (m *model) adjustStrength(d float64) {
	v := math.Max(0, m.s.FieldParams().Strength+d)
	m.s.Input().SetStrength(v)
	m.status = fmt.Sprintf("strength %.2f", v)
}

// adjustFontSize 调整字号并重排文本。
func (m *model) adjustFontSize(d float64) {
	t := m.s.Typography()
	t.FontSize = math.Max(minFontSize, t.FontSize+d)
	if err := m.s.SetTypography(t); err != nil {
		m.status = "font: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("font %.0fpx", t.FontSize)
}

func (m *model) export() string {
	if m.opts.Export == nil || m.opts.OutPath == "" {
		return "export: no output configured"
	}
	data, err := m.s.Export(m.opts.Export)
	if err != nil {
		return "export: " + err.Error()
	}
	if err := os.WriteFile(m.opts.OutPath, data, 0o644); err != nil {
		return "export: " + err.Error()
	}
	return "exported " + m.opts.OutPath
}

func (m *model) copySVG() string {
	if m.opts.Clipboard == nil {
		return "copy: no svg renderer"
	}
	data, err := m.s.Export(m.opts.Clipboard)
	if err != nil {
		return "copy: " + err.Error()
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return "copy: " + err.Error()
	}
	return fmt.Sprintf("copied %d bytes of svg", len(data))
}

func (m *model) View() string {
	g := renderGrid(m.s.Snapshot(), m.cols, m.rows, m.cs)
	out := g.render(m.styles)
	out += "\n" + statusStyle.Render(m.statusLine())
	if m.s.State() == interact.TextEditing {
		out += "\n" + m.ed.ta.View()
	} else {
		out += "\n" + m.help.View(m.keys)
	}
	return out
}

func (m *model) statusLine() string {
	p := m.s.FieldParams()
	line := fmt.Sprintf("%s | %s %s r=%.0f s=%.2f", m.s.State(), p.Shape, p.Mode, p.Radius, p.Strength)
	if cursor := m.s.Input().Cursor(); cursor != "default" {
		line += " " + cursor
	}
	if m.status != "" {
		line += " | " + m.status
	}
	return line
}
