package tui

import (
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/typeforce/layout"
)

type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindUI
	kindField
	kindGlyph
)

type cell struct {
	r    rune
	kind cellKind
}

// grid 是按字符单元栅格化的画面，行优先。
type grid struct {
	cols, rows int
	cells      []cell
}

func newGrid(cols, rows int) *grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g := &grid{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
	return g
}

func (g *grid) set(col, row int, r rune, k cellKind) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = cell{r: r, kind: k}
}

func (g *grid) at(col, row int) cell { return g.cells[row*g.cols+col] }

// Lines 返回不带样式的文本行。
func (g *grid) Lines() []string {
	out := make([]string, g.rows)
	var sb strings.Builder
	for row := 0; row < g.rows; row++ {
		sb.Reset()
		for col := 0; col < g.cols; col++ {
			sb.WriteRune(g.at(col, row).r)
		}
		out[row] = sb.String()
	}
	return out
}

// cellSize 是一个字符单元对应的场景像素。
type cellSize struct {
	w, h float64
}

func (cs cellSize) col(x float64) int { return int(math.Floor(x / cs.w)) }
func (cs cellSize) row(y float64) int { return int(math.Floor(y / cs.h)) }

// toScene 返回字符单元中心的场景坐标。
func (cs cellSize) toScene(col, row int) layout.Point {
	return layout.Pt((float64(col)+0.5)*cs.w, (float64(row)+0.5)*cs.h)
}

// renderGrid 把快照栅格化到 cols×rows 的字符网格：先画界面元素，再画字形。
func renderGrid(snap *layout.Snapshot, cols, rows int, cs cellSize) *grid {
	g := newGrid(cols, rows)
	if snap == nil || cs.w <= 0 || cs.h <= 0 {
		return g
	}
	for _, s := range snap.Rects {
		kind := kindUI
		if s.Dashed {
			kind = kindField
		}
		if s.FillColor != nil {
			fillRect(g, cs, s, '■', kind)
			continue
		}
		outlineRect(g, cs, s, kind)
	}
	for _, c := range snap.Circles {
		outlineCircle(g, cs, c)
	}
	// 字形按视觉中心定位：基线上移半个字号左右
	lift := snap.Typography.BaselineOffset() - snap.Typography.FontSize/2
	for _, gl := range snap.Glyphs {
		if unicode.IsSpace(gl.Char) || !gl.Pos.Finite() {
			continue
		}
		x := gl.Pos.X + gl.Advance/2
		y := gl.Pos.Y - lift
		g.set(cs.col(x), cs.row(y), gl.Char, kindGlyph)
	}
	return g
}

func fillRect(g *grid, cs cellSize, s layout.Shape, r rune, k cellKind) {
	c0, c1 := cs.col(s.X), cs.col(s.X+s.Width)
	r0, r1 := cs.row(s.Y), cs.row(s.Y+s.Height)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.set(col, row, r, k)
		}
	}
}

func outlineRect(g *grid, cs cellSize, s layout.Shape, k cellKind) {
	c0, c1 := cs.col(s.X), cs.col(s.X+s.Width)
	r0, r1 := cs.row(s.Y), cs.row(s.Y+s.Height)
	h, v := '─', '│'
	if s.Dashed {
		h, v = '╌', '╎'
	}
	for col := c0 + 1; col < c1; col++ {
		g.set(col, r0, h, k)
		g.set(col, r1, h, k)
	}
	for row := r0 + 1; row < r1; row++ {
		g.set(c0, row, v, k)
		g.set(c1, row, v, k)
	}
	g.set(c0, r0, '┌', k)
	g.set(c1, r0, '┐', k)
	g.set(c0, r1, '└', k)
	g.set(c1, r1, '┘', k)
}

// outlineCircle 标出圆周经过的单元；虚线圆隔一个单元画一个点。
func outlineCircle(g *grid, cs cellSize, c layout.Circle) {
	if !(c.R > 0) {
		return
	}
	tol := math.Max(cs.w, cs.h) / 2
	c0, c1 := cs.col(c.CX-c.R-tol), cs.col(c.CX+c.R+tol)
	r0, r1 := cs.row(c.CY-c.R-tol), cs.row(c.CY+c.R+tol)
	center := layout.Pt(c.CX, c.CY)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			d := cs.toScene(col, row).Dist(center)
			if math.Abs(d-c.R) > tol {
				continue
			}
			if c.Dashed && (col+row)%2 != 0 {
				continue
			}
			g.set(col, row, '·', kindField)
		}
	}
}

// styles 按单元类型着色。
type styles struct {
	glyph lipgloss.Style
	ui    lipgloss.Style
	field lipgloss.Style
}

func newStyles(glyph, ui layout.Color) styles {
	return styles{
		glyph: lipgloss.NewStyle().Foreground(lipgloss.Color(glyph.Hex())).Bold(true),
		ui:    lipgloss.NewStyle().Foreground(lipgloss.Color(ui.Hex())),
		field: lipgloss.NewStyle().Foreground(lipgloss.Color(ui.Hex())).Faint(true),
	}
}

func (st styles) of(k cellKind) (lipgloss.Style, bool) {
	switch k {
	case kindGlyph:
		return st.glyph, true
	case kindUI:
		return st.ui, true
	case kindField:
		return st.field, true
	default:
		return lipgloss.Style{}, false
	}
}

// render 把网格按连续同类单元分段着色。
func (g *grid) render(st styles) string {
	var sb strings.Builder
	var run strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		cur := kindEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if s, ok := st.of(cur); ok {
				sb.WriteString(s.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for col := 0; col < g.cols; col++ {
			c := g.at(col, row)
			if c.kind != cur {
				flush()
				cur = c.kind
			}
			run.WriteRune(c.r)
		}
		flush()
	}
	return sb.String()
}
