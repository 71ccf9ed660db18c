package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 该文件定义排版结果与几何描述，供排版、力场、交互、渲染与调试 JSON 共用。
// 坐标单位统一为画布像素（px），原点在左上角，y 轴向下。

// Point 表示画布上的一个点或位移向量。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt 是构造 Point 的简写。
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point    { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point  { return Point{p.X * f, p.Y * f} }
func (p Point) Len() float64         { return math.Hypot(p.X, p.Y) }
func (p Point) IsZero() bool         { return p.X == 0 && p.Y == 0 }
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }
func (p Point) Finite() bool         { return isFinite(p.X) && isFinite(p.Y) }

// Norm 返回单位向量；零向量返回零向量。
func (p Point) Norm() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Rect 是轴对齐矩形，X/Y 为左上角。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectAround 返回以 c 为中心、半边长为 half 的正方形。
func RectAround(c Point, half float64) Rect {
	return Rect{X: c.X - half, Y: c.Y - half, Width: 2 * half, Height: 2 * half}
}

func (r Rect) Left() float64      { return r.X }
func (r Rect) Top() float64       { return r.Y }
func (r Rect) Right() float64     { return r.X + r.Width }
func (r Rect) Bottom() float64    { return r.Y + r.Height }
func (r Rect) TopLeft() Point     { return Point{r.X, r.Y} }
func (r Rect) BottomRight() Point { return Point{r.Right(), r.Bottom()} }
func (r Rect) Center() Point      { return Point{r.X + r.Width/2, r.Y + r.Height/2} }
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Contains 判断点是否在矩形内（含边界）。
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Inset 向外（d>0）或向内（d<0）扩展矩形，用于带容差的命中测试。
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{}
)

// Typography 是一次重排期间保持不变的排版参数。
type Typography struct {
	FontSize   float64 `json:"fontSize"`   // px
	LineHeight float64 `json:"lineHeight"` // 行高倍数，行距 = FontSize * LineHeight
	TrackingEm float64 `json:"trackingEm"` // 字间距，单位 em（FontSize 的倍数）
	Color      Color   `json:"color"`
	Font       string  `json:"font,omitempty"` // 字体资源名，例如 builtin:go-regular
	// Baseline 为行顶到基线的偏移倍数；<=0 时使用 DefaultBaseline。
	Baseline float64 `json:"baseline,omitempty"`
}

// Tracking 返回以 px 计的字间距。
func (t Typography) Tracking() float64 { return t.TrackingEm * t.FontSize }

// LineAdvance 返回行距（px）。
func (t Typography) LineAdvance() float64 { return t.FontSize * t.LineHeight }

// BaselineOffset 返回行顶到字形放置点的纵向偏移（px）。
func (t Typography) BaselineOffset() float64 {
	f := t.Baseline
	if f <= 0 || !isFinite(f) {
		f = DefaultBaseline
	}
	return t.FontSize * f
}

// Glyph 表示一个已排好位置的字符。
// Base 只在重排时写入，Pos/Rotation 由力场逐帧和拖动释放原地修改。
type Glyph struct {
	Char     rune    `json:"char"`
	Base     Point   `json:"base"`
	Pos      Point   `json:"pos"`
	Rotation float64 `json:"rotation"` // 角度（度）
	Advance  float64 `json:"advance"`
	Line     int     `json:"line"`
	Word     int     `json:"word"`
}

// Offset 返回当前位置相对上次重排位置的位移（力场与拖动之和）。
func (g Glyph) Offset() Point { return g.Pos.Sub(g.Base) }

// Snapshot 是导出与调试使用的完整画面快照。
type Snapshot struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Text       string     `json:"text"`
	Typography Typography `json:"typography"`
	Frame      Rect       `json:"frame"`
	Glyphs     []Glyph    `json:"glyphs"`
	// 仅包含当前可见的界面元素（文本框、手柄、力场示意）。
	Rects   []Shape  `json:"rects,omitempty"`
	Circles []Circle `json:"circles,omitempty"`
}

// Shape 表示一个矩形界面元素（不包含圆角）。
type Shape struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"` // 为空表示不填充
	Dashed      bool    `json:"dashed,omitempty"`
}

// Circle 表示一个圆。
type Circle struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"`
	Dashed      bool    `json:"dashed,omitempty"`
}

// ParseColor 解析 #rgb、#rrggbb 或 white/black。
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || len(hex) == len(s) {
		return Color{}, fmt.Errorf("layout: 无效颜色 %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("layout: 无效颜色 %q: %w", s, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }
