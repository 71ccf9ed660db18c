// Package studio 是交互核心的应用上下文：持有文本、排版参数、字形序列、
// 文本框控制器、场景与分派器，并把它们按帧串联起来。
//
// Studio 不是并发安全的，所有方法都应在同一个事件循环中调用。
package studio

import (
	"fmt"

	"github.com/ByLCY/typeforce/force"
	"github.com/ByLCY/typeforce/frame"
	"github.com/ByLCY/typeforce/interact"
	"github.com/ByLCY/typeforce/layout"
	"github.com/ByLCY/typeforce/scene"
)

// Options 是创建 Studio 所需的初始状态。
type Options struct {
	Width, Height float64
	Text          string
	Frame         layout.Rect
	Typography    layout.Typography
	Field         force.Params
	Interact      interact.Options
	// UIColor 是文本框、手柄与力场示意的描边颜色。
	UIColor layout.Color
}

// Studio 串联排版、力场与交互。
type Studio struct {
	opts     Options
	measurer layout.Measurer
	graph    scene.Graph
	frame    *frame.Controller
	input    *interact.Dispatcher

	text   string
	typo   layout.Typography
	glyphs []layout.Glyph
	nodes  []scene.NodeID

	frameNode  scene.NodeID
	handleNode scene.NodeID
	circleNode scene.NodeID
	squareNode scene.NodeID

	visualRadius float64
	center       layout.Point
	// reflowed 记录自上一帧以来是否发生过重排；发生过则本帧不施加力场。
	reflowed bool
	hidden   bool
}

// New 创建 Studio 并完成首次排版。g 为 nil 时使用内存场景。
func New(opts Options, m layout.Measurer, g scene.Graph) (*Studio, error) {
	if m == nil {
		return nil, fmt.Errorf("studio: 缺少字形测量器")
	}
	if err := opts.Typography.Validate(); err != nil {
		return nil, fmt.Errorf("studio: %w", err)
	}
	if g == nil {
		g = scene.NewMemory()
	}
	s := &Studio{
		opts:         opts,
		measurer:     m,
		graph:        g,
		text:         opts.Text,
		typo:         opts.Typography,
		visualRadius: opts.Field.Radius,
		center:       opts.Frame.TopLeft(),
	}
	fc, err := frame.New(opts.Frame, s)
	if err != nil {
		return nil, fmt.Errorf("studio: %w", err)
	}
	s.frame = fc
	s.input = interact.New(fc, g, s, nil, opts.Field, opts.Interact)

	b := fc.Bounds()
	s.frameNode = g.AddNode(scene.Node{Kind: scene.KindFrame, Bounds: b, Visible: true, Hittable: true})
	s.handleNode = g.AddNode(scene.Node{Kind: scene.KindHandle, Bounds: fc.HandleRect(), Visible: true, Hittable: true})
	s.circleNode = g.AddNode(scene.Node{Kind: scene.KindFieldCircle, Bounds: layout.RectAround(s.center, s.visualRadius)})
	s.squareNode = g.AddNode(scene.Node{Kind: scene.KindFieldSquare, Bounds: layout.RectAround(s.center, s.visualRadius)})
	s.syncVisuals()

	if err := s.Reflow(); err != nil {
		return nil, err
	}
	s.reflowed = false
	return s, nil
}

// Input 返回事件分派器，前端把指针、滚轮与按键事件交给它。
func (s *Studio) Input() *interact.Dispatcher { return s.input }

// Frame 推进一帧：最多施加一次力场采样。
// 若上一帧以来发生过重排，本帧只清除标记，采样保留到下一帧。
func (s *Studio) Frame() bool {
	if s.reflowed {
		s.reflowed = false
		return false
	}
	return s.input.Flush()
}

// Reflow 按当前文本、文本框与排版参数重新排版，替换全部字形与字形节点。
func (s *Studio) Reflow() error {
	m := s.measurer
	if fm, ok := m.(layout.FontMeasurer); ok {
		m = fm.ForFont(s.typo.Font)
	}
	glyphs, err := layout.Layout(s.text, s.frame.Bounds(), s.typo, m)
	if err != nil {
		return fmt.Errorf("studio: 重排失败: %w", err)
	}
	for _, id := range s.nodes {
		s.graph.RemoveNode(id)
	}
	s.nodes = s.nodes[:0]
	s.glyphs = glyphs
	for i := range s.glyphs {
		g := &s.glyphs[i]
		id := s.graph.AddNode(scene.Node{
			Kind:     scene.KindGlyph,
			Bounds:   s.glyphBounds(*g),
			Char:     g.Char,
			Rotation: g.Rotation,
			Visible:  true,
			Hittable: true,
		})
		s.nodes = append(s.nodes, id)
	}
	s.graph.Raise(s.frameNode)
	s.graph.Raise(s.handleNode)
	s.reflowed = true
	Logger().Debug("studio: reflow", "glyphs", len(s.glyphs), "frame", s.frame.Bounds())
	return nil
}

func (s *Studio) glyphBounds(g layout.Glyph) layout.Rect {
	return layout.Rect{
		X:      g.Pos.X,
		Y:      g.Pos.Y - s.typo.BaselineOffset(),
		Width:  g.Advance,
		Height: s.typo.FontSize,
	}
}

func (s *Studio) syncGlyphNodes() {
	for i, id := range s.nodes {
		g := s.glyphs[i]
		s.graph.Place(id, s.glyphBounds(g), g.Rotation)
	}
}

// Glyphs 返回当前字形的副本。
func (s *Studio) Glyphs() []layout.Glyph {
	out := make([]layout.Glyph, len(s.glyphs))
	copy(out, s.glyphs)
	return out
}

func (s *Studio) Bounds() layout.Rect           { return s.frame.Bounds() }
func (s *Studio) Typography() layout.Typography { return s.typo }
func (s *Studio) Graph() scene.Graph            { return s.graph }
func (s *Studio) Size() (width, height float64) { return s.opts.Width, s.opts.Height }
func (s *Studio) FieldCenter() layout.Point     { return s.center }
func (s *Studio) State() interact.State         { return s.input.State() }
func (s *Studio) FieldParams() force.Params     { return s.input.Params() }
func (s *Studio) Controller() *frame.Controller { return s.frame }

// UIColor 返回界面元素的描边颜色。
func (s *Studio) UIColor() layout.Color { return s.opts.UIColor }

// Text 返回当前文本。
func (s *Studio) Text() string { return s.text }

// SetText 替换文本并重排。
func (s *Studio) SetText(text string) {
	s.text = text
	if err := s.Reflow(); err != nil {
		Logger().Warn("studio: 设置文本后重排失败", "err", err)
	}
}

// SetTypography 替换排版参数并重排；参数无效时保留上一次的有效值。
func (s *Studio) SetTypography(t layout.Typography) error {
	if err := t.Validate(); err != nil {
		Logger().Warn("studio: 忽略无效排版参数", "err", err)
		return fmt.Errorf("studio: %w", err)
	}
	s.typo = t
	return s.Reflow()
}

// SetFrame 直接设置文本框并重排。
func (s *Studio) SetFrame(r layout.Rect) error {
	if s.input.State() != interact.Idle {
		return fmt.Errorf("studio: 当前状态 %v 不能设置文本框", s.input.State())
	}
	if !s.frame.SetBounds(r) {
		return nil
	}
	s.placeFrame(s.frame.Bounds())
	return s.Reflow()
}

func (s *Studio) placeFrame(b layout.Rect) {
	s.graph.Place(s.frameNode, b, 0)
	s.graph.Place(s.handleNode, s.frame.HandleRect(), 0)
}

// Resized 实现 frame.Hooks：缩放时同步重排。
func (s *Studio) Resized(b layout.Rect) {
	s.placeFrame(b)
	if err := s.Reflow(); err != nil {
		Logger().Warn("studio: 缩放后重排失败", "err", err)
	}
}

// Moved 实现 frame.Hooks：拖动过程中只移动文本框与手柄。
func (s *Studio) Moved(b layout.Rect) { s.placeFrame(b) }

// Released 实现 frame.Hooks：只把拖动位移加到每个字形的当前位置，
// 力场造成的相对错位随之保留；Base 仍是上次重排的位置，下次重排时才更新。
func (s *Studio) Released(delta layout.Point) {
	for i := range s.glyphs {
		s.glyphs[i].Pos = s.glyphs[i].Pos.Add(delta)
	}
	s.syncGlyphNodes()
	Logger().Debug("studio: drag released", "delta", delta)
}

// ApplyField 实现 interact.Target：对字形施加一帧力场并移动力场示意。
func (s *Studio) ApplyField(f force.Field) {
	n := force.Apply(s.glyphs, f)
	if n > 0 {
		s.syncGlyphNodes()
	}
	s.center = f.Center
	s.placeVisuals()
}

// FieldChanged 实现 interact.Target：按形状切换示意的可见性，并按新半径缩放示意。
func (s *Studio) FieldChanged(p force.Params) {
	k := radiusScale(s.visualRadius, p.Radius)
	s.visualRadius *= k
	if s.visualRadius <= 0 {
		s.visualRadius = p.Radius
	}
	s.placeVisuals()
	s.syncVisuals()
	Logger().Debug("studio: field changed",
		"shape", p.Shape, "mode", p.Mode, "radius", p.Radius,
		"strength", p.Strength, "direction", p.Direction)
}

// StateChanged 实现 interact.Target：文本编辑期间隐藏文本框、手柄与力场示意。
func (s *Studio) StateChanged(from, to interact.State) {
	if to == interact.TextEditing {
		s.setOverlaysVisible(false)
	} else if from == interact.TextEditing {
		s.setOverlaysVisible(true)
	}
	Logger().Debug("studio: state", "from", from, "to", to)
}

func (s *Studio) placeVisuals() {
	r := layout.RectAround(s.center, s.visualRadius)
	s.graph.Place(s.circleNode, r, 0)
	s.graph.Place(s.squareNode, r, 0)
}

func (s *Studio) syncVisuals() {
	square := s.input.Params().Shape == force.Square
	s.graph.SetVisible(s.circleNode, !s.hidden && !square)
	s.graph.SetVisible(s.squareNode, !s.hidden && square)
}

func (s *Studio) setOverlaysVisible(v bool) {
	s.hidden = !v
	s.graph.SetVisible(s.frameNode, v)
	s.graph.SetVisible(s.handleNode, v)
	s.syncVisuals()
}

// radiusScale 返回力场示意从 cur 缩放到 next 的比例；cur 为 0 时返回 1。
func radiusScale(cur, next float64) float64 {
	if cur <= 0 || !layout.Finite(next) {
		return 1
	}
	return next / cur
}
