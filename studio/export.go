package studio

import (
	"fmt"

	"github.com/ByLCY/typeforce/force"
	"github.com/ByLCY/typeforce/layout"
	"github.com/ByLCY/typeforce/renderer"
	"github.com/ByLCY/typeforce/scene"
)

// Snapshot 返回当前画面：字形、文本框以及当前可见的界面元素。
func (s *Studio) Snapshot() *layout.Snapshot {
	snap := &layout.Snapshot{
		Width:      s.opts.Width,
		Height:     s.opts.Height,
		Text:       s.text,
		Typography: s.typo,
		Frame:      s.frame.Bounds(),
		Glyphs:     s.Glyphs(),
	}
	ui := s.opts.UIColor
	if n, ok := s.node(s.frameNode); ok && n.Visible {
		snap.Rects = append(snap.Rects, layout.Shape{
			X: n.Bounds.X, Y: n.Bounds.Y, Width: n.Bounds.Width, Height: n.Bounds.Height,
			StrokeColor: ui, StrokeWidth: 1,
		})
	}
	if n, ok := s.node(s.handleNode); ok && n.Visible {
		fill := ui
		snap.Rects = append(snap.Rects, layout.Shape{
			X: n.Bounds.X, Y: n.Bounds.Y, Width: n.Bounds.Width, Height: n.Bounds.Height,
			StrokeColor: ui, StrokeWidth: 1, FillColor: &fill,
		})
	}
	if n, ok := s.node(s.circleNode); ok && n.Visible {
		c := n.Bounds.Center()
		snap.Circles = append(snap.Circles, layout.Circle{
			CX: c.X, CY: c.Y, R: n.Bounds.Width / 2,
			StrokeColor: ui, StrokeWidth: 1, Dashed: true,
		})
	}
	if n, ok := s.node(s.squareNode); ok && n.Visible {
		snap.Rects = append(snap.Rects, layout.Shape{
			X: n.Bounds.X, Y: n.Bounds.Y, Width: n.Bounds.Width, Height: n.Bounds.Height,
			StrokeColor: ui, StrokeWidth: 1, Dashed: true,
		})
	}
	return snap
}

// node 读取场景节点；场景实现不提供节点读取时只根据包围盒与记录的可见性重建。
func (s *Studio) node(id scene.NodeID) (scene.Node, bool) {
	if m, ok := s.graph.(interface {
		Node(scene.NodeID) (scene.Node, bool)
	}); ok {
		return m.Node(id)
	}
	b, ok := s.graph.Bounds(id)
	if !ok {
		return scene.Node{}, false
	}
	return scene.Node{ID: id, Bounds: b, Visible: s.visible(id)}, true
}

func (s *Studio) visible(id scene.NodeID) bool {
	square := s.input.Params().Shape == force.Square
	switch id {
	case s.frameNode, s.handleNode:
		return !s.hidden
	case s.circleNode:
		return !s.hidden && !square
	case s.squareNode:
		return !s.hidden && square
	}
	return true
}

// Export 隐藏文本框、手柄与力场示意，生成快照交给渲染器，最后恢复可见性。
func (s *Studio) Export(r renderer.Renderer) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("studio: 缺少渲染器")
	}
	prev := s.hidden
	s.setOverlaysVisible(false)
	defer s.setOverlaysVisible(!prev)

	snap := s.Snapshot()
	data, err := r.Render(snap)
	if err != nil {
		return nil, fmt.Errorf("studio: 导出失败: %w", err)
	}
	Logger().Debug("studio: export", "glyphs", len(snap.Glyphs), "bytes", len(data))
	return data, nil
}
