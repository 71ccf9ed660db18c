package scene

import (
	"testing"

	"github.com/ByLCY/typeforce/layout"
)

func TestRemoveIsIdempotent(t *testing.T) {
	m := NewMemory()
	id := m.AddNode(Node{Kind: KindGlyph, Visible: true})
	m.RemoveNode(id)
	m.RemoveNode(id)
	m.RemoveNode(NodeID(999))
	if m.Len() != 0 {
		t.Fatalf("期望场景为空，实际 %d 个节点", m.Len())
	}
}

func TestHitTestTopmostFirst(t *testing.T) {
	m := NewMemory()
	frame := m.AddNode(Node{Kind: KindFrame, Bounds: layout.Rect{X: 0, Y: 0, Width: 100, Height: 100}, Visible: true, Hittable: true})
	handle := m.AddNode(Node{Kind: KindHandle, Bounds: layout.Rect{X: 96, Y: 96, Width: 8, Height: 8}, Visible: true, Hittable: true})

	n, ok := m.HitTest(layout.Pt(98, 98), 0)
	if !ok || n.ID != handle {
		t.Fatalf("手柄位于最上层，应先命中手柄: %+v", n)
	}
	m.Raise(frame)
	n, _ = m.HitTest(layout.Pt(98, 98), 0)
	if n.ID != frame {
		t.Fatalf("Raise 之后应命中文本框: %+v", n)
	}
}

func TestHitTestTolerance(t *testing.T) {
	m := NewMemory()
	id := m.AddNode(Node{Kind: KindHandle, Bounds: layout.Rect{X: 10, Y: 10, Width: 8, Height: 8}, Visible: true, Hittable: true})
	if _, ok := m.HitTest(layout.Pt(22, 22), 0); ok {
		t.Fatalf("无容差时不应命中")
	}
	if n, ok := m.HitTest(layout.Pt(22, 22), 6); !ok || n.ID != id {
		t.Fatalf("容差 6 时应命中")
	}
}

func TestHiddenAndUnhittableSkipped(t *testing.T) {
	m := NewMemory()
	r := layout.Rect{Width: 50, Height: 50}
	body := m.AddNode(Node{Kind: KindFrame, Bounds: r, Visible: true, Hittable: true})
	m.AddNode(Node{Kind: KindFieldCircle, Bounds: r, Visible: true})
	hidden := m.AddNode(Node{Kind: KindHandle, Bounds: r, Visible: true, Hittable: true})
	m.SetVisible(hidden, false)

	n, ok := m.HitTest(layout.Pt(25, 25), 0)
	if !ok || n.ID != body {
		t.Fatalf("应跳过隐藏与不可命中的节点: %+v", n)
	}
}

func TestPlaceUpdatesBounds(t *testing.T) {
	m := NewMemory()
	id := m.AddNode(Node{Kind: KindGlyph})
	m.Place(id, layout.Rect{X: 5, Y: 6, Width: 7, Height: 8}, 30)
	n, ok := m.Node(id)
	if !ok || n.Bounds.X != 5 || n.Rotation != 30 {
		t.Fatalf("Place 未生效: %+v", n)
	}
	if _, ok := m.Bounds(NodeID(42)); ok {
		t.Fatalf("不存在的节点不应返回包围盒")
	}
}
