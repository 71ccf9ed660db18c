// Package scene 抽象出交互核心所需的二维场景能力：增删节点、调整层级、
// 可见性与带容差的命中测试。核心逻辑只依赖 Graph 接口，与具体渲染后端无关。
package scene

import "github.com/ByLCY/typeforce/layout"

// NodeID 标识场景中的一个节点。0 表示无效节点。
type NodeID int

// Kind 是节点的用途分类。
type Kind int

const (
	KindGlyph Kind = iota
	KindFrame
	KindHandle
	KindFieldCircle
	KindFieldSquare
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindHandle:
		return "handle"
	case KindFieldCircle:
		return "field-circle"
	case KindFieldSquare:
		return "field-square"
	default:
		return "glyph"
	}
}

// Node 是场景中的一个元素。Bounds 为轴对齐包围盒（不含旋转）。
type Node struct {
	ID       NodeID
	Kind     Kind
	Bounds   layout.Rect
	Char     rune
	Rotation float64
	Visible  bool
	// Hittable 为 false 的节点（例如力场示意）不参与命中测试。
	Hittable bool
}

// Graph 是交互核心消费的场景能力。
type Graph interface {
	// AddNode 将节点加到最上层并返回其 ID。
	AddNode(n Node) NodeID
	// RemoveNode 删除节点；删除不存在或已删除的节点是空操作。
	RemoveNode(id NodeID)
	// Raise 把节点移到最上层。
	Raise(id NodeID)
	// Place 更新节点位置与旋转。
	Place(id NodeID, bounds layout.Rect, rotation float64)
	SetVisible(id NodeID, visible bool)
	Bounds(id NodeID) (layout.Rect, bool)
	// HitTest 返回包含 p（容差 tol）的最上层可见且可命中的节点。
	HitTest(p layout.Point, tol float64) (Node, bool)
}
