package scene

import "github.com/ByLCY/typeforce/layout"

// Memory 是 Graph 的内存实现。节点按绘制顺序保存，末尾为最上层。
type Memory struct {
	nodes []Node
	next  NodeID
}

// NewMemory 创建空场景。
func NewMemory() *Memory { return &Memory{} }

var _ Graph = (*Memory)(nil)

func (m *Memory) index(id NodeID) int {
	for i := range m.nodes {
		if m.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) AddNode(n Node) NodeID {
	m.next++
	n.ID = m.next
	m.nodes = append(m.nodes, n)
	return n.ID
}

func (m *Memory) RemoveNode(id NodeID) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.nodes = append(m.nodes[:i], m.nodes[i+1:]...)
}

func (m *Memory) Raise(id NodeID) {
	i := m.index(id)
	if i < 0 || i == len(m.nodes)-1 {
		return
	}
	n := m.nodes[i]
	copy(m.nodes[i:], m.nodes[i+1:])
	m.nodes[len(m.nodes)-1] = n
}

func (m *Memory) Place(id NodeID, bounds layout.Rect, rotation float64) {
	if i := m.index(id); i >= 0 {
		m.nodes[i].Bounds = bounds
		m.nodes[i].Rotation = rotation
	}
}

func (m *Memory) SetVisible(id NodeID, visible bool) {
	if i := m.index(id); i >= 0 {
		m.nodes[i].Visible = visible
	}
}

func (m *Memory) Bounds(id NodeID) (layout.Rect, bool) {
	if i := m.index(id); i >= 0 {
		return m.nodes[i].Bounds, true
	}
	return layout.Rect{}, false
}

// Node 返回节点的副本。
func (m *Memory) Node(id NodeID) (Node, bool) {
	if i := m.index(id); i >= 0 {
		return m.nodes[i], true
	}
	return Node{}, false
}

// HitTest 按绘制顺序的逆序查找：先命中的是最上层节点。
func (m *Memory) HitTest(p layout.Point, tol float64) (Node, bool) {
	for i := len(m.nodes) - 1; i >= 0; i-- {
		n := m.nodes[i]
		if !n.Visible || !n.Hittable {
			continue
		}
		if n.Bounds.Inset(tol).Contains(p) {
			return n, true
		}
	}
	return Node{}, false
}

// Nodes 返回按绘制顺序排列的节点副本。
func (m *Memory) Nodes() []Node {
	out := make([]Node, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// Len 返回节点数。
func (m *Memory) Len() int { return len(m.nodes) }
