// Package frame 实现文本框的拖动与缩放状态机。
//
// 文本框左上角固定为缩放基点，手柄始终位于右下角。缩放过程中每次移动都会
// 通过 Hooks.Resized 触发同步重排；拖动只移动文本框，释放时把总位移交给
// Hooks.Released，由调用方平移所有字形（保留力场造成的偏移）。
package frame

import (
	"fmt"
	"math"

	"github.com/ByLCY/typeforce/layout"
)

const (
	MinWidth  = 60
	MinHeight = 40
	// HandleSize 是手柄方块的边长。
	HandleSize = 8
)

// State 是文本框控制器的状态。
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Hooks 接收文本框几何变化的通知。
type Hooks interface {
	// Resized 在缩放的每一次移动后调用，调用方应同步重排。
	Resized(bounds layout.Rect)
	// Moved 在拖动过程中调用，不需要重排。
	Moved(bounds layout.Rect)
	// Released 在拖动结束时调用，delta 为整个拖动的位移。
	Released(delta layout.Point)
}

// Controller 管理文本框的位置与尺寸。零值不可用，请使用 New。
type Controller struct {
	bounds layout.Rect
	state  State
	hooks  Hooks

	grabOffset   layout.Point
	originAtGrab layout.Point
}

// New 创建控制器，bounds 会被限制到最小尺寸。hooks 可以为 nil。
func New(bounds layout.Rect, hooks Hooks) (*Controller, error) {
	if !finiteRect(bounds) {
		return nil, fmt.Errorf("frame: 无效的文本框 %+v", bounds)
	}
	return &Controller{bounds: clampSize(bounds), hooks: hooks}, nil
}

// SetHooks 替换通知接收方。
func (c *Controller) SetHooks(h Hooks) { c.hooks = h }

func (c *Controller) Bounds() layout.Rect { return c.bounds }
func (c *Controller) State() State        { return c.state }

// Handle 返回手柄中心，恒等于文本框右下角。
func (c *Controller) Handle() layout.Point { return c.bounds.BottomRight() }

// HandleRect 返回手柄方块的包围盒。
func (c *Controller) HandleRect() layout.Rect {
	return layout.RectAround(c.Handle(), HandleSize/2)
}

// HitHandle 判断 p 是否落在手柄上（容差 tol）。
func (c *Controller) HitHandle(p layout.Point, tol float64) bool {
	return c.HandleRect().Inset(tol).Contains(p)
}

// HitBody 判断 p 是否落在文本框内。
func (c *Controller) HitBody(p layout.Point) bool { return c.bounds.Contains(p) }

// SetBounds 直接设置文本框（配置或脚本使用），尺寸限制到最小值。
// 非有限值被忽略。返回值表示是否发生了变化。
func (c *Controller) SetBounds(r layout.Rect) bool {
	if !finiteRect(r) {
		return false
	}
	r = clampSize(r)
	if r == c.bounds {
		return false
	}
	c.bounds = r
	return true
}

// BeginResize 从 Idle 进入 Resizing。
func (c *Controller) BeginResize(p layout.Point) bool {
	if c.state != Idle || !p.Finite() {
		return false
	}
	c.state = Resizing
	return true
}

// BeginDrag 从 Idle 进入 Dragging，记录抓取偏移与起始位置。
func (c *Controller) BeginDrag(p layout.Point) bool {
	if c.state != Idle || !p.Finite() {
		return false
	}
	c.state = Dragging
	c.originAtGrab = c.bounds.TopLeft()
	c.grabOffset = c.originAtGrab.Sub(p)
	return true
}

// Move 处理按下状态下的指针移动。Idle 状态下是空操作。
func (c *Controller) Move(p layout.Point) {
	if !p.Finite() {
		return
	}
	switch c.state {
	case Resizing:
		c.resize(p)
		if c.hooks != nil {
			c.hooks.Resized(c.bounds)
		}
	case Dragging:
		o := p.Add(c.grabOffset)
		c.bounds.X, c.bounds.Y = o.X, o.Y
		if c.hooks != nil {
			c.hooks.Moved(c.bounds)
		}
	}
}

// resize 以固定的左上角为基点把文本框缩放到指针位置，不小于最小尺寸。
func (c *Controller) resize(p layout.Point) {
	c.bounds.Width = math.Max(MinWidth, p.X-c.bounds.X)
	c.bounds.Height = math.Max(MinHeight, p.Y-c.bounds.Y)
}

// Release 结束当前操作并回到 Idle。
func (c *Controller) Release() {
	prev := c.state
	c.state = Idle
	if prev != Dragging {
		return
	}
	delta := c.bounds.TopLeft().Sub(c.originAtGrab)
	if c.hooks != nil && !delta.IsZero() {
		c.hooks.Released(delta)
	}
}

func clampSize(r layout.Rect) layout.Rect {
	r.Width = math.Max(MinWidth, r.Width)
	r.Height = math.Max(MinHeight, r.Height)
	return r
}

func finiteRect(r layout.Rect) bool {
	return layout.Finite(r.X) && layout.Finite(r.Y) && layout.Finite(r.Width) && layout.Finite(r.Height)
}
