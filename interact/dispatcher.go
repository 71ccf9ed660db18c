// Package interact 把指针、滚轮与按键事件分派给文本框控制器或力场。
package interact

import (
	"math"
	"strings"

	"github.com/ByLCY/typeforce/force"
	"github.com/ByLCY/typeforce/frame"
	"github.com/ByLCY/typeforce/layout"
	"github.com/ByLCY/typeforce/scene"
)

// Target 接收分派结果，通常由应用上下文实现。
type Target interface {
	// ApplyField 对当前字形施加一帧力场。
	ApplyField(f force.Field)
	// FieldChanged 在力场参数（形状、类型、半径、强度、方向）变化后调用。
	FieldChanged(p force.Params)
	// StateChanged 在交互状态切换后调用。
	StateChanged(from, to State)
	Text() string
	SetText(s string)
}

// TextEditor 是文本编辑的外部协作方。
type TextEditor interface {
	// Begin 以当前文本开始编辑。
	Begin(current string)
	// End 结束编辑并返回编辑后的文本；ok 为 false 表示放弃修改。
	End() (text string, ok bool)
}

// Options 是分派器的可调参数。
type Options struct {
	MinRadius float64
	MaxRadius float64
	WheelStep float64
	// HitTolerance 是命中测试的容差（px）。
	HitTolerance float64
}

// DefaultOptions 返回默认参数：半径 10–200，每格滚轮 3，命中容差 6。
func DefaultOptions() Options {
	return Options{MinRadius: 10, MaxRadius: 200, WheelStep: 3, HitTolerance: 6}
}

// Dispatcher 是交互状态机。所有方法都应在同一个事件循环中调用。
type Dispatcher struct {
	frame  *frame.Controller
	graph  scene.Graph
	target Target
	editor TextEditor
	opts   Options

	params force.Params
	state  State
	lock   axisLock

	pending    layout.Point
	hasPending bool
	center     layout.Point
}

// New 创建分派器。editor 可以为 nil，此时文本编辑只切换状态，不修改文本。
func New(fc *frame.Controller, g scene.Graph, target Target, editor TextEditor, params force.Params, opts Options) *Dispatcher {
	if opts.MaxRadius < opts.MinRadius {
		opts.MinRadius, opts.MaxRadius = opts.MaxRadius, opts.MinRadius
	}
	return &Dispatcher{frame: fc, graph: g, target: target, editor: editor, opts: opts, params: params}
}

func (d *Dispatcher) State() State           { return d.state }
func (d *Dispatcher) Params() force.Params   { return d.params }
func (d *Dispatcher) Center() layout.Point   { return d.center }
func (d *Dispatcher) SetEditor(e TextEditor) { d.editor = e }

// Cursor 返回当前应显示的光标提示：方形模式下为方向光标，否则为 default。
func (d *Dispatcher) Cursor() string {
	if d.params.Shape == force.Square {
		return d.params.Direction.Cursor()
	}
	return "default"
}

func (d *Dispatcher) setState(s State) {
	if s == d.state {
		return
	}
	from := d.state
	d.state = s
	if s != Idle {
		d.hasPending = false
		d.lock.reset()
	}
	if d.target != nil {
		d.target.StateChanged(from, s)
	}
}

// PointerDown 按 {手柄, 文本框, 背景} 的优先级处理按下事件。
func (d *Dispatcher) PointerDown(p layout.Point, _ Modifiers) {
	if !p.Finite() {
		return
	}
	switch d.state {
	case TextEditing:
		d.endTextEdit()
		return
	case Idle:
	default:
		return
	}

	tol := d.opts.HitTolerance
	if hit, ok := d.graph.HitTest(p, tol); ok {
		if hit.Kind == scene.KindHandle || d.frame.HitHandle(p, 0) {
			if d.frame.BeginResize(p) {
				d.setState(Resizing)
			}
			return
		}
		if hit.Kind == scene.KindFrame || d.frame.HitBody(p) {
			if d.frame.BeginDrag(p) {
				d.setState(Dragging)
			}
			return
		}
	}

	if d.params.Shape == force.Square {
		d.CycleDirection()
	}
}

// PointerMove 在拖动或缩放时转交文本框控制器；空闲时记录力场采样，
// 等待 Flush 统一施加。
func (d *Dispatcher) PointerMove(p layout.Point, mods Modifiers) {
	if !p.Finite() {
		return
	}
	switch d.state {
	case Dragging, Resizing:
		d.frame.Move(p)
	case Idle:
		c := d.lock.apply(p, mods.Constrain)
		d.center = c
		d.pending = c
		d.hasPending = true
	}
}

// PointerUp 结束拖动或缩放。
func (d *Dispatcher) PointerUp(_ layout.Point) {
	switch d.state {
	case Dragging, Resizing:
		d.frame.Release()
		d.setState(Idle)
	}
}

// Flush 施加最近一次的力场采样，更早的采样被丢弃。返回是否施加了力场。
func (d *Dispatcher) Flush() bool {
	if !d.hasPending || d.state != Idle {
		return false
	}
	d.hasPending = false
	if d.target != nil {
		d.target.ApplyField(d.params.At(d.pending))
	}
	return true
}

// Wheel 按滚轮方向调整半径：dy<0 增大，dy>0 减小，结果取整并限制在范围内。
func (d *Dispatcher) Wheel(dy float64) bool {
	if dy == 0 || !layout.Finite(dy) {
		return false
	}
	step := d.opts.WheelStep
	if dy > 0 {
		step = -step
	}
	r := math.Round(clamp(d.params.Radius+step, d.opts.MinRadius, d.opts.MaxRadius))
	if r == d.params.Radius {
		return false
	}
	d.params.Radius = r
	d.changed()
	return true
}

// Key 处理快捷键，返回按键是否被消费。
// 文本编辑中只响应 esc，其余按键交给编辑器。
func (d *Dispatcher) Key(name string) bool {
	k := strings.ToLower(name)
	switch d.state {
	case TextEditing:
		if k == "esc" || k == "escape" {
			d.endTextEdit()
			return true
		}
		return false
	case Selecting:
		if k == "v" || k == "esc" || k == "escape" {
			d.setState(Idle)
			return true
		}
		return false
	case Idle:
	default:
		return false
	}

	switch k {
	case "t":
		d.beginTextEdit()
	case "v":
		d.setState(Selecting)
	case "c":
		d.SetShape(force.Circle)
	case "s":
		if d.params.Shape == force.Square {
			d.CycleDirection()
		} else {
			d.SetShape(force.Square)
		}
	case "1":
		d.SetMode(force.Push)
	case "2":
		d.SetMode(force.Pull)
	case "3":
		d.SetMode(force.Spin)
	default:
		return false
	}
	return true
}

func (d *Dispatcher) beginTextEdit() {
	if d.state != Idle {
		return
	}
	if d.editor != nil && d.target != nil {
		d.editor.Begin(d.target.Text())
	}
	d.setState(TextEditing)
}

func (d *Dispatcher) endTextEdit() {
	if d.state != TextEditing {
		return
	}
	var (
		text string
		ok   bool
	)
	if d.editor != nil {
		text, ok = d.editor.End()
	}
	d.setState(Idle)
	if ok && d.target != nil {
		d.target.SetText(text)
	}
}

// BeginTextEdit 与 EndTextEdit 供外部控件（按钮、脚本）直接切换文本编辑。
func (d *Dispatcher) BeginTextEdit() { d.beginTextEdit() }
func (d *Dispatcher) EndTextEdit()   { d.endTextEdit() }

func (d *Dispatcher) SetShape(s force.Shape) {
	if s == d.params.Shape {
		return
	}
	d.params.Shape = s
	d.changed()
}

func (d *Dispatcher) SetMode(m force.Mode) {
	if m == d.params.Mode {
		return
	}
	d.params.Mode = m
	d.changed()
}

// SetRadius 设置半径；非有限值被忽略，保留上一次的有效值。
func (d *Dispatcher) SetRadius(r float64) {
	if !layout.Finite(r) || r == d.params.Radius {
		return
	}
	d.params.Radius = clamp(r, d.opts.MinRadius, d.opts.MaxRadius)
	d.changed()
}

// SetStrength 设置强度；非有限值被忽略。
func (d *Dispatcher) SetStrength(s float64) {
	if !layout.Finite(s) || s == d.params.Strength {
		return
	}
	d.params.Strength = s
	d.changed()
}

func (d *Dispatcher) SetDirection(dir force.Direction) {
	if dir == d.params.Direction {
		return
	}
	d.params.Direction = dir
	d.changed()
}

// CycleDirection 按 right→down→left→up 切换方形推力方向。
func (d *Dispatcher) CycleDirection() {
	d.params.Direction = d.params.Direction.Next()
	d.changed()
}

func (d *Dispatcher) changed() {
	if d.target != nil {
		d.target.FieldChanged(d.params)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
