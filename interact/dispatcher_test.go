package interact

import (
	"math"
	"testing"

	"github.com/ByLCY/typeforce/force"
	"github.com/ByLCY/typeforce/frame"
	"github.com/ByLCY/typeforce/layout"
	"github.com/ByLCY/typeforce/scene"
)

type stubTarget struct {
	text    string
	fields  []force.Field
	params  []force.Params
	changes [][2]State
}

func (s *stubTarget) ApplyField(f force.Field)    { s.fields = append(s.fields, f) }
func (s *stubTarget) FieldChanged(p force.Params) { s.params = append(s.params, p) }
func (s *stubTarget) StateChanged(from, to State) { s.changes = append(s.changes, [2]State{from, to}) }
func (s *stubTarget) Text() string                { return s.text }
func (s *stubTarget) SetText(v string)            { s.text = v }

type stubEditor struct {
	began string
	next  string
	ok    bool
}

func (e *stubEditor) Begin(current string) { e.began = current }
func (e *stubEditor) End() (string, bool)  { return e.next, e.ok }

func newDispatcher(t *testing.T) (*Dispatcher, *stubTarget, *frame.Controller) {
	t.Helper()
	fc, err := frame.New(layout.Rect{X: 100, Y: 100, Width: 200, Height: 100}, nil)
	if err != nil {
		t.Fatalf("frame.New: %v", err)
	}
	g := scene.NewMemory()
	g.AddNode(scene.Node{Kind: scene.KindFrame, Bounds: fc.Bounds(), Visible: true, Hittable: true})
	g.AddNode(scene.Node{Kind: scene.KindHandle, Bounds: fc.HandleRect(), Visible: true, Hittable: true})
	target := &stubTarget{text: "hello"}
	params := force.Params{Shape: force.Circle, Mode: force.Push, Radius: 120, Strength: 0.08}
	return New(fc, g, target, nil, params, DefaultOptions()), target, fc
}

func TestPointerDownPriority(t *testing.T) {
	d, _, fc := newDispatcher(t)
	d.PointerDown(fc.Handle(), Modifiers{})
	if d.State() != Resizing {
		t.Fatalf("按在手柄上应进入 Resizing，实际 %v", d.State())
	}
	d.PointerUp(fc.Handle())

	d.PointerDown(layout.Pt(150, 150), Modifiers{})
	if d.State() != Dragging {
		t.Fatalf("按在文本框内应进入 Dragging，实际 %v", d.State())
	}
	d.PointerUp(layout.Pt(150, 150))

	d.PointerDown(layout.Pt(10, 10), Modifiers{})
	if d.State() != Idle {
		t.Fatalf("按在背景上应保持 Idle")
	}
}

func TestBackgroundClickCyclesDirectionInSquare(t *testing.T) {
	d, target, _ := newDispatcher(t)
	d.PointerDown(layout.Pt(10, 10), Modifiers{})
	if d.Params().Direction != force.Right {
		t.Fatalf("圆形模式下点击背景不应切换方向")
	}
	d.SetShape(force.Square)
	d.PointerDown(layout.Pt(10, 10), Modifiers{})
	d.PointerDown(layout.Pt(10, 10), Modifiers{})
	if d.Params().Direction != force.Left {
		t.Fatalf("两次点击后方向应为 left，实际 %v", d.Params().Direction)
	}
	if d.Cursor() != "w-resize" {
		t.Fatalf("光标提示错误: %s", d.Cursor())
	}
	if len(target.params) != 3 {
		t.Fatalf("每次参数变化都应通知，实际 %d 次", len(target.params))
	}
}

func TestFlushCoalescesSamples(t *testing.T) {
	d, target, _ := newDispatcher(t)
	d.PointerMove(layout.Pt(10, 10), Modifiers{})
	d.PointerMove(layout.Pt(20, 20), Modifiers{})
	d.PointerMove(layout.Pt(30, 40), Modifiers{})
	if !d.Flush() {
		t.Fatalf("有待处理采样时 Flush 应施加力场")
	}
	if d.Flush() {
		t.Fatalf("同一采样不应施加两次")
	}
	if len(target.fields) != 1 || target.fields[0].Center != layout.Pt(30, 40) {
		t.Fatalf("只应施加最近一次采样: %+v", target.fields)
	}
}

func TestAxisConstraint(t *testing.T) {
	d, target, _ := newDispatcher(t)
	on := Modifiers{Constrain: true}
	d.PointerMove(layout.Pt(50, 50), on)
	d.PointerMove(layout.Pt(80, 60), on)
	d.Flush()
	if got := target.fields[0].Center; got != layout.Pt(80, 50) {
		t.Fatalf("水平位移更大时应锁定 y，实际 %+v", got)
	}
	d.PointerMove(layout.Pt(55, 90), on)
	d.Flush()
	if got := target.fields[1].Center; got != layout.Pt(50, 90) {
		t.Fatalf("垂直位移更大时应锁定 x，实际 %+v", got)
	}
	// 松开后锚点清除，再次按下时重新取锚点
	d.PointerMove(layout.Pt(200, 200), Modifiers{})
	d.PointerMove(layout.Pt(210, 230), on)
	d.Flush()
	if got := target.fields[2].Center; got != layout.Pt(210, 230) {
		t.Fatalf("重新按下修饰键时应以当前点为锚点，实际 %+v", got)
	}
}

func TestNoForceWhileDragging(t *testing.T) {
	d, target, fc := newDispatcher(t)
	d.PointerDown(layout.Pt(150, 150), Modifiers{})
	d.PointerMove(layout.Pt(160, 170), Modifiers{})
	if d.Flush() || len(target.fields) != 0 {
		t.Fatalf("拖动中不应施加力场")
	}
	if b := fc.Bounds(); b.X != 110 || b.Y != 120 {
		t.Fatalf("拖动应移动文本框: %+v", b)
	}
}

func TestWheelAdjustsRadius(t *testing.T) {
	d, _, _ := newDispatcher(t)
	d.Wheel(-1)
	if d.Params().Radius != 123 {
		t.Fatalf("向上滚动应增大 3，实际 %g", d.Params().Radius)
	}
	for i := 0; i < 100; i++ {
		d.Wheel(1)
	}
	if d.Params().Radius != 10 {
		t.Fatalf("半径应限制在 10，实际 %g", d.Params().Radius)
	}
	if d.Wheel(1) {
		t.Fatalf("已到下限时不应报告变化")
	}
}

func TestKeys(t *testing.T) {
	d, _, _ := newDispatcher(t)
	d.Key("s")
	if d.Params().Shape != force.Square {
		t.Fatalf("s 应切换到方形")
	}
	d.Key("s")
	if d.Params().Direction != force.Down {
		t.Fatalf("方形模式下再按 s 应切换方向")
	}
	d.Key("3")
	if d.Params().Mode != force.Spin {
		t.Fatalf("3 应切换到旋转力")
	}
	d.Key("C")
	if d.Params().Shape != force.Circle {
		t.Fatalf("c 应切换到圆形")
	}
	if d.Key("x") {
		t.Fatalf("未知按键不应被消费")
	}
}

func TestTextEditing(t *testing.T) {
	d, target, fc := newDispatcher(t)
	ed := &stubEditor{next: "world", ok: true}
	d.SetEditor(ed)
	d.Key("t")
	if d.State() != TextEditing || ed.began != "hello" {
		t.Fatalf("t 应以当前文本进入文本编辑")
	}
	if d.Key("s") {
		t.Fatalf("文本编辑中快捷键应交给编辑器")
	}
	d.PointerDown(fc.Handle(), Modifiers{})
	if d.State() != Idle || target.text != "world" {
		t.Fatalf("编辑中点击应提交并退出: state=%v text=%q", d.State(), target.text)
	}
	d.Key("t")
	ed.ok = false
	d.Key("esc")
	if d.State() != Idle || target.text != "world" {
		t.Fatalf("放弃编辑不应修改文本")
	}
}

func TestSelectingIgnoresPointer(t *testing.T) {
	d, target, _ := newDispatcher(t)
	d.Key("v")
	if d.State() != Selecting {
		t.Fatalf("v 应进入选择模式")
	}
	d.PointerDown(layout.Pt(150, 150), Modifiers{})
	d.PointerMove(layout.Pt(10, 10), Modifiers{})
	if d.State() != Selecting || d.Flush() || len(target.fields) != 0 {
		t.Fatalf("选择模式下应忽略指针事件")
	}
	d.Key("t")
	if d.State() != Selecting {
		t.Fatalf("模态状态只能从 Idle 进入")
	}
	d.Key("v")
	if d.State() != Idle {
		t.Fatalf("再次按 v 应退出选择模式")
	}
}

func TestSettersIgnoreNonFinite(t *testing.T) {
	d, _, _ := newDispatcher(t)
	d.SetRadius(math.NaN())
	d.SetStrength(math.Inf(1))
	if p := d.Params(); p.Radius != 120 || p.Strength != 0.08 {
		t.Fatalf("非有限值应被忽略: %+v", p)
	}
	d.SetRadius(500)
	if d.Params().Radius != 200 {
		t.Fatalf("半径应限制在上限，实际 %g", d.Params().Radius)
	}
}
