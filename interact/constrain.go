package interact

import (
	"math"

	"github.com/ByLCY/typeforce/layout"
)

// axisLock 实现按住修饰键时的轴向约束。
// 修饰键从松开变为按下的那一刻记录锚点；松开后锚点清除。
type axisLock struct {
	anchor layout.Point
	held   bool
}

// apply 返回约束后的位置：锁定到相对锚点位移更大的那条轴。
// |dx| == |dy| 时锁定到垂直轴。
func (a *axisLock) apply(p layout.Point, on bool) layout.Point {
	if !on {
		a.held = false
		return p
	}
	if !a.held {
		a.held = true
		a.anchor = p
	}
	d := p.Sub(a.anchor)
	if math.Abs(d.X) > math.Abs(d.Y) {
		return layout.Point{X: p.X, Y: a.anchor.Y}
	}
	return layout.Point{X: a.anchor.X, Y: p.Y}
}

func (a *axisLock) reset() { a.held = false }
