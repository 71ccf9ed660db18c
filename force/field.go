// Package force 实现指针力场：在指针周围的圆形或方形区域内，逐帧推、拉或旋转字形。
//
// 每一帧的计算只依赖传入的字形当前位置与力场参数，不保存任何隐藏状态；
// 多次调用的效果会叠加（位移是加到当前位置上的）。
package force

import (
	"fmt"
	"strings"

	"github.com/ByLCY/typeforce/layout"
)

// Shape 是力场区域的形状。
type Shape int

const (
	Circle Shape = iota
	Square
)

func (s Shape) String() string {
	if s == Square {
		return "square"
	}
	return "circle"
}

// Mode 是力的类型。
type Mode int

const (
	Push Mode = iota
	Pull
	Spin
)

func (m Mode) String() string {
	switch m {
	case Pull:
		return "pull"
	case Spin:
		return "spin"
	default:
		return "push"
	}
}

// Direction 是方形推力的方向，只能通过显式的用户操作切换。
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	default:
		return "right"
	}
}

// Next 按 right→down→left→up→right 的顺序返回下一个方向。
func (d Direction) Next() Direction { return (d + 1) % 4 }

// Cursor 返回该方向对应的光标提示名。
func (d Direction) Cursor() string {
	switch d {
	case Down:
		return "s-resize"
	case Left:
		return "w-resize"
	case Up:
		return "n-resize"
	default:
		return "e-resize"
	}
}

// Heading 返回方向对应的角度（度，y 轴向下，顺时针为正）。
func (d Direction) Heading() float64 {
	switch d {
	case Down:
		return 90
	case Left:
		return 180
	case Up:
		return -90
	default:
		return 0
	}
}

// ParseShape 解析形状名。
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle", "":
		return Circle, nil
	case "square":
		return Square, nil
	}
	return Circle, fmt.Errorf("force: 未知形状 %q", s)
}

// ParseMode 解析力的类型。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "push", "":
		return Push, nil
	case "pull":
		return Pull, nil
	case "spin":
		return Spin, nil
	}
	return Push, fmt.Errorf("force: 未知力类型 %q", s)
}

// ParseDirection 解析方向名。
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "up":
		return Up, nil
	}
	return Right, fmt.Errorf("force: 未知方向 %q", s)
}

// Params 是力场参数，由外部控件设置，跨帧保留。
type Params struct {
	Shape     Shape     `json:"shape"`
	Mode      Mode      `json:"mode"`
	Radius    float64   `json:"radius"`
	Strength  float64   `json:"strength"`
	Direction Direction `json:"direction"`
}

// Field 是某一帧的力场：参数加上（可能被轴向约束过的）指针位置。
type Field struct {
	Params
	Center layout.Point
}

// At 返回以 center 为中心的力场。
func (p Params) At(center layout.Point) Field { return Field{Params: p, Center: center} }
