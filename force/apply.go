package force

import "github.com/ByLCY/typeforce/layout"

// Apply 按力场的形状与类型原地修改字形位置或旋转角，返回受影响的字形数。
func Apply(glyphs []layout.Glyph, f Field) int {
	if !f.Center.Finite() {
		return 0
	}
	switch f.Shape {
	case Square:
		switch f.Mode {
		case Pull:
			return SquarePull(glyphs, f.Center, f.Radius, f.Strength, f.Direction)
		case Spin:
			return SquareSpin(glyphs, f.Center, f.Radius, f.Strength, f.Direction)
		default:
			return SquarePush(glyphs, f.Center, f.Radius, f.Strength, f.Direction)
		}
	default:
		switch f.Mode {
		case Pull:
			return CirclePull(glyphs, f.Center, f.Radius, f.Strength)
		case Spin:
			return CircleSpin(glyphs, f.Center, f.Radius, f.Strength)
		default:
			return CirclePush(glyphs, f.Center, f.Radius, f.Strength)
		}
	}
}
