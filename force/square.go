package force

import "github.com/ByLCY/typeforce/layout"

// squareScale 是方形推力的基础缩放：radius 的一半。
const squareScale = 0.5

// wall 计算方形区域内字形的归一化距离 t ∈ [0,1]：
// 在推力起始边为 0，在对边为 1。只有严格位于区域内部的字形返回 ok。
func wall(p, c layout.Point, radius float64, dir Direction) (t float64, ok bool) {
	left, right := c.X-radius, c.X+radius
	top, bottom := c.Y-radius, c.Y+radius
	if p.X <= left || p.X >= right || p.Y <= top || p.Y >= bottom {
		return 0, false
	}
	span := 2 * radius
	var dist float64
	switch dir {
	case Left:
		dist = p.X - left
	case Down:
		dist = bottom - p.Y
	case Up:
		dist = p.Y - top
	default:
		dist = right - p.X
	}
	return clamp01(dist / span), true
}

// unit 返回方向的单位向量（y 轴向下）。
func unit(dir Direction) layout.Point {
	switch dir {
	case Left:
		return layout.Point{X: -1}
	case Down:
		return layout.Point{Y: 1}
	case Up:
		return layout.Point{Y: -1}
	default:
		return layout.Point{X: 1}
	}
}

func squareEach(glyphs []layout.Glyph, c layout.Point, radius float64, dir Direction, fn func(g *layout.Glyph, w float64)) int {
	if !usable(radius) || radius <= 0 {
		return 0
	}
	n := 0
	for i := range glyphs {
		g := &glyphs[i]
		t, ok := wall(g.Pos, c, radius, dir)
		if !ok {
			continue
		}
		w := t * t
		if w <= 0 {
			continue
		}
		fn(g, w)
		n++
	}
	return n
}

// SquarePush 沿当前方向推动方形区域内的字形，只改变方向轴上的分量：
// 位移大小为 t² * radius * 0.5 * strength。
func SquarePush(glyphs []layout.Glyph, c layout.Point, radius, strength float64, dir Direction) int {
	if !usable(strength) {
		return 0
	}
	u := unit(dir)
	return squareEach(glyphs, c, radius, dir, func(g *layout.Glyph, w float64) {
		g.Pos = g.Pos.Add(u.Mul(w * radius * squareScale * strength))
	})
}

// SquarePull 是 SquarePush 的镜像：大小规律相同，方向相反。
func SquarePull(glyphs []layout.Glyph, c layout.Point, radius, strength float64, dir Direction) int {
	if !usable(strength) {
		return 0
	}
	u := unit(dir).Mul(-1)
	return squareEach(glyphs, c, radius, dir, func(g *layout.Glyph, w float64) {
		g.Pos = g.Pos.Add(u.Mul(w * radius * squareScale * strength))
	})
}

// SquareSpin 不改变位置，让字形旋转角以 t² * strength 的权重向当前方向的朝向靠拢。
func SquareSpin(glyphs []layout.Glyph, c layout.Point, radius, strength float64, dir Direction) int {
	if !usable(strength) {
		return 0
	}
	heading := dir.Heading()
	return squareEach(glyphs, c, radius, dir, func(g *layout.Glyph, w float64) {
		g.Rotation += (heading - g.Rotation) * w * strength
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
