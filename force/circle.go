package force

import (
	"math"

	"github.com/ByLCY/typeforce/layout"
)

// outside 是距离计算前的廉价预筛：字形不在 [center ± radius] 包围正方形内时跳过。
func outside(p, c layout.Point, radius float64) bool {
	return p.X < c.X-radius || p.X > c.X+radius || p.Y < c.Y-radius || p.Y > c.Y+radius
}

// radial 对圆形区域内（0 < d < radius）的每个字形调用 fn，返回受影响的字形数。
func radial(glyphs []layout.Glyph, c layout.Point, radius float64, fn func(g *layout.Glyph, d float64)) int {
	if !usable(radius) || radius <= 0 {
		return 0
	}
	r2 := radius * radius
	n := 0
	for i := range glyphs {
		g := &glyphs[i]
		if outside(g.Pos, c, radius) {
			continue
		}
		dx := g.Pos.X - c.X
		dy := g.Pos.Y - c.Y
		d2 := dx*dx + dy*dy
		if d2 == 0 || d2 >= r2 {
			continue
		}
		fn(g, math.Sqrt(d2))
		n++
	}
	return n
}

// CirclePush 将圆内字形沿远离指针的方向推开，位移大小为 (radius-d)*strength。
// 指针正好落在字形上（d=0）时没有方向，不产生位移。
func CirclePush(glyphs []layout.Glyph, c layout.Point, radius, strength float64) int {
	if !usable(strength) {
		return 0
	}
	return radial(glyphs, c, radius, func(g *layout.Glyph, d float64) {
		dir := g.Pos.Sub(c).Norm()
		g.Pos = g.Pos.Add(dir.Mul((radius - d) * strength))
	})
}

// CirclePull 与 CirclePush 大小规律相同，方向指向指针。
func CirclePull(glyphs []layout.Glyph, c layout.Point, radius, strength float64) int {
	if !usable(strength) {
		return 0
	}
	return radial(glyphs, c, radius, func(g *layout.Glyph, d float64) {
		dir := c.Sub(g.Pos).Norm()
		g.Pos = g.Pos.Add(dir.Mul((radius - d) * strength))
	})
}

// CircleSpin 不改变位置，只让字形旋转角向目标角平滑靠拢：
//
//	rotation += (target - rotation) * (1 - d/radius) * strength
//
// target 为字形指向指针的向量角度（度）。每帧一步，多帧后收敛到 target。
func CircleSpin(glyphs []layout.Glyph, c layout.Point, radius, strength float64) int {
	if !usable(strength) {
		return 0
	}
	return radial(glyphs, c, radius, func(g *layout.Glyph, d float64) {
		target := TargetAngle(g.Pos, c)
		g.Rotation += (target - g.Rotation) * (1 - d/radius) * strength
	})
}

// TargetAngle 返回从字形 p 指向指针 c 的向量角度（度，y 轴向下）。
func TargetAngle(p, c layout.Point) float64 {
	return math.Atan2(c.Y-p.Y, c.X-p.X) * 180 / math.Pi
}

func usable(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
