package layout

import (
	"math"
	"testing"
)

// stubMeasurer 是一个最小实现，仅用于测试，避免引入 renderer 造成循环依赖。
// 普通字符宽度为 0.5em，空格为 0.25em。
type stubMeasurer struct{}

func (stubMeasurer) Advance(r rune, fontSize float64) float64 {
	if r == ' ' {
		return fontSize * 0.25
	}
	return fontSize * 0.5
}

func testTypography() Typography {
	return Typography{FontSize: 60, LineHeight: 1.25, Color: White}
}

func mustLayout(t *testing.T, text string, frame Rect, typo Typography) []Glyph {
	t.Helper()
	glyphs, err := Layout(text, frame, typo, stubMeasurer{})
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	return glyphs
}

// TestLayoutSingleLine 验证 "AB CD" 在足够宽的文本框中排在同一行、同一基线。
func TestLayoutSingleLine(t *testing.T) {
	frame := Rect{X: 0, Y: 0, Width: 600, Height: 400}
	glyphs := mustLayout(t, "AB CD", frame, testTypography())
	if len(glyphs) != 4 {
		t.Fatalf("期望 4 个字形，实际 %d", len(glyphs))
	}
	wantY := 10 + 60*DefaultBaseline
	for i, g := range glyphs {
		if math.Abs(g.Base.Y-wantY) > 1e-9 {
			t.Fatalf("字形 %d 基线不一致: got=%g want=%g", i, g.Base.Y, wantY)
		}
		if g.Line != 0 {
			t.Fatalf("字形 %d 不应换行: line=%d", i, g.Line)
		}
	}
	// A=10, B=40, 空格 15, C=85, D=115
	wantX := []float64{10, 40, 85, 115}
	for i, g := range glyphs {
		if math.Abs(g.Base.X-wantX[i]) > 1e-9 {
			t.Fatalf("字形 %d x 错误: got=%g want=%g", i, g.Base.X, wantX[i])
		}
	}
}

// TestLayoutWrapsSecondWord 验证文本框变窄后 "CD" 换到第二行，y 增加 fontSize*lineHeight。
func TestLayoutWrapsSecondWord(t *testing.T) {
	typo := testTypography()
	frame := Rect{X: 0, Y: 0, Width: 100, Height: 400}
	glyphs := mustLayout(t, "AB CD", frame, typo)
	if len(glyphs) != 4 {
		t.Fatalf("期望 4 个字形，实际 %d", len(glyphs))
	}
	first := glyphs[0].Base.Y
	for _, g := range glyphs[2:] {
		if diff := g.Base.Y - first; math.Abs(diff-typo.FontSize*typo.LineHeight) > 1e-9 {
			t.Fatalf("第二行 y 偏移错误: got=%g want=%g", diff, typo.FontSize*typo.LineHeight)
		}
		if g.Line != 1 {
			t.Fatalf("期望第二行，实际 line=%d", g.Line)
		}
	}
	if glyphs[2].Base.X != 10 {
		t.Fatalf("换行后应回到行首: got=%g", glyphs[2].Base.X)
	}
}

// TestWrapRule 验证换行判定：当且仅当 x + w > lineStart + W。
func TestWrapRule(t *testing.T) {
	cases := []struct {
		x, w, start, usable float64
		want                bool
	}{
		{10, 60, 10, 580, false},
		{10, 580, 10, 580, false}, // 恰好等宽不换行
		{10, 580.5, 10, 580, true},
		{85, 60, 10, 80, true},
		{10, 200, 10, 80, true}, // 超长单词即使在行首也满足判定
	}
	for i, c := range cases {
		if got := Wraps(c.x, c.w, c.start, c.usable); got != c.want {
			t.Fatalf("case %d: Wraps(%g,%g,%g,%g)=%v want %v", i, c.x, c.w, c.start, c.usable, got, c.want)
		}
	}
}

// TestLayoutDeterministic 验证相同输入两次排版得到相同的基准位置。
func TestLayoutDeterministic(t *testing.T) {
	frame := Rect{X: 700, Y: 100, Width: 600, Height: 700}
	typo := testTypography()
	typo.TrackingEm = 0.05
	text := "the quick brown fox jumps over the lazy dog"
	a := mustLayout(t, text, frame, typo)
	b := mustLayout(t, text, frame, typo)
	if len(a) != len(b) {
		t.Fatalf("字形数量不一致: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Base != b[i].Base || a[i].Pos != b[i].Pos {
			t.Fatalf("字形 %d 位置不一致: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestLayoutPreservesConsecutiveSpaces 验证连续空格不被合并。
func TestLayoutPreservesConsecutiveSpaces(t *testing.T) {
	frame := Rect{Width: 600, Height: 400}
	single := mustLayout(t, "A B", frame, testTypography())
	double := mustLayout(t, "A  B", frame, testTypography())
	gap := double[1].Base.X - single[1].Base.X
	if math.Abs(gap-15) > 1e-9 {
		t.Fatalf("多出的空格应推进一个空格宽度(15px)，实际 %g", gap)
	}
	if len(double) != 2 {
		t.Fatalf("空单词不应产生字形，实际 %d", len(double))
	}
}

// TestLayoutTracking 验证字间距只加在字形之间，且空格后同样追加。
func TestLayoutTracking(t *testing.T) {
	typo := testTypography()
	typo.TrackingEm = 0.1 // 6px
	frame := Rect{Width: 600, Height: 400}
	glyphs := mustLayout(t, "AB C", frame, typo)
	if got := glyphs[1].Base.X - glyphs[0].Base.X; math.Abs(got-36) > 1e-9 {
		t.Fatalf("A→B 间距错误: got=%g want=36", got)
	}
	// B 之后：30 + 6，再加空格 15 + 6
	if got := glyphs[2].Base.X - glyphs[1].Base.X; math.Abs(got-57) > 1e-9 {
		t.Fatalf("B→C 间距错误: got=%g want=57", got)
	}
	if w := WordWidth("AB", typo, stubMeasurer{}); math.Abs(w-66) > 1e-9 {
		t.Fatalf("单词宽度不应包含末尾字间距: got=%g want=66", w)
	}
}

// TestLayoutOverlongWordOverflows 验证超长单词照常放置并溢出。
func TestLayoutOverlongWordOverflows(t *testing.T) {
	frame := Rect{Width: 60, Height: 40}
	glyphs := mustLayout(t, "WWWWWW", frame, testTypography())
	if len(glyphs) != 6 {
		t.Fatalf("超长单词应完整放置，实际 %d 个字形", len(glyphs))
	}
	last := glyphs[len(glyphs)-1]
	if last.Base.X+last.Advance <= frame.Right() {
		t.Fatalf("期望溢出文本框右边界")
	}
}

// TestLayoutHonorsNewlines 验证显式换行。
func TestLayoutHonorsNewlines(t *testing.T) {
	typo := testTypography()
	glyphs := mustLayout(t, "A\nB", Rect{Width: 600, Height: 400}, typo)
	if len(glyphs) != 2 {
		t.Fatalf("期望 2 个字形，实际 %d", len(glyphs))
	}
	if glyphs[1].Base.X != glyphs[0].Base.X {
		t.Fatalf("换行后应回到行首")
	}
	if diff := glyphs[1].Base.Y - glyphs[0].Base.Y; math.Abs(diff-75) > 1e-9 {
		t.Fatalf("换行 y 偏移错误: %g", diff)
	}
}

func TestLayoutRejectsInvalidInput(t *testing.T) {
	if _, err := Layout("A", Rect{Width: 100}, testTypography(), nil); err == nil {
		t.Fatalf("缺少 Measurer 时应返回错误")
	}
	bad := testTypography()
	bad.FontSize = math.NaN()
	if _, err := Layout("A", Rect{Width: 100}, bad, stubMeasurer{}); err == nil {
		t.Fatalf("NaN 字号应返回错误")
	}
}

func TestLayoutEmptyText(t *testing.T) {
	glyphs := mustLayout(t, "", Rect{Width: 100, Height: 40}, testTypography())
	if len(glyphs) != 0 {
		t.Fatalf("空文本不应产生字形")
	}
}
