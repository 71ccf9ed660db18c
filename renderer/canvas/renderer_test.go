package canvasrenderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/typeforce/layout"
)

func testSnapshot() *layout.Snapshot {
	white := layout.White
	return &layout.Snapshot{
		Width:  400,
		Height: 200,
		Text:   "Hi",
		Typography: layout.Typography{
			FontSize:   40,
			LineHeight: 1.25,
			Color:      layout.Black,
			Font:       "builtin:go-regular",
		},
		Glyphs: []layout.Glyph{
			{Char: 'H', Pos: layout.Pt(20, 60), Base: layout.Pt(20, 60)},
			{Char: ' ', Pos: layout.Pt(50, 60), Base: layout.Pt(50, 60)},
			{Char: 'i', Pos: layout.Pt(60, 60), Base: layout.Pt(60, 60), Rotation: 30},
		},
		Rects: []layout.Shape{
			{X: 10, Y: 10, Width: 200, Height: 100, StrokeColor: white},
			{X: 100, Y: 100, Width: 40, Height: 40, StrokeColor: white, Dashed: true},
		},
		Circles: []layout.Circle{{CX: 120, CY: 120, R: 30, StrokeColor: white, Dashed: true}},
	}
}

func TestMeasurerUsesFont(t *testing.T) {
	r := NewRenderer(".")
	m := r.ForFont("builtin:go-mono")
	w1 := m.Advance('i', 40)
	w2 := m.Advance('W', 40)
	if w1 <= 0 {
		t.Fatalf("字宽应为正数: %g", w1)
	}
	// 等宽字体的各字符宽度一致
	if diff := w1 - w2; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("等宽字体宽度不一致: %g vs %g", w1, w2)
	}
	if big := m.Advance('i', 80); big <= w1 {
		t.Fatalf("字号加倍后宽度应增大: %g vs %g", big, w1)
	}

	prop := r.ForFont("builtin:go-regular")
	if prop.Advance('i', 40) >= prop.Advance('W', 40) {
		t.Fatalf("比例字体中 i 应窄于 W")
	}
}

func TestMeasurerFallsBackForMissingFont(t *testing.T) {
	r := NewRenderer("")
	m := r.ForFont("missing/font.ttf")
	if w := m.Advance('a', 40); w <= 0 {
		t.Fatalf("缺失字体应回退到内置字体: %g", w)
	}
}

func TestRenderSVG(t *testing.T) {
	bg := layout.Color{R: 20, G: 20, B: 20}
	r := NewRendererWithOptions(Options{BaseDir: ".", Background: &bg})
	data, err := r.Render(testSnapshot())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Fatalf("输出应为 SVG: %.80s", data)
	}
	plain := NewRendererWithOptions(Options{BaseDir: ".", Background: &bg})
	snap := testSnapshot()
	snap.Rects, snap.Circles = nil, nil
	bare, err := plain.Render(snap)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(bare) >= len(data) {
		t.Fatalf("去掉界面元素后输出应更短: %d vs %d", len(bare), len(data))
	}
}

func TestRenderSVGPhysicalSize(t *testing.T) {
	snap := testSnapshot()
	snap.Width, snap.Height = 960, 480
	data, err := NewRenderer(".").Render(snap)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 96dpi 下 960x480 px 对应 254x127 mm
	if !bytes.Contains(data, []byte(`width="254mm" height="127mm"`)) {
		t.Fatalf("SVG 物理尺寸应按 px 换算: %.160s", data)
	}
}

func TestGlyphTransformRotatesAboutAnchor(t *testing.T) {
	g := layout.Glyph{Char: 'I', Pos: layout.Pt(700, 400), Rotation: 90}
	m := glyphTransform(g)
	near := func(p canvas.Point, x, y float64) bool {
		return math.Abs(p.X-x) < 1e-9 && math.Abs(p.Y-y) < 1e-9
	}
	if o := m.Dot(canvas.Point{}); !near(o, 700, 400) {
		t.Fatalf("旋转后字形原点应仍在放置点: %v", o)
	}
	// 坐标系 y 轴向下，顺时针 90° 后 x 轴指向下方
	if p := m.Dot(canvas.Point{X: 10}); !near(p, 700, 410) {
		t.Fatalf("旋转方向错误: %v", p)
	}
	g.Rotation = 450
	if p := glyphTransform(g).Dot(canvas.Point{X: 10}); !near(p, 700, 410) {
		t.Fatalf("角度应按 360 取模: %v", p)
	}
}

func TestRenderPDF(t *testing.T) {
	r := NewRendererWithOptions(Options{Format: FormatPDF, Title: "typeforce"})
	data, err := r.Render(testSnapshot())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出应为 PDF")
	}
}

func TestRenderRejectsBadSnapshot(t *testing.T) {
	r := NewRenderer(".")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("空快照应返回错误")
	}
	if _, err := r.Render(&layout.Snapshot{Width: 0, Height: 10}); err == nil {
		t.Fatalf("零宽画布应返回错误")
	}
}

func TestFormatFromPath(t *testing.T) {
	if FormatFromPath("out/a.PDF") != FormatPDF || FormatFromPath("a.svg") != FormatSVG || FormatFromPath("a") != FormatSVG {
		t.Fatalf("按扩展名选择格式错误")
	}
}

func TestParseFontStyle(t *testing.T) {
	if got := parseFontStyle("SemiBold"); got != canvas.FontSemiBold {
		t.Fatalf("SemiBold 解析错误: %v", got)
	}
	if got := parseFontStyle("bold italic"); got != canvas.FontBold|canvas.FontItalic {
		t.Fatalf("bold italic 解析错误: %v", got)
	}
	if got := parseFontStyle(""); got != canvas.FontRegular {
		t.Fatalf("空样式应为常规体: %v", got)
	}
}
