package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// framePadding 是文本框内边距（px），左右上各留 10px。
const framePadding = 10.0

// Layout 将文本按空格分词，在 frame 内逐字形排版，返回有序的字形序列。
//
// 连续空格产生空“单词”，空单词同样推进一个空格宽度与字间距，不做合并。
// 单词宽度超过可用宽度时照常放置并溢出文本框，不做连字符断词。
// 结果只依赖输入参数，相同输入得到相同的基准位置。
func Layout(text string, frame Rect, typo Typography, m Measurer) ([]Glyph, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少字宽测量后端 Measurer")
	}
	if err := validateTypography(typo); err != nil {
		return nil, err
	}

	fontSize := typo.FontSize
	tracking := typo.Tracking()
	lineAdvance := typo.LineAdvance()
	baseline := typo.BaselineOffset()

	startX := frame.X + framePadding
	startY := frame.Y + framePadding // 行顶，基线由 baseline 偏移得到
	maxWidth := frame.Width - 2*framePadding
	space := advance(m, ' ', fontSize)

	glyphs := make([]Glyph, 0, utf8.RuneCountInString(text))
	x, y := startX, startY
	line, word := 0, 0
	advances := make([]float64, 0, 16)

	text = strings.ReplaceAll(text, "\r", "")
	for pi, para := range strings.Split(text, "\n") {
		if pi > 0 {
			// 显式换行
			x = startX
			y += lineAdvance
			line++
		}
		for _, w := range strings.Split(para, " ") {
			advances = advances[:0]
			for _, r := range w {
				advances = append(advances, advance(m, r, fontSize))
			}
			width := sumWithTracking(advances, tracking)

			if Wraps(x, width, startX, maxWidth) {
				x = startX
				y += lineAdvance
				line++
			}

			i := 0
			for _, r := range w {
				pos := Point{X: x, Y: y + baseline}
				glyphs = append(glyphs, Glyph{
					Char:    r,
					Base:    pos,
					Pos:     pos,
					Advance: advances[i],
					Line:    line,
					Word:    word,
				})
				x += advances[i] + tracking
				i++
			}

			x += space + tracking
			word++
		}
	}
	return glyphs, nil
}

// Wraps 判断单词是否需要换行：当且仅当 x + width > lineStart + usable。
func Wraps(x, width, lineStart, usable float64) bool {
	return x+width > lineStart+usable
}

// WordWidth 测量单词宽度：各字形前进宽度之和，加上字形之间（不含末尾）的字间距。
func WordWidth(word string, typo Typography, m Measurer) float64 {
	if m == nil {
		return 0
	}
	var advances []float64
	for _, r := range word {
		advances = append(advances, advance(m, r, typo.FontSize))
	}
	return sumWithTracking(advances, typo.Tracking())
}

func sumWithTracking(advances []float64, tracking float64) float64 {
	if len(advances) == 0 {
		return 0
	}
	w := 0.0
	for _, a := range advances {
		w += a
	}
	return w + tracking*float64(len(advances)-1)
}

// advance 读取字宽；测量结果非有限数或为负时按 0 处理，避免污染后续坐标。
func advance(m Measurer, r rune, fontSize float64) float64 {
	a := m.Advance(r, fontSize)
	if !isFinite(a) || a < 0 {
		return 0
	}
	return a
}

func validateTypography(t Typography) error {
	if !isFinite(t.FontSize) || t.FontSize <= 0 {
		return fmt.Errorf("layout: 字号无效: %v", t.FontSize)
	}
	if !isFinite(t.LineHeight) || t.LineHeight <= 0 {
		return fmt.Errorf("layout: 行高倍数无效: %v", t.LineHeight)
	}
	if !isFinite(t.TrackingEm) {
		return fmt.Errorf("layout: 字间距无效: %v", t.TrackingEm)
	}
	return nil
}

// Validate 检查排版参数是否可用于排版。
func (t Typography) Validate() error { return validateTypography(t) }
