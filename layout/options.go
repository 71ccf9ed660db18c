package layout

// Measurer 负责返回字符在给定字号（px）下的前进宽度（px）。
// 渲染后端实现该接口，排版阶段只依赖它，不依赖具体字体系统。
type Measurer interface {
	Advance(r rune, fontSize float64) float64
}

// MeasurerFunc 让普通函数满足 Measurer。
type MeasurerFunc func(r rune, fontSize float64) float64

func (f MeasurerFunc) Advance(r rune, fontSize float64) float64 { return f(r, fontSize) }

// FontMeasurer 是能按字体资源名提供 Measurer 的测量器。
// Typography.Font 改变后，排版使用对应字体的 Measurer。
type FontMeasurer interface {
	Measurer
	ForFont(font string) Measurer
}
