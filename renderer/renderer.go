package renderer

import "github.com/ByLCY/typeforce/layout"

// Renderer 将画面快照输出为最终文件，例如 SVG 或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(snap *layout.Snapshot) ([]byte, error)
}
