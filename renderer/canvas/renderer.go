package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/typeforce/fonts"
	"github.com/ByLCY/typeforce/layout"
	"github.com/ByLCY/typeforce/renderer"
)

const overlayStrokeWidth = 1.0

// dashPattern is the on/off length of dashed overlays, in canvas px.
var dashPattern = []float64{4, 4}

// Format selects the vector output written by Render.
type Format int

const (
	FormatSVG Format = iota
	FormatPDF
)

func (f Format) String() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "svg"
}

// FormatFromPath picks PDF for a .pdf extension and SVG otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF
	}
	return FormatSVG
}

// Renderer measures glyphs and draws snapshots via github.com/tdewolff/canvas.
// The page is sized in millimetres (px*PxToMm) and the view scales scene
// pixels onto it, so drawing happens in px and a font of n px is loaded at
// n*MmToPt points in view units.
type Renderer struct {
	baseDir    string
	format     Format
	background *layout.Color
	title      string

	// injected resources
	fontBlobs map[string][]byte // by unique name

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	faces          map[faceKey]*canvas.FontFace
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ layout.FontMeasurer = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

type faceKey struct {
	font string
	size float64
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Format  Format
	// Background fills the whole canvas before drawing; nil keeps it transparent.
	Background *layout.Color
	// Title is written into the PDF document info.
	Title string
	Fonts map[string]Resource // fonts accessible via built-in:<name>
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates an SVG renderer rooted at baseDir for resolving font paths.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		format:       opts.Format,
		background:   opts.Background,
		title:        opts.Title,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
		faces:        map[faceKey]*canvas.FontFace{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // ignore error here; will be caught when actually used
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Format reports the output format used by Render.
func (r *Renderer) Format() Format { return r.format }

// Advance measures ch in the default font. Together with ForFont it makes
// the renderer a layout.FontMeasurer.
func (r *Renderer) Advance(ch rune, fontSize float64) float64 {
	return r.ForFont("").Advance(ch, fontSize)
}

// ForFont returns a layout.Measurer backed by the given font resource. The
// advance of a rune is the canvas text width of that rune alone.
func (r *Renderer) ForFont(font string) layout.Measurer {
	return layout.MeasurerFunc(func(ch rune, fontSize float64) float64 {
		face, err := r.cachedFace(font, fontSize)
		if err != nil {
			return fontSize * 0.5
		}
		return face.TextWidth(string(ch))
	})
}

// Render draws the snapshot and encodes it as SVG or PDF.
func (r *Renderer) Render(snap *layout.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("渲染快照为空")
	}
	if !(snap.Width > 0) || !(snap.Height > 0) || !layout.Finite(snap.Width) || !layout.Finite(snap.Height) {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", snap.Width, snap.Height)
	}

	w, h := snap.Width*layout.PxToMm, snap.Height*layout.PxToMm
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与场景保持左上角为原点
	ctx.SetView(canvas.Identity.Scale(layout.PxToMm, layout.PxToMm))

	if r.background != nil {
		ctx.SetFillColor(colorFromLayout(*r.background))
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.DrawPath(0, 0, canvas.Rectangle(snap.Width, snap.Height))
	}
	if err := r.drawGlyphs(ctx, snap.Glyphs, snap.Typography); err != nil {
		return nil, err
	}
	r.drawRects(ctx, snap.Rects)
	r.drawCircles(ctx, snap.Circles)

	var buf bytes.Buffer
	switch r.format {
	case FormatPDF:
		writer := pdf.New(&buf, w, h, nil)
		writer.SetInfo(r.title, "", "", "", "typeforce")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	default:
		writer := svg.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// drawGlyphs draws every glyph at its current position. Rotation is in
// degrees, clockwise on screen, around the glyph's placement point.
func (r *Renderer) drawGlyphs(ctx *canvas.Context, glyphs []layout.Glyph, typo layout.Typography) error {
	if len(glyphs) == 0 {
		return nil
	}
	face, err := r.fontFace(typo.Font, toPt(typo.FontSize), typo.Color)
	if err != nil {
		return err
	}
	for _, g := range glyphs {
		if unicode.IsSpace(g.Char) || !g.Pos.Finite() {
			continue
		}
		line := canvas.NewTextLine(face, string(g.Char), canvas.Left)
		rot := g.Rotation
		if rot == 0 || !layout.Finite(rot) {
			ctx.DrawText(g.Pos.X, g.Pos.Y, line)
			continue
		}
		ctx.Push()
		ctx.ComposeView(glyphTransform(g))
		ctx.DrawText(0, 0, line)
		ctx.Pop()
	}
	return nil
}

// glyphTransform moves the origin to the glyph's placement point and rotates
// about it. The view is y-down, so a positive angle turns clockwise on screen.
func glyphTransform(g layout.Glyph) canvas.Matrix {
	return canvas.Identity.Translate(g.Pos.X, g.Pos.Y).Rotate(math.Mod(g.Rotation, 360))
}

func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Shape) {
	for _, rc := range rects {
		r.setOverlayStyle(ctx, rc.StrokeColor, rc.StrokeWidth, rc.FillColor, rc.Dashed)
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
	ctx.SetDashes(0)
}

func (r *Renderer) drawCircles(ctx *canvas.Context, circles []layout.Circle) {
	for _, c := range circles {
		if !(c.R > 0) {
			continue
		}
		r.setOverlayStyle(ctx, c.StrokeColor, c.StrokeWidth, c.FillColor, c.Dashed)
		ctx.DrawPath(c.CX, c.CY, canvas.Circle(c.R))
	}
	ctx.SetDashes(0)
}

func (r *Renderer) setOverlayStyle(ctx *canvas.Context, stroke layout.Color, width float64, fill *layout.Color, dashed bool) {
	if width <= 0 {
		width = overlayStrokeWidth
	}
	if fill != nil {
		ctx.SetFillColor(colorFromLayout(*fill))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	ctx.SetStrokeColor(colorFromLayout(stroke))
	ctx.SetStrokeWidth(width)
	if dashed {
		ctx.SetDashes(0, dashPattern...)
	} else {
		ctx.SetDashes(0)
	}
}

// cachedFace returns the measuring face for font at fontSize px.
func (r *Renderer) cachedFace(font string, fontSize float64) (*canvas.FontFace, error) {
	key := faceKey{font: font, size: fontSize}
	r.fontMu.Lock()
	face, ok := r.faces[key]
	r.fontMu.Unlock()
	if ok {
		return face, nil
	}
	face, err := r.fontFace(font, toPt(fontSize), layout.Black)
	if err != nil {
		return nil, err
	}
	r.fontMu.Lock()
	r.faces[key] = face
	r.fontMu.Unlock()
	return face, nil
}

func (r *Renderer) fontFace(font string, size float64, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size, colorFromLayout(col), style, canvas.FontNormal), nil
}

// ensureFontFamily loads a font resource once. A resource of the form
// "src#style" selects a style, e.g. "fonts/Sans.ttf#bold".
func (r *Renderer) ensureFontFamily(font string) (*canvas.FontFamily, canvas.FontStyle, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[font]; ok {
		return entry.family, entry.style, nil
	}

	src, styleName, _ := strings.Cut(font, "#")
	style := parseFontStyle(styleName)
	if src == "" {
		src = "builtin:" + fonts.Default
	}
	family := canvas.NewFontFamily(src)

	if err := r.loadFontIntoFamily(family, src, style); err != nil {
		fallback, fbStyle, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.fontFamilies[font] = &fontFamilyEntry{family: fallback, style: fbStyle}
		return fallback, fbStyle, nil
	}

	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[font] = entry
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, src string, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(src)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

// loadFontBytes resolves injected blobs first, then the embedded Go fonts,
// then a path relative to baseDir.
func (r *Renderer) loadFontBytes(src string) ([]byte, error) {
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") || strings.HasPrefix(src, "embed:") {
		name := strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:"), "embed:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return fonts.Load(name)
	}
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 builtin:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

func (r *Renderer) fallback() (*canvas.FontFamily, canvas.FontStyle, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, canvas.FontRegular, nil
	}
	data, err := fonts.Load(fonts.Default)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily("typeforce-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, err
	}
	r.fallbackFamily = family
	return family, canvas.FontRegular, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt converts a size in canvas px to the point size passed to the font system.
func toPt(px float64) float64 { return px * layout.MmToPt }
