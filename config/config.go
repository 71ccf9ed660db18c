// Package config 读取 TOML 配置文件，并转换为 Studio、渲染器与终端界面使用的参数。
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/typeforce/force"
	"github.com/ByLCY/typeforce/interact"
	"github.com/ByLCY/typeforce/layout"
	"github.com/ByLCY/typeforce/studio"
)

// Config 是完整的配置文件结构。
type Config struct {
	Canvas   Canvas   `toml:"canvas"`
	Text     Text     `toml:"text"`
	Frame    Frame    `toml:"frame"`
	Field    Field    `toml:"field"`
	Interact Interact `toml:"interact"`
	TUI      TUI      `toml:"tui"`
	Log      Log      `toml:"log"`
}

type Canvas struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Background string  `toml:"background"`
	UIColor    string  `toml:"ui_color"`
}

type Text struct {
	Content string `toml:"content"`
	Font    string `toml:"font"`
	// Size 可带单位，例如 "60"、"45pt"、"16mm"。
	Size       string  `toml:"size"`
	LineHeight float64 `toml:"line_height"`
	Tracking   float64 `toml:"tracking"`
	Baseline   float64 `toml:"baseline"`
	Color      string  `toml:"color"`
}

type Frame struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Field struct {
	Shape     string  `toml:"shape"`
	Mode      string  `toml:"mode"`
	Direction string  `toml:"direction"`
	Radius    float64 `toml:"radius"`
	Strength  float64 `toml:"strength"`
}

type Interact struct {
	MinRadius    float64 `toml:"min_radius"`
	MaxRadius    float64 `toml:"max_radius"`
	WheelStep    float64 `toml:"wheel_step"`
	HitTolerance float64 `toml:"hit_tolerance"`
}

// TUI 描述终端界面：一个字符单元对应的场景像素与刷新率。
// 单元宽高为 0 时按终端窗口大小自动适配，使整个画布可见。
type TUI struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	FPS        int     `toml:"fps"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default 返回内置默认配置。
func Default() Config {
	opts := interact.DefaultOptions()
	return Config{
		Canvas: Canvas{Width: 1400, Height: 900, Background: "#000000", UIColor: "white"},
		Text: Text{
			Content:    "Type to shape the words",
			Font:       "builtin:go-regular",
			Size:       "60px",
			LineHeight: 1.25,
			Color:      "white",
		},
		Frame: Frame{X: 700, Y: 100, Width: 600, Height: 700},
		Field: Field{Shape: "circle", Mode: "push", Direction: "right", Radius: 120, Strength: 0.08},
		Interact: Interact{
			MinRadius:    opts.MinRadius,
			MaxRadius:    opts.MaxRadius,
			WheelStep:    opts.WheelStep,
			HitTolerance: opts.HitTolerance,
		},
		TUI: TUI{FPS: 60},
		Log: Log{Level: "info"},
	}
}

// Load 在默认配置之上解码 path。非有限数值回退为默认值并记录警告。
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	return Decode(string(data))
}

// Decode 在默认配置之上解码 TOML 文本。
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("解析配置失败: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		studio.Logger().Warn("config: 忽略未知配置项", "keys", fmt.Sprint(undecoded))
	}
	cfg.sanitize(Default())
	return cfg, nil
}

// sanitize 把非有限或越界的数值替换为默认值。
func (c *Config) sanitize(def Config) {
	fix := func(name string, v *float64, fallback float64, positive bool) {
		if layout.Finite(*v) && (!positive || *v > 0) {
			return
		}
		studio.Logger().Warn("config: 数值无效，使用默认值", "key", name, "value", *v, "default", fallback)
		*v = fallback
	}
	fix("canvas.width", &c.Canvas.Width, def.Canvas.Width, true)
	fix("canvas.height", &c.Canvas.Height, def.Canvas.Height, true)
	fix("text.line_height", &c.Text.LineHeight, def.Text.LineHeight, true)
	fix("text.tracking", &c.Text.Tracking, def.Text.Tracking, false)
	fix("text.baseline", &c.Text.Baseline, def.Text.Baseline, false)
	fix("frame.x", &c.Frame.X, def.Frame.X, false)
	fix("frame.y", &c.Frame.Y, def.Frame.Y, false)
	fix("frame.width", &c.Frame.Width, def.Frame.Width, true)
	fix("frame.height", &c.Frame.Height, def.Frame.Height, true)
	fix("field.radius", &c.Field.Radius, def.Field.Radius, true)
	fix("field.strength", &c.Field.Strength, def.Field.Strength, false)
	fix("interact.min_radius", &c.Interact.MinRadius, def.Interact.MinRadius, true)
	fix("interact.max_radius", &c.Interact.MaxRadius, def.Interact.MaxRadius, true)
	fix("interact.wheel_step", &c.Interact.WheelStep, def.Interact.WheelStep, true)
	fix("interact.hit_tolerance", &c.Interact.HitTolerance, def.Interact.HitTolerance, false)
	fix("tui.cell_width", &c.TUI.CellWidth, def.TUI.CellWidth, false)
	fix("tui.cell_height", &c.TUI.CellHeight, def.TUI.CellHeight, false)
	if c.TUI.CellWidth < 0 || c.TUI.CellHeight < 0 {
		studio.Logger().Warn("config: 单元尺寸无效，按窗口适配",
			"cell_width", c.TUI.CellWidth, "cell_height", c.TUI.CellHeight)
		c.TUI.CellWidth, c.TUI.CellHeight = 0, 0
	}
	if c.Interact.MinRadius > c.Interact.MaxRadius {
		studio.Logger().Warn("config: 半径范围无效，使用默认值",
			"min", c.Interact.MinRadius, "max", c.Interact.MaxRadius)
		c.Interact.MinRadius, c.Interact.MaxRadius = def.Interact.MinRadius, def.Interact.MaxRadius
	}
	if c.TUI.FPS <= 0 {
		c.TUI.FPS = def.TUI.FPS
	}
}

// Typography 返回文本排版参数。
func (c Config) Typography() (layout.Typography, error) {
	size := layout.ParseLength(c.Text.Size, layout.Length{Value: 60, Unit: layout.UnitPX})
	col, err := layout.ParseColor(c.Text.Color)
	if err != nil {
		return layout.Typography{}, fmt.Errorf("text.color: %w", err)
	}
	return layout.Typography{
		FontSize:   size.PX(60),
		LineHeight: c.Text.LineHeight,
		TrackingEm: c.Text.Tracking,
		Color:      col,
		Font:       c.Text.Font,
		Baseline:   c.Text.Baseline,
	}, nil
}

// FieldParams 返回力场参数。
func (c Config) FieldParams() (force.Params, error) {
	shape, err := force.ParseShape(c.Field.Shape)
	if err != nil {
		return force.Params{}, fmt.Errorf("field.shape: %w", err)
	}
	mode, err := force.ParseMode(c.Field.Mode)
	if err != nil {
		return force.Params{}, fmt.Errorf("field.mode: %w", err)
	}
	dir, err := force.ParseDirection(c.Field.Direction)
	if err != nil {
		return force.Params{}, fmt.Errorf("field.direction: %w", err)
	}
	return force.Params{
		Shape:     shape,
		Mode:      mode,
		Direction: dir,
		Radius:    c.Field.Radius,
		Strength:  c.Field.Strength,
	}, nil
}

// Background 返回画布背景色；为空时返回 nil（透明）。
func (c Config) Background() (*layout.Color, error) {
	if c.Canvas.Background == "" || c.Canvas.Background == "none" {
		return nil, nil
	}
	col, err := layout.ParseColor(c.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("canvas.background: %w", err)
	}
	return &col, nil
}

// StudioOptions 把配置转换为 studio.Options。
func (c Config) StudioOptions() (studio.Options, error) {
	typo, err := c.Typography()
	if err != nil {
		return studio.Options{}, err
	}
	field, err := c.FieldParams()
	if err != nil {
		return studio.Options{}, err
	}
	ui, err := layout.ParseColor(c.Canvas.UIColor)
	if err != nil {
		return studio.Options{}, fmt.Errorf("canvas.ui_color: %w", err)
	}
	return studio.Options{
		Width:      c.Canvas.Width,
		Height:     c.Canvas.Height,
		Text:       c.Text.Content,
		Frame:      layout.Rect{X: c.Frame.X, Y: c.Frame.Y, Width: c.Frame.Width, Height: c.Frame.Height},
		Typography: typo,
		Field:      field,
		Interact: interact.Options{
			MinRadius:    c.Interact.MinRadius,
			MaxRadius:    c.Interact.MaxRadius,
			WheelStep:    c.Interact.WheelStep,
			HitTolerance: c.Interact.HitTolerance,
		},
		UIColor: ui,
	}, nil
}

// LogLevel 解析日志级别，无法识别时返回 Info。
func (c Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
