package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/typeforce/force"
	"github.com/ByLCY/typeforce/layout"
)

func TestDefaultMatchesStudioConstants(t *testing.T) {
	opts, err := Default().StudioOptions()
	if err != nil {
		t.Fatalf("StudioOptions: %v", err)
	}
	if opts.Frame != (layout.Rect{X: 700, Y: 100, Width: 600, Height: 700}) {
		t.Fatalf("默认文本框错误: %+v", opts.Frame)
	}
	if opts.Typography.FontSize != 60 || opts.Typography.LineHeight != 1.25 || opts.Typography.Color != layout.White {
		t.Fatalf("默认排版错误: %+v", opts.Typography)
	}
	p := opts.Field
	if p.Shape != force.Circle || p.Mode != force.Push || p.Radius != 120 || p.Strength != 0.08 || p.Direction != force.Right {
		t.Fatalf("默认力场错误: %+v", p)
	}
	if opts.Interact.MinRadius != 10 || opts.Interact.MaxRadius != 200 || opts.Interact.WheelStep != 3 {
		t.Fatalf("默认交互参数错误: %+v", opts.Interact)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(`
[text]
content = "hello"
size = "45pt"
color = "#ff0000"

[field]
shape = "square"
mode = "spin"
direction = "up"
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	opts, err := cfg.StudioOptions()
	if err != nil {
		t.Fatalf("StudioOptions: %v", err)
	}
	if opts.Text != "hello" || math.Abs(opts.Typography.FontSize-60) > 1e-9 {
		t.Fatalf("45pt 应换算为 60px: %+v", opts.Typography)
	}
	if opts.Typography.Color != (layout.Color{R: 255}) {
		t.Fatalf("颜色解析错误: %+v", opts.Typography.Color)
	}
	if opts.Field.Shape != force.Square || opts.Field.Mode != force.Spin || opts.Field.Direction != force.Up {
		t.Fatalf("力场参数错误: %+v", opts.Field)
	}
	if opts.Frame.X != 700 || opts.Field.Radius != 120 {
		t.Fatalf("未设置的字段应保留默认值")
	}
}

func TestDecodeReplacesNonFinite(t *testing.T) {
	cfg, err := Decode(`
[field]
radius = nan
strength = inf

[frame]
width = -5

[interact]
min_radius = 300
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Field.Radius != 120 || cfg.Field.Strength != 0.08 {
		t.Fatalf("非有限数值应回退为默认值: %+v", cfg.Field)
	}
	if cfg.Frame.Width != 600 {
		t.Fatalf("非正宽度应回退为默认值: %g", cfg.Frame.Width)
	}
	if cfg.Interact.MinRadius != 10 || cfg.Interact.MaxRadius != 200 {
		t.Fatalf("半径范围无效时应回退: %+v", cfg.Interact)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode("[field\nradius = 1"); err == nil {
		t.Fatalf("语法错误应返回错误")
	}
	cfg, err := Decode(`[field]
mode = "explode"`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := cfg.StudioOptions(); err == nil {
		t.Fatalf("未知力类型应在转换时报错")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeforce.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n[canvas]\nbackground = \"none\"\n"), 0o644); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Fatalf("日志级别错误: %v", cfg.LogLevel())
	}
	if bg, err := cfg.Background(); err != nil || bg != nil {
		t.Fatalf("background=none 应为透明: %v %v", bg, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("缺失文件应返回错误")
	}
}
