package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/typeforce/config"
	"github.com/ByLCY/typeforce/dsl"
	"github.com/ByLCY/typeforce/layout"
	"github.com/ByLCY/typeforce/renderer"
	canvasrenderer "github.com/ByLCY/typeforce/renderer/canvas"
	"github.com/ByLCY/typeforce/studio"
	"github.com/ByLCY/typeforce/tui"
)

func main() {
	configPath := flag.String("config", "", "TOML 配置文件路径")
	scriptPath := flag.String("script", "", "交互脚本路径（无界面回放）")
	text := flag.String("text", "", "覆盖配置中的文本")
	output := flag.String("out", "output/typeforce.svg", "导出路径，.pdf 结尾时输出 PDF")
	debug := flag.String("debug", "", "画面快照调试 JSON 输出路径")
	golden := flag.String("golden", "", "与导出结果比较的基准文件")
	interactive := flag.Bool("tui", false, "启动终端界面")
	logLevel := flag.String("log-level", "", "日志级别：debug/info/warn/error，覆盖配置")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("加载配置失败: %v", err)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	studio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))
	if *text != "" {
		cfg.Text.Content = *text
	}

	baseDir := "."
	if *configPath != "" {
		baseDir = filepath.Dir(*configPath)
	}
	bg, err := cfg.Background()
	if err != nil {
		log.Fatalf("解析配置失败: %v", err)
	}
	export := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir:    baseDir,
		Format:     canvasrenderer.FormatFromPath(*output),
		Background: bg,
		Title:      cfg.Text.Content,
	})

	s, err := newStudio(cfg, export)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	if *interactive {
		svgRenderer := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, Background: bg})
		if err := tui.Run(s, tui.Options{
			CellWidth:  cfg.TUI.CellWidth,
			CellHeight: cfg.TUI.CellHeight,
			FPS:        cfg.TUI.FPS,
			Export:     export,
			OutPath:    *output,
			Clipboard:  svgRenderer,
		}); err != nil {
			log.Fatalf("终端界面异常退出: %v", err)
		}
		return
	}

	if err := run(s, *scriptPath, *output, *debug, *golden, export); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
	fmt.Printf("已导出：%s\n", *output)
}

func newStudio(cfg config.Config, m layout.Measurer) (*studio.Studio, error) {
	opts, err := cfg.StudioOptions()
	if err != nil {
		return nil, err
	}
	return studio.New(opts, m, nil)
}

// run 串联脚本回放、导出、调试输出与基准比较。
func run(s *studio.Studio, scriptPath, outputPath, debugPath, goldenPath string, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	if scriptPath != "" {
		file, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("无法打开脚本 %s: %w", scriptPath, err)
		}
		defer file.Close()

		sc, err := dsl.Parse(file)
		if err != nil {
			return fmt.Errorf("解析脚本失败: %w", err)
		}
		if err := studio.Replay(s, sc); err != nil {
			return fmt.Errorf("回放脚本失败: %w", err)
		}
	}

	data, err := s.Export(r)
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(s, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("写入导出文件失败: %w", err)
	}

	if goldenPath != "" {
		return compareGolden(data, goldenPath)
	}
	return nil
}

func writeDebug(s *studio.Studio, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(s.Snapshot(), debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
