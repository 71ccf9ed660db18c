package studio

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ByLCY/typeforce/dsl"
	"github.com/ByLCY/typeforce/force"
	"github.com/ByLCY/typeforce/interact"
	"github.com/ByLCY/typeforce/layout"
)

// maxRepeat 限制 repeat 与 tick 的次数，避免脚本写错时卡死。
const maxRepeat = 100000

// countArg 读取次数参数并限制在 [0, maxRepeat]。
func countArg(args []*dsl.Lexeme, i int, what string) (int, error) {
	v, err := floatArg(args, i)
	if err != nil {
		return 0, err
	}
	if !(v >= 0 && v <= maxRepeat) {
		return 0, fmt.Errorf("%s 次数超出范围: %g", what, v)
	}
	return int(v), nil
}

// scriptEditor 是脚本回放使用的文本编辑协作方：type 命令写入缓冲区。
type scriptEditor struct {
	buf     string
	touched bool
}

func (e *scriptEditor) Begin(current string) {
	e.buf = current
	e.touched = false
}

func (e *scriptEditor) End() (string, bool) { return e.buf, e.touched }

// player 保存一次回放的状态。
type player struct {
	s        *Studio
	editor   *scriptEditor
	autotick bool
	ticks    int
}

// Replay 在 Studio 上依次执行脚本命令。autotick 开启（默认）时每条命令后推进一帧。
func Replay(s *Studio, sc *dsl.Script) error {
	if s == nil || sc == nil {
		return fmt.Errorf("studio: 回放缺少 studio 或脚本")
	}
	p := &player{s: s, editor: &scriptEditor{}, autotick: true}
	s.input.SetEditor(p.editor)
	if err := p.run(sc.Commands); err != nil {
		return err
	}
	Logger().Debug("studio: replay done", "commands", len(sc.Commands), "ticks", p.ticks)
	return nil
}

func (p *player) run(cmds []*dsl.Command) error {
	for _, cmd := range cmds {
		if err := p.exec(cmd); err != nil {
			return fmt.Errorf("studio: 第 %d 行 %s: %w", cmd.Pos.Line, cmd.Name, err)
		}
		if n := strings.ToLower(cmd.Name); p.autotick && n != "tick" && n != "repeat" {
			p.tick()
		}
	}
	return nil
}

func (p *player) tick() {
	p.s.Frame()
	p.ticks++
}

func (p *player) exec(cmd *dsl.Command) error {
	args := cmd.Values()
	s := p.s
	in := s.input
	name := strings.ToLower(cmd.Name)
	Logger().Debug("studio: replay", "line", cmd.Pos.Line, "cmd", name)

	switch name {
	case "text":
		str, err := stringArg(args, 0)
		if err != nil {
			return err
		}
		s.SetText(str)
	case "font":
		if len(args) == 0 {
			return fmt.Errorf("缺少字号")
		}
		t := s.Typography()
		size := layout.ParseLength(args[0].Raw, layout.Length{Value: t.FontSize, Unit: layout.UnitPX})
		t.FontSize = size.PX(t.FontSize)
		if len(args) > 1 {
			t.Font = args[1].Word()
		}
		return s.SetTypography(t)
	case "lineheight":
		v, err := floatArg(args, 0)
		if err != nil {
			return err
		}
		t := s.Typography()
		t.LineHeight = layout.OrLast(v, t.LineHeight)
		return s.SetTypography(t)
	case "tracking":
		v, err := floatArg(args, 0)
		if err != nil {
			return err
		}
		t := s.Typography()
		t.TrackingEm = layout.OrLast(v, t.TrackingEm)
		return s.SetTypography(t)
	case "baseline":
		v, err := floatArg(args, 0)
		if err != nil {
			return err
		}
		t := s.Typography()
		t.Baseline = layout.OrLast(v, t.Baseline)
		return s.SetTypography(t)
	case "color":
		if len(args) == 0 {
			return fmt.Errorf("缺少颜色")
		}
		c, err := layout.ParseColor(args[0].Value)
		if err != nil {
			return err
		}
		t := s.Typography()
		t.Color = c
		return s.SetTypography(t)
	case "frame":
		v, err := floats(args, 4)
		if err != nil {
			return err
		}
		return s.SetFrame(layout.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]})
	case "shape":
		v, err := stringArg(args, 0)
		if err != nil {
			return err
		}
		sh, err := force.ParseShape(v)
		if err != nil {
			return err
		}
		in.SetShape(sh)
	case "mode":
		v, err := stringArg(args, 0)
		if err != nil {
			return err
		}
		m, err := force.ParseMode(v)
		if err != nil {
			return err
		}
		in.SetMode(m)
	case "radius":
		v, err := controlArg(args, 0, in.Params().Radius)
		if err != nil {
			return err
		}
		in.SetRadius(v)
	case "strength":
		v, err := controlArg(args, 0, in.Params().Strength)
		if err != nil {
			return err
		}
		in.SetStrength(v)
	case "direction":
		v, err := stringArg(args, 0)
		if err != nil {
			return err
		}
		if v == "next" {
			in.CycleDirection()
			return nil
		}
		d, err := force.ParseDirection(v)
		if err != nil {
			return err
		}
		in.SetDirection(d)
	case "down", "move":
		v, err := floats(args, 2)
		if err != nil {
			return err
		}
		mods := modifiers(args[2:])
		pt := layout.Pt(v[0], v[1])
		if name == "down" {
			in.PointerDown(pt, mods)
		} else {
			in.PointerMove(pt, mods)
		}
	case "up":
		var pt layout.Point
		if len(args) >= 2 {
			v, err := floats(args, 2)
			if err != nil {
				return err
			}
			pt = layout.Pt(v[0], v[1])
		}
		in.PointerUp(pt)
	case "wheel":
		v, err := floatArg(args, 0)
		if err != nil {
			return err
		}
		in.Wheel(v)
	case "key":
		k, err := stringArg(args, 0)
		if err != nil {
			return err
		}
		in.Key(k)
	case "type":
		str, err := stringArg(args, 0)
		if err != nil {
			return err
		}
		p.typeText(str)
	case "tick":
		n := 1
		if len(args) > 0 {
			v, err := countArg(args, 0, "tick")
			if err != nil {
				return err
			}
			n = v
		}
		for i := 0; i < n; i++ {
			p.tick()
		}
	case "autotick":
		v, err := stringArg(args, 0)
		if err != nil {
			return err
		}
		switch v {
		case "on", "true":
			p.autotick = true
		case "off", "false":
			p.autotick = false
		default:
			return fmt.Errorf("autotick 只接受 on/off，实际 %q", v)
		}
	case "repeat":
		n, err := countArg(args, 0, "repeat")
		if err != nil {
			return err
		}
		if cmd.Block == nil {
			return fmt.Errorf("repeat 缺少命令块")
		}
		for i := 0; i < n; i++ {
			if err := p.run(cmd.Block.Commands); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("未知命令")
	}
	return nil
}

// typeText 写入文本编辑缓冲区。不在编辑状态时会先进入编辑，写入后立即提交。
func (p *player) typeText(str string) {
	in := p.s.input
	if in.State() == interact.TextEditing {
		p.editor.buf = str
		p.editor.touched = true
		return
	}
	in.BeginTextEdit()
	if in.State() != interact.TextEditing {
		return
	}
	p.editor.buf = str
	p.editor.touched = true
	in.EndTextEdit()
}

func modifiers(args []*dsl.Lexeme) interact.Modifiers {
	var m interact.Modifiers
	for _, a := range args {
		switch strings.ToLower(a.Value) {
		case "shift", "constrain":
			m.Constrain = true
		}
	}
	return m
}

func stringArg(args []*dsl.Lexeme, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("缺少第 %d 个参数", i+1)
	}
	return args[i].Word(), nil
}

func floatArg(args []*dsl.Lexeme, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("缺少第 %d 个参数", i+1)
	}
	return args[i].Float()
}

// controlArg 读取滑块类数值：无法解析或非有限时沿用 last。
func controlArg(args []*dsl.Lexeme, i int, last float64) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("缺少第 %d 个参数", i+1)
	}
	raw := strings.TrimRightFunc(args[i].Word(), unicode.IsLetter)
	return layout.ParseNumber(raw, last), nil
}

func floats(args []*dsl.Lexeme, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("需要 %d 个数值参数，实际 %d 个", n, len(args))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := args[i].Float()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
