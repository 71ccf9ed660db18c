package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap 列出终端界面的按键。交互键（t/v/c/s/1/2/3）交给分派器处理，这里只用于帮助信息；
// 强度与字号键由终端界面直接调用对应的设置方法。
type keyMap struct {
	Quit   key.Binding
	Export key.Binding
	Copy   key.Binding
	Help   key.Binding

	Edit   key.Binding
	Select key.Binding
	Circle key.Binding
	Square key.Binding
	Push   key.Binding
	Pull   key.Binding
	Spin   key.Binding
	Done   key.Binding

	Stronger key.Binding
	Weaker   key.Binding
	Bigger   key.Binding
	Smaller  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy svg")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Edit:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "edit text")),
		Select: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select")),
		Circle: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "circle")),
		Square: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "square / next direction")),
		Push:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "push")),
		Pull:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pull")),
		Spin:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "spin")),
		Done:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "finish editing")),

		Stronger: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "stronger")),
		Weaker:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "weaker")),
		Bigger:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "larger text")),
		Smaller:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "smaller text")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Square, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Done, k.Select},
		{k.Circle, k.Square},
		{k.Push, k.Pull, k.Spin},
		{k.Stronger, k.Weaker, k.Bigger, k.Smaller},
		{k.Export, k.Copy, k.Help, k.Quit},
	}
}
