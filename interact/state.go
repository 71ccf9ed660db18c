package interact

// State 是交互状态，任一时刻只处于其中一种。
type State uint8

const (
	Idle        State = iota // 默认状态，指针移动驱动力场
	Dragging                 // 拖动文本框
	Resizing                 // 拖动手柄缩放文本框
	Selecting                // 选择模式，忽略指针事件
	TextEditing              // 文本编辑，隐藏文本框、手柄与力场示意
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Selecting:
		return "selecting"
	case TextEditing:
		return "text-editing"
	default:
		return "idle"
	}
}

// Modifiers 是指针事件携带的修饰键状态。
type Modifiers struct {
	// Constrain 按住时力场中心被锁定到水平或垂直轴。
	Constrain bool
}
