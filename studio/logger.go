package studio

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler 丢弃所有日志；Enabled 返回 false，调用方不会格式化消息。
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger 设置 studio 使用的日志器。默认不输出任何日志；传入 nil 恢复静默。
//
// 使用的级别：
//   - [slog.LevelDebug]: 重排、状态切换、方向切换、导出与脚本回放步骤
//   - [slog.LevelWarn]: 配置或输入回退到默认值
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger 返回当前日志器，可并发调用。
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
