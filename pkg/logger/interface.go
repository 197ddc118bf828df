// Package logger 提供基于 zap 的结构化日志，其他 pkg 模块
// 引用 Logger 接口，避免重复定义。
package logger

// Logger 日志接口
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	// Named 派生带名称的子 logger
	Named(name string) Logger

	// WithFields 派生携带固定字段的子 logger
	WithFields(keysAndValues ...interface{}) Logger

	// Sync 刷新缓冲
	Sync() error
}
