package logger

// NoopLogger 丢弃一切输出的 Logger，
// 作为可选日志依赖缺省时的安全替身。
type NoopLogger struct{}

var _ Logger = NoopLogger{}

// NewNoop 创建空日志对象
func NewNoop() NoopLogger { return NoopLogger{} }

func (NoopLogger) Debug(string, ...interface{}) {}
func (NoopLogger) Info(string, ...interface{})  {}
func (NoopLogger) Warn(string, ...interface{})  {}
func (NoopLogger) Error(string, ...interface{}) {}

func (n NoopLogger) Named(string) Logger              { return n }
func (n NoopLogger) WithFields(...interface{}) Logger { return n }
func (NoopLogger) Sync() error                        { return nil }
