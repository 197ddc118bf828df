package logger

import "sync"

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// Default 返回进程级默认控制台 logger，构建失败时退化为 Noop
func Default() Logger {
	defaultOnce.Do(func() {
		cfg := DefaultConfig()
		cfg.EnableFile = false
		cfg.EnableConsole = true
		l, err := New(cfg)
		if err != nil {
			defaultLogger = NewNoop()
			return
		}
		defaultLogger = l
	})
	return defaultLogger
}
