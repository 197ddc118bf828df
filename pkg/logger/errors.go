package logger

import "errors"

var (
	// ErrInvalidOutputPath 启用文件输出但未给出路径
	ErrInvalidOutputPath = errors.New("logger: file output enabled without output path")

	// ErrNoOutputEnabled 控制台与文件输出均未启用
	ErrNoOutputEnabled = errors.New("logger: no output enabled")
)
