package config

import "errors"

var (
	// ErrValidationFailed 配置未通过校验
	ErrValidationFailed = errors.New("config: validation failed")

	// ErrNilConfig 待校验对象为 nil
	ErrNilConfig = errors.New("config: nil config")
)
