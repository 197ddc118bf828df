// Package config 提供基于 viper 的配置加载、校验与热更新。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix 环境变量前缀，如 XSOCKJS_BROKER_LISTEN 覆盖 broker.listen
const envPrefix = "XSOCKJS"

// Loader 配置加载器
type Loader struct {
	viper *viper.Viper
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		viper: viper.New(),
	}
}

// LoadFile 加载配置文件。configType 为 "yaml" 或 "json"。
func (l *Loader) LoadFile(configPath string, configType string) error {
	l.viper.SetConfigFile(configPath)
	l.viper.SetConfigType(configType)

	// YAML 服务配置支持环境变量覆盖
	if configType == "yaml" {
		l.viper.SetEnvPrefix(envPrefix)
		l.viper.AutomaticEnv()
		l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	}

	if err := l.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// Unmarshal 解析整个配置到结构体
func (l *Loader) Unmarshal(target interface{}) error {
	if err := l.viper.Unmarshal(target); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// UnmarshalKey 解析配置中的某个 key 到结构体
func (l *Loader) UnmarshalKey(key string, target interface{}) error {
	if err := l.viper.UnmarshalKey(key, target); err != nil {
		return fmt.Errorf("failed to unmarshal key %s: %w", key, err)
	}
	return nil
}

// Load 加载并解析配置文件，一步到位。
func Load[T any](configPath string, configType string) (*T, error) {
	loader := NewLoader()
	if err := loader.LoadFile(configPath, configType); err != nil {
		return nil, err
	}
	var cfg T
	if err := loader.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
