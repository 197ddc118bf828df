package session

import (
	"errors"
)

// Config 注册表配置。
type Config struct {
	// MailboxSize 注册表命令邮箱大小。
	MailboxSize int `mapstructure:"mailbox_size" json:"mailbox_size" yaml:"mailbox_size"`
	// RecvChannelSize 传输端帧流通道大小。
	RecvChannelSize int `mapstructure:"recv_channel_size" json:"recv_channel_size" yaml:"recv_channel_size"`
	// EventChannelSize 每会话处理器事件队列大小。
	EventChannelSize int `mapstructure:"event_channel_size" json:"event_channel_size" yaml:"event_channel_size"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{
		MailboxSize:      1024,
		RecvChannelSize:  256,
		EventChannelSize: 1024,
	}
}

// Validate 验证配置。
func (c *Config) Validate() error {
	if c.MailboxSize <= 0 {
		return errors.New("mailbox_size must be greater than 0")
	}
	if c.RecvChannelSize <= 0 {
		return errors.New("recv_channel_size must be greater than 0")
	}
	if c.EventChannelSize <= 0 {
		return errors.New("event_channel_size must be greater than 0")
	}
	return nil
}
