package logger

// Level 日志等级
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Format 日志格式
type Format string

const (
	JSONFormat    Format = "json"
	ConsoleFormat Format = "console"
)

// RotationType 轮换类型
type RotationType string

const (
	RotationBySize RotationType = "size"
	RotationByTime RotationType = "time"
)

// Config 日志配置
type Config struct {
	// Level 日志等级
	Level Level `mapstructure:"level" json:"level" yaml:"level"`
	// Format 输出格式 (json/console)
	Format Format `mapstructure:"format" json:"format" yaml:"format"`

	// EnableConsole 启用控制台输出
	EnableConsole bool `mapstructure:"enable_console" json:"enable_console" yaml:"enable_console"`
	// EnableFile 启用文件输出
	EnableFile bool `mapstructure:"enable_file" json:"enable_file" yaml:"enable_file"`
	// OutputPath 日志文件路径
	OutputPath string `mapstructure:"output_path" json:"output_path" yaml:"output_path"`

	// TimeFormat 时间格式
	TimeFormat string `mapstructure:"time_format" json:"time_format" yaml:"time_format"`

	// Rotation 轮换配置
	Rotation RotationConfig `mapstructure:"rotation" json:"rotation" yaml:"rotation"`

	// Development 开发模式（彩色等级输出）
	Development bool `mapstructure:"development" json:"development" yaml:"development"`
}

// RotationConfig 轮换配置
type RotationConfig struct {
	// Type 轮换类型: size 或 time
	Type RotationType `mapstructure:"type" json:"type" yaml:"type"`

	// 按大小轮换 (lumberjack)
	MaxSize    int  `mapstructure:"max_size" json:"max_size" yaml:"max_size"`          // 单文件最大大小 (MB)
	MaxBackups int  `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"` // 保留的旧文件数量
	MaxAge     int  `mapstructure:"max_age" json:"max_age" yaml:"max_age"`             // 保留天数
	Compress   bool `mapstructure:"compress" json:"compress" yaml:"compress"`          // 是否压缩旧文件

	// 按时间轮换 (file-rotatelogs)
	RotationTime    string `mapstructure:"rotation_time" json:"rotation_time" yaml:"rotation_time"`          // 轮换间隔: 1h, 24h
	MaxAgeTime      string `mapstructure:"max_age_time" json:"max_age_time" yaml:"max_age_time"`             // 保留时长: 168h
	RotationPattern string `mapstructure:"rotation_pattern" json:"rotation_pattern" yaml:"rotation_pattern"` // 文件名时间格式
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Level:         InfoLevel,
		Format:        ConsoleFormat,
		EnableConsole: true,
		EnableFile:    false,
		TimeFormat:    "2006-01-02 15:04:05",
		Rotation: RotationConfig{
			Type:            RotationBySize,
			MaxSize:         100,
			MaxBackups:      5,
			MaxAge:          7,
			Compress:        true,
			RotationTime:    "24h",
			MaxAgeTime:      "168h",
			RotationPattern: ".%Y%m%d",
		},
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.EnableFile && c.OutputPath == "" {
		return ErrInvalidOutputPath
	}
	if !c.EnableConsole && !c.EnableFile {
		return ErrNoOutputEnabled
	}
	return nil
}
