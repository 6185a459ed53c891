// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
//
// 🔧 零值陷阱处理说明：
// 为了区分"用户未设置"和"用户设置为零值"，我们使用指针类型：
// - nil: 表示用户未在配置文件中设置该字段，将使用系统默认值
// - &value: 表示用户明确设置了该值，即使是零值（如false、""）也会被采用
type AppConfig struct {
	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 编解码配置 - 对应配置文件中的 codec 字段
	Codec *UserCodecConfig `json:"codec,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径（stdout/stderr 表示控制台）
}

// UserCodecConfig 用户编解码配置
type UserCodecConfig struct {
	// ABIDir 启动时预加载的 ABI 目录，每个 *.json 文件以文件名（不含扩展名）注册
	ABIDir *string `json:"abi_dir,omitempty"`

	// Contracts 合约地址 -> ABI 文件路径
	Contracts map[string]string `json:"contracts,omitempty"`

	// StrictDecode 解码时是否校验规范填充（默认 true）
	StrictDecode *bool `json:"strict_decode,omitempty"`

	// MetricsEnabled 是否注册 Prometheus 指标
	MetricsEnabled *bool `json:"metrics_enabled,omitempty"`
}

// StringPtr 返回字符串指针，便于构造配置
func StringPtr(s string) *string { return &s }

// BoolPtr 返回布尔指针，便于构造配置
func BoolPtr(b bool) *bool { return &b }
