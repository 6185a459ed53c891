// Package codec 提供合约调用编解码服务的配置
package codec

import (
	"strings"

	"github.com/weisyn/evmabi/pkg/types"
)

// CodecOptions 编解码配置选项
type CodecOptions struct {
	ABIDir         string            `json:"abi_dir"`         // 启动时预加载的 ABI / 编译产物目录
	Contracts      map[string]string `json:"contracts"`       // 合约地址 -> ABI 文件路径
	StrictDecode   bool              `json:"strict_decode"`   // 是否严格解码
	MetricsEnabled bool              `json:"metrics_enabled"` // 是否记录 Prometheus 指标
}

// Config 编解码配置实现
type Config struct {
	options *CodecOptions
}

// New 创建编解码配置，用户配置中出现的字段覆盖默认值
func New(userConfig *types.UserCodecConfig) *Config {
	options := createDefaultCodecOptions()
	if userConfig != nil {
		applyUserCodecConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultCodecOptions() *CodecOptions {
	return &CodecOptions{
		ABIDir:         defaultABIDir,
		Contracts:      map[string]string{},
		StrictDecode:   defaultStrictDecode,
		MetricsEnabled: defaultMetricsEnabled,
	}
}

func applyUserCodecConfig(options *CodecOptions, userConfig *types.UserCodecConfig) {
	if userConfig.ABIDir != nil {
		options.ABIDir = strings.TrimSpace(*userConfig.ABIDir)
	}
	for addr, path := range userConfig.Contracts {
		options.Contracts[strings.TrimSpace(addr)] = path
	}
	if userConfig.StrictDecode != nil {
		options.StrictDecode = *userConfig.StrictDecode
	}
	if userConfig.MetricsEnabled != nil {
		options.MetricsEnabled = *userConfig.MetricsEnabled
	}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *CodecOptions {
	return c.options
}

// GetABIDir 获取预加载目录
func (c *Config) GetABIDir() string {
	return c.options.ABIDir
}

// GetContracts 获取地址到 ABI 文件的映射
func (c *Config) GetContracts() map[string]string {
	return c.options.Contracts
}

// IsStrictDecode 是否严格解码
func (c *Config) IsStrictDecode() bool {
	return c.options.StrictDecode
}

// IsMetricsEnabled 是否启用指标
func (c *Config) IsMetricsEnabled() bool {
	return c.options.MetricsEnabled
}
