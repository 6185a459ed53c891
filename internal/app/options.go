package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/evmabi/pkg/interfaces/config"
	"github.com/weisyn/evmabi/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径（为空时只使用默认值和环境变量）
	configFilePath string

	// 直接给定的用户配置（优先级高于configFilePath）
	appConfig *types.AppConfig

	// 命令行覆盖
	logLevel string
	abiDir   string

	// 指标注册表（为空时使用独立注册表）
	registerer prometheus.Registerer
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接使用给定的用户配置
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithLogLevel 覆盖日志级别
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithABIDir 覆盖预加载的 ABI 目录
func WithABIDir(dir string) Option {
	return func(o *options) {
		o.abiDir = dir
	}
}

// WithRegisterer 设置 Prometheus 注册表
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// applyOverrides 将命令行覆盖写入用户配置
func (o *options) applyOverrides() {
	if o.appConfig == nil {
		o.appConfig = &types.AppConfig{}
	}
	if o.logLevel != "" {
		if o.appConfig.Log == nil {
			o.appConfig.Log = &types.UserLogConfig{}
		}
		level := o.logLevel
		o.appConfig.Log.Level = &level
	}
	if o.abiDir != "" {
		if o.appConfig.Codec == nil {
			o.appConfig.Codec = &types.UserCodecConfig{}
		}
		dir := o.abiDir
		o.appConfig.Codec.ABIDir = &dir
	}
}
