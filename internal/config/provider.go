package config

import (
	"github.com/weisyn/evmabi/internal/config/codec"
	"github.com/weisyn/evmabi/internal/config/log"
	"github.com/weisyn/evmabi/pkg/interfaces/config"
	"github.com/weisyn/evmabi/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}
	return log.New(userLogConfig).GetOptions()
}

// GetCodec 获取编解码配置
func (p *Provider) GetCodec() *codec.CodecOptions {
	var userCodecConfig *types.UserCodecConfig
	if p.appConfig != nil && p.appConfig.Codec != nil {
		userCodecConfig = p.appConfig.Codec
	}
	return codec.New(userCodecConfig).GetOptions()
}
