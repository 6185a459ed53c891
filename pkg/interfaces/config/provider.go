// Package config provides configuration provider interfaces.
package config

import (
	codecconfig "github.com/weisyn/evmabi/internal/config/codec"
	logconfig "github.com/weisyn/evmabi/internal/config/log"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetCodec 获取编解码配置
	GetCodec() *codecconfig.CodecOptions
}
