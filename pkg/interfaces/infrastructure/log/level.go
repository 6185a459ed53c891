package log

import "github.com/weisyn/evmabi/pkg/types"

// LogLevel 日志级别（定义在 pkg/types，供配置解析共用）
type LogLevel = types.LogLevel

// 常量别名
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
