package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/weisyn/evmabi/pkg/types"
)

// 环境变量覆盖
const (
	EnvLogLevel = "EVMABI_LOG_LEVEL"
	EnvABIDir   = "EVMABI_ABI_DIR"
)

// LoadAppConfig 读取 JSON 配置文件并应用环境变量覆盖
//
// path 为空时只应用环境变量。配置文件中未出现的字段保持 nil，由各配置包填充默认值。
func LoadAppConfig(path string) (*types.AppConfig, error) {
	appConfig := &types.AppConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败 %s: %w", path, err)
		}
		if err := json.Unmarshal(data, appConfig); err != nil {
			return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
		}
	}
	ApplyEnvOverrides(appConfig)
	return appConfig, nil
}

// ApplyEnvOverrides 用环境变量覆盖配置
func ApplyEnvOverrides(appConfig *types.AppConfig) {
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		if appConfig.Log == nil {
			appConfig.Log = &types.UserLogConfig{}
		}
		appConfig.Log.Level = &level
	}
	if dir := strings.TrimSpace(os.Getenv(EnvABIDir)); dir != "" {
		if appConfig.Codec == nil {
			appConfig.Codec = &types.UserCodecConfig{}
		}
		appConfig.Codec.ABIDir = &dir
	}
}
