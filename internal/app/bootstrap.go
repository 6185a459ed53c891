// Package app 负责装配配置、日志与编解码服务
package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	configmodule "github.com/weisyn/evmabi/internal/config"
	"github.com/weisyn/evmabi/internal/core/abi"
	logmodule "github.com/weisyn/evmabi/internal/core/infrastructure/log"
	"github.com/weisyn/evmabi/pkg/interfaces/config"
	"github.com/weisyn/evmabi/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/evmabi/pkg/types"
)

// App 装配完成的应用
type App struct {
	fxApp   *fx.App
	Service *abi.Service
	Logger  log.Logger
}

// Bootstrap 加载配置并通过 fx 装配各模块
//
// 配置优先级：配置文件 < 环境变量 < 命令行选项。
func Bootstrap(opts ...Option) (*App, error) {
	o := newOptions(opts...)
	if o.appConfig == nil {
		appConfig, err := loadAppConfig(o.configFilePath)
		if err != nil {
			return nil, err
		}
		o.appConfig = appConfig
	}
	o.applyOverrides()

	a := &App{}
	fxOptions := []fx.Option{
		fx.Provide(func() config.AppOptions { return o }),

		configmodule.Module(), // 1. 配置(不依赖其他)
		logmodule.Module(),    // 2. 日志(依赖配置)
		abi.Module(),          // 3. 编解码服务(依赖配置和日志)

		// 禁用fx内部日志
		fx.NopLogger,

		fx.Populate(&a.Service, &a.Logger),
	}
	if o.registerer != nil {
		reg := o.registerer
		fxOptions = append(fxOptions, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	a.fxApp = fx.New(fxOptions...)
	if err := a.fxApp.Err(); err != nil {
		return nil, fmt.Errorf("应用装配失败: %w", err)
	}
	return a, nil
}

func loadAppConfig(path string) (*types.AppConfig, error) {
	return configmodule.LoadAppConfig(path)
}

// Close 刷新日志缓冲区
func (a *App) Close() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
