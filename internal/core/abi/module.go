package abi

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	codecconfig "github.com/weisyn/evmabi/internal/config/codec"
	logimpl "github.com/weisyn/evmabi/internal/core/infrastructure/log"
	abiInterfaces "github.com/weisyn/evmabi/pkg/interfaces/abi"
	"github.com/weisyn/evmabi/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义编解码模块的依赖参数
type ModuleParams struct {
	fx.In

	Logger     log.Logger                `optional:"true"`
	Options    *codecconfig.CodecOptions `optional:"true"`
	Registerer prometheus.Registerer     `optional:"true"`
}

// ModuleOutput 定义编解码模块的输出结构
type ModuleOutput struct {
	fx.Out

	Service       *Service
	PublicService abiInterfaces.Service
}

// Module 返回编解码模块
func Module() fx.Option {
	return fx.Module("abi",
		fx.Provide(ProvideService),
	)
}

// ProvideService 根据配置创建服务并预加载 abi_dir 与 contracts 中的 ABI
func ProvideService(params ModuleParams) (ModuleOutput, error) {
	opts := params.Options
	if opts == nil {
		opts = codecconfig.New(nil).GetOptions()
	}

	var metrics *Metrics
	if opts.MetricsEnabled {
		reg := params.Registerer
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		m, err := NewMetrics(reg)
		if err != nil {
			return ModuleOutput{}, fmt.Errorf("注册编解码指标失败: %w", err)
		}
		metrics = m
	}

	svc := NewService(logimpl.NewModuleLogger(params.Logger, "abi"), metrics, DecodeOptions{Lenient: !opts.StrictDecode})

	if opts.ABIDir != "" {
		if _, err := svc.LoadDir(opts.ABIDir); err != nil {
			return ModuleOutput{}, err
		}
	}
	for contractID, path := range opts.Contracts {
		if err := svc.LoadFile(contractID, path); err != nil {
			return ModuleOutput{}, err
		}
	}

	return ModuleOutput{
		Service:       svc,
		PublicService: svc,
	}, nil
}
