package abi

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// 操作标签
const (
	opRegister = "register"
	opEncode   = "encode"
	opDecode   = "decode"
)

// Metrics 编解码服务的 Prometheus 指标
//
// 为 nil 时所有记录方法都是空操作。
type Metrics struct {
	operations   *prometheus.CounterVec
	payloadBytes *prometheus.HistogramVec
}

// NewMetrics 创建指标并注册到 reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evmabi",
				Subsystem: "codec",
				Name:      "operations_total",
				Help:      "Codec operations by kind and result",
			},
			[]string{"op", "result"},
		),
		payloadBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "evmabi",
				Subsystem: "codec",
				Name:      "payload_bytes",
				Help:      "Size of encoded calldata and decoded result payloads",
				Buckets:   prometheus.ExponentialBuckets(32, 2, 10),
			},
			[]string{"op"},
		),
	}
	if reg == nil {
		return m, nil
	}
	if err := reg.Register(m.operations); err != nil {
		existing, err := existingCollector(err)
		if err != nil {
			return nil, err
		}
		m.operations = existing.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.payloadBytes); err != nil {
		existing, err := existingCollector(err)
		if err != nil {
			return nil, err
		}
		m.payloadBytes = existing.(*prometheus.HistogramVec)
	}
	return m, nil
}

// existingCollector 在重复注册时复用已注册的采集器
func existingCollector(err error) (prometheus.Collector, error) {
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return already.ExistingCollector, nil
	}
	return nil, err
}

func (m *Metrics) observe(op string, payload int, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
	if err == nil && payload > 0 {
		m.payloadBytes.WithLabelValues(op).Observe(float64(payload))
	}
}

// resultLabel 将错误归类为指标标签
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var e *Error
	if errors.As(err, &e) {
		return string(e.Kind)
	}
	if errors.Is(err, ErrABINotRegistered) {
		return "not_registered"
	}
	return "error"
}
