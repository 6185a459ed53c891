package abi

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	prometheusUtils "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logconfig "github.com/weisyn/evmabi/internal/config/log"
	logimpl "github.com/weisyn/evmabi/internal/core/infrastructure/log"
	"github.com/weisyn/evmabi/pkg/types"
)

const tokenAddress = "0xdac17f958d2ee523a2206206994597c13d831ec7"

func newTestService(t *testing.T) (*Service, *Metrics) {
	t.Helper()
	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	svc := NewService(nil, metrics, DecodeOptions{})
	require.NoError(t, svc.RegisterABI(tokenAddress, []byte(tokenABI)))
	return svc, metrics
}

// TestServiceRegister 测试 ABI 注册
func TestServiceRegister(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("地址标识规范化", func(t *testing.T) {
		assert.Equal(t, []string{"0xdAC17F958D2ee523a2206206994597C13D831ec7"}, svc.Contracts())

		_, err := svc.ABI("0xDAC17F958D2EE523A2206206994597C13D831EC7")
		assert.NoError(t, err)
	})

	t.Run("非地址标识原样保存", func(t *testing.T) {
		assert.Equal(t, "Token", NormalizeContractID(" Token "))
		assert.Equal(t, "0x123", NormalizeContractID("0x123"))
	})

	t.Run("无效 ABI", func(t *testing.T) {
		err := svc.RegisterABI("Bad", []byte(`{"abi":"x"}`))
		assert.ErrorIs(t, err, ErrInvalidABI)

		assert.Error(t, svc.Register("", mustABI(t)))
		assert.Error(t, svc.Register("Nil", nil))
	})

	t.Run("未注册", func(t *testing.T) {
		_, err := svc.ABI("Unknown")
		assert.ErrorIs(t, err, ErrABINotRegistered)

		_, err = svc.EncodeCall("Unknown", "transfer", nil)
		assert.ErrorIs(t, err, ErrABINotRegistered)
	})

	t.Run("函数摘要", func(t *testing.T) {
		infos, err := svc.Functions(tokenAddress)
		require.NoError(t, err)
		require.Len(t, infos, 8)
		assert.Equal(t, "transfer(address,uint256)", infos[0].Signature)
		assert.Equal(t, "0xa9059cbb", infos[0].Selector)
		assert.Equal(t, "(bool)", infos[0].Outputs)
		assert.Equal(t, "view", infos[1].StateMutability)
	})
}

// TestServiceEncodeDecode 测试字符串边界的编解码
func TestServiceEncodeDecode(t *testing.T) {
	svc, metrics := newTestService(t)

	t.Run("编码", func(t *testing.T) {
		data, err := svc.EncodeCall(tokenAddress, "transfer", []string{"0x1111111111111111111111111111111111111111", "1000"})
		require.NoError(t, err)
		assert.Equal(t, "0xa9059cbb"+
			"0000000000000000000000001111111111111111111111111111111111111111"+
			"00000000000000000000000000000000000000000000000000000000000003e8", data)
	})

	t.Run("tuple 参数", func(t *testing.T) {
		data, err := svc.EncodeCall(tokenAddress, "createRaffle",
			[]string{`{"title":"summer","ticketPrice":"100","winners":["0x1111111111111111111111111111111111111111"]}`})
		require.NoError(t, err)

		sig, args, err := svc.DecodeCall(tokenAddress, data)
		require.NoError(t, err)
		assert.Equal(t, "createRaffle((string,uint96,address[]))", sig)
		assert.JSONEq(t,
			`{"params":{"title":"summer","ticketPrice":"100","winners":["0x1111111111111111111111111111111111111111"]}}`,
			string(args))
	})

	t.Run("参数错误带路径", func(t *testing.T) {
		_, err := svc.EncodeCall(tokenAddress, "transfer", []string{"0x1111111111111111111111111111111111111111", "-1"})
		assert.ErrorIs(t, err, ErrRange)

		_, err = svc.EncodeCall(tokenAddress, "transfer", []string{"0x1111", "1"})
		require.ErrorIs(t, err, ErrFormat)
		assert.Contains(t, err.Error(), "transfer.to")
	})

	t.Run("解码返回值", func(t *testing.T) {
		out, err := svc.DecodeResult(tokenAddress, "balanceOf",
			"0x00000000000000000000000000000000000000000000000000000000000003e8")
		require.NoError(t, err)
		assert.Equal(t, `"1000"`, string(out))

		out, err = svc.DecodeResult(tokenAddress, "createRaffle", "0x"+
			"0000000000000000000000000000000000000000000000000000000000000007"+
			"0000000000000000000000000000000000000000000000000000000000000040"+
			"0000000000000000000000000000000000000000000000000000000000000002"+
			"6869000000000000000000000000000000000000000000000000000000000000")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"7","name":"hi"}`, string(out))
	})

	t.Run("解码失败", func(t *testing.T) {
		_, err := svc.DecodeResult(tokenAddress, "balanceOf", "0x")
		assert.ErrorIs(t, err, ErrTruncatedData)

		_, err = svc.DecodeResult(tokenAddress, "balanceOf", "0xzz")
		assert.ErrorIs(t, err, ErrFormat)

		_, _, err = svc.DecodeCall(tokenAddress, "0x12345678")
		assert.ErrorIs(t, err, ErrFunctionNotFound)

		_, _, err = svc.DecodeCall(tokenAddress, "0x1234")
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("指标", func(t *testing.T) {
		assert.GreaterOrEqual(t, prometheusUtils.ToFloat64(metrics.operations.WithLabelValues(opEncode, "ok")), float64(2))
		assert.Equal(t, float64(1), prometheusUtils.ToFloat64(metrics.operations.WithLabelValues(opEncode, string(KindFormat))))
		assert.Equal(t, float64(2), prometheusUtils.ToFloat64(metrics.operations.WithLabelValues(opDecode, string(KindTruncatedData))))
		assert.Equal(t, float64(1), prometheusUtils.ToFloat64(metrics.operations.WithLabelValues(opRegister, "ok")))
	})
}

// TestServiceLoadDir 测试从目录加载 ABI
func TestServiceLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Token.json"), []byte(tokenABI), 0o644))
	artifact := `{"contractName":"Pool","abi":[{"type":"function","name":"swap","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pool.json"), []byte(artifact), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	var buf bytes.Buffer
	level := logimpl.InfoLevel
	logger, err := logimpl.NewWithWriter(logconfig.New(&types.UserLogConfig{Level: &level}), &buf)
	require.NoError(t, err)

	svc := NewService(logger, nil, DecodeOptions{})
	n, err := svc.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Pool", "Token"}, svc.Contracts())

	_ = logger.Sync()
	assert.Contains(t, buf.String(), "加载 2 个 ABI")

	data, err := svc.EncodeCall("Pool", "swap", []string{"5"})
	require.NoError(t, err)
	assert.Equal(t, SelectorHex(Selector("swap(uint256)")), data[:10])

	assert.Error(t, svc.LoadFile("Missing", filepath.Join(dir, "missing.json")))
}

// TestServiceConcurrentAccess 测试并发注册与编码
func TestServiceConcurrentAccess(t *testing.T) {
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.EncodeCall(tokenAddress, "balanceOf", []string{"0x2222222222222222222222222222222222222222"})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			errs <- svc.RegisterABI("Token", []byte(tokenABI))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

// TestServiceDecodeLenient 测试宽松解码配置
func TestServiceDecodeLenient(t *testing.T) {
	svc := NewService(nil, nil, DecodeOptions{Lenient: true})
	require.NoError(t, svc.RegisterABI("Token", []byte(tokenABI)))

	out, err := svc.DecodeResult("Token", "transfer", "0x"+
		"0000000000000000000000000000000000000000000000000000000000000002")
	require.NoError(t, err)

	var b bool
	require.NoError(t, json.Unmarshal(out, &b))
	assert.True(t, b)
}
