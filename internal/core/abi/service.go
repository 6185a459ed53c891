package abi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	abiInterfaces "github.com/weisyn/evmabi/pkg/interfaces/abi"
	"github.com/weisyn/evmabi/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/evmabi/pkg/types"
)

// Service 合约 ABI 注册表与调用编解码服务
//
// 注册是唯一的写操作，查询持读锁；编解码在锁外基于只读的 *ABI 进行。
//
// 🔗 **依赖关系**：
// - log.Logger：日志记录服务（可为 nil）
// - *Metrics：编解码指标（可为 nil）
type Service struct {
	// ==================== 基础设施服务 ====================
	logger  log.Logger
	metrics *Metrics

	// ==================== 解码策略 ====================
	decodeOpts DecodeOptions

	// ==================== ABI 存储 ====================
	// key 为规范化后的合约标识
	abis map[string]*ABI
	mu   sync.RWMutex
}

var _ abiInterfaces.Service = (*Service)(nil)

// NewService 创建编解码服务
func NewService(logger log.Logger, metrics *Metrics, opts DecodeOptions) *Service {
	return &Service{
		logger:     logger,
		metrics:    metrics,
		decodeOpts: opts,
		abis:       make(map[string]*ABI),
	}
}

// NormalizeContractID 规范化合约标识：十六进制地址转为 EIP-55 形式，其余原样（去空白）
func NormalizeContractID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "0x") && common.IsHexAddress(id) {
		return common.HexToAddress(id).Hex()
	}
	return id
}

// ==================== 注册 ====================

// RegisterABI 解析并注册合约 ABI（JSON 数组或编译产物）
func (s *Service) RegisterABI(contractID string, data []byte) error {
	a, err := ParseABI(data)
	if err != nil {
		s.metrics.observe(opRegister, 0, err)
		return fmt.Errorf("register ABI for %s: %w", contractID, err)
	}
	return s.Register(contractID, a)
}

// Register 注册已解析的 ABI，同一标识再次注册会覆盖
func (s *Service) Register(contractID string, a *ABI) error {
	id := NormalizeContractID(contractID)
	if id == "" {
		return fmt.Errorf("合约ID不能为空")
	}
	if a == nil {
		return fmt.Errorf("ABI定义不能为空")
	}

	s.mu.Lock()
	s.abis[id] = a
	s.mu.Unlock()

	s.metrics.observe(opRegister, 0, nil)
	if s.logger != nil {
		s.logger.Debugf("合约 ABI 注册成功: contractID=%s, functions=%d", id, len(a.functions))
	}
	return nil
}

// LoadFile 读取 ABI 文件并以 contractID 注册
func (s *Service) LoadFile(contractID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取 ABI 文件失败 %s: %w", path, err)
	}
	return s.RegisterABI(contractID, data)
}

// LoadDir 注册目录下全部 .json 文件，合约标识为去掉扩展名的文件名
func (s *Service) LoadDir(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("扫描 ABI 目录失败 %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, path := range matches {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := s.LoadFile(id, path); err != nil {
			return 0, err
		}
	}
	if s.logger != nil {
		s.logger.Infof("已从 %s 加载 %d 个 ABI", dir, len(matches))
	}
	return len(matches), nil
}

// ABI 返回已注册的 ABI
func (s *Service) ABI(contractID string) (*ABI, error) {
	id := NormalizeContractID(contractID)
	s.mu.RLock()
	a, ok := s.abis[id]
	s.mu.RUnlock()
	if !ok {
		return nil, WrapABINotRegisteredError(id)
	}
	return a, nil
}

// Contracts 返回已注册的合约标识
func (s *Service) Contracts() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.abis))
	for id := range s.abis {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Functions 返回合约的函数摘要
func (s *Service) Functions(contractID string) ([]types.FunctionInfo, error) {
	a, err := s.ABI(contractID)
	if err != nil {
		return nil, err
	}
	fns := a.Functions()
	infos := make([]types.FunctionInfo, len(fns))
	for i, fn := range fns {
		infos[i] = types.FunctionInfo{
			Name:            fn.Name,
			Signature:       fn.Signature,
			Selector:        fn.SelectorHex(),
			StateMutability: fn.StateMutability,
			Outputs:         Signature("", fn.OutputTypes()),
		}
	}
	return infos, nil
}

// ==================== 编码 ====================

// Encode 按函数名或签名编码调用数据
func (s *Service) Encode(contractID, method string, args []Value) ([]byte, error) {
	a, err := s.ABI(contractID)
	if err != nil {
		s.metrics.observe(opEncode, 0, err)
		return nil, err
	}
	data, err := BuildCall(a, method, args)
	s.metrics.observe(opEncode, len(data), err)
	if err != nil {
		s.warn("编码失败", contractID, method, err)
		return nil, WrapEncodingFailedError(contractID, method, err)
	}
	if s.logger != nil {
		s.logger.Debugf("编码完成: contractID=%s, method=%s, bytes=%d", contractID, method, len(data))
	}
	return data, nil
}

// EncodeCall 将字符串参数按入参类型转换后编码，返回 0x 十六进制
func (s *Service) EncodeCall(contractID, method string, args []string) (string, error) {
	a, err := s.ABI(contractID)
	if err != nil {
		s.metrics.observe(opEncode, 0, err)
		return "", err
	}
	fn, err := a.Lookup(method, len(args))
	if err != nil {
		s.metrics.observe(opEncode, 0, err)
		return "", WrapEncodingFailedError(contractID, method, err)
	}
	values := make([]Value, len(args))
	for i, arg := range args {
		v, err := ParseArgument(fn.Inputs[i].Type, arg)
		if err != nil {
			err = withPath(withPath(err, elemLabel(argumentNames(fn.Inputs), i)), fn.Name)
			s.metrics.observe(opEncode, 0, err)
			return "", WrapEncodingFailedError(contractID, method, err)
		}
		values[i] = v
	}
	data, err := fn.Pack(values)
	s.metrics.observe(opEncode, len(data), err)
	if err != nil {
		s.warn("编码失败", contractID, method, err)
		return "", WrapEncodingFailedError(contractID, method, err)
	}
	return hexutil.Encode(data), nil
}

// ==================== 解码 ====================

// Decode 解码返回数据，单个输出直接返回，多个输出返回 tuple
func (s *Service) Decode(contractID, method string, raw []byte) (Value, error) {
	a, err := s.ABI(contractID)
	if err != nil {
		s.metrics.observe(opDecode, 0, err)
		return Value{}, err
	}
	fn, err := a.Lookup(method, -1)
	if err != nil {
		s.metrics.observe(opDecode, 0, err)
		return Value{}, WrapDecodingFailedError(contractID, method, err)
	}
	v, err := DecodeResultWith(fn, raw, s.decodeOpts)
	s.metrics.observe(opDecode, len(raw), err)
	if err != nil {
		s.warn("解码失败", contractID, method, err)
		return Value{}, WrapDecodingFailedError(contractID, method, err)
	}
	return v, nil
}

// DecodeResult 解码十六进制返回数据并渲染为 JSON
func (s *Service) DecodeResult(contractID, method, resultHex string) (json.RawMessage, error) {
	raw, err := DecodeHex(resultHex)
	if err != nil {
		s.metrics.observe(opDecode, 0, err)
		return nil, WrapDecodingFailedError(contractID, method, err)
	}
	v, err := s.Decode(contractID, method, raw)
	if err != nil {
		return nil, err
	}
	return v.MarshalJSON()
}

// DecodeCall 按选择器识别函数并解码入参，返回函数签名和 JSON 形式的参数
func (s *Service) DecodeCall(contractID, calldataHex string) (string, json.RawMessage, error) {
	a, err := s.ABI(contractID)
	if err != nil {
		s.metrics.observe(opDecode, 0, err)
		return "", nil, err
	}
	data, err := DecodeHex(calldataHex)
	if err == nil && len(data) < 4 {
		err = truncatedError("calldata has %d bytes, selector needs 4", len(data))
	}
	var fn *Function
	if err == nil {
		var sel [4]byte
		copy(sel[:], data)
		fn, err = a.FunctionBySelector(sel)
	}
	var values []Value
	if err == nil {
		values, err = fn.UnpackInputWith(data, s.decodeOpts)
	}
	s.metrics.observe(opDecode, len(data), err)
	if err != nil {
		s.warn("调用数据解码失败", contractID, "", err)
		return "", nil, WrapDecodingFailedError(contractID, "calldata", err)
	}
	out, err := newLabeledTuple(values, argumentNames(fn.Inputs)).MarshalJSON()
	if err != nil {
		return "", nil, err
	}
	return fn.Signature, out, nil
}

func (s *Service) warn(msg, contractID, method string, err error) {
	if s.logger != nil {
		s.logger.Warnf("%s: contractID=%s, method=%s, err=%v", msg, contractID, method, err)
	}
}
