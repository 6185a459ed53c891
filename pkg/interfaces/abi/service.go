// Package abi 定义合约调用编解码服务的公共接口
//
// 接口以字符串和 JSON 为边界，调用方不需要依赖内部的 Value 类型。
package abi

import (
	"encoding/json"

	"github.com/weisyn/evmabi/pkg/types"
)

// Service 合约 ABI 注册与调用编解码服务
type Service interface {
	// RegisterABI 注册合约 ABI，data 为 JSON ABI 数组或编译产物
	RegisterABI(contractID string, data []byte) error

	// Contracts 返回已注册的合约标识（排序）
	Contracts() []string

	// Functions 返回合约的函数摘要（声明顺序）
	Functions(contractID string) ([]types.FunctionInfo, error)

	// EncodeCall 将 JSON / 原文参数编码为 0x 调用数据
	EncodeCall(contractID, method string, args []string) (string, error)

	// DecodeResult 解码 eth_call 返回的十六进制数据，输出 JSON
	DecodeResult(contractID, method, resultHex string) (json.RawMessage, error)

	// DecodeCall 按选择器识别函数并解码调用数据的入参
	DecodeCall(contractID, calldataHex string) (string, json.RawMessage, error)
}
