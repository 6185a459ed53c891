package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/evmabi/internal/core/abi"
)

// decodeCallResult decode-call 的输出
type decodeCallResult struct {
	Signature string          `json:"signature"`
	Args      json.RawMessage `json:"args"`
}

func (r decodeCallResult) String() string {
	return fmt.Sprintf("%s %s", r.Signature, string(r.Args))
}

// encodeCmd 编码调用数据
var encodeCmd = &cobra.Command{
	Use:   "encode <function> [args...]",
	Short: "编码合约调用数据",
	Long: `按 ABI 将函数名与参数编码为调用数据（4 字节选择器 + 参数编码）。

函数名有重载时按参数个数选择，也可以直接给出签名。
数组与 tuple 参数使用 JSON 书写。

示例:
  abicodec --abi ERC20.json encode transfer 0x1111111111111111111111111111111111111111 1000
  abicodec --abi Pool.json encode "swap(uint256,address)" 5 0x2222222222222222222222222222222222222222
  abicodec --abi Multi.json encode batch '[1,2,3]' '{"to":"0x...","amount":"7"}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := currentContract()
		if err != nil {
			return err
		}
		data, err := application.Service.EncodeCall(contractID, args[0], args[1:])
		if err != nil {
			return err
		}
		return formatter.Print(data)
	},
}

// decodeCmd 解码返回数据
var decodeCmd = &cobra.Command{
	Use:   "decode <function> <hex>",
	Short: "解码函数返回数据",
	Long: `按函数的输出类型解码 eth_call 返回的十六进制数据。

单个输出直接输出其值，多个输出输出为 JSON 对象（无名输出按序号）。

示例:
  abicodec --abi ERC20.json decode balanceOf 0x00000000000000000000000000000000000000000000000000000000000003e8`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := currentContract()
		if err != nil {
			return err
		}
		out, err := application.Service.DecodeResult(contractID, args[0], args[1])
		if err != nil {
			return err
		}
		return formatter.Print(out)
	},
}

// decodeCallCmd 解码调用数据
var decodeCallCmd = &cobra.Command{
	Use:   "decode-call <hex>",
	Short: "按选择器识别函数并解码调用数据",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := currentContract()
		if err != nil {
			return err
		}
		sig, out, err := application.Service.DecodeCall(contractID, args[0])
		if err != nil {
			return err
		}
		return formatter.Print(decodeCallResult{Signature: sig, Args: out})
	},
}

// selectorResult selector 的输出
type selectorResult struct {
	Signature string `json:"signature"`
	Selector  string `json:"selector"`
}

func (r selectorResult) header() []string { return []string{"签名", "选择器"} }
func (r selectorResult) rows() [][]string { return [][]string{{r.Signature, r.Selector}} }
func (r selectorResult) String() string { return r.Selector }

// selectorCmd 计算函数选择器
var selectorCmd = &cobra.Command{
	Use:   "selector <signature>",
	Short: "计算函数选择器",
	Long: `计算函数签名的 4 字节选择器（Keccak-256 前 4 字节），不需要 ABI。

签名会先规范化：去掉空白与参数名，uint/int 写成 uint256/int256。

示例:
  abicodec selector "transfer(address to, uint amount)"   # 0xa9059cbb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sig, err := abi.NormalizeSignature(args[0])
		if err != nil {
			return err
		}
		return formatter.Print(selectorResult{Signature: sig, Selector: abi.SelectorHex(abi.Selector(sig))})
	},
}
