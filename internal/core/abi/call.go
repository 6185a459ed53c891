package abi

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BuildCall 构造 eth_call / 交易的 data 字段：selector ++ 参数编码
//
// name 可以是函数名（按参数个数解析重载）或完整签名。纯计算，无 I/O。
func BuildCall(a *ABI, name string, args []Value) ([]byte, error) {
	fn, err := a.Lookup(name, len(args))
	if err != nil {
		return nil, err
	}
	return fn.Pack(args)
}

// BuildCallHex 与 BuildCall 相同，返回 JSON-RPC 使用的 0x 十六进制形式
func BuildCallHex(a *ABI, name string, args []Value) (string, error) {
	data, err := BuildCall(a, name, args)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// DecodeResult 严格解码调用返回值
//
// 恰好一个输出时直接返回该值；多个输出时返回按声明顺序排列的 tuple，
// 所有输出均有名字时可用 Field 访问；没有输出时返回零值 Value。
func DecodeResult(fn *Function, raw []byte) (Value, error) {
	return DecodeResultWith(fn, raw, DecodeOptions{})
}

// DecodeResultWith 按选项解码调用返回值
func DecodeResultWith(fn *Function, raw []byte, opts DecodeOptions) (Value, error) {
	values, err := fn.UnpackWith(raw, opts)
	if err != nil {
		return Value{}, err
	}
	switch len(values) {
	case 0:
		return Value{}, nil
	case 1:
		return values[0], nil
	}
	return newLabeledTuple(values, argumentNames(fn.Outputs)), nil
}

// DecodeHex 解析可带 0x 前缀的十六进制数据
func DecodeHex(s string) ([]byte, error) {
	if s == "" || s == "0x" || s == "0X" {
		return []byte{}, nil
	}
	if !has0xPrefix(s) {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, newError(KindFormat).detail("invalid hex data").cause(err).build()
	}
	return b, nil
}
