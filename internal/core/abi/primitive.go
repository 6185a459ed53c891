package abi

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EncodeAddress 校验 0x + 40 位十六进制的地址字符串，并编码为右对齐的 uint160 字
func EncodeAddress(s string) ([]byte, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return EncodeAddressBytes(addr), nil
}

// ParseAddress 解析 0x 前缀的 20 字节十六进制地址，大小写均可
func ParseAddress(s string) (common.Address, error) {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return common.Address{}, formatError("address", "invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// EncodeAddressBytes 将地址编码为 32 字节字（左侧补零）
func EncodeAddressBytes(a common.Address) []byte {
	return common.LeftPadBytes(a.Bytes(), wordSize)
}

// EncodeBool 将布尔值编码为完整的 32 字节字
func EncodeBool(b bool) []byte {
	word := make([]byte, wordSize)
	if b {
		word[wordSize-1] = 1
	}
	return word
}

// EncodeFixedBytes 编码 bytesN：左对齐，右侧补零到 32 字节
func EncodeFixedBytes(value []byte, length int) ([]byte, error) {
	typ := "bytes" + strconv.Itoa(length)
	if length < 1 || length > wordSize {
		return nil, unsupportedType(typ, "fixed bytes length must be within 1..32")
	}
	if len(value) > length {
		return nil, rangeError(typ, "%d bytes do not fit", len(value))
	}
	word := make([]byte, wordSize)
	copy(word, value)
	return word, nil
}

// ParseFixedBytes 将 0x 十六进制或普通文本转为字节
func ParseFixedBytes(s string) ([]byte, error) {
	if has0xPrefix(s) {
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, newError(KindFormat).typ("bytes").detail("invalid hex %q", s).cause(err).build()
		}
		return b, nil
	}
	return []byte(s), nil
}

// EncodeString 编码字符串：长度字 + 右侧补零到 32 字节倍数的 UTF-8 内容
func EncodeString(s string) []byte {
	return encodeLengthPrefixed([]byte(s))
}

// EncodeDynamicBytes 编码动态 bytes：长度字 + 右侧补零到 32 字节倍数的内容
func EncodeDynamicBytes(b []byte) []byte {
	return encodeLengthPrefixed(b)
}

func encodeLengthPrefixed(b []byte) []byte {
	padded := (len(b) + wordSize - 1) / wordSize * wordSize
	out := make([]byte, 0, wordSize+padded)
	out = append(out, packLength(len(b))...)
	out = append(out, b...)
	return append(out, make([]byte, padded-len(b))...)
}

// DecodeAddress 从 32 字节字解码地址，高 12 字节必须为零
func DecodeAddress(word []byte) (common.Address, error) {
	return decodeAddress(word, false)
}

// DecodeBool 解码布尔字，只接受 0 或 1
func DecodeBool(word []byte) (bool, error) {
	return decodeBool(word, false)
}

// DecodeFixedBytes 解码 bytesN，length 之后的填充必须为零
func DecodeFixedBytes(word []byte, length int) ([]byte, error) {
	return decodeFixedBytes(word, length, false)
}

func decodeAddress(word []byte, lenient bool) (common.Address, error) {
	if len(word) != wordSize {
		return common.Address{}, truncatedError("address word has %d bytes", len(word))
	}
	if !lenient && !allZero(word[:wordSize-common.AddressLength]) {
		return common.Address{}, formatError("address", "dirty high bytes in %x", word)
	}
	return common.BytesToAddress(word[wordSize-common.AddressLength:]), nil
}

func decodeBool(word []byte, lenient bool) (bool, error) {
	if len(word) != wordSize {
		return false, truncatedError("bool word has %d bytes", len(word))
	}
	if lenient {
		return !allZero(word), nil
	}
	if !allZero(word[:wordSize-1]) {
		return false, formatError("bool", "invalid bool word %x", word)
	}
	switch word[wordSize-1] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, formatError("bool", "invalid bool word %x", word)
}

func decodeFixedBytes(word []byte, length int, lenient bool) ([]byte, error) {
	typ := "bytes" + strconv.Itoa(length)
	if length < 1 || length > wordSize {
		return nil, unsupportedType(typ, "fixed bytes length must be within 1..32")
	}
	if len(word) != wordSize {
		return nil, truncatedError("%s word has %d bytes", typ, len(word))
	}
	if !lenient && !allZero(word[length:]) {
		return nil, formatError(typ, "non-zero padding in %x", word)
	}
	return common.CopyBytes(word[:length]), nil
}

func decodeText(content []byte, lenient bool) (string, error) {
	if !lenient && !utf8.Valid(content) {
		return "", formatError("string", "invalid UTF-8 content")
	}
	return string(content), nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
