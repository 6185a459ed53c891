package abi

import (
	"bytes"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
)

// wordSize 编码格式的最小对齐单位（32 字节）
const wordSize = 32

var (
	big1 = big.NewInt(1)

	// tt256m1 = 2^256 - 1，用于取 256 位补码
	tt256m1 = new(big.Int).Sub(new(big.Int).Lsh(big1, 256), big1)
)

// EncodeUint 将无符号整数编码为 32 字节大端字，左侧补零
//
// value 必须在 [0, 2^bits-1] 内，否则返回 ErrRange。
func EncodeUint(value *big.Int, bits int) ([]byte, error) {
	typ := "uint" + strconv.Itoa(bits)
	if !validBits(bits) {
		return nil, unsupportedType(typ, "integer width must be a multiple of 8 within 8..256")
	}
	if value == nil {
		return nil, rangeError(typ, "nil integer")
	}
	if value.Sign() < 0 {
		return nil, rangeError(typ, "negative value %s", value)
	}
	if value.BitLen() > bits {
		return nil, rangeError(typ, "value %s exceeds %d bits", value, bits)
	}
	return math.PaddedBigBytes(value, wordSize), nil
}

// EncodeInt 将有符号整数编码为 32 字节大端字
//
// value 必须在 [-2^(bits-1), 2^(bits-1)-1] 内。负数以 256 位补码写出，
// 因此高位填充字节为 0xFF（符号扩展）。
func EncodeInt(value *big.Int, bits int) ([]byte, error) {
	typ := "int" + strconv.Itoa(bits)
	if !validBits(bits) {
		return nil, unsupportedType(typ, "integer width must be a multiple of 8 within 8..256")
	}
	if value == nil {
		return nil, rangeError(typ, "nil integer")
	}
	lo, hi := intBounds(bits)
	if value.Cmp(lo) < 0 || value.Cmp(hi) > 0 {
		return nil, rangeError(typ, "value %s outside [%s, %s]", value, lo, hi)
	}
	return twosComplementWord(value), nil
}

// DecodeUint 解码 32 字节字为 bits 位无符号整数，高于 bits 的位必须为零
func DecodeUint(word []byte, bits int) (*big.Int, error) {
	return decodeUint(word, bits, false)
}

// DecodeInt 解码 32 字节字为 bits 位有符号整数
//
// 第 bits-1 位为符号位，置位时减去 2^bits；高位必须是正确的符号扩展。
func DecodeInt(word []byte, bits int) (*big.Int, error) {
	return decodeInt(word, bits, false)
}

func decodeUint(word []byte, bits int, lenient bool) (*big.Int, error) {
	typ := "uint" + strconv.Itoa(bits)
	if !validBits(bits) {
		return nil, unsupportedType(typ, "integer width must be a multiple of 8 within 8..256")
	}
	if len(word) != wordSize {
		return nil, truncatedError("integer word has %d bytes", len(word))
	}
	v := new(big.Int).SetBytes(word)
	if v.BitLen() > bits {
		if !lenient {
			return nil, rangeError(typ, "value %s exceeds %d bits", v, bits)
		}
		v.And(v, lowMask(bits))
	}
	return v, nil
}

func decodeInt(word []byte, bits int, lenient bool) (*big.Int, error) {
	typ := "int" + strconv.Itoa(bits)
	if !validBits(bits) {
		return nil, unsupportedType(typ, "integer width must be a multiple of 8 within 8..256")
	}
	if len(word) != wordSize {
		return nil, truncatedError("integer word has %d bytes", len(word))
	}
	v := new(big.Int).SetBytes(word)
	v.And(v, lowMask(bits))
	if v.Bit(bits-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big1, uint(bits)))
	}
	if !lenient && !bytes.Equal(twosComplementWord(v), word) {
		return nil, rangeError(typ, "improperly sign-extended word %x", word)
	}
	return v, nil
}

// twosComplementWord 返回 v 的 256 位补码表示（32 字节）
func twosComplementWord(v *big.Int) []byte {
	u := new(big.Int).And(v, tt256m1)
	return math.PaddedBigBytes(u, wordSize)
}

// intBounds 返回 intN 的闭区间上下界
func intBounds(bits int) (lo, hi *big.Int) {
	half := new(big.Int).Lsh(big1, uint(bits-1))
	lo = new(big.Int).Neg(half)
	hi = new(big.Int).Sub(half, big1)
	return lo, hi
}

// MaxUint 返回 2^bits - 1
func MaxUint(bits int) *big.Int {
	return lowMask(bits)
}

func lowMask(bits int) *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big1, uint(bits)), big1)
}

// packLength 将长度或偏移编码为 uint256 字
func packLength(n int) []byte {
	return math.PaddedBigBytes(big.NewInt(int64(n)), wordSize)
}
