// Package utils 提供链上金额与时间戳的换算工具
package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// EtherDecimals 1 ether = 10^18 wei
const EtherDecimals = 18

var (
	// ErrInvalidAmount 金额字符串格式错误
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals 小数位数超过精度
	ErrTooManyDecimals = errors.New("too many decimal places")
)

// ========================================
// 整数金额解析
// ========================================

// ParseAmount 解析十进制整数金额（wei），允许前导负号
func ParseAmount(amountStr string) (*big.Int, error) {
	amountStr = strings.TrimSpace(amountStr)
	digits := strings.TrimPrefix(amountStr, "-")
	if digits == "" || !isDigits(digits) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amountStr)
	}
	v, ok := new(big.Int).SetString(amountStr, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amountStr)
	}
	return v, nil
}

// ========================================
// 精确小数换算（big.Int，无浮点误差）
// ========================================

// FormatUnits 将整数金额按 decimals 位小数格式化为十进制字符串
//
// 去掉小数部分末尾的零，整数金额不带小数点：
//
//	FormatUnits(1500000000000000000, 18) == "1.5"
//	FormatUnits(-1, 18) == "-0.000000000000000001"
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	s := new(big.Int).Abs(amount).String()
	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}
	if decimals == 0 {
		return sign + s
	}

	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	out := s[:len(s)-d]
	if frac := strings.TrimRight(s[len(s)-d:], "0"); frac != "" {
		out += "." + frac
	}
	return sign + out
}

// ParseUnits 将十进制字符串按 decimals 位小数解析为整数金额
//
// 接受 "1"、"1.5"、"-0.25"、".5"、"2." 等形式；小数位多于 decimals 时返回 ErrTooManyDecimals。
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	body := strings.TrimPrefix(s, "-")
	neg := len(body) != len(s)

	intPart, fracPart, _ := strings.Cut(body, ".")
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(fracPart) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has %d, max %d", ErrTooManyDecimals, s, len(fracPart), decimals)
	}

	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// WeiToEther 将 wei 格式化为 ether 十进制字符串（精确）
func WeiToEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// EtherToWei 将 ether 十进制字符串解析为 wei
func EtherToWei(ether string) (*big.Int, error) {
	return ParseUnits(ether, EtherDecimals)
}

// WeiToEtherFloat 将 wei 换算为 float64 ether，只用于展示（有精度损失）
func WeiToEtherFloat(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(EtherDecimals), nil)),
	).Float64()
	return f
}

// isDigits 报告 s 是否只含 ASCII 数字（空串为 true）
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
