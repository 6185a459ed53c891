package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ISO8601Millis 毫秒精度的 UTC 时间格式，与 JavaScript Date.toISOString 一致
const ISO8601Millis = "2006-01-02T15:04:05.000Z"

// ErrInvalidTimestamp 时间戳无效或超出可表示范围
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// UnixToISO8601 将链上 uint256 秒级时间戳转换为 UTC ISO-8601 字符串
//
// 只接受年份 0000..9999 范围内的时间戳。
func UnixToISO8601(ts *big.Int) (string, error) {
	if ts == nil || !ts.IsInt64() {
		return "", fmt.Errorf("%w: %v out of range", ErrInvalidTimestamp, ts)
	}
	t := time.Unix(ts.Int64(), 0).UTC()
	if t.Year() < 0 || t.Year() > 9999 {
		return "", fmt.Errorf("%w: year %d out of range", ErrInvalidTimestamp, t.Year())
	}
	return t.Format(ISO8601Millis), nil
}

// ISO8601ToUnix 解析 RFC 3339 时间（可带小数秒与时区）为秒级时间戳
func ISO8601ToUnix(s string) (*big.Int, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	return big.NewInt(t.Unix()), nil
}
