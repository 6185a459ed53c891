// Package abi provides error definitions for EVM ABI encoding and decoding.
package abi

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
//                               ABI编解码错误定义
// ============================================================================

var (
	// ErrRange 数值超出声明位宽可表示范围
	ErrRange = errors.New("value out of range")

	// ErrFormat 地址/十六进制/字节字面量格式错误
	ErrFormat = errors.New("malformed literal")

	// ErrTypeMismatch 值的形状与声明的 ABI 类型不匹配
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrArity 参数或元素数量不匹配
	ErrArity = errors.New("argument count mismatch")

	// ErrFunctionNotFound 方法未找到
	ErrFunctionNotFound = errors.New("function not found in ABI")

	// ErrAmbiguousOverload 同名重载无法区分
	ErrAmbiguousOverload = errors.New("ambiguous function overload")

	// ErrTruncatedData 解码越过数据末尾
	ErrTruncatedData = errors.New("truncated data")

	// ErrUnsupportedType 不支持的 ABI 类型
	ErrUnsupportedType = errors.New("unsupported ABI type")

	// ErrInvalidABI ABI格式无效
	ErrInvalidABI = errors.New("invalid ABI format")

	// ErrABINotRegistered ABI未注册
	ErrABINotRegistered = errors.New("ABI not registered for this contract")
)

// ErrorKind 错误类别
type ErrorKind string

const (
	KindRange             ErrorKind = "range"
	KindFormat            ErrorKind = "format"
	KindTypeMismatch      ErrorKind = "type_mismatch"
	KindArity             ErrorKind = "arity"
	KindFunctionNotFound  ErrorKind = "function_not_found"
	KindAmbiguousOverload ErrorKind = "ambiguous_overload"
	KindTruncatedData     ErrorKind = "truncated_data"
	KindUnsupportedType   ErrorKind = "unsupported_type"
	KindInvalidABI        ErrorKind = "invalid_abi"
)

var kindSentinels = map[ErrorKind]error{
	KindRange:             ErrRange,
	KindFormat:            ErrFormat,
	KindTypeMismatch:      ErrTypeMismatch,
	KindArity:             ErrArity,
	KindFunctionNotFound:  ErrFunctionNotFound,
	KindAmbiguousOverload: ErrAmbiguousOverload,
	KindTruncatedData:     ErrTruncatedData,
	KindUnsupportedType:   ErrUnsupportedType,
	KindInvalidABI:        ErrInvalidABI,
}

// Error 编解码过程中的结构化错误
//
// Path 记录出错元素在参数树中的位置，例如 createRaffle.params.ticketPrice 或 [2][0]
type Error struct {
	Cause  error
	Kind   ErrorKind
	Type   string
	Detail string
	Path   []string
}

// Error 实现 error 接口
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("abi: [")
	b.WriteString(string(e.Kind))
	b.WriteString("]")
	if len(e.Path) > 0 {
		b.WriteString(" ")
		b.WriteString(FormatPath(e.Path))
	}
	if e.Type != "" {
		b.WriteString(" (")
		b.WriteString(e.Type)
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 让 errors.Is(err, ErrRange) 等哨兵比较按 Kind 生效
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// FormatPath 将路径片段拼接为 a.b[0].c 形式
func FormatPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// ============================================================================
//                               错误构造
// ============================================================================

type errorBuilder struct {
	err *Error
}

func newError(kind ErrorKind) *errorBuilder {
	return &errorBuilder{err: &Error{Kind: kind}}
}

func (b *errorBuilder) typ(t string) *errorBuilder {
	b.err.Type = t
	return b
}

func (b *errorBuilder) detail(format string, args ...interface{}) *errorBuilder {
	b.err.Detail = fmt.Sprintf(format, args...)
	return b
}

func (b *errorBuilder) cause(err error) *errorBuilder {
	b.err.Cause = err
	return b
}

func (b *errorBuilder) build() error {
	return b.err
}

func rangeError(typ string, format string, args ...interface{}) error {
	return newError(KindRange).typ(typ).detail(format, args...).build()
}

func formatError(typ string, format string, args ...interface{}) error {
	return newError(KindFormat).typ(typ).detail(format, args...).build()
}

func typeMismatch(typ string, got ValueKind) error {
	return newError(KindTypeMismatch).typ(typ).detail("got %s value", got).build()
}

func arityError(typ string, want, got int) error {
	return newError(KindArity).typ(typ).detail("want %d, got %d", want, got).build()
}

func truncatedError(format string, args ...interface{}) error {
	return newError(KindTruncatedData).detail(format, args...).build()
}

func unsupportedType(typ string, format string, args ...interface{}) error {
	return newError(KindUnsupportedType).typ(typ).detail(format, args...).build()
}

func invalidABI(format string, args ...interface{}) error {
	return newError(KindInvalidABI).detail(format, args...).build()
}

// withPath 在错误路径前插入一段，用于递归返回时补全位置
func withPath(err error, elem string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Path = append([]string{elem}, e.Path...)
	}
	return err
}

// elemLabel 返回元素在路径中的标签：有名字用名字，否则用下标
func elemLabel(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("[%d]", i)
}

// WrapABINotRegisteredError 包装ABI未注册错误
func WrapABINotRegisteredError(contractID string) error {
	return fmt.Errorf("%w: contractID=%s", ErrABINotRegistered, contractID)
}

// WrapEncodingFailedError 包装编码失败错误
func WrapEncodingFailedError(contractID, method string, err error) error {
	return fmt.Errorf("encode %s on %s: %w", method, contractID, err)
}

// WrapDecodingFailedError 包装解码失败错误
func WrapDecodingFailedError(contractID, method string, err error) error {
	return fmt.Errorf("decode %s on %s: %w", method, contractID, err)
}
