package abi

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ValueKind 值的类别
type ValueKind uint8

const (
	InvalidValue ValueKind = iota
	UintValue
	IntValue
	AddressValue
	BoolValue
	FixedBytesValue
	StringValue
	BytesValue
	TupleValue
	ArrayValue
)

var valueKindNames = [...]string{
	InvalidValue:    "invalid",
	UintValue:       "uint",
	IntValue:        "int",
	AddressValue:    "address",
	BoolValue:       "bool",
	FixedBytesValue: "fixed bytes",
	StringValue:     "string",
	BytesValue:      "bytes",
	TupleValue:      "tuple",
	ArrayValue:      "array",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", k)
}

// Value 编码输入和解码输出共用的封闭变体
//
// 零值为 InvalidValue。Value 按值传递，内部切片在构造时拷贝，调用方持有返回值的全部所有权。
type Value struct {
	num     *big.Int
	named   map[string]Value
	raw     []byte
	str     string
	elems   []Value
	names   []string
	addr    common.Address
	kind    ValueKind
	boolean bool
}

// NewUint 构造无符号整数值
func NewUint(v *big.Int) Value {
	return Value{kind: UintValue, num: copyBig(v)}
}

// UintFrom64 由 uint64 构造无符号整数值
func UintFrom64(v uint64) Value {
	return Value{kind: UintValue, num: new(big.Int).SetUint64(v)}
}

// NewInt 构造有符号整数值
func NewInt(v *big.Int) Value {
	return Value{kind: IntValue, num: copyBig(v)}
}

// IntFrom64 由 int64 构造有符号整数值
func IntFrom64(v int64) Value {
	return Value{kind: IntValue, num: big.NewInt(v)}
}

// NewAddress 构造地址值
func NewAddress(a common.Address) Value {
	return Value{kind: AddressValue, addr: a}
}

// NewBool 构造布尔值
func NewBool(b bool) Value {
	return Value{kind: BoolValue, boolean: b}
}

// NewFixedBytes 构造 bytesN 值
func NewFixedBytes(b []byte) Value {
	return Value{kind: FixedBytesValue, raw: common.CopyBytes(b)}
}

// NewString 构造字符串值
func NewString(s string) Value {
	return Value{kind: StringValue, str: s}
}

// NewBytes 构造动态字节值
func NewBytes(b []byte) Value {
	return Value{kind: BytesValue, raw: common.CopyBytes(b)}
}

// NewTuple 构造按位置排列的 tuple 值
func NewTuple(elems ...Value) Value {
	return Value{kind: TupleValue, elems: append([]Value(nil), elems...)}
}

// NewNamedTuple 构造按成员名取值的 tuple 值，编码时按类型声明顺序解析
func NewNamedTuple(fields map[string]Value) Value {
	named := make(map[string]Value, len(fields))
	for k, v := range fields {
		named[k] = v
	}
	return Value{kind: TupleValue, named: named}
}

// NewArray 构造数组值（T[] 与 T[N] 共用）
func NewArray(elems ...Value) Value {
	return Value{kind: ArrayValue, elems: append([]Value(nil), elems...)}
}

// newLabeledTuple 构造携带成员名的 tuple，解码器使用
func newLabeledTuple(elems []Value, names []string) Value {
	v := Value{kind: TupleValue, elems: elems}
	if hasAllNames(names) {
		v.names = append([]string(nil), names...)
	}
	return v
}

// Kind 返回值类别
func (v Value) Kind() ValueKind { return v.kind }

// IsValid 报告值是否已初始化
func (v Value) IsValid() bool { return v.kind != InvalidValue }

// BigInt 返回整数值的拷贝，非整数返回 nil
func (v Value) BigInt() *big.Int {
	if v.kind != UintValue && v.kind != IntValue {
		return nil
	}
	return copyBig(v.num)
}

// Address 返回地址
func (v Value) Address() common.Address { return v.addr }

// Bool 返回布尔值
func (v Value) Bool() bool { return v.boolean }

// Bytes 返回 bytesN / bytes 内容的拷贝，字符串返回其 UTF-8 字节
func (v Value) Bytes() []byte {
	if v.kind == StringValue {
		return []byte(v.str)
	}
	return common.CopyBytes(v.raw)
}

// Text 返回字符串值
func (v Value) Text() string { return v.str }

// Len 返回 tuple/数组的元素个数
func (v Value) Len() int {
	if v.named != nil {
		return len(v.named)
	}
	return len(v.elems)
}

// Elems 返回按位置排列的元素；按名构造的 tuple 返回 nil
func (v Value) Elems() []Value {
	return append([]Value(nil), v.elems...)
}

// Index 返回第 i 个元素
func (v Value) Index(i int) Value {
	if i < 0 || i >= len(v.elems) {
		return Value{}
	}
	return v.elems[i]
}

// Names 返回 tuple 成员名（解码结果在所有成员均有名字时提供）
func (v Value) Names() []string {
	return append([]string(nil), v.names...)
}

// Field 按成员名取 tuple 元素
func (v Value) Field(name string) (Value, bool) {
	if v.named != nil {
		f, ok := v.named[name]
		return f, ok
	}
	for i, n := range v.names {
		if n == name {
			return v.elems[i], true
		}
	}
	return Value{}, false
}

// Equal 结构化比较两个值；整数比较数值，Uint 与 Int 视为不同类别
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case InvalidValue:
		return true
	case UintValue, IntValue:
		if v.num == nil || o.num == nil {
			return v.num == o.num
		}
		return v.num.Cmp(o.num) == 0
	case AddressValue:
		return v.addr == o.addr
	case BoolValue:
		return v.boolean == o.boolean
	case FixedBytesValue, BytesValue:
		return bytes.Equal(v.raw, o.raw)
	case StringValue:
		return v.str == o.str
	case TupleValue, ArrayValue:
		if v.named != nil || o.named != nil {
			return equalNamed(v, o)
		}
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalNamed(a, b Value) bool {
	if a.Len() != b.Len() {
		return false
	}
	keys := a.names
	if a.named != nil {
		keys = make([]string, 0, len(a.named))
		for k := range a.named {
			keys = append(keys, k)
		}
	}
	if len(keys) != a.Len() {
		return false
	}
	for _, k := range keys {
		fa, _ := a.Field(k)
		fb, ok := b.Field(k)
		if !ok || !fa.Equal(fb) {
			return false
		}
	}
	return true
}

// String 返回便于阅读的表示
func (v Value) String() string {
	switch v.kind {
	case UintValue, IntValue:
		if v.num == nil {
			return "<nil>"
		}
		return v.num.String()
	case AddressValue:
		return v.addr.Hex()
	case BoolValue:
		if v.boolean {
			return "true"
		}
		return "false"
	case FixedBytesValue, BytesValue:
		return hexutil.Encode(v.raw)
	case StringValue:
		return fmt.Sprintf("%q", v.str)
	case TupleValue:
		if v.named != nil {
			return fmt.Sprintf("%v", v.named)
		}
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			if len(v.names) == len(v.elems) {
				parts[i] = v.names[i] + ": " + e.String()
			} else {
				parts[i] = e.String()
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ArrayValue:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "<invalid>"
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func hasAllNames(names []string) bool {
	if len(names) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			return false
		}
		if _, dup := seen[n]; dup {
			return false
		}
		seen[n] = struct{}{}
	}
	return true
}
