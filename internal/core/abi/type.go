package abi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/weisyn/evmabi/pkg/types"
)

// TypeKind ABI 类型类别
type TypeKind uint8

const (
	UintTy TypeKind = iota
	IntTy
	AddressTy
	BoolTy
	FixedBytesTy
	BytesTy
	StringTy
	TupleTy
	SliceTy // T[]
	ArrayTy // T[N]
)

var typeKindNames = [...]string{
	UintTy:       "uint",
	IntTy:        "int",
	AddressTy:    "address",
	BoolTy:       "bool",
	FixedBytesTy: "bytesN",
	BytesTy:      "bytes",
	StringTy:     "string",
	TupleTy:      "tuple",
	SliceTy:      "slice",
	ArrayTy:      "array",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return fmt.Sprintf("TypeKind(%d)", k)
}

// Type 一个 ABI 参数的类型描述
//
// Size 的含义随 Kind 变化：整数为位宽，bytesN 为字节数，T[N] 为元素个数。
// Type 树在 ABI 加载时构建，之后只读。
type Type struct {
	Elem           *Type    // SliceTy / ArrayTy 的元素类型
	Components     []Type   // TupleTy 的成员类型
	ComponentNames []string // TupleTy 的成员名，与 Components 一一对应
	InternalType   string   // 编译器给出的内部类型，仅用于展示
	Kind           TypeKind
	Size           int
}

// NewType 从规范类型字符串构建类型描述
//
// components 仅在类型（或数组元素类型）为 tuple 时使用。uint/int 视为 uint256/int256。
func NewType(t string, internalType string, components []types.ABIParam) (Type, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return Type{}, invalidABI("empty type string")
	}

	// 数组：取最后一个维度，T[2][] 为 (T[2])[]
	if strings.HasSuffix(t, "]") {
		open := strings.LastIndex(t, "[")
		if open <= 0 {
			return Type{}, invalidABI("malformed array type %q", t)
		}
		elem, err := NewType(t[:open], elemInternalType(internalType), components)
		if err != nil {
			return Type{}, err
		}
		dim := t[open+1 : len(t)-1]
		typ := Type{Elem: &elem, InternalType: internalType}
		if dim == "" {
			typ.Kind = SliceTy
			return typ, nil
		}
		n, err := strconv.Atoi(dim)
		if err != nil || n <= 0 {
			return Type{}, invalidABI("malformed array length in %q", t)
		}
		typ.Kind = ArrayTy
		typ.Size = n
		return typ, nil
	}

	switch t {
	case "address":
		return Type{Kind: AddressTy, Size: 20, InternalType: internalType}, nil
	case "bool":
		return Type{Kind: BoolTy, InternalType: internalType}, nil
	case "string":
		return Type{Kind: StringTy, InternalType: internalType}, nil
	case "bytes":
		return Type{Kind: BytesTy, InternalType: internalType}, nil
	case "tuple":
		return newTupleType(internalType, components)
	case "function":
		return Type{}, unsupportedType(t, "function pointer types are not supported")
	}

	switch {
	case strings.HasPrefix(t, "ufixed"), strings.HasPrefix(t, "fixed"):
		return Type{}, unsupportedType(t, "fixed-point types are not supported")
	case strings.HasPrefix(t, "uint"):
		bits, err := parseBits(t, t[len("uint"):])
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: UintTy, Size: bits, InternalType: internalType}, nil
	case strings.HasPrefix(t, "int"):
		bits, err := parseBits(t, t[len("int"):])
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: IntTy, Size: bits, InternalType: internalType}, nil
	case strings.HasPrefix(t, "bytes"):
		n, err := strconv.Atoi(t[len("bytes"):])
		if err != nil || n < 1 || n > 32 {
			return Type{}, unsupportedType(t, "fixed bytes length must be within 1..32")
		}
		return Type{Kind: FixedBytesTy, Size: n, InternalType: internalType}, nil
	}
	return Type{}, unsupportedType(t, "unknown type")
}

// MustNewType 与 NewType 相同，出错时 panic，用于常量类型
func MustNewType(t string) Type {
	typ, err := NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

func newTupleType(internalType string, components []types.ABIParam) (Type, error) {
	if len(components) == 0 {
		return Type{}, invalidABI("tuple type without components")
	}
	typ := Type{
		Kind:           TupleTy,
		InternalType:   internalType,
		Components:     make([]Type, len(components)),
		ComponentNames: make([]string, len(components)),
	}
	for i, c := range components {
		typ.ComponentNames[i] = c.Name
		ct, err := NewType(c.Type, c.InternalType, c.Components)
		if err != nil {
			return Type{}, withPath(err, elemLabel(typ.ComponentNames, i))
		}
		typ.Components[i] = ct
	}
	return typ, nil
}

func parseBits(t, suffix string) (int, error) {
	if suffix == "" {
		return 256, nil
	}
	bits, err := strconv.Atoi(suffix)
	if err != nil || !validBits(bits) {
		return 0, unsupportedType(t, "integer width must be a multiple of 8 within 8..256")
	}
	return bits, nil
}

func validBits(bits int) bool {
	return bits >= 8 && bits <= 256 && bits%8 == 0
}

// elemInternalType 去掉内部类型的最后一个数组维度，如 "struct A.B[]" -> "struct A.B"
func elemInternalType(internalType string) string {
	if i := strings.LastIndex(internalType, "["); i > 0 && strings.HasSuffix(internalType, "]") {
		return internalType[:i]
	}
	return internalType
}

// String 返回用于函数签名的规范类型字符串
func (t Type) String() string {
	switch t.Kind {
	case UintTy:
		return "uint" + strconv.Itoa(t.Size)
	case IntTy:
		return "int" + strconv.Itoa(t.Size)
	case AddressTy:
		return "address"
	case BoolTy:
		return "bool"
	case FixedBytesTy:
		return "bytes" + strconv.Itoa(t.Size)
	case BytesTy:
		return "bytes"
	case StringTy:
		return "string"
	case TupleTy:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, ",") + ")"
	case SliceTy:
		return t.Elem.String() + "[]"
	case ArrayTy:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	}
	return t.Kind.String()
}

// IsDynamic 判断类型是否需要放在 tail 中通过偏移引用
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case StringTy, BytesTy, SliceTy:
		return true
	case ArrayTy:
		return t.Elem.IsDynamic()
	case TupleTy:
		for _, c := range t.Components {
			if c.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// HeadSize 返回该类型的值在外层 head 中占用的字节数
//
// 动态类型只占一个偏移字；静态 tuple 与静态数组内联展开。
func (t Type) HeadSize() int {
	if t.IsDynamic() {
		return wordSize
	}
	switch t.Kind {
	case ArrayTy:
		return t.Size * t.Elem.HeadSize()
	case TupleTy:
		size := 0
		for _, c := range t.Components {
			size += c.HeadSize()
		}
		return size
	}
	return wordSize
}

// repeat 返回 n 个相同元素类型，用于把数组当作同构 tuple 编解码
func repeat(t Type, n int) []Type {
	out := make([]Type, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func headSizeOf(ts []Type) int {
	size := 0
	for _, t := range ts {
		size += t.HeadSize()
	}
	return size
}
