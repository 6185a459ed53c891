package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// ============================================================================
//                               JSON 边界转换
// ============================================================================

// ParseArgument 将命令行参数转换为 Value
//
// 参数按 JSON 解析；对地址、字符串、字节等标量类型，非 JSON 字符串的输入按原文处理，
// 因此 0xabc... 与 hello 无需加引号。
func ParseArgument(t Type, s string) (Value, error) {
	raw := []byte(strings.TrimSpace(s))
	if isTextKind(t.Kind) && (len(raw) == 0 || raw[0] != '"') {
		quoted, _ := json.Marshal(s)
		raw = quoted
	} else if !json.Valid(raw) {
		quoted, _ := json.Marshal(s)
		raw = quoted
	}
	return ValueFromJSON(t, raw)
}

func isTextKind(k TypeKind) bool {
	switch k {
	case AddressTy, StringTy, BytesTy, FixedBytesTy:
		return true
	}
	return false
}

// ValueFromJSON 按类型把 JSON 值转换为 Value
//
// 整数接受 JSON 数字或十进制 / 0x 十六进制字符串；tuple 接受数组（按位置）或以成员名为键的对象。
func ValueFromJSON(t Type, raw json.RawMessage) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var x interface{}
	if err := dec.Decode(&x); err != nil {
		return Value{}, newError(KindFormat).typ(t.String()).detail("invalid JSON").cause(err).build()
	}
	return fromJSON(t, x)
}

func fromJSON(t Type, x interface{}) (Value, error) {
	switch t.Kind {
	case UintTy, IntTy:
		var s string
		switch n := x.(type) {
		case json.Number:
			s = n.String()
		case string:
			s = n
		default:
			return Value{}, jsonMismatch(t, x)
		}
		v, err := ParseInteger(s)
		if err != nil {
			return Value{}, newError(KindFormat).typ(t.String()).detail("invalid integer %q", s).build()
		}
		if t.Kind == UintTy {
			return Value{kind: UintValue, num: v}, nil
		}
		return Value{kind: IntValue, num: v}, nil
	case AddressTy:
		s, ok := x.(string)
		if !ok {
			return Value{}, jsonMismatch(t, x)
		}
		a, err := ParseAddress(s)
		if err != nil {
			return Value{}, err
		}
		return NewAddress(a), nil
	case BoolTy:
		switch b := x.(type) {
		case bool:
			return NewBool(b), nil
		case string:
			switch b {
			case "true":
				return NewBool(true), nil
			case "false":
				return NewBool(false), nil
			}
			return Value{}, formatError(t.String(), "invalid bool %q", b)
		}
		return Value{}, jsonMismatch(t, x)
	case FixedBytesTy, BytesTy:
		s, ok := x.(string)
		if !ok {
			return Value{}, jsonMismatch(t, x)
		}
		b, err := ParseFixedBytes(s)
		if err != nil {
			return Value{}, err
		}
		if t.Kind == BytesTy {
			return Value{kind: BytesValue, raw: b}, nil
		}
		if len(b) > t.Size {
			return Value{}, rangeError(t.String(), "%d bytes do not fit", len(b))
		}
		return Value{kind: FixedBytesValue, raw: b}, nil
	case StringTy:
		s, ok := x.(string)
		if !ok {
			return Value{}, jsonMismatch(t, x)
		}
		return NewString(s), nil
	case TupleTy:
		return tupleFromJSON(t, x)
	case SliceTy, ArrayTy:
		items, ok := x.([]interface{})
		if !ok {
			return Value{}, jsonMismatch(t, x)
		}
		if t.Kind == ArrayTy && len(items) != t.Size {
			return Value{}, arityError(t.String(), t.Size, len(items))
		}
		elems := make([]Value, len(items))
		for i, item := range items {
			v, err := fromJSON(*t.Elem, item)
			if err != nil {
				return Value{}, withPath(err, fmt.Sprintf("[%d]", i))
			}
			elems[i] = v
		}
		return Value{kind: ArrayValue, elems: elems}, nil
	}
	return Value{}, unsupportedType(t.String(), "cannot convert kind %s", t.Kind)
}

func tupleFromJSON(t Type, x interface{}) (Value, error) {
	elems := make([]Value, len(t.Components))
	switch obj := x.(type) {
	case []interface{}:
		if len(obj) != len(t.Components) {
			return Value{}, arityError(t.String(), len(t.Components), len(obj))
		}
		for i, c := range t.Components {
			v, err := fromJSON(c, obj[i])
			if err != nil {
				return Value{}, withPath(err, elemLabel(t.ComponentNames, i))
			}
			elems[i] = v
		}
	case map[string]interface{}:
		for i, c := range t.Components {
			name := t.ComponentNames[i]
			item, ok := obj[name]
			if name == "" || !ok {
				return Value{}, newError(KindTypeMismatch).typ(t.String()).
					detail("missing field %s", elemLabel(t.ComponentNames, i)).build()
			}
			v, err := fromJSON(c, item)
			if err != nil {
				return Value{}, withPath(err, name)
			}
			elems[i] = v
		}
		for name := range obj {
			if !containsName(t.ComponentNames, name) {
				return Value{}, newError(KindTypeMismatch).typ(t.String()).
					detail("unknown field %q", name).build()
			}
		}
	default:
		return Value{}, jsonMismatch(t, x)
	}
	return newLabeledTuple(elems, t.ComponentNames), nil
}

func jsonMismatch(t Type, x interface{}) error {
	return newError(KindTypeMismatch).typ(t.String()).detail("cannot use JSON %s", jsonKind(x)).build()
}

func jsonKind(x interface{}) string {
	switch x.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", x)
}

// ParseInteger 解析十进制或 0x 十六进制整数，允许前导负号
func ParseInteger(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	base := 10
	if has0xPrefix(s) {
		s = s[2:]
		base = 16
	}
	if s == "" || strings.ContainsAny(s, "+-_") {
		return nil, fmt.Errorf("invalid integer")
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer")
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// MarshalJSON 将值渲染为 JSON
//
// 整数输出为十进制字符串，地址为 EIP-55 校验和形式，字节为 0x 十六进制；
// 带名字的 tuple 输出为按声明顺序排列的对象，否则输出为数组。
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case InvalidValue:
		return []byte("null"), nil
	case UintValue, IntValue:
		if v.num == nil {
			return []byte("null"), nil
		}
		return json.Marshal(v.num.String())
	case AddressValue:
		return json.Marshal(v.addr.Hex())
	case BoolValue:
		return json.Marshal(v.boolean)
	case FixedBytesValue, BytesValue:
		return json.Marshal(v.String())
	case StringValue:
		return json.Marshal(v.str)
	case TupleValue:
		if v.named != nil {
			keys := make([]string, 0, len(v.named))
			for k := range v.named {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fields := make([]Value, len(keys))
			for i, k := range keys {
				fields[i] = v.named[k]
			}
			return marshalObject(keys, fields)
		}
		if len(v.names) == len(v.elems) && len(v.names) > 0 {
			return marshalObject(v.names, v.elems)
		}
		if v.elems == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.elems)
	case ArrayValue:
		if v.elems == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.elems)
	}
	return nil, fmt.Errorf("abi: cannot marshal value kind %s", v.kind)
}

func marshalObject(keys []string, values []Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
