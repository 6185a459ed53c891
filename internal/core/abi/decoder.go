package abi

import (
	"math/big"
)

// DecodeOptions 解码选项
type DecodeOptions struct {
	// Lenient 为 true 时不校验填充位、布尔取值、偏移对齐和 UTF-8，
	// 兼容非规范编码的节点返回值
	Lenient bool
}

// DecodeArguments 严格解码一组参数
func DecodeArguments(types []Type, raw []byte) ([]Value, error) {
	return DecodeArgumentsWith(types, raw, DecodeOptions{})
}

// DecodeArgumentsWith 按给定选项解码一组参数
func DecodeArgumentsWith(types []Type, raw []byte, opts DecodeOptions) ([]Value, error) {
	d := decoder{lenient: opts.Lenient}
	return d.decodeTuple(types, nil, raw)
}

type decoder struct {
	lenient bool
}

// decodeTuple 解码一个 head/tail 区域，偏移相对 data 起点
func (d decoder) decodeTuple(types []Type, names []string, data []byte) ([]Value, error) {
	values := make([]Value, len(types))
	pos := 0
	for i, t := range types {
		var (
			v   Value
			err error
		)
		if t.IsDynamic() {
			var off int
			off, err = d.readOffset(data, pos)
			if err == nil {
				v, err = d.decodeDynamic(t, data, off)
			}
			pos += wordSize
		} else {
			v, err = d.decodeStatic(t, data, pos)
			pos += t.HeadSize()
		}
		if err != nil {
			return nil, withPath(err, elemLabel(names, i))
		}
		values[i] = v
	}
	return values, nil
}

func (d decoder) decodeStatic(t Type, data []byte, pos int) (Value, error) {
	switch t.Kind {
	case ArrayTy:
		if pos > len(data) {
			return Value{}, truncatedError("%s at %d beyond data length %d", t, pos, len(data))
		}
		elems, err := d.decodeTuple(repeat(*t.Elem, t.Size), nil, data[pos:])
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ArrayValue, elems: elems}, nil
	case TupleTy:
		if pos > len(data) {
			return Value{}, truncatedError("%s at %d beyond data length %d", t, pos, len(data))
		}
		elems, err := d.decodeTuple(t.Components, t.ComponentNames, data[pos:])
		if err != nil {
			return Value{}, err
		}
		return newLabeledTuple(elems, t.ComponentNames), nil
	}

	word, err := readWord(data, pos)
	if err != nil {
		return Value{}, err
	}
	switch t.Kind {
	case UintTy:
		n, err := decodeUint(word, t.Size, d.lenient)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: UintValue, num: n}, nil
	case IntTy:
		n, err := decodeInt(word, t.Size, d.lenient)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: IntValue, num: n}, nil
	case AddressTy:
		a, err := decodeAddress(word, d.lenient)
		if err != nil {
			return Value{}, err
		}
		return NewAddress(a), nil
	case BoolTy:
		b, err := decodeBool(word, d.lenient)
		if err != nil {
			return Value{}, err
		}
		return NewBool(b), nil
	case FixedBytesTy:
		b, err := decodeFixedBytes(word, t.Size, d.lenient)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: FixedBytesValue, raw: b}, nil
	}
	return Value{}, unsupportedType(t.String(), "cannot decode kind %s", t.Kind)
}

// decodeDynamic 解码从 data[off] 开始的动态值
func (d decoder) decodeDynamic(t Type, data []byte, off int) (Value, error) {
	switch t.Kind {
	case StringTy, BytesTy:
		content, err := readLengthPrefixed(data, off)
		if err != nil {
			return Value{}, err
		}
		if t.Kind == BytesTy {
			return Value{kind: BytesValue, raw: content}, nil
		}
		s, err := decodeText(content, d.lenient)
		if err != nil {
			return Value{}, err
		}
		return NewString(s), nil
	case SliceTy:
		n, err := readLength(data, off)
		if err != nil {
			return Value{}, err
		}
		region := data[off+wordSize:]
		// 每个元素在 head 中至少占一个字
		if n > len(region)/wordSize {
			return Value{}, truncatedError("%s with %d elements exceeds remaining %d bytes", t, n, len(region))
		}
		elems, err := d.decodeTuple(repeat(*t.Elem, n), nil, region)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ArrayValue, elems: elems}, nil
	case ArrayTy:
		elems, err := d.decodeTuple(repeat(*t.Elem, t.Size), nil, data[off:])
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ArrayValue, elems: elems}, nil
	case TupleTy:
		elems, err := d.decodeTuple(t.Components, t.ComponentNames, data[off:])
		if err != nil {
			return Value{}, err
		}
		return newLabeledTuple(elems, t.ComponentNames), nil
	}
	return Value{}, unsupportedType(t.String(), "kind %s is not dynamic", t.Kind)
}

// readOffset 读取 pos 处的偏移字，偏移不得越过 data 末尾
func (d decoder) readOffset(data []byte, pos int) (int, error) {
	word, err := readWord(data, pos)
	if err != nil {
		return 0, err
	}
	off := new(big.Int).SetBytes(word)
	if off.Cmp(big.NewInt(int64(len(data)))) > 0 {
		return 0, truncatedError("offset %s beyond data length %d", off, len(data))
	}
	n := int(off.Int64())
	if !d.lenient && n%wordSize != 0 {
		return 0, formatError("", "offset %d is not word aligned", n)
	}
	return n, nil
}

// readLength 读取 off 处的长度字，长度不得超过其后剩余的字节数
func readLength(data []byte, off int) (int, error) {
	word, err := readWord(data, off)
	if err != nil {
		return 0, err
	}
	length := new(big.Int).SetBytes(word)
	remaining := len(data) - off - wordSize
	if length.Cmp(big.NewInt(int64(remaining))) > 0 {
		return 0, truncatedError("length %s exceeds remaining %d bytes", length, remaining)
	}
	return int(length.Int64()), nil
}

func readLengthPrefixed(data []byte, off int) ([]byte, error) {
	n, err := readLength(data, off)
	if err != nil {
		return nil, err
	}
	start := off + wordSize
	content := make([]byte, n)
	copy(content, data[start:start+n])
	return content, nil
}

func readWord(data []byte, pos int) ([]byte, error) {
	if pos < 0 || pos+wordSize > len(data) {
		return nil, truncatedError("word at %d beyond data length %d", pos, len(data))
	}
	return data[pos : pos+wordSize], nil
}
