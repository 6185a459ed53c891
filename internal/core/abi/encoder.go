package abi

// EncodeArguments 按 head/tail 布局编码一组参数
//
// 静态参数在 head 中内联，动态参数在 head 中写入偏移字，内容追加到 tail。
// 偏移以本区域起点计，等于 head 总长加当前 tail 长度。tuple 与数组递归使用同一规则。
func EncodeArguments(types []Type, values []Value) ([]byte, error) {
	if len(types) != len(values) {
		return nil, arityError("arguments", len(types), len(values))
	}
	return encodeTuple(types, nil, values)
}

func encodeTuple(types []Type, names []string, values []Value) ([]byte, error) {
	if len(types) != len(values) {
		return nil, arityError("tuple", len(types), len(values))
	}
	headSize := headSizeOf(types)
	head := make([]byte, 0, headSize)
	var tail []byte
	for i, t := range types {
		enc, err := encodeValue(t, values[i])
		if err != nil {
			return nil, withPath(err, elemLabel(names, i))
		}
		if t.IsDynamic() {
			head = append(head, packLength(headSize+len(tail))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

func encodeValue(t Type, v Value) ([]byte, error) {
	switch t.Kind {
	case UintTy:
		if v.kind != UintValue && v.kind != IntValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		return EncodeUint(v.num, t.Size)
	case IntTy:
		if v.kind != UintValue && v.kind != IntValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		return EncodeInt(v.num, t.Size)
	case AddressTy:
		if v.kind != AddressValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		return EncodeAddressBytes(v.addr), nil
	case BoolTy:
		if v.kind != BoolValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		return EncodeBool(v.boolean), nil
	case FixedBytesTy:
		if v.kind != FixedBytesValue && v.kind != BytesValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		return EncodeFixedBytes(v.raw, t.Size)
	case StringTy:
		if v.kind != StringValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		return EncodeString(v.str), nil
	case BytesTy:
		if v.kind != BytesValue && v.kind != FixedBytesValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		return EncodeDynamicBytes(v.raw), nil
	case TupleTy:
		if v.kind != TupleValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		elems, err := tupleElems(t, v)
		if err != nil {
			return nil, err
		}
		return encodeTuple(t.Components, t.ComponentNames, elems)
	case SliceTy:
		if v.kind != ArrayValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		body, err := encodeTuple(repeat(*t.Elem, len(v.elems)), nil, v.elems)
		if err != nil {
			return nil, err
		}
		return append(packLength(len(v.elems)), body...), nil
	case ArrayTy:
		if v.kind != ArrayValue {
			return nil, typeMismatch(t.String(), v.kind)
		}
		if len(v.elems) != t.Size {
			return nil, arityError(t.String(), t.Size, len(v.elems))
		}
		return encodeTuple(repeat(*t.Elem, t.Size), nil, v.elems)
	}
	return nil, unsupportedType(t.String(), "cannot encode kind %s", t.Kind)
}

// tupleElems 按类型声明顺序取出 tuple 成员，按名构造的 tuple 逐一按成员名解析
func tupleElems(t Type, v Value) ([]Value, error) {
	if v.named == nil {
		if len(v.elems) != len(t.Components) {
			return nil, arityError(t.String(), len(t.Components), len(v.elems))
		}
		return v.elems, nil
	}
	elems := make([]Value, len(t.Components))
	for i, name := range t.ComponentNames {
		f, ok := v.named[name]
		if name == "" || !ok {
			return nil, newError(KindTypeMismatch).typ(t.String()).
				detail("missing field %s", elemLabel(t.ComponentNames, i)).build()
		}
		elems[i] = f
	}
	if len(v.named) != len(t.Components) {
		for name := range v.named {
			if !containsName(t.ComponentNames, name) {
				return nil, newError(KindTypeMismatch).typ(t.String()).
					detail("unknown field %q", name).build()
			}
		}
	}
	return elems, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
