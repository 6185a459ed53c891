package abi

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/evmabi/pkg/types"
)

func mustTypes(ts ...string) []Type {
	out := make([]Type, len(ts))
	for i, s := range ts {
		out[i] = MustNewType(s)
	}
	return out
}

// TestEncodeArgumentsLayout 测试 head/tail 布局
func TestEncodeArgumentsLayout(t *testing.T) {
	t.Run("静态与动态混合", func(t *testing.T) {
		enc, err := EncodeArguments(
			mustTypes("uint256", "string", "uint256"),
			[]Value{UintFrom64(42), NewString("hi"), UintFrom64(7)},
		)
		require.NoError(t, err)
		assert.Equal(t, concat(wordOf(42), wordOf(96), wordOf(7), wordOf(2), padRight("hi")), enc)
	})

	t.Run("动态数组", func(t *testing.T) {
		enc, err := EncodeArguments(mustTypes("uint256[]"),
			[]Value{NewArray(UintFrom64(1), UintFrom64(2), UintFrom64(3))})
		require.NoError(t, err)
		assert.Equal(t, concat(wordOf(32), wordOf(3), wordOf(1), wordOf(2), wordOf(3)), enc)
	})

	t.Run("字符串数组的偏移相对数组内容起点", func(t *testing.T) {
		enc, err := EncodeArguments(mustTypes("string[]"),
			[]Value{NewArray(NewString("a"), NewString("b"))})
		require.NoError(t, err)
		assert.Equal(t, concat(
			wordOf(32), wordOf(2),
			wordOf(64), wordOf(128),
			wordOf(1), padRight("a"),
			wordOf(1), padRight("b"),
		), enc)
	})

	t.Run("静态数组内联", func(t *testing.T) {
		ts := mustTypes("uint256[2]", "bool")
		assert.Equal(t, 64, ts[0].HeadSize())
		enc, err := EncodeArguments(ts, []Value{NewArray(UintFrom64(1), UintFrom64(2)), NewBool(true)})
		require.NoError(t, err)
		assert.Equal(t, concat(wordOf(1), wordOf(2), wordOf(1)), enc)
	})

	t.Run("动态 tuple", func(t *testing.T) {
		typ, err := NewType("tuple", "", []types.ABIParam{
			{Name: "id", Type: "uint256"},
			{Name: "label", Type: "string"},
		})
		require.NoError(t, err)
		assert.True(t, typ.IsDynamic())

		enc, err := EncodeArguments([]Type{typ}, []Value{NewTuple(UintFrom64(5), NewString("hi"))})
		require.NoError(t, err)
		assert.Equal(t, concat(wordOf(32), wordOf(5), wordOf(64), wordOf(2), padRight("hi")), enc)

		named, err := EncodeArguments([]Type{typ}, []Value{NewNamedTuple(map[string]Value{
			"label": NewString("hi"),
			"id":    UintFrom64(5),
		})})
		require.NoError(t, err)
		assert.Equal(t, enc, named)
	})

	t.Run("无参数", func(t *testing.T) {
		enc, err := EncodeArguments(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, enc)
	})
}

// TestEncodeArgumentsErrors 测试编码错误
func TestEncodeArgumentsErrors(t *testing.T) {
	t.Run("参数个数", func(t *testing.T) {
		_, err := EncodeArguments(mustTypes("uint256", "bool"), []Value{UintFrom64(1)})
		assert.ErrorIs(t, err, ErrArity)
	})

	t.Run("类型不匹配带路径", func(t *testing.T) {
		_, err := EncodeArguments(mustTypes("uint256", "address"), []Value{UintFrom64(1), NewString("x")})
		require.ErrorIs(t, err, ErrTypeMismatch)
		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "[1]", FormatPath(e.Path))
	})

	t.Run("数组元素超出范围", func(t *testing.T) {
		_, err := EncodeArguments(mustTypes("uint8[]"), []Value{NewArray(UintFrom64(1), UintFrom64(300))})
		require.ErrorIs(t, err, ErrRange)
		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "[0][1]", FormatPath(e.Path))
	})

	t.Run("无符号类型拒绝负数", func(t *testing.T) {
		_, err := EncodeArguments(mustTypes("uint256"), []Value{IntFrom64(-1)})
		assert.ErrorIs(t, err, ErrRange)
	})

	t.Run("定长数组长度不符", func(t *testing.T) {
		_, err := EncodeArguments(mustTypes("uint256[3]"), []Value{NewArray(UintFrom64(1))})
		assert.ErrorIs(t, err, ErrArity)
	})

	t.Run("按名 tuple 缺少或多出成员", func(t *testing.T) {
		typ, err := NewType("tuple", "", []types.ABIParam{
			{Name: "a", Type: "uint256"},
			{Name: "b", Type: "bool"},
		})
		require.NoError(t, err)

		_, err = EncodeArguments([]Type{typ}, []Value{NewNamedTuple(map[string]Value{"a": UintFrom64(1)})})
		assert.ErrorIs(t, err, ErrTypeMismatch)

		_, err = EncodeArguments([]Type{typ}, []Value{NewNamedTuple(map[string]Value{
			"a": UintFrom64(1), "b": NewBool(true), "c": NewBool(false),
		})})
		assert.ErrorIs(t, err, ErrTypeMismatch)

		_, err = EncodeArguments([]Type{typ}, []Value{NewTuple(UintFrom64(1))})
		assert.ErrorIs(t, err, ErrArity)
	})

	t.Run("字段路径", func(t *testing.T) {
		fn, err := mustABI(t).FunctionBySignature("createRaffle((string,uint96,address[]))")
		require.NoError(t, err)
		tooBig := new(big.Int).Lsh(big.NewInt(1), 96)
		_, err = fn.Pack([]Value{NewTuple(NewString("x"), NewUint(tooBig), NewArray())})
		require.ErrorIs(t, err, ErrRange)
		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "createRaffle.params.ticketPrice", FormatPath(e.Path))
		assert.Contains(t, err.Error(), "createRaffle.params.ticketPrice (uint96)")
	})
}
