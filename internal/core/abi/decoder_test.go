package abi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeArgumentsRoundTrip 测试编码结果可以原样解码
func TestDecodeArgumentsRoundTrip(t *testing.T) {
	ts := mustTypes("uint256", "string", "int8", "address[]", "bytes", "bytes4", "bool[2]")
	values := []Value{
		UintFrom64(42),
		NewString("hello"),
		IntFrom64(-5),
		NewArray(NewAddress(addrA), NewAddress(addrB)),
		NewBytes([]byte{1, 2, 3}),
		NewFixedBytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		NewArray(NewBool(true), NewBool(false)),
	}
	enc, err := EncodeArguments(ts, values)
	require.NoError(t, err)

	got, err := DecodeArguments(ts, enc)
	require.NoError(t, err)
	require.Len(t, got, len(values))
	for i := range values {
		assert.True(t, values[i].Equal(got[i]), "arg %d: want %s, got %s", i, values[i], got[i])
	}
}

// TestDecodeArgumentsLayout 测试按已知布局解码
func TestDecodeArgumentsLayout(t *testing.T) {
	data := concat(wordOf(42), wordOf(96), wordOf(7), wordOf(2), padRight("hi"))
	got, err := DecodeArguments(mustTypes("uint256", "string", "uint256"), data)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got[0].BigInt().Int64())
	assert.Equal(t, "hi", got[1].Text())
	assert.Equal(t, int64(7), got[2].BigInt().Int64())

	t.Run("多余的尾部数据被忽略", func(t *testing.T) {
		got, err := DecodeArguments(mustTypes("uint256"), concat(wordOf(1), wordOf(2)))
		require.NoError(t, err)
		assert.Equal(t, int64(1), got[0].BigInt().Int64())
	})
}

// TestDecodeArgumentsTruncated 测试越界数据
func TestDecodeArgumentsTruncated(t *testing.T) {
	cases := []struct {
		name  string
		types []Type
		data  []byte
	}{
		{"不足一个字", mustTypes("uint256"), make([]byte, 31)},
		{"偏移越界", mustTypes("string"), wordOf(0x1000)},
		{"偏移为巨大整数", mustTypes("string"), bytes.Repeat([]byte{0xff}, 32)},
		{"长度超过剩余数据", mustTypes("bytes"), concat(wordOf(32), bytes.Repeat([]byte{0xff}, 32))},
		{"数组元素个数超过剩余数据", mustTypes("uint256[]"), concat(wordOf(32), wordOf(5), wordOf(1), wordOf(2))},
		{"静态数组不完整", mustTypes("uint256[3]"), concat(wordOf(1), wordOf(2))},
		{"空数据", mustTypes("bool"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeArguments(tc.types, tc.data)
			assert.ErrorIs(t, err, ErrTruncatedData)
		})
	}
}

// TestDecodeStrictAndLenient 测试严格与宽松解码的差异
func TestDecodeStrictAndLenient(t *testing.T) {
	lenient := DecodeOptions{Lenient: true}

	t.Run("偏移未对齐", func(t *testing.T) {
		data := concat(wordOf(33), []byte{0}, wordOf(1), padRight("a"))
		_, err := DecodeArguments(mustTypes("string"), data)
		assert.ErrorIs(t, err, ErrFormat)

		got, err := DecodeArgumentsWith(mustTypes("string"), data, lenient)
		require.NoError(t, err)
		assert.Equal(t, "a", got[0].Text())
	})

	t.Run("非法 UTF-8", func(t *testing.T) {
		data := concat(wordOf(32), wordOf(2), common32([]byte{0xff, 0xfe}))
		_, err := DecodeArguments(mustTypes("string"), data)
		assert.ErrorIs(t, err, ErrFormat)

		_, err = DecodeArgumentsWith(mustTypes("string"), data, lenient)
		assert.NoError(t, err)
	})

	t.Run("布尔取值", func(t *testing.T) {
		_, err := DecodeArguments(mustTypes("uint256", "bool"), concat(wordOf(1), wordOf(7)))
		assert.ErrorIs(t, err, ErrFormat)

		got, err := DecodeArgumentsWith(mustTypes("uint256", "bool"), concat(wordOf(1), wordOf(7)), lenient)
		require.NoError(t, err)
		assert.True(t, got[1].Bool())
	})
}

// TestDecodeNestedTuple 测试嵌套 tuple 解码保留成员名
func TestDecodeNestedTuple(t *testing.T) {
	fn, err := mustABI(t).FunctionBySignature("createRaffle((string,uint96,address[]))")
	require.NoError(t, err)

	arg := NewTuple(NewString("summer"), UintFrom64(100), NewArray(NewAddress(addrA), NewAddress(addrB)))
	calldata, err := fn.Pack([]Value{arg})
	require.NoError(t, err)

	got, err := fn.UnpackInput(calldata)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, arg.Equal(got[0]))

	params := got[0]
	assert.Equal(t, []string{"title", "ticketPrice", "winners"}, params.Names())
	price, ok := params.Field("ticketPrice")
	require.True(t, ok)
	assert.Equal(t, int64(100), price.BigInt().Int64())
	winners, ok := params.Field("winners")
	require.True(t, ok)
	assert.Equal(t, addrB, winners.Index(1).Address())

	t.Run("选择器不匹配", func(t *testing.T) {
		bad := append([]byte{0, 0, 0, 0}, calldata[4:]...)
		_, err := fn.UnpackInput(bad)
		assert.ErrorIs(t, err, ErrFormat)

		_, err = fn.UnpackInput(calldata[:3])
		assert.ErrorIs(t, err, ErrTruncatedData)
	})
}

func common32(b []byte) []byte {
	out := make([]byte, 32)
	copy(out, b)
	return out
}
