package abi

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeUint 测试无符号整数编码
func TestEncodeUint(t *testing.T) {
	t.Run("左侧补零", func(t *testing.T) {
		word, err := EncodeUint(big.NewInt(42), 256)
		require.NoError(t, err)
		assert.Equal(t, wordOf(42), word)
	})

	t.Run("位宽边界", func(t *testing.T) {
		_, err := EncodeUint(big.NewInt(255), 8)
		assert.NoError(t, err)

		_, err = EncodeUint(big.NewInt(256), 8)
		assert.ErrorIs(t, err, ErrRange)
	})

	t.Run("uint256 最大值", func(t *testing.T) {
		word, err := EncodeUint(MaxUint(256), 256)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0xff}, 32), word)

		overflow := new(big.Int).Lsh(big.NewInt(1), 256)
		_, err = EncodeUint(overflow, 256)
		assert.ErrorIs(t, err, ErrRange)
	})

	t.Run("负数与空值", func(t *testing.T) {
		_, err := EncodeUint(big.NewInt(-1), 256)
		assert.ErrorIs(t, err, ErrRange)

		_, err = EncodeUint(nil, 256)
		assert.ErrorIs(t, err, ErrRange)
	})

	t.Run("非法位宽", func(t *testing.T) {
		_, err := EncodeUint(big.NewInt(1), 7)
		assert.ErrorIs(t, err, ErrUnsupportedType)

		_, err = EncodeUint(big.NewInt(1), 264)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

// TestEncodeInt 测试有符号整数编码与符号扩展
func TestEncodeInt(t *testing.T) {
	t.Run("负一为全 0xFF", func(t *testing.T) {
		word, err := EncodeInt(big.NewInt(-1), 8)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0xff}, 32), word)
	})

	t.Run("int8 边界", func(t *testing.T) {
		word, err := EncodeInt(big.NewInt(-128), 8)
		require.NoError(t, err)
		want := bytes.Repeat([]byte{0xff}, 32)
		want[31] = 0x80
		assert.Equal(t, want, word)

		_, err = EncodeInt(big.NewInt(127), 8)
		assert.NoError(t, err)

		_, err = EncodeInt(big.NewInt(128), 8)
		assert.ErrorIs(t, err, ErrRange)

		_, err = EncodeInt(big.NewInt(-129), 8)
		assert.ErrorIs(t, err, ErrRange)
	})

	t.Run("int256 边界", func(t *testing.T) {
		lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
		word, err := EncodeInt(lo, 256)
		require.NoError(t, err)
		want := make([]byte, 32)
		want[0] = 0x80
		assert.Equal(t, want, word)

		_, err = EncodeInt(new(big.Int).Lsh(big.NewInt(1), 255), 256)
		assert.ErrorIs(t, err, ErrRange)
	})

	t.Run("正数与无符号相同", func(t *testing.T) {
		word, err := EncodeInt(big.NewInt(42), 64)
		require.NoError(t, err)
		assert.Equal(t, wordOf(42), word)
	})
}

// TestDecodeInt 测试有符号整数解码
func TestDecodeInt(t *testing.T) {
	t.Run("负数", func(t *testing.T) {
		v, err := DecodeInt(bytes.Repeat([]byte{0xff}, 32), 8)
		require.NoError(t, err)
		assert.Equal(t, int64(-1), v.Int64())
	})

	t.Run("编解码往返", func(t *testing.T) {
		for _, n := range []int64{0, 1, -1, 300, -300, 32767, -32768} {
			word, err := EncodeInt(big.NewInt(n), 16)
			require.NoError(t, err)
			v, err := DecodeInt(word, 16)
			require.NoError(t, err)
			assert.Equal(t, n, v.Int64())
		}
	})

	t.Run("符号扩展错误", func(t *testing.T) {
		word := wordOf(0x80)
		_, err := DecodeInt(word, 8)
		assert.ErrorIs(t, err, ErrRange)

		v, err := decodeInt(word, 8, true)
		require.NoError(t, err)
		assert.Equal(t, int64(-128), v.Int64())
	})

	t.Run("字长错误", func(t *testing.T) {
		_, err := DecodeInt(make([]byte, 31), 256)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})
}

// TestDecodeUint 测试无符号整数解码
func TestDecodeUint(t *testing.T) {
	v, err := DecodeUint(wordOf(255), 8)
	require.NoError(t, err)
	assert.Equal(t, int64(255), v.Int64())

	t.Run("高位脏数据", func(t *testing.T) {
		_, err := DecodeUint(wordOf(256), 8)
		assert.ErrorIs(t, err, ErrRange)

		v, err := decodeUint(wordOf(0x1ff), 8, true)
		require.NoError(t, err)
		assert.Equal(t, int64(0xff), v.Int64())
	})

	t.Run("uint256 最大值", func(t *testing.T) {
		v, err := DecodeUint(bytes.Repeat([]byte{0xff}, 32), 256)
		require.NoError(t, err)
		assert.Equal(t, 0, v.Cmp(MaxUint(256)))
	})
}
