package abi

import (
	"math/big"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/evmabi/pkg/types"
)

// TestCompatWithGethPack 与 go-ethereum 的编码结果逐字节比对
func TestCompatWithGethPack(t *testing.T) {
	var word32 [32]byte
	word32[0], word32[31] = 0xaa, 0xbb

	cases := []struct {
		name   string
		typ    string
		geth   interface{}
		value  Value
		params []types.ABIParam
	}{
		{"uint256", "uint256", big.NewInt(1000), UintFrom64(1000), nil},
		{"int8 负数", "int8", int8(-5), IntFrom64(-5), nil},
		{"int256 负数", "int256", big.NewInt(-123456789), IntFrom64(-123456789), nil},
		{"bool", "bool", true, NewBool(true), nil},
		{"address", "address", addrA, NewAddress(addrA), nil},
		{"bytes32", "bytes32", word32, NewFixedBytes(word32[:]), nil},
		{"bytes", "bytes", []byte{1, 2, 3}, NewBytes([]byte{1, 2, 3}), nil},
		{"string", "string", "hello, world", NewString("hello, world"), nil},
		{"address[]", "address[]", []common.Address{addrA, addrB}, NewArray(NewAddress(addrA), NewAddress(addrB)), nil},
		{"string[2]", "string[2]", [2]string{"a", "bc"}, NewArray(NewString("a"), NewString("bc")), nil},
		{
			"uint256[2][]", "uint256[2][]",
			[][2]*big.Int{{big.NewInt(1), big.NewInt(2)}, {big.NewInt(3), big.NewInt(4)}},
			NewArray(
				NewArray(UintFrom64(1), UintFrom64(2)),
				NewArray(UintFrom64(3), UintFrom64(4)),
			),
			nil,
		},
		{
			"tuple", "tuple",
			struct {
				Id    *big.Int `abi:"id"`
				Names []string `abi:"names"`
			}{big.NewInt(9), []string{"x", "y"}},
			NewTuple(UintFrom64(9), NewArray(NewString("x"), NewString("y"))),
			[]types.ABIParam{{Name: "id", Type: "uint256"}, {Name: "names", Type: "string[]"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gethType, err := gethabi.NewType(tc.typ, "", toGethComponents(tc.params))
			require.NoError(t, err)
			want, err := gethabi.Arguments{{Type: gethType}}.Pack(tc.geth)
			require.NoError(t, err)

			typ, err := NewType(tc.typ, "", tc.params)
			require.NoError(t, err)
			got, err := EncodeArguments([]Type{typ}, []Value{tc.value})
			require.NoError(t, err)
			assert.Equal(t, want, got)

			decoded, err := DecodeArguments([]Type{typ}, want)
			require.NoError(t, err)
			assert.True(t, tc.value.Equal(decoded[0]), "decoded %s", decoded[0])
		})
	}
}

// TestCompatMultipleArguments 多参数与 go-ethereum 比对
func TestCompatMultipleArguments(t *testing.T) {
	var args gethabi.Arguments
	for _, s := range []string{"uint256", "string", "bool", "bytes", "int16[]"} {
		typ, err := gethabi.NewType(s, "", nil)
		require.NoError(t, err)
		args = append(args, gethabi.Argument{Type: typ})
	}
	want, err := args.Pack(big.NewInt(42), "hi", true, []byte("payload"), []int16{-1, 2, -300})
	require.NoError(t, err)

	got, err := EncodeArguments(
		mustTypes("uint256", "string", "bool", "bytes", "int16[]"),
		[]Value{
			UintFrom64(42), NewString("hi"), NewBool(true), NewBytes([]byte("payload")),
			NewArray(IntFrom64(-1), IntFrom64(2), IntFrom64(-300)),
		},
	)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func toGethComponents(params []types.ABIParam) []gethabi.ArgumentMarshaling {
	if params == nil {
		return nil
	}
	out := make([]gethabi.ArgumentMarshaling, len(params))
	for i, p := range params {
		out[i] = gethabi.ArgumentMarshaling{
			Name:         p.Name,
			Type:         p.Type,
			InternalType: p.InternalType,
			Components:   toGethComponents(p.Components),
		}
	}
	return out
}
