package abi

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// tokenABI 测试用合约 ABI，包含同名重载、多返回值与非函数条目
const tokenABI = `[
  {"type":"function","name":"transfer","stateMutability":"nonpayable",
   "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getReserves","stateMutability":"view","inputs":[],
   "outputs":[{"name":"reserve0","type":"uint112"},{"name":"reserve1","type":"uint112"},{"name":"blockTimestampLast","type":"uint32"}]},
  {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable",
   "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable",
   "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"data","type":"bytes"}],
   "outputs":[]},
  {"type":"function","name":"set","inputs":[{"name":"v","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"set","inputs":[{"name":"v","type":"string"}],"outputs":[]},
  {"type":"function","name":"createRaffle","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","internalType":"struct RaffleManager.Params","components":[
     {"name":"title","type":"string"},
     {"name":"ticketPrice","type":"uint96"},
     {"name":"winners","type":"address[]"}
   ]}],
   "outputs":[{"name":"id","type":"uint256"},{"name":"name","type":"string"}]},
  {"type":"event","name":"Transfer","anonymous":false,
   "inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256"}]},
  {"type":"constructor","inputs":[{"name":"supply","type":"uint256"}]}
]`

var (
	addrA = common.HexToAddress("0x1111111111111111111111111111111111111111")
	addrB = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// mustABI 解析测试 ABI
func mustABI(t *testing.T) *ABI {
	t.Helper()
	a, err := ParseABI([]byte(tokenABI))
	require.NoError(t, err)
	return a
}

// words 将若干 64 位十六进制字拼接为字节串，空白被忽略
func words(hexWords ...string) []byte {
	var buf bytes.Buffer
	for _, w := range hexWords {
		w = strings.Join(strings.Fields(w), "")
		buf.Write(common.FromHex(w))
	}
	return buf.Bytes()
}

// wordOf 返回 n 的 32 字节大端表示
func wordOf(n int64) []byte {
	return common.LeftPadBytes(big.NewInt(n).Bytes(), 32)
}

// padRight 右侧补零到 32 字节
func padRight(s string) []byte {
	return common.RightPadBytes([]byte(s), 32)
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 0)
	require.True(t, ok, s)
	return v
}
