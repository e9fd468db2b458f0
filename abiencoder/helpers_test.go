package abiencoder

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestEncodeERC20ApproveHasApproveSelector(t *testing.T) {
	spender := common.HexToAddress("0x0000000000000000000000000000000000000001")
	data := EncodeERC20Approve(spender, big.NewInt(100))
	assert.Equal(t, erc20ABI.Methods["approve"].ID, data[:4])
	assert.Len(t, data, 4+32+32)
}

func TestEncodeWethWithdrawHasWithdrawSelector(t *testing.T) {
	data := EncodeWethWithdraw(big.NewInt(0))
	assert.Equal(t, wethABI.Methods["withdraw"].ID, data[:4])
}

func TestEncodeUni2GetOutAmount(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000001")
	b := common.HexToAddress("0x0000000000000000000000000000000000000002")
	pool := common.HexToAddress("0x0000000000000000000000000000000000000003")
	data := EncodeUni2GetOutAmount(a, b, pool, big.NewInt(10), big.NewInt(997))
	assert.Equal(t, multicallerHelperABI.Methods["uni2GetOutAmount"].ID, data[:4])
}

func TestIsWeth(t *testing.T) {
	assert.True(t, IsWeth(WETH))
	assert.False(t, IsWeth(common.HexToAddress("0x0000000000000000000000000000000000000001")))
}
