// Package abiencoder builds the raw call-data for the primitive calls the
// opcode encoders splice together: ERC20 approve/transfer/balanceOf, WETH
// wrap/unwrap, and the multicaller contract's own internal helpers
// (UniswapV2 get-in/get-out amount, tip transfer).
package abiencoder

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const erc20ABIJSON = `[
	{"name":"approve","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"name":"transfer","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"name":"balanceOf","type":"function","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

const wethABIJSON = `[
	{"name":"withdraw","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"wad","type":"uint256"}],"outputs":[]},
	{"name":"deposit","type":"function","stateMutability":"payable",
	 "inputs":[],"outputs":[]}
]`

// multicallerHelperABIJSON describes the multicaller's own internal helper
// entry points: computing a UniswapV2 output/input amount off its constant
// product formula, and paying out the bot's tip at the end of a swap line.
const multicallerHelperABIJSON = `[
	{"name":"uni2GetOutAmount","type":"function","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"tokenFrom","type":"address"},{"name":"tokenTo","type":"address"},
		{"name":"pool","type":"address"},{"name":"amountIn","type":"uint256"},
		{"name":"fee","type":"uint256"}],"outputs":[]},
	{"name":"uni2GetInAmount","type":"function","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"tokenFrom","type":"address"},{"name":"tokenTo","type":"address"},
		{"name":"pool","type":"address"},{"name":"amountOut","type":"uint256"},
		{"name":"fee","type":"uint256"}],"outputs":[]},
	{"name":"transferTips","type":"function","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"token","type":"address"},{"name":"minBalance","type":"uint256"},
		{"name":"tips","type":"uint256"},{"name":"to","type":"address"}],"outputs":[]},
	{"name":"transferTipsWeth","type":"function","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"minBalance","type":"uint256"},{"name":"tips","type":"uint256"},
		{"name":"to","type":"address"}],"outputs":[]}
]`

var erc20ABI, wethABI, multicallerHelperABI abi.ABI

func init() {
	var err error
	if erc20ABI, err = abi.JSON(strings.NewReader(erc20ABIJSON)); err != nil {
		panic(fmt.Sprintf("abiencoder: parse erc20 ABI: %v", err))
	}
	if wethABI, err = abi.JSON(strings.NewReader(wethABIJSON)); err != nil {
		panic(fmt.Sprintf("abiencoder: parse weth ABI: %v", err))
	}
	if multicallerHelperABI, err = abi.JSON(strings.NewReader(multicallerHelperABIJSON)); err != nil {
		panic(fmt.Sprintf("abiencoder: parse multicaller helper ABI: %v", err))
	}
}

// WETH is the canonical wrapped-ether address on Ethereum mainnet.
var WETH = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")

// IsWeth reports whether addr is the canonical WETH contract.
func IsWeth(addr common.Address) bool {
	return addr == WETH
}

func mustPack(a abi.ABI, method string, args ...any) []byte {
	data, err := a.Pack(method, args...)
	if err != nil {
		panic(fmt.Sprintf("abiencoder: pack %s: %v", method, err))
	}
	return data
}

// EncodeERC20Approve builds approve(spender, amount) call-data.
func EncodeERC20Approve(spender common.Address, amount *big.Int) []byte {
	return mustPack(erc20ABI, "approve", spender, amount)
}

// EncodeERC20Transfer builds transfer(to, amount) call-data.
func EncodeERC20Transfer(to common.Address, amount *big.Int) []byte {
	return mustPack(erc20ABI, "transfer", to, amount)
}

// EncodeERC20BalanceOf builds balanceOf(account) call-data.
func EncodeERC20BalanceOf(account common.Address) []byte {
	return mustPack(erc20ABI, "balanceOf", account)
}

// EncodeWethWithdraw builds withdraw(wad) call-data.
func EncodeWethWithdraw(amount *big.Int) []byte {
	return mustPack(wethABI, "withdraw", amount)
}

// EncodeWethDeposit builds deposit() call-data.
func EncodeWethDeposit() []byte {
	return mustPack(wethABI, "deposit")
}

// EncodeUni2GetOutAmount builds the multicaller's internal out-amount
// helper call-data for a UniswapV2-style constant-product pool.
func EncodeUni2GetOutAmount(tokenFrom, tokenTo, pool common.Address, amountIn *big.Int, fee *big.Int) []byte {
	return mustPack(multicallerHelperABI, "uni2GetOutAmount", tokenFrom, tokenTo, pool, amountIn, fee)
}

// EncodeUni2GetInAmount builds the multicaller's internal in-amount helper
// call-data for a UniswapV2-style constant-product pool.
func EncodeUni2GetInAmount(tokenFrom, tokenTo, pool common.Address, amountOut *big.Int, fee *big.Int) []byte {
	return mustPack(multicallerHelperABI, "uni2GetInAmount", tokenFrom, tokenTo, pool, amountOut, fee)
}

// EncodeTransferTips builds the multicaller's tip-transfer helper call-data
// for an arbitrary ERC20 token.
func EncodeTransferTips(token common.Address, minBalance, tips *big.Int, to common.Address) []byte {
	return mustPack(multicallerHelperABI, "transferTips", token, minBalance, tips, to)
}

// EncodeTransferTipsWeth builds the WETH-specialized tip-transfer helper
// call-data (unwraps before paying out).
func EncodeTransferTipsWeth(minBalance, tips *big.Int, to common.Address) []byte {
	return mustPack(multicallerHelperABI, "transferTipsWeth", minBalance, tips, to)
}
