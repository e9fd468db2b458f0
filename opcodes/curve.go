package opcodes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/multicaller"
	"github.com/loomswap/arbcore/swapline"
)

// needBalanceMap lists Curve pools whose `exchange` return value cannot be
// trusted as the output amount, so the next hop must read the multicaller's
// token balance explicitly instead of binding the swap's return-stack.
var needBalanceMap = map[common.Address]bool{
	common.HexToAddress("0xD51a44d3FaE010294C616388b506AcdA1bfAAE46"): true,
	common.HexToAddress("0xbEbc44782C7dB0a1A60Cb6fe97d0b483032FF1C7"): true,
	common.HexToAddress("0xA5407eAE9Ba41422680e2e00537571bcC53efBfD"): true, // sUSD
}

func curveNeedsBalance(pool entities.Pool) bool {
	return needBalanceMap[pool.GetAddress()]
}

// CurveSwapOpcodesEncoder compiles a StableSwap exchange() call, bridging
// the NEED_BALANCE_MAP pools to an explicit balanceOf read instead of
// trusting the exchange return value.
type CurveSwapOpcodesEncoder struct{}

func (CurveSwapOpcodesEncoder) EncodeSwapInAmountProvided(
	ops *multicaller.MulticallerCalls,
	abi ABIEncoder,
	tokenFrom, tokenTo common.Address,
	amountIn swapline.SwapAmountType,
	curPool entities.Pool,
	nextPool entities.Pool,
	multicallerAddr common.Address,
) error {
	return encodeSwapInAmountCommon(ops, abi, tokenFrom, tokenTo, amountIn, curPool, nextPool, multicallerAddr, curveNeedsBalance)
}

var _ SwapOpcodesEncoder = CurveSwapOpcodesEncoder{}
