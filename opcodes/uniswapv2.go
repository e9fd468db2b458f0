package opcodes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/multicaller"
	"github.com/loomswap/arbcore/swapline"
)

// UniswapV2SwapOpcodesEncoder compiles a constant-product swap() call.
type UniswapV2SwapOpcodesEncoder struct{}

func (UniswapV2SwapOpcodesEncoder) EncodeSwapInAmountProvided(
	ops *multicaller.MulticallerCalls,
	abi ABIEncoder,
	tokenFrom, tokenTo common.Address,
	amountIn swapline.SwapAmountType,
	curPool entities.Pool,
	nextPool entities.Pool,
	multicallerAddr common.Address,
) error {
	return encodeSwapInAmountCommon(ops, abi, tokenFrom, tokenTo, amountIn, curPool, nextPool, multicallerAddr, nil)
}

var _ SwapOpcodesEncoder = UniswapV2SwapOpcodesEncoder{}
