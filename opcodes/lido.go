package opcodes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/multicaller"
	"github.com/loomswap/arbcore/swapline"
)

// WstEthSwapOpcodesEncoder compiles wstETH's wrap()/unwrap() calls through
// the same approve-then-call shape every ERC20-in pool uses.
type WstEthSwapOpcodesEncoder struct{}

func (WstEthSwapOpcodesEncoder) EncodeSwapInAmountProvided(
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

var _ SwapOpcodesEncoder = WstEthSwapOpcodesEncoder{}

// StEthSwapOpcodesEncoder compiles stETH's submit(), Lido's native-ETH
// staking entry point; in_native is always true for this class since the
// abi encoder's IsNative reports true and tokenFrom is WETH.
type StEthSwapOpcodesEncoder struct{}

func (StEthSwapOpcodesEncoder) EncodeSwapInAmountProvided(
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

var _ SwapOpcodesEncoder = StEthSwapOpcodesEncoder{}
