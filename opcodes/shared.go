// Package opcodes compiles a single swap hop into multicaller opcodes,
// dispatching the call-data shape and stack bindings per entities.PoolClass.
package opcodes

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/abiencoder"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/multicaller"
	"github.com/loomswap/arbcore/swapline"
)

// ABIEncoder is the per-class call-data templating a SwapOpcodesEncoder
// delegates to. abiencoder.ProtocolABIEncoderV2 satisfies this implicitly.
type ABIEncoder interface {
	PreswapRequirement(pool entities.Pool) entities.PreswapRequirement
	IsNative(pool entities.Pool) bool
	EncodeSwapInAmountProvided(pool entities.Pool, tokenFrom, tokenTo common.Address, amount *big.Int, recipient common.Address, payload []byte) ([]byte, error)
	EncodeSwapOutAmountProvided(pool entities.Pool, tokenFrom, tokenTo common.Address, amount *big.Int, recipient common.Address, payload []byte) ([]byte, error)
	SwapInAmountOffset(pool entities.Pool, tokenFrom, tokenTo common.Address) (uint32, bool)
	SwapOutAmountOffset(pool entities.Pool, tokenFrom, tokenTo common.Address) (uint32, bool)
}

// SwapOpcodesEncoder compiles one hop's call into the running opcode
// sequence, given the amount-resolution strategy the line compiler picked
// for this hop (literal, stack-bound, or balance-read).
type SwapOpcodesEncoder interface {
	EncodeSwapInAmountProvided(
		ops *multicaller.MulticallerCalls,
		abi ABIEncoder,
		tokenFrom, tokenTo common.Address,
		amountIn swapline.SwapAmountType,
		curPool entities.Pool,
		nextPool entities.Pool,
		multicallerAddr common.Address,
	) error
}

// needBalanceFunc reports whether a pool requires an explicit balanceOf
// read after the swap instead of trusting its return-stack value (Curve's
// NEED_BALANCE_MAP allowlist; every other class answers false).
type needBalanceFunc func(pool entities.Pool) bool

// encodeSwapInAmountCommon implements the shape shared by every
// non-flash-specific pool class: approve-or-unwrap, call the swap (with a
// literal amount, a stack-bound amount, or a balance-read amount), bind the
// return value back onto the stack unless the pool needs an explicit
// balance read, then bridge native output and push-forward transfer if the
// next hop expects its funds pushed rather than pulled.
func encodeSwapInAmountCommon(
	ops *multicaller.MulticallerCalls,
	abi ABIEncoder,
	tokenFrom, tokenTo common.Address,
	amountIn swapline.SwapAmountType,
	curPool entities.Pool,
	nextPool entities.Pool,
	multicallerAddr common.Address,
	needBalance needBalanceFunc,
) error {
	poolAddress := curPool.GetAddress()

	inNative := abi.IsNative(curPool) && abiencoder.IsWeth(tokenFrom)
	outNative := abi.IsNative(curPool) && abiencoder.IsWeth(tokenTo)

	bindReturn := needBalance == nil || !needBalance(curPool)

	switch amountIn.Kind {
	case swapline.AmountSet:
		amount := amountIn.Value
		swapData, err := abi.EncodeSwapInAmountProvided(curPool, tokenFrom, tokenTo, amount, multicallerAddr, nil)
		if err != nil {
			return err
		}
		if inNative {
			ops.Add(multicaller.NewCall(tokenFrom, abiencoder.EncodeWethWithdraw(amount)))
			swapOpcode := multicaller.NewCallWithValue(poolAddress, swapData, amount)
			if bindReturn {
				swapOpcode.SetReturnStack(true, 0, 0x0, 0x20)
			}
			ops.Add(swapOpcode)
		} else {
			ops.Add(multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Approve(poolAddress, amount)))
			swapOpcode := multicaller.NewCall(poolAddress, swapData)
			if bindReturn {
				swapOpcode.SetReturnStack(true, 0, 0x0, 0x20)
			}
			ops.Add(swapOpcode)
		}

	case swapline.AmountStack0, swapline.AmountRelativeStack:
		relative := amountIn.Kind == swapline.AmountRelativeStack
		stackIndex := amountIn.Offset

		offset, ok := abi.SwapInAmountOffset(curPool, tokenFrom, tokenTo)
		if !ok {
			return entities.ErrMissingOffset
		}

		swapData, err := abi.EncodeSwapInAmountProvided(curPool, tokenFrom, tokenTo, big.NewInt(0), multicallerAddr, nil)
		if err != nil {
			return err
		}

		if inNative {
			withdrawOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeWethWithdraw(big.NewInt(0)))
			withdrawOpcode.SetCallStack(relative, stackIndex, 0x4, 0x20)

			swapOpcode := multicaller.NewCallWithValue(poolAddress, swapData, big.NewInt(0))
			swapOpcode.SetCallStack(relative, stackIndex, offset, 0x20)
			if bindReturn {
				swapOpcode.SetReturnStack(true, 0, 0x0, 0x20)
			}
			ops.Add(withdrawOpcode).Add(swapOpcode)
		} else {
			approveOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Approve(poolAddress, big.NewInt(0)))
			approveOpcode.SetCallStack(relative, stackIndex, 0x24, 0x20)

			swapOpcode := multicaller.NewCall(poolAddress, swapData)
			swapOpcode.SetCallStack(relative, stackIndex, offset, 0x20)
			if bindReturn {
				swapOpcode.SetReturnStack(true, 0, 0x0, 0x20)
			}
			ops.Add(approveOpcode).Add(swapOpcode)
		}

	case swapline.AmountBalance:
		balanceOpcode := multicaller.NewStaticCall(tokenFrom, abiencoder.EncodeERC20BalanceOf(amountIn.Address))
		balanceOpcode.SetReturnStack(true, 0, 0x0, 0x20)

		offset, ok := abi.SwapInAmountOffset(curPool, tokenFrom, tokenTo)
		if !ok {
			return entities.ErrMissingOffset
		}
		swapData, err := abi.EncodeSwapInAmountProvided(curPool, tokenFrom, tokenTo, big.NewInt(0), multicallerAddr, nil)
		if err != nil {
			return err
		}

		if inNative {
			withdrawOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeWethWithdraw(big.NewInt(0)))
			withdrawOpcode.SetCallStack(true, 0, 0x4, 0x20)

			swapOpcode := multicaller.NewCallWithValue(poolAddress, swapData, big.NewInt(0))
			swapOpcode.SetCallStack(true, 0, offset, 0x20)
			if bindReturn {
				swapOpcode.SetReturnStack(true, 0, 0x0, 0x20)
			}
			ops.Add(balanceOpcode).Add(withdrawOpcode).Add(swapOpcode)
		} else {
			approveOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Approve(poolAddress, big.NewInt(0)))
			approveOpcode.SetCallStack(true, 0, 0x24, 0x20)

			swapOpcode := multicaller.NewCall(poolAddress, swapData)
			swapOpcode.SetCallStack(true, 0, offset, 0x20)
			if bindReturn {
				swapOpcode.SetReturnStack(true, 0, 0x0, 0x20)
			}
			ops.Add(balanceOpcode).Add(approveOpcode).Add(swapOpcode)
		}

	default:
		return nil // NotSet amount: nothing to do, mirrors the source's warning-only branch.
	}

	if outNative {
		depositOpcode := multicaller.NewCallWithValue(tokenTo, abiencoder.EncodeWethDeposit(), big.NewInt(0))
		depositOpcode.SetCallStack(true, 0, 0x0, 0x0)
		ops.Add(depositOpcode)
	}

	if nextPool != nil {
		if needBalance != nil && needBalance(curPool) {
			balanceOpcode := multicaller.NewStaticCall(tokenTo, abiencoder.EncodeERC20BalanceOf(multicallerAddr))
			balanceOpcode.SetReturnStack(true, 0, 0x0, 0x20)
			ops.Add(balanceOpcode)
		}

		req := abi.PreswapRequirement(nextPool)
		if req.Kind == entities.PreswapTransfer {
			transferOpcode := multicaller.NewCall(tokenTo, abiencoder.EncodeERC20Transfer(req.TransferTo, big.NewInt(0)))
			transferOpcode.SetCallStack(true, 0, 0x24, 0x20)
			ops.Add(transferOpcode)
		}
	}

	return nil
}
