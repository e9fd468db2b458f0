// Package swaplineencoder compiles a SwapLine into the multicaller opcode
// sequence that actually executes it on-chain, dispatching each hop to the
// opcode encoder its PoolClass is registered against.
package swaplineencoder

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/abiencoder"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/multicaller"
	"github.com/loomswap/arbcore/opcodes"
	"github.com/loomswap/arbcore/swapline"
)

// flashEligible is the set of classes the flash-loan encoders know how to
// wrap a callback around; every other class can only be traded non-flash.
var flashEligible = map[entities.PoolClass]bool{
	entities.PoolClassUniswapV2: true,
	entities.PoolClassUniswapV3: true,
	entities.PoolClassMaverick:  true,
	entities.PoolClassPancakeV3: true,
}

// SwapLineEncoder compiles SwapLines into multicaller opcode sequences.
type SwapLineEncoder struct {
	MulticallerAddress common.Address
	ABI                opcodes.ABIEncoder
	Opcodes            *opcodes.Registry
}

// NewSwapLineEncoder builds an encoder from explicit collaborators.
func NewSwapLineEncoder(multicallerAddress common.Address, abi opcodes.ABIEncoder, registry *opcodes.Registry) *SwapLineEncoder {
	return &SwapLineEncoder{MulticallerAddress: multicallerAddress, ABI: abi, Opcodes: registry}
}

// DefaultSwapLineEncoder builds an encoder with the default ABI/opcode
// stack (ProtocolABIEncoderV2 and the standard PoolClass registry).
func DefaultSwapLineEncoder(multicallerAddress common.Address) *SwapLineEncoder {
	return NewSwapLineEncoder(multicallerAddress, abiencoder.NewProtocolABIEncoderV2(), opcodes.NewRegistry())
}

func (e *SwapLineEncoder) encoderFor(class entities.PoolClass) (opcodes.SwapOpcodesEncoder, error) {
	enc, ok := e.Opcodes.For(class)
	if !ok {
		return nil, fmt.Errorf("swaplineencoder: %w: %s", entities.ErrUnsupportedPoolClass, class)
	}
	return enc, nil
}

// EncodeSwapLineInAmount compiles a non-flash swap line hop by hop, given
// where its funds start (fundsFrom). fundsFrom only matters for a first-hop
// push-transfer. Every hop's swap call targets the multicaller itself as
// recipient; fundsTo is accepted but not used, so the final output stays
// with the multicaller and no opcode moves it to fundsTo.
func (e *SwapLineEncoder) EncodeSwapLineInAmount(line *swapline.SwapLine, fundsFrom, fundsTo common.Address) (*multicaller.MulticallerCalls, error) {
	swapOpcodes := multicaller.NewCalls()

	for i := 0; i < line.PoolCount(); i++ {
		tokenFrom := line.Tokens[i].Address
		tokenTo := line.Tokens[i+1].Address
		curPool := line.Pools[i].Unwrap()

		var nextPool entities.Pool
		if i < line.PoolCount()-1 {
			nextPool = line.Pools[i+1].Unwrap()
		}

		amountIn, err := e.resolveFirstHopAmount(swapOpcodes, i, tokenFrom, curPool, fundsFrom, line.AmountIn)
		if err != nil {
			return nil, err
		}

		enc, err := e.encoderFor(curPool.GetClass())
		if err != nil {
			return nil, err
		}
		if err := enc.EncodeSwapInAmountProvided(swapOpcodes, e.ABI, tokenFrom, tokenTo, amountIn, curPool, nextPool, e.MulticallerAddress); err != nil {
			return nil, err
		}
	}

	_ = fundsTo // not used: the output is left with the multicaller
	return swapOpcodes, nil
}

// resolveFirstHopAmount implements the i==0 special case: if the first
// pool expects its funds pushed to an address other than fundsFrom, emit
// the opcodes that get the funds there and return the amount type the
// swap call itself should now be compiled against.
func (e *SwapLineEncoder) resolveFirstHopAmount(
	swapOpcodes *multicaller.MulticallerCalls,
	hopIndex int,
	tokenFrom common.Address,
	curPool entities.Pool,
	fundsFrom common.Address,
	lineAmountIn swapline.SwapAmountType,
) (swapline.SwapAmountType, error) {
	if hopIndex != 0 {
		return swapline.RelativeStackAmount(0), nil
	}

	req := e.ABI.PreswapRequirement(curPool)
	if req.Kind != entities.PreswapTransfer || req.TransferTo == fundsFrom {
		return lineAmountIn, nil
	}

	switch lineAmountIn.Kind {
	case swapline.AmountSet:
		swapOpcodes.Add(multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(req.TransferTo, lineAmountIn.Value)))
		return lineAmountIn, nil
	case swapline.AmountBalance:
		balanceOpcode := multicaller.NewStaticCall(tokenFrom, abiencoder.EncodeERC20BalanceOf(lineAmountIn.Address))
		balanceOpcode.SetReturnStack(true, 0, 0x0, 0x20)
		swapOpcodes.Add(balanceOpcode)

		transferOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(req.TransferTo, big.NewInt(0)))
		transferOpcode.SetCallStack(true, 0, 0x24, 0x20)
		swapOpcodes.Add(transferOpcode)
		return swapline.RelativeStackAmount(0), nil
	default:
		transferOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(req.TransferTo, big.NewInt(0)))
		transferOpcode.SetCallStack(false, 0, 0x24, 0x20)
		swapOpcodes.Add(transferOpcode)
		return lineAmountIn, nil
	}
}

// EncodeFlashSwapLineInAmount wraps a SwapLine's pools, traversed in
// reverse, around an already-compiled inside body: each flash pool's
// callback data becomes the previous iteration's whole opcode sequence,
// packed, so the outermost call triggers the entire chain of callbacks.
func (e *SwapLineEncoder) EncodeFlashSwapLineInAmount(line *swapline.SwapLine, insideSwapOpcodes *multicaller.MulticallerCalls, fundsTo common.Address) (*multicaller.MulticallerCalls, error) {
	insideOpcodes := insideSwapOpcodes.Clone()

	poolCount := line.PoolCount()
	reversePools := make([]entities.Pool, poolCount)
	reverseTokens := make([]common.Address, poolCount+1)
	for i := 0; i < poolCount; i++ {
		reversePools[i] = line.Pools[poolCount-1-i].Unwrap()
	}
	for i := 0; i < poolCount+1; i++ {
		reverseTokens[i] = line.Tokens[poolCount-i].Address
	}

	var flashSwapOpcodes *multicaller.MulticallerCalls
	var prevPool entities.Pool

	for poolIdx, flashPool := range reversePools {
		if !flashEligible[flashPool.GetClass()] {
			return nil, fmt.Errorf("swaplineencoder: flash in-amount: %w: %s", entities.ErrUnsupportedPoolClass, flashPool.GetClass())
		}

		tokenFrom := reverseTokens[poolIdx+1]
		tokenTo := reverseTokens[poolIdx]

		amountIn := swapline.Stack0Amount()
		if poolIdx == poolCount-1 {
			amountIn = line.AmountIn
		}

		swapTo := fundsTo
		if prevPool != nil {
			req := e.ABI.PreswapRequirement(prevPool)
			switch {
			case flashPool.GetClass() == entities.PoolClassUniswapV2 && req.Kind == entities.PreswapTransfer:
				transferOpcode := multicaller.NewCall(tokenTo, abiencoder.EncodeERC20Transfer(req.TransferTo, big.NewInt(0)))
				transferOpcode.SetCallStack(false, 0, 0x24, 0x20)
				insideOpcodes.Insert(transferOpcode)
				swapTo = req.TransferTo
			case flashPool.GetClass() == entities.PoolClassUniswapV2:
				swapTo = e.MulticallerAddress
			case req.Kind == entities.PreswapTransfer:
				swapTo = req.TransferTo
			default:
				swapTo = e.MulticallerAddress
			}
		}

		switch flashPool.GetClass() {
		case entities.PoolClassUniswapV2:
			if amountIn.Kind == swapline.AmountSet {
				insideOpcodes.Add(multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(flashPool.GetAddress(), amountIn.Value)))
			}
			if poolIdx == 0 && fundsTo != e.MulticallerAddress {
				transferOpcode := multicaller.NewCall(tokenTo, abiencoder.EncodeERC20Transfer(fundsTo, big.NewInt(0)))
				transferOpcode.SetCallStack(false, 0, 0x24, 0x20)
				insideOpcodes.Insert(transferOpcode)
			}
		case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
			var transferOpcode *multicaller.MulticallerCall
			if amountIn.Kind == swapline.AmountSet {
				transferOpcode = multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(flashPool.GetAddress(), amountIn.Value))
			} else {
				transferOpcode = multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(flashPool.GetAddress(), big.NewInt(0)))
				transferOpcode.SetCallStack(false, 1, 0x24, 0x20)
			}
			insideOpcodes.Add(transferOpcode)
		}

		insideCallBytes, err := multicaller.PackDoCallsData(insideOpcodes)
		if err != nil {
			return nil, err
		}
		flashSwapOpcodes = multicaller.NewCalls()

		switch flashPool.GetClass() {
		case entities.PoolClassUniswapV2:
			var getOutAmountOpcode *multicaller.MulticallerCall
			if amountIn.Kind == swapline.AmountSet {
				getOutAmountOpcode = multicaller.NewInternalCall(abiencoder.EncodeUni2GetOutAmount(tokenFrom, tokenTo, flashPool.GetAddress(), amountIn.Value, flashPool.GetFee()))
			} else {
				getOutAmountOpcode = multicaller.NewInternalCall(abiencoder.EncodeUni2GetOutAmount(tokenFrom, tokenTo, flashPool.GetAddress(), big.NewInt(0), flashPool.GetFee()))
				getOutAmountOpcode.SetCallStack(false, 0, 0x64, 0x20) // selector(4) + tokenFrom, tokenTo, pool (3*32)
			}

			swapData, err := e.ABI.EncodeSwapOutAmountProvided(flashPool, tokenFrom, tokenTo, big.NewInt(0), e.MulticallerAddress, insideCallBytes)
			if err != nil {
				return nil, err
			}
			offset, ok := e.ABI.SwapOutAmountOffset(flashPool, tokenFrom, tokenTo)
			if !ok {
				return nil, entities.ErrMissingOffset
			}
			swapOpcode := multicaller.NewCall(flashPool.GetAddress(), swapData)
			swapOpcode.SetCallStack(true, 0, offset, 0x20)

			flashSwapOpcodes.Add(getOutAmountOpcode).Add(swapOpcode)
			prevPool = flashPool
			insideOpcodes = flashSwapOpcodes.Clone()

		case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
			var swapOpcode *multicaller.MulticallerCall
			if amountIn.Kind == swapline.AmountSet {
				swapData, err := e.ABI.EncodeSwapInAmountProvided(flashPool, tokenFrom, tokenTo, amountIn.Value, swapTo, insideCallBytes)
				if err != nil {
					return nil, err
				}
				swapOpcode = multicaller.NewCall(flashPool.GetAddress(), swapData)
			} else {
				swapData, err := e.ABI.EncodeSwapInAmountProvided(flashPool, tokenFrom, tokenTo, big.NewInt(0), swapTo, insideCallBytes)
				if err != nil {
					return nil, err
				}
				offset, ok := e.ABI.SwapInAmountOffset(flashPool, tokenFrom, tokenTo)
				if !ok {
					return nil, entities.ErrMissingOffset
				}
				swapOpcode = multicaller.NewCall(flashPool.GetAddress(), swapData)
				swapOpcode.SetCallStack(false, 0, offset, 0x20)
			}

			flashSwapOpcodes.Add(swapOpcode)
			prevPool = flashPool
			insideOpcodes = flashSwapOpcodes.Clone()
		}
	}

	return flashSwapOpcodes, nil
}

// EncodeFlashSwapLineOutAmount is the out-amount-provided symmetric
// counterpart: it traverses the line forward, propagating a known output
// back through each flash pool's get-in-amount helper.
func (e *SwapLineEncoder) EncodeFlashSwapLineOutAmount(line *swapline.SwapLine, insideSwapOpcodes *multicaller.MulticallerCalls, fundsFrom common.Address) (*multicaller.MulticallerCalls, error) {
	_ = fundsFrom
	insideOpcodes := insideSwapOpcodes.Clone()

	poolCount := line.PoolCount()
	var flashSwapOpcodes *multicaller.MulticallerCalls

	for poolIdx := 0; poolIdx < poolCount; poolIdx++ {
		flashPool := line.Pools[poolIdx].Unwrap()
		if !flashEligible[flashPool.GetClass()] {
			return nil, fmt.Errorf("swaplineencoder: flash out-amount: %w: %s", entities.ErrUnsupportedPoolClass, flashPool.GetClass())
		}

		tokenFrom := line.Tokens[poolIdx].Address
		tokenTo := line.Tokens[poolIdx+1].Address

		var nextPool entities.Pool
		if poolIdx < poolCount-1 {
			nextPool = line.Pools[poolIdx+1].Unwrap()
		}

		amountOut := swapline.Stack0Amount()
		if poolIdx == poolCount-1 {
			amountOut = line.AmountOut
		}

		swapTo := e.MulticallerAddress
		if nextPool != nil {
			swapTo = nextPool.GetAddress()
		}

		amountOutValue := big.NewInt(0)
		if amountOut.Kind == swapline.AmountSet {
			amountOutValue = amountOut.Value
		}

		switch flashPool.GetClass() {
		case entities.PoolClassUniswapV2:
			getInAmountOpcode := multicaller.NewInternalCall(abiencoder.EncodeUni2GetInAmount(tokenFrom, tokenTo, flashPool.GetAddress(), amountOutValue, flashPool.GetFee()))
			if amountOut.Kind != swapline.AmountSet {
				getInAmountOpcode.SetCallStack(false, 0, 0x64, 0x20) // selector(4) + tokenFrom, tokenTo, pool (3*32)
			}
			insideOpcodes.Insert(getInAmountOpcode)

			if poolIdx == 0 && swapTo != flashPool.GetAddress() {
				transferOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(flashPool.GetAddress(), big.NewInt(0)))
				transferOpcode.SetCallStack(false, 1, 0x24, 0x20)
				insideOpcodes.Add(transferOpcode)
			}

			if swapTo != e.MulticallerAddress {
				transferOpcode := multicaller.NewCall(tokenTo, abiencoder.EncodeERC20Transfer(swapTo, big.NewInt(0)))
				transferOpcode.SetCallStack(false, 0, 0x24, 0x20)
				insideOpcodes.Add(transferOpcode)
			}

		case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
			if poolIdx == 0 {
				transferOpcode := multicaller.NewCall(tokenFrom, abiencoder.EncodeERC20Transfer(flashPool.GetAddress(), big.NewInt(0)))
				transferOpcode.SetCallStack(false, 1, 0x24, 0x20)
				insideOpcodes.Add(transferOpcode)
			}
		}

		insideCallBytes, err := multicaller.PackDoCallsData(insideOpcodes)
		if err != nil {
			return nil, err
		}
		flashSwapOpcodes = multicaller.NewCalls()

		switch flashPool.GetClass() {
		case entities.PoolClassUniswapV2:
			swapData, err := e.ABI.EncodeSwapOutAmountProvided(flashPool, tokenFrom, tokenTo, amountOutValue, e.MulticallerAddress, insideCallBytes)
			if err != nil {
				return nil, err
			}
			swapOpcode := multicaller.NewCall(flashPool.GetAddress(), swapData)
			if amountOut.Kind != swapline.AmountSet {
				offset, ok := e.ABI.SwapOutAmountOffset(flashPool, tokenFrom, tokenTo)
				if !ok {
					return nil, entities.ErrMissingOffset
				}
				swapOpcode.SetCallStack(true, 0, offset, 0x20)
			}
			flashSwapOpcodes.Add(swapOpcode)
			insideOpcodes = flashSwapOpcodes.Clone()

		case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
			var swapOpcode *multicaller.MulticallerCall
			if amountOut.Kind == swapline.AmountSet {
				swapData, err := e.ABI.EncodeSwapOutAmountProvided(flashPool, tokenFrom, tokenTo, amountOut.Value, swapTo, insideCallBytes)
				if err != nil {
					return nil, err
				}
				swapOpcode = multicaller.NewCall(flashPool.GetAddress(), swapData)
			} else {
				flashSwapOpcodes.Add(multicaller.NewCalculationCall([]byte{0x8, 0x2A, 0x00}))
				swapData, err := e.ABI.EncodeSwapOutAmountProvided(flashPool, tokenFrom, tokenTo, big.NewInt(0), swapTo, insideCallBytes)
				if err != nil {
					return nil, err
				}
				offset, ok := e.ABI.SwapOutAmountOffset(flashPool, tokenFrom, tokenTo)
				if !ok {
					return nil, entities.ErrMissingOffset
				}
				swapOpcode = multicaller.NewCall(flashPool.GetAddress(), swapData)
				swapOpcode.SetCallStack(true, 0, offset, 0x20)
			}
			flashSwapOpcodes.Add(swapOpcode)
			insideOpcodes = flashSwapOpcodes.Clone()
		}
	}

	return flashSwapOpcodes, nil
}

// EncodeFlashSwapDydx is a placeholder: the source never implements dYdX
// flash encoding either, and nothing in this pack's retrieval supplies the
// SoloMargin callback shape to port.
func (e *SwapLineEncoder) EncodeFlashSwapDydx(_ *multicaller.MulticallerCalls, _ common.Address) (*multicaller.MulticallerCalls, error) {
	return nil, entities.ErrNotImplemented
}

// EncodeTips appends the multicaller's tip-payout helper call to the end
// of an already-compiled opcode sequence, without mutating the caller's copy.
func (e *SwapLineEncoder) EncodeTips(swapOpcodes *multicaller.MulticallerCalls, tokenAddress common.Address, minBalance, tips *big.Int, to common.Address) (*multicaller.MulticallerCalls, error) {
	tipsOpcodes := swapOpcodes.Clone()

	var callData []byte
	if abiencoder.IsWeth(tokenAddress) {
		callData = abiencoder.EncodeTransferTipsWeth(minBalance, tips, to)
	} else {
		callData = abiencoder.EncodeTransferTips(tokenAddress, minBalance, tips, to)
	}
	tipsOpcodes.Add(multicaller.NewInternalCall(callData))
	return tipsOpcodes, nil
}
