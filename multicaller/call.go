// Package multicaller implements the stack-machine opcode intermediate
// representation the swap-line compiler targets: a sequence of calls the
// multicaller contract replays in order, optionally splicing a prior call's
// return value into a later call's call-data (call-stack binding) or
// pushing a call's return value onto the opcode stack for a later splice
// (return-stack binding).
package multicaller

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallKind tags how the multicaller should dispatch a single opcode.
type CallKind uint8

const (
	// CallKindCall is a plain value-less external call.
	CallKindCall CallKind = iota
	// CallKindCallWithValue carries ETH value along with the call.
	CallKindCallWithValue
	// CallKindStaticCall is a read-only external call (e.g. balanceOf).
	CallKindStaticCall
	// CallKindInternalCall invokes one of the multicaller's own helper
	// functions instead of an external contract.
	CallKindInternalCall
	// CallKindCalculationCall pushes a literal calculation opcode onto the
	// multicaller's internal stack machine, touching no contract at all.
	CallKindCalculationCall
)

// MulticallerCall is one opcode in a compiled swap line: a call plus the
// stack splice bindings that wire it to its neighbors.
type MulticallerCall struct {
	Kind     CallKind
	Target   common.Address
	Value    *big.Int
	CallData []byte

	HasCallStack        bool
	CallStackRelative    bool
	CallStackIndex       uint32
	CallStackDataOffset  uint32
	CallStackDataLength  uint32

	HasReturnStack       bool
	ReturnStackRelative  bool
	ReturnStackIndex     uint32
	ReturnStackDataOffset uint32
	ReturnStackDataLength uint32
}

func (k CallKind) String() string {
	switch k {
	case CallKindCall:
		return "Call"
	case CallKindCallWithValue:
		return "CallWithValue"
	case CallKindStaticCall:
		return "StaticCall"
	case CallKindInternalCall:
		return "InternalCall"
	case CallKindCalculationCall:
		return "CalculationCall"
	default:
		return "Unknown"
	}
}

// NewCall builds a plain external call.
func NewCall(target common.Address, data []byte) *MulticallerCall {
	return &MulticallerCall{Kind: CallKindCall, Target: target, CallData: data}
}

// NewCallWithValue builds an external call carrying ETH value.
func NewCallWithValue(target common.Address, data []byte, value *big.Int) *MulticallerCall {
	return &MulticallerCall{Kind: CallKindCallWithValue, Target: target, CallData: data, Value: value}
}

// NewStaticCall builds a read-only external call.
func NewStaticCall(target common.Address, data []byte) *MulticallerCall {
	return &MulticallerCall{Kind: CallKindStaticCall, Target: target, CallData: data}
}

// NewInternalCall builds a call into one of the multicaller's own helpers.
func NewInternalCall(data []byte) *MulticallerCall {
	return &MulticallerCall{Kind: CallKindInternalCall, CallData: data}
}

// NewCalculationCall builds a literal stack-machine opcode with no call target.
func NewCalculationCall(data []byte) *MulticallerCall {
	return &MulticallerCall{Kind: CallKindCalculationCall, CallData: data}
}

// SetCallStack marks this call's call-data as needing a stack word spliced
// in at dataOffset, length bytes wide, taken from stack slot index —
// relative to the call immediately before this one if relative is true,
// or an absolute slot in the opcode stream if false.
func (c *MulticallerCall) SetCallStack(relative bool, index, dataOffset, dataLength uint32) *MulticallerCall {
	c.HasCallStack = true
	c.CallStackRelative = relative
	c.CallStackIndex = index
	c.CallStackDataOffset = dataOffset
	c.CallStackDataLength = dataLength
	return c
}

// SetReturnStack marks this call's return data as needing to be pushed onto
// the opcode stack, at slot index, reading length bytes starting at
// dataOffset of the raw return buffer.
func (c *MulticallerCall) SetReturnStack(relative bool, index, dataOffset, dataLength uint32) *MulticallerCall {
	c.HasReturnStack = true
	c.ReturnStackRelative = relative
	c.ReturnStackIndex = index
	c.ReturnStackDataOffset = dataOffset
	c.ReturnStackDataLength = dataLength
	return c
}
