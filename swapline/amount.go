// Package swapline models a chain of pool hops (a swap line) and the
// stack-based amount bookkeeping the multicaller opcode compiler needs to
// wire one hop's output into the next hop's input.
package swapline

import "math/big"

// AmountKind tags how a hop's input or output amount is resolved at
// call time: a literal value, a value already sitting on the multicaller's
// opcode stack, a token balance read, or not yet decided.
type AmountKind uint8

const (
	// AmountNotSet means the amount has not been resolved yet.
	AmountNotSet AmountKind = iota
	// AmountSet carries a literal, known-in-advance value.
	AmountSet
	// AmountStack0 means "the value the previous opcode pushed onto the stack".
	AmountStack0
	// AmountRelativeStack means "the value pushed Offset opcodes ago".
	AmountRelativeStack
	// AmountBalance means "read this address's current token balance".
	AmountBalance
)

// SwapAmountType is a sum type over the ways a hop's amount can be known.
// Only the field matching Kind is meaningful.
type SwapAmountType struct {
	Kind    AmountKind
	Value   *big.Int       // valid when Kind == AmountSet
	Offset  uint32         // valid when Kind == AmountRelativeStack
	Address [20]byte       // valid when Kind == AmountBalance
}

// NotSetAmount returns an unresolved amount.
func NotSetAmount() SwapAmountType {
	return SwapAmountType{Kind: AmountNotSet}
}

// SetAmount returns a literal amount.
func SetAmount(v *big.Int) SwapAmountType {
	return SwapAmountType{Kind: AmountSet, Value: v}
}

// Stack0Amount returns "value on top of the stack".
func Stack0Amount() SwapAmountType {
	return SwapAmountType{Kind: AmountStack0}
}

// RelativeStackAmount returns "value pushed offset calls back".
func RelativeStackAmount(offset uint32) SwapAmountType {
	return SwapAmountType{Kind: AmountRelativeStack, Offset: offset}
}

// BalanceAmount returns "current balance held by address".
func BalanceAmount(address [20]byte) SwapAmountType {
	return SwapAmountType{Kind: AmountBalance, Address: address}
}

// IsSet reports whether the amount carries a literal value.
func (a SwapAmountType) IsSet() bool {
	return a.Kind == AmountSet
}

// IsNotSet reports whether the amount has not been resolved.
func (a SwapAmountType) IsNotSet() bool {
	return a.Kind == AmountNotSet
}

func (a SwapAmountType) String() string {
	switch a.Kind {
	case AmountSet:
		return "Set(" + a.Value.String() + ")"
	case AmountStack0:
		return "Stack0"
	case AmountRelativeStack:
		return "RelativeStack"
	case AmountBalance:
		return "Balance"
	default:
		return "NotSet"
	}
}
