package swapline

import "math/big"

// SwapLine is a SwapPath annotated with the amount bookkeeping the opcode
// compiler needs: how the first hop's input is resolved, and the estimate
// of what the path returns and costs.
type SwapLine struct {
	*SwapPath

	AmountIn  SwapAmountType
	AmountOut SwapAmountType

	// CalculatedAmountOut is the simulated output, when known; nil if not
	// yet simulated.
	CalculatedAmountOut *big.Int
	// GasUsed is the estimated gas cost of executing this line, 0 if unknown.
	GasUsed uint64
}

// NewSwapLine wraps a path with unresolved amounts.
func NewSwapLine(path *SwapPath) *SwapLine {
	return &SwapLine{
		SwapPath:  path,
		AmountIn:  NotSetAmount(),
		AmountOut: NotSetAmount(),
	}
}

// AbsProfit returns CalculatedAmountOut minus AmountIn.Value, or nil if
// either side is unresolved.
func (l *SwapLine) AbsProfit() *big.Int {
	if l.CalculatedAmountOut == nil || !l.AmountIn.IsSet() {
		return nil
	}
	return new(big.Int).Sub(l.CalculatedAmountOut, l.AmountIn.Value)
}
