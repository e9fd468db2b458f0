package swapline

// SwapStep is one leg of a flash-loan-backed backrun: a swap line whose
// funds originate from, or are delivered to, the multicaller contract
// itself rather than from the preceding/following hop in a single path.
type SwapStep struct {
	Line *SwapLine
}

// NewSwapStep wraps a line as a step funded by/delivered to multicaller.
// Callers set Line.AmountIn to Balance(multicaller) themselves when that
// step's input must be read off the multicaller's own token balance.
func NewSwapStep(line *SwapLine) *SwapStep {
	return &SwapStep{Line: line}
}
