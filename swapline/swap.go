package swapline

import (
	"math/big"
	"strings"

	"github.com/loomswap/arbcore/entities"
)

// SwapKind tags which variant of Swap is populated.
type SwapKind uint8

const (
	// SwapNone carries no executable swap.
	SwapNone SwapKind = iota
	// SwapExchangeLine is a plain, non-backrun exchange along one line.
	SwapExchangeLine
	// SwapBackrunLine is a single line meant to be lowered into two
	// multicaller-funded steps via ToSwapSteps.
	SwapBackrunLine
	// SwapBackrunSteps is already split into its two multicaller steps.
	SwapBackrunSteps
	// SwapMultiple bundles several swaps, e.g. for batched submission.
	SwapMultiple
)

// Swap is a sum type over the shapes an arbitrage opportunity can take by
// the time it reaches the encoder. Only the field(s) matching Kind are
// meaningful.
type Swap struct {
	Kind SwapKind

	Line  *SwapLine           // SwapExchangeLine, SwapBackrunLine
	Steps [2]*SwapStep        // SwapBackrunSteps
	Items []Swap              // SwapMultiple
}

// NoneSwap returns the empty variant.
func NoneSwap() Swap {
	return Swap{Kind: SwapNone}
}

// ExchangeSwap wraps a plain exchange line.
func ExchangeSwap(line *SwapLine) Swap {
	return Swap{Kind: SwapExchangeLine, Line: line}
}

// BackrunSwap wraps a single line awaiting the ToSwapSteps split.
func BackrunSwap(line *SwapLine) Swap {
	return Swap{Kind: SwapBackrunLine, Line: line}
}

// BackrunStepsSwap wraps an already-split two-step backrun.
func BackrunStepsSwap(first, second *SwapStep) Swap {
	return Swap{Kind: SwapBackrunSteps, Steps: [2]*SwapStep{first, second}}
}

// MultipleSwap bundles several swaps together.
func MultipleSwap(items []Swap) Swap {
	return Swap{Kind: SwapMultiple, Items: items}
}

func (s Swap) String() string {
	switch s.Kind {
	case SwapExchangeLine:
		return "Exchange(" + s.Line.String() + ")"
	case SwapBackrunLine:
		return "Backrun(" + s.Line.String() + ")"
	case SwapBackrunSteps:
		return "BackrunSteps(" + s.Steps[0].Line.String() + " | " + s.Steps[1].Line.String() + ")"
	case SwapMultiple:
		parts := make([]string, len(s.Items))
		for i, item := range s.Items {
			parts[i] = item.String()
		}
		return "Multiple(" + strings.Join(parts, ", ") + ")"
	default:
		return "None"
	}
}

// ToSwapSteps lowers a SwapBackrunLine into a SwapBackrunSteps pair funded
// by and settling to the multicaller contract. A SwapBackrunSteps value
// passes through unchanged; every other variant lowers to SwapNone.
//
// The split point is the first hop index where either sub-path can accept
// funds via a flash callback (so the multicaller never needs to pre-fund
// that leg); absent any flash-swappable pool, the line splits after its
// first hop.
func (s Swap) ToSwapSteps(multicaller entities.PoolId) Swap {
	switch s.Kind {
	case SwapBackrunSteps:
		return s
	case SwapBackrunLine:
		path := s.Line.SwapPath
		poolCount := path.PoolCount()
		if poolCount < 2 {
			return NoneSwap()
		}

		splitAt := 1
		for i := 1; i < poolCount; i++ {
			flashPath, insidePath := path.Split(i)
			if flashPath.CanFlashSwap() || insidePath.CanFlashSwap() {
				splitAt = i
				break
			}
		}

		flashPath, insidePath := path.Split(splitAt)
		flashLine := NewSwapLine(flashPath)
		flashLine.AmountIn = s.Line.AmountIn

		insideLine := NewSwapLine(insidePath)
		insideLine.AmountIn = BalanceAmount(multicallerAddressBytes(multicaller))

		return BackrunStepsSwap(NewSwapStep(flashLine), NewSwapStep(insideLine))
	default:
		return NoneSwap()
	}
}

func multicallerAddressBytes(id entities.PoolId) [20]byte {
	return id.Address()
}

// AbsProfit returns the realized profit of a single-line variant, or the sum
// of both steps' profits for a SwapBackrunSteps value; it returns nil when a
// needed line is unresolved or the variant carries no line.
func (s Swap) AbsProfit() *big.Int {
	switch s.Kind {
	case SwapExchangeLine, SwapBackrunLine:
		return s.Line.AbsProfit()
	case SwapBackrunSteps:
		out := s.Steps[1].Line.AbsProfit()
		in := s.Steps[0].Line.AbsProfit()
		if out == nil || in == nil {
			return nil
		}
		return new(big.Int).Add(out, in)
	default:
		return nil
	}
}

// PreEstimateGas sums the gas estimate across whatever lines this swap
// carries.
func (s Swap) PreEstimateGas() uint64 {
	switch s.Kind {
	case SwapExchangeLine, SwapBackrunLine:
		return s.Line.GasUsed
	case SwapBackrunSteps:
		return s.Steps[0].Line.GasUsed + s.Steps[1].Line.GasUsed
	case SwapMultiple:
		var total uint64
		for _, item := range s.Items {
			total += item.PreEstimateGas()
		}
		return total
	default:
		return 0
	}
}

// GetFirstToken returns the entry token of this swap's first line, if any.
func (s Swap) GetFirstToken() *entities.Token {
	switch s.Kind {
	case SwapExchangeLine, SwapBackrunLine:
		return s.Line.FirstToken()
	case SwapBackrunSteps:
		return s.Steps[0].Line.FirstToken()
	case SwapMultiple:
		if len(s.Items) == 0 {
			return nil
		}
		return s.Items[0].GetFirstToken()
	default:
		return nil
	}
}

// GetPoolAddressVec returns every pool id touched by this swap, in order.
func (s Swap) GetPoolAddressVec() []entities.PoolId {
	switch s.Kind {
	case SwapExchangeLine, SwapBackrunLine:
		return s.Line.PoolAddressVec()
	case SwapBackrunSteps:
		ids := append([]entities.PoolId{}, s.Steps[0].Line.PoolAddressVec()...)
		return append(ids, s.Steps[1].Line.PoolAddressVec()...)
	case SwapMultiple:
		var ids []entities.PoolId
		for _, item := range s.Items {
			ids = append(ids, item.GetPoolAddressVec()...)
		}
		return ids
	default:
		return nil
	}
}
