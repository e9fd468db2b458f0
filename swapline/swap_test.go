package swapline

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func tok(a common.Address) *entities.Token {
	return entities.NewToken(a)
}

func TestToSwapStepsSplitsAtFirstHopWithNoFlashPool(t *testing.T) {
	weth := addr(1)
	usdc := addr(2)
	dai := addr(3)

	poolA := entities.NewMockPool(addr(10), entities.PoolClassUniswapV2, weth, usdc)
	poolB := entities.NewMockPool(addr(11), entities.PoolClassUniswapV2, usdc, dai)
	poolC := entities.NewMockPool(addr(12), entities.PoolClassUniswapV2, dai, weth)

	path := NewSwapPath(
		[]*entities.Token{tok(weth), tok(usdc), tok(dai), tok(weth)},
		[]entities.PoolWrapper{
			entities.NewPoolWrapper(poolA),
			entities.NewPoolWrapper(poolB),
			entities.NewPoolWrapper(poolC),
		},
	)
	line := NewSwapLine(path)
	line.AmountIn = SetAmount(big.NewInt(1_000_000))

	swap := BackrunSwap(line)
	multicaller := entities.NewPoolIdAddress(addr(99))

	stepped := swap.ToSwapSteps(multicaller)
	require.Equal(t, SwapBackrunSteps, stepped.Kind)

	first, second := stepped.Steps[0], stepped.Steps[1]
	assert.Equal(t, 1, first.Line.PoolCount())
	assert.Equal(t, 2, second.Line.PoolCount())
	assert.True(t, first.Line.AmountIn.IsSet())
	assert.Equal(t, AmountBalance, second.Line.AmountIn.Kind)
	assert.Equal(t, multicaller.Address(), second.Line.AmountIn.Address)
}

func TestToSwapStepsSplitsAtFlashSwappablePool(t *testing.T) {
	weth := addr(1)
	usdc := addr(2)
	dai := addr(3)

	poolA := entities.NewMockPool(addr(10), entities.PoolClassUniswapV2, weth, usdc)
	poolB := entities.NewMockPool(addr(11), entities.PoolClassUniswapV3, usdc, dai)
	poolB.Preswap = entities.PreswapRequirement{Kind: entities.PreswapCallback}
	poolC := entities.NewMockPool(addr(12), entities.PoolClassUniswapV2, dai, weth)

	path := NewSwapPath(
		[]*entities.Token{tok(weth), tok(usdc), tok(dai), tok(weth)},
		[]entities.PoolWrapper{
			entities.NewPoolWrapper(poolA),
			entities.NewPoolWrapper(poolB),
			entities.NewPoolWrapper(poolC),
		},
	)
	line := NewSwapLine(path)
	line.AmountIn = SetAmount(big.NewInt(500))

	swap := BackrunSwap(line)
	multicaller := entities.NewPoolIdAddress(addr(99))

	stepped := swap.ToSwapSteps(multicaller)
	require.Equal(t, SwapBackrunSteps, stepped.Kind)

	// Split must land at index 1, where pool B (the flash-swappable hop)
	// becomes the second sub-path's first pool.
	assert.Equal(t, 1, stepped.Steps[0].Line.PoolCount())
	assert.Equal(t, 2, stepped.Steps[1].Line.PoolCount())
	assert.Equal(t, poolB.GetPoolId(), stepped.Steps[1].Line.Pools[0].GetPoolId())
}

func TestToSwapStepsPassesThroughAlreadySplit(t *testing.T) {
	line1 := NewSwapLine(NewSwapPath(nil, nil))
	line2 := NewSwapLine(NewSwapPath(nil, nil))
	swap := BackrunStepsSwap(NewSwapStep(line1), NewSwapStep(line2))

	out := swap.ToSwapSteps(entities.NewPoolIdAddress(addr(99)))
	assert.Equal(t, swap, out)
}

func TestToSwapStepsOtherVariantsLowerToNone(t *testing.T) {
	line := NewSwapLine(NewSwapPath(nil, nil))
	multicaller := entities.NewPoolIdAddress(addr(99))

	assert.Equal(t, SwapNone, ExchangeSwap(line).ToSwapSteps(multicaller).Kind)
	assert.Equal(t, SwapNone, NoneSwap().ToSwapSteps(multicaller).Kind)
	assert.Equal(t, SwapNone, MultipleSwap(nil).ToSwapSteps(multicaller).Kind)
}

func TestAbsProfitAndGasAggregateAcrossSteps(t *testing.T) {
	weth := addr(1)
	usdc := addr(2)
	path1 := NewSwapPath([]*entities.Token{tok(weth), tok(usdc)}, []entities.PoolWrapper{
		entities.NewPoolWrapper(entities.NewMockPool(addr(10), entities.PoolClassUniswapV2, weth, usdc)),
	})
	path2 := NewSwapPath([]*entities.Token{tok(usdc), tok(weth)}, []entities.PoolWrapper{
		entities.NewPoolWrapper(entities.NewMockPool(addr(11), entities.PoolClassUniswapV2, usdc, weth)),
	})
	line1 := NewSwapLine(path1)
	line1.AmountIn = SetAmount(big.NewInt(100))
	line1.CalculatedAmountOut = big.NewInt(150)
	line1.GasUsed = 21000

	line2 := NewSwapLine(path2)
	line2.AmountIn = SetAmount(big.NewInt(150))
	line2.CalculatedAmountOut = big.NewInt(120)
	line2.GasUsed = 21000

	swap := BackrunStepsSwap(NewSwapStep(line1), NewSwapStep(line2))
	assert.Equal(t, big.NewInt(20), swap.AbsProfit())
	assert.Equal(t, uint64(42000), swap.PreEstimateGas())
}
