package abiencoder

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
)

const uniswapV2PoolABIJSON = `[
	{"name":"swap","type":"function","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"amount0Out","type":"uint256"},{"name":"amount1Out","type":"uint256"},
		{"name":"to","type":"address"},{"name":"data","type":"bytes"}],"outputs":[]}
]`

const uniswapV3PoolABIJSON = `[
	{"name":"swap","type":"function","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"recipient","type":"address"},{"name":"zeroForOne","type":"bool"},
		{"name":"amountSpecified","type":"int256"},{"name":"sqrtPriceLimitX96","type":"uint160"},
		{"name":"data","type":"bytes"}],"outputs":[]}
]`

const curvePoolABIJSON = `[
	{"name":"exchange","type":"function","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"i","type":"int128"},{"name":"j","type":"int128"},
		{"name":"dx","type":"uint256"},{"name":"minDy","type":"uint256"}],"outputs":[]}
]`

const lidoWstEthABIJSON = `[
	{"name":"wrap","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"stETHAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"unwrap","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"wstETHAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const lidoStEthABIJSON = `[
	{"name":"submit","type":"function","stateMutability":"payable",
	 "inputs":[{"name":"referral","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

var uniswapV2PoolABI, uniswapV3PoolABI, curvePoolABI, lidoWstEthABI, lidoStEthABI abi.ABI

func init() {
	for _, p := range []struct {
		json string
		dst  *abi.ABI
	}{
		{uniswapV2PoolABIJSON, &uniswapV2PoolABI},
		{uniswapV3PoolABIJSON, &uniswapV3PoolABI},
		{curvePoolABIJSON, &curvePoolABI},
		{lidoWstEthABIJSON, &lidoWstEthABI},
		{lidoStEthABIJSON, &lidoStEthABI},
	} {
		parsed, err := abi.JSON(strings.NewReader(p.json))
		if err != nil {
			panic(fmt.Sprintf("abiencoder: parse pool ABI: %v", err))
		}
		*p.dst = parsed
	}
}

// addressLess orders two addresses the way a UniswapV2 pair's constructor
// does when it assigns token0/token1 (lexicographic on the raw bytes).
func addressLess(a, b common.Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// ProtocolABIEncoderV2 packs per-PoolClass swap call-data and reports the
// call-data offset of the amount parameter later hops splice stack values
// into, dispatching on the pool's PoolClass rather than a concrete type.
type ProtocolABIEncoderV2 struct{}

// NewProtocolABIEncoderV2 builds the default ABI encoder.
func NewProtocolABIEncoderV2() *ProtocolABIEncoderV2 {
	return &ProtocolABIEncoderV2{}
}

// PreswapRequirement reports how pool expects its input tokens delivered.
func (e *ProtocolABIEncoderV2) PreswapRequirement(pool entities.Pool) entities.PreswapRequirement {
	return pool.PreswapRequirement()
}

// IsNative reports whether pool trades directly in the native asset (so a
// wrap/unwrap step brackets the swap call).
func (e *ProtocolABIEncoderV2) IsNative(pool entities.Pool) bool {
	return pool.IsNative()
}

// EncodeSwapInAmountProvided packs the call-data for a hop whose input
// amount is known (a literal, or to be spliced in later via a stack
// binding at the offset SwapInAmountOffset reports).
func (e *ProtocolABIEncoderV2) EncodeSwapInAmountProvided(
	pool entities.Pool,
	tokenFrom, tokenTo common.Address,
	amount *big.Int,
	recipient common.Address,
	payload []byte,
) ([]byte, error) {
	switch pool.GetClass() {
	case entities.PoolClassUniswapV2:
		amount0Out, amount1Out := uniswapV2OutAmounts(tokenFrom, tokenTo, amount)
		return uniswapV2PoolABI.Pack("swap", amount0Out, amount1Out, recipient, payload)
	case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
		zeroForOne := addressLess(tokenFrom, tokenTo)
		return uniswapV3PoolABI.Pack("swap", recipient, zeroForOne, amount, maxSqrtPriceLimit(zeroForOne), payload)
	case entities.PoolClassCurve:
		i, j := curveIndices(tokenFrom, tokenTo)
		return curvePoolABI.Pack("exchange", i, j, amount, big.NewInt(0))
	case entities.PoolClassLidoWstEth:
		return lidoWstEthABI.Pack("wrap", amount)
	case entities.PoolClassLidoStEth:
		return lidoStEthABI.Pack("submit", common.Address{})
	default:
		return nil, fmt.Errorf("abiencoder: swap in-amount: %w: %s", entities.ErrUnsupportedPoolClass, pool.GetClass())
	}
}

// EncodeSwapOutAmountProvided packs the call-data for a flash hop whose
// output amount is known in advance (used only by the flash-eligible
// classes: UniswapV2, UniswapV3, Maverick, PancakeV3).
func (e *ProtocolABIEncoderV2) EncodeSwapOutAmountProvided(
	pool entities.Pool,
	tokenFrom, tokenTo common.Address,
	amount *big.Int,
	recipient common.Address,
	payload []byte,
) ([]byte, error) {
	switch pool.GetClass() {
	case entities.PoolClassUniswapV2:
		amount0Out, amount1Out := uniswapV2OutAmounts(tokenFrom, tokenTo, amount)
		return uniswapV2PoolABI.Pack("swap", amount0Out, amount1Out, recipient, payload)
	case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
		zeroForOne := addressLess(tokenFrom, tokenTo)
		negated := new(big.Int).Neg(amount)
		return uniswapV3PoolABI.Pack("swap", recipient, zeroForOne, negated, maxSqrtPriceLimit(zeroForOne), payload)
	default:
		return nil, fmt.Errorf("abiencoder: swap out-amount: %w: %s", entities.ErrUnsupportedPoolClass, pool.GetClass())
	}
}

// SwapInAmountOffset reports the call-data byte offset of the parameter a
// later stack binding should splice an input amount into, or false if the
// pool's class carries no such slot (the amount is fixed by the ABI shape
// instead, e.g. Lido's native submit).
func (e *ProtocolABIEncoderV2) SwapInAmountOffset(pool entities.Pool, tokenFrom, tokenTo common.Address) (uint32, bool) {
	switch pool.GetClass() {
	case entities.PoolClassUniswapV2:
		return uniswapV2OutAmountOffset(tokenFrom, tokenTo), true
	case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
		return 0x44, true // selector(4) + recipient(32) + zeroForOne(32)
	case entities.PoolClassCurve:
		return 0x44, true // selector(4) + i(32) + j(32)
	case entities.PoolClassLidoWstEth:
		return 0x04, true // selector(4)
	default:
		return 0, false
	}
}

// SwapOutAmountOffset mirrors SwapInAmountOffset for the flash-loan
// out-amount encoding path; only defined for flash-eligible classes.
func (e *ProtocolABIEncoderV2) SwapOutAmountOffset(pool entities.Pool, tokenFrom, tokenTo common.Address) (uint32, bool) {
	switch pool.GetClass() {
	case entities.PoolClassUniswapV2:
		return uniswapV2OutAmountOffset(tokenFrom, tokenTo), true
	case entities.PoolClassUniswapV3, entities.PoolClassMaverick, entities.PoolClassPancakeV3:
		return 0x44, true
	default:
		return 0, false
	}
}

func uniswapV2OutAmounts(tokenFrom, tokenTo common.Address, amount *big.Int) (*big.Int, *big.Int) {
	if addressLess(tokenFrom, tokenTo) {
		// tokenFrom is token0, so the output leg is token1 -> amount1Out.
		return big.NewInt(0), amount
	}
	return amount, big.NewInt(0)
}

func uniswapV2OutAmountOffset(tokenFrom, tokenTo common.Address) uint32 {
	if addressLess(tokenFrom, tokenTo) {
		return 0x24 // selector(4) + amount0Out(32)
	}
	return 0x04 // selector(4)
}

// curveIndices is a placeholder mapping until a concrete registry/coins
// index is wired; it always targets the pool's first two coins. Real Curve
// pools need a coins-index lookup the loader does not yet populate.
func curveIndices(tokenFrom, tokenTo common.Address) (*big.Int, *big.Int) {
	_, _ = tokenFrom, tokenTo
	return big.NewInt(0), big.NewInt(1)
}

// maxSqrtPriceLimit returns the conventional "no limit" sqrtPriceLimitX96
// bound for a UniswapV3-style exact-input/output swap in the given direction.
func maxSqrtPriceLimit(zeroForOne bool) *big.Int {
	minSqrtRatio := new(big.Int).SetUint64(4295128739)
	maxSqrtRatio, _ := new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)
	if zeroForOne {
		return new(big.Int).Add(minSqrtRatio, big.NewInt(1))
	}
	return new(big.Int).Sub(maxSqrtRatio, big.NewInt(1))
}
