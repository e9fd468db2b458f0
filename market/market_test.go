package market

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/swapline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randAddr(seed byte) common.Address {
	var a common.Address
	a[0] = seed
	a[19] = seed
	a[10] = seed / 2
	return a
}

func mockWrapper(address, token0, token1 common.Address) entities.PoolWrapper {
	return entities.NewPoolWrapper(entities.NewMockPool(address, entities.PoolClassUniswapV2, token0, token1))
}

func TestAddPool(t *testing.T) {
	m := NewMarket()
	poolAddr, token0, token1 := randAddr(1), randAddr(2), randAddr(3)
	pool := mockWrapper(poolAddr, token0, token1)
	id := entities.NewPoolIdAddress(poolAddr)

	require.NoError(t, m.AddPool(pool))

	got, ok := m.GetPool(id)
	require.True(t, ok)
	assert.Equal(t, poolAddr, got.GetAddress())

	assert.Contains(t, m.GetTokenTokenPools(token0, token1), id)
	assert.Contains(t, m.GetTokenTokenPools(token1, token0), id)
	assert.Contains(t, m.GetTokenTokens(token0), token1)
	assert.Contains(t, m.GetTokenTokens(token1), token0)
	assert.Contains(t, m.GetTokenPools(token0), id)
	assert.Contains(t, m.GetTokenPools(token1), id)
}

func TestAddPoolDuplicate(t *testing.T) {
	m := NewMarket()
	poolAddr, token0, token1 := randAddr(1), randAddr(2), randAddr(3)
	pool := mockWrapper(poolAddr, token0, token1)

	require.NoError(t, m.AddPool(pool))
	err := m.AddPool(pool)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrDuplicatePool)
}

func TestAddToken(t *testing.T) {
	m := NewMarket()
	addr := randAddr(1)
	m.AddToken(entities.NewToken(addr))

	tok, ok := m.GetToken(addr)
	require.True(t, ok)
	assert.Equal(t, addr, tok.Address)
}

func TestAddTokenPreservesBasicFlag(t *testing.T) {
	m := NewMarket()
	addr := randAddr(1)
	m.AddToken(entities.NewTokenWithData(addr, "WETH", "Wrapped Ether", 18, true, false))
	m.AddToken(entities.NewToken(addr))

	tok, ok := m.GetToken(addr)
	require.True(t, ok)
	assert.True(t, tok.Basic)
}

func TestGetTokenDefault(t *testing.T) {
	m := NewMarket()
	addr := randAddr(1)
	tok := m.GetTokenOrDefault(addr)
	assert.Equal(t, addr, tok.Address)
}

func TestGetPool(t *testing.T) {
	m := NewMarket()
	poolAddr := randAddr(1)
	pool := mockWrapper(poolAddr, common.Address{}, common.Address{})
	require.NoError(t, m.AddPool(pool))

	got, ok := m.GetPool(entities.NewPoolIdAddress(poolAddr))
	require.True(t, ok)
	assert.Equal(t, poolAddr, got.GetAddress())
}

func TestIsPool(t *testing.T) {
	m := NewMarket()
	poolAddr := randAddr(1)
	require.NoError(t, m.AddPool(mockWrapper(poolAddr, common.Address{}, common.Address{})))
	assert.True(t, m.IsPool(entities.NewPoolIdAddress(poolAddr)))
}

func TestIsPoolNotFound(t *testing.T) {
	m := NewMarket()
	assert.False(t, m.IsPool(entities.NewPoolIdAddress(randAddr(1))))
}

func TestSetPoolDisabled(t *testing.T) {
	m := NewMarket()
	poolAddr, token0, token1 := randAddr(1), randAddr(2), randAddr(3)
	id := entities.NewPoolIdAddress(poolAddr)
	require.NoError(t, m.AddPool(mockWrapper(poolAddr, token0, token1)))

	assert.False(t, m.IsPoolDisabled(id))
	assert.Len(t, m.GetTokenTokenPools(token0, token1), 1)

	m.SetPoolDisabled(id, true)
	assert.True(t, m.IsPoolDisabled(id))
	assert.Len(t, m.GetTokenTokenPools(token0, token1), 1)

	m.SetPoolDisabled(id, false)
	assert.False(t, m.IsPoolDisabled(id))
	assert.Len(t, m.GetTokenTokenPools(token0, token1), 1)
}

// TestSetPoolDisabledPropagatesToSwapPaths pins spec.md:49/:72 and §8
// scenario 3: disabling a pool must be observable on every SwapPath
// indexed under it, not just on the pool's own flag.
func TestSetPoolDisabledPropagatesToSwapPaths(t *testing.T) {
	m := NewMarket()
	poolAddr, token0, token1 := randAddr(1), randAddr(2), randAddr(3)
	id := entities.NewPoolIdAddress(poolAddr)
	pool := mockWrapper(poolAddr, token0, token1)
	require.NoError(t, m.AddPool(pool))

	path, err := m.SwapPath([]common.Address{token0, token1}, []entities.PoolId{id})
	require.NoError(t, err)
	m.AddPaths([]*swapline.SwapPath{path})

	paths := m.GetPoolPaths(id)
	require.Len(t, paths, 1)
	assert.False(t, paths[0].Disabled)

	m.SetPoolDisabled(id, true)
	paths = m.GetPoolPaths(id)
	require.Len(t, paths, 1)
	assert.True(t, paths[0].Disabled)

	m.SetPoolDisabled(id, false)
	paths = m.GetPoolPaths(id)
	require.Len(t, paths, 1)
	assert.False(t, paths[0].Disabled)
}

func TestGetTokenTokenPools(t *testing.T) {
	m := NewMarket()
	poolAddr, token0, token1 := randAddr(1), randAddr(2), randAddr(3)
	require.NoError(t, m.AddPool(mockWrapper(poolAddr, token0, token1)))

	pools := m.GetTokenTokenPools(token0, token1)
	require.Len(t, pools, 1)
	assert.Equal(t, entities.NewPoolIdAddress(poolAddr), pools[0])
}

func TestGetTokenTokens(t *testing.T) {
	m := NewMarket()
	poolAddr, token0, token1 := randAddr(1), randAddr(2), randAddr(3)
	require.NoError(t, m.AddPool(mockWrapper(poolAddr, token0, token1)))

	toks := m.GetTokenTokens(token0)
	require.Len(t, toks, 1)
	assert.Equal(t, token1, toks[0])
}

func TestGetTokenPools(t *testing.T) {
	m := NewMarket()
	poolAddr, token0, token1 := randAddr(1), randAddr(2), randAddr(3)
	require.NoError(t, m.AddPool(mockWrapper(poolAddr, token0, token1)))

	pools := m.GetTokenPools(token0)
	require.Len(t, pools, 1)
	assert.Equal(t, entities.NewPoolIdAddress(poolAddr), pools[0])
}

func TestBuildSwapPathVecTwoHops(t *testing.T) {
	m := NewMarket()
	weth := randAddr(1)
	token1 := randAddr(2)
	m.AddToken(entities.NewTokenWithData(weth, "WETH", "Wrapped Ether", 18, true, false))

	poolAddr1 := randAddr(10)
	pool1 := mockWrapper(poolAddr1, weth, token1)
	require.NoError(t, m.AddPool(pool1))

	poolAddr2 := randAddr(11)
	pool2 := mockWrapper(poolAddr2, weth, token1)
	require.NoError(t, m.AddPool(pool2))

	paths, err := m.BuildSwapPathVec([]PoolDirections{
		{Pool: pool2, Directions: pool2.GetSwapDirections()},
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, p := range paths {
		assert.Equal(t, 2, p.PoolCount())
		assert.Len(t, p.Tokens, 3)
		assert.Equal(t, weth, p.Tokens[0].Address)
		assert.Equal(t, token1, p.Tokens[1].Address)
		assert.Equal(t, weth, p.Tokens[2].Address)
	}

	// One path must traverse pool1 then pool2, the other pool2 then pool1.
	seqA := [2]common.Address{paths[0].Pools[0].GetAddress(), paths[0].Pools[1].GetAddress()}
	seqB := [2]common.Address{paths[1].Pools[0].GetAddress(), paths[1].Pools[1].GetAddress()}
	want1 := [2]common.Address{poolAddr1, poolAddr2}
	want2 := [2]common.Address{poolAddr2, poolAddr1}
	assert.True(t, (seqA == want1 && seqB == want2) || (seqA == want2 && seqB == want1))
}

// TestBuildSwapPathVecDeterministicOrderWithTwoClosingBranches pins
// spec.md's tie-break rule that path enumeration order must not leak
// map-iteration randomness: T2 here has two independent closing branches
// back to WETH (a direct 1-hop one via poolA, and a 2-hop one via poolB
// then poolC), and the expected output order follows the order those
// branches were inserted, not whichever bucket a map range happens to
// start at.
func TestBuildSwapPathVecDeterministicOrderWithTwoClosingBranches(t *testing.T) {
	m := NewMarket()
	weth := randAddr(1)
	t2 := randAddr(2)
	t3 := randAddr(3)
	m.AddToken(entities.NewTokenWithData(weth, "WETH", "Wrapped Ether", 18, true, false))

	newPoolAddr := randAddr(9)
	newPool := mockWrapper(newPoolAddr, weth, t2)
	require.NoError(t, m.AddPool(newPool))

	poolAAddr := randAddr(10)
	require.NoError(t, m.AddPool(mockWrapper(poolAAddr, t2, weth)))

	poolBAddr := randAddr(11)
	require.NoError(t, m.AddPool(mockWrapper(poolBAddr, t2, t3)))

	poolCAddr := randAddr(12)
	require.NoError(t, m.AddPool(mockWrapper(poolCAddr, t3, weth)))

	directions := []PoolDirections{
		{Pool: newPool, Directions: []entities.TokenPair{{From: weth, To: t2}}},
	}

	wantSeq := [][]common.Address{
		{newPoolAddr, poolAAddr},
		{newPoolAddr, poolBAddr, poolCAddr},
	}

	// Go re-picks a random map-iteration start point on every range, even
	// within the same process, so running this more than once catches a
	// regression to map iteration that a single call could miss.
	for i := 0; i < 5; i++ {
		paths, err := m.BuildSwapPathVec(directions)
		require.NoError(t, err)
		require.Len(t, paths, 2)

		for j, p := range paths {
			gotSeq := make([]common.Address, p.PoolCount())
			for k, pool := range p.Pools {
				gotSeq[k] = pool.GetAddress()
			}
			assert.Equal(t, wantSeq[j], gotSeq, "iteration %d, path %d", i, j)
		}
	}
}

func TestBuildSwapPathVecThreeHops(t *testing.T) {
	m := NewMarket()
	weth := randAddr(1)
	token1 := randAddr(2)
	token2 := randAddr(3)
	m.AddToken(entities.NewTokenWithData(weth, "WETH", "Wrapped Ether", 18, true, false))

	poolAddr1 := randAddr(10)
	require.NoError(t, m.AddPool(mockWrapper(poolAddr1, token1, weth)))

	poolAddr2 := randAddr(11)
	require.NoError(t, m.AddPool(mockWrapper(poolAddr2, token1, token2)))

	poolAddr3 := randAddr(12)
	pool3 := mockWrapper(poolAddr3, token2, weth)
	require.NoError(t, m.AddPool(pool3))

	paths, err := m.BuildSwapPathVec([]PoolDirections{
		{Pool: pool3, Directions: pool3.GetSwapDirections()},
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, p := range paths {
		assert.Equal(t, 3, p.PoolCount())
		assert.Len(t, p.Tokens, 4)
		assert.Equal(t, weth, p.Tokens[0].Address)
		assert.Equal(t, weth, p.Tokens[3].Address)
	}

	seqA := [3]common.Address{paths[0].Pools[0].GetAddress(), paths[0].Pools[1].GetAddress(), paths[0].Pools[2].GetAddress()}
	seqB := [3]common.Address{paths[1].Pools[0].GetAddress(), paths[1].Pools[1].GetAddress(), paths[1].Pools[2].GetAddress()}
	want1 := [3]common.Address{poolAddr1, poolAddr2, poolAddr3}
	want2 := [3]common.Address{poolAddr3, poolAddr2, poolAddr1}
	assert.True(t, (seqA == want1 && seqB == want2) || (seqA == want2 && seqB == want1))
}
