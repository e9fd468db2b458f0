package chains

import (
	"testing"

	"github.com/loomswap/arbcore/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDefaultTokensToMarketMainnet(t *testing.T) {
	m := market.NewMarket()
	require.NoError(t, AddDefaultTokensToMarket(m, Mainnet))

	weth, ok := m.GetToken(mainnetWETH)
	require.True(t, ok)
	assert.Equal(t, "WETH", weth.Symbol)
	assert.True(t, weth.Basic)
	assert.False(t, weth.Middle)

	threeCRV, ok := m.GetToken(mainnetThreeCRV)
	require.True(t, ok)
	assert.Equal(t, "3Crv", threeCRV.Symbol)
	assert.False(t, threeCRV.Basic)
	assert.True(t, threeCRV.Middle)
}

func TestAddDefaultTokensToMarketUnknownChain(t *testing.T) {
	m := market.NewMarket()
	err := AddDefaultTokensToMarket(m, ChainID(999))
	assert.Error(t, err)
}
