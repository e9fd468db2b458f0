// Package chains holds the address-book data needed to seed a market with
// the well-known tokens of a given chain before pool discovery begins.
package chains

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/market"
)

// ChainID identifies a chain by its EIP-155 numeric id.
type ChainID uint64

// Mainnet is Ethereum mainnet, the only chain this module's address book
// covers; other chains (Arbitrum, Base, Avalanche, BSC, ...) use
// different basic-token sets and are out of scope for a single address type.
const Mainnet ChainID = 1

// Ethereum mainnet token addresses, the fixed set AddDefaultTokensToMarket
// seeds into the market before any pool is loaded.
var (
	mainnetWETH    = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	mainnetUSDC    = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	mainnetUSDT    = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	mainnetDAI     = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	mainnetWBTC    = common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599")
	mainnetThreeCRV = common.HexToAddress("0x6c3F90f043a72FA612cbac8115EE7e52BDe6E490")
)

// AddDefaultTokensToMarket seeds m with the default tokens of chainID: the
// basic tokens every arbitrage cycle is expected to start and end at, plus
// middle-only pivot tokens. It returns an error for any chain whose address
// book this module does not carry.
func AddDefaultTokensToMarket(m *market.Market, chainID ChainID) error {
	switch chainID {
	case Mainnet:
		m.AddToken(entities.NewTokenWithData(mainnetWETH, "WETH", "", 18, true, false))
		m.AddToken(entities.NewTokenWithData(mainnetUSDC, "USDC", "", 6, true, false))
		m.AddToken(entities.NewTokenWithData(mainnetUSDT, "USDT", "", 6, true, false))
		m.AddToken(entities.NewTokenWithData(mainnetDAI, "DAI", "", 18, true, false))
		m.AddToken(entities.NewTokenWithData(mainnetWBTC, "WBTC", "", 8, true, false))
		// 3Crv is a synthetic Curve LP pivot: useful as an intermediate hop,
		// but never a cycle's start/end token, so it is middle, not basic.
		m.AddToken(entities.NewTokenWithData(mainnetThreeCRV, "3Crv", "", 18, false, true))
		return nil
	default:
		return fmt.Errorf("chains: no default token set for chain id %d", chainID)
	}
}
