package entities

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Token is an immutable value type describing an ERC20 token known to the
// market. Once constructed it is never mutated; callers share it by pointer.
type Token struct {
	Address  common.Address
	Symbol   string
	Name     string
	Decimals uint8

	// Basic marks a token eligible to anchor a swap cycle (e.g. WETH/USDC).
	Basic bool
	// Middle marks a token eligible as a synthetic intermediate pivot (e.g. 3Crv).
	Middle bool
}

// NewToken creates a non-basic, non-middle token with no metadata, the same
// default a newly-synthesized (get_token_or_default) token gets.
func NewToken(address common.Address) *Token {
	return &Token{Address: address}
}

// NewTokenWithData creates a fully described token.
func NewTokenWithData(address common.Address, symbol, name string, decimals uint8, basic, middle bool) *Token {
	return &Token{
		Address:  address,
		Symbol:   symbol,
		Name:     name,
		Decimals: decimals,
		Basic:    basic,
		Middle:   middle,
	}
}

func (t *Token) String() string {
	if t.Symbol != "" {
		return t.Symbol
	}
	return t.Address.Hex()
}

func (t *Token) GoString() string {
	return fmt.Sprintf("Token{%s}", t.String())
}
