package swapline

import (
	"strings"

	"github.com/loomswap/arbcore/entities"
)

// SwapPath is an ordered sequence of pool hops and the tokens that separate
// them: len(Tokens) == len(Pools)+1, Tokens[i] -> Pools[i] -> Tokens[i+1].
type SwapPath struct {
	Pools  []entities.PoolWrapper
	Tokens []*entities.Token

	// Disabled mirrors whether any pool along this path is currently
	// disabled in the index that produced it; set by SwapPaths.DisablePool,
	// never by callers.
	Disabled bool
}

// NewSwapPath builds a path from a token/pool sequence. Callers are expected
// to pass len(tokens) == len(pools)+1; a malformed path is a programmer error
// the path builder never produces.
func NewSwapPath(tokens []*entities.Token, pools []entities.PoolWrapper) *SwapPath {
	return &SwapPath{Pools: pools, Tokens: tokens}
}

// PoolCount returns the number of hops in the path.
func (p *SwapPath) PoolCount() int {
	return len(p.Pools)
}

// CanFlashSwap reports whether any pool in the path can deliver funds via a
// flash-style callback, making the path eligible for flash-loan compilation.
func (p *SwapPath) CanFlashSwap() bool {
	for _, pool := range p.Pools {
		if pool.PreswapRequirement().Kind == entities.PreswapCallback {
			return true
		}
	}
	return false
}

// FirstToken returns the path's entry token, or nil for an empty path.
func (p *SwapPath) FirstToken() *entities.Token {
	if len(p.Tokens) == 0 {
		return nil
	}
	return p.Tokens[0]
}

// LastToken returns the path's exit token, or nil for an empty path.
func (p *SwapPath) LastToken() *entities.Token {
	if len(p.Tokens) == 0 {
		return nil
	}
	return p.Tokens[len(p.Tokens)-1]
}

// PoolAddressVec returns the path's pools' addresses in hop order.
func (p *SwapPath) PoolAddressVec() []entities.PoolId {
	ids := make([]entities.PoolId, len(p.Pools))
	for i, pool := range p.Pools {
		ids[i] = pool.GetPoolId()
	}
	return ids
}

// Split returns two sub-paths: hops [0,at) and [at,PoolCount), sharing the
// pivot token. at must be in [1, PoolCount()-1].
func (p *SwapPath) Split(at int) (*SwapPath, *SwapPath) {
	head := &SwapPath{
		Pools:  p.Pools[:at],
		Tokens: p.Tokens[:at+1],
	}
	tail := &SwapPath{
		Pools:  p.Pools[at:],
		Tokens: p.Tokens[at:],
	}
	return head, tail
}

func (p *SwapPath) String() string {
	var b strings.Builder
	for i, tok := range p.Tokens {
		b.WriteString(tok.String())
		if i < len(p.Pools) {
			b.WriteString("->")
		}
	}
	return b.String()
}
