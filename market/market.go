// Package market holds the concurrent in-memory graph of tokens, pools and
// swap paths the rest of the engine queries and extends as new pools are
// discovered on chain.
package market

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/swapline"
)

// Market is the pool/token graph. A single RWMutex guards every field: the
// graph is read far more often than it is written (every encoder pass reads
// it, only the pool loader writes to it), and a single-lock shape holds up
// fine at this scale without per-field locking.
type Market struct {
	mu sync.RWMutex

	pools         map[entities.PoolId]entities.PoolWrapper
	poolsDisabled map[entities.PoolId]bool

	tokens map[common.Address]*entities.Token

	tokenTokens     map[common.Address][]common.Address
	tokenTokenPools map[common.Address]map[common.Address][]entities.PoolId
	tokenPools      map[common.Address][]entities.PoolId

	swapPaths *swapline.SwapPaths
}

// NewMarket builds an empty market.
func NewMarket() *Market {
	return &Market{
		pools:           make(map[entities.PoolId]entities.PoolWrapper),
		poolsDisabled:   make(map[entities.PoolId]bool),
		tokens:          make(map[common.Address]*entities.Token),
		tokenTokens:     make(map[common.Address][]common.Address),
		tokenTokenPools: make(map[common.Address]map[common.Address][]entities.PoolId),
		tokenPools:      make(map[common.Address][]entities.PoolId),
		swapPaths:       swapline.NewSwapPaths(),
	}
}

// AddToken registers a token. If a token is already registered at that
// address and is marked Basic, the Basic flag survives even if the
// incoming token is not itself marked basic — a basic designation, once
// established from on-chain data, should not be silently downgraded by a
// later, less-informed insert.
func (m *Market) AddToken(token *entities.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.tokens[token.Address]; ok && existing.Basic && !token.Basic {
		preserved := *token
		preserved.Basic = true
		token = &preserved
	}
	m.tokens[token.Address] = token
}

// IsBasicToken reports whether the token at address is known and marked basic.
func (m *Market) IsBasicToken(address common.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tokens[address]
	return ok && t.Basic
}

// AddPool registers a pool and indexes its swap directions. Returns
// entities.ErrDuplicatePool if the pool id is already registered.
func (m *Market) AddPool(pool entities.PoolWrapper) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := pool.GetPoolId()
	if _, exists := m.pools[id]; exists {
		return fmt.Errorf("add pool %s: %w", id, entities.ErrDuplicatePool)
	}

	for _, dir := range pool.GetSwapDirections() {
		if m.tokenTokenPools[dir.From] == nil {
			m.tokenTokenPools[dir.From] = make(map[common.Address][]entities.PoolId)
		}
		m.tokenTokenPools[dir.From][dir.To] = append(m.tokenTokenPools[dir.From][dir.To], id)
		m.tokenTokens[dir.From] = append(m.tokenTokens[dir.From], dir.To)
		m.tokenPools[dir.From] = append(m.tokenPools[dir.From], id)
	}

	m.pools[id] = pool
	return nil
}

// AddPaths registers swap paths in the swap-path index.
func (m *Market) AddPaths(paths []*swapline.SwapPath) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		m.swapPaths.Add(p)
	}
}

// GetPoolPaths returns every indexed path touching the given pool.
func (m *Market) GetPoolPaths(id entities.PoolId) []*swapline.SwapPath {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.swapPaths.GetPoolPathsVec(id)
}

// SwapPaths returns every indexed path.
func (m *Market) SwapPaths() []*swapline.SwapPath {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.swapPaths.All()
}

// GetPool returns the pool registered under id. A pool whose class is
// PoolClassUnknown is treated as absent, the same filter the source applies.
func (m *Market) GetPool(id entities.PoolId) (entities.PoolWrapper, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pool, ok := m.pools[id]
	if !ok || pool.GetClass() == entities.PoolClassUnknown {
		return entities.PoolWrapper{}, false
	}
	return pool, true
}

// IsPool reports whether a pool is registered under id, regardless of class.
func (m *Market) IsPool(id entities.PoolId) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.pools[id]
	return ok
}

// SetPoolDisabled flips a pool's disabled flag and propagates it to every
// swap path indexed under that pool.
func (m *Market) SetPoolDisabled(id entities.PoolId, disabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poolsDisabled[id] = disabled
	m.swapPaths.DisablePool(id, disabled)
}

// IsPoolDisabled reports the last value passed to SetPoolDisabled for id.
func (m *Market) IsPoolDisabled(id entities.PoolId) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.poolsDisabled[id]
}

// GetTokenOrDefault returns the registered token at address, or a freshly
// synthesized zero-metadata token if none is registered.
func (m *Market) GetTokenOrDefault(address common.Address) *entities.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tokens[address]; ok {
		return t
	}
	return entities.NewToken(address)
}

// GetToken returns the registered token at address, if any.
func (m *Market) GetToken(address common.Address) (*entities.Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tokens[address]
	return t, ok
}

// GetTokenTokenPools returns every pool id that swaps from -> to.
func (m *Market) GetTokenTokenPools(from, to common.Address) []entities.PoolId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inner, ok := m.tokenTokenPools[from]
	if !ok {
		return nil
	}
	return inner[to]
}

// GetTokenTokens returns every token reachable in one hop from `from`.
func (m *Market) GetTokenTokens(from common.Address) []common.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokenTokens[from]
}

// GetTokenPools returns every pool id that can swap away from `from`.
func (m *Market) GetTokenPools(from common.Address) []entities.PoolId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokenPools[from]
}

// GetTokenPoolsLen returns len(GetTokenPools(address)) without copying.
func (m *Market) GetTokenPoolsLen(address common.Address) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokenPools[address])
}

// SwapPath reconstructs a path from raw token and pool address sequences,
// looking each one up in the market. len(tokenAddrs) must be
// len(poolIds)+1.
func (m *Market) SwapPath(tokenAddrs []common.Address, poolIds []entities.PoolId) (*swapline.SwapPath, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tokens := make([]*entities.Token, len(tokenAddrs))
	for i, addr := range tokenAddrs {
		t, ok := m.tokens[addr]
		if !ok {
			return nil, fmt.Errorf("swap path token %s: %w", addr, entities.ErrNotFound)
		}
		tokens[i] = t
	}

	pools := make([]entities.PoolWrapper, len(poolIds))
	for i, id := range poolIds {
		p, ok := m.pools[id]
		if !ok {
			return nil, fmt.Errorf("swap path pool %s: %w", id, entities.ErrNotFound)
		}
		pools[i] = p
	}

	return swapline.NewSwapPath(tokens, pools), nil
}

func (m *Market) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tokenTokenLen := 0
	for _, v := range m.tokenTokens {
		tokenTokenLen += len(v)
	}
	tokenTokenPoolsLen := 0
	for _, inner := range m.tokenTokenPools {
		tokenTokenPoolsLen += len(inner)
	}
	tokenPoolLen, tokenPoolLenMax := 0, 0
	for _, v := range m.tokenPools {
		tokenPoolLen += len(v)
		if len(v) > tokenPoolLenMax {
			tokenPoolLenMax = len(v)
		}
	}

	return fmt.Sprintf(
		"Pools: %d Disabled: %d Tokens: %d TT: %d TTP: %d TP: %d/%d SwapPaths: %d",
		len(m.pools), len(m.poolsDisabled), len(m.tokens),
		tokenTokenLen, tokenTokenPoolsLen, tokenPoolLen, tokenPoolLenMax,
		m.swapPaths.Len(),
	)
}
