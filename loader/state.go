package loader

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
)

// FetchedState is the result of resolving a pool's RequiredState: one
// result per call, in the same order as RequiredState.Calls, and one value
// per slot, in the same order as RequiredState.Slots.
type FetchedState struct {
	CallResults [][]byte
	SlotValues  []common.Hash
}

// MarketState is the simulated-chain-state side-cache the loader populates
// before a pool is visible in the Market graph: it holds whatever raw
// reads a pool needed to become simulate-able, plus any storage cells a
// caller has decided to treat as stale. It is guarded by its own lock,
// distinct from Market's, so a loader task's state write is never blocked
// behind another task's graph insert or vice versa.
type MarketState struct {
	mu            sync.RWMutex
	states        map[entities.PoolId]FetchedState
	disabledCells map[entities.PoolId][]common.Hash
}

// NewMarketState builds an empty state cache.
func NewMarketState() *MarketState {
	return &MarketState{
		states:        make(map[entities.PoolId]FetchedState),
		disabledCells: make(map[entities.PoolId][]common.Hash),
	}
}

// ApplyState installs the fetched state for a pool, overwriting any
// previous entry. This is the Go analogue of the source's geth state
// update applied under the market state write lock.
func (s *MarketState) ApplyState(id entities.PoolId, state FetchedState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

// DisableCellVec marks a set of storage cells stale for a pool, so a
// simulator consulting this cache knows to refetch them instead of trusting
// the cached value.
func (s *MarketState) DisableCellVec(id entities.PoolId, cells []common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabledCells[id] = cells
}

// GetState returns the cached state for a pool, if any has been applied.
func (s *MarketState) GetState(id entities.PoolId) (FetchedState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[id]
	return st, ok
}
