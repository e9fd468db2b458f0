package swapline

import "github.com/loomswap/arbcore/entities"

// SwapPaths indexes swap paths by every pool that participates in them, so a
// pool going stale or disabled can propagate to every path that depends on
// it without a linear scan.
type SwapPaths struct {
	paths        []*SwapPath
	byPool       map[entities.PoolId][]*SwapPath
	disabledPool map[entities.PoolId]bool
}

// NewSwapPaths builds an empty index.
func NewSwapPaths() *SwapPaths {
	return &SwapPaths{
		byPool:       make(map[entities.PoolId][]*SwapPath),
		disabledPool: make(map[entities.PoolId]bool),
	}
}

// Add registers a path under every pool it touches.
func (s *SwapPaths) Add(path *SwapPath) {
	s.paths = append(s.paths, path)
	for _, pool := range path.Pools {
		id := pool.GetPoolId()
		s.byPool[id] = append(s.byPool[id], path)
	}
}

// Len returns the total number of distinct paths held.
func (s *SwapPaths) Len() int {
	return len(s.paths)
}

// DisablePool marks a pool disabled for every path index lookup and
// propagates the change to every SwapPath indexed under it: a path's
// Disabled field is recomputed as "any of its pools is disabled", so
// re-enabling one pool on a multi-pool-disabled path leaves it disabled
// until every disabled pool on it is re-enabled too.
func (s *SwapPaths) DisablePool(id entities.PoolId, disabled bool) {
	s.disabledPool[id] = disabled
	for _, path := range s.byPool[id] {
		path.Disabled = s.anyPoolDisabled(path)
	}
}

func (s *SwapPaths) anyPoolDisabled(path *SwapPath) bool {
	for _, pool := range path.Pools {
		if s.disabledPool[pool.GetPoolId()] {
			return true
		}
	}
	return false
}

// IsPoolDisabled reports the last value set via DisablePool.
func (s *SwapPaths) IsPoolDisabled(id entities.PoolId) bool {
	return s.disabledPool[id]
}

// GetPoolPathsVec returns every path touching the given pool.
func (s *SwapPaths) GetPoolPathsVec(id entities.PoolId) []*SwapPath {
	return s.byPool[id]
}

// All returns every indexed path.
func (s *SwapPaths) All() []*SwapPath {
	return s.paths
}
