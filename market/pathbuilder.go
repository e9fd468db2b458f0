package market

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/loomswap/arbcore/swapline"
)

// maxClosingHops bounds how many additional hops the builder will chase to
// close a cycle back to a basic token, beyond the new pool's own hop. With
// this set to 2, the longest path build_swap_path_vec ever emits is 3 hops
// (4 tokens) — a 1-hop new pool joined to a 2-hop closing chain.
const maxClosingHops = 2

// PoolDirections is one entry of the (pool, swap directions) list passed to
// BuildSwapPathVec. A plain ordered slice, not a map, so iteration order is
// exactly the order the caller discovered the directions in — the pack's
// source relies on a BTreeMap's deterministic order for this, which a Go
// map can't give for free.
type PoolDirections struct {
	Pool       entities.PoolWrapper
	Directions []entities.TokenPair
}

type hop struct {
	pool entities.PoolWrapper
	from common.Address
	to   common.Address
}

// BuildSwapPathVec builds every cyclic swap path that a newly discovered
// pool's swap directions can participate in: paths that start and end at a
// basic token, using the new pool for one hop and up to maxClosingHops
// existing pools to close the cycle.
func (m *Market) BuildSwapPathVec(directions []PoolDirections) ([]*swapline.SwapPath, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*swapline.SwapPath
	seen := make(map[string]bool)

	for _, entry := range directions {
		newID := entry.Pool.GetPoolId()
		for _, dir := range entry.Directions {
			for _, hops := range m.closingHopsFor(newID, dir) {
				path := m.pathFromHops(hops)
				if path == nil {
					continue
				}
				key := pathKey(hops)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, path)
			}
		}
	}

	return out, nil
}

// closingHopsFor returns every full hop sequence (new pool hop included)
// that closes dir's swap into a basic-token cycle.
func (m *Market) closingHopsFor(newID entities.PoolId, dir entities.TokenPair) [][]hop {
	newHop := hop{from: dir.From, to: dir.To}
	// pool is filled in by the caller after lookup so the returned hops
	// carry a resolvable PoolWrapper; look it up once here.
	pool, ok := m.pools[newID]
	if !ok {
		return nil
	}
	newHop.pool = pool

	var results [][]hop

	if m.isBasicLocked(dir.From) {
		if m.isBasicLocked(dir.To) {
			results = append(results, []hop{newHop})
		} else {
			for _, chain := range m.findClosingChains(dir.To, newID, maxClosingHops) {
				full := append([]hop{newHop}, chain...)
				results = append(results, full)
			}
		}
	}

	if m.isBasicLocked(dir.To) && !m.isBasicLocked(dir.From) {
		for _, chain := range m.findClosingChains(dir.From, newID, maxClosingHops) {
			prefix := reverseHops(chain)
			full := append(prefix, newHop)
			results = append(results, full)
		}
	}

	return results
}

// findClosingChains does a depth-bounded DFS over the existing (pool !=
// exclude) token graph starting at `from`, returning one chain per distinct
// walk that reaches a basic token. A walk stops the instant it reaches a
// basic token — it never walks past one — so results are the shortest
// closing chains reachable along each distinct branch.
func (m *Market) findClosingChains(from common.Address, exclude entities.PoolId, depth int) [][]hop {
	if m.isBasicLocked(from) {
		return [][]hop{{}}
	}
	if depth == 0 {
		return nil
	}

	var out [][]hop
	seenTo := make(map[common.Address]bool, len(m.tokenTokens[from]))
	for _, to := range m.tokenTokens[from] {
		if seenTo[to] {
			continue
		}
		seenTo[to] = true

		for _, pid := range m.tokenTokenPools[from][to] {
			if pid == exclude {
				continue
			}
			pool, ok := m.pools[pid]
			if !ok {
				continue
			}
			for _, rest := range m.findClosingChains(to, exclude, depth-1) {
				chain := append([]hop{{pool: pool, from: from, to: to}}, rest...)
				out = append(out, chain)
			}
		}
	}
	return out
}

func (m *Market) isBasicLocked(address common.Address) bool {
	t, ok := m.tokens[address]
	return ok && t.Basic
}

func reverseHops(hops []hop) []hop {
	out := make([]hop, len(hops))
	for i, h := range hops {
		out[len(hops)-1-i] = hop{pool: h.pool, from: h.to, to: h.from}
	}
	return out
}

func (m *Market) pathFromHops(hops []hop) *swapline.SwapPath {
	if len(hops) == 0 {
		return nil
	}
	tokens := make([]*entities.Token, 0, len(hops)+1)
	pools := make([]entities.PoolWrapper, 0, len(hops))
	for i, h := range hops {
		if i == 0 {
			tokens = append(tokens, m.tokenOrDefaultLocked(h.from))
		}
		tokens = append(tokens, m.tokenOrDefaultLocked(h.to))
		pools = append(pools, h.pool)
	}
	return swapline.NewSwapPath(tokens, pools)
}

func (m *Market) tokenOrDefaultLocked(address common.Address) *entities.Token {
	if t, ok := m.tokens[address]; ok {
		return t
	}
	return entities.NewToken(address)
}

func pathKey(hops []hop) string {
	key := make([]byte, 0, len(hops)*21)
	for _, h := range hops {
		id := h.pool.GetPoolId()
		key = append(key, []byte(id.String())...)
		key = append(key, 0)
	}
	return string(key)
}
