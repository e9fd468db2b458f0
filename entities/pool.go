package entities

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenPair is one swap direction a pool reports: a caller may exchange From for To.
type TokenPair struct {
	From common.Address
	To   common.Address
}

// PreswapRequirementKind is a pool's convention for receiving its input tokens.
type PreswapRequirementKind uint8

const (
	// PreswapBase means the pool pulls funds itself (approve + call).
	PreswapBase PreswapRequirementKind = iota
	// PreswapTransfer means funds must be pushed to TransferTo before the call.
	PreswapTransfer
	// PreswapCallback means the pool delivers funds via a flash-style callback.
	PreswapCallback
)

// PreswapRequirement describes how a pool expects to receive its input tokens.
type PreswapRequirement struct {
	Kind       PreswapRequirementKind
	TransferTo common.Address // meaningful only when Kind == PreswapTransfer
}

// StateCall is a single eth_call the pool needs simulated to reconstruct its state.
type StateCall struct {
	Target   common.Address
	CallData []byte
}

// StateSlot is a single raw storage slot read the pool needs to simulate swaps.
type StateSlot struct {
	Target common.Address
	Slot   common.Hash
}

// RequiredState is the set of chain reads a pool needs fetched before it can
// be simulated: a mix of contract calls and raw storage slots.
type RequiredState struct {
	Calls []StateCall
	Slots []StateSlot
}

// Pool is the capability set external DEX modules implement. Dispatch by
// PoolClass happens outside this interface, in the opcode/abi encoder
// registries (table-driven per §9, never via Go-side inheritance).
type Pool interface {
	GetAddress() common.Address
	GetPoolId() PoolId
	GetClass() PoolClass
	GetFee() *big.Int
	GetSwapDirections() []TokenPair
	GetStateRequired() (RequiredState, error)
	GetReadOnlyCellVec() []common.Hash
	PreswapRequirement() PreswapRequirement
	IsNative() bool
}

// PoolWrapper is a cheap-to-copy handle to a polymorphic Pool implementation,
// used everywhere the market and encoders pass pools around by value.
type PoolWrapper struct {
	pool Pool
}

// NewPoolWrapper wraps a concrete Pool implementation.
func NewPoolWrapper(p Pool) PoolWrapper {
	return PoolWrapper{pool: p}
}

// Unwrap returns the underlying Pool implementation.
func (w PoolWrapper) Unwrap() Pool {
	return w.pool
}

func (w PoolWrapper) GetAddress() common.Address            { return w.pool.GetAddress() }
func (w PoolWrapper) GetPoolId() PoolId                      { return w.pool.GetPoolId() }
func (w PoolWrapper) GetClass() PoolClass                    { return w.pool.GetClass() }
func (w PoolWrapper) GetFee() *big.Int                       { return w.pool.GetFee() }
func (w PoolWrapper) GetSwapDirections() []TokenPair         { return w.pool.GetSwapDirections() }
func (w PoolWrapper) GetStateRequired() (RequiredState, error) { return w.pool.GetStateRequired() }
func (w PoolWrapper) GetReadOnlyCellVec() []common.Hash      { return w.pool.GetReadOnlyCellVec() }
func (w PoolWrapper) PreswapRequirement() PreswapRequirement { return w.pool.PreswapRequirement() }
func (w PoolWrapper) IsNative() bool                         { return w.pool.IsNative() }

func (w PoolWrapper) String() string {
	if w.pool == nil {
		return "PoolWrapper(nil)"
	}
	return w.pool.GetAddress().Hex()
}
