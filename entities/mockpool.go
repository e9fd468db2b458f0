package entities

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MockPool is a minimal Pool implementation used by package tests across
// the module to build synthetic graphs without a real DEX integration.
type MockPool struct {
	Addr       common.Address
	Id         PoolId
	Class      PoolClass
	Fee        *big.Int
	Directions []TokenPair
	Preswap    PreswapRequirement
	Native     bool
}

// NewMockPool builds a mock pool keyed by its own address, trading in both
// directions between the two given tokens.
func NewMockPool(address common.Address, class PoolClass, token0, token1 common.Address) *MockPool {
	return &MockPool{
		Addr:  address,
		Id:    NewPoolIdAddress(address),
		Class: class,
		Fee:   big.NewInt(0),
		Directions: []TokenPair{
			{From: token0, To: token1},
			{From: token1, To: token0},
		},
		Preswap: PreswapRequirement{Kind: PreswapBase},
	}
}

func (m *MockPool) GetAddress() common.Address    { return m.Addr }
func (m *MockPool) GetPoolId() PoolId             { return m.Id }
func (m *MockPool) GetClass() PoolClass           { return m.Class }
func (m *MockPool) GetFee() *big.Int              { return m.Fee }
func (m *MockPool) GetSwapDirections() []TokenPair { return m.Directions }
func (m *MockPool) GetStateRequired() (RequiredState, error) {
	return RequiredState{}, nil
}
func (m *MockPool) GetReadOnlyCellVec() []common.Hash { return nil }
func (m *MockPool) PreswapRequirement() PreswapRequirement { return m.Preswap }
func (m *MockPool) IsNative() bool { return m.Native }

var _ Pool = (*MockPool)(nil)
