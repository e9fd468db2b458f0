package abiencoder

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/loomswap/arbcore/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSwapInAmountProvidedUniswapV2(t *testing.T) {
	enc := NewProtocolABIEncoderV2()
	tokenA := common.HexToAddress("0x0000000000000000000000000000000000000001")
	tokenB := common.HexToAddress("0x0000000000000000000000000000000000000002")
	recipient := common.HexToAddress("0x0000000000000000000000000000000000000099")

	data, err := enc.EncodeSwapInAmountProvided(
		fakePool{class: entities.PoolClassUniswapV2}, tokenA, tokenB, big.NewInt(100), recipient, nil)
	require.NoError(t, err)
	assert.Equal(t, uniswapV2PoolABI.Methods["swap"].ID, data[:4])

	offset, ok := enc.SwapInAmountOffset(fakePool{class: entities.PoolClassUniswapV2}, tokenA, tokenB)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x24), offset)
}

func TestEncodeSwapInAmountProvidedUniswapV3(t *testing.T) {
	enc := NewProtocolABIEncoderV2()
	tokenA := common.HexToAddress("0x0000000000000000000000000000000000000001")
	tokenB := common.HexToAddress("0x0000000000000000000000000000000000000002")
	recipient := common.HexToAddress("0x0000000000000000000000000000000000000099")

	data, err := enc.EncodeSwapInAmountProvided(
		fakePool{class: entities.PoolClassUniswapV3}, tokenA, tokenB, big.NewInt(50), recipient, []byte{0xAB})
	require.NoError(t, err)
	assert.Equal(t, uniswapV3PoolABI.Methods["swap"].ID, data[:4])

	offset, ok := enc.SwapInAmountOffset(fakePool{class: entities.PoolClassUniswapV3}, tokenA, tokenB)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x44), offset)
}

func TestEncodeSwapInAmountProvidedUnsupportedClass(t *testing.T) {
	enc := NewProtocolABIEncoderV2()
	_, err := enc.EncodeSwapInAmountProvided(
		fakePool{class: entities.PoolClassUnknown}, common.Address{}, common.Address{}, big.NewInt(1), common.Address{}, nil)
	require.Error(t, err)
}

type fakePool struct {
	class entities.PoolClass
}

func (f fakePool) GetAddress() common.Address                     { return common.Address{} }
func (f fakePool) GetPoolId() entities.PoolId                     { return entities.NewPoolIdAddress(common.Address{}) }
func (f fakePool) GetClass() entities.PoolClass                   { return f.class }
func (f fakePool) GetFee() *big.Int                                { return big.NewInt(0) }
func (f fakePool) GetSwapDirections() []entities.TokenPair         { return nil }
func (f fakePool) GetStateRequired() (entities.RequiredState, error) { return entities.RequiredState{}, nil }
func (f fakePool) GetReadOnlyCellVec() []common.Hash               { return nil }
func (f fakePool) PreswapRequirement() entities.PreswapRequirement { return entities.PreswapRequirement{} }
func (f fakePool) IsNative() bool                                  { return false }

var _ entities.Pool = fakePool{}
