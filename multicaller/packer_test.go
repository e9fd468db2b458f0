package multicaller

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackDoCallsDataLayout(t *testing.T) {
	target := common.HexToAddress("0x00000000000000000000000000000000000001")
	call := NewCall(target, []byte{0xAA, 0xBB})
	call.SetCallStack(true, 1, 0x24, 32)

	calls := NewCalls().Add(call)
	data, err := PackDoCallsData(calls)
	require.NoError(t, err)

	// target(20) + type(1) + has_value(1) + call-stack(5) + return-stack(5) + datalen(2) + data(2)
	require.Len(t, data, 20+1+1+5+5+2+2)

	assert.Equal(t, target.Bytes(), data[0:20])
	assert.Equal(t, byte(0x00), data[20]) // CallKindCall
	assert.Equal(t, byte(0x00), data[21]) // has_value = false

	callStack := data[22:27]
	assert.Equal(t, byte(bindingFlagPresent|bindingFlagRelative), callStack[0])
	assert.Equal(t, byte(1), callStack[1])

	returnStack := data[27:32]
	assert.Equal(t, byte(0x00), returnStack[0])

	assert.Equal(t, []byte{0x00, 0x02}, data[32:34])
	assert.Equal(t, []byte{0xAA, 0xBB}, data[34:36])
}

func TestPackDoCallsDataInternalCallHasZeroTarget(t *testing.T) {
	call := NewInternalCall([]byte{0x01})
	calls := NewCalls().Add(call)
	data, err := PackDoCallsData(calls)
	require.NoError(t, err)

	assert.Equal(t, make([]byte, 20), data[0:20])
	assert.Equal(t, byte(0x03), data[20])
}

func TestPackDoCallsDataWithValue(t *testing.T) {
	target := common.HexToAddress("0x0000000000000000000000000000000000000002")
	call := NewCallWithValue(target, nil, big.NewInt(7))
	calls := NewCalls().Add(call)
	data, err := PackDoCallsData(calls)
	require.NoError(t, err)

	assert.Equal(t, byte(0x01), data[21])
	valueBytes := data[22:54]
	assert.Equal(t, big.NewInt(7), new(big.Int).SetBytes(valueBytes))
}

func TestCallsAddAndInsertOrder(t *testing.T) {
	a := NewInternalCall([]byte{0x01})
	b := NewInternalCall([]byte{0x02})
	calls := NewCalls().Add(a).Add(b)
	require.Equal(t, 2, calls.Len())
	assert.Same(t, a, calls.Calls[0])

	c := NewInternalCall([]byte{0x03})
	calls.Insert(c)
	require.Equal(t, 3, calls.Len())
	assert.Same(t, c, calls.Calls[0])
	assert.Same(t, a, calls.Calls[1])
}
