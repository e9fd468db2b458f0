package entities

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// PoolId is a tagged pool identifier. Most pools are identified by their
// contract address; protocols whose pools lack a 1:1 address (e.g. some
// Curve metapools addressed by registry index) use the opaque-bytes variant.
// Equality and use as a map key both follow the variant.
type PoolId struct {
	isBytes bool
	address common.Address
	bytes   [32]byte
}

// NewPoolIdAddress builds an address-keyed PoolId.
func NewPoolIdAddress(address common.Address) PoolId {
	return PoolId{address: address}
}

// NewPoolIdBytes builds an opaque-bytes PoolId for address-less pools.
func NewPoolIdBytes(b [32]byte) PoolId {
	return PoolId{isBytes: true, bytes: b}
}

// IsBytes reports whether this id is the opaque-bytes variant.
func (p PoolId) IsBytes() bool {
	return p.isBytes
}

// Address returns the address variant's value; zero address for the bytes variant.
func (p PoolId) Address() common.Address {
	return p.address
}

// Bytes returns the opaque-bytes variant's value.
func (p PoolId) Bytes() [32]byte {
	return p.bytes
}

func (p PoolId) String() string {
	if p.isBytes {
		return "0x" + hex.EncodeToString(p.bytes[:])
	}
	return p.address.Hex()
}

func (p PoolId) GoString() string {
	return fmt.Sprintf("PoolId(%s)", p.String())
}

// PoolClass is the closed enumeration of pool implementations the opcode
// encoders know how to dispatch on.
type PoolClass uint8

const (
	PoolClassUnknown PoolClass = iota
	PoolClassUniswapV2
	PoolClassUniswapV3
	PoolClassPancakeV3
	PoolClassMaverick
	PoolClassCurve
	PoolClassLidoWstEth
	PoolClassLidoStEth
)

func (c PoolClass) String() string {
	switch c {
	case PoolClassUniswapV2:
		return "UniswapV2"
	case PoolClassUniswapV3:
		return "UniswapV3"
	case PoolClassPancakeV3:
		return "PancakeV3"
	case PoolClassMaverick:
		return "Maverick"
	case PoolClassCurve:
		return "Curve"
	case PoolClassLidoWstEth:
		return "LidoWstEth"
	case PoolClassLidoStEth:
		return "LidoStEth"
	default:
		return "Unknown"
	}
}
