package multicaller

import (
	"encoding/binary"
	"fmt"
)

// callTypeByte maps a CallKind to its one-byte wire tag. The mapping is an
// implementation choice (the wire format fixes only the byte widths, not
// the tag values); kept stable across calls since encoder idempotence
// requires byte-identical output for the same input.
func callTypeByte(kind CallKind) (byte, error) {
	switch kind {
	case CallKindCall:
		return 0x00, nil
	case CallKindCallWithValue:
		return 0x01, nil
	case CallKindStaticCall:
		return 0x02, nil
	case CallKindInternalCall:
		return 0x03, nil
	case CallKindCalculationCall:
		return 0x04, nil
	default:
		return 0, fmt.Errorf("pack opcode: unknown call kind %d", kind)
	}
}

const (
	bindingFlagPresent  = 0x01
	bindingFlagRelative = 0x02
)

// PackDoCallsData serializes a compiled opcode sequence into the wire
// format the on-chain multicaller interprets. Per opcode:
//
//	target            20 bytes (zero for internal/calculation opcodes)
//	call-type         1 byte
//	has_value         1 byte, then value 32 bytes if set
//	call-stack binding   1 byte flags + 4 bytes (slot:1, offset:2, len:1)
//	return-stack binding 1 byte flags + 4 bytes (slot:1, offset:2, len:1)
//	data-len          2 bytes, then call-data bytes
func PackDoCallsData(calls *MulticallerCalls) ([]byte, error) {
	var out []byte

	for i, call := range calls.Calls {
		typeByte, err := callTypeByte(call.Kind)
		if err != nil {
			return nil, fmt.Errorf("pack opcode %d: %w", i, err)
		}

		var target [20]byte
		if call.Kind != CallKindInternalCall && call.Kind != CallKindCalculationCall {
			target = call.Target
		}
		out = append(out, target[:]...)
		out = append(out, typeByte)

		if call.Value != nil {
			out = append(out, 0x01)
			var valueBytes [32]byte
			call.Value.FillBytes(valueBytes[:])
			out = append(out, valueBytes[:]...)
		} else {
			out = append(out, 0x00)
		}

		out = append(out, packBinding(call.HasCallStack, call.CallStackRelative, call.CallStackIndex, call.CallStackDataOffset, call.CallStackDataLength)...)
		out = append(out, packBinding(call.HasReturnStack, call.ReturnStackRelative, call.ReturnStackIndex, call.ReturnStackDataOffset, call.ReturnStackDataLength)...)

		if len(call.CallData) > 0xFFFF {
			return nil, fmt.Errorf("pack opcode %d: call-data too large (%d bytes)", i, len(call.CallData))
		}
		var dataLen [2]byte
		binary.BigEndian.PutUint16(dataLen[:], uint16(len(call.CallData)))
		out = append(out, dataLen[:]...)
		out = append(out, call.CallData...)
	}

	return out, nil
}

func packBinding(present, relative bool, index, offset, length uint32) []byte {
	var flags byte
	if present {
		flags |= bindingFlagPresent
	}
	if relative {
		flags |= bindingFlagRelative
	}

	buf := make([]byte, 5)
	buf[0] = flags
	buf[1] = byte(index)
	binary.BigEndian.PutUint16(buf[2:4], uint16(offset))
	buf[4] = byte(length)
	return buf
}
