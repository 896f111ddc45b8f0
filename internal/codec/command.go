package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const (
	InsertCommandPayloadSize = 32
	CancelCommandPayloadSize = 8
	HedgeCommandPayloadSize  = 32
)

// EncodeInsertCommand serializes an insert command into a fixed-size payload.
func EncodeInsertCommand(dst []byte, cmd schema.InsertCommand) []byte {
	if cap(dst) < InsertCommandPayloadSize {
		dst = make([]byte, InsertCommandPayloadSize)
	} else {
		dst = dst[:InsertCommandPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], cmd.ClientOrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(cmd.Side))
	binary.LittleEndian.PutUint16(dst[10:12], uint16(cmd.Lifespan))
	binary.LittleEndian.PutUint32(dst[12:16], 0)
	binary.LittleEndian.PutUint64(dst[16:24], uint64(cmd.Price))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(cmd.Volume))

	return dst
}

// DecodeInsertCommand parses a fixed-size insert command payload.
func DecodeInsertCommand(src []byte) (schema.InsertCommand, bool) {
	if len(src) < InsertCommandPayloadSize {
		return schema.InsertCommand{}, false
	}
	return schema.InsertCommand{
		ClientOrderID: binary.LittleEndian.Uint64(src[0:8]),
		Side:          schema.Side(binary.LittleEndian.Uint16(src[8:10])),
		Lifespan:      schema.Lifespan(binary.LittleEndian.Uint16(src[10:12])),
		Price:         schema.Price(int64(binary.LittleEndian.Uint64(src[16:24]))),
		Volume:        schema.Volume(int64(binary.LittleEndian.Uint64(src[24:32]))),
	}, true
}

// EncodeCancelCommand serializes a cancel command into a fixed-size payload.
func EncodeCancelCommand(dst []byte, cmd schema.CancelCommand) []byte {
	if cap(dst) < CancelCommandPayloadSize {
		dst = make([]byte, CancelCommandPayloadSize)
	} else {
		dst = dst[:CancelCommandPayloadSize]
	}
	binary.LittleEndian.PutUint64(dst[0:8], cmd.ClientOrderID)
	return dst
}

// DecodeCancelCommand parses a fixed-size cancel command payload.
func DecodeCancelCommand(src []byte) (schema.CancelCommand, bool) {
	if len(src) < CancelCommandPayloadSize {
		return schema.CancelCommand{}, false
	}
	return schema.CancelCommand{ClientOrderID: binary.LittleEndian.Uint64(src[0:8])}, true
}

// EncodeHedgeCommand serializes a hedge command into a fixed-size payload.
func EncodeHedgeCommand(dst []byte, cmd schema.HedgeCommand) []byte {
	if cap(dst) < HedgeCommandPayloadSize {
		dst = make([]byte, HedgeCommandPayloadSize)
	} else {
		dst = dst[:HedgeCommandPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], cmd.ClientOrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(cmd.Side))
	binary.LittleEndian.PutUint16(dst[10:12], 0)
	binary.LittleEndian.PutUint32(dst[12:16], 0)
	binary.LittleEndian.PutUint64(dst[16:24], uint64(cmd.Price))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(cmd.Volume))

	return dst
}

// DecodeHedgeCommand parses a fixed-size hedge command payload.
func DecodeHedgeCommand(src []byte) (schema.HedgeCommand, bool) {
	if len(src) < HedgeCommandPayloadSize {
		return schema.HedgeCommand{}, false
	}
	return schema.HedgeCommand{
		ClientOrderID: binary.LittleEndian.Uint64(src[0:8]),
		Side:          schema.Side(binary.LittleEndian.Uint16(src[8:10])),
		Price:         schema.Price(int64(binary.LittleEndian.Uint64(src[16:24]))),
		Volume:        schema.Volume(int64(binary.LittleEndian.Uint64(src[24:32]))),
	}, true
}
