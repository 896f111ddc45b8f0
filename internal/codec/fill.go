package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const (
	OrderFilledPayloadSize = 24
	HedgeFilledPayloadSize = 24
)

// EncodeOrderFilled serializes a fill notification into a fixed-size payload.
func EncodeOrderFilled(dst []byte, fill schema.OrderFilled) []byte {
	if cap(dst) < OrderFilledPayloadSize {
		dst = make([]byte, OrderFilledPayloadSize)
	} else {
		dst = dst[:OrderFilledPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], fill.ClientOrderID)
	binary.LittleEndian.PutUint64(dst[8:16], uint64(fill.Price))
	binary.LittleEndian.PutUint64(dst[16:24], uint64(fill.Volume))

	return dst
}

// DecodeOrderFilled parses a fixed-size fill payload.
func DecodeOrderFilled(src []byte) (schema.OrderFilled, bool) {
	if len(src) < OrderFilledPayloadSize {
		return schema.OrderFilled{}, false
	}
	return schema.OrderFilled{
		ClientOrderID: binary.LittleEndian.Uint64(src[0:8]),
		Price:         schema.Price(int64(binary.LittleEndian.Uint64(src[8:16]))),
		Volume:        schema.Volume(int64(binary.LittleEndian.Uint64(src[16:24]))),
	}, true
}

// EncodeHedgeFilled serializes a hedge fill into a fixed-size payload.
func EncodeHedgeFilled(dst []byte, fill schema.HedgeFilled) []byte {
	return EncodeOrderFilled(dst, schema.OrderFilled(fill))
}

// DecodeHedgeFilled parses a fixed-size hedge fill payload.
func DecodeHedgeFilled(src []byte) (schema.HedgeFilled, bool) {
	fill, ok := DecodeOrderFilled(src)
	return schema.HedgeFilled(fill), ok
}
