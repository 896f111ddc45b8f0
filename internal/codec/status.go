package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const OrderStatusPayloadSize = 32

// EncodeOrderStatus serializes an order status into a fixed-size payload.
func EncodeOrderStatus(dst []byte, status schema.OrderStatus) []byte {
	if cap(dst) < OrderStatusPayloadSize {
		dst = make([]byte, OrderStatusPayloadSize)
	} else {
		dst = dst[:OrderStatusPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], status.ClientOrderID)
	binary.LittleEndian.PutUint64(dst[8:16], uint64(status.FillVolume))
	binary.LittleEndian.PutUint64(dst[16:24], uint64(status.RemainingVolume))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(status.Fees))

	return dst
}

// DecodeOrderStatus parses a fixed-size order status payload.
func DecodeOrderStatus(src []byte) (schema.OrderStatus, bool) {
	if len(src) < OrderStatusPayloadSize {
		return schema.OrderStatus{}, false
	}
	return schema.OrderStatus{
		ClientOrderID:   binary.LittleEndian.Uint64(src[0:8]),
		FillVolume:      schema.Volume(int64(binary.LittleEndian.Uint64(src[8:16]))),
		RemainingVolume: schema.Volume(int64(binary.LittleEndian.Uint64(src[16:24]))),
		Fees:            schema.Fee(int64(binary.LittleEndian.Uint64(src[24:32]))),
	}, true
}
