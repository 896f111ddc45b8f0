package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const AuditDecisionPayloadSize = 48

// EncodeAuditDecision serializes an audit decision into a fixed-size payload.
func EncodeAuditDecision(dst []byte, decision schema.AuditDecision) []byte {
	if cap(dst) < AuditDecisionPayloadSize {
		dst = make([]byte, AuditDecisionPayloadSize)
	} else {
		dst = dst[:AuditDecisionPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], decision.OrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(decision.Action))
	binary.LittleEndian.PutUint16(dst[10:12], uint16(decision.Reason))
	binary.LittleEndian.PutUint16(dst[12:14], decision.Flags)
	binary.LittleEndian.PutUint16(dst[14:16], 0)
	binary.LittleEndian.PutUint64(dst[16:24], uint64(decision.Price))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(decision.Volume))
	binary.LittleEndian.PutUint64(dst[32:40], uint64(decision.Position))
	binary.LittleEndian.PutUint32(dst[40:44], decision.OpenOrders)
	binary.LittleEndian.PutUint32(dst[44:48], 0)

	return dst
}

// DecodeAuditDecision parses a fixed-size audit decision payload.
func DecodeAuditDecision(src []byte) (schema.AuditDecision, bool) {
	if len(src) < AuditDecisionPayloadSize {
		return schema.AuditDecision{}, false
	}
	return schema.AuditDecision{
		OrderID:    binary.LittleEndian.Uint64(src[0:8]),
		Action:     schema.AuditAction(binary.LittleEndian.Uint16(src[8:10])),
		Reason:     schema.AuditReason(binary.LittleEndian.Uint16(src[10:12])),
		Flags:      binary.LittleEndian.Uint16(src[12:14]),
		Price:      schema.Price(int64(binary.LittleEndian.Uint64(src[16:24]))),
		Volume:     schema.Volume(int64(binary.LittleEndian.Uint64(src[24:32]))),
		Position:   schema.Volume(int64(binary.LittleEndian.Uint64(src[32:40]))),
		OpenOrders: binary.LittleEndian.Uint32(src[40:44]),
	}, true
}
