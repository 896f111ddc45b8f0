package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

// ErrorNoticeHeaderSize is the fixed prefix before the message bytes.
const ErrorNoticeHeaderSize = 10

// EncodeErrorNotice serializes an error notice. The message is truncated
// to 64 KiB, the wire limit of the length field.
func EncodeErrorNotice(dst []byte, notice schema.ErrorNotice) []byte {
	msg := notice.Message
	if len(msg) > int(^uint16(0)) {
		msg = msg[:int(^uint16(0))]
	}
	size := ErrorNoticeHeaderSize + len(msg)
	if cap(dst) < size {
		dst = make([]byte, size)
	} else {
		dst = dst[:size]
	}

	binary.LittleEndian.PutUint64(dst[0:8], notice.ClientOrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(len(msg)))
	copy(dst[ErrorNoticeHeaderSize:], msg)

	return dst
}

// DecodeErrorNotice parses an error notice payload.
func DecodeErrorNotice(src []byte) (schema.ErrorNotice, bool) {
	if len(src) < ErrorNoticeHeaderSize {
		return schema.ErrorNotice{}, false
	}
	msgLen := int(binary.LittleEndian.Uint16(src[8:10]))
	if len(src) < ErrorNoticeHeaderSize+msgLen {
		return schema.ErrorNotice{}, false
	}
	return schema.ErrorNotice{
		ClientOrderID: binary.LittleEndian.Uint64(src[0:8]),
		Message:       string(src[ErrorNoticeHeaderSize : ErrorNoticeHeaderSize+msgLen]),
	}, true
}
