package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const BookUpdatePayloadSize = 72

// EncodeBookUpdate serializes a book update into a fixed-size payload.
func EncodeBookUpdate(dst []byte, book schema.BookUpdate) []byte {
	if cap(dst) < BookUpdatePayloadSize {
		dst = make([]byte, BookUpdatePayloadSize)
	} else {
		dst = dst[:BookUpdatePayloadSize]
	}

	binary.LittleEndian.PutUint16(dst[0:2], uint16(book.Instrument))
	binary.LittleEndian.PutUint16(dst[2:4], 0)
	binary.LittleEndian.PutUint32(dst[4:8], book.Sequence)
	for i := 0; i < schema.TopLevelCount; i++ {
		binary.LittleEndian.PutUint64(dst[8+i*8:16+i*8], uint64(book.AskPrices[i]))
		binary.LittleEndian.PutUint64(dst[24+i*8:32+i*8], uint64(book.AskVolumes[i]))
		binary.LittleEndian.PutUint64(dst[40+i*8:48+i*8], uint64(book.BidPrices[i]))
		binary.LittleEndian.PutUint64(dst[56+i*8:64+i*8], uint64(book.BidVolumes[i]))
	}

	return dst
}

// DecodeBookUpdate parses a fixed-size book update payload.
func DecodeBookUpdate(src []byte) (schema.BookUpdate, bool) {
	if len(src) < BookUpdatePayloadSize {
		return schema.BookUpdate{}, false
	}
	book := schema.BookUpdate{
		Instrument: schema.Instrument(binary.LittleEndian.Uint16(src[0:2])),
		Sequence:   binary.LittleEndian.Uint32(src[4:8]),
	}
	for i := 0; i < schema.TopLevelCount; i++ {
		book.AskPrices[i] = schema.Price(int64(binary.LittleEndian.Uint64(src[8+i*8 : 16+i*8])))
		book.AskVolumes[i] = schema.Volume(int64(binary.LittleEndian.Uint64(src[24+i*8 : 32+i*8])))
		book.BidPrices[i] = schema.Price(int64(binary.LittleEndian.Uint64(src[40+i*8 : 48+i*8])))
		book.BidVolumes[i] = schema.Volume(int64(binary.LittleEndian.Uint64(src[56+i*8 : 64+i*8])))
	}
	return book, true
}

// TradeTicksPayloadSize matches the book update layout.
const TradeTicksPayloadSize = BookUpdatePayloadSize

// EncodeTradeTicks serializes trade ticks into a fixed-size payload.
func EncodeTradeTicks(dst []byte, ticks schema.TradeTicks) []byte {
	return EncodeBookUpdate(dst, schema.BookUpdate(ticks))
}

// DecodeTradeTicks parses a fixed-size trade ticks payload.
func DecodeTradeTicks(src []byte) (schema.TradeTicks, bool) {
	book, ok := DecodeBookUpdate(src)
	return schema.TradeTicks(book), ok
}
