package mdg

import "main/internal/schema"

// buildBook shapes a top-two book around a mid price: best levels one
// half-spread out, second levels one tick further.
func buildBook(instrument schema.Instrument, seq uint32, mid, tick schema.Price, bestVolume, deepVolume schema.Volume) schema.BookUpdate {
	bid := mid - tick
	ask := mid + tick
	return schema.BookUpdate{
		Instrument: instrument,
		Sequence:   seq,
		BidPrices:  [schema.TopLevelCount]schema.Price{bid, bid - tick},
		BidVolumes: [schema.TopLevelCount]schema.Volume{bestVolume, deepVolume},
		AskPrices:  [schema.TopLevelCount]schema.Price{ask, ask + tick},
		AskVolumes: [schema.TopLevelCount]schema.Volume{bestVolume, deepVolume},
	}
}

// ValidateBook checks the structural invariants of a generated book.
func ValidateBook(book schema.BookUpdate) error {
	if !book.Instrument.Valid() {
		return errInvalidInstrument
	}
	if book.BidPrices[0] <= 0 || book.AskPrices[0] <= 0 {
		return errEmptyTop
	}
	if book.BidPrices[0] >= book.AskPrices[0] {
		return errCrossedBook
	}
	if book.BidPrices[1] >= book.BidPrices[0] || book.AskPrices[1] <= book.AskPrices[0] {
		return errUnsortedLevels
	}
	return nil
}
