package state

import "main/internal/schema"

// PositionReducer tracks net inventory per instrument from fill events.
type PositionReducer struct {
	positions map[schema.Instrument]schema.Volume
}

// NewPositionReducer creates an empty reducer.
func NewPositionReducer() *PositionReducer {
	return &PositionReducer{positions: make(map[schema.Instrument]schema.Volume, schema.InstrumentCount)}
}

// ApplyFill updates the instrument's position and returns the new value.
func (r *PositionReducer) ApplyFill(instrument schema.Instrument, side schema.Side, volume schema.Volume) schema.Volume {
	current := r.positions[instrument]
	var next schema.Volume
	switch side {
	case schema.SideBuy:
		next = current + volume
	case schema.SideSell:
		next = current - volume
	default:
		next = current
	}
	r.positions[instrument] = next
	return next
}

// ApplySnapshot replaces positions with a snapshot.
func (r *PositionReducer) ApplySnapshot(snapshot Snapshot) {
	if r.positions == nil {
		r.positions = make(map[schema.Instrument]schema.Volume, len(snapshot.Positions))
	} else {
		for key := range r.positions {
			delete(r.positions, key)
		}
	}
	for _, entry := range snapshot.Positions {
		r.positions[entry.Instrument] = entry.Volume
	}
}

// Position returns the current net volume for an instrument.
func (r *PositionReducer) Position(instrument schema.Instrument) schema.Volume {
	return r.positions[instrument]
}

// Count returns the number of instruments with a recorded position.
func (r *PositionReducer) Count() int {
	return len(r.positions)
}
