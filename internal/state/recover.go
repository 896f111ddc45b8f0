package state

import (
	"context"
	"fmt"

	"main/internal/codec"
	"main/internal/recorder"
	"main/internal/schema"
)

// RecoverConfig controls snapshot + WAL recovery.
type RecoverConfig struct {
	WALDir          string
	SnapshotPath    string
	FilePrefix      string
	DisableChecksum bool
	MaxPayloadSize  int
	UseRecvTime     bool
}

// RecoverResult contains recovered state and metadata.
type RecoverResult struct {
	Positions   *PositionReducer
	LastSeq     uint64
	LastEventTs int64
}

// RecoverPositions loads a snapshot and replays the WAL tail to rebuild
// per-instrument positions. Fill events carry no side, so the replay
// keeps an id-to-side index from the recorded insert and hedge commands.
func RecoverPositions(ctx context.Context, cfg RecoverConfig) (RecoverResult, error) {
	if cfg.WALDir == "" {
		return RecoverResult{}, fmt.Errorf("wal dir is empty")
	}
	positions := NewPositionReducer()
	var lastSeq uint64
	var lastEventTs int64

	if cfg.SnapshotPath != "" {
		snapshot, err := ReadSnapshot(cfg.SnapshotPath)
		if err != nil {
			return RecoverResult{}, err
		}
		positions.ApplySnapshot(snapshot)
		lastSeq = snapshot.LastSeq
		lastEventTs = snapshot.LastEventTs
	}

	playbackCfg := recorder.PlaybackConfig{
		Dir:             cfg.WALDir,
		FilePrefix:      cfg.FilePrefix,
		Speed:           0,
		UseRecvTime:     cfg.UseRecvTime,
		DisableChecksum: cfg.DisableChecksum,
		MaxPayloadSize:  cfg.MaxPayloadSize,
	}
	pb, err := recorder.NewPlayback(playbackCfg)
	if err != nil {
		return RecoverResult{}, err
	}

	sides := make(map[uint64]schema.Side)

	err = pb.Run(ctx, func(header schema.EventHeader, payload []byte) error {
		if lastSeq > 0 && header.Seq <= lastSeq {
			return nil
		}
		if lastSeq == 0 && lastEventTs > 0 {
			ts := header.TsEvent
			if cfg.UseRecvTime {
				ts = header.TsRecv
			}
			if ts <= lastEventTs {
				return nil
			}
		}
		if header.Seq > lastSeq {
			lastSeq = header.Seq
		}
		if header.TsEvent > lastEventTs {
			lastEventTs = header.TsEvent
		}

		switch header.Type {
		case schema.EventInsertCommand:
			cmd, ok := codec.DecodeInsertCommand(payload)
			if !ok {
				return fmt.Errorf("decode insert command failed")
			}
			sides[cmd.ClientOrderID] = cmd.Side
		case schema.EventHedgeCommand:
			cmd, ok := codec.DecodeHedgeCommand(payload)
			if !ok {
				return fmt.Errorf("decode hedge command failed")
			}
			sides[cmd.ClientOrderID] = cmd.Side
		case schema.EventOrderFilled:
			fill, ok := codec.DecodeOrderFilled(payload)
			if !ok {
				return fmt.Errorf("decode order filled failed")
			}
			side, ok := sides[fill.ClientOrderID]
			if !ok {
				return fmt.Errorf("fill for unknown order: %d", fill.ClientOrderID)
			}
			positions.ApplyFill(schema.InstrumentEtf, side, fill.Volume)
		case schema.EventHedgeFilled:
			fill, ok := codec.DecodeHedgeFilled(payload)
			if !ok {
				return fmt.Errorf("decode hedge filled failed")
			}
			side, ok := sides[fill.ClientOrderID]
			if !ok {
				return fmt.Errorf("hedge fill for unknown order: %d", fill.ClientOrderID)
			}
			positions.ApplyFill(schema.InstrumentFuture, side, fill.Volume)
		}
		return nil
	})
	if err != nil {
		return RecoverResult{}, err
	}

	return RecoverResult{
		Positions:   positions,
		LastSeq:     lastSeq,
		LastEventTs: lastEventTs,
	}, nil
}
