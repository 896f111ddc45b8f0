package archive

import (
	"time"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/schema"
	"main/pkg/conn"
)

const defaultBatchSize = 128

// FillRecord is one executed quote fill.
type FillRecord struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	ClientOrderID uint64 `gorm:"index"`
	Instrument    string
	Side          string
	Price         int64
	PriceDisplay  string
	Volume        int64
	RecordedAt    int64
}

// HedgeRecord is one executed hedge fill.
type HedgeRecord struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	ClientOrderID uint64 `gorm:"index"`
	Instrument    string
	Side          string
	Price         int64
	PriceDisplay  string
	Volume        int64
	RecordedAt    int64
}

// Config controls the archive sink.
type Config struct {
	DSN       string
	BatchSize int
}

// Archive batches executed fills and hedges into Postgres. It sits
// entirely off the hot path: callers hand over events and the batch is
// flushed on size or on Close.
type Archive struct {
	client   *conn.Client
	registry *schema.Registry
	batch    int

	fills  []FillRecord
	hedges []HedgeRecord
}

// Open connects to Postgres and migrates the archive tables.
func Open(cfg Config, registry *schema.Registry) (*Archive, error) {
	if cfg.DSN == "" {
		return nil, errors.New("archive dsn is empty")
	}
	client, err := conn.New(conn.Option{ConnString: cfg.DSN})
	if err != nil {
		return nil, errors.Wrap(err, "open archive database")
	}
	if err := client.AutoMigrate(&FillRecord{}, &HedgeRecord{}); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "migrate archive tables")
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	logs.Infof("archive connected, batch size %d", batch)
	return &Archive{client: client, registry: registry, batch: batch}, nil
}

// AddFill buffers an executed quote fill.
func (a *Archive) AddFill(fill schema.OrderFilled, side schema.Side) error {
	if a == nil {
		return nil
	}
	a.fills = append(a.fills, FillRecord{
		ClientOrderID: fill.ClientOrderID,
		Instrument:    a.instrumentName(schema.InstrumentEtf),
		Side:          side.String(),
		Price:         int64(fill.Price),
		PriceDisplay:  a.displayPrice(schema.InstrumentEtf, fill.Price),
		Volume:        int64(fill.Volume),
		RecordedAt:    time.Now().UTC().UnixNano(),
	})
	return a.maybeFlush()
}

// AddHedge buffers an executed hedge fill.
func (a *Archive) AddHedge(fill schema.HedgeFilled, side schema.Side) error {
	if a == nil {
		return nil
	}
	a.hedges = append(a.hedges, HedgeRecord{
		ClientOrderID: fill.ClientOrderID,
		Instrument:    a.instrumentName(schema.InstrumentFuture),
		Side:          side.String(),
		Price:         int64(fill.Price),
		PriceDisplay:  a.displayPrice(schema.InstrumentFuture, fill.Price),
		Volume:        int64(fill.Volume),
		RecordedAt:    time.Now().UTC().UnixNano(),
	})
	return a.maybeFlush()
}

// Flush writes all buffered records.
func (a *Archive) Flush() error {
	if a == nil {
		return nil
	}
	if len(a.fills) > 0 {
		if err := a.client.DB().CreateInBatches(a.fills, a.batch).Error; err != nil {
			return errors.Wrap(err, "flush fills")
		}
		a.fills = a.fills[:0]
	}
	if len(a.hedges) > 0 {
		if err := a.client.DB().CreateInBatches(a.hedges, a.batch).Error; err != nil {
			return errors.Wrap(err, "flush hedges")
		}
		a.hedges = a.hedges[:0]
	}
	return nil
}

// Close flushes pending records and closes the connection.
func (a *Archive) Close() error {
	if a == nil {
		return nil
	}
	if err := a.Flush(); err != nil {
		logs.Errorf("archive final flush failed: %v", err)
	}
	return a.client.Close()
}

func (a *Archive) maybeFlush() error {
	if len(a.fills)+len(a.hedges) >= a.batch {
		return a.Flush()
	}
	return nil
}

func (a *Archive) instrumentName(inst schema.Instrument) string {
	if a.registry != nil {
		if info, ok := a.registry.Info(inst); ok {
			return info.Name
		}
	}
	return inst.String()
}

func (a *Archive) displayPrice(inst schema.Instrument, price schema.Price) string {
	scale := 0
	if a.registry != nil {
		if info, ok := a.registry.Info(inst); ok {
			scale = int(info.Scale.PriceScale)
		}
	}
	return string(price.AppendString(scale, nil))
}
