package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/pkg/sys"

	"main/internal/archive"
	"main/internal/bus"
	"main/internal/chaos"
	"main/internal/codec"
	"main/internal/mdg"
	"main/internal/obs"
	"main/internal/og"
	"main/internal/ops"
	"main/internal/quoter"
	"main/internal/recorder"
	"main/internal/risk"
	"main/internal/schema"
	"main/internal/state"
)

type runtimeConfig struct {
	v atomic.Value
}

func newRuntimeConfig(loaded ops.Loaded) *runtimeConfig {
	var rc runtimeConfig
	rc.v.Store(loaded)
	return &rc
}

func (r *runtimeConfig) Load() ops.Loaded {
	return r.v.Load().(ops.Loaded)
}

func (r *runtimeConfig) Update(loaded ops.Loaded) {
	r.v.Store(loaded)
}

func main() {
	walDir := flag.String("wal-dir", "testdata/wal", "WAL directory for recording")
	configPath := flag.String("config", "", "Path to JSON config")
	configReload := flag.Duration("config-reload-interval", 2*time.Second, "Config reload interval (0=disable)")
	ticks := flag.Int("ticks", 512, "Number of feed events to generate in record mode")
	tickInterval := flag.Duration("tick-interval", 0, "Delay between feed events in record mode")
	feedSeed := flag.Int64("feed-seed", 42, "Seed for the synthetic feed")
	snapshotPath := flag.String("snapshot-path", "", "Position snapshot output (default: <wal-dir>/positions.json)")
	recoverEnabled := flag.Bool("recover", false, "Recover positions from snapshot + WAL")
	recoverSnapshot := flag.String("recover-snapshot", "", "Snapshot path for recovery (default: <wal-dir>/positions.json)")
	recoverPrefix := flag.String("recover-prefix", "", "WAL file prefix for recovery (default: wal)")
	recoverNoChecksum := flag.Bool("recover-no-checksum", false, "Disable checksum validation for recovery")
	recoverMaxPayload := flag.Int("recover-max-payload", 0, "Max payload size in bytes for recovery (0=unlimited)")

	chaosEnabled := flag.Bool("chaos", false, "Inject faults into the simulated feed")
	chaosSeed := flag.Int64("chaos-seed", 0, "Chaos seed (0=time-based)")
	chaosDrop := flag.Float64("chaos-drop", 0.01, "Feed drop rate")
	chaosDuplicate := flag.Float64("chaos-duplicate", 0.01, "Feed duplicate rate")
	chaosReorder := flag.Int("chaos-reorder", 1, "Feed reorder window (1=off)")
	chaosDelay := flag.Duration("chaos-delay", 0, "Max artificial receive delay")

	pyroscopeServer := flag.String("pyroscope-server", "", "Pyroscope server address (empty=disabled)")

	replayDir := flag.String("replay-dir", "", "WAL directory for replay mode")
	replayPrefix := flag.String("replay-prefix", "", "WAL file prefix (default: wal)")
	replaySpeed := flag.Float64("replay-speed", 0, "Playback speed (1=real-time, 0=no pacing)")
	replayUseRecv := flag.Bool("replay-use-recv-time", false, "Use receive timestamp for pacing")
	replayNoChecksum := flag.Bool("replay-no-checksum", false, "Disable checksum validation")
	replayMaxPayload := flag.Int("replay-max-payload", 0, "Max payload size in bytes (0=unlimited)")
	replaySnapshot := flag.String("replay-snapshot", "", "Snapshot path for replay verification (default: <replay-dir>/positions.json)")
	replayVerifySnapshot := flag.Bool("replay-verify-snapshot", true, "Verify positions against snapshot after replay")
	flag.Parse()

	ctx := context.Background()
	if *replayDir != "" {
		cfg := recorder.PlaybackConfig{
			Dir:             *replayDir,
			FilePrefix:      *replayPrefix,
			Speed:           *replaySpeed,
			UseRecvTime:     *replayUseRecv,
			DisableChecksum: *replayNoChecksum,
			MaxPayloadSize:  *replayMaxPayload,
		}
		snapshotIn := resolveSnapshotPath(*replayDir, *replaySnapshot)
		if err := runReplay(ctx, cfg, snapshotIn, *replayVerifySnapshot); err != nil {
			log.Fatalf("replay failed: %v", err)
		}
		return
	}

	if *pyroscopeServer != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "trader",
			ServerAddress:   *pyroscopeServer,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	loaded, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	runtime := newRuntimeConfig(loaded)
	if *configPath != "" && *configReload > 0 {
		go watchConfig(ctx, *configPath, *configReload, runtime.Update)
	}

	var chaosCfg *chaos.Config
	if *chaosEnabled {
		chaosCfg = &chaos.Config{
			Seed:          *chaosSeed,
			DropRate:      *chaosDrop,
			DuplicateRate: *chaosDuplicate,
			ReorderWindow: *chaosReorder,
			MaxDelay:      *chaosDelay,
		}
	}

	snapshotOut := resolveSnapshotPath(*walDir, *snapshotPath)
	var recoverCfg *state.RecoverConfig
	if *recoverEnabled {
		recoverPath := resolveSnapshotPath(*walDir, *recoverSnapshot)
		recoverCfg = &state.RecoverConfig{
			WALDir:          *walDir,
			SnapshotPath:    recoverPath,
			FilePrefix:      *recoverPrefix,
			DisableChecksum: *recoverNoChecksum,
			MaxPayloadSize:  *recoverMaxPayload,
		}
	}
	if err := runRecord(ctx, *walDir, runtime, *ticks, *tickInterval, *feedSeed, chaosCfg, snapshotOut, recoverCfg); err != nil {
		log.Fatalf("record failed: %v", err)
	}
}

// publisher assigns sequence numbers and feeds the recording queue.
type publisher struct {
	queue    *bus.Queue
	metrics  *obs.Metrics
	traceGen *obs.TraceGenerator
	seq      uint64
	lastTs   int64
}

func (p *publisher) publish(eventType schema.EventType, source uint16, tsEvent, tsRecv int64, payload []byte) error {
	p.seq++
	p.lastTs = tsEvent
	header := schema.NewHeader(eventType, source, p.seq, tsEvent, tsRecv)
	header.TraceID = p.traceGen.Next()
	err := p.queue.TryPublish(bus.Event{Header: header, Payload: payload})
	if err != nil {
		if errors.Is(err, bus.ErrQueueFull) {
			p.metrics.IncQueueDrop()
		} else if errors.Is(err, bus.ErrQueueClosed) {
			p.metrics.IncQueueClosed()
		}
		return err
	}
	p.metrics.ObserveEvent(header)
	return nil
}

// recordingSink receives the engine's commands, journals them, audits
// inserts and collects commands for fill simulation.
type recordingSink struct {
	pub      *publisher
	auditor  *risk.Auditor
	engine   *quoter.Engine
	features ops.FeatureFlags

	inserts []schema.InsertCommand
	hedges  []schema.HedgeCommand
}

func (s *recordingSink) InsertOrder(cmd schema.InsertCommand) error {
	now := time.Now().UTC().UnixNano()
	if err := s.pub.publish(schema.EventInsertCommand, schema.SourceStrategy, now, now, codec.EncodeInsertCommand(nil, cmd)); err != nil {
		return err
	}
	s.audit(cmd)
	if s.features.SimulateFills {
		s.inserts = append(s.inserts, cmd)
	}
	return nil
}

func (s *recordingSink) CancelOrder(cmd schema.CancelCommand) error {
	now := time.Now().UTC().UnixNano()
	return s.pub.publish(schema.EventCancelCommand, schema.SourceStrategy, now, now, codec.EncodeCancelCommand(nil, cmd))
}

func (s *recordingSink) HedgeOrder(cmd schema.HedgeCommand) error {
	if !s.features.EnableHedging {
		return nil
	}
	now := time.Now().UTC().UnixNano()
	if err := s.pub.publish(schema.EventHedgeCommand, schema.SourceStrategy, now, now, codec.EncodeHedgeCommand(nil, cmd)); err != nil {
		return err
	}
	if s.features.SimulateFills {
		s.hedges = append(s.hedges, cmd)
	}
	return nil
}

func (s *recordingSink) audit(cmd schema.InsertCommand) {
	if s.auditor == nil || s.engine == nil {
		return
	}
	start := time.Now()
	decision := s.auditor.Review(cmd, risk.View{
		Position: s.engine.Position(),
		OpenBids: s.engine.OpenBids(),
		OpenAsks: s.engine.OpenAsks(),
	})
	s.pub.metrics.ObserveAudit(time.Since(start))
	s.pub.metrics.IncAuditReason(decision.Reason)
	if decision.Action == schema.AuditActionFlag {
		log.Printf("audit flagged order=%d reason=%d", decision.OrderID, decision.Reason)
	}
	now := time.Now().UTC().UnixNano()
	_ = s.pub.publish(schema.EventAuditDecision, schema.SourceAudit, now, now, codec.EncodeAuditDecision(nil, decision))
}

func runRecord(ctx context.Context, dir string, runtime *runtimeConfig, ticks int, tickInterval time.Duration, feedSeed int64, chaosCfg *chaos.Config, snapshotPath string, recoverCfg *state.RecoverConfig) error {
	if ticks <= 0 {
		return fmt.Errorf("ticks must be > 0")
	}
	w, err := recorder.NewWriter(recorder.DefaultConfig(dir))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}

	queue := bus.NewQueue(4096)
	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		queue.Run(ctx, func(e bus.Event) {
			if err := w.TryAppend(e.Header, e.Payload); err != nil {
				select {
				case errCh <- err:
				default:
				}
			}
		})
	}()

	metrics := obs.NewMetrics()
	pub := &publisher{
		queue:    queue,
		metrics:  metrics,
		traceGen: obs.NewTraceGenerator(0),
	}

	positions := state.NewPositionReducer()
	if recoverCfg != nil {
		recovered, err := state.RecoverPositions(ctx, *recoverCfg)
		if err != nil {
			return err
		}
		positions = recovered.Positions
		pub.seq = recovered.LastSeq
		pub.lastTs = recovered.LastEventTs
		log.Printf("recovered positions=%d last_seq=%d", positions.Count(), pub.seq)
	}

	loaded := runtime.Load()
	auditor := risk.NewAuditor(loaded.Audit)
	auditCfg := loaded.Audit

	sink := &recordingSink{pub: pub, auditor: auditor, features: loaded.Features}
	gateway := og.NewGateway(og.GatewayConfig{
		Session:           "SIM",
		ResendOnReconnect: loaded.Features.ResendOnReconnect,
	}, sink)
	engine, err := quoter.NewEngine(loaded.Strategy, gateway)
	if err != nil {
		return err
	}
	sink.engine = engine

	var store *archive.Archive
	if loaded.Archive.DSN != "" {
		store, err = archive.Open(archive.Config{
			DSN:       loaded.Archive.DSN,
			BatchSize: loaded.Archive.BatchSize,
		}, loaded.Registry)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("archive close failed: %v", err)
			}
		}()
	}

	gen, err := mdg.NewGenerator(feedConfig(loaded.Strategy, feedSeed))
	if err != nil {
		return err
	}
	var injector *chaos.Engine
	if chaosCfg != nil {
		injector, err = chaos.NewEngine(*chaosCfg)
		if err != nil {
			return err
		}
	}

	sim := &fillSimulator{pub: pub, sink: sink, gateway: gateway, engine: engine, positions: positions, store: store}

feed:
	for i := 0; i < ticks; i++ {
		select {
		case <-sys.Shutdown():
			log.Printf("shutdown requested after %d feed events", i)
			break feed
		case <-ctx.Done():
			break feed
		default:
		}

		loaded = runtime.Load()
		if loaded.Audit != auditCfg {
			auditor = risk.NewAuditor(loaded.Audit)
			auditCfg = loaded.Audit
			sink.auditor = auditor
			log.Printf("audit limits reloaded")
		}
		sink.features = loaded.Features

		ev := gen.Next(time.Now().UTC())
		out := []mdg.Event{ev}
		if injector != nil {
			out = injector.Process(ev)
		}
		for _, ev := range out {
			if err := handleFeedEvent(pub, engine, metrics, loaded.Features, ev); err != nil {
				return err
			}
			if err := sim.drain(); err != nil {
				return err
			}
		}
		if tickInterval > 0 && i < ticks-1 {
			time.Sleep(tickInterval)
		}
	}

	if injector != nil {
		for _, ev := range injector.Flush() {
			if err := handleFeedEvent(pub, engine, metrics, loaded.Features, ev); err != nil {
				return err
			}
			if err := sim.drain(); err != nil {
				return err
			}
		}
		stats := injector.Stats()
		log.Printf("chaos: dropped=%d duplicated=%d delayed=%d", stats.Dropped, stats.Duplicated, stats.Delayed)
	}

	queue.Close()
	wg.Wait()

	var appendErr error
	select {
	case appendErr = <-errCh:
	default:
	}

	if err := w.Close(); err != nil {
		return err
	}
	if appendErr != nil {
		return appendErr
	}
	if snapshotPath != "" {
		snapshot := positions.SnapshotWithMeta(pub.seq, pub.lastTs)
		if err := state.WriteSnapshot(snapshotPath, snapshot); err != nil {
			return err
		}
	}
	if dropped := gateway.Dropped(); dropped > 0 {
		log.Printf("gateway dropped %d commands, first error: %v", dropped, gateway.Err())
	}
	snapshot := metrics.Snapshot()
	log.Printf("metrics: events=%v audit_reasons=%v drops=%d closed=%d decision=%+v audit=%+v event_latency=%+v",
		snapshot.EventCounts, snapshot.AuditReasonCounts, snapshot.QueueDrops, snapshot.QueueClosed,
		snapshot.DecisionLatency, snapshot.AuditLatency, snapshot.EventLatency)
	log.Printf("final: position=%d open_bids=%d open_asks=%d last_order_id=%d",
		engine.Position(), engine.OpenBids(), engine.OpenAsks(), engine.LastOrderID())
	return nil
}

// feedConfig shapes the synthetic feed so the basis regularly crosses
// the profitability margin in both directions.
func feedConfig(strategy quoter.Config, seed int64) mdg.Config {
	cfg := mdg.DefaultConfig(seed)
	cfg.TickSize = strategy.TickSize
	cfg.BasePrice = strategy.TickSize * 100
	cfg.MaxBasisTicks = strategy.MinProfitability + 2
	return cfg
}

func handleFeedEvent(pub *publisher, engine *quoter.Engine, metrics *obs.Metrics, features ops.FeatureFlags, ev mdg.Event) error {
	switch ev.Header.Type {
	case schema.EventBookUpdate:
		if err := pub.publish(schema.EventBookUpdate, schema.SourceFeed, ev.Header.TsEvent, ev.Header.TsRecv, codec.EncodeBookUpdate(nil, ev.Book)); err != nil {
			return err
		}
		if features.EnableQuoting {
			start := time.Now()
			engine.OnBookUpdate(ev.Book)
			metrics.ObserveDecision(time.Since(start))
		}
	case schema.EventTradeTicks:
		if err := pub.publish(schema.EventTradeTicks, schema.SourceFeed, ev.Header.TsEvent, ev.Header.TsRecv, codec.EncodeTradeTicks(nil, ev.Ticks)); err != nil {
			return err
		}
		if features.EnableQuoting {
			engine.OnTradeTicks(ev.Ticks)
		}
	}
	return nil
}

// fillSimulator fills every journaled quote at its limit price and
// completes the resulting hedges, so one process exercises the full
// fill/hedge/cancel loop without an exchange.
type fillSimulator struct {
	pub       *publisher
	sink      *recordingSink
	gateway   *og.Gateway
	engine    *quoter.Engine
	positions *state.PositionReducer
	store     *archive.Archive
}

func (s *fillSimulator) drain() error {
	for len(s.sink.inserts) > 0 || len(s.sink.hedges) > 0 {
		inserts := s.sink.inserts
		hedges := s.sink.hedges
		s.sink.inserts = nil
		s.sink.hedges = nil
		for _, cmd := range inserts {
			if err := s.fillQuote(cmd); err != nil {
				return err
			}
		}
		for _, cmd := range hedges {
			if err := s.fillHedge(cmd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *fillSimulator) fillQuote(cmd schema.InsertCommand) error {
	fill := schema.OrderFilled{
		ClientOrderID: cmd.ClientOrderID,
		Price:         cmd.Price,
		Volume:        cmd.Volume,
	}
	now := time.Now().UTC().UnixNano()
	if err := s.pub.publish(schema.EventOrderFilled, schema.SourceGateway, now, now, codec.EncodeOrderFilled(nil, fill)); err != nil {
		return err
	}
	// The engine reacts first so its cancel lands before the order
	// resolves to a terminal state in the gateway.
	s.engine.OnOrderFilled(fill)
	if err := s.gateway.OnFilled(fill); err != nil && !errors.Is(err, og.ErrInvalidTransition) {
		return err
	}
	s.positions.ApplyFill(schema.InstrumentEtf, cmd.Side, cmd.Volume)
	if err := s.store.AddFill(fill, cmd.Side); err != nil {
		return err
	}

	status := schema.OrderStatus{
		ClientOrderID:   cmd.ClientOrderID,
		FillVolume:      cmd.Volume,
		RemainingVolume: 0,
	}
	now = time.Now().UTC().UnixNano()
	if err := s.pub.publish(schema.EventOrderStatus, schema.SourceGateway, now, now, codec.EncodeOrderStatus(nil, status)); err != nil {
		return err
	}
	if err := s.gateway.OnStatus(status); err != nil && !errors.Is(err, og.ErrInvalidTransition) {
		return err
	}
	s.engine.OnOrderStatus(status)
	return nil
}

func (s *fillSimulator) fillHedge(cmd schema.HedgeCommand) error {
	fill := schema.HedgeFilled{
		ClientOrderID: cmd.ClientOrderID,
		Price:         cmd.Price,
		Volume:        cmd.Volume,
	}
	now := time.Now().UTC().UnixNano()
	if err := s.pub.publish(schema.EventHedgeFilled, schema.SourceGateway, now, now, codec.EncodeHedgeFilled(nil, fill)); err != nil {
		return err
	}
	s.engine.OnHedgeFilled(fill)
	if err := s.gateway.OnFilled(schema.OrderFilled(fill)); err != nil && !errors.Is(err, og.ErrInvalidTransition) {
		return err
	}
	s.positions.ApplyFill(schema.InstrumentFuture, cmd.Side, cmd.Volume)
	return s.store.AddHedge(fill, cmd.Side)
}

func runReplay(ctx context.Context, cfg recorder.PlaybackConfig, snapshotPath string, verifySnapshot bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := bus.NewQueue(4096)
	errCh := make(chan error, 1)
	var wg sync.WaitGroup
	counts := make(map[schema.EventType]int)
	total := 0
	orders := og.NewStateMachine()
	positions := state.NewPositionReducer()

	wg.Add(1)
	go func() {
		defer wg.Done()
		queue.Run(ctx, func(e bus.Event) {
			total++
			counts[e.Header.Type]++
			if err := applyReplayEvent(orders, positions, e); err != nil {
				select {
				case errCh <- err:
				default:
				}
				cancel()
			}
		})
	}()

	pb, err := recorder.NewPlayback(cfg)
	if err != nil {
		return err
	}
	err = pb.Run(ctx, func(header schema.EventHeader, payload []byte) error {
		var copied []byte
		if len(payload) > 0 {
			copied = make([]byte, len(payload))
			copy(copied, payload)
		}
		return queue.TryPublish(bus.Event{Header: header, Payload: copied})
	})

	queue.Close()
	wg.Wait()

	if err != nil {
		return err
	}
	var applyErr error
	select {
	case applyErr = <-errCh:
	default:
	}
	if applyErr != nil {
		return applyErr
	}
	if verifySnapshot {
		if snapshotPath == "" {
			return fmt.Errorf("snapshot path is empty")
		}
		expected, err := state.ReadSnapshot(snapshotPath)
		if err != nil {
			return err
		}
		actual := positions.Snapshot()
		if err := state.CompareSnapshots(expected, actual); err != nil {
			return err
		}
		log.Printf("snapshot verified: positions=%d", len(actual.Positions))
	}
	log.Printf("replay completed: total=%d counts=%v orders=%d", total, counts, orders.Len())
	return nil
}

// applyReplayEvent rebuilds order and position state from the journal.
// Cancels and statuses that race a full fill are part of the recorded
// optimistic behavior, so an invalid transition on those is not a fault.
func applyReplayEvent(orders *og.StateMachine, positions *state.PositionReducer, e bus.Event) error {
	switch e.Header.Type {
	case schema.EventInsertCommand:
		cmd, ok := codec.DecodeInsertCommand(e.Payload)
		if !ok {
			return fmt.Errorf("decode insert command failed")
		}
		_, err := orders.ApplyInsert(cmd)
		return err
	case schema.EventHedgeCommand:
		cmd, ok := codec.DecodeHedgeCommand(e.Payload)
		if !ok {
			return fmt.Errorf("decode hedge command failed")
		}
		_, err := orders.ApplyHedge(cmd)
		return err
	case schema.EventCancelCommand:
		cmd, ok := codec.DecodeCancelCommand(e.Payload)
		if !ok {
			return fmt.Errorf("decode cancel command failed")
		}
		if _, err := orders.ApplyCancel(cmd); err != nil && !errors.Is(err, og.ErrInvalidTransition) {
			return err
		}
		return nil
	case schema.EventOrderStatus:
		status, ok := codec.DecodeOrderStatus(e.Payload)
		if !ok {
			return fmt.Errorf("decode order status failed")
		}
		if _, err := orders.ApplyStatus(status); err != nil && !errors.Is(err, og.ErrInvalidTransition) {
			return err
		}
		return nil
	case schema.EventOrderFilled:
		fill, ok := codec.DecodeOrderFilled(e.Payload)
		if !ok {
			return fmt.Errorf("decode order filled failed")
		}
		order, err := orders.ApplyFilled(fill)
		if err != nil {
			if errors.Is(err, og.ErrInvalidTransition) {
				return nil
			}
			return err
		}
		positions.ApplyFill(schema.InstrumentEtf, order.Side, fill.Volume)
		return nil
	case schema.EventHedgeFilled:
		fill, ok := codec.DecodeHedgeFilled(e.Payload)
		if !ok {
			return fmt.Errorf("decode hedge filled failed")
		}
		order, err := orders.ApplyFilled(schema.OrderFilled(fill))
		if err != nil {
			if errors.Is(err, og.ErrInvalidTransition) {
				return nil
			}
			return err
		}
		positions.ApplyFill(schema.InstrumentFuture, order.Side, fill.Volume)
		return nil
	default:
		return nil
	}
}

func loadConfig(path string) (ops.Loaded, error) {
	if path == "" {
		return ops.Default(), nil
	}
	return ops.Load(path)
}

func resolveSnapshotPath(dir string, path string) string {
	if path != "" {
		return path
	}
	return filepath.Join(dir, "positions.json")
}

func watchConfig(ctx context.Context, path string, interval time.Duration, update func(ops.Loaded)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				log.Printf("config stat failed: %v", err)
				continue
			}
			if !info.ModTime().After(lastMod) {
				continue
			}
			loaded, err := ops.Load(path)
			if err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			update(loaded)
			lastMod = info.ModTime()
			log.Printf("config reloaded: %s", path)
		}
	}
}
