package og

import (
	"errors"

	"main/internal/schema"
)

var ErrGatewayDisconnected = errors.New("order gateway disconnected")

// CommandSink receives the gateway's outbound commands, typically an
// exchange session or the WAL recording pipeline.
type CommandSink interface {
	InsertOrder(cmd schema.InsertCommand) error
	CancelOrder(cmd schema.CancelCommand) error
	HedgeOrder(cmd schema.HedgeCommand) error
}

// GatewayConfig controls gateway behavior.
type GatewayConfig struct {
	Session           string
	ResendOnReconnect bool
}

// Gateway forwards engine commands to the sink and tracks the optimistic
// order lifecycle. It satisfies the engine's fire-and-forget contract:
// sink errors are counted, never surfaced back into the hot path.
type Gateway struct {
	cfg       GatewayConfig
	state     *StateMachine
	sink      CommandSink
	pending   map[uint64]schema.InsertCommand
	connected bool
	dropped   uint64
	lastErr   error
}

// NewGateway creates a connected gateway.
func NewGateway(cfg GatewayConfig, sink CommandSink) *Gateway {
	if cfg.Session == "" {
		cfg.Session = "default"
	}
	return &Gateway{
		cfg:       cfg,
		state:     NewStateMachine(),
		sink:      sink,
		pending:   make(map[uint64]schema.InsertCommand),
		connected: true,
	}
}

// State returns the underlying order state machine.
func (g *Gateway) State() *StateMachine {
	return g.state
}

// SendInsertOrder registers a quote and forwards it when connected.
func (g *Gateway) SendInsertOrder(cmd schema.InsertCommand) {
	if _, err := g.state.ApplyInsert(cmd); err != nil {
		g.fail(err)
		return
	}
	g.pending[cmd.ClientOrderID] = cmd
	if !g.connected {
		g.fail(ErrGatewayDisconnected)
		return
	}
	if g.sink != nil {
		if err := g.sink.InsertOrder(cmd); err != nil {
			g.fail(err)
		}
	}
}

// SendCancelOrder marks the order cancel-requested and forwards the
// cancel when connected.
func (g *Gateway) SendCancelOrder(cmd schema.CancelCommand) {
	if _, err := g.state.ApplyCancel(cmd); err != nil {
		g.fail(err)
		return
	}
	if !g.connected {
		g.fail(ErrGatewayDisconnected)
		return
	}
	if g.sink != nil {
		if err := g.sink.CancelOrder(cmd); err != nil {
			g.fail(err)
		}
	}
}

// SendHedgeOrder registers a hedge and forwards it when connected.
// Hedges are never resent: a duplicate hedge doubles exposure.
func (g *Gateway) SendHedgeOrder(cmd schema.HedgeCommand) {
	if _, err := g.state.ApplyHedge(cmd); err != nil {
		g.fail(err)
		return
	}
	if !g.connected {
		g.fail(ErrGatewayDisconnected)
		return
	}
	if g.sink != nil {
		if err := g.sink.HedgeOrder(cmd); err != nil {
			g.fail(err)
		}
	}
}

// OnStatus updates order state and drops terminal quotes from the
// resend set.
func (g *Gateway) OnStatus(status schema.OrderStatus) error {
	order, err := g.state.ApplyStatus(status)
	if err != nil {
		return err
	}
	if isTerminalState(order.State) {
		delete(g.pending, status.ClientOrderID)
	}
	return nil
}

// OnFilled updates order state from a fill notification.
func (g *Gateway) OnFilled(fill schema.OrderFilled) error {
	order, err := g.state.ApplyFilled(fill)
	if err != nil {
		return err
	}
	if isTerminalState(order.State) {
		delete(g.pending, fill.ClientOrderID)
	}
	return nil
}

// Disconnect marks the gateway as disconnected.
func (g *Gateway) Disconnect() {
	g.connected = false
}

// Reconnect marks the gateway as connected and returns the quotes to
// resend, iteration order is not significant.
func (g *Gateway) Reconnect() []schema.InsertCommand {
	g.connected = true
	if !g.cfg.ResendOnReconnect {
		return nil
	}
	out := make([]schema.InsertCommand, 0, len(g.pending))
	for _, cmd := range g.pending {
		out = append(out, cmd)
	}
	return out
}

// Dropped returns the number of commands that failed to reach the sink.
func (g *Gateway) Dropped() uint64 {
	return g.dropped
}

// Err returns the first sink or lifecycle error observed.
func (g *Gateway) Err() error {
	return g.lastErr
}

func (g *Gateway) fail(err error) {
	g.dropped++
	if g.lastErr == nil {
		g.lastErr = err
	}
}
