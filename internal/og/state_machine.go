package og

import (
	"errors"

	"main/internal/schema"
)

var (
	ErrDuplicateOrder    = errors.New("order already exists")
	ErrUnknownOrder      = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order state transition")
	ErrInvalidFill       = errors.New("invalid fill volume")
)

// OrderState tracks the lifecycle of an order.
type OrderState uint16

const (
	OrderStateUnknown OrderState = iota
	OrderStateSent
	OrderStateCancelRequested
	OrderStateFilled
	OrderStateCancelled
	OrderStateRejected
)

// Order holds the gateway's view of an order. Hedge orders are tracked
// alongside quotes; they never receive a cancel.
type Order struct {
	ID        uint64
	Side      schema.Side
	Price     schema.Price
	Volume    schema.Volume
	Remaining schema.Volume
	Hedge     bool
	State     OrderState
}

// StateMachine updates orders from command/status/fill events.
type StateMachine struct {
	orders map[uint64]*Order
}

// NewStateMachine creates an empty state machine.
func NewStateMachine() *StateMachine {
	return &StateMachine{orders: make(map[uint64]*Order)}
}

// Order returns the current order state.
func (m *StateMachine) Order(id uint64) (*Order, bool) {
	o, ok := m.orders[id]
	return o, ok
}

// Len returns the number of tracked orders, terminal ones included.
func (m *StateMachine) Len() int {
	return len(m.orders)
}

// ApplyInsert creates a new quote order in Sent state.
func (m *StateMachine) ApplyInsert(cmd schema.InsertCommand) (*Order, error) {
	return m.create(cmd.ClientOrderID, cmd.Side, cmd.Price, cmd.Volume, false)
}

// ApplyHedge creates a new hedge order in Sent state.
func (m *StateMachine) ApplyHedge(cmd schema.HedgeCommand) (*Order, error) {
	return m.create(cmd.ClientOrderID, cmd.Side, cmd.Price, cmd.Volume, true)
}

func (m *StateMachine) create(id uint64, side schema.Side, price schema.Price, volume schema.Volume, hedge bool) (*Order, error) {
	if id == 0 {
		return nil, ErrUnknownOrder
	}
	if _, ok := m.orders[id]; ok {
		return nil, ErrDuplicateOrder
	}
	o := &Order{
		ID:        id,
		Side:      side,
		Price:     price,
		Volume:    volume,
		Remaining: volume,
		Hedge:     hedge,
		State:     OrderStateSent,
	}
	m.orders[id] = o
	return o, nil
}

// ApplyCancel marks an order as cancel-requested. The order stays live
// until a terminal status arrives.
func (m *StateMachine) ApplyCancel(cmd schema.CancelCommand) (*Order, error) {
	o, ok := m.orders[cmd.ClientOrderID]
	if !ok {
		return nil, ErrUnknownOrder
	}
	if isTerminalState(o.State) {
		return o, ErrInvalidTransition
	}
	o.State = OrderStateCancelRequested
	return o, nil
}

// ApplyStatus updates remaining volume and resolves terminal states.
func (m *StateMachine) ApplyStatus(status schema.OrderStatus) (*Order, error) {
	o, ok := m.orders[status.ClientOrderID]
	if !ok {
		return nil, ErrUnknownOrder
	}
	if isTerminalState(o.State) {
		return o, ErrInvalidTransition
	}
	o.Remaining = status.RemainingVolume
	if status.RemainingVolume != 0 {
		return o, nil
	}
	switch {
	case status.FillVolume >= o.Volume && o.Volume > 0:
		o.State = OrderStateFilled
	case o.State == OrderStateCancelRequested:
		o.State = OrderStateCancelled
	case status.FillVolume > 0:
		o.State = OrderStateFilled
	default:
		o.State = OrderStateRejected
	}
	return o, nil
}

// ApplyFilled decrements remaining volume from a fill notification.
func (m *StateMachine) ApplyFilled(fill schema.OrderFilled) (*Order, error) {
	o, ok := m.orders[fill.ClientOrderID]
	if !ok {
		return nil, ErrUnknownOrder
	}
	if isTerminalState(o.State) {
		return o, ErrInvalidTransition
	}
	volume := int64(fill.Volume)
	if volume <= 0 {
		return o, ErrInvalidFill
	}
	remaining := int64(o.Remaining) - volume
	if remaining <= 0 {
		o.Remaining = 0
		o.State = OrderStateFilled
	} else {
		o.Remaining = schema.Volume(remaining)
	}
	return o, nil
}

func isTerminalState(state OrderState) bool {
	switch state {
	case OrderStateFilled, OrderStateCancelled, OrderStateRejected:
		return true
	default:
		return false
	}
}
