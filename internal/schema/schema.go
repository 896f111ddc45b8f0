package schema

// SchemaVersion is the current event schema version.
const SchemaVersion uint16 = 1

// EventType defines the category of an event stored in the WAL.
type EventType uint16

const (
	EventUnknown EventType = iota
	EventBookUpdate
	EventTradeTicks
	EventOrderStatus
	EventOrderFilled
	EventHedgeFilled
	EventErrorNotice
	EventInsertCommand
	EventCancelCommand
	EventHedgeCommand
	EventAuditDecision
)

// IsCommand reports whether the event is an outbound command rather
// than an inbound market or gateway event.
func (t EventType) IsCommand() bool {
	switch t {
	case EventInsertCommand, EventCancelCommand, EventHedgeCommand:
		return true
	default:
		return false
	}
}

// Event sources, recorded in the header for replay filtering.
const (
	SourceUnknown uint16 = iota
	SourceFeed
	SourceGateway
	SourceStrategy
	SourceAudit
	SourceReplay
)

// EventHeader is the common metadata attached to every event.
type EventHeader struct {
	Type    EventType
	Version uint16
	Source  uint16
	Flags   uint16
	Seq     uint64
	TsEvent int64
	TsRecv  int64
	TraceID uint64
}

// NewHeader builds a header with the current schema version.
func NewHeader(eventType EventType, source uint16, seq uint64, tsEvent, tsRecv int64) EventHeader {
	return EventHeader{
		Type:    eventType,
		Version: SchemaVersion,
		Source:  source,
		Seq:     seq,
		TsEvent: tsEvent,
		TsRecv:  tsRecv,
	}
}
