package risk

import (
	"main/internal/schema"
)

// Config defines the audit limits. They mirror the strategy constants so
// a flagged command always means the hot path and the policy disagree.
type Config struct {
	PositionLimit   schema.Volume `json:"positionLimit"`
	MaxActiveOrders int           `json:"maxActiveOrders"`
	MaxOrderVolume  schema.Volume `json:"maxOrderVolume"`
	MinPrice        schema.Price  `json:"minPrice"`
	MaxPrice        schema.Price  `json:"maxPrice"`
	TickSize        schema.Price  `json:"tickSize"`
}

// View provides the strategy state snapshot at review time.
type View struct {
	Position schema.Volume
	OpenBids int
	OpenAsks int
}

// Auditor reviews emitted insert commands after the fact. It never gates
// the hot path; decisions feed metrics and the WAL.
type Auditor struct {
	cfg Config
}

// NewAuditor creates an auditor with static limits.
func NewAuditor(cfg Config) *Auditor {
	return &Auditor{cfg: cfg}
}

// Review checks an insert command against the configured limits.
func (a *Auditor) Review(cmd schema.InsertCommand, view View) schema.AuditDecision {
	decision := schema.AuditDecision{
		OrderID:  cmd.ClientOrderID,
		Action:   schema.AuditActionAllow,
		Reason:   schema.AuditReasonNone,
		Price:    cmd.Price,
		Volume:   cmd.Volume,
		Position: view.Position,
	}

	switch cmd.Side {
	case schema.SideBuy:
		decision.OpenOrders = uint32(view.OpenBids)
	case schema.SideSell:
		decision.OpenOrders = uint32(view.OpenAsks)
	default:
		return flag(decision, schema.AuditReasonUnknownSide)
	}

	if a.cfg.MaxOrderVolume > 0 && cmd.Volume > a.cfg.MaxOrderVolume {
		return flag(decision, schema.AuditReasonVolumeCap)
	}
	if a.cfg.TickSize > 0 && cmd.Price%a.cfg.TickSize != 0 {
		return flag(decision, schema.AuditReasonTickAlignment)
	}
	if cmd.Price < a.cfg.MinPrice || (a.cfg.MaxPrice > 0 && cmd.Price > a.cfg.MaxPrice) {
		return flag(decision, schema.AuditReasonPriceBand)
	}

	if a.cfg.MaxActiveOrders > 0 {
		open := int(decision.OpenOrders)
		if open > a.cfg.MaxActiveOrders {
			return flag(decision, schema.AuditReasonOrderCap)
		}
	}

	if a.cfg.PositionLimit > 0 {
		switch cmd.Side {
		case schema.SideBuy:
			if view.Position >= a.cfg.PositionLimit {
				return flag(decision, schema.AuditReasonPositionLimit)
			}
		case schema.SideSell:
			if view.Position <= -a.cfg.PositionLimit {
				return flag(decision, schema.AuditReasonPositionLimit)
			}
		}
	}

	return decision
}

func flag(decision schema.AuditDecision, reason schema.AuditReason) schema.AuditDecision {
	decision.Action = schema.AuditActionFlag
	decision.Reason = reason
	return decision
}
