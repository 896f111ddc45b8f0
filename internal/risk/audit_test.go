package risk

import (
	"testing"

	"main/internal/schema"
)

func testConfig() Config {
	return Config{
		PositionLimit:   70,
		MaxActiveOrders: 2,
		MaxOrderVolume:  10,
		MinPrice:        100,
		MaxPrice:        2147483600,
		TickSize:        100,
	}
}

func TestReviewAllowsCleanInsert(t *testing.T) {
	a := NewAuditor(testConfig())
	decision := a.Review(schema.InsertCommand{
		ClientOrderID: 1,
		Side:          schema.SideBuy,
		Price:         9900,
		Volume:        10,
	}, View{Position: 10, OpenBids: 1})
	if decision.Action != schema.AuditActionAllow || decision.Reason != schema.AuditReasonNone {
		t.Fatalf("expected allow, got %+v", decision)
	}
	if decision.OpenOrders != 1 {
		t.Fatalf("expected bid count in decision, got %d", decision.OpenOrders)
	}
}

func TestReviewFlags(t *testing.T) {
	a := NewAuditor(testConfig())
	cases := []struct {
		name   string
		cmd    schema.InsertCommand
		view   View
		reason schema.AuditReason
	}{
		{
			name:   "unknown side",
			cmd:    schema.InsertCommand{ClientOrderID: 1, Price: 9900, Volume: 10},
			reason: schema.AuditReasonUnknownSide,
		},
		{
			name:   "volume cap",
			cmd:    schema.InsertCommand{ClientOrderID: 2, Side: schema.SideBuy, Price: 9900, Volume: 11},
			reason: schema.AuditReasonVolumeCap,
		},
		{
			name:   "tick alignment",
			cmd:    schema.InsertCommand{ClientOrderID: 3, Side: schema.SideBuy, Price: 9950, Volume: 10},
			reason: schema.AuditReasonTickAlignment,
		},
		{
			name:   "price band",
			cmd:    schema.InsertCommand{ClientOrderID: 4, Side: schema.SideSell, Price: 0, Volume: 10},
			reason: schema.AuditReasonPriceBand,
		},
		{
			name:   "order cap",
			cmd:    schema.InsertCommand{ClientOrderID: 5, Side: schema.SideSell, Price: 10100, Volume: 10},
			view:   View{OpenAsks: 3},
			reason: schema.AuditReasonOrderCap,
		},
		{
			name:   "position limit long",
			cmd:    schema.InsertCommand{ClientOrderID: 6, Side: schema.SideBuy, Price: 9900, Volume: 10},
			view:   View{Position: 70},
			reason: schema.AuditReasonPositionLimit,
		},
		{
			name:   "position limit short",
			cmd:    schema.InsertCommand{ClientOrderID: 7, Side: schema.SideSell, Price: 10100, Volume: 10},
			view:   View{Position: -70},
			reason: schema.AuditReasonPositionLimit,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := a.Review(tc.cmd, tc.view)
			if decision.Action != schema.AuditActionFlag {
				t.Fatalf("expected flag, got %+v", decision)
			}
			if decision.Reason != tc.reason {
				t.Fatalf("expected reason %d, got %d", tc.reason, decision.Reason)
			}
		})
	}
}
