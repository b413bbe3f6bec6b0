package models

import "testing"

func TestLineItemsTotal(t *testing.T) {
	cases := []struct {
		name  string
		items LineItems
		want  int64
	}{
		{"empty", LineItems{}, 0},
		{"single item", LineItems{{Name: "venue", UnitPrice: 50000, Quantity: 1}}, 50000},
		{
			"quantities multiply",
			LineItems{
				{Name: "coordination", UnitPrice: 50000, Quantity: 1},
				{Name: "staff hours", UnitPrice: 12000, Quantity: 2},
			},
			74000,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.items.Total(); got != tc.want {
				t.Fatalf("Total() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []ProposalStatus{ProposalAccepted, ProposalRejected, ProposalExpired} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []ProposalStatus{ProposalDraft, ProposalPending} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}

	for _, s := range []BookingStatus{BookingDeclined, BookingCompleted, BookingCancelled} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestLineItemsScanRoundTrip(t *testing.T) {
	items := LineItems{{Name: "catering", UnitPrice: 2500, Quantity: 40}}
	value, err := items.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var decoded LineItems
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != items[0] {
		t.Fatalf("round trip mismatch: %#v", decoded)
	}
}
