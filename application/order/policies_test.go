package order

import (
	"testing"

	"bookstore/domain/shared"
)

func snapshotOf(deliveryPrice string, lines ...PricedLine) OrderSnapshot {
	itemsPrice := shared.Zero
	for _, line := range lines {
		itemsPrice = itemsPrice.Add(line.LineTotal())
	}
	return OrderSnapshot{
		Lines:         lines,
		ItemsPrice:    itemsPrice,
		DeliveryPrice: shared.MustParseMoney(deliveryPrice),
	}
}

func line(bookID, unitPrice string, quantity int) PricedLine {
	return PricedLine{
		BookID:    bookID,
		UnitPrice: shared.MustParseMoney(unitPrice),
		Quantity:  quantity,
	}
}

func TestDeliveryDiscountPolicy(t *testing.T) {
	tests := []struct {
		name     string
		snapshot OrderSnapshot
		want     string
	}{
		{
			name:     "items total at threshold waives delivery",
			snapshot: snapshotOf("9.90", line("b1", "50.00", 2)),
			want:     "9.90",
		},
		{
			name:     "items total above threshold waives delivery",
			snapshot: snapshotOf("9.90", line("b1", "110.00", 1)),
			want:     "9.90",
		},
		{
			name:     "items total below threshold pays delivery",
			snapshot: snapshotOf("9.90", line("b1", "50.00", 1)),
			want:     "0.00",
		},
		{
			name:     "free delivery yields zero discount even above threshold",
			snapshot: snapshotOf("0.00", line("b1", "150.00", 1)),
			want:     "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeliveryDiscountPolicy{}.Discount(tt.snapshot)
			if got.String() != tt.want {
				t.Errorf("discount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTotalPriceDiscountPolicy(t *testing.T) {
	tests := []struct {
		name     string
		snapshot OrderSnapshot
		want     string
	}{
		{
			name: "over 400 discounts cheapest unit price in full",
			snapshot: snapshotOf("9.90",
				line("b1", "110.80", 3),
				line("b2", "49.99", 2),
			),
			want: "49.99",
		},
		{
			name:     "over 200 discounts half the cheapest unit price",
			snapshot: snapshotOf("9.90", line("b1", "110.80", 2)),
			want:     "55.40",
		},
		{
			name:     "exactly 400 gets the full discount",
			snapshot: snapshotOf("9.90", line("b1", "100.00", 4)),
			want:     "100.00",
		},
		{
			name:     "exactly 200 gets the half discount",
			snapshot: snapshotOf("9.90", line("b1", "200.00", 1)),
			want:     "100.00",
		},
		{
			name:     "below 200 gets nothing",
			snapshot: snapshotOf("9.90", line("b1", "99.99", 2)),
			want:     "0.00",
		},
		{
			name:     "empty order gets nothing",
			snapshot: OrderSnapshot{ItemsPrice: shared.Zero, DeliveryPrice: shared.Zero},
			want:     "0.00",
		},
		{
			name: "tie on unit price picks the first line",
			snapshot: snapshotOf("0.00",
				line("b1", "150.00", 2),
				line("b2", "150.00", 1),
			),
			want: "150.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPriceDiscountPolicy{}.Discount(tt.snapshot)
			if got.String() != tt.want {
				t.Errorf("discount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPoliciesAreSummed(t *testing.T) {
	// 221.60 in items with courier delivery: free delivery (9.90) plus
	// half the cheapest unit price (55.40).
	snapshot := snapshotOf("9.90", line("b1", "110.80", 2))

	total := shared.Zero
	for _, policy := range []DiscountPolicy{DeliveryDiscountPolicy{}, TotalPriceDiscountPolicy{}} {
		total = total.Add(policy.Discount(snapshot))
	}
	if total.String() != "65.30" {
		t.Errorf("summed discount = %s, want 65.30", total)
	}
}
