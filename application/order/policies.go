package order

import "bookstore/domain/shared"

// DiscountPolicy computes one discount from the priced order. Policies are
// independent; the price service sums their results.
type DiscountPolicy interface {
	Discount(snapshot OrderSnapshot) shared.Money
}

// deliveryDiscountThreshold is the items total from which delivery is free.
var deliveryDiscountThreshold = shared.NewMoneyFromInt(100)

// DeliveryDiscountPolicy waives the delivery price once the items total
// reaches the threshold.
type DeliveryDiscountPolicy struct{}

// Discount returns the full delivery price when the items total is at or
// above the threshold, zero otherwise.
func (DeliveryDiscountPolicy) Discount(snapshot OrderSnapshot) shared.Money {
	if snapshot.ItemsPrice.GreaterOrEqual(deliveryDiscountThreshold) {
		return snapshot.DeliveryPrice
	}
	return shared.Zero
}

var (
	fullDiscountThreshold = shared.NewMoneyFromInt(400)
	halfDiscountThreshold = shared.NewMoneyFromInt(200)
)

// TotalPriceDiscountPolicy discounts the cheapest line's unit price on
// large orders: the whole unit price from 400 upward, half of it from 200
// upward. Ties go to the line encountered first.
type TotalPriceDiscountPolicy struct{}

// Discount returns the cheapest-book discount for the order total.
func (TotalPriceDiscountPolicy) Discount(snapshot OrderSnapshot) shared.Money {
	if len(snapshot.Lines) == 0 {
		return shared.Zero
	}
	switch {
	case snapshot.ItemsPrice.GreaterOrEqual(fullDiscountThreshold):
		return cheapestUnitPrice(snapshot.Lines)
	case snapshot.ItemsPrice.GreaterOrEqual(halfDiscountThreshold):
		return cheapestUnitPrice(snapshot.Lines).Percentage(50)
	default:
		return shared.Zero
	}
}

func cheapestUnitPrice(lines []PricedLine) shared.Money {
	cheapest := lines[0].UnitPrice
	for _, line := range lines[1:] {
		if line.UnitPrice.LessThan(cheapest) {
			cheapest = line.UnitPrice
		}
	}
	return cheapest
}
