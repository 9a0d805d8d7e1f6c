package order

import (
	"strings"

	"bookstore/domain/shared"
)

// Delivery is the delivery method chosen for an order. Each method carries
// a flat fee.
type Delivery string

const (
	DeliveryCourier    Delivery = "COURIER"
	DeliverySelfPickup Delivery = "SELF_PICKUP"
)

// ParseDelivery resolves a delivery method from its case-insensitive
// string form.
func ParseDelivery(value string) (Delivery, bool) {
	for _, d := range []Delivery{DeliveryCourier, DeliverySelfPickup} {
		if strings.EqualFold(string(d), value) {
			return d, true
		}
	}
	return "", false
}

// Price returns the flat fee for the delivery method.
func (d Delivery) Price() shared.Money {
	switch d {
	case DeliveryCourier:
		return shared.MustParseMoney("9.90")
	default:
		return shared.Zero
	}
}
