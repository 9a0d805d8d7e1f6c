package order

import "time"

// Recipient is the shipping recipient of an order. Recipients are shared
// between orders and deduplicated by case-insensitive email: the first
// order for an email creates the recipient, later orders reuse it.
type Recipient struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	Street    string
	City      string
	ZipCode   string
	CreatedAt time.Time
}
