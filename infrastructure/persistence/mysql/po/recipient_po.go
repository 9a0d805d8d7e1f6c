package po

import (
	"time"

	"bookstore/domain/order"
)

// RecipientPO is the persistence object for order recipients.
type RecipientPO struct {
	ID        string    `gorm:"column:id;primaryKey;size:64"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:uk_recipients_email"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Phone     string    `gorm:"column:phone;size:32"`
	Street    string    `gorm:"column:street;size:255"`
	City      string    `gorm:"column:city;size:128"`
	ZipCode   string    `gorm:"column:zip_code;size:16"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName returns the table name for RecipientPO.
func (RecipientPO) TableName() string {
	return "recipients"
}

// FromRecipientDomain converts a domain recipient to its persistence object.
func FromRecipientDomain(r *order.Recipient) *RecipientPO {
	return &RecipientPO{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Phone:     r.Phone,
		Street:    r.Street,
		City:      r.City,
		ZipCode:   r.ZipCode,
		CreatedAt: r.CreatedAt,
	}
}

// ToDomain converts the persistence object back to a domain recipient.
func (p *RecipientPO) ToDomain() *order.Recipient {
	return &order.Recipient{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Phone:     p.Phone,
		Street:    p.Street,
		City:      p.City,
		ZipCode:   p.ZipCode,
		CreatedAt: p.CreatedAt,
	}
}
