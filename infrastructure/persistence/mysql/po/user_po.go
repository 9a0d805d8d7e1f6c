package po

import (
	"time"

	"bookstore/domain/user"
)

// UserPO is the persistence object for users.
type UserPO struct {
	ID        string    `gorm:"column:id;primaryKey;size:64"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:uk_users_email"`
	Password  string    `gorm:"column:password;size:128;not null"`
	Role      string    `gorm:"column:role;size:16;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for UserPO.
func (UserPO) TableName() string {
	return "users"
}

// FromUserDomain converts a domain user to its persistence object.
func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToDomain converts the persistence object back to a domain user.
func (p *UserPO) ToDomain() *user.User {
	return &user.User{
		ID:        p.ID,
		Email:     p.Email,
		Password:  p.Password,
		Role:      user.Role(p.Role),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
