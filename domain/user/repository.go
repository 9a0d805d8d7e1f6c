package user

import "context"

// Repository persists user accounts, unique by case-insensitive email.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, u *User) error
	// FindByEmail matches case-insensitively; ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
