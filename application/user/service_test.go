package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bookstore/config"
	"bookstore/domain/user"
	"bookstore/infrastructure/persistence/memory"
	"bookstore/pkg/auth"
	"bookstore/pkg/clock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []UserRegisteredEvent
	err    error
}

func (p *recordingPublisher) PublishUserRegistered(ctx context.Context, event UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func newService(t *testing.T, publisher EventPublisher) (*ApplicationService, *clock.Fake) {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	tokens := auth.NewTokenService(&config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
	})
	return NewApplicationService(
		memory.NewUserRepository(store),
		tokens,
		publisher,
		memory.NewUnitOfWork(store),
		clk,
	), clk
}

func TestRegister(t *testing.T) {
	publisher := &recordingPublisher{}
	svc, _ := newService(t, publisher)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "alice@example.com" || u.Role != string(user.RoleUser) {
		t.Errorf("registered = %+v", u)
	}

	if len(publisher.events) != 1 || publisher.events[0].Email != "alice@example.com" {
		t.Errorf("events = %+v", publisher.events)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "correct horse"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Email: "ALICE@example.com", Password: "another pass"})
	if !errors.Is(err, user.ErrEmailExists) {
		t.Errorf("duplicate: got %v, want ErrEmailExists", err)
	}
}

func TestRegisterSurvivesPublisherFailure(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc, _ := newService(t, publisher)

	u, err := svc.Register(context.Background(), RegisterRequest{Email: "alice@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register should not surface broker errors: %v", err)
	}
	if u == nil {
		t.Fatal("expected a registered user")
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "correct horse"}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Login(ctx, LoginRequest{Email: "Alice@Example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("user = %+v", result.User)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, user.ErrBadCredentials) {
		t.Errorf("wrong password: got %v, want ErrBadCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"}); !errors.Is(err, user.ErrBadCredentials) {
		t.Errorf("unknown email: got %v, want ErrBadCredentials", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "correct horse"}); err != nil {
		t.Fatal(err)
	}
	principal := user.Principal{Email: "alice@example.com", Role: user.RoleUser}

	err := svc.ChangePassword(ctx, principal, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery staple",
	})
	if !errors.Is(err, user.ErrBadCredentials) {
		t.Errorf("wrong current password: got %v, want ErrBadCredentials", err)
	}

	if err := svc.ChangePassword(ctx, principal, ChangePasswordRequest{
		CurrentPassword: "correct horse",
		NewPassword:     "battery staple",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "correct horse"}); !errors.Is(err, user.ErrBadCredentials) {
		t.Error("old password should no longer work")
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "battery staple"}); err != nil {
		t.Errorf("new password should work: %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin@example.com", "admin pass"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	result, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin pass"})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if result.User.Role != string(user.RoleAdmin) {
		t.Errorf("role = %s, want ADMIN", result.User.Role)
	}

	// A second bootstrap is a no-op, not a duplicate error.
	if err := svc.EnsureAdmin(ctx, "admin@example.com", "other pass"); err != nil {
		t.Fatalf("repeated EnsureAdmin: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin pass"}); err != nil {
		t.Errorf("original admin password should still work: %v", err)
	}

	// Blank configuration disables the bootstrap.
	if err := svc.EnsureAdmin(ctx, "", ""); err != nil {
		t.Errorf("blank config: %v", err)
	}
}
