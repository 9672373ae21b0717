package auth

import (
	"context"
	"errors"
	"testing"

	"gigmatch/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]user.User),
		byID:    make(map[uuid.UUID]user.User),
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return errors.New("duplicate email")
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, u user.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Jo@Example.COM ",
		Name:     "Jo",
		Role:     user.RoleCustomer,
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "jo@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}

	stored := repo.byEmail["jo@example.com"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	in := RegisterInput{Email: "jo@example.com", Role: user.RoleCustomer, Password: "supersecret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_InvalidInputs(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	cases := []RegisterInput{
		{Email: "no-at-sign", Role: user.RoleCustomer, Password: "supersecret"},
		{Email: "jo@example.com", Role: "admin", Password: "supersecret"},
		{Email: "jo@example.com", Role: user.RoleCustomer, Password: "short"},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "jo@example.com", Role: user.RoleFreelancer, Password: "supersecret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "jo@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	if _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
