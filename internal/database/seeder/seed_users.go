package seeder

import (
	"context"

	"gigmatch/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// UsersSeeder inserts a pair of demo accounts per role. Every account uses
// the same password so local clients can log in without extra setup.
type UsersSeeder struct{}

const demoPassword = "password123"

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		ID    string
		Email string
		Name  string
		Role  string
	}{
		{ID: "9d1f8e0a-0001-4000-8000-000000000001", Email: "carla@example.com", Name: "Carla Customer", Role: "customer"},
		{ID: "9d1f8e0a-0001-4000-8000-000000000002", Email: "carl@example.com", Name: "Carl Customer", Role: "customer"},
		{ID: "9d1f8e0a-0002-4000-8000-000000000001", Email: "fiona@example.com", Name: "Fiona Freelancer", Role: "freelancer"},
		{ID: "9d1f8e0a-0002-4000-8000-000000000002", Email: "frank@example.com", Name: "Frank Freelancer", Role: "freelancer"},
	}

	for _, it := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, name, role, password_hash)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (email) DO NOTHING`,
			it.ID, it.Email, it.Name, it.Role, string(hash),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
