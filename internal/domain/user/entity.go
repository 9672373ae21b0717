package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleFreelancer Role = "freelancer"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleFreelancer
}

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
