package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Niveles de membresía derivados del saldo de puntos.
const (
	TierSilver  = "SILVER"
	TierGold    = "GOLD"
	TierDiamond = "DIAMOND"
)

// User representa un usuario del back-office o un cliente.
// RewardPoints es el saldo materializado del libro de fidelización; siempre igual a la suma de sus entradas.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	Name           string
	Role           string
	Status         string // active, inactive
	RewardPoints   int
	MembershipTier string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
