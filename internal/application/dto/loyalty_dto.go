package dto

import (
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// LoyaltyBalanceResponse saldo y nivel de un usuario.
type LoyaltyBalanceResponse struct {
	UserID         string `json:"user_id"`
	RewardPoints   int    `json:"reward_points"`
	MembershipTier string `json:"membership_tier"`
	LedgerTotal    int    `json:"ledger_total"`
	Consistent     bool   `json:"consistent"` // saldo == suma del libro
}

// LoyaltyEntryResponse entrada del libro de puntos.
type LoyaltyEntryResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id,omitempty"`
	Kind      string    `json:"kind"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLoyaltyEntryResponse convierte la entrada de dominio.
func NewLoyaltyEntryResponse(e *entity.LoyaltyEntry) LoyaltyEntryResponse {
	return LoyaltyEntryResponse{
		ID:        e.ID,
		OrderID:   e.OrderID,
		Kind:      e.Kind,
		Points:    e.Points,
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
	}
}
