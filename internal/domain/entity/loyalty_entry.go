package entity

import "time"

// Tipos de entrada del libro de fidelización.
const (
	LoyaltyKindAccrual    = "ACCRUAL"    // puntos ganados al entregar un pedido
	LoyaltyKindRedemption = "REDEMPTION" // puntos usados al crear un pedido
	LoyaltyKindRefund     = "REFUND"     // devolución de puntos por cancelación
)

// LoyaltyEntry entrada append-only del libro de puntos. Points > 0 acredita, < 0 debita.
type LoyaltyEntry struct {
	ID        string
	UserID    string
	OrderID   string // referencia débil, puede ser vacío
	Kind      string
	Points    int
	Reason    string
	CreatedAt time.Time
}
