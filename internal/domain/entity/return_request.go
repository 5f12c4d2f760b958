package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatus estado de una solicitud de devolución.
type ReturnStatus string

// Estados de devolución.
const (
	ReturnStatusPending  ReturnStatus = "PENDING"
	ReturnStatusApproved ReturnStatus = "APPROVED"
	ReturnStatusRejected ReturnStatus = "REJECTED"
	ReturnStatusRefunded ReturnStatus = "REFUNDED"
)

var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnStatusPending:  {ReturnStatusApproved, ReturnStatusRejected},
	ReturnStatusApproved: {ReturnStatusRefunded},
}

// ParseReturnStatus valida un estado de devolución recibido como texto.
func ParseReturnStatus(s string) (ReturnStatus, bool) {
	// devuelve la constante, nunca el string recibido
	for _, st := range []ReturnStatus{ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusRefunded} {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// CanTransitionTo indica si la solicitud puede pasar al estado dado.
func (r *ReturnRequest) CanTransitionTo(to ReturnStatus) bool {
	for _, next := range returnTransitions[r.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// ReturnRequest solicitud de devolución de un pedido entregado.
type ReturnRequest struct {
	ID           string
	OrderID      string
	Reason       string
	Status       ReturnStatus
	RefundAmount decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
