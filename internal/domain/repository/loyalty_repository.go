package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// LoyaltyEntryRepository libro append-only de puntos.
type LoyaltyEntryRepository interface {
	Append(ctx context.Context, entry *entity.LoyaltyEntry) error
	ListByUser(ctx context.Context, userID string) ([]*entity.LoyaltyEntry, error)
	SumByUser(ctx context.Context, userID string) (int, error)
	HasAccrualForOrder(ctx context.Context, orderID string) (bool, error)
}
