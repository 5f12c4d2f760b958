package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetForUpdate bloquea la fila del usuario (saldo de puntos) dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.User, error)
	UpdateLoyalty(ctx context.Context, id string, rewardPoints int, tier string) error
}
