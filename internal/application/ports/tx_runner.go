package ports

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error (o hace panic) se hace Rollback; si no, Commit.
// Garantiza atomicidad para stock, puntos e historial de estados.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error
}
