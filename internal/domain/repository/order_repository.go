package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// GetByID no carga las líneas; usar ListLines.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error)
	// UpdateShipment persiste estado, transportadora y guía.
	UpdateShipment(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}

// OrderStatusEventRepository historial append-only de estados (no hay Update ni Delete).
type OrderStatusEventRepository interface {
	Append(ctx context.Context, event *entity.OrderStatusEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderStatusEvent, error)
}
