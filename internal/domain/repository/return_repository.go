package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// ReturnRequestRepository persistencia de solicitudes de devolución.
type ReturnRequestRepository interface {
	Create(ctx context.Context, req *entity.ReturnRequest) error
	GetByID(ctx context.Context, id string) (*entity.ReturnRequest, error)
	UpdateStatus(ctx context.Context, req *entity.ReturnRequest) error
	List(ctx context.Context, limit, offset int) ([]*entity.ReturnRequest, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.ReturnRequest, error)
}
