package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// GoodsReceiptRepository persistencia de entradas de mercancía (cabecera + líneas).
type GoodsReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.GoodsReceipt) error
	GetByID(ctx context.Context, id string) (*entity.GoodsReceipt, error)
	List(ctx context.Context, limit, offset int) ([]*entity.GoodsReceipt, error)
}
