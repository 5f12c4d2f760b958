package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// CouponRepository consulta de cupones (catálogo externo).
type CouponRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Coupon, error)
}

// SupplierRepository consulta de proveedores (catálogo externo).
type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}
