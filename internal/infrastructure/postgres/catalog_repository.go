package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var (
	_ repository.CouponRepository   = (*CouponRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CouponRepo consulta de cupones.
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador.
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

// GetByID obtiene un cupón por ID.
func (r *CouponRepo) GetByID(ctx context.Context, id string) (*entity.Coupon, error) {
	if !validID(id) {
		return nil, nil
	}
	var c entity.Coupon
	err := r.q.QueryRow(ctx,
		`SELECT id, code, discount_amount, min_order_value, expiry_date FROM coupons WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.DiscountAmount, &c.MinOrderValue, &c.ExpiryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return &c, nil
}

// SupplierRepo consulta de proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !validID(id) {
		return nil, nil
	}
	var s entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT id, name, email, phone, address, active FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}
