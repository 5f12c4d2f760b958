package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, sku, COALESCE(size_id::text, ''), COALESCE(color_id::text, ''),
	sell_price, cost_price, stock_quantity, created_at, updated_at`

func scanVariant(row pgx.Row) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.SizeID, &v.ColorID,
		&v.SellPrice, &v.CostPrice, &v.StockQuantity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.ProductVariant, error) {
	if !validID(id) {
		return nil, nil
	}
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la variante bloqueando la fila (SELECT ... FOR UPDATE). Usar dentro de una tx.
func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductVariant, error) {
	if !validID(id) {
		return nil, nil
	}
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get variant for update: %w", err)
	}
	return v, nil
}

// UpdateStock fija el stock. El CHECK de la tabla impide valores negativos.
func (r *VariantRepo) UpdateStock(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product_variants SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update variant stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStockAndCost fija stock y costo promedio (entrada de mercancía).
func (r *VariantRepo) UpdateStockAndCost(ctx context.Context, id string, quantity int, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product_variants SET stock_quantity = $2, cost_price = $3, updated_at = now() WHERE id = $1`,
		id, quantity, cost,
	)
	if err != nil {
		return fmt.Errorf("update variant stock and cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
