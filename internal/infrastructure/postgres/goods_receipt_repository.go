package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo entradas de mercancía (cabecera + líneas).
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador.
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create inserta cabecera y líneas. Debe ir en la misma tx que el ajuste de stock y costo.
func (r *GoodsReceiptRepo) Create(ctx context.Context, g *entity.GoodsReceipt) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO goods_receipts (id, supplier_id, user_id, import_date, total_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		g.ID, g.SupplierID, g.UserID, g.ImportDate, g.TotalAmount, g.Notes,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	for _, l := range g.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO goods_receipt_lines (id, receipt_id, variant_id, quantity, import_price)
			VALUES ($1, $2, $3, $4, $5)`,
			l.ID, g.ID, l.VariantID, l.Quantity, l.ImportPrice,
		)
		if err != nil {
			return fmt.Errorf("insert goods receipt line: %w", err)
		}
	}
	return nil
}

// GetByID cabecera con líneas.
func (r *GoodsReceiptRepo) GetByID(ctx context.Context, id string) (*entity.GoodsReceipt, error) {
	if !validID(id) {
		return nil, nil
	}
	var g entity.GoodsReceipt
	err := r.q.QueryRow(ctx,
		`SELECT id, supplier_id, user_id, import_date, total_amount, notes FROM goods_receipts WHERE id = $1`, id,
	).Scan(&g.ID, &g.SupplierID, &g.UserID, &g.ImportDate, &g.TotalAmount, &g.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, receipt_id, variant_id, quantity, import_price
		FROM goods_receipt_lines WHERE receipt_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.GoodsReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.VariantID, &l.Quantity, &l.ImportPrice); err != nil {
			return nil, fmt.Errorf("scan goods receipt line: %w", err)
		}
		g.Lines = append(g.Lines, &l)
	}
	return &g, rows.Err()
}

// List cabeceras más recientes primero.
func (r *GoodsReceiptRepo) List(ctx context.Context, limit, offset int) ([]*entity.GoodsReceipt, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, supplier_id, user_id, import_date, total_amount, notes
		FROM goods_receipts ORDER BY import_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceipt
	for rows.Next() {
		var g entity.GoodsReceipt
		if err := rows.Scan(&g.ID, &g.SupplierID, &g.UserID, &g.ImportDate, &g.TotalAmount, &g.Notes); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
