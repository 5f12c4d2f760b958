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

var _ repository.ReturnRequestRepository = (*ReturnRequestRepo)(nil)

// ReturnRequestRepo solicitudes de devolución.
type ReturnRequestRepo struct {
	q Querier
}

// NewReturnRequestRepository construye el adaptador.
func NewReturnRequestRepository(q Querier) *ReturnRequestRepo {
	return &ReturnRequestRepo{q: q}
}

const returnColumns = `id, order_id, reason, status, refund_amount, created_at, updated_at`

func scanReturn(row pgx.Row) (*entity.ReturnRequest, error) {
	var x entity.ReturnRequest
	var status string
	if err := row.Scan(&x.ID, &x.OrderID, &x.Reason, &status, &x.RefundAmount, &x.CreatedAt, &x.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, err
	}
	x.Status = entity.ReturnStatus(status)
	return &x, nil
}

// Create persiste la solicitud.
func (r *ReturnRequestRepo) Create(ctx context.Context, x *entity.ReturnRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO return_requests (id, order_id, reason, status, refund_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		x.ID, x.OrderID, x.Reason, string(x.Status), x.RefundAmount, x.CreatedAt, x.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert return request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud.
func (r *ReturnRequestRepo) GetByID(ctx context.Context, id string) (*entity.ReturnRequest, error) {
	if !validID(id) {
		return nil, nil
	}
	x, err := scanReturn(r.q.QueryRow(ctx, `SELECT `+returnColumns+` FROM return_requests WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get return request: %w", err)
	}
	return x, nil
}

// UpdateStatus persiste el estado.
func (r *ReturnRequestRepo) UpdateStatus(ctx context.Context, x *entity.ReturnRequest) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE return_requests SET status = $2, updated_at = $3 WHERE id = $1`,
		x.ID, string(x.Status), x.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update return request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List solicitudes más recientes primero.
func (r *ReturnRequestRepo) List(ctx context.Context, limit, offset int) ([]*entity.ReturnRequest, error) {
	return r.list(ctx, `SELECT `+returnColumns+` FROM return_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByOrder solicitudes de un pedido en orden de creación.
func (r *ReturnRequestRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ReturnRequest, error) {
	if !validID(orderID) {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+returnColumns+` FROM return_requests WHERE order_id = $1 ORDER BY created_at`, orderID)
}

func (r *ReturnRequestRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ReturnRequest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list return requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReturnRequest
	for rows.Next() {
		x, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return request: %w", err)
		}
		list = append(list, x)
	}
	return list, rows.Err()
}
