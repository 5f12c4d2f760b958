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

var (
	_ repository.OrderRepository            = (*OrderRepo)(nil)
	_ repository.OrderStatusEventRepository = (*OrderStatusEventRepo)(nil)
)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, COALESCE(user_id::text, ''), COALESCE(coupon_id::text, ''), subtotal, discount_total,
	final_total, status, points_used, points_discount, carrier_name, tracking_code, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(&o.ID, &o.UserID, &o.CouponID, &o.Subtotal, &o.DiscountTotal,
		&o.FinalTotal, &status, &o.PointsUsed, &o.PointsDiscount, &o.CarrierName, &o.TrackingCode,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// Create persiste la cabecera del pedido (sin líneas).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, user_id, coupon_id, subtotal, discount_total, final_total, status,
			points_used, points_discount, carrier_name, tracking_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, nullable(o.UserID), nullable(o.CouponID), o.Subtotal, o.DiscountTotal, o.FinalTotal, string(o.Status),
		o.PointsUsed, o.PointsDiscount, o.CarrierName, o.TrackingCode, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del pedido.
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO order_lines (id, order_id, variant_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.OrderID, l.VariantID, l.Quantity, l.UnitPrice,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la cabecera bloqueando la fila; serializa cambios de estado concurrentes.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// ListLines líneas del pedido en el orden en que se enviaron.
func (r *OrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	if !validID(orderID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, variant_id, quantity, unit_price FROM order_lines WHERE order_id = $1 ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.VariantID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List pedidos más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByUser pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error) {
	if !validID(userID) {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset, userID)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateShipment persiste estado, transportadora y guía.
func (r *OrderRepo) UpdateShipment(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, carrier_name = $3, tracking_code = $4, updated_at = $5 WHERE id = $1`,
		o.ID, string(o.Status), o.CarrierName, o.TrackingCode, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la cabecera; las líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// OrderStatusEventRepo historial de estados (solo INSERT y SELECT).
type OrderStatusEventRepo struct {
	q Querier
}

// NewOrderStatusEventRepository construye el adaptador.
func NewOrderStatusEventRepository(q Querier) *OrderStatusEventRepo {
	return &OrderStatusEventRepo{q: q}
}

// Append agrega un evento.
func (r *OrderStatusEventRepo) Append(ctx context.Context, e *entity.OrderStatusEvent) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO order_status_events (id, order_id, status, note, changed_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.OrderID, string(e.Status), e.Note, e.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order status event: %w", err)
	}
	return nil
}

// ListByOrder eventos en orden de inserción.
func (r *OrderStatusEventRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderStatusEvent, error) {
	if !validID(orderID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, status, note, changed_at FROM order_status_events WHERE order_id = $1 ORDER BY seq`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order status events: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderStatusEvent
	for rows.Next() {
		var e entity.OrderStatusEvent
		var status string
		if err := rows.Scan(&e.ID, &e.OrderID, &status, &e.Note, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan order status event: %w", err)
		}
		e.Status = entity.OrderStatus(status)
		list = append(list, &e)
	}
	return list, rows.Err()
}
