package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.LoyaltyEntryRepository = (*LoyaltyEntryRepo)(nil)

// LoyaltyEntryRepo libro de puntos (solo INSERT y SELECT).
type LoyaltyEntryRepo struct {
	q Querier
}

// NewLoyaltyEntryRepository construye el adaptador.
func NewLoyaltyEntryRepository(q Querier) *LoyaltyEntryRepo {
	return &LoyaltyEntryRepo{q: q}
}

// Append agrega una entrada. El índice único parcial rechaza una segunda acumulación del mismo pedido.
func (r *LoyaltyEntryRepo) Append(ctx context.Context, e *entity.LoyaltyEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO loyalty_entries (id, user_id, order_id, kind, points, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, nullable(e.OrderID), e.Kind, e.Points, e.Reason, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert loyalty entry: %w", err)
	}
	return nil
}

// ListByUser entradas del usuario en orden de inserción.
func (r *LoyaltyEntryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.LoyaltyEntry, error) {
	if !validID(userID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, COALESCE(order_id::text, ''), kind, points, reason, created_at
		FROM loyalty_entries WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("list loyalty entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LoyaltyEntry
	for rows.Next() {
		var e entity.LoyaltyEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.OrderID, &e.Kind, &e.Points, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loyalty entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByUser suma de puntos del libro (debe coincidir con users.reward_points).
func (r *LoyaltyEntryRepo) SumByUser(ctx context.Context, userID string) (int, error) {
	if !validID(userID) {
		return 0, nil
	}
	var sum int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(points), 0) FROM loyalty_entries WHERE user_id = $1`, userID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum loyalty entries: %w", err)
	}
	return sum, nil
}

// HasAccrualForOrder indica si el pedido ya acumuló puntos.
func (r *LoyaltyEntryRepo) HasAccrualForOrder(ctx context.Context, orderID string) (bool, error) {
	if !validID(orderID) {
		return false, nil
	}
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM loyalty_entries WHERE order_id = $1 AND kind = $2)`,
		orderID, entity.LoyaltyKindAccrual,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check loyalty accrual: %w", err)
	}
	return exists, nil
}
