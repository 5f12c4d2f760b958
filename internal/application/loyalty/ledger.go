// Package loyalty aplica el programa de puntos sobre el libro append-only y el saldo del usuario.
// Toda mutación ocurre dentro de la transacción del caller (pedido, cambio de estado).
package loyalty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	domainloyalty "github.com/jhoicas/tienda-backoffice/internal/domain/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// Ledger acumula, redime y reintegra puntos.
type Ledger struct {
	pointsPerUnit int
	tiers         domainloyalty.TierThresholds
	metrics       ports.Metrics
	log           *logger.Logger
}

// NewLedger construye el libro. pointsPerUnit <= 0 usa el valor por defecto.
func NewLedger(pointsPerUnit int, tiers domainloyalty.TierThresholds, metrics ports.Metrics, log *logger.Logger) *Ledger {
	if pointsPerUnit <= 0 {
		pointsPerUnit = domainloyalty.DefaultPointsPerUnit
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Ledger{
		pointsPerUnit: pointsPerUnit,
		tiers:         tiers,
		metrics:       metrics,
		log:           log.Component("loyalty"),
	}
}

// AccrueInTx acredita floor(FinalTotal / pointsPerUnit) al dueño del pedido y recalcula el nivel.
// Idempotente por pedido: si ya existe una entrada ACCRUAL para la orden no hace nada.
// Devuelve los puntos acreditados (0 si no aplica).
func (l *Ledger) AccrueInTx(ctx context.Context, repos repository.Repos, order *entity.Order) (int, error) {
	if order == nil || !order.HasOwner() {
		return 0, nil
	}
	earned := domainloyalty.PointsEarned(order.FinalTotal, l.pointsPerUnit)
	if earned <= 0 {
		return 0, nil
	}
	done, err := repos.Loyalty.HasAccrualForOrder(ctx, order.ID)
	if err != nil {
		return 0, err
	}
	if done {
		l.log.Debug().Str("order_id", order.ID).Msg("acumulación ya aplicada, se omite")
		return 0, nil
	}

	user, err := repos.Users.GetForUpdate(ctx, order.UserID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.ErrUserNotFound
	}
	balance := user.RewardPoints + earned
	tier := l.tiers.TierFor(balance)
	if err := repos.Users.UpdateLoyalty(ctx, user.ID, balance, tier); err != nil {
		return 0, err
	}
	if err := repos.Loyalty.Append(ctx, &entity.LoyaltyEntry{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		OrderID:   order.ID,
		Kind:      entity.LoyaltyKindAccrual,
		Points:    earned,
		Reason:    fmt.Sprintf("Pedido %s entregado", order.ID),
		CreatedAt: time.Now(),
	}); err != nil {
		return 0, err
	}
	return earned, nil
}

// RedeemInTx descuenta puntos del saldo. No recalcula el nivel (solo la acumulación lo hace).
func (l *Ledger) RedeemInTx(ctx context.Context, repos repository.Repos, userID, orderID string, points int) error {
	if points <= 0 {
		return domain.ErrInvalidInput
	}
	user, err := repos.Users.GetForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.RewardPoints < points {
		return domain.ErrInsufficientPoints
	}
	if err := repos.Users.UpdateLoyalty(ctx, user.ID, user.RewardPoints-points, user.MembershipTier); err != nil {
		return err
	}
	return repos.Loyalty.Append(ctx, &entity.LoyaltyEntry{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		OrderID:   orderID,
		Kind:      entity.LoyaltyKindRedemption,
		Points:    -points,
		Reason:    fmt.Sprintf("Redimidos %d puntos en pedido %s", points, orderID),
		CreatedAt: time.Now(),
	})
}

// RefundInTx reintegra puntos redimidos en un pedido cancelado. El nivel no cambia.
func (l *Ledger) RefundInTx(ctx context.Context, repos repository.Repos, userID, orderID string, points int) error {
	if points <= 0 {
		return nil
	}
	user, err := repos.Users.GetForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := repos.Users.UpdateLoyalty(ctx, user.ID, user.RewardPoints+points, user.MembershipTier); err != nil {
		return err
	}
	return repos.Loyalty.Append(ctx, &entity.LoyaltyEntry{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		OrderID:   orderID,
		Kind:      entity.LoyaltyKindRefund,
		Points:    points,
		Reason:    fmt.Sprintf("Reintegro por cancelación del pedido %s", orderID),
		CreatedAt: time.Now(),
	})
}

// Accrued registra en métricas y log una acumulación ya confirmada.
func (l *Ledger) Accrued(orderID string, points int) {
	if points <= 0 {
		return
	}
	l.metrics.PointsAccrued(points)
	l.log.Info().Str("order_id", orderID).Int("points", points).Msg("puntos acreditados")
}

// Redeemed registra en métricas una redención ya confirmada.
func (l *Ledger) Redeemed(points int) {
	if points > 0 {
		l.metrics.PointsRedeemed(points)
	}
}
