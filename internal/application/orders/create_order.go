// Package orders ensambla pedidos y administra su máquina de estados e historial.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// Nota del evento inicial del historial.
const noteOrderCreated = "Pedido creado"

// CreateOrderUseCase convierte un carrito en un pedido persistido: reserva stock línea a línea,
// calcula totales, aplica cupón y redime puntos. Cualquier fallo revierte todo.
type CreateOrderUseCase struct {
	txRunner   ports.TxRunner
	ledger     *loyalty.Ledger
	pointValue decimal.Decimal
	metrics    ports.Metrics
	log        *logger.Logger
}

// NewCreateOrderUseCase construye el caso de uso. pointValue es el valor monetario de un punto redimido.
func NewCreateOrderUseCase(
	txRunner ports.TxRunner,
	ledger *loyalty.Ledger,
	pointValue int,
	metrics ports.Metrics,
	log *logger.Logger,
) *CreateOrderUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &CreateOrderUseCase{
		txRunner:   txRunner,
		ledger:     ledger,
		pointValue: decimal.NewFromInt(int64(pointValue)),
		metrics:    metrics,
		log:        log.Component("orders"),
	}
}

// CreateOrder ejecuta el ensamblado completo dentro de una transacción.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	status := entity.OrderStatusPending
	if in.Status != "" {
		st, ok := entity.ParseOrderStatus(in.Status)
		if !ok || (st != entity.OrderStatusPending && st != entity.OrderStatusConfirmed) {
			return nil, domain.ErrInvalidInput
		}
		status = st
	}
	if in.UserID == "" || len(in.Items) == 0 || in.PointsUsed < 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.VariantID == "" || it.Quantity < 1 || it.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		CouponID:   in.CouponID,
		Status:     status,
		PointsUsed: in.PointsUsed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		user, err := repos.Users.GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		// Reserva en el orden recibido; la primera línea sin stock aborta el pedido.
		subtotal := decimal.Zero
		for _, it := range in.Items {
			v, err := inventory.Reserve(ctx, repos.Variants, it.VariantID, it.Quantity)
			if err != nil {
				return err
			}
			price := it.Price
			if !price.IsPositive() {
				price = v.SellPrice
			}
			line := &entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				VariantID: v.ID,
				Quantity:  it.Quantity,
				UnitPrice: price,
			}
			order.Lines = append(order.Lines, line)
			subtotal = subtotal.Add(line.Subtotal())
		}

		couponDiscount, err := couponDiscount(ctx, repos.Coupons, in.CouponID, subtotal, now)
		if err != nil {
			return err
		}
		if err := applyTotals(order, subtotal, couponDiscount, uc.pointValue); err != nil {
			return err
		}

		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		for _, l := range order.Lines {
			if err := repos.Orders.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		if err := repos.Events.Append(ctx, newEvent(order.ID, order.Status, noteOrderCreated, now)); err != nil {
			return err
		}

		if order.PointsUsed > 0 && order.HasOwner() {
			if err := uc.ledger.RedeemInTx(ctx, repos, order.UserID, order.ID, order.PointsUsed); err != nil {
				return err
			}
			note := fmt.Sprintf("Redimidos %d puntos (descuento %s)", order.PointsUsed, order.PointsDiscount.StringFixed(2))
			if err := repos.Events.Append(ctx, newEvent(order.ID, order.Status, note, time.Now())); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.metrics.OrderRejected(rejectReason(err))
		uc.log.Warn().Err(err).Str("user_id", in.UserID).Int("items", len(in.Items)).Msg("pedido rechazado")
		return nil, err
	}

	uc.metrics.OrderCreated()
	uc.ledger.Redeemed(order.PointsUsed)
	uc.log.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Str("final_total", order.FinalTotal.String()).
		Int("points_used", order.PointsUsed).
		Msg("pedido creado")

	out := dto.NewOrderResponse(order)
	return &out, nil
}

// couponDiscount valida el cupón (existe, vigente, monto mínimo) y devuelve su descuento.
func couponDiscount(ctx context.Context, coupons repository.CouponRepository, couponID string, subtotal decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if couponID == "" {
		return decimal.Zero, nil
	}
	c, err := coupons.GetByID(ctx, couponID)
	if err != nil {
		return decimal.Zero, err
	}
	if c == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	if c.IsExpired(at) || subtotal.LessThan(c.MinOrderValue) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return c.DiscountAmount, nil
}

// applyTotals descuento total = cupón + puntos, acotado al subtotal; el total final nunca es negativo.
// Los puntos no pueden valer más que lo que queda por pagar tras el cupón: se rechaza en vez de
// redimir puntos que no aportan descuento.
func applyTotals(o *entity.Order, subtotal, coupon, pointValue decimal.Decimal) error {
	o.Subtotal = subtotal
	o.PointsDiscount = pointValue.Mul(decimal.NewFromInt(int64(o.PointsUsed)))
	payable := decimal.Max(subtotal.Sub(coupon), decimal.Zero)
	if o.PointsDiscount.GreaterThan(payable) {
		return fmt.Errorf("%w: %d puntos (%s) superan el saldo a pagar %s",
			domain.ErrInvalidInput, o.PointsUsed, o.PointsDiscount.StringFixed(2), payable.StringFixed(2))
	}
	discount := coupon.Add(o.PointsDiscount)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	o.DiscountTotal = discount
	o.FinalTotal = subtotal.Sub(discount)
	return nil
}

func newEvent(orderID string, status entity.OrderStatus, note string, at time.Time) *entity.OrderStatusEvent {
	return &entity.OrderStatusEvent{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		ChangedAt: at,
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
