package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// Transition resultado de aplicar un cambio de estado dentro de una transacción.
type Transition struct {
	From    entity.OrderStatus
	To      entity.OrderStatus
	Changed bool
	Accrued int // puntos acreditados por la entrega
}

// StatusUseCase máquina de estados del pedido: valida la transición, registra el evento
// de auditoría y dispara los efectos (acumulación al entregar, reintegros al cancelar).
type StatusUseCase struct {
	txRunner       ports.TxRunner
	orders         repository.OrderRepository
	events         repository.OrderStatusEventRepository
	carrier        ports.Carrier
	carrierTimeout time.Duration
	ledger         *loyalty.Ledger
	metrics        ports.Metrics
	log            *logger.Logger
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(
	txRunner ports.TxRunner,
	orders repository.OrderRepository,
	events repository.OrderStatusEventRepository,
	carrier ports.Carrier,
	carrierTimeout time.Duration,
	ledger *loyalty.Ledger,
	metrics ports.Metrics,
	log *logger.Logger,
) *StatusUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if carrierTimeout <= 0 {
		carrierTimeout = 5 * time.Second
	}
	return &StatusUseCase{
		txRunner:       txRunner,
		orders:         orders,
		events:         events,
		carrier:        carrier,
		carrierTimeout: carrierTimeout,
		ledger:         ledger,
		metrics:        metrics,
		log:            log.Component("order_status"),
	}
}

// TransitionInTx aplica order -> to usando los repos de la transacción del caller.
// El pedido debe venir bloqueado (GetForUpdate). Mismo estado = no-op sin evento.
// viaReturn habilita DELIVERED -> RETURNED (solo el flujo de devoluciones).
func (uc *StatusUseCase) TransitionInTx(ctx context.Context, repos repository.Repos, order *entity.Order, to entity.OrderStatus, note string, viaReturn bool) (Transition, error) {
	t := Transition{From: order.Status, To: to}
	if order.Status == to {
		return t, nil
	}
	if !entity.CanTransition(order.Status, to, viaReturn) {
		return t, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidState, order.Status, to)
	}

	now := time.Now()
	order.Status = to
	order.UpdatedAt = now
	if err := repos.Orders.UpdateShipment(ctx, order); err != nil {
		return t, err
	}
	if err := repos.Events.Append(ctx, newEvent(order.ID, to, transitionNote(t.From, to, note), now)); err != nil {
		return t, err
	}
	t.Changed = true

	switch to {
	case entity.OrderStatusDelivered:
		accrued, err := uc.ledger.AccrueInTx(ctx, repos, order)
		if err != nil {
			return t, err
		}
		t.Accrued = accrued
	case entity.OrderStatusCancelled:
		if err := uc.restoreInTx(ctx, repos, order); err != nil {
			return t, err
		}
	}
	return t, nil
}

// restoreInTx devuelve al inventario lo reservado y reintegra los puntos redimidos.
func (uc *StatusUseCase) restoreInTx(ctx context.Context, repos repository.Repos, order *entity.Order) error {
	lines, err := repos.Orders.ListLines(ctx, order.ID)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if err := inventory.Release(ctx, repos.Variants, l.VariantID, l.Quantity); err != nil {
			return err
		}
	}
	if order.PointsUsed > 0 && order.HasOwner() {
		return uc.ledger.RefundInTx(ctx, repos, order.UserID, order.ID, order.PointsUsed)
	}
	return nil
}

// Committed registra métricas y log de una transición ya confirmada.
func (uc *StatusUseCase) Committed(orderID string, t Transition) {
	if !t.Changed {
		return
	}
	uc.metrics.StatusChanged(string(t.From), string(t.To))
	uc.ledger.Accrued(orderID, t.Accrued)
	uc.log.Info().
		Str("order_id", orderID).
		Str("from", string(t.From)).
		Str("to", string(t.To)).
		Msg("cambio de estado")
}

// UpdateStatus cambia el estado de un pedido.
func (uc *StatusUseCase) UpdateStatus(ctx context.Context, orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	to, ok := entity.ParseOrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	var (
		order *entity.Order
		t     Transition
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		var err error
		order, err = lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		t, err = uc.TransitionInTx(ctx, repos, order, to, in.Note, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.Committed(order.ID, t)
	out := dto.NewOrderResponse(order)
	return &out, nil
}

// Ship solicita la guía a la transportadora y pasa el pedido a SHIPPING.
// La llamada externa va fuera de la transacción y con timeout; si falla, el pedido no cambia
// y se puede reintentar.
func (uc *StatusUseCase) Ship(ctx context.Context, orderID, carrierID string) (*dto.OrderResponse, error) {
	carrierID = strings.TrimSpace(carrierID)
	if carrierID == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(current.Status, entity.OrderStatusShipping, false) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidState, current.Status, entity.OrderStatusShipping)
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.carrierTimeout)
	tracking, err := uc.carrier.PushOrder(callCtx, carrierID, orderID)
	cancel()
	if err != nil {
		uc.metrics.CarrierFailed(carrierID)
		uc.log.Warn().Err(err).Str("order_id", orderID).Str("carrier", carrierID).Msg("transportadora no respondió, pedido sin cambios")
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCarrierUnavailable, carrierID, err)
	}

	var (
		order *entity.Order
		t     Transition
	)
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		var err error
		order, err = lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		order.CarrierName = carrierID
		order.TrackingCode = tracking
		note := fmt.Sprintf("Enviado con %s, guía %s", carrierID, tracking)
		t, err = uc.TransitionInTx(ctx, repos, order, entity.OrderStatusShipping, note, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.Committed(order.ID, t)
	out := dto.NewOrderResponse(order)
	return &out, nil
}

// History eventos del pedido en orden de creación.
func (uc *StatusUseCase) History(ctx context.Context, orderID string) ([]dto.OrderStatusEventResponse, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	events, err := uc.events.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderStatusEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.NewOrderStatusEventResponse(e))
	}
	return out, nil
}

func lockOrder(ctx context.Context, repos repository.Repos, orderID string) (*entity.Order, error) {
	o, err := repos.Orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func transitionNote(from, to entity.OrderStatus, note string) string {
	base := fmt.Sprintf("Estado cambiado de %s a %s", from, to)
	if note = strings.TrimSpace(note); note != "" {
		return base + ": " + note
	}
	return base
}
