// Package returns flujo de devoluciones sobre pedidos entregados.
package returns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/orders"
	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// OrderTransitioner aplica un cambio de estado del pedido dentro de una transacción abierta.
type OrderTransitioner interface {
	TransitionInTx(ctx context.Context, repos repository.Repos, order *entity.Order, to entity.OrderStatus, note string, viaReturn bool) (orders.Transition, error)
	Committed(orderID string, t orders.Transition)
}

// UseCase crea y resuelve solicitudes de devolución.
type UseCase struct {
	txRunner ports.TxRunner
	returns  repository.ReturnRequestRepository
	orders   repository.OrderRepository
	status   OrderTransitioner
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	returns repository.ReturnRequestRepository,
	orders repository.OrderRepository,
	status OrderTransitioner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		returns:  returns,
		orders:   orders,
		status:   status,
		log:      log.Component("returns"),
	}
}

// CreateReturn abre una solicitud PENDING por el total del pedido. Solo pedidos DELIVERED.
func (uc *UseCase) CreateReturn(ctx context.Context, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if in.OrderID == "" || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	var req *entity.ReturnRequest
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		o, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusDelivered {
			return fmt.Errorf("%w: el pedido está en %s, se requiere %s", domain.ErrInvalidState, o.Status, entity.OrderStatusDelivered)
		}
		now := time.Now()
		req = &entity.ReturnRequest{
			ID:           uuid.New().String(),
			OrderID:      o.ID,
			Reason:       strings.TrimSpace(in.Reason),
			Status:       entity.ReturnStatusPending,
			RefundAmount: o.FinalTotal,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return repos.Returns.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("return_id", req.ID).Str("order_id", req.OrderID).Msg("devolución solicitada")
	out := dto.NewReturnResponse(req)
	return &out, nil
}

// UpdateReturnStatus avanza la solicitud. APPROVED pasa el pedido a RETURNED por la misma
// máquina de estados que el resto de cambios, con su evento de historial.
func (uc *UseCase) UpdateReturnStatus(ctx context.Context, id, status string) (*dto.ReturnResponse, error) {
	to, ok := entity.ParseReturnStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	var (
		req *entity.ReturnRequest
		t   orders.Transition
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		var err error
		req, err = repos.Returns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.CanTransitionTo(to) {
			return fmt.Errorf("%w: devolución %s -> %s", domain.ErrInvalidState, req.Status, to)
		}
		req.Status = to
		req.UpdatedAt = time.Now()
		if err := repos.Returns.UpdateStatus(ctx, req); err != nil {
			return err
		}
		if to != entity.ReturnStatusApproved {
			return nil
		}
		o, err := repos.Orders.GetForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		t, err = uc.status.TransitionInTx(ctx, repos, o, entity.OrderStatusReturned, "Devolución aprobada "+req.ID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.status.Committed(req.OrderID, t)
	uc.log.Info().Str("return_id", req.ID).Str("status", string(req.Status)).Msg("devolución actualizada")
	out := dto.NewReturnResponse(req)
	return &out, nil
}

// GetByID obtiene una solicitud.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	r, err := uc.returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewReturnResponse(r)
	return &out, nil
}

// List solicitudes paginadas.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ReturnResponse, error) {
	page.DefaultPage()
	list, err := uc.returns.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListByOrder solicitudes de un pedido.
func (uc *UseCase) ListByOrder(ctx context.Context, orderID string) ([]dto.ReturnResponse, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.returns.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

func toResponses(list []*entity.ReturnRequest) []dto.ReturnResponse {
	out := make([]dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewReturnResponse(r))
	}
	return out
}
