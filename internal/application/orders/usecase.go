package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// OrderUseCase lecturas y borrado de pedidos.
type OrderUseCase struct {
	txRunner ports.TxRunner
	orders   repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner ports.TxRunner, orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orders: orders}
}

// GetByID pedido con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.Lines, err = uc.orders.ListLines(ctx, id); err != nil {
		return nil, err
	}
	out := dto.NewOrderResponse(o)
	return &out, nil
}

// Lines líneas del pedido.
func (uc *OrderUseCase) Lines(ctx context.Context, id string) ([]dto.OrderItemResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orders.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderItemResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.NewOrderItemResponse(l))
	}
	return out, nil
}

// List pedidos paginados, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toList(list, page), nil
}

// ListByUser pedidos de un usuario.
func (uc *OrderUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toList(list, page), nil
}

// Delete elimina un pedido cancelado y sus líneas. El historial de estados se conserva.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		o, err := lockOrder(ctx, repos, id)
		if err != nil {
			return err
		}
		if o.Status != entity.OrderStatusCancelled {
			return fmt.Errorf("%w: solo se eliminan pedidos CANCELLED (actual %s)", domain.ErrInvalidState, o.Status)
		}
		return repos.Orders.Delete(ctx, id)
	})
}

func toList(list []*entity.Order, page dto.PageRequest) *dto.OrderListResponse {
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, dto.NewOrderResponse(o))
	}
	return out
}
