package returns_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/application/orders"
	"github.com/jhoicas/tienda-backoffice/internal/application/returns"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	domainloyalty "github.com/jhoicas/tienda-backoffice/internal/domain/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/carrier"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

type fixture struct {
	create  *orders.CreateOrderUseCase
	status  *orders.StatusUseCase
	returns *returns.UseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	store.SeedUser(entity.User{ID: "user-1", Email: "cliente@tienda.test"})
	store.SeedVariant(entity.ProductVariant{ID: "v-1", SellPrice: decimal.NewFromInt(3200), StockQuantity: 5})

	log := logger.Nop()
	repos := store.Repos()
	ledger := loyalty.NewLedger(0, domainloyalty.DefaultTiers, nil, log)
	status := orders.NewStatusUseCase(store, repos.Orders, repos.Events, carrier.NewMockCarrier(0), time.Second, ledger, nil, log)
	return &fixture{
		create:  orders.NewCreateOrderUseCase(store, ledger, 100, nil, log),
		status:  status,
		returns: returns.NewUseCase(store, repos.Returns, repos.Orders, status, log),
	}
}

func (f *fixture) order(t *testing.T, statuses ...entity.OrderStatus) *dto.OrderResponse {
	t.Helper()
	o, err := f.create.CreateOrder(context.Background(), dto.CreateOrderRequest{
		UserID: "user-1",
		Items:  []dto.CreateOrderItemRequest{{VariantID: "v-1", Quantity: 1}},
	})
	require.NoError(t, err)
	for _, s := range statuses {
		o, err = f.status.UpdateStatus(context.Background(), o.ID, dto.UpdateOrderStatusRequest{Status: string(s)})
		require.NoError(t, err)
	}
	return o
}

func (f *fixture) delivered(t *testing.T) *dto.OrderResponse {
	return f.order(t, entity.OrderStatusShipping, entity.OrderStatusDelivered)
}

func TestCreateReturn_SoloPedidosEntregados(t *testing.T) {
	f := newFixture()
	pending := f.order(t)

	_, err := f.returns.CreateReturn(context.Background(), dto.CreateReturnRequest{OrderID: pending.ID, Reason: "talla"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.returns.CreateReturn(context.Background(), dto.CreateReturnRequest{OrderID: "no-existe", Reason: "talla"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateReturn_ReembolsoTotal(t *testing.T) {
	f := newFixture()
	o := f.delivered(t)

	r, err := f.returns.CreateReturn(context.Background(), dto.CreateReturnRequest{OrderID: o.ID, Reason: "llegó defectuoso"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.ReturnStatusPending), r.Status)
	assert.True(t, o.FinalTotal.Equal(r.RefundAmount))

	byOrder, err := f.returns.ListByOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Len(t, byOrder, 1)
}

func TestUpdateReturnStatus_AprobarDevuelvePedidoConEvento(t *testing.T) {
	f := newFixture()
	o := f.delivered(t)
	r, err := f.returns.CreateReturn(context.Background(), dto.CreateReturnRequest{OrderID: o.ID, Reason: "talla"})
	require.NoError(t, err)

	approved, err := f.returns.UpdateReturnStatus(context.Background(), r.ID, "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	history, err := f.status.History(context.Background(), o.ID)
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, "RETURNED", last.Status, "la aprobación pasa por la máquina de estados")
	assert.Contains(t, last.Note, r.ID)

	refunded, err := f.returns.UpdateReturnStatus(context.Background(), r.ID, "REFUNDED")
	require.NoError(t, err)
	assert.Equal(t, "REFUNDED", refunded.Status)
}

func TestUpdateReturnStatus_TransicionesInvalidas(t *testing.T) {
	f := newFixture()
	o := f.delivered(t)
	r, err := f.returns.CreateReturn(context.Background(), dto.CreateReturnRequest{OrderID: o.ID, Reason: "talla"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = f.returns.UpdateReturnStatus(ctx, r.ID, "REFUNDED")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "no se reembolsa sin aprobar")

	_, err = f.returns.UpdateReturnStatus(ctx, r.ID, "REJECTED")
	require.NoError(t, err)
	_, err = f.returns.UpdateReturnStatus(ctx, r.ID, "APPROVED")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "REJECTED es terminal")

	_, err = f.returns.UpdateReturnStatus(ctx, r.ID, "PERDIDA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.returns.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", got.Status)
}

func TestUpdateReturnStatus_SegundaAprobacionNoDuplicaEvento(t *testing.T) {
	f := newFixture()
	o := f.delivered(t)
	ctx := context.Background()
	first, err := f.returns.CreateReturn(ctx, dto.CreateReturnRequest{OrderID: o.ID, Reason: "talla"})
	require.NoError(t, err)
	second, err := f.returns.CreateReturn(ctx, dto.CreateReturnRequest{OrderID: o.ID, Reason: "color"})
	require.NoError(t, err)

	_, err = f.returns.UpdateReturnStatus(ctx, first.ID, "APPROVED")
	require.NoError(t, err)

	// el pedido ya está RETURNED: la segunda aprobación es un no-op sobre el pedido
	_, err = f.returns.UpdateReturnStatus(ctx, second.ID, "APPROVED")
	require.NoError(t, err)

	history, err := f.status.History(ctx, o.ID)
	require.NoError(t, err)
	returned := 0
	for _, e := range history {
		if e.Status == "RETURNED" {
			returned++
		}
	}
	assert.Equal(t, 1, returned)

	list, err := f.returns.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
