// Package memory implementa los puertos de persistencia en proceso. Se usa en tests y con
// STORE_DRIVER=memory para una demo sin base de datos.
//
// Cada transacción trabaja sobre una copia del estado y la publica solo si fn termina sin error,
// con lo que el rollback es descartar la copia. Un mutex serializa transacciones completas,
// equivalente a bloquear todas las filas que tocan.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

type state struct {
	variants  map[string]*entity.ProductVariant
	users     map[string]*entity.User
	coupons   map[string]*entity.Coupon
	suppliers map[string]*entity.Supplier

	orders     map[string]*entity.Order
	orderIDs   []string // orden de creación
	lines      map[string][]*entity.OrderLine
	events     []*entity.OrderStatusEvent
	loyalty    []*entity.LoyaltyEntry
	receipts   map[string]*entity.GoodsReceipt
	receiptIDs []string
	returns    map[string]*entity.ReturnRequest
	returnIDs  []string
}

func newState() *state {
	return &state{
		variants:  map[string]*entity.ProductVariant{},
		users:     map[string]*entity.User{},
		coupons:   map[string]*entity.Coupon{},
		suppliers: map[string]*entity.Supplier{},
		orders:    map[string]*entity.Order{},
		lines:     map[string][]*entity.OrderLine{},
		receipts:  map[string]*entity.GoodsReceipt{},
		returns:   map[string]*entity.ReturnRequest{},
	}
}

// clone copia profunda; las entidades se copian por valor.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.variants {
		cp := *v
		c.variants[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range s.coupons {
		cp := *v
		c.coupons[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		c.suppliers[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		cp.Lines = nil
		c.orders[k] = &cp
	}
	c.orderIDs = append([]string(nil), s.orderIDs...)
	for k, ls := range s.lines {
		out := make([]*entity.OrderLine, 0, len(ls))
		for _, l := range ls {
			cp := *l
			out = append(out, &cp)
		}
		c.lines[k] = out
	}
	// eventos y libro son append-only: basta copiar el slice
	c.events = append([]*entity.OrderStatusEvent(nil), s.events...)
	c.loyalty = append([]*entity.LoyaltyEntry(nil), s.loyalty...)
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	c.receiptIDs = append([]string(nil), s.receiptIDs...)
	for k, v := range s.returns {
		cp := *v
		c.returns[k] = &cp
	}
	c.returnIDs = append([]string(nil), s.returnIDs...)
	return c
}

// view da acceso al estado: directo dentro de una transacción, con lock fuera de ella.
type view func(fn func(s *state) error) error

// Store base de datos en memoria.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

func (st *Store) locked(fn func(s *state) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(st.state)
}

// Run ejecuta fn sobre una copia del estado y la publica si no hubo error (ports.TxRunner).
// Las transacciones no son reentrantes: fn no debe usar los repos de Repos().
func (st *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	work := st.state.clone()
	direct := view(func(f func(s *state) error) error { return f(work) })
	if err := fn(ctx, reposFor(direct)); err != nil {
		return err
	}
	st.state = work
	return nil
}

// Repos repositorios fuera de transacción (lecturas de los handlers).
func (st *Store) Repos() repository.Repos {
	return reposFor(st.locked)
}

// Analytics consultas del dashboard.
func (st *Store) Analytics() repository.AnalyticsRepository {
	return analyticsRepo{v: st.locked}
}

func reposFor(v view) repository.Repos {
	return repository.Repos{
		Variants:  variantRepo{v: v},
		Users:     userRepo{v: v},
		Coupons:   couponRepo{v: v},
		Suppliers: supplierRepo{v: v},
		Orders:    orderRepo{v: v},
		Events:    eventRepo{v: v},
		Loyalty:   loyaltyRepo{v: v},
		Receipts:  receiptRepo{v: v},
		Returns:   returnRepo{v: v},
	}
}
