package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// ── Variantes ──────────────────────────────────────────────────────────────

type variantRepo struct{ v view }

func (r variantRepo) GetByID(_ context.Context, id string) (out *entity.ProductVariant, err error) {
	err = r.v(func(s *state) error {
		if p, ok := s.variants[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetForUpdate el lock lo da la transacción completa.
func (r variantRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductVariant, error) {
	return r.GetByID(ctx, id)
}

func (r variantRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	return r.v(func(s *state) error {
		p, ok := s.variants[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockQuantity = quantity
		return nil
	})
}

func (r variantRepo) UpdateStockAndCost(_ context.Context, id string, quantity int, cost decimal.Decimal) error {
	return r.v(func(s *state) error {
		p, ok := s.variants[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockQuantity = quantity
		p.CostPrice = cost
		return nil
	})
}

// ── Usuarios ───────────────────────────────────────────────────────────────

type userRepo struct{ v view }

func (r userRepo) GetByID(_ context.Context, id string) (out *entity.User, err error) {
	err = r.v(func(s *state) error {
		if u, ok := s.users[id]; ok {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r userRepo) FindByEmail(_ context.Context, email string) (out *entity.User, err error) {
	err = r.v(func(s *state) error {
		for _, u := range s.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r userRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r userRepo) UpdateLoyalty(_ context.Context, id string, rewardPoints int, tier string) error {
	return r.v(func(s *state) error {
		u, ok := s.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.RewardPoints = rewardPoints
		u.MembershipTier = tier
		return nil
	})
}

// ── Catálogo ───────────────────────────────────────────────────────────────

type couponRepo struct{ v view }

func (r couponRepo) GetByID(_ context.Context, id string) (out *entity.Coupon, err error) {
	err = r.v(func(s *state) error {
		if c, ok := s.coupons[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

type supplierRepo struct{ v view }

func (r supplierRepo) GetByID(_ context.Context, id string) (out *entity.Supplier, err error) {
	err = r.v(func(s *state) error {
		if sp, ok := s.suppliers[id]; ok {
			cp := *sp
			out = &cp
		}
		return nil
	})
	return out, err
}

// ── Pedidos ────────────────────────────────────────────────────────────────

type orderRepo struct{ v view }

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v(func(s *state) error {
		if _, ok := s.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *o
		cp.Lines = nil
		s.orders[o.ID] = &cp
		s.orderIDs = append(s.orderIDs, o.ID)
		return nil
	})
}

func (r orderRepo) CreateLine(_ context.Context, l *entity.OrderLine) error {
	return r.v(func(s *state) error {
		if _, ok := s.orders[l.OrderID]; !ok {
			return domain.ErrNotFound
		}
		cp := *l
		s.lines[l.OrderID] = append(s.lines[l.OrderID], &cp)
		return nil
	})
}

func (r orderRepo) GetByID(_ context.Context, id string) (out *entity.Order, err error) {
	err = r.v(func(s *state) error {
		if o, ok := s.orders[id]; ok {
			cp := *o
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) ListLines(_ context.Context, orderID string) (out []*entity.OrderLine, err error) {
	err = r.v(func(s *state) error {
		for _, l := range s.lines[orderID] {
			cp := *l
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r orderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return r.list(func(*entity.Order) bool { return true }, limit, offset)
}

func (r orderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error) {
	return r.list(func(o *entity.Order) bool { return o.UserID == userID }, limit, offset)
}

// list más recientes primero.
func (r orderRepo) list(match func(*entity.Order) bool, limit, offset int) (out []*entity.Order, err error) {
	err = r.v(func(s *state) error {
		var all []*entity.Order
		for i := len(s.orderIDs) - 1; i >= 0; i-- {
			if o := s.orders[s.orderIDs[i]]; o != nil && match(o) {
				all = append(all, o)
			}
		}
		for _, o := range page(all, limit, offset) {
			cp := *o
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r orderRepo) UpdateShipment(_ context.Context, o *entity.Order) error {
	return r.v(func(s *state) error {
		cur, ok := s.orders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = o.Status
		cur.CarrierName = o.CarrierName
		cur.TrackingCode = o.TrackingCode
		cur.UpdatedAt = o.UpdatedAt
		return nil
	})
}

func (r orderRepo) Delete(_ context.Context, id string) error {
	return r.v(func(s *state) error {
		if _, ok := s.orders[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.orders, id)
		delete(s.lines, id)
		for i, oid := range s.orderIDs {
			if oid == id {
				s.orderIDs = append(s.orderIDs[:i:i], s.orderIDs[i+1:]...)
				break
			}
		}
		return nil
	})
}

type eventRepo struct{ v view }

func (r eventRepo) Append(_ context.Context, e *entity.OrderStatusEvent) error {
	return r.v(func(s *state) error {
		cp := *e
		s.events = append(s.events, &cp)
		return nil
	})
}

func (r eventRepo) ListByOrder(_ context.Context, orderID string) (out []*entity.OrderStatusEvent, err error) {
	err = r.v(func(s *state) error {
		for _, e := range s.events {
			if e.OrderID == orderID {
				cp := *e
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

// ── Fidelización ───────────────────────────────────────────────────────────

type loyaltyRepo struct{ v view }

func (r loyaltyRepo) Append(_ context.Context, e *entity.LoyaltyEntry) error {
	return r.v(func(s *state) error {
		if e.Kind == entity.LoyaltyKindAccrual {
			for _, x := range s.loyalty {
				if x.Kind == entity.LoyaltyKindAccrual && x.OrderID == e.OrderID {
					return domain.ErrDuplicate
				}
			}
		}
		cp := *e
		s.loyalty = append(s.loyalty, &cp)
		return nil
	})
}

func (r loyaltyRepo) ListByUser(_ context.Context, userID string) (out []*entity.LoyaltyEntry, err error) {
	err = r.v(func(s *state) error {
		for _, e := range s.loyalty {
			if e.UserID == userID {
				cp := *e
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

func (r loyaltyRepo) SumByUser(_ context.Context, userID string) (sum int, err error) {
	err = r.v(func(s *state) error {
		for _, e := range s.loyalty {
			if e.UserID == userID {
				sum += e.Points
			}
		}
		return nil
	})
	return sum, err
}

func (r loyaltyRepo) HasAccrualForOrder(_ context.Context, orderID string) (found bool, err error) {
	err = r.v(func(s *state) error {
		for _, e := range s.loyalty {
			if e.Kind == entity.LoyaltyKindAccrual && e.OrderID == orderID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

// ── Entradas de mercancía ──────────────────────────────────────────────────

type receiptRepo struct{ v view }

func (r receiptRepo) Create(_ context.Context, g *entity.GoodsReceipt) error {
	return r.v(func(s *state) error {
		if _, ok := s.receipts[g.ID]; ok {
			return domain.ErrDuplicate
		}
		s.receipts[g.ID] = copyReceipt(g, true)
		s.receiptIDs = append(s.receiptIDs, g.ID)
		return nil
	})
}

func (r receiptRepo) GetByID(_ context.Context, id string) (out *entity.GoodsReceipt, err error) {
	err = r.v(func(s *state) error {
		if g, ok := s.receipts[id]; ok {
			out = copyReceipt(g, true)
		}
		return nil
	})
	return out, err
}

func (r receiptRepo) List(_ context.Context, limit, offset int) (out []*entity.GoodsReceipt, err error) {
	err = r.v(func(s *state) error {
		all := make([]*entity.GoodsReceipt, 0, len(s.receiptIDs))
		for i := len(s.receiptIDs) - 1; i >= 0; i-- {
			all = append(all, s.receipts[s.receiptIDs[i]])
		}
		for _, g := range page(all, limit, offset) {
			out = append(out, copyReceipt(g, false))
		}
		return nil
	})
	return out, err
}

func copyReceipt(g *entity.GoodsReceipt, withLines bool) *entity.GoodsReceipt {
	cp := *g
	cp.Lines = nil
	if withLines {
		for _, l := range g.Lines {
			lc := *l
			cp.Lines = append(cp.Lines, &lc)
		}
	}
	return &cp
}

// ── Devoluciones ───────────────────────────────────────────────────────────

type returnRepo struct{ v view }

func (r returnRepo) Create(_ context.Context, req *entity.ReturnRequest) error {
	return r.v(func(s *state) error {
		if _, ok := s.orders[req.OrderID]; !ok {
			return domain.ErrNotFound
		}
		cp := *req
		s.returns[req.ID] = &cp
		s.returnIDs = append(s.returnIDs, req.ID)
		return nil
	})
}

func (r returnRepo) GetByID(_ context.Context, id string) (out *entity.ReturnRequest, err error) {
	err = r.v(func(s *state) error {
		if x, ok := s.returns[id]; ok {
			cp := *x
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r returnRepo) UpdateStatus(_ context.Context, req *entity.ReturnRequest) error {
	return r.v(func(s *state) error {
		cur, ok := s.returns[req.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = req.Status
		cur.UpdatedAt = req.UpdatedAt
		return nil
	})
}

func (r returnRepo) List(_ context.Context, limit, offset int) (out []*entity.ReturnRequest, err error) {
	err = r.v(func(s *state) error {
		all := make([]*entity.ReturnRequest, 0, len(s.returnIDs))
		for i := len(s.returnIDs) - 1; i >= 0; i-- {
			all = append(all, s.returns[s.returnIDs[i]])
		}
		for _, x := range page(all, limit, offset) {
			cp := *x
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r returnRepo) ListByOrder(_ context.Context, orderID string) (out []*entity.ReturnRequest, err error) {
	err = r.v(func(s *state) error {
		for _, id := range s.returnIDs {
			if x := s.returns[id]; x.OrderID == orderID {
				cp := *x
				out = append(out, &cp)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
