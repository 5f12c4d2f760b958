package memory

import "github.com/jhoicas/tienda-backoffice/internal/domain/entity"

// Datos de catálogo que en producción vienen de otros servicios.

// SeedVariant inserta o reemplaza una variante.
func (st *Store) SeedVariant(v entity.ProductVariant) {
	_ = st.locked(func(s *state) error {
		s.variants[v.ID] = &v
		return nil
	})
}

// SeedUser inserta o reemplaza un usuario.
func (st *Store) SeedUser(u entity.User) {
	_ = st.locked(func(s *state) error {
		if u.MembershipTier == "" {
			u.MembershipTier = entity.TierSilver
		}
		if u.Status == "" {
			u.Status = "active"
		}
		s.users[u.ID] = &u
		return nil
	})
}

// SeedCoupon inserta o reemplaza un cupón.
func (st *Store) SeedCoupon(c entity.Coupon) {
	_ = st.locked(func(s *state) error {
		s.coupons[c.ID] = &c
		return nil
	})
}

// SeedSupplier inserta o reemplaza un proveedor.
func (st *Store) SeedSupplier(sp entity.Supplier) {
	_ = st.locked(func(s *state) error {
		s.suppliers[sp.ID] = &sp
		return nil
	})
}
