package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-backoffice/pkg/config"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// backend agrupa lo que los casos de uso necesitan del almacenamiento elegido.
type backend struct {
	tx        ports.TxRunner
	repos     repository.Repos
	analytics repository.AnalyticsRepository
	close     func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		st := memory.NewStore()
		if err := seedDemo(st, cfg.Store); err != nil {
			return nil, err
		}
		log.Warn().Str("admin", cfg.Store.DemoAdminEmail).Msg("store en memoria: los datos se pierden al reiniciar")
		return &backend{tx: st, repos: st.Repos(), analytics: st.Analytics(), close: func() {}}, nil
	default:
		if cfg.DB.MigrateOnStart {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		users := postgres.NewUserRepository(pool)
		if err := ensureAdmin(ctx, users, cfg.Store); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			tx:        postgres.NewTxRunner(pool),
			repos:     postgres.NewRepos(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
			close:     pool.Close,
		}, nil
	}
}

func newAdmin(sc config.StoreConfig) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(sc.DemoAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin: %w", err)
	}
	now := time.Now()
	return &entity.User{
		ID:             uuid.New().String(),
		Email:          strings.ToLower(sc.DemoAdminEmail),
		PasswordHash:   string(hash),
		Name:           "Administrador",
		Role:           entity.RoleAdmin,
		Status:         "active",
		MembershipTier: entity.TierSilver,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ensureAdmin crea el administrador inicial si el email aún no existe.
func ensureAdmin(ctx context.Context, users *postgres.UserRepo, sc config.StoreConfig) error {
	existing, err := users.FindByEmail(ctx, strings.ToLower(sc.DemoAdminEmail))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	admin, err := newAdmin(sc)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, admin); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("crear admin: %w", err)
	}
	return nil
}

// seedDemo carga un catálogo mínimo para probar la API sin base de datos.
func seedDemo(st *memory.Store, sc config.StoreConfig) error {
	admin, err := newAdmin(sc)
	if err != nil {
		return err
	}
	st.SeedUser(*admin)
	st.SeedUser(entity.User{ID: "demo-customer", Email: "cliente@tienda.local", Name: "Cliente Demo", Role: entity.RoleCustomer})
	st.SeedSupplier(entity.Supplier{ID: "demo-supplier", Name: "Textiles Demo", Active: true})
	st.SeedVariant(entity.ProductVariant{ID: "demo-cam-m", SKU: "CAM-M-AZ", SellPrice: decimal.NewFromInt(45000), StockQuantity: 25})
	st.SeedVariant(entity.ProductVariant{ID: "demo-pan-32", SKU: "PAN-32-NG", SellPrice: decimal.NewFromInt(89000), StockQuantity: 8})
	st.SeedCoupon(entity.Coupon{ID: "demo-bienvenida", Code: "BIENVENIDA", DiscountAmount: decimal.NewFromInt(5000), MinOrderValue: decimal.NewFromInt(40000)})
	return nil
}
