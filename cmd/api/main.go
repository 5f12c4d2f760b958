package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/tienda-backoffice/internal/application/analytics"
	"github.com/jhoicas/tienda-backoffice/internal/application/auth"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/application/orders"
	"github.com/jhoicas/tienda-backoffice/internal/application/returns"
	domainloyalty "github.com/jhoicas/tienda-backoffice/internal/domain/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/carrier"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/tienda-backoffice/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/tienda-backoffice/internal/interfaces/http"
	"github.com/jhoicas/tienda-backoffice/pkg/config"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	repos := st.repos
	prom := metrics.NewPrometheus(true)

	tiers := domainloyalty.TierThresholds{Gold: cfg.Loyalty.GoldMin, Diamond: cfg.Loyalty.DiamondMin}
	ledger := loyalty.NewLedger(cfg.Loyalty.PointsPerUnit, tiers, prom, log)

	// Transportadora: adaptador local hasta tener la integración real
	shipping := carrier.NewMockCarrier(200 * time.Millisecond)

	createOrderUC := orders.NewCreateOrderUseCase(st.tx, ledger, cfg.Loyalty.PointValue, prom, log)
	statusUC := orders.NewStatusUseCase(
		st.tx, repos.Orders, repos.Events,
		shipping, cfg.Carrier.Timeout, ledger, prom, log,
	)
	orderUC := orders.NewOrderUseCase(st.tx, repos.Orders)
	returnsUC := returns.NewUseCase(st.tx, repos.Returns, repos.Orders, statusUC, log)

	receiveGoodsUC := inventory.NewReceiveGoodsUseCase(st.tx, repos.Receipts, prom, log)
	// PDF: comprobante de la entrada de mercancía
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	receiptPDFUC := inventory.NewReceiptPDFUseCase(repos.Receipts, repos.Suppliers, repos.Variants, pdfGenerator)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.analytics, cfg.Inventory.LowStockThreshold)

	loyaltyUC := loyalty.NewUseCase(repos.Users, repos.Loyalty)
	dashboardUC := appanalytics.NewDashboardUseCase(st.analytics, cfg.Inventory.LowStockThreshold)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.Observe(log.Component("http"), prom))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Tienda Back-office API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(prom.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateOrder:  createOrderUC,
		OrderStatus:  statusUC,
		Orders:       orderUC,
		ReceiveGoods: receiveGoodsUC,
		ReceiptPDF:   receiptPDFUC,
		Restock:      replenishmentUC,
		Returns:      returnsUC,
		Loyalty:      loyaltyUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
