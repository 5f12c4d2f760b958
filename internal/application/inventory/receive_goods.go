package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// ReceiveGoodsUseCase registra entradas de mercancía: por cada línea bloquea la variante,
// recalcula el costo promedio móvil, suma stock y al final persiste cabecera y líneas.
// Todo en una sola transacción; una línea inválida anula la entrada completa.
type ReceiveGoodsUseCase struct {
	txRunner ports.TxRunner
	receipts repository.GoodsReceiptRepository
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewReceiveGoodsUseCase construye el caso de uso.
func NewReceiveGoodsUseCase(
	txRunner ports.TxRunner,
	receipts repository.GoodsReceiptRepository,
	metrics ports.Metrics,
	log *logger.Logger,
) *ReceiveGoodsUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ReceiveGoodsUseCase{
		txRunner: txRunner,
		receipts: receipts,
		metrics:  metrics,
		log:      log.Component("goods_receipt"),
	}
}

// ReceiveGoods valida la entrada y la aplica de forma atómica.
func (uc *ReceiveGoodsUseCase) ReceiveGoods(ctx context.Context, userID string, in dto.CreateGoodsReceiptRequest) (*dto.GoodsReceiptResponse, error) {
	if userID == "" || in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.VariantID == "" || l.Quantity < 1 || !l.ImportPrice.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	receipt := &entity.GoodsReceipt{
		ID:          uuid.New().String(),
		SupplierID:  in.SupplierID,
		UserID:      userID,
		ImportDate:  now,
		Notes:       in.Notes,
		TotalAmount: decimal.Zero,
	}

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		supplier, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		for _, l := range in.Lines {
			if _, err := ReceiveInTx(ctx, repos.Variants, l.VariantID, l.Quantity, l.ImportPrice); err != nil {
				return err
			}
			receipt.Lines = append(receipt.Lines, &entity.GoodsReceiptLine{
				ID:          uuid.New().String(),
				ReceiptID:   receipt.ID,
				VariantID:   l.VariantID,
				Quantity:    l.Quantity,
				ImportPrice: l.ImportPrice,
			})
			receipt.TotalAmount = receipt.TotalAmount.Add(l.ImportPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		return repos.Receipts.Create(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.GoodsReceived(len(receipt.Lines))
	uc.log.Info().
		Str("receipt_id", receipt.ID).
		Str("supplier_id", receipt.SupplierID).
		Int("lines", len(receipt.Lines)).
		Str("total", receipt.TotalAmount.String()).
		Msg("entrada de mercancía registrada")

	out := dto.NewGoodsReceiptResponse(receipt)
	return &out, nil
}

// GetByID obtiene una entrada con sus líneas.
func (uc *ReceiveGoodsUseCase) GetByID(ctx context.Context, id string) (*dto.GoodsReceiptResponse, error) {
	r, err := uc.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewGoodsReceiptResponse(r)
	return &out, nil
}

// List lista entradas (sin líneas) con paginación.
func (uc *ReceiveGoodsUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.GoodsReceiptResponse, error) {
	page.DefaultPage()
	list, err := uc.receipts.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoodsReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewGoodsReceiptResponse(r))
	}
	return out, nil
}
