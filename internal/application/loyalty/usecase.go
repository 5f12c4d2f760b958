package loyalty

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// UseCase consultas del programa de puntos.
type UseCase struct {
	users   repository.UserRepository
	entries repository.LoyaltyEntryRepository
}

// NewUseCase construye el caso de uso de lectura.
func NewUseCase(users repository.UserRepository, entries repository.LoyaltyEntryRepository) *UseCase {
	return &UseCase{users: users, entries: entries}
}

// Balance saldo materializado junto a la suma del libro; Consistent indica si coinciden.
func (uc *UseCase) Balance(ctx context.Context, userID string) (*dto.LoyaltyBalanceResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	sum, err := uc.entries.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LoyaltyBalanceResponse{
		UserID:         u.ID,
		RewardPoints:   u.RewardPoints,
		MembershipTier: u.MembershipTier,
		LedgerTotal:    sum,
		Consistent:     sum == u.RewardPoints,
	}, nil
}

// Entries entradas del libro del usuario en orden cronológico.
func (uc *UseCase) Entries(ctx context.Context, userID string) ([]dto.LoyaltyEntryResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	list, err := uc.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoyaltyEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewLoyaltyEntryResponse(e))
	}
	return out, nil
}
