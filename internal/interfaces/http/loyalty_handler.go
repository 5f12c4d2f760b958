package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
)

// LoyaltyHandler saldo y libro de puntos de un usuario.
type LoyaltyHandler struct {
	uc *loyalty.UseCase
}

// NewLoyaltyHandler construye el handler.
func NewLoyaltyHandler(uc *loyalty.UseCase) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc}
}

// Balance godoc
// @Summary      Saldo de puntos y nivel
// @Tags         loyalty
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.LoyaltyBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/loyalty [get]
func (h *LoyaltyHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Entries movimientos del libro, más recientes primero.
// GET /api/users/:id/loyalty/entries
func (h *LoyaltyHandler) Entries(c *fiber.Ctx) error {
	out, err := h.uc.Entries(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
