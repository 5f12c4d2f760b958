package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
)

// InventoryHandler consultas de inventario para compras.
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Variantes bajo el umbral de stock con la compra sugerida, ordenadas por prioridad.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
