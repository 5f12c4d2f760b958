package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/returns"
)

// ReturnHandler solicitudes de devolución.
type ReturnHandler struct {
	uc *returns.UseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar devolución
// @Description  Solo pedidos entregados; el reembolso es el total final del pedido.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "Pedido y motivo"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateReturn(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List todas las solicitudes, más recientes primero.
// GET /api/returns
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/returns/:id
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la devolución
// @Description  APPROVED pasa el pedido a RETURNED y deja el evento en su historial.
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "ID de la devolución"
// @Param        status  query  string  true  "APPROVED | REJECTED | REFUNDED"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/status [put]
func (h *ReturnHandler) UpdateStatus(c *fiber.Ctx) error {
	out, err := h.uc.UpdateReturnStatus(c.UserContext(), c.Params("id"), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
