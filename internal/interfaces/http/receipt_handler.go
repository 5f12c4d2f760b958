package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
)

// ReceiptHandler entradas de mercancía de proveedores.
type ReceiptHandler struct {
	receive *inventory.ReceiveGoodsUseCase
	pdf     *inventory.ReceiptPDFUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(receive *inventory.ReceiveGoodsUseCase, pdf *inventory.ReceiptPDFUseCase) *ReceiptHandler {
	return &ReceiptHandler{receive: receive, pdf: pdf}
}

// Create godoc
// @Summary      Registrar entrada de mercancía
// @Description  Suma stock y recalcula el costo promedio ponderado de cada variante.
// @Tags         goods-receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsReceiptRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.GoodsReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoodsReceiptRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.receive.ReceiveGoods(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entradas
// @Tags         goods-receipts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.GoodsReceiptResponse
// @Router       /api/goods-receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	out, err := h.receive.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID entrada con sus líneas.
// GET /api/goods-receipts/:id
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.receive.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Comprobante PDF de la entrada
// @Tags         goods-receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id}/pdf [get]
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.pdf.Generate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="entrada-`+id+`.pdf"`)
	return c.Send(out)
}
