package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/orders"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// OrderHandler ciclo de vida de órdenes de servicio.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar servicio
// @Description  El actor debe tener un registro de cliente activo en la empresa. Nace en estado aberta con número OS-NNNNNN.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                  true  "ID de la empresa"
// @Param        body       body  dto.CreateOrderRequest  true  "Solicitud"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateServiceOrder(c.UserContext(), GetUserID(c), c.Params("companyId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByStatus godoc
// @Summary      Tablero de órdenes por estado
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.OrdersByStatusResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/orders [get]
func (h *OrderHandler) ListByStatus(c *fiber.Ctx) error {
	out, err := h.uc.GetOrdersByStatus(c.UserContext(), GetUserID(c), c.Params("companyId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Órdenes del cliente autenticado
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        status     query  string  false  "Filtro de estado"
// @Param        limit      query  int     false  "Límite"  default(50)
// @Success      200  {array}   dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/my-orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "status inválido"})
		}
		status = &st
	}
	out, err := h.uc.GetClientOrders(c.UserContext(), GetUserID(c), c.Params("companyId"), status, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de orden
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.EnrichedOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrderDetails(c.UserContext(), GetUserID(c), c.Params("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado
// @Description  Valida rol permitido para el estado de origen y adyacencia de la transición.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path  string                        true  "ID de la orden"
// @Param        body     body  dto.UpdateOrderStatusRequest  true  "status, notes"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateOrderStatus(c.UserContext(), GetUserID(c), c.Params("orderId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignPartner godoc
// @Summary      Asignar parceiro
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path  string                    true  "ID de la orden"
// @Param        body     body  dto.AssignPartnerRequest  true  "partnerId"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/partner [put]
func (h *OrderHandler) AssignPartner(c *fiber.Ctx) error {
	var in dto.AssignPartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AssignPartner(c.UserContext(), GetUserID(c), c.Params("orderId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPDF devuelve la ficha de la orden como application/pdf.
// GET /api/orders/:orderId/pdf
func (h *OrderHandler) GetPDF(c *fiber.Ctx) error {
	pdf, order, err := h.uc.OrderSheetPDF(c.UserContext(), GetUserID(c), c.Params("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, order.OrderNumber))
	return c.Send(pdf)
}
