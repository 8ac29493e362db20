package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/usecase"
)

// ClientHandler registro de clientes de una empresa.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cliente
// @Description  Crea (o reutiliza) la cuenta del cliente, su membresía client y el registro comercial.
// @Description  Si el email ya tenía cuenta, la contraseña enviada no se aplica y la respuesta trae accountReused=true.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                   true  "ID de la empresa"
// @Param        body       body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201  {object}  dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateClient(c.UserContext(), GetUserID(c), c.Params("companyId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes activos
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {array}   dto.ClientResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListClients(c.UserContext(), GetUserID(c), c.Params("companyId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de cliente
// @Description  Cliente con sus órdenes más recientes y cobros.
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{clientId} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetClientDetails(c.UserContext(), GetUserID(c), c.Params("clientId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path  string                   true  "ID del cliente"
// @Param        body      body  dto.UpdateClientRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients/{clientId} [patch]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateClient(c.UserContext(), GetUserID(c), c.Params("clientId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
