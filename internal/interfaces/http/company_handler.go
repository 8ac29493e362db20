package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/usecase"
)

// CompanyHandler empresas del actor, empresa activa, mantenimiento y membresías.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// ListMine godoc
// @Summary      Empresas del usuario
// @Description  Empresas activas donde el actor tiene membresía activa, con su rol.
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.CompanyWithRoleResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me/companies [get]
func (h *CompanyHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListUserCompanies(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetActive godoc
// @Summary      Empresa activa
// @Description  204 si no hay empresa activa o el acceso ya no es válido.
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyWithRoleResponse
// @Success      204
// @Router       /api/me/active-company [get]
func (h *CompanyHandler) GetActive(c *fiber.Ctx) error {
	out, err := h.uc.GetActiveCompany(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Cambiar empresa activa
// @Tags         me
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.SetActiveCompanyRequest  true  "companyId"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/me/active-company [put]
func (h *CompanyHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetActiveCompany(c.UserContext(), GetUserID(c), in.CompanyID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Create godoc
// @Summary      Crear empresa
// @Description  El creador queda como admin y la empresa pasa a ser su empresa activa.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCompany(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                     true  "ID de la empresa"
// @Param        body       body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCompany(c.UserContext(), GetUserID(c), c.Params("companyId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpsertMember godoc
// @Summary      Alta o cambio de membresía de staff
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                       true  "ID de la empresa"
// @Param        body       body  dto.UpsertMembershipRequest  true  "email, role, isActive"
// @Success      200  {object}  dto.MembershipResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/members [put]
func (h *CompanyHandler) UpsertMember(c *fiber.Ctx) error {
	var in dto.UpsertMembershipRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpsertMembership(c.UserContext(), GetUserID(c), c.Params("companyId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
