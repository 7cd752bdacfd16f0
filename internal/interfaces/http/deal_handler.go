package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
)

// DealHandler maneja deals y el reparto del pool de SPIFF entre el equipo.
type DealHandler struct {
	uc *usecase.DealSpiffUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *usecase.DealSpiffUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear deal con pool de SPIFF
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealRequest  true  "Deal"
// @Success      201   {object}  dto.DealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.DealName == "" {
		return badRequest(c, "VALIDATION", "deal_name es requerido")
	}
	out, err := h.uc.CreateDeal(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener deal por ID
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del deal"
// @Success      200  {object}  dto.DealResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deals/{id} [get]
func (h *DealHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDeal(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar deals
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.DealResponse
// @Router       /api/deals [get]
func (h *DealHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListDeals(page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// SaveAllocations godoc
// @Summary      Guardar el reparto del pool entre el equipo
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del deal"
// @Param        body  body  dto.SaveAllocationsRequest  true  "Asignaciones"
// @Success      200   {array}  dto.AllocationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/allocations [put]
func (h *DealHandler) SaveAllocations(c *fiber.Ctx) error {
	var in dto.SaveAllocationsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SaveAllocations(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListAllocations godoc
// @Summary      Listar asignaciones del deal
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del deal"
// @Success      200  {array}  dto.AllocationResponse
// @Router       /api/deals/{id}/allocations [get]
func (h *DealHandler) ListAllocations(c *fiber.Ctx) error {
	out, err := h.uc.ListAllocations(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar el reparto (requiere fully_allocated)
// @Tags         deals
// @Security     Bearer
// @Param        id  path  string  true  "ID del deal"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/approve [post]
func (h *DealHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.ApproveDeal(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reject godoc
// @Summary      Rechazar el reparto (requiere fully_allocated)
// @Tags         deals
// @Security     Bearer
// @Param        id  path  string  true  "ID del deal"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/reject [post]
func (h *DealHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.RejectDeal(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
