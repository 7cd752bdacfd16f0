package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
)

// CurrencyHandler maneja monedas y tasas de cambio mensuales.
type CurrencyHandler struct {
	uc *usecase.CurrencyUseCase
}

// NewCurrencyHandler construye el handler.
func NewCurrencyHandler(uc *usecase.CurrencyUseCase) *CurrencyHandler {
	return &CurrencyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear moneda
// @Tags         currencies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CurrencyRequest  true  "Moneda"
// @Success      201   {object}  dto.CurrencyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/currencies [post]
func (h *CurrencyHandler) Create(c *fiber.Ctx) error {
	var in dto.CurrencyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Code == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "code y name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar monedas
// @Tags         currencies
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activas"
// @Success      200     {array}  dto.CurrencyResponse
// @Router       /api/currencies [get]
func (h *CurrencyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("active", false))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar moneda
// @Tags         currencies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código ISO"
// @Param        body  body  dto.CurrencyRequest  true  "Moneda"
// @Success      200   {object}  dto.CurrencyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/currencies/{code} [put]
func (h *CurrencyHandler) Update(c *fiber.Ctx) error {
	var in dto.CurrencyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("code"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar moneda
// @Tags         currencies
// @Security     Bearer
// @Param        code  path  string  true  "Código ISO"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/currencies/{code} [delete]
func (h *CurrencyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("code")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertRate godoc
// @Summary      Registrar tasa mensual de conversión a USD
// @Tags         currencies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertRateRequest  true  "Tasa"
// @Success      200   {object}  dto.RateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/currencies/rates [put]
func (h *CurrencyHandler) UpsertRate(c *fiber.Ctx) error {
	var in dto.UpsertRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CurrencyCode == "" || in.MonthYear == "" {
		return badRequest(c, "VALIDATION", "currency_code y month_year son requeridos")
	}
	out, err := h.uc.UpsertRate(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListRates godoc
// @Summary      Listar tasas de un mes
// @Tags         currencies
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "Mes ('2025-07')"
// @Success      200    {array}  dto.RateResponse
// @Router       /api/currencies/rates [get]
func (h *CurrencyHandler) ListRates(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return badRequest(c, "VALIDATION", "month es requerido")
	}
	out, err := h.uc.ListRates(month)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
