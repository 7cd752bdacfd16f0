package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/plans"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
)

// PlanHandler maneja planes de compensación con sus métricas, comisiones y SPIFFs.
type PlanHandler struct {
	uc     *usecase.PlanUseCase
	copyUC *plans.CopyPlanUseCase
}

// NewPlanHandler construye el handler.
func NewPlanHandler(uc *usecase.PlanUseCase, copyUC *plans.CopyPlanUseCase) *PlanHandler {
	return &PlanHandler{uc: uc, copyUC: copyUC}
}

// Create godoc
// @Summary      Crear plan de compensación
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.EffectiveYear == 0 {
		return badRequest(c, "VALIDATION", "name y effective_year son requeridos")
	}
	out, err := h.uc.CreatePlan(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener plan por ID
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [get]
func (h *PlanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPlanByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plan no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar planes de un año
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año efectivo (0 = todos)"
// @Success      200   {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	out, err := h.uc.ListPlans(year)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListYears godoc
// @Summary      Años con planes definidos
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  int
// @Router       /api/plans/years [get]
func (h *PlanHandler) ListYears(c *fiber.Ctx) error {
	out, err := h.uc.ListPlanYears()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar plan
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plan"
// @Param        body  body  dto.UpdatePlanRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdatePlan(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plan no encontrado"})
	}
	return c.JSON(out)
}

// Copy godoc
// @Summary      Copiar planes completos a otro año
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CopyPlansRequest  true  "IDs de origen y año destino"
// @Success      201   {object}  dto.CopyPlansResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/plans/copy [post]
func (h *PlanHandler) Copy(c *fiber.Ctx) error {
	var in dto.CopyPlansRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.SourcePlanIDs) == 0 || in.TargetYear == 0 {
		return badRequest(c, "VALIDATION", "source_plan_ids y target_year son requeridos")
	}
	out, err := h.copyUC.CopyPlans(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Métricas ──────────────────────────────────────────────────────────────────

// CreateMetric godoc
// @Summary      Crear métrica del plan con su grilla
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plan"
// @Param        body  body  dto.SaveMetricRequest  true  "Métrica y bandas"
// @Success      201   {object}  dto.MetricResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/metrics [post]
func (h *PlanHandler) CreateMetric(c *fiber.Ctx) error {
	var in dto.SaveMetricRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.MetricName == "" || in.LogicType == "" {
		return badRequest(c, "VALIDATION", "metric_name y logic_type son requeridos")
	}
	out, err := h.uc.CreateMetric(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMetrics godoc
// @Summary      Listar métricas del plan
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del plan"
// @Success      200  {array}  dto.MetricResponse
// @Router       /api/plans/{id}/metrics [get]
func (h *PlanHandler) ListMetrics(c *fiber.Ctx) error {
	out, err := h.uc.ListMetrics(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateMetric godoc
// @Summary      Actualizar métrica y reemplazar su grilla
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        metricId  path  string  true  "ID de la métrica"
// @Param        body      body  dto.SaveMetricRequest  true  "Métrica y bandas"
// @Success      200  {object}  dto.MetricResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/metrics/{metricId} [put]
func (h *PlanHandler) UpdateMetric(c *fiber.Ctx) error {
	var in dto.SaveMetricRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateMetric(c.UserContext(), c.Params("metricId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DeleteMetric godoc
// @Summary      Eliminar métrica (cascada sobre su grilla)
// @Tags         plans
// @Security     Bearer
// @Param        metricId  path  string  true  "ID de la métrica"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/metrics/{metricId} [delete]
func (h *PlanHandler) DeleteMetric(c *fiber.Ctx) error {
	if err := h.uc.DeleteMetric(c.UserContext(), c.Params("metricId")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Comisiones ────────────────────────────────────────────────────────────────

// CreateCommission godoc
// @Summary      Crear regla de comisión del plan
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plan"
// @Param        body  body  dto.CommissionRequest  true  "Regla de comisión"
// @Success      201   {object}  dto.CommissionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/commissions [post]
func (h *PlanHandler) CreateCommission(c *fiber.Ctx) error {
	var in dto.CommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CommissionType == "" {
		return badRequest(c, "VALIDATION", "commission_type es requerido")
	}
	out, err := h.uc.CreateCommission(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCommissions godoc
// @Summary      Listar comisiones del plan
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del plan"
// @Success      200  {array}  dto.CommissionResponse
// @Router       /api/plans/{id}/commissions [get]
func (h *PlanHandler) ListCommissions(c *fiber.Ctx) error {
	out, err := h.uc.ListCommissions(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateCommission godoc
// @Summary      Actualizar regla de comisión
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        commissionId  path  string  true  "ID de la comisión"
// @Param        body          body  dto.CommissionRequest  true  "Regla de comisión"
// @Success      200  {object}  dto.CommissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/commissions/{commissionId} [put]
func (h *PlanHandler) UpdateCommission(c *fiber.Ctx) error {
	var in dto.CommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateCommission(c.UserContext(), c.Params("commissionId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DeleteCommission godoc
// @Summary      Eliminar regla de comisión
// @Tags         plans
// @Security     Bearer
// @Param        id            path  string  true  "ID del plan"
// @Param        commissionId  path  string  true  "ID de la comisión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/commissions/{commissionId} [delete]
func (h *PlanHandler) DeleteCommission(c *fiber.Ctx) error {
	if err := h.uc.DeleteCommission(c.UserContext(), c.Params("id"), c.Params("commissionId")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── SPIFFs ────────────────────────────────────────────────────────────────────

// CreateSpiff godoc
// @Summary      Crear SPIFF ligado a una métrica del plan
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plan"
// @Param        body  body  dto.SpiffRequest  true  "SPIFF"
// @Success      201   {object}  dto.SpiffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/spiffs [post]
func (h *PlanHandler) CreateSpiff(c *fiber.Ctx) error {
	var in dto.SpiffRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SpiffName == "" || in.LinkedMetricName == "" {
		return badRequest(c, "VALIDATION", "spiff_name y linked_metric_name son requeridos")
	}
	out, err := h.uc.CreateSpiff(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSpiffs godoc
// @Summary      Listar SPIFFs del plan
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del plan"
// @Success      200  {array}  dto.SpiffResponse
// @Router       /api/plans/{id}/spiffs [get]
func (h *PlanHandler) ListSpiffs(c *fiber.Ctx) error {
	out, err := h.uc.ListSpiffs(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DeleteSpiff godoc
// @Summary      Eliminar SPIFF del plan
// @Tags         plans
// @Security     Bearer
// @Param        id       path  string  true  "ID del plan"
// @Param        spiffId  path  string  true  "ID del SPIFF"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/spiffs/{spiffId} [delete]
func (h *PlanHandler) DeleteSpiff(c *fiber.Ctx) error {
	if err := h.uc.DeleteSpiff(c.UserContext(), c.Params("id"), c.Params("spiffId")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
