package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/importer"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
)

// TargetHandler maneja asignaciones de plan a usuarios y objetivos trimestrales.
type TargetHandler struct {
	uc       *usecase.TargetUseCase
	importer *importer.TargetImporter
}

// NewTargetHandler construye el handler.
func NewTargetHandler(uc *usecase.TargetUseCase, imp *importer.TargetImporter) *TargetHandler {
	return &TargetHandler{uc: uc, importer: imp}
}

// UpsertUserTarget godoc
// @Summary      Asignar plan y cifras OTE a un usuario
// @Tags         targets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertUserTargetRequest  true  "Asignación"
// @Success      200   {object}  dto.UserTargetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/targets/users [put]
func (h *TargetHandler) UpsertUserTarget(c *fiber.Ctx) error {
	var in dto.UpsertUserTargetRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.UserID == "" || in.PlanID == "" || in.EffectiveStartDate == "" {
		return badRequest(c, "VALIDATION", "user_id, plan_id y effective_start_date son requeridos")
	}
	out, err := h.uc.UpsertUserTarget(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListUserTargets godoc
// @Summary      Listar asignaciones de un usuario
// @Tags         targets
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {array}  dto.UserTargetResponse
// @Router       /api/targets/users/{userId} [get]
func (h *TargetHandler) ListUserTargets(c *fiber.Ctx) error {
	out, err := h.uc.ListUserTargetsByUser(c.Params("userId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DeleteUserTarget godoc
// @Summary      Eliminar asignación de plan
// @Tags         targets
// @Security     Bearer
// @Param        id  path  string  true  "ID de la asignación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/targets/users/{id} [delete]
func (h *TargetHandler) DeleteUserTarget(c *fiber.Ctx) error {
	if err := h.uc.DeleteUserTarget(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertPerformanceTarget godoc
// @Summary      Registrar objetivos trimestrales de un empleado
// @Tags         targets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertPerformanceTargetRequest  true  "Objetivos"
// @Success      200   {object}  dto.PerformanceTargetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/targets/performance [put]
func (h *TargetHandler) UpsertPerformanceTarget(c *fiber.Ctx) error {
	var in dto.UpsertPerformanceTargetRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.EmployeeID == "" || in.MetricType == "" {
		return badRequest(c, "VALIDATION", "employee_id y metric_type son requeridos")
	}
	out, err := h.uc.UpsertPerformanceTarget(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListPerformanceTargets godoc
// @Summary      Listar objetivos trimestrales de un empleado
// @Tags         targets
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200         {array}  dto.PerformanceTargetResponse
// @Router       /api/targets/performance/{employeeId} [get]
func (h *TargetHandler) ListPerformanceTargets(c *fiber.Ctx) error {
	out, err := h.uc.ListPerformanceTargets(c.Params("employeeId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Carga masiva de objetivos por CSV
// @Tags         targets
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/targets/import [post]
func (h *TargetHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "se requiere el campo file con un CSV")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo abrir el archivo")
	}
	defer f.Close()

	result, err := h.importer.Import(c.UserContext(), f)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}
