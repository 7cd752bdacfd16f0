package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	apppayout "github.com/mohan98521/gtm-variable-pay-sub001/internal/application/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
)

// PayoutHandler maneja corridas mensuales, ajustes, el pivot de workings y las descargas.
type PayoutHandler struct {
	uc       *usecase.PayoutUseCase
	workings *apppayout.WorkingsUseCase
	export   *apppayout.ExportUseCase
}

// NewPayoutHandler construye el handler.
func NewPayoutHandler(uc *usecase.PayoutUseCase, workings *apppayout.WorkingsUseCase, export *apppayout.ExportUseCase) *PayoutHandler {
	return &PayoutHandler{uc: uc, workings: workings, export: export}
}

// CreateRun godoc
// @Summary      Crear corrida mensual
// @Tags         payouts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRunRequest  true  "Mes ('2025-07')"
// @Success      201   {object}  dto.RunResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payout-runs [post]
func (h *PayoutHandler) CreateRun(c *fiber.Ctx) error {
	var in dto.CreateRunRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.MonthYear == "" {
		return badRequest(c, "VALIDATION", "month_year es requerido")
	}
	out, err := h.uc.CreateRun(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRun godoc
// @Summary      Obtener corrida por ID
// @Tags         payouts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la corrida"
// @Success      200  {object}  dto.RunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payout-runs/{id} [get]
func (h *PayoutHandler) GetRun(c *fiber.Ctx) error {
	out, err := h.uc.GetRunByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "corrida no encontrada"})
	}
	return c.JSON(out)
}

// ListRuns godoc
// @Summary      Listar corridas (más recientes primero)
// @Tags         payouts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.RunResponse
// @Router       /api/payout-runs [get]
func (h *PayoutHandler) ListRuns(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListRuns(page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Avanzar el estado de la corrida (draft→review→approved→finalized→paid)
// @Tags         payouts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la corrida"
// @Param        body  body  dto.RunStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.RunResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payout-runs/{id}/status [put]
func (h *PayoutHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.RunStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, "VALIDATION", "status es requerido")
	}
	out, err := h.uc.ChangeRunStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Workings godoc
// @Summary      Pivot de workings de la corrida
// @Tags         payouts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la corrida"
// @Success      200  {object}  dto.WorkingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payout-runs/{id}/workings [get]
func (h *PayoutHandler) Workings(c *fiber.Ctx) error {
	out, err := h.workings.BuildWorkings(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RefreshSummaries godoc
// @Summary      Recalcular los resúmenes por empleado de la corrida
// @Tags         payouts
// @Security     Bearer
// @Param        id  path  string  true  "ID de la corrida"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payout-runs/{id}/summaries/refresh [post]
func (h *PayoutHandler) RefreshSummaries(c *fiber.Ctx) error {
	if err := h.workings.RefreshSummaries(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV godoc
// @Summary      Descargar el pivot de la corrida como CSV
// @Tags         payouts
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  string  true  "ID de la corrida"
// @Success      200
// @Router       /api/payout-runs/{id}/export/csv [get]
func (h *PayoutHandler) ExportCSV(c *fiber.Ctx) error {
	runID := c.Params("id")
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="workings-%s.csv"`, runID))
	if err := h.export.ExportCSV(c.UserContext(), runID, c.Response().BodyWriter()); err != nil {
		return handleError(c, err)
	}
	return nil
}

// ExportXLSX godoc
// @Summary      Descargar el libro XLSX completo de la corrida
// @Tags         payouts
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "ID de la corrida"
// @Success      200
// @Router       /api/payout-runs/{id}/export/xlsx [get]
func (h *PayoutHandler) ExportXLSX(c *fiber.Ctx) error {
	runID := c.Params("id")
	book, err := h.export.ExportWorkbook(c.UserContext(), runID)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="payout-%s.xlsx"`, runID))
	return c.Send(book)
}

// ExportStatement godoc
// @Summary      Comprobante PDF de pago de un empleado
// @Tags         payouts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id          path  string  true  "ID de la corrida"
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payout-runs/{id}/statements/{employeeId} [get]
func (h *PayoutHandler) ExportStatement(c *fiber.Ctx) error {
	pdf, err := h.export.ExportStatement(c.UserContext(), c.Params("id"), c.Params("employeeId"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.pdf"`)
	return c.Send(pdf)
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

// CreateAdjustment godoc
// @Summary      Crear ajuste manual sobre una corrida en review
// @Tags         payouts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la corrida"
// @Param        body  body  dto.CreateAdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payout-runs/{id}/adjustments [post]
func (h *PayoutHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.EmployeeID == "" || in.Type == "" || in.Reason == "" {
		return badRequest(c, "VALIDATION", "employee_id, type y reason son requeridos")
	}
	out, err := h.uc.CreateAdjustment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAdjustments godoc
// @Summary      Listar ajustes de una corrida
// @Tags         payouts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la corrida"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/payout-runs/{id}/adjustments [get]
func (h *PayoutHandler) ListAdjustments(c *fiber.Ctx) error {
	out, err := h.uc.ListAdjustments(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ApproveAdjustment godoc
// @Summary      Aprobar ajuste pendiente
// @Tags         payouts
// @Security     Bearer
// @Produce      json
// @Param        adjustmentId  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{adjustmentId}/approve [post]
func (h *PayoutHandler) ApproveAdjustment(c *fiber.Ctx) error {
	out, err := h.uc.ApproveAdjustment(c.UserContext(), c.Params("adjustmentId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RejectAdjustment godoc
// @Summary      Rechazar ajuste pendiente
// @Tags         payouts
// @Security     Bearer
// @Produce      json
// @Param        adjustmentId  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{adjustmentId}/reject [post]
func (h *PayoutHandler) RejectAdjustment(c *fiber.Ctx) error {
	out, err := h.uc.RejectAdjustment(c.UserContext(), c.Params("adjustmentId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DeleteAdjustment godoc
// @Summary      Eliminar ajuste pendiente
// @Tags         payouts
// @Security     Bearer
// @Param        adjustmentId  path  string  true  "ID del ajuste"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{adjustmentId} [delete]
func (h *PayoutHandler) DeleteAdjustment(c *fiber.Ctx) error {
	if err := h.uc.DeleteAdjustment(c.UserContext(), c.Params("adjustmentId")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
