package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/importer"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// EmployeeCSVEncoder puerto de exportación del directorio de empleados.
type EmployeeCSVEncoder interface {
	EncodeEmployees(w io.Writer, employees []*entity.Employee) error
}

// EmployeeHandler maneja las peticiones HTTP del directorio de empleados.
type EmployeeHandler struct {
	uc       *usecase.EmployeeUseCase
	importer *importer.EmployeeImporter
	repo     repository.EmployeeRepository
	csvEnc   EmployeeCSVEncoder
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, imp *importer.EmployeeImporter, repo repository.EmployeeRepository, csvEnc EmployeeCSVEncoder) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, importer: imp, repo: repo, csvEnc: csvEnc}
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.EmployeeID == "" || in.FullName == "" || in.Email == "" {
		return badRequest(c, "VALIDATION", "employee_id, full_name y email son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Param        limit   query  int   false  "Límite"   default(20)
// @Param        offset  query  int   false  "Offset"   default(0)
// @Success      200     {object}  dto.EmployeeListResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > dto.MaxPageLimit {
		limit = dto.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(activeOnly, limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar empleado (soft delete)
// @Tags         employees
// @Security     Bearer
// @Param        id  path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Carga masiva de empleados por CSV
// @Tags         employees
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees/import [post]
func (h *EmployeeHandler) Import(c *fiber.Ctx) error {
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

// ExportCSV godoc
// @Summary      Exportar empleados como CSV
// @Tags         employees
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /api/employees/export [get]
func (h *EmployeeHandler) ExportCSV(c *fiber.Ctx) error {
	employees, err := h.repo.ListAll()
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="employees.csv"`)
	return h.csvEnc.EncodeEmployees(c.Response().BodyWriter(), employees)
}
