package payout

import (
	"context"
	"fmt"
	"io"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// WorkingsCSVEncoder serializa el pivot como texto delimitado.
type WorkingsCSVEncoder interface {
	EncodeWorkings(w io.Writer, res *dto.WorkingsResponse) error
}

// WorkingsWorkbookEncoder serializa la corrida como libro XLSX multi-hoja:
// resumen, todos los empleados, una hoja por moneda local y el detalle del pivot.
type WorkingsWorkbookEncoder interface {
	EncodeWorkbook(res *dto.WorkingsResponse, summaries []entity.EmployeePayoutSummary, employees []*entity.Employee) ([]byte, error)
}

// StatementRenderer genera el comprobante PDF de pago de un empleado.
type StatementRenderer interface {
	RenderStatement(run *entity.PayoutRun, employee *entity.Employee, summary *entity.EmployeePayoutSummary, adjustments []*entity.PayoutAdjustment) ([]byte, error)
}

// ExportUseCase descarga del pivot y resúmenes en CSV, XLSX y PDF. El
// contenido proviene del mismo pivot que la vista JSON; los encoders solo
// dan formato.
type ExportUseCase struct {
	workings   *WorkingsUseCase
	payoutRepo repository.PayoutRepository
	empRepo    repository.EmployeeRepository
	csvEnc     WorkingsCSVEncoder
	bookEnc    WorkingsWorkbookEncoder
	pdf        StatementRenderer
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	workings *WorkingsUseCase,
	payoutRepo repository.PayoutRepository,
	empRepo repository.EmployeeRepository,
	csvEnc WorkingsCSVEncoder,
	bookEnc WorkingsWorkbookEncoder,
	pdf StatementRenderer,
) *ExportUseCase {
	return &ExportUseCase{
		workings:   workings,
		payoutRepo: payoutRepo,
		empRepo:    empRepo,
		csvEnc:     csvEnc,
		bookEnc:    bookEnc,
		pdf:        pdf,
	}
}

// ExportCSV escribe el pivot de la corrida como CSV.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, runID string, w io.Writer) error {
	res, err := uc.workings.BuildWorkings(ctx, runID)
	if err != nil {
		return err
	}
	return uc.csvEnc.EncodeWorkings(w, res)
}

// ExportWorkbook arma el libro XLSX completo de la corrida.
func (uc *ExportUseCase) ExportWorkbook(ctx context.Context, runID string) ([]byte, error) {
	res, err := uc.workings.BuildWorkings(ctx, runID)
	if err != nil {
		return nil, err
	}
	summaries, err := uc.payoutRepo.ListSummariesByRun(runID)
	if err != nil {
		return nil, err
	}
	employees, err := uc.empRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return uc.bookEnc.EncodeWorkbook(res, summaries, employees)
}

// ExportStatement genera el comprobante PDF de un empleado para la corrida.
func (uc *ExportUseCase) ExportStatement(ctx context.Context, runID, employeeID string) ([]byte, error) {
	run, err := uc.payoutRepo.GetRunByID(runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	emp, err := uc.empRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	summaries, err := uc.payoutRepo.ListSummariesByRun(runID)
	if err != nil {
		return nil, err
	}
	var summary *entity.EmployeePayoutSummary
	for i := range summaries {
		if summaries[i].EmployeeID == employeeID {
			summary = &summaries[i]
			break
		}
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: el empleado no tiene resumen en la corrida", domain.ErrNotFound)
	}
	adjustments, err := uc.payoutRepo.ListAdjustmentsByRun(runID)
	if err != nil {
		return nil, err
	}
	var own []*entity.PayoutAdjustment
	for _, a := range adjustments {
		if a.EmployeeID == employeeID && a.Status == entity.AdjustmentApproved {
			own = append(own, a)
		}
	}
	return uc.pdf.RenderStatement(run, emp, summary, own)
}
