package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	dompayout "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.PayoutRepository = (*fakePayoutRepo)(nil)

type fakePayoutRepo struct {
	runs        map[string]*entity.PayoutRun
	adjustments map[string]*entity.PayoutAdjustment
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{
		runs:        map[string]*entity.PayoutRun{},
		adjustments: map[string]*entity.PayoutAdjustment{},
	}
}

func (f *fakePayoutRepo) CreateRun(r *entity.PayoutRun) error {
	cp := *r
	f.runs[r.ID] = &cp
	return nil
}

func (f *fakePayoutRepo) GetRunByID(id string) (*entity.PayoutRun, error) {
	r, ok := f.runs[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakePayoutRepo) GetRunByMonth(monthYear string) (*entity.PayoutRun, error) {
	for _, r := range f.runs {
		if r.MonthYear == monthYear {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePayoutRepo) ListRuns(limit, offset int) ([]*entity.PayoutRun, error) {
	var out []*entity.PayoutRun
	for _, r := range f.runs {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePayoutRepo) UpdateRunStatus(id, status string) error {
	r, ok := f.runs[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakePayoutRepo) ListDetailsByRun(string) ([]entity.PayoutDetail, error) { return nil, nil }
func (f *fakePayoutRepo) ListEmployeeInfoByRun(string) ([]dompayout.EmployeeInfo, error) {
	return nil, nil
}
func (f *fakePayoutRepo) ReplaceSummaries(string, []entity.EmployeePayoutSummary) error { return nil }
func (f *fakePayoutRepo) ListSummariesByRun(string) ([]entity.EmployeePayoutSummary, error) {
	return nil, nil
}

func (f *fakePayoutRepo) CreateAdjustment(a *entity.PayoutAdjustment) error {
	cp := *a
	f.adjustments[a.ID] = &cp
	return nil
}

func (f *fakePayoutRepo) GetAdjustmentByID(id string) (*entity.PayoutAdjustment, error) {
	a, ok := f.adjustments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakePayoutRepo) ListAdjustmentsByRun(runID string) ([]*entity.PayoutAdjustment, error) {
	var out []*entity.PayoutAdjustment
	for _, a := range f.adjustments {
		if a.RunID == runID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePayoutRepo) UpdateAdjustmentStatus(id, status string) error {
	a, ok := f.adjustments[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakePayoutRepo) DeleteAdjustment(id string) error {
	if _, ok := f.adjustments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.adjustments, id)
	return nil
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)

type fakeEmployeeRepo struct {
	byID map[string]*entity.Employee
}

func newFakeEmployeeRepo(employees ...*entity.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{byID: map[string]*entity.Employee{}}
	for _, e := range employees {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(e *entity.Employee) error {
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(email string) (*entity.Employee, error) {
	for _, e := range f.byID {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeID(employeeID string) (*entity.Employee, error) {
	for _, e := range f.byID {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(e *entity.Employee) error {
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) List(bool, int, int) ([]*entity.Employee, error) { return nil, nil }

func (f *fakeEmployeeRepo) ListAll() ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) CountByLocalCurrency(code string) (int, error) {
	n := 0
	for _, e := range f.byID {
		if e.LocalCurrency == code {
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func testEmployee(id string) *entity.Employee {
	return &entity.Employee{
		ID:            id,
		EmployeeID:    "E-" + id,
		FullName:      "Empleado " + id,
		Email:         id + "@acme.com",
		LocalCurrency: "USD",
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func buildPayoutUC(repo *fakePayoutRepo, employees ...*entity.Employee) *usecase.PayoutUseCase {
	return usecase.NewPayoutUseCase(repo, newFakeEmployeeRepo(employees...), ports.NoopBus{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Corridas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRun_MesInvalidoRechazado(t *testing.T) {
	uc := buildPayoutUC(newFakePayoutRepo())

	for _, bad := range []string{"2025-13", "2025-00", "202507", "07-2025", "2025-7"} {
		_, err := uc.CreateRun(context.Background(), dto.CreateRunRequest{MonthYear: bad})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "month_year %q debe rechazarse", bad)
	}
}

func TestCreateRun_DuplicadoPorMes(t *testing.T) {
	uc := buildPayoutUC(newFakePayoutRepo())

	_, err := uc.CreateRun(context.Background(), dto.CreateRunRequest{MonthYear: "2025-07"})
	require.NoError(t, err)

	_, err = uc.CreateRun(context.Background(), dto.CreateRunRequest{MonthYear: "2025-07"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el mes ya tiene corrida")
}

func TestChangeRunStatus_CicloSecuencialCompleto(t *testing.T) {
	repo := newFakePayoutRepo()
	uc := buildPayoutUC(repo)

	out, err := uc.CreateRun(context.Background(), dto.CreateRunRequest{MonthYear: "2025-07"})
	require.NoError(t, err)
	require.Equal(t, entity.RunStatusDraft, out.Status)

	for _, next := range []string{
		entity.RunStatusReview, entity.RunStatusApproved,
		entity.RunStatusFinalized, entity.RunStatusPaid,
	} {
		out, err = uc.ChangeRunStatus(context.Background(), out.ID, dto.RunStatusRequest{Status: next})
		require.NoError(t, err, "transición a %s debe permitirse", next)
		assert.Equal(t, next, out.Status)
	}
}

func TestChangeRunStatus_SaltoYRetrocesoRechazados(t *testing.T) {
	repo := newFakePayoutRepo()
	uc := buildPayoutUC(repo)

	out, err := uc.CreateRun(context.Background(), dto.CreateRunRequest{MonthYear: "2025-07"})
	require.NoError(t, err)

	// Salto draft → approved
	_, err = uc.ChangeRunStatus(context.Background(), out.ID, dto.RunStatusRequest{Status: entity.RunStatusApproved})
	assert.ErrorIs(t, err, domain.ErrRunStatus, "no se puede saltar review")

	// Retroceso review → draft
	_, err = uc.ChangeRunStatus(context.Background(), out.ID, dto.RunStatusRequest{Status: entity.RunStatusReview})
	require.NoError(t, err)
	_, err = uc.ChangeRunStatus(context.Background(), out.ID, dto.RunStatusRequest{Status: entity.RunStatusDraft})
	assert.ErrorIs(t, err, domain.ErrRunStatus, "no se puede retroceder")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func seedRunInReview(t *testing.T, uc *usecase.PayoutUseCase) string {
	t.Helper()
	out, err := uc.CreateRun(context.Background(), dto.CreateRunRequest{MonthYear: "2025-07"})
	require.NoError(t, err)
	_, err = uc.ChangeRunStatus(context.Background(), out.ID, dto.RunStatusRequest{Status: entity.RunStatusReview})
	require.NoError(t, err)
	return out.ID
}

func validAdjustment() dto.CreateAdjustmentRequest {
	return dto.CreateAdjustmentRequest{
		EmployeeID:          "emp-1",
		Type:                entity.AdjustmentTypeCorrection,
		AdjustmentAmountUSD: decimal.NewFromInt(150),
		Reason:              "corrección de actuals de junio",
	}
}

func TestCreateAdjustment_SoloEnReview(t *testing.T) {
	repo := newFakePayoutRepo()
	uc := buildPayoutUC(repo, testEmployee("emp-1"))

	out, err := uc.CreateRun(context.Background(), dto.CreateRunRequest{MonthYear: "2025-07"})
	require.NoError(t, err)

	// En draft se rechaza
	_, err = uc.CreateAdjustment(context.Background(), out.ID, validAdjustment())
	assert.ErrorIs(t, err, domain.ErrRunStatus)

	// En review se acepta, nace pendiente
	_, err = uc.ChangeRunStatus(context.Background(), out.ID, dto.RunStatusRequest{Status: entity.RunStatusReview})
	require.NoError(t, err)
	adj, err := uc.CreateAdjustment(context.Background(), out.ID, validAdjustment())
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentPending, adj.Status)
}

func TestCreateAdjustment_Validaciones(t *testing.T) {
	repo := newFakePayoutRepo()
	uc := buildPayoutUC(repo, testEmployee("emp-1"))
	runID := seedRunInReview(t, uc)

	// Razón obligatoria
	in := validAdjustment()
	in.Reason = ""
	_, err := uc.CreateAdjustment(context.Background(), runID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la razón es obligatoria")

	// Tipo desconocido
	in = validAdjustment()
	in.Type = "bonus_doubling"
	_, err = uc.CreateAdjustment(context.Background(), runID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido debe rechazarse")

	// Empleado inexistente
	in = validAdjustment()
	in.EmployeeID = "ghost"
	_, err = uc.CreateAdjustment(context.Background(), runID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveAdjustment_SoloPendientes(t *testing.T) {
	repo := newFakePayoutRepo()
	uc := buildPayoutUC(repo, testEmployee("emp-1"))
	runID := seedRunInReview(t, uc)

	adj, err := uc.CreateAdjustment(context.Background(), runID, validAdjustment())
	require.NoError(t, err)

	out, err := uc.ApproveAdjustment(context.Background(), adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentApproved, out.Status)

	// Un ajuste ya resuelto no se vuelve a resolver
	_, err = uc.RejectAdjustment(context.Background(), adj.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "ajuste ya aprobado no puede rechazarse")
}

func TestDeleteAdjustment_SoloPendientes(t *testing.T) {
	repo := newFakePayoutRepo()
	uc := buildPayoutUC(repo, testEmployee("emp-1"))
	runID := seedRunInReview(t, uc)

	adj, err := uc.CreateAdjustment(context.Background(), runID, validAdjustment())
	require.NoError(t, err)

	_, err = uc.ApproveAdjustment(context.Background(), adj.ID)
	require.NoError(t, err)

	err = uc.DeleteAdjustment(context.Background(), adj.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "solo se eliminan ajustes pendientes")

	// Uno pendiente sí se elimina
	adj2, err := uc.CreateAdjustment(context.Background(), runID, validAdjustment())
	require.NoError(t, err)
	require.NoError(t, uc.DeleteAdjustment(context.Background(), adj2.ID))

	got, err := uc.ListAdjustments(runID)
	require.NoError(t, err)
	assert.Len(t, got, 1, "solo queda el ajuste aprobado")
}
