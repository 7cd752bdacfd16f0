package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/importer"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// fakeEmployeeRepo repositorio en memoria para los tests de importación.
type fakeEmployeeRepo struct {
	byID map[string]*entity.Employee
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: make(map[string]*entity.Employee)}
}

func (f *fakeEmployeeRepo) Create(e *entity.Employee) error { f.byID[e.ID] = e; return nil }
func (f *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return f.byID[id], nil
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
func (f *fakeEmployeeRepo) Update(e *entity.Employee) error { f.byID[e.ID] = e; return nil }
func (f *fakeEmployeeRepo) List(bool, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) ListAll() ([]*entity.Employee, error) {
	out := make([]*entity.Employee, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}
func (f *fakeEmployeeRepo) CountByLocalCurrency(string) (int, error) { return 0, nil }

// fakeUserRepo perfiles de login en memoria, indexados por email.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{byEmail: make(map[string]*entity.User)}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.byEmail[u.Email] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.byEmail[u.Email] = u; return nil }

// fakePlanRepo solo resuelve planes por (nombre, año); el resto del puerto no
// participa en la importación.
type fakePlanRepo struct {
	plans []*entity.CompPlan
}

var _ repository.PlanRepository = (*fakePlanRepo)(nil)

func (f *fakePlanRepo) CreatePlan(p *entity.CompPlan) error { f.plans = append(f.plans, p); return nil }
func (f *fakePlanRepo) GetPlanByID(string) (*entity.CompPlan, error) { return nil, nil }
func (f *fakePlanRepo) GetPlanByNameAndYear(name string, year int) (*entity.CompPlan, error) {
	for _, p := range f.plans {
		if p.Name == name && p.EffectiveYear == year {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePlanRepo) ListPlans(int) ([]*entity.CompPlan, error) { return nil, nil }
func (f *fakePlanRepo) ListPlanYears() ([]int, error)             { return nil, nil }
func (f *fakePlanRepo) UpdatePlan(*entity.CompPlan) error         { return nil }

func (f *fakePlanRepo) CreateMetric(*entity.PlanMetric) error { return nil }
func (f *fakePlanRepo) GetMetricByID(string) (*entity.PlanMetric, error) {
	return nil, nil
}
func (f *fakePlanRepo) ListMetricsByPlan(string) ([]*entity.PlanMetric, error) { return nil, nil }
func (f *fakePlanRepo) UpdateMetric(*entity.PlanMetric) error                  { return nil }
func (f *fakePlanRepo) DeleteMetric(string) error                              { return nil }

func (f *fakePlanRepo) ReplaceTiers(string, []entity.MultiplierTier) error { return nil }
func (f *fakePlanRepo) ListTiersByMetric(string) ([]entity.MultiplierTier, error) {
	return nil, nil
}

func (f *fakePlanRepo) CreateCommission(*entity.PlanCommission) error { return nil }
func (f *fakePlanRepo) GetCommissionByID(string) (*entity.PlanCommission, error) {
	return nil, nil
}
func (f *fakePlanRepo) GetCommissionByType(string, string) (*entity.PlanCommission, error) {
	return nil, nil
}
func (f *fakePlanRepo) ListCommissionsByPlan(string) ([]*entity.PlanCommission, error) {
	return nil, nil
}
func (f *fakePlanRepo) UpdateCommission(*entity.PlanCommission) error      { return nil }
func (f *fakePlanRepo) DeleteCommission(string) error                      { return nil }
func (f *fakePlanRepo) BulkInsertCommissions([]*entity.PlanCommission) error { return nil }

func (f *fakePlanRepo) CreateSpiff(*entity.PlanSpiff) error { return nil }
func (f *fakePlanRepo) GetSpiffByID(string) (*entity.PlanSpiff, error) {
	return nil, nil
}
func (f *fakePlanRepo) ListSpiffsByPlan(string) ([]*entity.PlanSpiff, error) { return nil, nil }
func (f *fakePlanRepo) UpdateSpiff(*entity.PlanSpiff) error                  { return nil }
func (f *fakePlanRepo) DeleteSpiff(string) error                             { return nil }

// fakeTargetRepo guarda objetivos trimestrales por (empleado, métrica) y
// asignaciones de plan por (usuario, plan, fecha de inicio).
type fakeTargetRepo struct {
	perf        map[string]*entity.PerformanceTarget
	userTargets map[string]*entity.UserTarget
}

var _ repository.TargetRepository = (*fakeTargetRepo)(nil)

func newFakeTargetRepo() *fakeTargetRepo {
	return &fakeTargetRepo{
		perf:        make(map[string]*entity.PerformanceTarget),
		userTargets: make(map[string]*entity.UserTarget),
	}
}

func perfKey(employeeID, metricType string) string { return employeeID + "|" + metricType }

func (f *fakeTargetRepo) UpsertUserTarget(t *entity.UserTarget) error {
	key := t.UserID + "|" + t.PlanID + "|" + t.EffectiveStartDate.Format("2006-01-02")
	f.userTargets[key] = t
	return nil
}
func (f *fakeTargetRepo) ListUserTargetsByUser(string) ([]*entity.UserTarget, error) {
	return nil, nil
}
func (f *fakeTargetRepo) ListUserTargetsByPlan(string) ([]*entity.UserTarget, error) {
	return nil, nil
}
func (f *fakeTargetRepo) DeleteUserTarget(string) error { return nil }
func (f *fakeTargetRepo) UpsertPerformanceTarget(t *entity.PerformanceTarget) error {
	f.perf[perfKey(t.EmployeeID, t.MetricType)] = t
	return nil
}
func (f *fakeTargetRepo) GetPerformanceTarget(employeeID, metricType string) (*entity.PerformanceTarget, error) {
	return f.perf[perfKey(employeeID, metricType)], nil
}
func (f *fakeTargetRepo) ListPerformanceTargetsByEmployee(string) ([]*entity.PerformanceTarget, error) {
	return nil, nil
}
func (f *fakeTargetRepo) DeletePerformanceTarget(string) error { return nil }

// newEmployeeImporter armado por defecto, sin planes ni perfiles de login.
func newEmployeeImporter(repo *fakeEmployeeRepo) *importer.EmployeeImporter {
	return importer.NewEmployeeImporter(repo, &fakePlanRepo{}, newFakeUserRepo(), newFakeTargetRepo(), ports.NoopBus{})
}

// ── Importación de empleados ─────────────────────────────────────────────────

func TestEmployeeImport_FilaMalaNoAbortaElResto(t *testing.T) {
	repo := newFakeEmployeeRepo()
	imp := newEmployeeImporter(repo)

	csvData := strings.Join([]string{
		"employee_id,full_name,email,local_currency",
		"E001,Ana Ruiz,ana@acme.com,EUR",
		",Sin Codigo,sincodigo@acme.com,USD",
		"E003,Carlos Pena,carlos@acme.com,INR",
	}, "\n")

	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created, "las filas 1 y 3 deben crearse")
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Fila 2:", "el error reporta la fila de datos 1-based")
	assert.Contains(t, result.Errors[0], "employee_id")
}

func TestEmployeeImport_EmailTienePrecedenciaSobreEmployeeID(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.byID["uuid-ana"] = &entity.Employee{ID: "uuid-ana", EmployeeID: "E001", Email: "ana@acme.com", FullName: "Ana Ruiz", LocalCurrency: "EUR", IsActive: true}
	repo.byID["uuid-bob"] = &entity.Employee{ID: "uuid-bob", EmployeeID: "E002", Email: "bob@acme.com", FullName: "Bob Diaz", LocalCurrency: "USD", IsActive: true}
	imp := newEmployeeImporter(repo)

	// email de Ana pero employee_id de Bob: debe actualizar a Ana.
	csvData := "employee_id,full_name,email\nE002,Ana Actualizada,ana@acme.com"
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)
	ana, _ := repo.GetByID("uuid-ana")
	assert.Equal(t, "Ana Actualizada", ana.FullName)
	bob, _ := repo.GetByID("uuid-bob")
	assert.Equal(t, "Bob Diaz", bob.FullName, "el empleado del employee_id no debe tocarse")
}

func TestEmployeeImport_IsActiveSoloFalseLiteralDesactiva(t *testing.T) {
	repo := newFakeEmployeeRepo()
	imp := newEmployeeImporter(repo)

	csvData := strings.Join([]string{
		"employee_id,full_name,email,is_active",
		"E001,Uno,uno@acme.com,false",
		"E002,Dos,dos@acme.com,FALSE",
		"E003,Tres,tres@acme.com,no",
		"E004,Cuatro,cuatro@acme.com,",
	}, "\n")

	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Created)

	e1, _ := repo.GetByEmployeeID("E001")
	e2, _ := repo.GetByEmployeeID("E002")
	e3, _ := repo.GetByEmployeeID("E003")
	e4, _ := repo.GetByEmployeeID("E004")
	assert.False(t, e1.IsActive, `"false" desactiva`)
	assert.False(t, e2.IsActive, `"FALSE" desactiva (sin importar mayúsculas)`)
	assert.True(t, e3.IsActive, "cualquier otro literal queda activo")
	assert.True(t, e4.IsActive, "vacío queda activo")
}

func TestEmployeeImport_CabeceraInsensibleAMayusculasYEspacios(t *testing.T) {
	repo := newFakeEmployeeRepo()
	imp := newEmployeeImporter(repo)

	csvData := " Employee_ID , FULL_NAME , Email \nE001,Ana Ruiz,ana@acme.com"
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Errors)
}

func TestEmployeeImport_ColumnasDePlanUpsertanUserTarget(t *testing.T) {
	repo := newFakeEmployeeRepo()
	plans := &fakePlanRepo{plans: []*entity.CompPlan{
		{ID: "plan-1", Name: "Sales Rep Plan", EffectiveYear: 2025},
	}}
	users := newFakeUserRepo(&entity.User{ID: "user-ana", Email: "ana@acme.com"})
	targets := newFakeTargetRepo()
	imp := importer.NewEmployeeImporter(repo, plans, users, targets, ports.NoopBus{})

	csvData := strings.Join([]string{
		"employee_id,full_name,email,local_currency,plan_name,effective_start_date,target_value_annual,target_bonus_usd,ote_usd",
		"E001,Ana Ruiz,ana@acme.com,EUR,Sales Rep Plan,2025-01-01,500000,40000,140000",
	}, "\n")
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Errors)

	saved := targets.userTargets["user-ana|plan-1|2025-01-01"]
	require.NotNil(t, saved, "la fila con plan_name debe upsertar la asignación")
	assert.True(t, saved.TargetValueAnnual.Equal(decimal.NewFromInt(500000)))
	assert.True(t, saved.TargetBonusUSD.Equal(decimal.NewFromInt(40000)))
	assert.True(t, saved.OTEUSD.Equal(decimal.NewFromInt(140000)))

	// Segunda pasada sobre la misma clave: reemplaza, no duplica.
	result, err = imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Len(t, targets.userTargets, 1)
}

func TestEmployeeImport_PlanOPerfilSinResolverReportaLaFila(t *testing.T) {
	repo := newFakeEmployeeRepo()
	plans := &fakePlanRepo{plans: []*entity.CompPlan{
		{ID: "plan-1", Name: "Sales Rep Plan", EffectiveYear: 2025},
	}}
	users := newFakeUserRepo(&entity.User{ID: "user-ana", Email: "ana@acme.com"})
	targets := newFakeTargetRepo()
	imp := importer.NewEmployeeImporter(repo, plans, users, targets, ports.NoopBus{})

	csvData := strings.Join([]string{
		"employee_id,full_name,email,plan_name,effective_start_date",
		"E001,Ana Ruiz,ana@acme.com,Plan Fantasma,2025-01-01", // plan inexistente
		"E002,Bob Diaz,bob@acme.com,Sales Rep Plan,2025-01-01", // sin perfil de login
	}, "\n")
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created, "el empleado se aplica aunque la asignación falle")
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Fila 1:")
	assert.Contains(t, result.Errors[0], "Plan Fantasma")
	assert.Contains(t, result.Errors[1], "Fila 2:")
	assert.Contains(t, result.Errors[1], "perfil de login")
	assert.Empty(t, targets.userTargets)
}

func TestEmployeeImport_SinColumnasDePlanNoTocaAsignaciones(t *testing.T) {
	repo := newFakeEmployeeRepo()
	targets := newFakeTargetRepo()
	imp := importer.NewEmployeeImporter(repo, &fakePlanRepo{}, newFakeUserRepo(), targets, ports.NoopBus{})

	csvData := "employee_id,full_name,email\nE001,Ana Ruiz,ana@acme.com"
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Errors)
	assert.Empty(t, targets.userTargets)
}

// ── Importación de objetivos trimestrales ────────────────────────────────────

func TestTargetImport_CreaYActualiza(t *testing.T) {
	empRepo := newFakeEmployeeRepo()
	empRepo.byID["uuid-ana"] = &entity.Employee{ID: "uuid-ana", EmployeeID: "E001", Email: "ana@acme.com", IsActive: true}
	targetRepo := newFakeTargetRepo()
	imp := importer.NewTargetImporter(targetRepo, empRepo, ports.NoopBus{})

	csvData := "employee_id,metric_type,q1_target_usd,q2_target_usd,q3_target_usd,q4_target_usd\n" +
		"E001,New Software Booking,100000,120000,110000,150000"
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	saved, _ := targetRepo.GetPerformanceTarget("uuid-ana", "New Software Booking")
	require.NotNil(t, saved)
	assert.True(t, saved.AnnualTarget().Equal(decimal.NewFromInt(480000)), "el anual es la suma de trimestres")

	// Segunda pasada sobre la misma clave: actualiza, no duplica.
	result, err = imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)
}

func TestTargetImport_RechazaTodosLosTrimestresEnCero(t *testing.T) {
	empRepo := newFakeEmployeeRepo()
	empRepo.byID["uuid-ana"] = &entity.Employee{ID: "uuid-ana", EmployeeID: "E001", Email: "ana@acme.com", IsActive: true}
	targetRepo := newFakeTargetRepo()
	imp := importer.NewTargetImporter(targetRepo, empRepo, ports.NoopBus{})

	csvData := "employee_id,metric_type,q1_target_usd,q2_target_usd,q3_target_usd,q4_target_usd\n" +
		"E001,Services Revenue,0,0,0,0"
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Fila 1:")
	assert.Contains(t, result.Errors[0], "trimestre")
}

func TestTargetImport_EmpleadoInexistente(t *testing.T) {
	imp := importer.NewTargetImporter(newFakeTargetRepo(), newFakeEmployeeRepo(), ports.NoopBus{})

	csvData := "employee_id,metric_type,q1_target_usd\nE999,NRR,5000"
	result, err := imp.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "empleado no encontrado")
}
