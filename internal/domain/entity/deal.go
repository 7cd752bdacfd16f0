package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la asignación de SPIFF de equipo por deal.
const (
	DealPendingAllocation = "pending_allocation"
	DealFullyAllocated    = "fully_allocated"
	DealApproved          = "approved"
	DealRejected          = "rejected"
)

// AllocationTolerance tolerancia absoluta al comparar la suma asignada contra
// el pool configurado del deal.
var AllocationTolerance = decimal.NewFromFloat(0.01)

// Roles nombrados de los miembros del equipo de un deal.
var DealTeamRoles = []string{
	"SE",
	"SE Head",
	"Product Specialist",
	"Solution Architect",
	"Partner Manager",
}

// Deal oportunidad cerrada con un pool fijo de SPIFF a repartir entre el equipo.
type Deal struct {
	ID           string
	DealName     string
	CustomerName string
	DealValueUSD decimal.Decimal
	SpiffPoolUSD decimal.Decimal
	CloseDate    time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DealTeamSpiffAllocation monto USD asignado a un miembro del equipo del deal.
type DealTeamSpiffAllocation struct {
	ID         string
	DealID     string
	EmployeeID string
	MemberRole string
	AmountUSD  decimal.Decimal
	Status     string // pending | approved | rejected
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
