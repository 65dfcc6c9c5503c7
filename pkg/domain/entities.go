// Package domain defines the administrative records tracked by smartgram and
// the validation rules that guard their construction.
package domain

import "math"

// EntityType identifies the kind of record a validation error refers to.
type EntityType string

// Supported entity type identifiers.
const (
	// EntityUnit identifies an administrative unit (gram panchayat).
	EntityUnit EntityType = "administrative_unit"
	// EntityServiceRequest identifies a citizen service request.
	EntityServiceRequest EntityType = "service_request"
	// EntityBudgetAllocation identifies a scheme budget allocation.
	EntityBudgetAllocation EntityType = "budget_allocation"
	// EntityMeeting identifies a meeting record.
	EntityMeeting EntityType = "meeting"
)

// ServiceCategory classifies a service request.
type ServiceCategory string

// Canonical service request categories.
const (
	CategoryInfrastructure ServiceCategory = "infrastructure"
	CategoryWelfare        ServiceCategory = "welfare"
	CategoryAgriculture    ServiceCategory = "agriculture"
	CategoryHealth         ServiceCategory = "health"
	CategoryEducation      ServiceCategory = "education"
	CategorySanitation     ServiceCategory = "sanitation"
	CategoryWater          ServiceCategory = "water"
	CategoryRoads          ServiceCategory = "roads"
)

// ServiceCategories lists every category in declaration order.
func ServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		CategoryInfrastructure,
		CategoryWelfare,
		CategoryAgriculture,
		CategoryHealth,
		CategoryEducation,
		CategorySanitation,
		CategoryWater,
		CategoryRoads,
	}
}

// Valid reports whether c is one of the canonical categories.
func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryInfrastructure, CategoryWelfare, CategoryAgriculture, CategoryHealth,
		CategoryEducation, CategorySanitation, CategoryWater, CategoryRoads:
		return true
	default:
		return false
	}
}

// Request statuses the trackers give meaning to. Status is free text; only
// these exact values are counted as pending or resolved.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// Priority bounds for service requests; 1 is the most urgent.
const (
	PriorityHighest = 1
	PriorityLowest  = 5
	PriorityDefault = 3
)

// AdministrativeUnit is a village-level governance body (gram panchayat).
type AdministrativeUnit struct {
	ID         string  `json:"panchayat_id"`
	Name       string  `json:"name"`
	Block      string  `json:"block"`
	District   string  `json:"district"`
	State      string  `json:"state"`
	Population int     `json:"population"`
	Households int     `json:"households"`
	AreaSqKm   float64 `json:"area_sq_km"`
}

// ServiceRequest is a citizen request raised against a unit. UnitID is not
// checked against any registry.
type ServiceRequest struct {
	ID            string          `json:"request_id"`
	UnitID        string          `json:"panchayat_id"`
	Category      ServiceCategory `json:"category"`
	Description   string          `json:"description"`
	SubmittedDate string          `json:"submitted_date"`
	Status        string          `json:"status"`
	Priority      int             `json:"priority"`
	ResolvedDate  *string         `json:"resolved_date,omitempty"`
}

// BudgetAllocation records the amount allocated to and spent on a scheme by a
// unit in one financial year.
type BudgetAllocation struct {
	UnitID        string  `json:"panchayat_id"`
	FinancialYear string  `json:"financial_year"`
	SchemeName    string  `json:"scheme_name"`
	Allocated     float64 `json:"allocated_amount"`
	Utilized      float64 `json:"utilized_amount"`
}

// UtilizationPct returns utilized/allocated as a percentage rounded to one
// decimal place, or 0 when nothing was allocated.
func (b BudgetAllocation) UtilizationPct() float64 {
	if b.Allocated == 0 {
		return 0
	}
	return Round1(b.Utilized / b.Allocated * 100)
}

// MeetingRecord captures the minutes of a unit meeting.
type MeetingRecord struct {
	UnitID         string   `json:"panchayat_id"`
	Date           string   `json:"date"`
	AttendeesCount int      `json:"attendees_count"`
	AgendaItems    []string `json:"agenda_items"`
	Decisions      []string `json:"decisions"`
	ActionItems    []string `json:"action_items"`
}

// SchemeInfo describes a government scheme in the reference catalog.
type SchemeInfo struct {
	Name           string         `json:"name"`
	Ministry       string         `json:"ministry"`
	Description    string         `json:"description"`
	AllocationType string         `json:"allocation_type"`
	Eligibility    EligibilityTag `json:"eligible_panchayats"`
}

// Round1 rounds v to one decimal place. Halves round away from zero, so
// Round1(0.25) is 0.3.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
