package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a field that violates an entity invariant.
type ValidationError struct {
	Entity EntityType
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s %s", e.Entity, e.ID, e.Field, e.Reason)
}

type violations struct {
	entity EntityType
	id     string
	errs   []error
}

func (v *violations) add(field, reason string) {
	v.errs = append(v.errs, &ValidationError{Entity: v.entity, ID: v.id, Field: field, Reason: reason})
}

func (v *violations) err() error {
	return errors.Join(v.errs...)
}

// Validate checks the unit's size invariants.
func (u AdministrativeUnit) Validate() error {
	v := violations{entity: EntityUnit, id: u.ID}
	if u.Population <= 0 {
		v.add("population", "must be greater than 0")
	}
	if u.Households <= 0 {
		v.add("households", "must be greater than 0")
	}
	if u.AreaSqKm <= 0 {
		v.add("area_sq_km", "must be greater than 0")
	}
	return v.err()
}

// NewAdministrativeUnit returns u after validating it.
func NewAdministrativeUnit(u AdministrativeUnit) (AdministrativeUnit, error) {
	if err := u.Validate(); err != nil {
		return AdministrativeUnit{}, err
	}
	return u, nil
}

// Validate checks category membership and the priority range.
func (r ServiceRequest) Validate() error {
	v := violations{entity: EntityServiceRequest, id: r.ID}
	if !r.Category.Valid() {
		v.add("category", fmt.Sprintf("%q is not a known category", r.Category))
	}
	if r.Priority < PriorityHighest || r.Priority > PriorityLowest {
		v.add("priority", fmt.Sprintf("must be between %d and %d", PriorityHighest, PriorityLowest))
	}
	return v.err()
}

// NewServiceRequest fills the default status when unset and validates the
// result. Priority has no zero default: callers decoding optional input apply
// PriorityDefault when the field is absent.
func NewServiceRequest(r ServiceRequest) (ServiceRequest, error) {
	if r.Status == "" {
		r.Status = StatusPending
	}
	if err := r.Validate(); err != nil {
		return ServiceRequest{}, err
	}
	return r, nil
}

// Validate rejects negative monetary amounts.
func (b BudgetAllocation) Validate() error {
	v := violations{entity: EntityBudgetAllocation, id: b.SchemeName}
	if b.Allocated < 0 {
		v.add("allocated_amount", "must not be negative")
	}
	if b.Utilized < 0 {
		v.add("utilized_amount", "must not be negative")
	}
	return v.err()
}

// NewBudgetAllocation returns b after validating it.
func NewBudgetAllocation(b BudgetAllocation) (BudgetAllocation, error) {
	if err := b.Validate(); err != nil {
		return BudgetAllocation{}, err
	}
	return b, nil
}

// Validate rejects a negative attendee count.
func (m MeetingRecord) Validate() error {
	v := violations{entity: EntityMeeting, id: m.Date}
	if m.AttendeesCount < 0 {
		v.add("attendees_count", "must not be negative")
	}
	return v.err()
}

// NewMeetingRecord validates m and returns a copy whose item lists are not
// shared with the caller.
func NewMeetingRecord(m MeetingRecord) (MeetingRecord, error) {
	if err := m.Validate(); err != nil {
		return MeetingRecord{}, err
	}
	return m.Clone(), nil
}

// Clone returns a deep copy of m.
func (m MeetingRecord) Clone() MeetingRecord {
	cp := m
	cp.AgendaItems = append([]string(nil), m.AgendaItems...)
	cp.Decisions = append([]string(nil), m.Decisions...)
	cp.ActionItems = append([]string(nil), m.ActionItems...)
	return cp
}

// Clone returns a copy of r that does not share the resolved date.
func (r ServiceRequest) Clone() ServiceRequest {
	cp := r
	if r.ResolvedDate != nil {
		d := *r.ResolvedDate
		cp.ResolvedDate = &d
	}
	return cp
}
