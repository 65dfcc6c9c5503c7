// Package intake turns JSON documents and SQL tables into validated domain
// records ready for the core components.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"smartgram/pkg/domain"
)

// ErrEmptyDocument is returned for a document with no JSON value.
var ErrEmptyDocument = errors.New("intake: empty document")

var newRequestID = uuid.NewString

// RecordError locates a record that failed to validate.
type RecordError struct {
	Entity domain.EntityType
	Index  int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %d: %v", e.Entity, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// decodeDocument accepts a single JSON object or an array of objects.
func decodeDocument[T any](r io.Reader) ([]T, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	switch data[0] {
	case '[':
		var out []T
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		return out, nil
	case '{':
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		return []T{one}, nil
	default:
		return nil, fmt.Errorf("decode document: expected object or array, got %q", data[0])
	}
}

func validateAll[T any](entity domain.EntityType, in []T, build func(T) (T, error)) ([]T, error) {
	out := make([]T, 0, len(in))
	for i, rec := range in {
		v, err := build(rec)
		if err != nil {
			return nil, &RecordError{Entity: entity, Index: i, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeUnits reads administrative units.
func DecodeUnits(r io.Reader) ([]domain.AdministrativeUnit, error) {
	units, err := decodeDocument[domain.AdministrativeUnit](r)
	if err != nil {
		return nil, err
	}
	return validateAll(domain.EntityUnit, units, domain.NewAdministrativeUnit)
}

// requestDocument mirrors domain.ServiceRequest with an optional priority so
// an absent field can be told apart from an explicit 0.
type requestDocument struct {
	ID            string                 `json:"request_id"`
	UnitID        string                 `json:"panchayat_id"`
	Category      domain.ServiceCategory `json:"category"`
	Description   string                 `json:"description"`
	SubmittedDate string                 `json:"submitted_date"`
	Status        string                 `json:"status"`
	Priority      *int                   `json:"priority"`
	ResolvedDate  *string                `json:"resolved_date"`
}

func (d requestDocument) request() domain.ServiceRequest {
	r := domain.ServiceRequest{
		ID:            d.ID,
		UnitID:        d.UnitID,
		Category:      d.Category,
		Description:   d.Description,
		SubmittedDate: d.SubmittedDate,
		Status:        d.Status,
		Priority:      domain.PriorityDefault,
		ResolvedDate:  d.ResolvedDate,
	}
	if d.Priority != nil {
		r.Priority = *d.Priority
	}
	if r.ID == "" {
		r.ID = newRequestID()
	}
	return r
}

// DecodeRequests reads service requests. A request without an id gets a
// generated UUID and one without a priority gets PriorityDefault. An
// explicit priority outside 1-5 is rejected.
func DecodeRequests(r io.Reader) ([]domain.ServiceRequest, error) {
	docs, err := decodeDocument[requestDocument](r)
	if err != nil {
		return nil, err
	}
	reqs := make([]domain.ServiceRequest, len(docs))
	for i, d := range docs {
		reqs[i] = d.request()
	}
	return validateAll(domain.EntityServiceRequest, reqs, domain.NewServiceRequest)
}

// DecodeAllocations reads budget allocations.
func DecodeAllocations(r io.Reader) ([]domain.BudgetAllocation, error) {
	allocs, err := decodeDocument[domain.BudgetAllocation](r)
	if err != nil {
		return nil, err
	}
	return validateAll(domain.EntityBudgetAllocation, allocs, domain.NewBudgetAllocation)
}

// DecodeMeetings reads meeting records.
func DecodeMeetings(r io.Reader) ([]domain.MeetingRecord, error) {
	meetings, err := decodeDocument[domain.MeetingRecord](r)
	if err != nil {
		return nil, err
	}
	return validateAll(domain.EntityMeeting, meetings, domain.NewMeetingRecord)
}
