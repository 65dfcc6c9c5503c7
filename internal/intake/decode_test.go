package intake

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartgram/pkg/domain"
)

const unitsDoc = `[
  {"panchayat_id": "GP-MH-PUN-001", "name": "Wagholi", "block": "Haveli", "district": "Pune", "state": "Maharashtra", "population": 12000, "households": 2400, "area_sq_km": 24.5},
  {"panchayat_id": "GP-MH-PUN-002", "name": "Lohegaon", "block": "Haveli", "district": "Pune", "state": "Maharashtra", "population": 8000, "households": 1600, "area_sq_km": 16}
]`

func TestDecodeUnits(t *testing.T) {
	units, err := DecodeUnits(strings.NewReader(unitsDoc))
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Wagholi", units[0].Name)
	assert.Equal(t, 24.5, units[0].AreaSqKm)
	assert.Equal(t, 1600, units[1].Households)
}

func TestDecodeAcceptsSingleObject(t *testing.T) {
	units, err := DecodeUnits(strings.NewReader(`  {"panchayat_id": "GP-1", "name": "A", "population": 10, "households": 2, "area_sq_km": 1}`))
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "GP-1", units[0].ID)
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	_, err := DecodeUnits(strings.NewReader("   "))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = DecodeUnits(strings.NewReader(`"just a string"`))
	assert.ErrorContains(t, err, "expected object or array")

	_, err = DecodeUnits(strings.NewReader(`[{"panchayat_id": 7}]`))
	assert.ErrorContains(t, err, "decode document")
}

func TestDecodeReportsInvalidRecordIndex(t *testing.T) {
	_, err := DecodeUnits(strings.NewReader(`[
		{"panchayat_id": "GP-1", "population": 10, "households": 2, "area_sq_km": 1},
		{"panchayat_id": "GP-2", "population": 0, "households": 2, "area_sq_km": 1}
	]`))
	require.Error(t, err)
	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 1, recErr.Index)
	assert.Equal(t, domain.EntityUnit, recErr.Entity)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "population", vErr.Field)
}

func TestDecodeRequestsAppliesDefaults(t *testing.T) {
	reqs, err := DecodeRequests(strings.NewReader(`[
		{"request_id": "SR-1", "panchayat_id": "GP-1", "category": "water", "description": "Handpump broken", "submitted_date": "2024-06-01"},
		{"panchayat_id": "GP-1", "category": "roads", "description": "Pothole", "submitted_date": "2024-06-02", "priority": 1, "status": "resolved", "resolved_date": "2024-06-05"}
	]`))
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "SR-1", reqs[0].ID)
	assert.Equal(t, domain.StatusPending, reqs[0].Status)
	assert.Equal(t, domain.PriorityDefault, reqs[0].Priority)
	assert.Nil(t, reqs[0].ResolvedDate)

	_, err = uuid.Parse(reqs[1].ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, reqs[1].Priority)
	require.NotNil(t, reqs[1].ResolvedDate)
	assert.Equal(t, "2024-06-05", *reqs[1].ResolvedDate)
}

func TestDecodeRequestsRejectsExplicitZeroPriority(t *testing.T) {
	_, err := DecodeRequests(strings.NewReader(`{"request_id": "R1", "panchayat_id": "GP-1", "category": "water", "description": "Tank", "submitted_date": "2024-06-01", "priority": 0}`))
	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 0, recErr.Index)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "priority", vErr.Field)
}

func TestDecodeRequestsUsesIDGenerator(t *testing.T) {
	orig := newRequestID
	t.Cleanup(func() { newRequestID = orig })
	newRequestID = func() string { return "generated" }

	reqs, err := DecodeRequests(strings.NewReader(`{"panchayat_id": "GP-1", "category": "health", "description": "PHC", "submitted_date": "2024-06-01"}`))
	require.NoError(t, err)
	assert.Equal(t, "generated", reqs[0].ID)
}

func TestDecodeRequestsRejectsUnknownCategory(t *testing.T) {
	_, err := DecodeRequests(strings.NewReader(`{"request_id": "SR-9", "category": "telecom", "submitted_date": "2024-06-01"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestDecodeAllocationsAndMeetings(t *testing.T) {
	allocs, err := DecodeAllocations(strings.NewReader(`[{"panchayat_id": "GP-1", "financial_year": "2024-25", "scheme_name": "MGNREGA", "allocated_amount": 500000, "utilized_amount": 150000}]`))
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, 30.0, allocs[0].UtilizationPct())

	_, err = DecodeAllocations(strings.NewReader(`{"scheme_name": "X", "allocated_amount": -1}`))
	assert.Error(t, err)

	meetings, err := DecodeMeetings(strings.NewReader(`{"panchayat_id": "GP-1", "date": "2024-07-01", "attendees_count": 45, "agenda_items": ["Water"], "decisions": [], "action_items": ["Repair handpump"]}`))
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Equal(t, []string{"Repair handpump"}, meetings[0].ActionItems)

	_, err = DecodeMeetings(strings.NewReader(`{"panchayat_id": "GP-1", "attendees_count": -3}`))
	assert.Error(t, err)
}
