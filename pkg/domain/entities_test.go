package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUnit() AdministrativeUnit {
	return AdministrativeUnit{
		ID:         "GP-MH-PUN-001",
		Name:       "Shivajinagar Gram Panchayat",
		Block:      "Haveli",
		District:   "Pune",
		State:      "Maharashtra",
		Population: 4500,
		Households: 890,
		AreaSqKm:   12.5,
	}
}

func TestNewAdministrativeUnit(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AdministrativeUnit)
		fields []string
	}{
		{name: "valid", mutate: func(*AdministrativeUnit) {}},
		{name: "zero population", mutate: func(u *AdministrativeUnit) { u.Population = 0 }, fields: []string{"population"}},
		{name: "negative households", mutate: func(u *AdministrativeUnit) { u.Households = -1 }, fields: []string{"households"}},
		{name: "zero area", mutate: func(u *AdministrativeUnit) { u.AreaSqKm = 0 }, fields: []string{"area_sq_km"}},
		{
			name:   "all sizes invalid",
			mutate: func(u *AdministrativeUnit) { u.Population, u.Households, u.AreaSqKm = 0, 0, -2 },
			fields: []string{"population", "households", "area_sq_km"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUnit()
			tc.mutate(&u)
			got, err := NewAdministrativeUnit(u)
			if len(tc.fields) == 0 {
				require.NoError(t, err)
				assert.Equal(t, u, got)
				return
			}
			require.Error(t, err)
			for _, field := range tc.fields {
				assert.Contains(t, err.Error(), field)
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, EntityUnit, verr.Entity)
			assert.Equal(t, u.ID, verr.ID)
		})
	}
}

func TestNewServiceRequestDefaults(t *testing.T) {
	req, err := NewServiceRequest(ServiceRequest{ID: "SR-1", UnitID: "GP-1", Category: CategoryWater, Priority: PriorityDefault})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, PriorityDefault, req.Priority)
	assert.Nil(t, req.ResolvedDate)

	_, err = NewServiceRequest(ServiceRequest{ID: "SR-2", UnitID: "GP-1", Category: CategoryWater})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "priority")
}

func TestServiceRequestValidate(t *testing.T) {
	cases := []struct {
		name     string
		priority int
		category ServiceCategory
		wantErr  string
	}{
		{name: "highest priority", priority: 1, category: CategoryRoads},
		{name: "lowest priority", priority: 5, category: CategoryHealth},
		{name: "priority above range", priority: 6, category: CategoryHealth, wantErr: "priority"},
		{name: "priority below range", priority: -1, category: CategoryHealth, wantErr: "priority"},
		{name: "zero priority", priority: 0, category: CategoryHealth, wantErr: "priority"},
		{name: "unknown category", priority: 2, category: "transport", wantErr: "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ServiceRequest{ID: "SR-1", Category: tc.category, Priority: tc.priority, Status: StatusPending}.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestServiceCategoriesAreValid(t *testing.T) {
	cats := ServiceCategories()
	assert.Len(t, cats, 8)
	for _, c := range cats {
		assert.True(t, c.Valid(), c)
	}
}

func TestUtilizationPct(t *testing.T) {
	cases := []struct {
		allocated, utilized, want float64
	}{
		{500000, 320000, 64.0},
		{800000, 760000, 95.0},
		{300000, 90000, 30.0},
		{150000, 148000, 98.7},
		{0, 1000, 0},
		{0, 0, 0},
		{1000, 1500, 150.0},
	}
	for _, tc := range cases {
		b := BudgetAllocation{Allocated: tc.allocated, Utilized: tc.utilized}
		assert.InDelta(t, tc.want, b.UtilizationPct(), 1e-9, "%v/%v", tc.utilized, tc.allocated)
	}
}

func TestNewBudgetAllocationRejectsNegativeAmounts(t *testing.T) {
	_, err := NewBudgetAllocation(BudgetAllocation{SchemeName: "MGNREGA", Allocated: -1, Utilized: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocated_amount")
	assert.Contains(t, err.Error(), "utilized_amount")

	b, err := NewBudgetAllocation(BudgetAllocation{SchemeName: "MGNREGA"})
	require.NoError(t, err)
	assert.Zero(t, b.UtilizationPct())
}

func TestNewMeetingRecord(t *testing.T) {
	_, err := NewMeetingRecord(MeetingRecord{UnitID: "GP-1", AttendeesCount: -3})
	require.Error(t, err)

	actions := []string{"repair handpump"}
	m, err := NewMeetingRecord(MeetingRecord{UnitID: "GP-1", AttendeesCount: 0, ActionItems: actions})
	require.NoError(t, err)
	actions[0] = "changed"
	assert.Equal(t, []string{"repair handpump"}, m.ActionItems)
}

func TestServiceRequestCloneDetachesResolvedDate(t *testing.T) {
	d := "2024-05-01"
	r := ServiceRequest{ID: "SR-1", ResolvedDate: &d}
	cp := r.Clone()
	*cp.ResolvedDate = "2024-06-01"
	assert.Equal(t, "2024-05-01", *r.ResolvedDate)
}

func TestEligibilityTagAdmits(t *testing.T) {
	small := AdministrativeUnit{Population: 200}
	cases := []struct {
		tag  EligibilityTag
		pop  int
		want bool
	}{
		{EligibleAll, 1, true},
		{EligibleAllRural, 1, true},
		{EligibleAllBPL, 1, true},
		{EligibleCensusTowns, 6000, true},
		{EligibleCensusTowns, 5001, true},
		{EligibleCensusTowns, 5000, false},
		{EligibleCensusTowns, 100, false},
		{EligibleUnconnectedHabitations, 250, true},
		{EligibleUnconnectedHabitations, 249, false},
		{EligibleUnconnectedHabitations, 200, false},
		{"metro_only", 100000, false},
		{"", 100000, false},
	}
	for _, tc := range cases {
		u := small
		u.Population = tc.pop
		assert.Equal(t, tc.want, tc.tag.Admits(u), "%s pop=%d", tc.tag, tc.pop)
	}
}

// Farming and housing tags cannot be evaluated against unit attributes yet;
// they admit every unit.
func TestEligibilityTagUnconditionalGap(t *testing.T) {
	for _, tag := range []EligibilityTag{EligibleFarmingHouseholds, EligibleHouselessKutcha} {
		assert.True(t, tag.Admits(AdministrativeUnit{Population: 1}), tag)
		assert.True(t, tag.Known())
	}
	assert.False(t, EligibilityTag("metro_only").Known())
}

func TestRound1HalvesAwayFromZero(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.25, 0.3},
		{0.15, 0.2},
		{-0.25, -0.3},
		{12.25, 12.3},
		{33.333, 33.3},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round1(tc.in), "Round1(%v)", tc.in)
	}
}
