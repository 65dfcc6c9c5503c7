package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartgram/pkg/domain"
)

func unit(id, district, state string, population int, area float64) domain.AdministrativeUnit {
	return domain.AdministrativeUnit{
		ID:         id,
		Name:       id + " Gram Panchayat",
		Block:      "Block",
		District:   district,
		State:      state,
		Population: population,
		Households: population / 5,
		AreaSqKm:   area,
	}
}

func seededRegistry() *Registry {
	r := NewRegistry()
	r.Register(unit("GP-MH-PUN-001", "Pune", "Maharashtra", 4500, 12.5))
	r.Register(unit("GP-MH-PUN-002", "Pune", "Maharashtra", 3200, 8.0))
	r.Register(unit("GP-RJ-JDP-001", "Jodhpur", "Rajasthan", 6100, 20.0))
	return r
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	u := unit("GP-1", "Pune", "Maharashtra", 1000, 4)
	r.Register(u)

	got, ok := r.Get("GP-1")
	require.True(t, ok)
	assert.Equal(t, u, got)

	_, ok = r.Get("GP-404")
	assert.False(t, ok)
}

func TestRegistryOverwriteKeepsCountAndPosition(t *testing.T) {
	r := seededRegistry()
	require.Equal(t, 3, r.Len())

	updated := unit("GP-MH-PUN-001", "Pune", "Maharashtra", 9000, 12.5)
	updated.Name = "Renamed"
	r.Register(updated)

	assert.Equal(t, 3, r.Len())
	got, ok := r.Get("GP-MH-PUN-001")
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 9000, got.Population)
	assert.Equal(t, "GP-MH-PUN-001", r.All()[0].ID)
}

func TestRegistrySearchByDistrict(t *testing.T) {
	r := seededRegistry()

	pune := r.SearchByDistrict("pune")
	require.Len(t, pune, 2)
	assert.Equal(t, "GP-MH-PUN-001", pune[0].ID)
	assert.Equal(t, "GP-MH-PUN-002", pune[1].ID)

	assert.Len(t, r.SearchByDistrict("JOD"), 1)
	none := r.SearchByDistrict("Nagpur")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRegistrySearchByState(t *testing.T) {
	r := seededRegistry()
	assert.Len(t, r.SearchByState("maha"), 2)
	raj := r.SearchByState("Rajasthan")
	require.Len(t, raj, 1)
	assert.Equal(t, "GP-RJ-JDP-001", raj[0].ID)
	assert.Len(t, r.SearchByState(""), 3)
}

func TestRegistryPopulationDensity(t *testing.T) {
	r := seededRegistry()
	assert.Equal(t, 360.0, r.PopulationDensity("GP-MH-PUN-001"))
	assert.Equal(t, 400.0, r.PopulationDensity("GP-MH-PUN-002"))
	assert.Equal(t, 305.0, r.PopulationDensity("GP-RJ-JDP-001"))
	assert.Zero(t, r.PopulationDensity("missing"))

	r.Register(unit("GP-THIRDS", "X", "Y", 1000, 3))
	assert.Equal(t, 333.3, r.PopulationDensity("GP-THIRDS"))

	// Area is validated at construction; a hand-built record can still carry 0.
	r.Register(unit("GP-ZERO", "X", "Y", 1000, 0))
	assert.Zero(t, r.PopulationDensity("GP-ZERO"))
}

func TestRegistryAllReturnsInsertionOrder(t *testing.T) {
	r := seededRegistry()
	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"GP-MH-PUN-001", "GP-MH-PUN-002", "GP-RJ-JDP-001"},
		[]string{all[0].ID, all[1].ID, all[2].ID})

	all[0].Name = "mutated"
	got, _ := r.Get("GP-MH-PUN-001")
	assert.NotEqual(t, "mutated", got.Name)

	assert.Empty(t, NewRegistry().All())
}
