package core

import (
	"strings"

	"smartgram/pkg/domain"
)

const componentRegistry = "registry"

// Registry stores administrative units by identifier and answers location
// queries over them. Iteration follows first registration order.
type Registry struct {
	units   map[string]domain.AdministrativeUnit
	order   []string
	logger  Logger
	metrics MetricsRecorder
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	cfg := buildOptions(opts)
	return &Registry{
		units:   make(map[string]domain.AdministrativeUnit),
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// Register inserts unit, replacing any unit with the same identifier. A
// replaced unit keeps its original position.
func (r *Registry) Register(unit domain.AdministrativeUnit) {
	r.metrics.Observe(componentRegistry, "register")
	if _, exists := r.units[unit.ID]; exists {
		r.logger.Debug("unit re-registered", "panchayat_id", unit.ID)
	} else {
		r.order = append(r.order, unit.ID)
	}
	r.units[unit.ID] = unit
}

// Get returns the unit registered under id.
func (r *Registry) Get(id string) (domain.AdministrativeUnit, bool) {
	r.metrics.Observe(componentRegistry, "get")
	unit, ok := r.units[id]
	return unit, ok
}

// SearchByDistrict returns units whose district contains substr, ignoring
// case.
func (r *Registry) SearchByDistrict(substr string) []domain.AdministrativeUnit {
	r.metrics.Observe(componentRegistry, "search_by_district")
	return r.filter(func(u domain.AdministrativeUnit) string { return u.District }, substr)
}

// SearchByState returns units whose state contains substr, ignoring case.
func (r *Registry) SearchByState(substr string) []domain.AdministrativeUnit {
	r.metrics.Observe(componentRegistry, "search_by_state")
	return r.filter(func(u domain.AdministrativeUnit) string { return u.State }, substr)
}

func (r *Registry) filter(field func(domain.AdministrativeUnit) string, substr string) []domain.AdministrativeUnit {
	needle := strings.ToLower(substr)
	out := make([]domain.AdministrativeUnit, 0)
	for _, id := range r.order {
		unit := r.units[id]
		if strings.Contains(strings.ToLower(field(unit)), needle) {
			out = append(out, unit)
		}
	}
	return out
}

// PopulationDensity returns persons per square kilometre rounded to one
// decimal. Unknown units and units with zero area both yield 0.
func (r *Registry) PopulationDensity(id string) float64 {
	r.metrics.Observe(componentRegistry, "population_density")
	unit, ok := r.units[id]
	if !ok || unit.AreaSqKm == 0 {
		return 0
	}
	return domain.Round1(float64(unit.Population) / unit.AreaSqKm)
}

// All returns every registered unit.
func (r *Registry) All() []domain.AdministrativeUnit {
	out := make([]domain.AdministrativeUnit, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.units[id])
	}
	return out
}

// Len reports the number of registered units.
func (r *Registry) Len() int { return len(r.order) }
