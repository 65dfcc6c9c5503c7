package core

import (
	"context"
	"fmt"

	"smartgram/pkg/domain"
)

// RecordSource supplies validated records for loading into a Service.
type RecordSource interface {
	Units(ctx context.Context) ([]domain.AdministrativeUnit, error)
	Requests(ctx context.Context) ([]domain.ServiceRequest, error)
	Allocations(ctx context.Context) ([]domain.BudgetAllocation, error)
	Meetings(ctx context.Context) ([]domain.MeetingRecord, error)
}

// Service bundles the governance components behind one set of options.
type Service struct {
	registry *Registry
	requests *RequestTracker
	budget   *BudgetAnalyzer
	meetings *MeetingLog
	schemes  *SchemeCatalog
	logger   Logger
}

// NewService constructs every component with the same options.
func NewService(opts ...Option) *Service {
	cfg := buildOptions(opts)
	return &Service{
		registry: NewRegistry(opts...),
		requests: NewRequestTracker(opts...),
		budget:   NewBudgetAnalyzer(opts...),
		meetings: NewMeetingLog(opts...),
		schemes:  NewSchemeCatalog(opts...),
		logger:   cfg.logger,
	}
}

func (s *Service) Registry() *Registry       { return s.registry }
func (s *Service) Requests() *RequestTracker { return s.requests }
func (s *Service) Budget() *BudgetAnalyzer   { return s.budget }
func (s *Service) Meetings() *MeetingLog     { return s.meetings }
func (s *Service) Schemes() *SchemeCatalog   { return s.schemes }

// LoadUnits registers every unit from src and returns how many were read.
func (s *Service) LoadUnits(ctx context.Context, src RecordSource) (int, error) {
	units, err := src.Units(ctx)
	if err != nil {
		return 0, fmt.Errorf("load units: %w", err)
	}
	for _, u := range units {
		s.registry.Register(u)
	}
	s.logger.Debug("units loaded", "count", len(units))
	return len(units), nil
}

// LoadRequests stores every service request from src.
func (s *Service) LoadRequests(ctx context.Context, src RecordSource) (int, error) {
	reqs, err := src.Requests(ctx)
	if err != nil {
		return 0, fmt.Errorf("load requests: %w", err)
	}
	for _, r := range reqs {
		s.requests.Create(r)
	}
	s.logger.Debug("requests loaded", "count", len(reqs))
	return len(reqs), nil
}

// LoadAllocations adds every budget allocation from src.
func (s *Service) LoadAllocations(ctx context.Context, src RecordSource) (int, error) {
	allocs, err := src.Allocations(ctx)
	if err != nil {
		return 0, fmt.Errorf("load allocations: %w", err)
	}
	for _, a := range allocs {
		s.budget.Add(a)
	}
	s.logger.Debug("allocations loaded", "count", len(allocs))
	return len(allocs), nil
}

// LoadMeetings records every meeting from src.
func (s *Service) LoadMeetings(ctx context.Context, src RecordSource) (int, error) {
	meetings, err := src.Meetings(ctx)
	if err != nil {
		return 0, fmt.Errorf("load meetings: %w", err)
	}
	for _, m := range meetings {
		s.meetings.Record(m)
	}
	s.logger.Debug("meetings loaded", "count", len(meetings))
	return len(meetings), nil
}
