package core

import (
	"sort"

	"smartgram/pkg/domain"
)

const componentRequests = "requests"

// RequestTracker holds service requests keyed by request identifier.
type RequestTracker struct {
	requests map[string]*domain.ServiceRequest
	order    []string
	logger   Logger
	metrics  MetricsRecorder
}

// NewRequestTracker returns an empty tracker.
func NewRequestTracker(opts ...Option) *RequestTracker {
	cfg := buildOptions(opts)
	return &RequestTracker{
		requests: make(map[string]*domain.ServiceRequest),
		logger:   cfg.logger,
		metrics:  cfg.metrics,
	}
}

// Create stores req, replacing any request with the same identifier.
func (t *RequestTracker) Create(req domain.ServiceRequest) {
	t.metrics.Observe(componentRequests, "create")
	if _, exists := t.requests[req.ID]; !exists {
		t.order = append(t.order, req.ID)
	}
	stored := req.Clone()
	t.requests[req.ID] = &stored
}

// Get returns a copy of the request stored under id.
func (t *RequestTracker) Get(id string) (domain.ServiceRequest, bool) {
	req, ok := t.requests[id]
	if !ok {
		return domain.ServiceRequest{}, false
	}
	return req.Clone(), true
}

// UpdateStatus sets the status of request id and, when resolvedDate is
// non-empty, its resolution date. It reports false for an unknown id.
func (t *RequestTracker) UpdateStatus(id, status, resolvedDate string) bool {
	t.metrics.Observe(componentRequests, "update_status")
	req, ok := t.requests[id]
	if !ok {
		t.logger.Debug("status update for unknown request", "request_id", id)
		return false
	}
	req.Status = status
	if resolvedDate != "" {
		d := resolvedDate
		req.ResolvedDate = &d
	}
	t.logger.Debug("request status updated", "request_id", id, "status", status)
	return true
}

// Pending returns requests whose status is exactly "pending", most urgent
// first. Requests of equal priority keep creation order. A non-empty unitID
// restricts the result to that unit.
func (t *RequestTracker) Pending(unitID string) []domain.ServiceRequest {
	t.metrics.Observe(componentRequests, "pending")
	out := make([]domain.ServiceRequest, 0)
	for _, id := range t.order {
		req := t.requests[id]
		if req.Status != domain.StatusPending {
			continue
		}
		if unitID != "" && req.UnitID != unitID {
			continue
		}
		out = append(out, req.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// CategoryStats counts the unit's requests by category, regardless of status.
// Categories without requests are absent.
func (t *RequestTracker) CategoryStats(unitID string) map[domain.ServiceCategory]int {
	t.metrics.Observe(componentRequests, "category_stats")
	stats := make(map[domain.ServiceCategory]int)
	for _, id := range t.order {
		req := t.requests[id]
		if req.UnitID == unitID {
			stats[req.Category]++
		}
	}
	return stats
}

// ResolutionRate returns the percentage of the unit's requests whose status is
// exactly "resolved", rounded to one decimal. A unit without requests yields 0.
func (t *RequestTracker) ResolutionRate(unitID string) float64 {
	t.metrics.Observe(componentRequests, "resolution_rate")
	var total, resolved int
	for _, id := range t.order {
		req := t.requests[id]
		if req.UnitID != unitID {
			continue
		}
		total++
		if req.Status == domain.StatusResolved {
			resolved++
		}
	}
	if total == 0 {
		return 0
	}
	return domain.Round1(float64(resolved) / float64(total) * 100)
}

// Len reports the number of stored requests.
func (t *RequestTracker) Len() int { return len(t.order) }
