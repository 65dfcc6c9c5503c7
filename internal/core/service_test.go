package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartgram/pkg/domain"
)

type stubSource struct {
	units       []domain.AdministrativeUnit
	requests    []domain.ServiceRequest
	allocations []domain.BudgetAllocation
	meetings    []domain.MeetingRecord
	err         error
}

func (s stubSource) Units(context.Context) ([]domain.AdministrativeUnit, error) {
	return s.units, s.err
}

func (s stubSource) Requests(context.Context) ([]domain.ServiceRequest, error) {
	return s.requests, s.err
}

func (s stubSource) Allocations(context.Context) ([]domain.BudgetAllocation, error) {
	return s.allocations, s.err
}

func (s stubSource) Meetings(context.Context) ([]domain.MeetingRecord, error) {
	return s.meetings, s.err
}

func TestServiceLoadsEveryKind(t *testing.T) {
	ctx := context.Background()
	metrics := &captureMetrics{}
	svc := NewService(WithMetrics(metrics), WithThresholds(40, 95))
	src := stubSource{
		units:       []domain.AdministrativeUnit{unit("GP-1", "Pune", "Maharashtra", 1000, 10)},
		requests:    []domain.ServiceRequest{request("SR-1", "GP-1", domain.CategoryWater, 2)},
		allocations: []domain.BudgetAllocation{alloc("GP-1", testYear, "MGNREGA", 100, 30)},
		meetings:    []domain.MeetingRecord{{UnitID: "GP-1", Date: "2024-07-01", ActionItems: []string{"Fix pump"}}},
	}

	n, err := svc.LoadUnits(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = svc.LoadRequests(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = svc.LoadAllocations(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = svc.LoadMeetings(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, 1, svc.Registry().Len())
	assert.Equal(t, 1, svc.Requests().Len())
	assert.Equal(t, 100.0, svc.Budget().TotalAllocation("GP-1", testYear))
	assert.Equal(t, []string{"Fix pump"}, svc.Meetings().ActionItems("GP-1"))
	assert.Len(t, svc.Schemes().All(), 15)

	under, over := svc.Budget().Thresholds()
	assert.Equal(t, 40.0, under)
	assert.Equal(t, 95.0, over)
	assert.Contains(t, metrics.calls, "registry.register")
}

func TestServiceLoadWrapsSourceErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	src := stubSource{err: errors.New("boom")}

	_, err := svc.LoadUnits(ctx, src)
	assert.ErrorContains(t, err, "load units: boom")
	_, err = svc.LoadRequests(ctx, src)
	assert.ErrorContains(t, err, "load requests")
	_, err = svc.LoadAllocations(ctx, src)
	assert.ErrorContains(t, err, "load allocations")
	_, err = svc.LoadMeetings(ctx, src)
	assert.ErrorContains(t, err, "load meetings")
	assert.Zero(t, svc.Registry().Len())
}
