package core

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureMetrics struct {
	calls []string
}

func (c *captureMetrics) Observe(component, operation string) {
	c.calls = append(c.calls, component+"."+operation)
}

func TestNoopLoggerMethods(t *testing.T) {
	var l noopLogger
	assert.NotPanics(t, func() {
		l.Debug("d", "k", 1)
		l.Info("i")
		l.Warn("w")
		l.Error("e")
	})
}

func TestNilOptionsAreIgnored(t *testing.T) {
	cfg := buildOptions([]Option{nil, WithLogger(nil), WithMetrics(nil)})
	assert.IsType(t, noopLogger{}, cfg.logger)
	assert.IsType(t, noopMetricsRecorder{}, cfg.metrics)
}

func TestComponentsReportOperations(t *testing.T) {
	m := &captureMetrics{}
	r := NewRegistry(WithMetrics(m))
	r.Register(unit("GP-1", "Pune", "Maharashtra", 100, 1))
	r.Get("GP-1")
	tr := NewRequestTracker(WithMetrics(m))
	tr.Pending("")
	NewMeetingLog(WithMetrics(m)).Count("GP-1")
	NewSchemeCatalog(WithMetrics(m)).All()

	assert.Equal(t, []string{
		"registry.register",
		"registry.get",
		"requests.pending",
		"meetings.count",
		"schemes.all",
	}, m.calls)
}

func TestBudgetLogsDuplicateSchemes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewBudgetAnalyzer(WithLogger(logger))
	a.Add(alloc(testUnit, testYear, "MGNREGA", 100, 10))
	a.Add(alloc(testUnit, testYear, "MGNREGA", 100, 20))
	a.UtilizationByScheme(testUnit, testYear)

	assert.Contains(t, buf.String(), "duplicate scheme allocation")
	assert.Contains(t, buf.String(), "scheme=MGNREGA")
}
