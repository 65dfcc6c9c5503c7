package core

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"smartgram/pkg/domain"
)

const componentBudget = "budget"

// Default utilization thresholds, in percent.
const (
	DefaultUnderThreshold = 50.0
	DefaultOverThreshold  = 90.0
)

// BudgetAnalyzer keeps an append-only list of allocations and reports on
// utilization per unit and financial year.
type BudgetAnalyzer struct {
	allocations []domain.BudgetAllocation
	under       float64
	over        float64
	logger      Logger
	metrics     MetricsRecorder
}

// NewBudgetAnalyzer returns an empty analyzer.
func NewBudgetAnalyzer(opts ...Option) *BudgetAnalyzer {
	cfg := buildOptions(opts)
	return &BudgetAnalyzer{
		under:   cfg.underThreshold,
		over:    cfg.overThreshold,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// Thresholds returns the analyzer's default under- and over-utilization
// thresholds.
func (a *BudgetAnalyzer) Thresholds() (under, over float64) {
	return a.under, a.over
}

// Add appends allocation. Duplicates are retained.
func (a *BudgetAnalyzer) Add(allocation domain.BudgetAllocation) {
	a.metrics.Observe(componentBudget, "add")
	a.allocations = append(a.allocations, allocation)
}

func (a *BudgetAnalyzer) matching(unitID, year string) []domain.BudgetAllocation {
	out := make([]domain.BudgetAllocation, 0)
	for _, alloc := range a.allocations {
		if alloc.UnitID == unitID && alloc.FinancialYear == year {
			out = append(out, alloc)
		}
	}
	return out
}

// SchemeUtilization is one scheme's utilization percentage.
type SchemeUtilization struct {
	Scheme string
	Pct    float64
}

// UtilizationByScheme maps scheme name to utilization percentage for the
// unit's allocations in year. When several allocations share a scheme name
// the last one added wins.
func (a *BudgetAnalyzer) UtilizationByScheme(unitID, year string) map[string]float64 {
	a.metrics.Observe(componentBudget, "utilization_by_scheme")
	rows := a.schemeRows(unitID, year)
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.Scheme] = row.Pct
	}
	return out
}

// SchemeUtilizations returns the same figures as UtilizationByScheme ordered
// by the first allocation of each scheme.
func (a *BudgetAnalyzer) SchemeUtilizations(unitID, year string) []SchemeUtilization {
	a.metrics.Observe(componentBudget, "scheme_utilizations")
	return a.schemeRows(unitID, year)
}

func (a *BudgetAnalyzer) schemeRows(unitID, year string) []SchemeUtilization {
	rows := make([]SchemeUtilization, 0)
	index := make(map[string]int)
	for _, alloc := range a.matching(unitID, year) {
		if i, dup := index[alloc.SchemeName]; dup {
			a.logger.Warn("duplicate scheme allocation, keeping latest",
				"panchayat_id", unitID, "financial_year", year, "scheme", alloc.SchemeName)
			rows[i].Pct = alloc.UtilizationPct()
			continue
		}
		index[alloc.SchemeName] = len(rows)
		rows = append(rows, SchemeUtilization{Scheme: alloc.SchemeName, Pct: alloc.UtilizationPct()})
	}
	return rows
}

// UnderUtilized returns the unit's allocations in year whose utilization is
// strictly below threshold.
func (a *BudgetAnalyzer) UnderUtilized(unitID, year string, threshold float64) []domain.BudgetAllocation {
	a.metrics.Observe(componentBudget, "under_utilized")
	out := make([]domain.BudgetAllocation, 0)
	for _, alloc := range a.matching(unitID, year) {
		if alloc.UtilizationPct() < threshold {
			out = append(out, alloc)
		}
	}
	return out
}

// OverUtilized returns the unit's allocations in year whose utilization is
// strictly above threshold.
func (a *BudgetAnalyzer) OverUtilized(unitID, year string, threshold float64) []domain.BudgetAllocation {
	a.metrics.Observe(componentBudget, "over_utilized")
	out := make([]domain.BudgetAllocation, 0)
	for _, alloc := range a.matching(unitID, year) {
		if alloc.UtilizationPct() > threshold {
			out = append(out, alloc)
		}
	}
	return out
}

// TotalAllocation sums the allocated amounts of the unit in year.
func (a *BudgetAnalyzer) TotalAllocation(unitID, year string) float64 {
	a.metrics.Observe(componentBudget, "total_allocation")
	return a.sum(unitID, year, func(b domain.BudgetAllocation) float64 { return b.Allocated })
}

// TotalUtilized sums the utilized amounts of the unit in year.
func (a *BudgetAnalyzer) TotalUtilized(unitID, year string) float64 {
	a.metrics.Observe(componentBudget, "total_utilized")
	return a.sum(unitID, year, func(b domain.BudgetAllocation) float64 { return b.Utilized })
}

func (a *BudgetAnalyzer) sum(unitID, year string, amount func(domain.BudgetAllocation) float64) float64 {
	total := decimal.Zero
	for _, alloc := range a.matching(unitID, year) {
		total = total.Add(decimal.NewFromFloat(amount(alloc)))
	}
	return total.InexactFloat64()
}

// RecommendReallocation returns one line of advice per allocation that falls
// under the analyzer's under-utilization threshold, in UnderUtilized order.
func (a *BudgetAnalyzer) RecommendReallocation(unitID, year string) []string {
	a.metrics.Observe(componentBudget, "recommend_reallocation")
	under := a.UnderUtilized(unitID, year, a.under)
	out := make([]string, 0, len(under))
	for _, alloc := range under {
		out = append(out, fmt.Sprintf("Reallocate Rs %s from %s (only %.0f%% utilized) to higher-need areas",
			FormatRupees(Unspent(alloc)), alloc.SchemeName, alloc.UtilizationPct()))
	}
	if len(out) > 0 {
		a.logger.Info("reallocation advised", "panchayat_id", unitID, "financial_year", year, "count", len(out))
	}
	return out
}

// Unspent returns allocated minus utilized for b.
func Unspent(b domain.BudgetAllocation) float64 {
	return decimal.NewFromFloat(b.Allocated).Sub(decimal.NewFromFloat(b.Utilized)).InexactFloat64()
}

// FormatRupees renders amount rounded to whole rupees with thousands
// separators, e.g. 210000 -> "210,000".
func FormatRupees(amount float64) string {
	return humanize.Comma(decimal.NewFromFloat(amount).Round(0).IntPart())
}
