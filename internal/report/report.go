// Package report renders plain-text governance summaries for terminals and
// saved report documents.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"smartgram/internal/core"
	"smartgram/pkg/domain"
)

// Disclaimer closes every report.
const Disclaimer = "This tool provides AI-assisted governance analysis only. " +
	"All decisions must follow official Panchayati Raj guidelines and be approved through proper administrative channels."

// DescriptionWidth bounds request descriptions in the pending listing, in runes.
const DescriptionWidth = 60

// LowUtilizationMark is the percentage below which a budget row is flagged.
const LowUtilizationMark = 50.0

// printer keeps the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) { p.printf("%s\n", s) }

func (p *printer) finish() error {
	p.printf("\n%s\n", Disclaimer)
	return p.err
}

// Registration prints a unit summary with its population density.
func Registration(w io.Writer, unit domain.AdministrativeUnit, density float64) error {
	p := &printer{w: w}
	p.printf("Registered: %s (%s)\n", unit.Name, unit.ID)
	p.printf("  Block: %s, District: %s, State: %s\n", unit.Block, unit.District, unit.State)
	p.printf("  Population: %s | Households: %s\n",
		humanize.Comma(int64(unit.Population)), humanize.Comma(int64(unit.Households)))
	p.printf("  Population density: %.0f/sq km\n", density)
	return p.finish()
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Pending lists requests in the order given.
func Pending(w io.Writer, requests []domain.ServiceRequest) error {
	p := &printer{w: w}
	p.printf("Pending requests: %d\n", len(requests))
	for _, r := range requests {
		p.printf("  [%d] %s: %s - %s\n", r.Priority, r.ID, r.Category, Truncate(r.Description, DescriptionWidth))
	}
	return p.finish()
}

// ServiceStats prints per-category counts in category order followed by the
// resolution rate.
func ServiceStats(w io.Writer, unitID string, stats map[domain.ServiceCategory]int, rate float64) error {
	p := &printer{w: w}
	p.printf("Service requests for %s\n", unitID)
	for _, c := range domain.ServiceCategories() {
		if n, ok := stats[c]; ok {
			p.printf("  %-15s %d\n", c, n)
		}
	}
	p.printf("Resolution rate: %.1f%%\n", rate)
	return p.finish()
}

// BudgetView is the data behind a budget report.
type BudgetView struct {
	UnitID          string
	Year            string
	TotalAllocated  float64
	TotalUtilized   float64
	Schemes         []core.SchemeUtilization
	Recommendations []string
}

// Budget prints totals, a per-scheme utilization table and any
// recommendations.
func Budget(w io.Writer, v BudgetView) error {
	p := &printer{w: w}
	overall := 0.0
	if v.TotalAllocated > 0 {
		overall = v.TotalUtilized / v.TotalAllocated * 100
	}
	p.printf("\nBudget Analysis: %s | FY %s\n", v.UnitID, v.Year)
	p.println(strings.Repeat("=", 55))
	p.printf("Total allocated: Rs %s\n", core.FormatRupees(v.TotalAllocated))
	p.printf("Total utilized:  Rs %s (%.1f%%)\n\n", core.FormatRupees(v.TotalUtilized), overall)
	p.printf("%-25s %12s\n", "Scheme", "Utilization")
	p.println(strings.Repeat("-", 40))
	for _, s := range v.Schemes {
		mark := "OK"
		if s.Pct < LowUtilizationMark {
			mark = "!!"
		}
		p.printf("%-25s %10.1f%%  %s\n", s.Scheme, s.Pct, mark)
	}
	if len(v.Recommendations) > 0 {
		p.println("\nRecommendations:")
		for _, rec := range v.Recommendations {
			p.printf("  - %s\n", rec)
		}
	}
	return p.finish()
}

// Schemes lists catalog entries.
func Schemes(w io.Writer, schemes []domain.SchemeInfo) error {
	p := &printer{w: w}
	p.printf("\n%d scheme(s) found:\n\n", len(schemes))
	for _, s := range schemes {
		p.printf("  %s\n", s.Name)
		p.printf("  Ministry: %s\n", s.Ministry)
		p.printf("  %s\n\n", s.Description)
	}
	return p.finish()
}

// Meetings prints the meeting count and the flattened action items of a unit.
func Meetings(w io.Writer, unitID string, meetings []domain.MeetingRecord, actions []string) error {
	p := &printer{w: w}
	p.printf("Meetings for %s: %d\n", unitID, len(meetings))
	for _, m := range meetings {
		p.printf("  %s  attendees: %d  decisions: %d\n", m.Date, m.AttendeesCount, len(m.Decisions))
	}
	if len(actions) == 0 {
		p.println("No action items recorded.")
		return p.finish()
	}
	p.println("Action items:")
	for _, a := range actions {
		p.printf("  - %s\n", a)
	}
	return p.finish()
}
