package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"smartgram/internal/report"
	"smartgram/pkg/domain"
)

func newRegisterCmd(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register administrative units and print their summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.source(ctx, input)
			if err != nil {
				return err
			}
			if _, err := a.svc.LoadUnits(ctx, src); err != nil {
				return err
			}
			reg := a.svc.Registry()
			return a.emit(ctx, func(w io.Writer) error {
				for _, u := range reg.All() {
					if err := report.Registration(w, u, reg.PopulationDensity(u.ID)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "units document (path or blob:KEY)")
	return cmd
}

func newServiceCmd(a *app) *cobra.Command {
	var (
		input        string
		resolveID    string
		resolvedDate string
		unitID       string
		showStatus   bool
	)
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Track service requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.source(ctx, input)
			if err != nil {
				return err
			}
			if _, err := a.svc.LoadRequests(ctx, src); err != nil {
				return err
			}
			tracker := a.svc.Requests()
			if resolveID != "" {
				if !tracker.UpdateStatus(resolveID, domain.StatusResolved, resolvedDate) {
					return fmt.Errorf("service request %s not found", resolveID)
				}
				if _, err := fmt.Fprintf(a.stdout, "Resolved request: %s\n", resolveID); err != nil {
					return err
				}
			}
			return a.emit(ctx, func(w io.Writer) error {
				if showStatus || resolveID == "" {
					if err := report.Pending(w, tracker.Pending(unitID)); err != nil {
						return err
					}
				}
				if unitID != "" {
					return report.ServiceStats(w, unitID, tracker.CategoryStats(unitID), tracker.ResolutionRate(unitID))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "service requests document (path or blob:KEY)")
	cmd.Flags().StringVar(&resolveID, "resolve", "", "mark this request resolved")
	cmd.Flags().StringVar(&resolvedDate, "resolved-date", "", "resolution date recorded with --resolve")
	cmd.Flags().StringVar(&unitID, "unit", "", "restrict to one unit and print its statistics")
	cmd.Flags().BoolVar(&showStatus, "status", false, "print pending requests")
	return cmd
}

func newBudgetCmd(a *app) *cobra.Command {
	var input, unitID, year string
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Analyze budget utilization for a unit and financial year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.source(ctx, input)
			if err != nil {
				return err
			}
			if _, err := a.svc.LoadAllocations(ctx, src); err != nil {
				return err
			}
			b := a.svc.Budget()
			view := report.BudgetView{
				UnitID:          unitID,
				Year:            year,
				TotalAllocated:  b.TotalAllocation(unitID, year),
				TotalUtilized:   b.TotalUtilized(unitID, year),
				Schemes:         b.SchemeUtilizations(unitID, year),
				Recommendations: b.RecommendReallocation(unitID, year),
			}
			return a.emit(ctx, func(w io.Writer) error { return report.Budget(w, view) })
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "budget allocations document (path or blob:KEY)")
	cmd.Flags().StringVar(&unitID, "unit", "", "unit identifier")
	cmd.Flags().StringVar(&year, "year", "", "financial year, e.g. 2024-25")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newSchemesCmd(a *app) *cobra.Command {
	var query, unitFile string
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List, search, or match government schemes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			catalog := a.svc.Schemes()
			var schemes []domain.SchemeInfo
			switch {
			case query != "":
				schemes = catalog.Search(query)
			case unitFile != "":
				src, err := a.source(ctx, unitFile)
				if err != nil {
					return err
				}
				units, err := src.Units(ctx)
				if err != nil {
					return err
				}
				if len(units) == 0 {
					return fmt.Errorf("no units in %s", unitFile)
				}
				schemes = catalog.FindEligible(&units[0])
			default:
				schemes = catalog.All()
			}
			return a.emit(ctx, func(w io.Writer) error { return report.Schemes(w, schemes) })
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "keyword to search scheme names and descriptions")
	cmd.Flags().StringVar(&unitFile, "unit-file", "", "units document; lists schemes the first unit is eligible for")
	cmd.MarkFlagsMutuallyExclusive("search", "unit-file")
	return cmd
}

func newMeetingsCmd(a *app) *cobra.Command {
	var input, unitID string
	cmd := &cobra.Command{
		Use:   "meetings",
		Short: "Summarize meetings and action items for a unit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.source(ctx, input)
			if err != nil {
				return err
			}
			if _, err := a.svc.LoadMeetings(ctx, src); err != nil {
				return err
			}
			mlog := a.svc.Meetings()
			meetings := mlog.Meetings(unitID)
			actions := mlog.ActionItems(unitID)
			return a.emit(ctx, func(w io.Writer) error { return report.Meetings(w, unitID, meetings, actions) })
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "meetings document (path or blob:KEY)")
	cmd.Flags().StringVar(&unitID, "unit", "", "unit identifier")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}
