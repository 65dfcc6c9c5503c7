package core

import (
	"strings"

	"smartgram/pkg/domain"
)

const componentSchemes = "schemes"

var schemeCatalog = [...]domain.SchemeInfo{
	{
		Name: "MGNREGA", Ministry: "Ministry of Rural Development",
		Description:    "100 days guaranteed wage employment per rural household per year.",
		AllocationType: "demand-driven", Eligibility: domain.EligibleAllRural,
	},
	{
		Name: "PMAY-Gramin", Ministry: "Ministry of Rural Development",
		Description:    "Pucca house with basic amenities. Rs 1.20 lakh (plains), Rs 1.30 lakh (hilly).",
		AllocationType: "unit-based", Eligibility: domain.EligibleHouselessKutcha,
	},
	{
		Name: "Swachh Bharat Mission (Gramin)", Ministry: "Ministry of Jal Shakti",
		Description:    "ODF villages. Individual household toilets and community sanitary complexes.",
		AllocationType: "unit-based", Eligibility: domain.EligibleAllRural,
	},
	{
		Name: "PMGSY", Ministry: "Ministry of Rural Development",
		Description:    "All-weather road connectivity to unconnected habitations (500+ population, 250+ in hilly).",
		AllocationType: "project-based", Eligibility: domain.EligibleUnconnectedHabitations,
	},
	{
		Name: "National Health Mission", Ministry: "Ministry of Health",
		Description:    "Health Sub-Centres, PHCs. Free medicines, diagnostics. ASHA workers.",
		AllocationType: "population-based", Eligibility: domain.EligibleAll,
	},
	{
		Name: "Samagra Shiksha", Ministry: "Ministry of Education",
		Description:    "Holistic education from pre-school to Class XII. School infrastructure and teacher training.",
		AllocationType: "population-based", Eligibility: domain.EligibleAll,
	},
	{
		Name: "National Rural Livelihood Mission", Ministry: "Ministry of Rural Development",
		Description:    "SHG formation, skill development, micro-credit. Targets poorest of poor.",
		AllocationType: "demand-driven", Eligibility: domain.EligibleAllRural,
	},
	{
		Name: "DDU-GKY", Ministry: "Ministry of Rural Development",
		Description:    "Skill development and placement for rural youth aged 15-35.",
		AllocationType: "demand-driven", Eligibility: domain.EligibleAllRural,
	},
	{
		Name: "Jal Jeevan Mission", Ministry: "Ministry of Jal Shakti",
		Description:    "Functional household tap connection (FHTC) to every rural household by 2024.",
		AllocationType: "unit-based", Eligibility: domain.EligibleAllRural,
	},
	{
		Name: "PM-KISAN", Ministry: "Ministry of Agriculture",
		Description:    "Rs 6,000/year income support to farmer families in 3 installments.",
		AllocationType: "dbt", Eligibility: domain.EligibleFarmingHouseholds,
	},
	{
		Name: "RKVY-RAFTAAR", Ministry: "Ministry of Agriculture",
		Description:    "Infrastructure for agriculture and allied sectors. Agri-business promotion.",
		AllocationType: "project-based", Eligibility: domain.EligibleAllRural,
	},
	{
		Name: "ICDS/Poshan Abhiyaan", Ministry: "Ministry of Women & Child",
		Description:    "Supplementary nutrition, immunization, health checkup for children 0-6 and pregnant women.",
		AllocationType: "anganwadi-based", Eligibility: domain.EligibleAll,
	},
	{
		Name: "Mid-Day Meal (PM-POSHAN)", Ministry: "Ministry of Education",
		Description:    "Hot cooked lunch for government school children Class I-VIII.",
		AllocationType: "per-child", Eligibility: domain.EligibleAll,
	},
	{
		Name: "NSAP (National Social Assistance)", Ministry: "Ministry of Rural Development",
		Description:    "Pension for elderly (IGNOAPS), widows (IGNWPS), disabled (IGNDPS).",
		AllocationType: "dbt", Eligibility: domain.EligibleAllBPL,
	},
	{
		Name: "AMRUT 2.0", Ministry: "Ministry of Housing",
		Description:    "Water supply, sewerage, drainage for urban areas and census towns.",
		AllocationType: "project-based", Eligibility: domain.EligibleCensusTowns,
	},
}

// SchemeCatalog is a read-only view of the government scheme catalog. Every
// method returns a fresh slice; the catalog itself never changes.
type SchemeCatalog struct {
	schemes []domain.SchemeInfo
	logger  Logger
	metrics MetricsRecorder
}

// NewSchemeCatalog returns a catalog holding its own copy of the 15 built-in
// schemes.
func NewSchemeCatalog(opts ...Option) *SchemeCatalog {
	cfg := buildOptions(opts)
	schemes := make([]domain.SchemeInfo, len(schemeCatalog))
	copy(schemes, schemeCatalog[:])
	return &SchemeCatalog{schemes: schemes, logger: cfg.logger, metrics: cfg.metrics}
}

// All returns every scheme in catalog order.
func (c *SchemeCatalog) All() []domain.SchemeInfo {
	c.metrics.Observe(componentSchemes, "all")
	out := make([]domain.SchemeInfo, len(c.schemes))
	copy(out, c.schemes)
	return out
}

// Search returns schemes whose name or description contains query, ignoring
// case.
func (c *SchemeCatalog) Search(query string) []domain.SchemeInfo {
	c.metrics.Observe(componentSchemes, "search")
	q := strings.ToLower(query)
	out := make([]domain.SchemeInfo, 0)
	for _, s := range c.schemes {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Description), q) {
			out = append(out, s)
		}
	}
	return out
}

// FindEligible returns the schemes whose eligibility rule admits unit. A nil
// unit returns the whole catalog.
func (c *SchemeCatalog) FindEligible(unit *domain.AdministrativeUnit) []domain.SchemeInfo {
	c.metrics.Observe(componentSchemes, "find_eligible")
	if unit == nil {
		return c.All()
	}
	out := make([]domain.SchemeInfo, 0, len(c.schemes))
	for _, s := range c.schemes {
		if !s.Eligibility.Known() {
			c.logger.Warn("scheme has unknown eligibility tag", "scheme", s.Name, "tag", string(s.Eligibility))
		}
		if s.Eligibility.Admits(*unit) {
			out = append(out, s)
		}
	}
	return out
}
