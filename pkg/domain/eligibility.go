package domain

// EligibilityTag names the rule that decides whether a unit may draw on a
// scheme.
type EligibilityTag string

// Eligibility tags used by the scheme catalog.
const (
	EligibleAll                    EligibilityTag = "all"
	EligibleAllRural               EligibilityTag = "all_rural"
	EligibleAllBPL                 EligibilityTag = "all_bpl"
	EligibleFarmingHouseholds      EligibilityTag = "farming_households"
	EligibleHouselessKutcha        EligibilityTag = "houseless_kutcha"
	EligibleCensusTowns            EligibilityTag = "census_towns"
	EligibleUnconnectedHabitations EligibilityTag = "unconnected_habitations"
)

// Population thresholds for the population-dependent tags.
const (
	// CensusTownMinPopulation is exclusive: a census town has more than this.
	CensusTownMinPopulation = 5000
	// HabitationMinPopulation is inclusive.
	HabitationMinPopulation = 250
)

// Known reports whether t is one of the recognised tags.
func (t EligibilityTag) Known() bool {
	switch t {
	case EligibleAll, EligibleAllRural, EligibleAllBPL, EligibleFarmingHouseholds,
		EligibleHouselessKutcha, EligibleCensusTowns, EligibleUnconnectedHabitations:
		return true
	default:
		return false
	}
}

// Admits reports whether unit satisfies the rule named by t. Unknown tags
// admit nothing.
//
// EligibleFarmingHouseholds and EligibleHouselessKutcha admit every unit:
// AdministrativeUnit carries neither farming household counts nor housing
// condition.
func (t EligibilityTag) Admits(unit AdministrativeUnit) bool {
	switch t {
	case EligibleAll, EligibleAllRural, EligibleAllBPL:
		return true
	case EligibleFarmingHouseholds, EligibleHouselessKutcha:
		return true
	case EligibleCensusTowns:
		return unit.Population > CensusTownMinPopulation
	case EligibleUnconnectedHabitations:
		return unit.Population >= HabitationMinPopulation
	default:
		return false
	}
}
