// Package scoring computes the Recruitment Fit Score: a weighted sum over a
// fixed set of applicant features, a sector uplift multiplier and a decision
// band. The equity reserve flag is surfaced next to the score and never
// changes it.
package scoring

import (
	"fmt"
	"strings"
)

// Preset is one scoring model: feature weights, decision thresholds, the
// equity band and the sector uplift table. Uplift values are multipliers over
// the base score; a sector absent from the table is neutral (1.0).
type Preset struct {
	Name        string
	Description string

	ThreshAdmit    float64
	ThreshPriority float64
	EquityLower    float64
	EquityUpper    float64

	WMotivation float64
	WFunction   float64
	WReferee    float64
	WLanguage   float64
	WTime       float64
	WAlumni     float64

	MinMotivationWords int

	SectorUplift map[string]float64
}

var presets = map[string]*Preset{
	"finance-optimized": {
		Name:           "Finance-Optimized (v3.1)",
		Description:    "Recalibrated against leaderboard data: function and referee carry the signal, motivation and sector are damped.",
		ThreshAdmit:    50,
		ThreshPriority: 65,
		EquityLower:    40,
		EquityUpper:    49,
		WMotivation:    15,
		WFunction:      25,
		WReferee:       28,
		WLanguage:      15,
		WTime:          10,
		WAlumni:        5,

		MinMotivationWords: 30,

		SectorUplift: map[string]float64{
			SectorFinance:    1.08,
			SectorPrivate:    1.05,
			SectorGovernment: 1.05,
			SectorNGO:        1.05,
			SectorFarmerOrg:  1.02,
		},
	},
	"balanced": {
		Name:           "Balanced (General Cohort)",
		Description:    "Standard weighting for mixed cohorts.",
		ThreshAdmit:    55,
		ThreshPriority: 70,
		EquityLower:    45,
		EquityUpper:    54,
		WMotivation:    25,
		WFunction:      15,
		WReferee:       28,
		WLanguage:      20,
		WTime:          10,
		WAlumni:        5,

		MinMotivationWords: 50,

		SectorUplift: map[string]float64{
			SectorNGO:        1.10,
			SectorGovernment: 1.08,
			SectorEducation:  1.08,
			SectorPrivate:    1.05,
			SectorFarmerOrg:  1.05,
		},
	},
}

// DefaultPreset is used when the config does not name one.
const DefaultPreset = "balanced"

// PresetByName resolves a built-in preset. Name matching is case-insensitive.
func PresetByName(name string) (*Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultPreset
	}

	preset, ok := presets[key]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return preset, nil
}

// PresetNames lists the built-in preset keys.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// UpliftFor returns the multiplier for a sector and whether the sector was
// present in the table. Unknown sectors are neutral, never an error.
func (p *Preset) UpliftFor(sector string) (float64, bool) {
	if multiplier, ok := p.SectorUplift[sector]; ok {
		return multiplier, true
	}
	return 1.0, false
}
