package scoring

import (
	"strings"
)

const (
	SectorEducation    = "Education"
	SectorNGO          = "NGO/CSO"
	SectorGovernment   = "Government"
	SectorMultilateral = "Multilateral"
	SectorPrivate      = "Private"
	SectorFarmerOrg    = "Farmer Org"
	SectorConsultancy  = "Consultancy"
	SectorFinance      = "Finance"
	SectorOther        = "Other/Unclassified"
)

// Rules are ordered: the first matching bucket wins, so universities land in
// Education even when the name also contains "foundation".
var sectorRules = []struct {
	sector   string
	keywords []string
}{
	{SectorEducation, []string{"universit", "school", "educat"}},
	{SectorNGO, []string{"ngo", "foundation", "association", "civil", "non profit", "non-profit"}},
	{SectorGovernment, []string{"ministry", "gov", "municipal", "department of", "bureau"}},
	{SectorMultilateral, []string{"united nations", "world bank", "fao", "ifad", "ifpri", "undp", "unesco"}},
	{SectorPrivate, []string{"ltd", "company", "bv", "inc", "plc", "gmbh", "sarl"}},
	{SectorFarmerOrg, []string{"farmer", "coop", "co-op", "cooperative"}},
	{SectorConsultancy, []string{"consult"}},
	{SectorFinance, []string{"bank", "finance", "microfinance"}},
}

// ClassifySector maps free-form organization text onto a sector bucket.
func ClassifySector(organization string) string {
	text := strings.ToLower(strings.TrimSpace(organization))
	if text == "" {
		return SectorOther
	}

	for _, rule := range sectorRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.sector
			}
		}
	}

	return SectorOther
}
