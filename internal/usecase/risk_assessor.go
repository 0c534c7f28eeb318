package usecase

import (
	"fmt"

	"github.com/safescan/backend/internal/domain"
)

var riskRecommendations = map[domain.OverallRisk][]string{
	domain.OverallRiskCritical: {
		"Avoid this product - serious health risks detected",
		"Consider reporting to local health authorities",
	},
	domain.OverallRiskHigh: {
		"Use caution - significant contaminants detected",
		"Consider safer alternatives",
	},
	domain.OverallRiskMedium: {
		"Monitor usage - some contaminants present",
		"Consider filtration if using regularly",
	},
}

// AssessContaminantRisk reduces a contaminant list to an overall risk
// verdict. Tiers are evaluated from critical down; the first match wins.
func AssessContaminantRisk(contaminants []domain.Contaminant) domain.RiskVerdict {
	if len(contaminants) == 0 {
		return domain.RiskVerdict{
			OverallRisk:     domain.OverallRiskLow,
			RiskFactors:     []string{},
			Recommendations: []string{"This product appears to be free of major contaminants"},
		}
	}

	var highSeverity, exceedsLimit, pfas, heavyMetals int
	moderate := false
	for _, c := range contaminants {
		if c.Severity >= 4 {
			highSeverity++
		}
		if c.Severity >= 3 {
			moderate = true
		}
		if c.ExceedsLimit() {
			exceedsLimit++
		}
		switch c.Category {
		case domain.ContaminantPFAS:
			pfas++
		case domain.ContaminantHeavyMetals:
			heavyMetals++
		}
	}

	overall := domain.OverallRiskLow
	switch {
	case exceedsLimit > 0 || highSeverity >= 2:
		overall = domain.OverallRiskCritical
	case highSeverity > 0 || pfas > 0:
		overall = domain.OverallRiskHigh
	case moderate:
		overall = domain.OverallRiskMedium
	}

	factors := []string{}
	if exceedsLimit > 0 {
		factors = append(factors, fmt.Sprintf("%d contaminant(s) exceed regulatory limits", exceedsLimit))
	}
	if pfas > 0 {
		factors = append(factors, fmt.Sprintf("PFAS compounds detected (%d)", pfas))
	}
	if heavyMetals > 0 {
		factors = append(factors, fmt.Sprintf("Heavy metals present (%d)", heavyMetals))
	}

	recommendations := append([]string{}, riskRecommendations[overall]...)

	return domain.RiskVerdict{
		OverallRisk:     overall,
		RiskFactors:     factors,
		Recommendations: recommendations,
	}
}
