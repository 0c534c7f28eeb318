package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/safescan/backend/internal/domain"
)

const baseScore = 100.0

// Contaminant penalty constants
const (
	contaminantScale        = 60.0
	contaminantItemCap      = 15.0
	contaminantExceedsLimit = 10.0
	contaminantTotalCap     = 60.0
)

// Fixed adjustments, in points
const (
	allergenPenalty       = 25.0
	unverifiedPenalty     = 25.0
	verifiedBonus         = 5.0
	municipalPenalty      = 15.0
	naturalSourceBonus    = 10.0
	filteredSourceBonus   = 5.0
	plasticPenalty        = 5.0
	aluminumPenalty       = 10.0
	phOutOfRangePenalty   = 10.0
	phOptimalBonus        = 5.0
	toxicIngredientWeight = 10.0
	eNumberWeight         = 5.0
	organicBonus          = 15.0
	naturalLabelBonus     = 8.0
	nonGMOBonus           = 5.0
)

// PFAS step function (ppt thresholds) and modifiers
const (
	pfasHighThreshold     = 70.0
	pfasModerateThreshold = 20.0
	pfasLowThreshold      = 4.0
	pfasHighPenalty       = 50.0
	pfasModeratePenalty   = 30.0
	pfasLowPenalty        = 15.0
	pfasTracePenalty      = 5.0
	pfasCompoundThreshold = 3
	pfasCompoundPenalty   = 10.0
	pfasPenaltyCap        = 50.0
	pfasTolerancePenalty  = 15.0
)

// Acceptable and optimal pH bands for water
const (
	phMin        = 6.5
	phMax        = 8.5
	phOptimalMin = 7.0
	phOptimalMax = 7.5
)

// ScoringServiceConfig holds configuration for the scoring engine
type ScoringServiceConfig struct {
	// DefaultSensitivity is used when no profile (or no sensitivity) is given
	DefaultSensitivity int
}

// ScoringService computes a 0-100 health score for a product. It holds no
// mutable state and is safe for concurrent use.
type ScoringService struct {
	defaultSensitivity int
}

// NewScoringService creates a scoring engine with the given configuration
func NewScoringService(config ScoringServiceConfig) *ScoringService {
	sensitivity := config.DefaultSensitivity
	if sensitivity < 1 || sensitivity > 5 {
		sensitivity = domain.DefaultRiskSensitivity
	}
	return &ScoringService{defaultSensitivity: sensitivity}
}

// Score computes the final score and its breakdown. Each adjustment is
// derived from the unmodified input; the net deviation from 100 is then
// scaled by the user's risk sensitivity and the result clamped to [0, 100].
func (s *ScoringService) Score(product domain.Product, profile *domain.UserProfile) (int, domain.ScoreBreakdown) {
	b := domain.ScoreBreakdown{
		BaseScore:   baseScore,
		Explanation: []string{},
	}

	b.ContaminantPenalty = contaminantPenalty(product.Contaminants)
	if b.ContaminantPenalty > 0 {
		b.Explanation = append(b.Explanation, fmt.Sprintf("Contaminants detected: -%.1f points", b.ContaminantPenalty))
	}

	matched := matchedAllergens(product, profile)
	b.AllergenPenalty = float64(len(matched)) * allergenPenalty
	if b.AllergenPenalty > 0 {
		b.Explanation = append(b.Explanation, fmt.Sprintf("Allergens from your profile (%s): -%s points",
			strings.Join(matched, ", "), points(b.AllergenPenalty)))
	}

	if product.LabVerified {
		b.LabVerificationAdjustment = verifiedBonus
		b.Explanation = append(b.Explanation, fmt.Sprintf("Lab verified: +%s points", points(verifiedBonus)))
	} else {
		b.LabVerificationAdjustment = -unverifiedPenalty
		b.Explanation = append(b.Explanation, fmt.Sprintf("Not lab verified: -%s points", points(unverifiedPenalty)))
	}

	var note string
	b.WaterSourceAdjustment, note = waterSourceAdjustment(product)
	if note != "" {
		b.Explanation = append(b.Explanation, note)
	}

	b.PFASPenalty, note = pfasPenalty(product, profile)
	if note != "" {
		b.Explanation = append(b.Explanation, note)
	}

	switch product.Packaging {
	case domain.PackagingPlastic:
		b.PackagingPenalty = plasticPenalty
		b.Explanation = append(b.Explanation, fmt.Sprintf("Plastic packaging: -%s points", points(plasticPenalty)))
	case domain.PackagingAluminum:
		b.PackagingPenalty = aluminumPenalty
		b.Explanation = append(b.Explanation, fmt.Sprintf("Aluminum packaging: -%s points", points(aluminumPenalty)))
	}

	b.PHAdjustment, note = phAdjustment(product)
	if note != "" {
		b.Explanation = append(b.Explanation, note)
	}

	toxins := toxicIngredientsFound(product.Ingredients)
	b.ToxicIngredientPenalty = float64(len(toxins)) * toxicIngredientWeight
	if b.ToxicIngredientPenalty > 0 {
		b.Explanation = append(b.Explanation, fmt.Sprintf("Toxic ingredients (%s): -%s points",
			strings.Join(toxins, ", "), points(b.ToxicIngredientPenalty)))
	}

	additives := countENumbers(product.AdditiveTags)
	b.AdditivePenalty = float64(additives) * eNumberWeight
	if b.AdditivePenalty > 0 {
		b.Explanation = append(b.Explanation, fmt.Sprintf("E-number additives (%d): -%s points",
			additives, points(b.AdditivePenalty)))
	}

	for _, lb := range labelBonuses {
		if product.HasLabel(lb.tag) {
			b.LabelBonus += lb.bonus
			b.Explanation = append(b.Explanation, fmt.Sprintf("%s: +%s points", lb.note, points(lb.bonus)))
		}
	}

	b.RawScore = baseScore -
		b.ContaminantPenalty -
		b.AllergenPenalty +
		b.LabVerificationAdjustment +
		b.WaterSourceAdjustment -
		b.PFASPenalty -
		b.PackagingPenalty +
		b.PHAdjustment -
		b.ToxicIngredientPenalty -
		b.AdditivePenalty +
		b.LabelBonus

	sensitivity := s.sensitivity(profile)
	// conservative (low) sensitivity amplifies the deviation, permissive dampens it
	b.SensitivityMultiplier = float64(domain.DefaultRiskSensitivity) / float64(sensitivity)
	scaled := baseScore - (baseScore-b.RawScore)*b.SensitivityMultiplier
	b.SensitivityAdjustment = scaled - b.RawScore
	if b.SensitivityAdjustment != 0 {
		b.Explanation = append(b.Explanation, fmt.Sprintf("Risk sensitivity %d/5: %s points",
			sensitivity, signedPoints(b.SensitivityAdjustment)))
	}

	b.FinalScore = clampScore(scaled)
	return b.FinalScore, b
}

func (s *ScoringService) sensitivity(profile *domain.UserProfile) int {
	if profile == nil || profile.RiskSensitivity == 0 {
		return s.defaultSensitivity
	}
	return profile.Sensitivity()
}

// contaminantPenalty weighs each contaminant by category, severity and how
// close it is to its regulatory ceiling
func contaminantPenalty(contaminants []domain.Contaminant) float64 {
	total := 0.0
	for _, c := range contaminants {
		ratio := 1.0
		if c.MaxAllowed != nil && *c.MaxAllowed > 0 {
			ratio = c.Concentration / *c.MaxAllowed
		}
		weight := domain.ContaminantWeight(c.Category)
		penalty := math.Min(weight/100*float64(c.Severity)*ratio*contaminantScale, contaminantItemCap)
		if penalty < 0 {
			penalty = 0
		}
		if c.ExceedsLimit() {
			penalty += contaminantExceedsLimit
		}
		total += penalty
	}
	return math.Min(total, contaminantTotalCap)
}

// matchedAllergens returns the selected allergens found in the product,
// each at most once
func matchedAllergens(product domain.Product, profile *domain.UserProfile) []string {
	if profile == nil || len(profile.SelectedAllergens) == 0 {
		return nil
	}

	ingredients := make([]string, len(product.Ingredients))
	for i, ing := range product.Ingredients {
		ingredients[i] = strings.ToLower(ing)
	}
	tags := make([]string, len(product.AllergenTags))
	for i, tag := range product.AllergenTags {
		tags[i] = strings.ToLower(tag)
	}

	var matched []string
	seen := make(map[string]bool)
	for _, selected := range profile.SelectedAllergens {
		allergen := strings.ToLower(strings.TrimSpace(selected))
		if allergen == "" || seen[allergen] {
			continue
		}
		seen[allergen] = true
		for _, kw := range AllergenKeywords(allergen) {
			if containsKeyword(ingredients, kw) || containsKeyword(tags, kw) {
				matched = append(matched, allergen)
				break
			}
		}
	}
	return matched
}

func containsKeyword(texts []string, keyword string) bool {
	for _, t := range texts {
		if strings.Contains(t, keyword) {
			return true
		}
	}
	return false
}

func waterSourceAdjustment(product domain.Product) (float64, string) {
	if !product.Category.IsWater() {
		return 0, ""
	}
	switch product.Source {
	case domain.SourceMunicipal:
		return -municipalPenalty, fmt.Sprintf("Municipal water source: -%s points", points(municipalPenalty))
	case domain.SourceSpring, domain.SourceAquifer:
		return naturalSourceBonus, fmt.Sprintf("Natural water source: +%s points", points(naturalSourceBonus))
	case domain.SourceFiltered:
		return filteredSourceBonus, fmt.Sprintf("Filtered water: +%s points", points(filteredSourceBonus))
	}
	return 0, ""
}

func pfasPenalty(product domain.Product, profile *domain.UserProfile) (float64, string) {
	if !product.PFASDetected {
		return 0, ""
	}

	penalty := pfasTracePenalty
	level := "level unknown"
	if product.PFASLevel != nil {
		ppt := *product.PFASLevel
		level = fmt.Sprintf("%s ppt", points(ppt))
		switch {
		case ppt > pfasHighThreshold:
			penalty = pfasHighPenalty
		case ppt > pfasModerateThreshold:
			penalty = pfasModeratePenalty
		case ppt > pfasLowThreshold:
			penalty = pfasLowPenalty
		}
	}

	if distinctPFASCompounds(product.Contaminants) > pfasCompoundThreshold {
		penalty += pfasCompoundPenalty
	}
	penalty = math.Min(penalty, pfasPenaltyCap)

	if profile != nil && profile.Preferences.MaxPFAS != nil && product.PFASLevel != nil &&
		*product.PFASLevel > *profile.Preferences.MaxPFAS {
		penalty += pfasTolerancePenalty
	}

	return penalty, fmt.Sprintf("PFAS detected (%s): -%s points", level, points(penalty))
}

func distinctPFASCompounds(contaminants []domain.Contaminant) int {
	seen := make(map[string]bool)
	for _, c := range contaminants {
		if c.Category == domain.ContaminantPFAS {
			seen[strings.ToLower(strings.TrimSpace(c.Name))] = true
		}
	}
	return len(seen)
}

func phAdjustment(product domain.Product) (float64, string) {
	if product.PH == nil || !product.Category.IsWater() {
		return 0, ""
	}
	ph := *product.PH
	if ph < phMin || ph > phMax {
		return -phOutOfRangePenalty, fmt.Sprintf("pH outside safe range (%s): -%s points", points(ph), points(phOutOfRangePenalty))
	}
	if ph >= phOptimalMin && ph <= phOptimalMax {
		return phOptimalBonus, fmt.Sprintf("Optimal pH (%s): +%s points", points(ph), points(phOptimalBonus))
	}
	return 0, ""
}

// toxicIngredientsFound returns each toxic keyword present in the ingredient text
func toxicIngredientsFound(ingredients []string) []string {
	if len(ingredients) == 0 {
		return nil
	}
	text := strings.ToLower(strings.Join(ingredients, " "))
	var found []string
	for _, toxin := range scoringToxins {
		if strings.Contains(text, toxin) {
			found = append(found, toxin)
		}
	}
	return found
}

func countENumbers(tags []string) int {
	n := 0
	for _, tag := range tags {
		if eNumberRegex.MatchString(tag) {
			n++
		}
	}
	return n
}

var labelBonuses = []struct {
	tag   string
	note  string
	bonus float64
}{
	{"organic", "Organic certified", organicBonus},
	{"natural", "Natural label", naturalLabelBonus},
	{"non-gmo", "Non-GMO label", nonGMOBonus},
}

func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// points formats a magnitude with at most one decimal
func points(v float64) string {
	return strconv.FormatFloat(math.Round(math.Abs(v)*10)/10, 'f', -1, 64)
}

func signedPoints(v float64) string {
	if v < 0 {
		return "-" + points(v)
	}
	return "+" + points(v)
}
