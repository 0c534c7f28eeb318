package usecase

import (
	"strings"

	"github.com/safescan/backend/internal/domain"
)

// classifyContext is the per-call input shared by every classification rule
type classifyContext struct {
	contaminants     []domain.Contaminant
	allergenKeywords []string
}

// classificationRule inspects a lowercased ingredient and reports whether it
// applies, with the risk level and description to attach
type classificationRule struct {
	tag   domain.IngredientTag
	match func(ctx *classifyContext, ingredient string) (domain.RiskLevel, string, bool)
}

// classificationRules are evaluated in order; the first match wins. Allergens
// come first so that no lower-priority tag can mask them.
var classificationRules = []classificationRule{
	{tag: domain.TagAllergen, match: matchAllergen},
	{tag: domain.TagContaminant, match: matchContaminant},
	{tag: domain.TagPFAS, match: matchPFAS},
	{tag: domain.TagToxin, match: keywordRule(classifierToxins, domain.RiskMedium, "Potentially harmful substance")},
	{tag: domain.TagAdditive, match: matchENumber},
	{tag: domain.TagArtificial, match: keywordRule(artificialIngredients, domain.RiskLow, "Artificial ingredient")},
	{tag: domain.TagBeneficial, match: keywordRule(beneficialIngredients, domain.RiskNone, "Beneficial ingredient")},
}

// ClassifyIngredients labels each ingredient with exactly one risk tag,
// preserving input order
func ClassifyIngredients(ingredients []string, contaminants []domain.Contaminant, selectedAllergens []string) []domain.ClassifiedIngredient {
	result := make([]domain.ClassifiedIngredient, 0, len(ingredients))
	if len(ingredients) == 0 {
		return result
	}

	ctx := &classifyContext{contaminants: contaminants}
	for _, allergen := range selectedAllergens {
		ctx.allergenKeywords = append(ctx.allergenKeywords, AllergenKeywords(allergen)...)
	}

	for _, ingredient := range ingredients {
		result = append(result, classifyIngredient(ctx, ingredient))
	}
	return result
}

func classifyIngredient(ctx *classifyContext, ingredient string) domain.ClassifiedIngredient {
	name := strings.TrimSpace(ingredient)
	lower := strings.ToLower(name)

	for _, rule := range classificationRules {
		if risk, desc, ok := rule.match(ctx, lower); ok {
			return domain.ClassifiedIngredient{
				Name:        name,
				Tag:         rule.tag,
				Risk:        risk,
				Description: desc,
			}
		}
	}

	return domain.ClassifiedIngredient{
		Name:        name,
		Tag:         domain.TagSafe,
		Risk:        domain.RiskNone,
		Description: "Generally safe ingredient",
	}
}

func matchAllergen(ctx *classifyContext, ingredient string) (domain.RiskLevel, string, bool) {
	if containsAny(ingredient, ctx.allergenKeywords) {
		return domain.RiskHigh, "Contains allergen in your profile", true
	}
	return "", "", false
}

func matchContaminant(ctx *classifyContext, ingredient string) (domain.RiskLevel, string, bool) {
	for _, c := range ctx.contaminants {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" || !strings.Contains(ingredient, name) {
			continue
		}
		risk := domain.RiskMedium
		if c.Severity >= 4 {
			risk = domain.RiskHigh
		}
		desc := c.HealthRisk
		if desc == "" {
			desc = "Detected contaminant"
		}
		return risk, desc, true
	}
	return "", "", false
}

func matchPFAS(_ *classifyContext, ingredient string) (domain.RiskLevel, string, bool) {
	if compound, ok := LookupPFAS(ingredient); ok {
		return domain.RiskHigh, compound.HealthRisk, true
	}
	return "", "", false
}

func matchENumber(_ *classifyContext, ingredient string) (domain.RiskLevel, string, bool) {
	if eNumberRegex.MatchString(ingredient) {
		return domain.RiskLow, "Food additive (E-number)", true
	}
	return "", "", false
}

func keywordRule(keywords []string, risk domain.RiskLevel, desc string) func(*classifyContext, string) (domain.RiskLevel, string, bool) {
	return func(_ *classifyContext, ingredient string) (domain.RiskLevel, string, bool) {
		if containsAny(ingredient, keywords) {
			return risk, desc, true
		}
		return "", "", false
	}
}
