package usecase

import (
	"regexp"
	"strings"
)

// allergenKeywords maps an allergen id to the ingredient synonyms that reveal it
var allergenKeywords = map[string][]string{
	"dairy":     {"milk", "lactose", "casein", "whey", "butter", "cheese", "cream", "yogurt"},
	"gluten":    {"wheat", "barley", "rye", "gluten", "malt", "flour"},
	"peanuts":   {"peanut", "groundnut", "arachis"},
	"eggs":      {"egg", "albumin", "lecithin", "mayonnaise"},
	"fish":      {"fish", "salmon", "tuna", "cod", "anchovy"},
	"shellfish": {"shrimp", "crab", "lobster", "shellfish", "crustacean"},
	"soy":       {"soy", "soybean", "tofu", "tempeh", "miso"},
	"nuts":      {"almond", "walnut", "pecan", "cashew", "pistachio", "hazelnut", "brazil nut"},
}

// AllergenKeywords returns the synonyms of an allergen. Unknown allergens
// match on their own (lowercased) id.
func AllergenKeywords(allergen string) []string {
	key := strings.ToLower(strings.TrimSpace(allergen))
	if kw, ok := allergenKeywords[key]; ok {
		return kw
	}
	if key == "" {
		return nil
	}
	return []string{key}
}

// scoringToxins are penalized by the scoring engine, once per keyword present
var scoringToxins = []string{
	"phthalates", "sucralose", "aspartame",
	"sodium benzoate", "red dye 40", "bpa",
	"high fructose corn syrup", "trans fat",
	"sodium nitrite", "sulfur dioxide",
	"potassium bromate", "propyl gallate",
}

// classifierToxins tag an ingredient as TOXIN
var classifierToxins = []string{
	"phthalates", "microplastics", "artificial colors",
	"red dye 40", "yellow dye 5", "blue dye 1",
	"sodium benzoate", "potassium sorbate",
	"bha", "bht", "tbhq", "propyl gallate",
	"aspartame", "sucralose", "acesulfame potassium",
}

var artificialIngredients = []string{
	"artificial flavor", "artificial color", "artificial sweetener",
	"high fructose corn syrup", "corn syrup",
	"monosodium glutamate", "msg", "modified corn starch",
}

var beneficialIngredients = []string{
	"organic", "natural", "vitamin", "mineral",
	"fiber", "protein", "omega", "antioxidant",
	"probiotic", "whole grain", "spring water",
	"filtered water", "electrolytes",
}

// eNumberRegex matches regulatory additive codes such as E330 or en:e150d
var eNumberRegex = regexp.MustCompile(`(?i)e\d{3,4}`)

// PFASCompound is an entry of the PFAS registry
type PFASCompound struct {
	Name       string
	CASNumber  string
	Aliases    []string
	Regulated  bool
	HealthRisk string
}

var pfasRegistry = []PFASCompound{
	{
		Name:       "PFOA",
		CASNumber:  "335-67-1",
		Aliases:    []string{"Perfluorooctanoic acid", "C8"},
		Regulated:  true,
		HealthRisk: "Cancer, liver damage, decreased fertility",
	},
	{
		Name:       "PFOS",
		CASNumber:  "1763-23-1",
		Aliases:    []string{"Perfluorooctane sulfonic acid"},
		Regulated:  true,
		HealthRisk: "Immune system effects, cancer",
	},
	{
		Name:       "PFNA",
		CASNumber:  "375-95-1",
		Aliases:    []string{"Perfluorononanoic acid"},
		HealthRisk: "Developmental effects, liver toxicity",
	},
	{
		Name:       "PFBS",
		CASNumber:  "375-73-5",
		Aliases:    []string{"Perfluorobutane sulfonic acid"},
		HealthRisk: "Kidney and liver effects",
	},
	{
		Name:       "PFHxS",
		CASNumber:  "355-46-4",
		Aliases:    []string{"Perfluorohexane sulfonic acid"},
		HealthRisk: "Immune system suppression",
	},
}

// LookupPFAS finds a registry compound by exact (case-insensitive) name,
// CAS number or alias
func LookupPFAS(term string) (PFASCompound, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return PFASCompound{}, false
	}
	for _, c := range pfasRegistry {
		if strings.ToLower(c.Name) == term || c.CASNumber == term {
			return c, true
		}
		for _, alias := range c.Aliases {
			if strings.ToLower(alias) == term {
				return c, true
			}
		}
	}
	return PFASCompound{}, false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
