package openfoodfacts

import (
	"strings"

	"github.com/safescan/backend/internal/domain"
)

const unknownProductName = "Unknown Product"

// MapToProduct converts an Open Food Facts record to our domain Product.
// Lab measurements are not part of the public record, so contaminants, PFAS,
// pH and lab verification are left unset.
func MapToProduct(p *offProduct, barcode string, parser IngredientParser) *domain.Product {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = unknownProductName
	}

	category := determineCategory(p.CategoriesTags)

	product := &domain.Product{
		ID:           barcode,
		Barcode:      barcode,
		Name:         name,
		Brand:        firstBrand(p.Brands),
		Category:     category,
		Contaminants: []domain.Contaminant{},
		Packaging:    determinePackaging(p.PackagingTags, p.CategoriesTags),
		Ingredients:  splitIngredients(p.IngredientsText, parser),
		AllergenTags: normalizeTags(p.AllergensTags),
		AdditiveTags: normalizeTags(p.AdditivesTags),
		LabelTags:    normalizeTags(p.LabelsTags),
	}
	if category.IsWater() {
		product.Source = determineSource(name, p.IngredientsText)
	}
	return product
}

func determineCategory(categories []string) domain.ProductCategory {
	if anyContains(categories, "water") {
		if anyContains(categories, "bottled") {
			return domain.CategoryBottledWater
		}
		return domain.CategoryTapWater
	}
	if anyContains(categories, "baby") {
		return domain.CategoryBabyFood
	}
	if anyContains(categories, "beverage", "drink") {
		return domain.CategoryBeverage
	}
	return domain.CategoryFood
}

func determinePackaging(packaging, categories []string) domain.Packaging {
	switch {
	case anyContains(packaging, "glass"):
		return domain.PackagingGlass
	case anyContains(packaging, "plastic"):
		return domain.PackagingPlastic
	case anyContains(packaging, "aluminum", "aluminium", "can"):
		return domain.PackagingAluminum
	case anyContains(categories, "water"):
		return domain.PackagingPlastic
	case anyContains(categories, "soda", "cola"):
		return domain.PackagingAluminum
	}
	return domain.PackagingNone
}

func determineSource(name, ingredients string) domain.WaterSource {
	name = strings.ToLower(name)
	ingredients = strings.ToLower(ingredients)
	switch {
	case strings.Contains(name, "spring") || strings.Contains(ingredients, "spring water"):
		return domain.SourceSpring
	case strings.Contains(name, "artesian") || strings.Contains(ingredients, "artesian"):
		return domain.SourceAquifer
	case strings.Contains(name, "filtered") || strings.Contains(ingredients, "filtered"):
		return domain.SourceFiltered
	}
	return domain.SourceMunicipal
}

func splitIngredients(text string, parser IngredientParser) []string {
	if parser != nil {
		return parser.Parse(text)
	}
	result := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func firstBrand(brands string) string {
	if idx := strings.Index(brands, ","); idx >= 0 {
		brands = brands[:idx]
	}
	return strings.TrimSpace(brands)
}

func normalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := domain.NormalizeTag(tag); t != "" {
			result = append(result, t)
		}
	}
	return result
}

func anyContains(tags []string, needles ...string) bool {
	for _, tag := range tags {
		for _, n := range needles {
			if strings.Contains(tag, n) {
				return true
			}
		}
	}
	return false
}
