package domain

import "strings"

// ProductCategory identifies the kind of product being scored
type ProductCategory string

const (
	CategoryBottledWater ProductCategory = "bottled_water"
	CategoryTapWater     ProductCategory = "tap_water"
	CategoryFood         ProductCategory = "food"
	CategoryBeverage     ProductCategory = "beverage"
	CategoryBabyFood     ProductCategory = "baby_food"
)

// IsWater reports whether water-only adjustments (source, pH) apply
func (c ProductCategory) IsWater() bool {
	return c == CategoryBottledWater || c == CategoryTapWater
}

// Packaging is the container material of a product
type Packaging string

const (
	PackagingGlass    Packaging = "glass"
	PackagingPlastic  Packaging = "plastic"
	PackagingAluminum Packaging = "aluminum"
	PackagingNone     Packaging = "none"
)

// WaterSource is the origin of a water product
type WaterSource string

const (
	SourceMunicipal WaterSource = "municipal"
	SourceSpring    WaterSource = "spring"
	SourceAquifer   WaterSource = "aquifer"
	SourceFiltered  WaterSource = "filtered"
)

// Product represents a scanned or cataloged item with its measured attributes
type Product struct {
	ID           string          `json:"id" yaml:"id" validate:"required"`
	Name         string          `json:"name,omitempty" yaml:"name"`
	Brand        string          `json:"brand,omitempty" yaml:"brand"`
	Barcode      string          `json:"barcode,omitempty" yaml:"barcode"`
	Category     ProductCategory `json:"category" yaml:"category" validate:"required,oneof=bottled_water tap_water food beverage baby_food"`
	Contaminants []Contaminant   `json:"contaminants" yaml:"contaminants" validate:"dive"`
	PFASDetected bool            `json:"pfasDetected" yaml:"pfasDetected"`
	PFASLevel    *float64        `json:"pfasLevel,omitempty" yaml:"pfasLevel" validate:"omitempty,gte=0"` // ppt
	Packaging    Packaging       `json:"packaging" yaml:"packaging" validate:"omitempty,oneof=glass plastic aluminum none"`
	Source       WaterSource     `json:"source,omitempty" yaml:"source" validate:"omitempty,oneof=municipal spring aquifer filtered"`
	PH           *float64        `json:"ph,omitempty" yaml:"ph" validate:"omitempty,gte=0,lte=14"`
	LabVerified  bool            `json:"labVerified" yaml:"labVerified"`
	Ingredients  []string        `json:"ingredients" yaml:"ingredients"`
	AllergenTags []string        `json:"allergenTags,omitempty" yaml:"allergenTags"`
	AdditiveTags []string        `json:"additiveTags,omitempty" yaml:"additiveTags"`
	LabelTags    []string        `json:"labelTags,omitempty" yaml:"labelTags"`
}

// HasLabel reports whether the product carries a label tag, ignoring any
// language prefix such as "en:"
func (p Product) HasLabel(label string) bool {
	for _, tag := range p.LabelTags {
		if NormalizeTag(tag) == label {
			return true
		}
	}
	return false
}

// NormalizeTag lowercases a taxonomy tag and strips its language prefix
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if idx := strings.Index(tag, ":"); idx >= 0 && idx <= 3 {
		tag = tag[idx+1:]
	}
	return tag
}

// Float returns a pointer to v, for optional numeric fields
func Float(v float64) *float64 {
	return &v
}
