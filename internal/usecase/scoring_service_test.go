package usecase

import (
	"reflect"
	"testing"

	"github.com/safescan/backend/internal/domain"
)

func TestNewScoringService(t *testing.T) {
	t.Run("keeps a valid default sensitivity", func(t *testing.T) {
		svc := NewScoringService(ScoringServiceConfig{DefaultSensitivity: 2})
		if svc.defaultSensitivity != 2 {
			t.Errorf("defaultSensitivity = %d, want 2", svc.defaultSensitivity)
		}
	})

	t.Run("falls back to midpoint when out of range", func(t *testing.T) {
		for _, s := range []int{0, -1, 6} {
			svc := NewScoringService(ScoringServiceConfig{DefaultSensitivity: s})
			if svc.defaultSensitivity != 3 {
				t.Errorf("DefaultSensitivity %d: defaultSensitivity = %d, want 3", s, svc.defaultSensitivity)
			}
		}
	})
}

func TestScore_Scenarios(t *testing.T) {
	svc := NewScoringService(ScoringServiceConfig{})

	t.Run("plastic municipal unverified water with optimal pH", func(t *testing.T) {
		product := domain.Product{
			ID:        "water-1",
			Category:  domain.CategoryBottledWater,
			Packaging: domain.PackagingPlastic,
			Source:    domain.SourceMunicipal,
			PH:        domain.Float(7.2),
		}

		score, breakdown := svc.Score(product, nil)
		if score != 60 {
			t.Errorf("score = %d, want 60", score)
		}
		if breakdown.FinalScore != score {
			t.Errorf("FinalScore = %d, want %d", breakdown.FinalScore, score)
		}

		want := []string{
			"Not lab verified: -25 points",
			"Municipal water source: -15 points",
			"Plastic packaging: -5 points",
			"Optimal pH (7.2): +5 points",
		}
		if !reflect.DeepEqual(breakdown.Explanation, want) {
			t.Errorf("Explanation = %q, want %q", breakdown.Explanation, want)
		}
		if breakdown.RawScore != 60 {
			t.Errorf("RawScore = %v, want 60", breakdown.RawScore)
		}
	})

	t.Run("clean spring water clamps at 100", func(t *testing.T) {
		product := domain.Product{
			ID:          "water-2",
			Category:    domain.CategoryBottledWater,
			Packaging:   domain.PackagingGlass,
			Source:      domain.SourceSpring,
			PH:          domain.Float(7.2),
			LabVerified: true,
		}

		score, breakdown := svc.Score(product, nil)
		if score != 100 {
			t.Errorf("score = %d, want 100", score)
		}
		if breakdown.RawScore != 120 {
			t.Errorf("RawScore = %v, want 120", breakdown.RawScore)
		}
	})

	t.Run("clamps at 0", func(t *testing.T) {
		product := domain.Product{
			ID:          "bad-1",
			Category:    domain.CategoryFood,
			Packaging:   domain.PackagingAluminum,
			Ingredients: []string{"milk", "wheat flour", "peanut butter"},
		}
		profile := &domain.UserProfile{SelectedAllergens: []string{"dairy", "gluten", "peanuts"}}

		score, breakdown := svc.Score(product, profile)
		if score != 0 {
			t.Errorf("score = %d, want 0", score)
		}
		if breakdown.RawScore >= 0 {
			t.Errorf("RawScore = %v, want negative before clamping", breakdown.RawScore)
		}
	})
}

func TestScore_Adjustments(t *testing.T) {
	svc := NewScoringService(ScoringServiceConfig{})

	t.Run("contaminant without ceiling uses ratio 1", func(t *testing.T) {
		product := domain.Product{
			ID:       "c-1",
			Category: domain.CategoryFood,
			Contaminants: []domain.Contaminant{
				{Name: "Chlorine", Category: domain.ContaminantChemical, Severity: 2, Concentration: 4},
			},
		}

		score, breakdown := svc.Score(product, nil)
		if breakdown.ContaminantPenalty < 1.19 || breakdown.ContaminantPenalty > 1.21 {
			t.Errorf("ContaminantPenalty = %v, want 1.2", breakdown.ContaminantPenalty)
		}
		if breakdown.Explanation[0] != "Contaminants detected: -1.2 points" {
			t.Errorf("Explanation[0] = %q", breakdown.Explanation[0])
		}
		if score != 74 {
			t.Errorf("score = %d, want 74", score)
		}
	})

	t.Run("contaminant over its limit is capped per item and adds fixed penalty", func(t *testing.T) {
		product := domain.Product{
			ID:       "c-2",
			Category: domain.CategoryFood,
			Contaminants: []domain.Contaminant{
				{Name: "Lead", Category: domain.ContaminantHeavyMetals, Severity: 5, Concentration: 30, MaxAllowed: domain.Float(15)},
			},
		}

		_, breakdown := svc.Score(product, nil)
		if breakdown.ContaminantPenalty != 25 {
			t.Errorf("ContaminantPenalty = %v, want 25", breakdown.ContaminantPenalty)
		}
	})

	t.Run("aggregate contaminant penalty is capped at 60", func(t *testing.T) {
		var contaminants []domain.Contaminant
		for i := 0; i < 6; i++ {
			contaminants = append(contaminants, domain.Contaminant{
				Name: "Lead", Category: domain.ContaminantHeavyMetals, Severity: 5,
				Concentration: 30, MaxAllowed: domain.Float(15),
			})
		}

		_, breakdown := svc.Score(domain.Product{ID: "c-3", Category: domain.CategoryFood, Contaminants: contaminants}, nil)
		if breakdown.ContaminantPenalty != 60 {
			t.Errorf("ContaminantPenalty = %v, want 60", breakdown.ContaminantPenalty)
		}
	})

	t.Run("empty contaminants add no penalty or explanation", func(t *testing.T) {
		_, breakdown := svc.Score(domain.Product{ID: "c-4", Category: domain.CategoryFood, LabVerified: true}, nil)
		if breakdown.ContaminantPenalty != 0 {
			t.Errorf("ContaminantPenalty = %v, want 0", breakdown.ContaminantPenalty)
		}
		want := []string{"Lab verified: +5 points"}
		if !reflect.DeepEqual(breakdown.Explanation, want) {
			t.Errorf("Explanation = %q, want %q", breakdown.Explanation, want)
		}
	})

	t.Run("allergen penalty applies once per allergen", func(t *testing.T) {
		product := domain.Product{
			ID:          "a-1",
			Category:    domain.CategoryFood,
			Ingredients: []string{"Whole milk", "Cream", "Wheat flour"},
		}
		profile := &domain.UserProfile{SelectedAllergens: []string{"dairy", "gluten", "dairy"}}

		score, breakdown := svc.Score(product, profile)
		if breakdown.AllergenPenalty != 50 {
			t.Errorf("AllergenPenalty = %v, want 50", breakdown.AllergenPenalty)
		}
		if breakdown.Explanation[0] != "Allergens from your profile (dairy, gluten): -50 points" {
			t.Errorf("Explanation[0] = %q", breakdown.Explanation[0])
		}
		if score != 25 {
			t.Errorf("score = %d, want 25", score)
		}
	})

	t.Run("allergen ids differing in case count once", func(t *testing.T) {
		product := domain.Product{
			ID:          "a-3",
			Category:    domain.CategoryFood,
			LabVerified: true,
			Ingredients: []string{"Whole milk"},
		}
		profile := &domain.UserProfile{SelectedAllergens: []string{"dairy", "Dairy", " DAIRY "}}

		_, breakdown := svc.Score(product, profile)
		if breakdown.AllergenPenalty != 25 {
			t.Errorf("AllergenPenalty = %v, want 25", breakdown.AllergenPenalty)
		}
		if breakdown.Explanation[0] != "Allergens from your profile (dairy): -25 points" {
			t.Errorf("Explanation[0] = %q", breakdown.Explanation[0])
		}
	})

	t.Run("allergen found through allergen tags", func(t *testing.T) {
		product := domain.Product{
			ID:           "a-2",
			Category:     domain.CategoryFood,
			LabVerified:  true,
			AllergenTags: []string{"en:milk"},
		}
		profile := &domain.UserProfile{SelectedAllergens: []string{"dairy"}}

		_, breakdown := svc.Score(product, profile)
		if breakdown.AllergenPenalty != 25 {
			t.Errorf("AllergenPenalty = %v, want 25", breakdown.AllergenPenalty)
		}
	})

	t.Run("water source is ignored for food", func(t *testing.T) {
		product := domain.Product{ID: "w-1", Category: domain.CategoryFood, Source: domain.SourceMunicipal, PH: domain.Float(9.5)}

		_, breakdown := svc.Score(product, nil)
		if breakdown.WaterSourceAdjustment != 0 || breakdown.PHAdjustment != 0 {
			t.Errorf("water adjustments = %v/%v, want 0/0", breakdown.WaterSourceAdjustment, breakdown.PHAdjustment)
		}
	})

	t.Run("pH outside safe range", func(t *testing.T) {
		product := domain.Product{ID: "w-2", Category: domain.CategoryTapWater, PH: domain.Float(9.1)}

		_, breakdown := svc.Score(product, nil)
		if breakdown.PHAdjustment != -10 {
			t.Errorf("PHAdjustment = %v, want -10", breakdown.PHAdjustment)
		}
	})

	t.Run("toxins additives and labels", func(t *testing.T) {
		product := domain.Product{
			ID:           "t-1",
			Category:     domain.CategoryBeverage,
			LabVerified:  true,
			Ingredients:  []string{"Water", "Aspartame", "Sodium benzoate"},
			AdditiveTags: []string{"en:e150d", "e338", "en:citric-acid"},
			LabelTags:    []string{"en:organic"},
		}

		score, breakdown := svc.Score(product, nil)
		if breakdown.ToxicIngredientPenalty != 20 {
			t.Errorf("ToxicIngredientPenalty = %v, want 20", breakdown.ToxicIngredientPenalty)
		}
		if breakdown.AdditivePenalty != 10 {
			t.Errorf("AdditivePenalty = %v, want 10", breakdown.AdditivePenalty)
		}
		if breakdown.LabelBonus != 15 {
			t.Errorf("LabelBonus = %v, want 15", breakdown.LabelBonus)
		}
		if score != 90 {
			t.Errorf("score = %d, want 90", score)
		}

		want := []string{
			"Lab verified: +5 points",
			"Toxic ingredients (aspartame, sodium benzoate): -20 points",
			"E-number additives (2): -10 points",
			"Organic certified: +15 points",
		}
		if !reflect.DeepEqual(breakdown.Explanation, want) {
			t.Errorf("Explanation = %q, want %q", breakdown.Explanation, want)
		}
	})
}

func TestScore_PFAS(t *testing.T) {
	svc := NewScoringService(ScoringServiceConfig{})
	base := domain.Product{
		ID:           "p-1",
		Category:     domain.CategoryBottledWater,
		Packaging:    domain.PackagingGlass,
		LabVerified:  true,
		PFASDetected: true,
	}

	tests := []struct {
		name    string
		level   *float64
		want    float64
		explain string
	}{
		{"unknown level is trace", nil, 5, "PFAS detected (level unknown): -5 points"},
		{"trace level", domain.Float(3), 5, "PFAS detected (3 ppt): -5 points"},
		{"low level", domain.Float(12), 15, "PFAS detected (12 ppt): -15 points"},
		{"moderate level", domain.Float(40), 30, "PFAS detected (40 ppt): -30 points"},
		{"high level", domain.Float(80), 50, "PFAS detected (80 ppt): -50 points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := base
			product.PFASLevel = tt.level

			_, breakdown := svc.Score(product, nil)
			if breakdown.PFASPenalty != tt.want {
				t.Errorf("PFASPenalty = %v, want %v", breakdown.PFASPenalty, tt.want)
			}
			found := false
			for _, e := range breakdown.Explanation {
				if e == tt.explain {
					found = true
				}
			}
			if !found {
				t.Errorf("Explanation %q missing from %q", tt.explain, breakdown.Explanation)
			}
		})
	}

	t.Run("compound count and tolerance stack on the capped penalty", func(t *testing.T) {
		product := base
		product.PFASLevel = domain.Float(80)
		for _, name := range []string{"PFOA", "PFOS", "PFNA", "PFBS"} {
			product.Contaminants = append(product.Contaminants, domain.Contaminant{
				Name: name, Category: domain.ContaminantPFAS, Severity: 1, MaxAllowed: domain.Float(4),
			})
		}
		profile := &domain.UserProfile{Preferences: domain.Preferences{MaxPFAS: domain.Float(10)}}

		score, breakdown := svc.Score(product, profile)
		if breakdown.PFASPenalty != 65 {
			t.Errorf("PFASPenalty = %v, want 65", breakdown.PFASPenalty)
		}
		if score != 40 {
			t.Errorf("score = %d, want 40", score)
		}
	})

	t.Run("no penalty when not detected", func(t *testing.T) {
		product := base
		product.PFASDetected = false

		_, breakdown := svc.Score(product, nil)
		if breakdown.PFASPenalty != 0 {
			t.Errorf("PFASPenalty = %v, want 0", breakdown.PFASPenalty)
		}
	})
}

func TestScore_Sensitivity(t *testing.T) {
	svc := NewScoringService(ScoringServiceConfig{})
	product := domain.Product{ID: "s-1", Category: domain.CategoryFood}

	tests := []struct {
		sensitivity int
		want        int
		explain     string
	}{
		{1, 25, "Risk sensitivity 1/5: -50 points"},
		{3, 75, ""},
		{5, 85, "Risk sensitivity 5/5: +10 points"},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			score, breakdown := svc.Score(product, &domain.UserProfile{RiskSensitivity: tt.sensitivity})
			if score != tt.want {
				t.Errorf("sensitivity %d: score = %d, want %d", tt.sensitivity, score, tt.want)
			}
			last := breakdown.Explanation[len(breakdown.Explanation)-1]
			if tt.explain == "" {
				if breakdown.SensitivityAdjustment != 0 {
					t.Errorf("SensitivityAdjustment = %v, want 0", breakdown.SensitivityAdjustment)
				}
			} else if last != tt.explain {
				t.Errorf("last explanation = %q, want %q", last, tt.explain)
			}
		})
	}

	t.Run("conservative users see larger penalties", func(t *testing.T) {
		risky := domain.Product{ID: "s-2", Category: domain.CategoryBottledWater, Packaging: domain.PackagingPlastic, Source: domain.SourceMunicipal}
		conservative, _ := svc.Score(risky, &domain.UserProfile{RiskSensitivity: 1})
		permissive, _ := svc.Score(risky, &domain.UserProfile{RiskSensitivity: 5})
		if conservative >= permissive {
			t.Errorf("conservative = %d, permissive = %d, want conservative < permissive", conservative, permissive)
		}
	})

	t.Run("configured default applies without a profile", func(t *testing.T) {
		strict := NewScoringService(ScoringServiceConfig{DefaultSensitivity: 1})
		score, _ := strict.Score(product, nil)
		if score != 25 {
			t.Errorf("score = %d, want 25", score)
		}
	})
}

func TestScore_Deterministic(t *testing.T) {
	svc := NewScoringService(ScoringServiceConfig{})
	product := domain.Product{
		ID:           "d-1",
		Category:     domain.CategoryTapWater,
		Source:       domain.SourceMunicipal,
		PFASDetected: true,
		PFASLevel:    domain.Float(25),
		Contaminants: []domain.Contaminant{
			{Name: "Chloroform", Category: domain.ContaminantTrihalomethanes, Severity: 3, Concentration: 40, MaxAllowed: domain.Float(80)},
		},
	}

	firstScore, firstBreakdown := svc.Score(product, nil)
	for i := 0; i < 10; i++ {
		score, breakdown := svc.Score(product, nil)
		if score != firstScore || !reflect.DeepEqual(breakdown, firstBreakdown) {
			t.Fatalf("run %d differs: %d vs %d", i, score, firstScore)
		}
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{25, "25"},
		{-15, "15"},
		{1.2, "1.2"},
		{1.25, "1.3"},
		{0.04, "0"},
	}
	for _, tt := range tests {
		if got := points(tt.in); got != tt.want {
			t.Errorf("points(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := signedPoints(-3); got != "-3" {
		t.Errorf("signedPoints(-3) = %q, want -3", got)
	}
	if got := signedPoints(10); got != "+10" {
		t.Errorf("signedPoints(10) = %q, want +10", got)
	}
}
