package domain

// ScoreBreakdown records every adjustment applied by the scoring engine so a
// score can be audited and reproduced
type ScoreBreakdown struct {
	BaseScore                 float64  `json:"baseScore"`
	ContaminantPenalty        float64  `json:"contaminantPenalty"`
	AllergenPenalty           float64  `json:"allergenPenalty"`
	LabVerificationAdjustment float64  `json:"labVerificationAdjustment"`
	WaterSourceAdjustment     float64  `json:"waterSourceAdjustment"`
	PFASPenalty               float64  `json:"pfasPenalty"`
	PackagingPenalty          float64  `json:"packagingPenalty"`
	PHAdjustment              float64  `json:"phAdjustment"`
	ToxicIngredientPenalty    float64  `json:"toxicIngredientPenalty"`
	AdditivePenalty           float64  `json:"additivePenalty"`
	LabelBonus                float64  `json:"labelBonus"`
	RawScore                  float64  `json:"rawScore"`
	SensitivityMultiplier     float64  `json:"sensitivityMultiplier"`
	SensitivityAdjustment     float64  `json:"sensitivityAdjustment"`
	FinalScore                int      `json:"finalScore"`
	Explanation               []string `json:"explanation"`
}

// IngredientTag is the single risk label assigned to an ingredient. Tags are
// listed in precedence order.
type IngredientTag string

const (
	TagAllergen    IngredientTag = "ALLERGEN"
	TagContaminant IngredientTag = "CONTAMINANT"
	TagPFAS        IngredientTag = "PFAS"
	TagToxin       IngredientTag = "TOXIN"
	TagAdditive    IngredientTag = "ADDITIVE"
	TagArtificial  IngredientTag = "ARTIFICIAL"
	TagBeneficial  IngredientTag = "BENEFICIAL"
	TagSafe        IngredientTag = "SAFE"
)

// RiskLevel is the qualitative risk attached to a classified ingredient
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
	RiskNone   RiskLevel = "none"
)

// ClassifiedIngredient is an ingredient with exactly one risk tag
type ClassifiedIngredient struct {
	Name        string        `json:"name"`
	Tag         IngredientTag `json:"tag"`
	Risk        RiskLevel     `json:"risk"`
	Description string        `json:"description"`
}

// OverallRisk is the verdict tier of a contaminant assessment
type OverallRisk string

const (
	OverallRiskLow      OverallRisk = "low"
	OverallRiskMedium   OverallRisk = "medium"
	OverallRiskHigh     OverallRisk = "high"
	OverallRiskCritical OverallRisk = "critical"
)

// RiskVerdict is the aggregated contaminant risk of a product
type RiskVerdict struct {
	OverallRisk     OverallRisk `json:"overallRisk"`
	RiskFactors     []string    `json:"riskFactors"`
	Recommendations []string    `json:"recommendations"`
}

// RecommendationCategory names the main advantage of an alternative
type RecommendationCategory string

const (
	RecommendBetterAlternative RecommendationCategory = "better_alternative"
	RecommendPFASFree          RecommendationCategory = "pfas_free"
	RecommendLabVerified       RecommendationCategory = "lab_verified"
	RecommendLowerContaminants RecommendationCategory = "lower_contaminants"
)

// Recommendation is a strictly better alternative to a scanned product
type Recommendation struct {
	Product          Product                `json:"product"`
	Score            int                    `json:"score"`
	ScoreImprovement int                    `json:"scoreImprovement"`
	Confidence       float64                `json:"confidence"`
	Category         RecommendationCategory `json:"category"`
	Reason           string                 `json:"reason"`
}

// ScoredProduct pairs a product with its computed score
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   int     `json:"score"`
	Grade   string  `json:"grade"`
}

// GoalProgress is the share (0-100) of scanned products meeting a goal
type GoalProgress struct {
	Goal     string `json:"goal"`
	Progress int    `json:"progress"`
}

// Insights summarizes a user's scan history
type Insights struct {
	AverageScore             int            `json:"averageScore"`
	ImprovementOpportunities []string       `json:"improvementOpportunities"`
	HealthGoalProgress       []GoalProgress `json:"healthGoalProgress"`
}

// ProductAnalysis bundles every output of the engine for one product
type ProductAnalysis struct {
	Product      Product                `json:"product"`
	Score        int                    `json:"score"`
	Grade        string                 `json:"grade"`
	Label        string                 `json:"label"`
	Advice       string                 `json:"advice"`
	Breakdown    ScoreBreakdown         `json:"breakdown"`
	Ingredients  []ClassifiedIngredient `json:"ingredients"`
	Risk         RiskVerdict            `json:"risk"`
	Alternatives []Recommendation       `json:"alternatives"`
}
