package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/safescan/backend/internal/domain"
)

// Confidence adjustments for an alternative's advantages
const (
	baseConfidence        = 0.5
	pfasFreeConfidence    = 0.2
	labVerifiedConfidence = 0.15
	fewerContaminantsConf = 0.1
	glassConfidence       = 0.1
	preferredPackagingCon = 0.1
	avoidedContaminantCon = 0.2
	pfasGoalConfidence    = 0.15
	organicGoalConfidence = 0.1
)

// Ranking weights favor the size of the improvement over certainty
const (
	improvementRankWeight = 0.7
	confidenceRankWeight  = 0.3
)

const defaultReason = "Better overall health score"

// RecommenderConfig holds configuration for the alternative recommender
type RecommenderConfig struct {
	MaxResults    int
	MinConfidence float64 // zero selects the 0.4 default
}

// Recommender ranks strictly better alternatives from a catalog snapshot
type Recommender struct {
	scorer        *ScoringService
	maxResults    int
	minConfidence float64
}

// NewRecommender creates a recommender that rescores catalog members with scorer
func NewRecommender(scorer *ScoringService, config RecommenderConfig) *Recommender {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 5 // Default top 5
	}

	minConfidence := config.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 0.4
	}

	if scorer == nil {
		scorer = NewScoringService(ScoringServiceConfig{})
	}

	return &Recommender{
		scorer:        scorer,
		maxResults:    maxResults,
		minConfidence: minConfidence,
	}
}

// Recommend returns catalog products of the same category that score
// strictly higher than currentScore, best first. The catalog is only read.
func (r *Recommender) Recommend(
	product domain.Product,
	currentScore int,
	catalog []domain.Product,
	profile *domain.UserProfile,
) []domain.Recommendation {
	recommendations := []domain.Recommendation{}

	for _, candidate := range catalog {
		if candidate.ID == product.ID || candidate.Category != product.Category {
			continue
		}

		score, _ := r.scorer.Score(candidate, profile)
		improvement := score - currentScore
		if improvement <= 0 {
			continue
		}

		rec, ok := r.analyzeCandidate(candidate, product, profile)
		if !ok {
			continue
		}
		rec.Score = score
		rec.ScoreImprovement = improvement
		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return rankKey(recommendations[i]) > rankKey(recommendations[j])
	})

	if len(recommendations) > r.maxResults {
		recommendations = recommendations[:r.maxResults]
	}
	return recommendations
}

func rankKey(rec domain.Recommendation) float64 {
	return improvementRankWeight*float64(rec.ScoreImprovement) + confidenceRankWeight*rec.Confidence
}

// analyzeCandidate explains why candidate beats current and how confident
// that claim is. Candidates under the confidence threshold are rejected.
func (r *Recommender) analyzeCandidate(
	candidate, current domain.Product,
	profile *domain.UserProfile,
) (domain.Recommendation, bool) {
	confidence := baseConfidence
	category := domain.RecommendBetterAlternative
	var reasons []string

	if current.PFASDetected && !candidate.PFASDetected {
		reasons = append(reasons, "PFAS-free")
		confidence += pfasFreeConfidence
		category = domain.RecommendPFASFree
	}

	if !current.LabVerified && candidate.LabVerified {
		reasons = append(reasons, "Lab verified")
		confidence += labVerifiedConfidence
		if category == domain.RecommendBetterAlternative {
			category = domain.RecommendLabVerified
		}
	}

	if fewer := len(current.Contaminants) - len(candidate.Contaminants); fewer > 0 {
		reasons = append(reasons, fmt.Sprintf("%d fewer contaminants", fewer))
		confidence += fewerContaminantsConf
		if category == domain.RecommendBetterAlternative {
			category = domain.RecommendLowerContaminants
		}
	}

	if candidate.Packaging == domain.PackagingGlass && current.Packaging != domain.PackagingGlass {
		reasons = append(reasons, "Glass packaging")
		confidence += glassConfidence
	}

	if profile.PrefersPackaging(candidate.Packaging) {
		confidence += preferredPackagingCon
	}

	for _, c := range candidate.Contaminants {
		if profile.Avoids(c.Category) {
			confidence -= avoidedContaminantCon
			break
		}
	}

	if profile.HasGoal("pfas_free") && !candidate.PFASDetected {
		confidence += pfasGoalConfidence
	}
	if profile.HasGoal("organic") && candidate.HasLabel("organic") {
		reasons = append(reasons, "Organic")
		confidence += organicGoalConfidence
	}

	// strip float accumulation error before the threshold check
	confidence = math.Round(confidence*1000) / 1000
	if confidence < r.minConfidence {
		return domain.Recommendation{}, false
	}

	reason := defaultReason
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}

	return domain.Recommendation{
		Product:    candidate,
		Confidence: math.Min(confidence, 1.0),
		Category:   category,
		Reason:     reason,
	}, true
}

// CompareProducts scores every product and orders them best first. Ties
// keep their input order.
func (r *Recommender) CompareProducts(products []domain.Product, profile *domain.UserProfile) []domain.ScoredProduct {
	scored := make([]domain.ScoredProduct, 0, len(products))
	for _, p := range products {
		score, _ := r.scorer.Score(p, profile)
		scored = append(scored, domain.ScoredProduct{Product: p, Score: score, Grade: ScoreGrade(score)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Insights summarizes a scan history against the user's goals
func (r *Recommender) Insights(history []domain.Product, profile *domain.UserProfile) domain.Insights {
	insights := domain.Insights{
		ImprovementOpportunities: []string{},
		HealthGoalProgress:       []domain.GoalProgress{},
	}
	if len(history) == 0 {
		return insights
	}

	total := float64(len(history))
	var sum, pfas, unverified, plastic, organic, verified int
	for _, p := range history {
		score, _ := r.scorer.Score(p, profile)
		sum += score
		if p.PFASDetected {
			pfas++
		}
		if p.LabVerified {
			verified++
		} else {
			unverified++
		}
		if p.Packaging == domain.PackagingPlastic {
			plastic++
		}
		if p.HasLabel("organic") {
			organic++
		}
	}
	insights.AverageScore = int(math.Round(float64(sum) / total))

	if float64(pfas) > total*0.3 {
		insights.ImprovementOpportunities = append(insights.ImprovementOpportunities, "Consider PFAS-free alternatives")
	}
	if float64(unverified) > total*0.5 {
		insights.ImprovementOpportunities = append(insights.ImprovementOpportunities, "Choose more lab-verified products")
	}
	if float64(plastic) > total*0.6 {
		insights.ImprovementOpportunities = append(insights.ImprovementOpportunities, "Switch to glass packaging when possible")
	}

	if profile == nil {
		return insights
	}
	for _, goal := range profile.HealthGoals {
		var met int
		switch goal {
		case "pfas_free":
			met = len(history) - pfas
		case "organic":
			met = organic
		case "lab_verified":
			met = verified
		}
		insights.HealthGoalProgress = append(insights.HealthGoalProgress, domain.GoalProgress{
			Goal:     goal,
			Progress: int(math.Round(float64(met) / total * 100)),
		})
	}
	return insights
}
