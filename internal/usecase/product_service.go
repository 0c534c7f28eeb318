package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/safescan/backend/internal/domain"
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	DefaultSensitivity  int
	MaxRecommendations  int
	MinConfidence       float64
	SearchMinConfidence float64
	SearchMaxResults    int
}

// ProductService wires the scoring core to the catalog and the remote product source
type ProductService struct {
	catalog     domain.CatalogRepository
	source      domain.ProductSource
	scorer      *ScoringService
	recommender *Recommender
	matcher     *CatalogMatcher
	validator   *Validator
	logger      *zap.Logger
}

// ScoreResult is a product score with its rating and explanation
type ScoreResult struct {
	Score     int                   `json:"score"`
	Grade     string                `json:"grade"`
	Label     string                `json:"label"`
	Breakdown domain.ScoreBreakdown `json:"breakdown"`
}

// NewProductService creates a new product service with dependencies. source
// may be nil, in which case lookups are served from the catalog only.
func NewProductService(
	catalog domain.CatalogRepository,
	source domain.ProductSource,
	config ProductServiceConfig,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}

	scorer := NewScoringService(ScoringServiceConfig{DefaultSensitivity: config.DefaultSensitivity})

	return &ProductService{
		catalog: catalog,
		source:  source,
		scorer:  scorer,
		recommender: NewRecommender(scorer, RecommenderConfig{
			MaxResults:    config.MaxRecommendations,
			MinConfidence: config.MinConfidence,
		}),
		matcher: NewCatalogMatcher(MatchConfig{
			MinConfidenceThreshold: config.SearchMinConfidence,
			MaxResults:             config.SearchMaxResults,
		}, logger),
		validator: NewValidator(),
		logger:    logger,
	}
}

// Score validates and scores a single product
func (s *ProductService) Score(product domain.Product, profile *domain.UserProfile) (*ScoreResult, error) {
	if err := s.validate(&product, profile); err != nil {
		return nil, err
	}

	score, breakdown := s.scorer.Score(product, profile)
	return &ScoreResult{
		Score:     score,
		Grade:     ScoreGrade(score),
		Label:     ScoreLabel(score),
		Breakdown: breakdown,
	}, nil
}

// Classify tags each ingredient with its risk
func (s *ProductService) Classify(
	ingredients []string,
	contaminants []domain.Contaminant,
	selectedAllergens []string,
) ([]domain.ClassifiedIngredient, error) {
	if err := s.validator.ValidateContaminants(contaminants); err != nil {
		return nil, err
	}
	return ClassifyIngredients(ingredients, contaminants, selectedAllergens), nil
}

// AssessRisk reduces a contaminant list to a risk verdict
func (s *ProductService) AssessRisk(contaminants []domain.Contaminant) (domain.RiskVerdict, error) {
	if err := s.validator.ValidateContaminants(contaminants); err != nil {
		return domain.RiskVerdict{}, err
	}
	return AssessContaminantRisk(contaminants), nil
}

// Recommend ranks better alternatives. A nil currentScore is computed from the
// product; a nil catalog means the stored catalog for the product's category.
func (s *ProductService) Recommend(
	ctx context.Context,
	product domain.Product,
	currentScore *int,
	catalog []domain.Product,
	profile *domain.UserProfile,
) ([]domain.Recommendation, error) {
	if err := s.validate(&product, profile); err != nil {
		return nil, err
	}

	score := 0
	if currentScore != nil {
		score = *currentScore
	} else {
		score, _ = s.scorer.Score(product, profile)
	}

	if catalog == nil {
		stored, err := s.catalogFor(ctx, product.Category)
		if err != nil {
			return nil, err
		}
		catalog = stored
	} else if err := s.validator.ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	return s.recommender.Recommend(product, score, catalog, profile), nil
}

// Analyze runs every engine component over one product
func (s *ProductService) Analyze(
	ctx context.Context,
	product domain.Product,
	profile *domain.UserProfile,
) (*domain.ProductAnalysis, error) {
	if err := s.validate(&product, profile); err != nil {
		return nil, err
	}

	score, breakdown := s.scorer.Score(product, profile)

	var allergens []string
	if profile != nil {
		allergens = profile.SelectedAllergens
	}
	ingredients := ClassifyIngredients(product.Ingredients, product.Contaminants, allergens)

	var allergenCount, toxinCount int
	for _, ing := range ingredients {
		switch ing.Tag {
		case domain.TagAllergen:
			allergenCount++
		case domain.TagToxin:
			toxinCount++
		}
	}

	catalog, err := s.catalogFor(ctx, product.Category)
	if err != nil {
		return nil, err
	}

	analysis := &domain.ProductAnalysis{
		Product:      product,
		Score:        score,
		Grade:        ScoreGrade(score),
		Label:        ScoreLabel(score),
		Advice:       RiskAdvice(score, allergenCount, toxinCount),
		Breakdown:    breakdown,
		Ingredients:  ingredients,
		Risk:         AssessContaminantRisk(product.Contaminants),
		Alternatives: s.recommender.Recommend(product, score, catalog, profile),
	}

	s.logger.Info("product analyzed",
		zap.String("product_id", product.ID),
		zap.Int("score", score),
		zap.String("risk", string(analysis.Risk.OverallRisk)),
		zap.Int("alternatives", len(analysis.Alternatives)),
	)
	return analysis, nil
}

// Lookup finds a product by barcode.
// Flow: check catalog -> query remote source -> return
func (s *ProductService) Lookup(ctx context.Context, barcode string) (*domain.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.catalog.GetByBarcode(ctx, barcode)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if s.source == nil {
		return nil, domain.ErrProductNotFound
	}

	product, err = s.source.FetchProduct(ctx, barcode)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrProductSourceFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProductSourceFailure, err)
	}

	s.logger.Debug("product fetched from remote source", zap.String("barcode", barcode))
	return product, nil
}

// AnalyzeBarcode looks a product up and analyzes it
func (s *ProductService) AnalyzeBarcode(
	ctx context.Context,
	barcode string,
	profile *domain.UserProfile,
) (*domain.ProductAnalysis, error) {
	product, err := s.Lookup(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, *product, profile)
}

// Search finds catalog products by name
func (s *ProductService) Search(ctx context.Context, query, brand string) ([]ProductMatch, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return s.matcher.Search(ctx, query, brand, products)
}

// Compare ranks products by score, best first
func (s *ProductService) Compare(products []domain.Product, profile *domain.UserProfile) ([]domain.ScoredProduct, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: at least one product is required", domain.ErrInvalidRequest)
	}
	for i := range products {
		if err := s.validator.ValidateProduct(&products[i]); err != nil {
			return nil, err
		}
	}
	if err := s.validator.ValidateProfile(profile); err != nil {
		return nil, err
	}
	return s.recommender.CompareProducts(products, profile), nil
}

// Insights summarizes a scan history
func (s *ProductService) Insights(history []domain.Product, profile *domain.UserProfile) (domain.Insights, error) {
	for i := range history {
		if err := s.validator.ValidateProduct(&history[i]); err != nil {
			return domain.Insights{}, err
		}
	}
	if err := s.validator.ValidateProfile(profile); err != nil {
		return domain.Insights{}, err
	}
	return s.recommender.Insights(history, profile), nil
}

func (s *ProductService) validate(product *domain.Product, profile *domain.UserProfile) error {
	if err := s.validator.ValidateProduct(product); err != nil {
		return err
	}
	return s.validator.ValidateProfile(profile)
}

func (s *ProductService) catalogFor(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error) {
	products, err := s.catalog.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return products, nil
}
