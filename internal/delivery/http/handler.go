package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safescan/backend/internal/domain"
	"github.com/safescan/backend/internal/usecase"
)

// ProductUsecase is the application surface the handlers call
type ProductUsecase interface {
	Score(product domain.Product, profile *domain.UserProfile) (*usecase.ScoreResult, error)
	Classify(ingredients []string, contaminants []domain.Contaminant, selectedAllergens []string) ([]domain.ClassifiedIngredient, error)
	AssessRisk(contaminants []domain.Contaminant) (domain.RiskVerdict, error)
	Recommend(ctx context.Context, product domain.Product, currentScore *int, catalog []domain.Product, profile *domain.UserProfile) ([]domain.Recommendation, error)
	Analyze(ctx context.Context, product domain.Product, profile *domain.UserProfile) (*domain.ProductAnalysis, error)
	AnalyzeBarcode(ctx context.Context, barcode string, profile *domain.UserProfile) (*domain.ProductAnalysis, error)
	Lookup(ctx context.Context, barcode string) (*domain.Product, error)
	Search(ctx context.Context, query, brand string) ([]usecase.ProductMatch, error)
	Compare(products []domain.Product, profile *domain.UserProfile) ([]domain.ScoredProduct, error)
	Insights(history []domain.Product, profile *domain.UserProfile) (domain.Insights, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductUsecase) *Handler {
	return &Handler{products: products}
}

type productRequest struct {
	Product *domain.Product     `json:"product" binding:"required"`
	Profile *domain.UserProfile `json:"profile"`
}

type classifyRequest struct {
	Ingredients       []string             `json:"ingredients"`
	Contaminants      []domain.Contaminant `json:"contaminants"`
	SelectedAllergens []string             `json:"selectedAllergens"`
}

type riskRequest struct {
	Contaminants []domain.Contaminant `json:"contaminants"`
}

type recommendRequest struct {
	Product *domain.Product     `json:"product" binding:"required"`
	Score   *int                `json:"score"`
	Catalog []domain.Product    `json:"catalog"`
	Profile *domain.UserProfile `json:"profile"`
}

type profileRequest struct {
	Profile *domain.UserProfile `json:"profile"`
}

type compareRequest struct {
	Products []domain.Product    `json:"products" binding:"required"`
	Profile  *domain.UserProfile `json:"profile"`
}

type insightsRequest struct {
	History []domain.Product    `json:"history"`
	Profile *domain.UserProfile `json:"profile"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "safescan-backend",
		"version": "1.0.0",
	})
}

// ScoreProduct handles POST /api/v1/score
func (h *Handler) ScoreProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.products.Score(*req.Product, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClassifyIngredients handles POST /api/v1/ingredients/classify
func (h *Handler) ClassifyIngredients(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ingredients, err := h.products.Classify(req.Ingredients, req.Contaminants, req.SelectedAllergens)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// AssessRisk handles POST /api/v1/risk/assess
func (h *Handler) AssessRisk(c *gin.Context) {
	var req riskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	verdict, err := h.products.AssessRisk(req.Contaminants)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// Recommend handles POST /api/v1/recommendations
func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recs, err := h.products.Recommend(c.Request.Context(), *req.Product, req.Score, req.Catalog, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// AnalyzeProduct handles POST /api/v1/analyze
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	analysis, err := h.products.Analyze(c.Request.Context(), *req.Product, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// AnalyzeBarcode handles POST /api/v1/products/:barcode/analyze. The body is optional.
func (h *Handler) AnalyzeBarcode(c *gin.Context) {
	var req profileRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondBindError(c, err)
			return
		}
	}

	analysis, err := h.products.AnalyzeBarcode(c.Request.Context(), c.Param("barcode"), req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// GetProduct handles GET /api/v1/products/:barcode
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.Lookup(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// SearchProducts handles GET /api/v1/products/search?q=&brand=
func (h *Handler) SearchProducts(c *gin.Context) {
	matches, err := h.products.Search(c.Request.Context(), c.Query("q"), c.Query("brand"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": matches})
}

// CompareProducts handles POST /api/v1/compare
func (h *Handler) CompareProducts(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ranked, err := h.products.Compare(req.Products, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": ranked})
}

// Insights handles POST /api/v1/insights
func (h *Handler) Insights(c *gin.Context) {
	var req insightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	insights, err := h.products.Insights(req.History, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
