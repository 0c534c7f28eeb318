package usecase

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/safescan/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex = regexp.MustCompile(`[^\w\s]`)
	sizePatternRegex = regexp.MustCompile(
		`(?i)\b\d+\.?\d*\s*(?:fl\s*oz|oz|ml|liters?|l|gallons?|gal|lbs?|pounds?|kg|grams?|g|ct|count|pk|pack)\b`,
	)
)

// Scoring bonuses
const (
	brandMatchBonus     = 15.0 // Brand appears in the catalog product brand or name
	substringMatchBonus = 10.0 // Query is a substring of the product name
	fuzzyWeightFactor   = 0.8  // Fuzzy matches count 80% of an exact token
)

// stopWords are dropped before token comparison
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true,
	"oz": true, "fl": true, "lb": true, "lbs": true, "ml": true,
	"gallon": true, "liter": true, "liters": true, "kg": true,
	"pack": true, "count": true, "ct": true, "pk": true,
	"bottle": true, "bottles": true, "can": true, "cans": true,
	"size": true, "value": true, "new": true, "product": true,
}

// MatchConfig holds configuration for the catalog matcher
type MatchConfig struct {
	MinConfidenceThreshold float64
	FuzzyEditDistance      int
	MaxResults             int
}

// CatalogMatcher ranks catalog products by name similarity to a query
type CatalogMatcher struct {
	minConfidenceThreshold float64
	fuzzyEditDistance      int
	maxResults             int
	logger                 *zap.Logger
}

// ProductMatch is a catalog product with its match confidence (0-100)
type ProductMatch struct {
	Product       domain.Product `json:"product"`
	MatchScore    float64        `json:"matchScore"`
	MatchedTokens []string       `json:"matchedTokens"`
}

// NewCatalogMatcher creates a new matcher with the given configuration
func NewCatalogMatcher(config MatchConfig, logger *zap.Logger) *CatalogMatcher {
	threshold := config.MinConfidenceThreshold
	if threshold <= 0 {
		threshold = 40.0 // Default 40% threshold
	}

	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}

	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogMatcher{
		minConfidenceThreshold: threshold,
		fuzzyEditDistance:      fuzzyDist,
		maxResults:             maxResults,
		logger:                 logger,
	}
}

// Search returns catalog products whose name matches query at or above the
// confidence threshold, best first
func (m *CatalogMatcher) Search(ctx context.Context, query, brand string, catalog []domain.Product) ([]ProductMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	matches := []ProductMatch{}
	for _, product := range catalog {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score, matchedTokens := m.calculateMatchScore(query, brand, product)
		if score < m.minConfidenceThreshold {
			continue
		}
		matches = append(matches, ProductMatch{
			Product:       product,
			MatchScore:    score,
			MatchedTokens: matchedTokens,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > m.maxResults {
		matches = matches[:m.maxResults]
	}

	m.logger.Debug("catalog search",
		zap.String("query", query),
		zap.Int("candidates", len(catalog)),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

// calculateMatchScore computes similarity between a query and a product name.
// Uses a weighted combination of:
//   - Query token coverage: share of query tokens found in the product name
//   - Name token coverage: share of product name tokens found in the query
//   - Jaccard similarity of both token sets
//
// plus brand and substring bonuses. Returns the score (0-100) and the matched tokens.
func (m *CatalogMatcher) calculateMatchScore(query, brand string, product domain.Product) (float64, []string) {
	cleanedQuery := cleanNameForMatching(query)
	queryTokens := tokenize(cleanedQuery)
	nameTokens := tokenize(product.Name + " " + product.Brand)

	if len(queryTokens) == 0 || len(nameTokens) == 0 {
		return 0, nil
	}

	queryMatched, matchedTokens := m.weightedIntersection(queryTokens, nameTokens)
	queryCoverage := queryMatched / float64(len(queryTokens))

	nameMatched, _ := m.weightedIntersection(nameTokens, queryTokens)
	nameCoverage := nameMatched / float64(len(nameTokens))

	jaccard := float64(len(matchedTokens)) / float64(findUnion(queryTokens, nameTokens))

	score := (queryCoverage*0.60 + nameCoverage*0.20 + jaccard*0.20) * 100

	queryLower := strings.ToLower(cleanedQuery)
	nameLower := strings.ToLower(product.Name)

	if brand != "" {
		brandLower := strings.ToLower(brand)
		if strings.EqualFold(product.Brand, brand) || strings.Contains(nameLower, brandLower) {
			score += brandMatchBonus
		}
	}

	if len(queryLower) > 3 && strings.Contains(nameLower, queryLower) {
		score += substringMatchBonus
	}

	if score > 100 {
		score = 100
	}

	return score, matchedTokens
}

// weightedIntersection counts tokens of from found in to. Exact hits count 1,
// fuzzy hits within the edit distance count fuzzyWeightFactor.
func (m *CatalogMatcher) weightedIntersection(from, to []string) (float64, []string) {
	set := make(map[string]bool, len(to))
	for _, t := range to {
		set[t] = true
	}

	var total float64
	var matched []string
	seen := make(map[string]bool)
	for _, t := range from {
		if seen[t] {
			continue
		}
		seen[t] = true

		if set[t] {
			total++
			matched = append(matched, t)
			continue
		}
		for _, candidate := range to {
			if fuzzyTokenMatch(t, candidate, m.fuzzyEditDistance) {
				total += fuzzyWeightFactor
				matched = append(matched, t)
				break
			}
		}
	}
	return total, matched
}

// cleanNameForMatching strips size info and everything after the first comma
func cleanNameForMatching(name string) string {
	if idx := strings.Index(name, ","); idx > 0 {
		name = name[:idx]
	}
	name = sizePatternRegex.ReplaceAllString(name, " ")
	name = multiSpacePattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || stopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Short tokens produce too many false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
