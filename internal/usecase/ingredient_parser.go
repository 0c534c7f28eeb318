package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Compiled regex patterns for ingredient text cleanup
var (
	// Matches percentages like "12%", "3.5 %", "4,2%"
	percentagePattern = regexp.MustCompile(`\d+(?:[.,]\d+)?\s*%`)

	// Matches empty or bracket-only leftovers like "()" or "[ ]"
	emptyBracketPattern = regexp.MustCompile(`[\(\[]\s*[\)\]]`)

	// Matches a leading "ingredients:" header in any language casing
	ingredientsHeaderPattern = regexp.MustCompile(`(?i)^\s*ingr[eé]dients?\s*:\s*`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

const maxIngredientLength = 100

// IngredientParser turns free-form ingredient text into an ingredient list
type IngredientParser struct {
	logger *zap.Logger
}

// NewIngredientParser creates a new ingredient parser
func NewIngredientParser(logger *zap.Logger) *IngredientParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngredientParser{logger: logger}
}

// Parse splits ingredient text on top-level commas and semicolons. Separators
// inside parentheses or brackets belong to a sub-ingredient list and do not
// split. Percentages, allergen underscores and dangling punctuation are
// stripped; empty entries are dropped.
func (p *IngredientParser) Parse(text string) []string {
	result := []string{}
	if strings.TrimSpace(text) == "" {
		return result
	}

	cleaned := ingredientsHeaderPattern.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	cleaned = percentagePattern.ReplaceAllString(cleaned, " ")
	cleaned = emptyBracketPattern.ReplaceAllString(cleaned, " ")

	for _, part := range splitTopLevel(cleaned) {
		ingredient := cleanIngredient(part)
		if ingredient == "" {
			continue
		}
		result = append(result, ingredient)
	}

	p.logger.Debug("parsed ingredient text",
		zap.Int("input_length", len(text)),
		zap.Int("ingredients", len(result)),
	)
	return result
}

// splitTopLevel splits on ',' and ';' outside of any bracket
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// cleanIngredient normalizes whitespace and trims orphaned punctuation
func cleanIngredient(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")
	s = strings.Trim(s, " .:-*\t\n")
	if len(s) > maxIngredientLength {
		cut := maxIngredientLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(s, " "); lastSpace > maxIngredientLength/2 {
			s = s[:lastSpace]
		}
	}
	return strings.TrimSpace(s)
}
