package usecase

// ScoreGrade converts a score to a letter grade
func ScoreGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ScoreLabel returns a short human-readable rating for a score
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Moderate Risk"
	default:
		return "High Risk"
	}
}

// RiskAdvice returns a one-line verdict for a product. Allergens override
// any score.
func RiskAdvice(score, allergensDetected, toxinsDetected int) string {
	if allergensDetected > 0 {
		return "AVOID: Contains allergens from your profile"
	}
	if score < 40 {
		return "AVOID: High health risk detected"
	}
	if score < 60 || toxinsDetected > 0 {
		return "CAUTION: Consider healthier alternatives"
	}
	if score < 80 {
		return "OKAY: Generally safe but could be better"
	}
	return "EXCELLENT: Great healthy choice!"
}
