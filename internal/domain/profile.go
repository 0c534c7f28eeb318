package domain

// DefaultRiskSensitivity is the midpoint of the 1-5 sensitivity dial
const DefaultRiskSensitivity = 3

// UserProfile carries a consumer's allergens, goals and risk tolerance
type UserProfile struct {
	SelectedAllergens []string    `json:"selectedAllergens,omitempty" yaml:"selectedAllergens"`
	RiskSensitivity   int         `json:"riskSensitivity,omitempty" yaml:"riskSensitivity" validate:"min=0,max=5"` // 1 conservative .. 5 permissive, 0 unset
	HealthGoals       []string    `json:"healthGoals,omitempty" yaml:"healthGoals"`
	Preferences       Preferences `json:"preferences" yaml:"preferences"`
}

// Preferences are optional tuning knobs of a profile
type Preferences struct {
	MaxPFAS            *float64              `json:"maxPFAS,omitempty" yaml:"maxPFAS" validate:"omitempty,gte=0"`
	PreferredPackaging []Packaging           `json:"preferredPackaging,omitempty" yaml:"preferredPackaging" validate:"dive,oneof=glass plastic aluminum none"`
	AvoidContaminants  []ContaminantCategory `json:"avoidContaminants,omitempty" yaml:"avoidContaminants"`
}

// Sensitivity returns the effective sensitivity for a possibly nil profile,
// falling back to the midpoint and clamping to 1..5
func (u *UserProfile) Sensitivity() int {
	if u == nil || u.RiskSensitivity == 0 {
		return DefaultRiskSensitivity
	}
	if u.RiskSensitivity < 1 {
		return 1
	}
	if u.RiskSensitivity > 5 {
		return 5
	}
	return u.RiskSensitivity
}

// HasGoal reports whether the profile lists a health goal
func (u *UserProfile) HasGoal(goal string) bool {
	if u == nil {
		return false
	}
	for _, g := range u.HealthGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// PrefersPackaging reports whether the packaging is in the preferred list
func (u *UserProfile) PrefersPackaging(p Packaging) bool {
	if u == nil {
		return false
	}
	for _, pref := range u.Preferences.PreferredPackaging {
		if pref == p {
			return true
		}
	}
	return false
}

// Avoids reports whether the user wants to avoid a contaminant category
func (u *UserProfile) Avoids(category ContaminantCategory) bool {
	if u == nil {
		return false
	}
	for _, c := range u.Preferences.AvoidContaminants {
		if c == category {
			return true
		}
	}
	return false
}
