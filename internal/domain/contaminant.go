package domain

// ContaminantCategory groups contaminants for weighting and risk assessment
type ContaminantCategory string

const (
	ContaminantPFAS            ContaminantCategory = "pfas"
	ContaminantHeavyMetals     ContaminantCategory = "heavy_metals"
	ContaminantMicrobiological ContaminantCategory = "microbiological"
	ContaminantChemical        ContaminantCategory = "chemical"
	ContaminantMicroplastics   ContaminantCategory = "microplastics"
	ContaminantPesticides      ContaminantCategory = "pesticides"
	ContaminantRadiological    ContaminantCategory = "radiological"
	ContaminantVOCs            ContaminantCategory = "vocs"
	ContaminantDisinfectants   ContaminantCategory = "disinfectants"
	ContaminantHerbicides      ContaminantCategory = "herbicides"
	ContaminantHaloaceticAcids ContaminantCategory = "haloacetic_acids"
	ContaminantTrihalomethanes ContaminantCategory = "trihalomethanes"
	ContaminantFluoride        ContaminantCategory = "fluoride"
)

// Contaminant is one measured substance. Severity is a fixed 1-5 hazard
// rating and is independent of the measured concentration.
type Contaminant struct {
	Name          string              `json:"name" yaml:"name" validate:"required"`
	Category      ContaminantCategory `json:"category" yaml:"category" validate:"required,oneof=pfas heavy_metals microbiological chemical microplastics pesticides radiological vocs disinfectants herbicides haloacetic_acids trihalomethanes fluoride"`
	Severity      int                 `json:"severity" yaml:"severity" validate:"min=1,max=5"`
	Concentration float64             `json:"concentration" yaml:"concentration" validate:"gte=0"`
	Unit          string              `json:"unit" yaml:"unit" validate:"omitempty,oneof=ppb ppm ppt mg/L pCi"`
	MaxAllowed    *float64            `json:"maxAllowed,omitempty" yaml:"maxAllowed" validate:"omitempty,gt=0"`
	HealthRisk    string              `json:"healthRisk,omitempty" yaml:"healthRisk"`
}

// ExceedsLimit reports whether the measured concentration is above the
// regulatory ceiling. Contaminants without a ceiling never exceed it.
func (c Contaminant) ExceedsLimit() bool {
	return c.MaxAllowed != nil && c.Concentration > *c.MaxAllowed
}
