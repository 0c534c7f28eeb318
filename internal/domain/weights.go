package domain

// DefaultContaminantWeight applies to categories missing from the weight table
const DefaultContaminantWeight = 1.0

// contaminantWeights holds the relative importance (percent) of each
// contaminant category. High-priority categories share 9.68% each.
var contaminantWeights = map[ContaminantCategory]float64{
	// High priority
	ContaminantPFAS:            9.68,
	ContaminantRadiological:    9.68,
	ContaminantVOCs:            9.68,
	ContaminantMicrobiological: 9.68,
	ContaminantHeavyMetals:     9.68,
	ContaminantDisinfectants:   9.68,

	// Medium priority
	ContaminantMicroplastics:   6.45,
	ContaminantPesticides:      6.45,
	ContaminantHerbicides:      6.45,
	ContaminantHaloaceticAcids: 4.84,
	ContaminantTrihalomethanes: 4.84,
	ContaminantFluoride:        4.03,
}

// ContaminantWeight returns the weight percentage for a category
func ContaminantWeight(category ContaminantCategory) float64 {
	if w, ok := contaminantWeights[category]; ok {
		return w
	}
	return DefaultContaminantWeight
}
