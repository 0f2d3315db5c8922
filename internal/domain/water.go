package domain

// ColiformLevel is the reported biological contamination reading.
type ColiformLevel string

const (
	// ColiformAbsent means no coliform bacteria were detected.
	ColiformAbsent ColiformLevel = "absent"
	// ColiformPresent means coliform bacteria were detected.
	ColiformPresent ColiformLevel = "present"
	// ColiformHigh means a high coliform count was detected.
	ColiformHigh ColiformLevel = "high"
)

// Detected reports whether the level indicates biological contamination.
func (c ColiformLevel) Detected() bool {
	return c == ColiformPresent || c == ColiformHigh
}

// WaterStatus is the binary potability verdict.
type WaterStatus string

const (
	// WaterGood means the sample is assessed as safe.
	WaterGood WaterStatus = "good"
	// WaterPoor means the sample is assessed as unsafe.
	WaterPoor WaterStatus = "poor"
)

// WaterSample holds raw sensor readings for one submitted sample.
// Out-of-domain values are accepted as-is; validation is a caller concern.
type WaterSample struct {
	PH           float64       `json:"ph"`
	Turbidity    float64       `json:"turbidity"`
	TDS          float64       `json:"tds"`
	Conductivity float64       `json:"conductivity"`
	Hardness     float64       `json:"hardness"`
	Coliform     ColiformLevel `json:"coliform"`
}

// WaterQualityVerdict is the terminal outcome of a water assessment.
type WaterQualityVerdict struct {
	Status          WaterStatus `json:"status"`
	Recommendations []string    `json:"recommendations"`
}
