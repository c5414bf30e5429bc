package domain

// ReductionStatus marks the outcome for one measurement file
type ReductionStatus string

const (
	ReductionStatusOK     ReductionStatus = "ok"
	ReductionStatusFailed ReductionStatus = "failed"
)

// ReductionSummary is the per-file line of a sweep report
type ReductionSummary struct {
	Source            string          `json:"source"`
	Status            ReductionStatus `json:"status"`
	AoA               float64         `json:"aoa,omitempty"`
	Velocity          float64         `json:"velocity,omitempty"`           // m/s, measured
	CorrectedVelocity float64         `json:"corrected_velocity,omitempty"` // m/s
	Reynolds          float64         `json:"reynolds,omitempty"`           // corrected
	Blockage          float64         `json:"blockage,omitempty"`           // epsilon
	Lift              float64         `json:"cl,omitempty"`
	Taps              int             `json:"taps,omitempty"`
	ErrorType         string          `json:"error_type,omitempty"`
	Field             string          `json:"field,omitempty"`
	Error             string          `json:"error,omitempty"`
}

// Failed reports whether the file could not be reduced
func (s ReductionSummary) Failed() bool {
	return s.Status == ReductionStatusFailed
}
