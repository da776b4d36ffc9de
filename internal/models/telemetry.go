package models

// Status values with special meaning to the collector.
const (
	StatusOK       = "OK"
	StatusInit     = "INIT"
	StatusOverTemp = "OVERTEMP"
)

// Reading is one sensor sample produced by the emitter.
type Reading struct {
	Pressure float64 `json:"pressure"`
	Temp     float64 `json:"temp"`
	Vib      float64 `json:"vib"`
	Status   string  `json:"status"` // "OK" unless a fault is reported
}

// LatestState is the most recent reading plus the collector receipt time.
type LatestState struct {
	TS       float64 `json:"ts"` // unix seconds
	Pressure float64 `json:"pressure"`
	Temp     float64 `json:"temp"`
	Vib      float64 `json:"vib"`
	Status   string  `json:"status"`
}

// InitialState is the placeholder served before the first ingest.
func InitialState() LatestState {
	return LatestState{Status: StatusInit}
}

// Stamp combines a reading with its receipt time.
func (r Reading) Stamp(ts float64) LatestState {
	return LatestState{
		TS:       ts,
		Pressure: r.Pressure,
		Temp:     r.Temp,
		Vib:      r.Vib,
		Status:   r.Status,
	}
}
