package model

// MeasureContext holds the per-measure features the adaptive selector
// reads. Derived once per generation call and never mutated after.
type MeasureContext struct {
	MeasureIndex  int
	NoteDensity   float64 // right-hand notes per beat
	AvgVelocity   float64
	PitchRange    int // semitone span of right-hand notes
	HasSustained  bool
	Tempo         float64
	IsFirst       bool
	IsLast        bool
	TotalMeasures int
	PrevDensity   float64
	PrevVelocity  float64
}

// PositionRatio is the measure's position in [0,1] across the piece.
func (c MeasureContext) PositionRatio() float64 {
	denom := c.TotalMeasures - 1
	if denom < 1 {
		denom = 1
	}
	return float64(c.MeasureIndex) / float64(denom)
}
