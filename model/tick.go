package model

// TickEvent is a note placed on the export tick grid. A NoteEvent that
// crosses measure boundaries expands into a tie chain of TickEvents whose
// DurationTicks sum to the original quantized duration.
type TickEvent struct {
	Pitch         int
	Velocity      int
	StartTick     int
	DurationTicks int
	TieStart      bool
	TieStop       bool
}
