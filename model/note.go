package model

// NoteEvent is a single timed note. Start and End are in seconds.
type NoteEvent struct {
	Pitch    int
	Start    float64
	End      float64
	Velocity int
}

func (n NoteEvent) Duration() float64 {
	return n.End - n.Start
}

// Valid reports whether the event has a positive span. Events that fail
// this are dropped by the pipeline, never propagated.
func (n NoteEvent) Valid() bool {
	return n.End > n.Start
}

// LastEnd returns the latest end time across notes, or 0 for no notes.
func LastEnd(notes []NoteEvent) float64 {
	var last float64
	for _, n := range notes {
		if n.End > last {
			last = n.End
		}
	}
	return last
}
