package model

// PatternType selects a left-hand accompaniment style. The set is closed:
// new patterns are added here and dispatched exhaustively in arrange.
type PatternType string

const (
	BrokenChord  PatternType = "broken_chord"
	AlbertiBass  PatternType = "alberti_bass"
	OctaveRoot   PatternType = "octave_root"
	BlockChord   PatternType = "block_chord"
	ArpeggioUp   PatternType = "arpeggio_up"
	RootFifth    PatternType = "root_fifth"
	Stride       PatternType = "stride"
	WalkingBass  PatternType = "walking_bass"
	OomPah       PatternType = "oom_pah"
	Ostinato     PatternType = "ostinato"
	PowerOctave  PatternType = "power_octave"
	TremoloChord PatternType = "tremolo_chord"
	Adaptive     PatternType = "adaptive"
)

var patternTypes = map[PatternType]bool{
	BrokenChord:  true,
	AlbertiBass:  true,
	OctaveRoot:   true,
	BlockChord:   true,
	ArpeggioUp:   true,
	RootFifth:    true,
	Stride:       true,
	WalkingBass:  true,
	OomPah:       true,
	Ostinato:     true,
	PowerOctave:  true,
	TremoloChord: true,
	Adaptive:     true,
}

// ParsePattern maps a name to a PatternType. Unrecognized names fall back
// to BrokenChord rather than erroring.
func ParsePattern(name string) PatternType {
	p := PatternType(name)
	if patternTypes[p] {
		return p
	}
	return BrokenChord
}
