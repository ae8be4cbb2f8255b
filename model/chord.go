package model

// Quality is a chord quality (template) name.
type Quality string

const (
	Major     Quality = "major"
	Minor     Quality = "minor"
	Dim       Quality = "dim"
	Aug       Quality = "aug"
	Sus4      Quality = "sus4"
	Sus2      Quality = "sus2"
	Dominant7 Quality = "7"
	Major7    Quality = "maj7"
	Minor7    Quality = "m7"
)

// ChordTemplate maps a quality to its semitone intervals above the root.
type ChordTemplate struct {
	Quality   Quality
	Intervals []int
}

// ChordTemplates is the template library in declaration order. Detection
// iterates this slice directly: the order is observable (it breaks score
// ties, so a silent measure resolves to major) and must stay fixed.
var ChordTemplates = []ChordTemplate{
	{Major, []int{0, 4, 7}},
	{Minor, []int{0, 3, 7}},
	{Dim, []int{0, 3, 6}},
	{Aug, []int{0, 4, 8}},
	{Sus4, []int{0, 5, 7}},
	{Sus2, []int{0, 2, 7}},
	{Dominant7, []int{0, 4, 7, 10}},
	{Major7, []int{0, 4, 7, 11}},
	{Minor7, []int{0, 3, 7, 10}},
}

// NoteNames maps a pitch class to its sharp-spelled name.
var NoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Chord is a detected chord spanning one measure.
type Chord struct {
	Root    int     `json:"root"` // pitch class 0-11
	Quality Quality `json:"quality"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

func (c Chord) RootName() string {
	return NoteNames[c.Root%12]
}

// Name returns the chord symbol, e.g. "C", "Am7".
func (c Chord) Name() string {
	if c.Quality == Major {
		return c.RootName()
	}
	return c.RootName() + string(c.Quality)
}

func (c Chord) intervals() []int {
	for _, t := range ChordTemplates {
		if t.Quality == c.Quality {
			return t.Intervals
		}
	}
	return []int{0, 4, 7}
}

// PitchesInOctave returns the chord tones as MIDI pitches in the given
// octave, ascending. Octave 3 starts at MIDI 48.
func (c Chord) PitchesInOctave(octave int) []int {
	base := (octave+1)*12 + c.Root
	intervals := c.intervals()
	pitches := make([]int, 0, len(intervals))
	for _, iv := range intervals {
		pitches = append(pitches, base+iv)
	}
	return pitches
}
