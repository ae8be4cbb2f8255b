package notation

import "github.com/noteflow/noteflow/model"

// majorScale is the set of semitone offsets in a major scale.
var majorScale = []int{0, 2, 4, 5, 7, 9, 11}

// rootFifths maps a tonic pitch class to its circle-of-fifths position,
// flat spellings for the black keys (C, Db, D, Eb, E, F, F#, G, Ab, A,
// Bb, B).
var rootFifths = []int{0, -5, 2, -3, 4, -1, 6, 1, -4, 3, -2, 5}

// DetectKey picks the major key whose scale covers the most notes and
// returns its tonic pitch class and circle-of-fifths signature. Ties
// resolve to the lowest root; no notes means C major. Minor keys are not
// reported.
func DetectKey(notes []model.NoteEvent) (root int, fifths int) {
	var histogram [12]int
	for _, n := range notes {
		if !n.Valid() {
			continue
		}
		histogram[((n.Pitch%12)+12)%12]++
	}

	bestRoot := 0
	bestScore := 0
	for r := 0; r < 12; r++ {
		score := 0
		for _, iv := range majorScale {
			score += histogram[(r+iv)%12]
		}
		if score > bestScore {
			bestScore = score
			bestRoot = r
		}
	}
	return bestRoot, rootFifths[bestRoot]
}

// sharpSpellings and flatSpellings map a pitch class to (step, alter).
var sharpSpellings = [12]struct {
	Step  string
	Alter int
}{
	{"C", 0}, {"C", 1}, {"D", 0}, {"D", 1}, {"E", 0}, {"F", 0},
	{"F", 1}, {"G", 0}, {"G", 1}, {"A", 0}, {"A", 1}, {"B", 0},
}

var flatSpellings = [12]struct {
	Step  string
	Alter int
}{
	{"C", 0}, {"D", -1}, {"D", 0}, {"E", -1}, {"E", 0}, {"F", 0},
	{"G", -1}, {"G", 0}, {"A", -1}, {"A", 0}, {"B", -1}, {"B", 0},
}

// spellPitch converts a MIDI pitch to (step, alter, octave) using sharp
// spellings in sharp (or neutral) keys and flat spellings otherwise.
func spellPitch(midiPitch, keyFifths int) (step string, alter int, octave int) {
	pc := ((midiPitch % 12) + 12) % 12
	octave = midiPitch/12 - 1

	if keyFifths < 0 {
		s := flatSpellings[pc]
		return s.Step, s.Alter, octave
	}
	s := sharpSpellings[pc]
	return s.Step, s.Alter, octave
}
