package chord

import (
	"math"

	"github.com/noteflow/noteflow/model"
)

// nonChordPenalty scales the weight of pitch classes outside the template.
const nonChordPenalty = 0.3

// simpleChordBias favors major/minor over the rarer qualities on ties.
const simpleChordBias = 1.1

// Detect segments the notes into fixed-length measures and assigns each a
// best-fit chord by pitch-class template matching. The returned chords
// tile [0, lastEnd) with no gaps. Empty input yields nil.
func Detect(notes []model.NoteEvent, beatsPerMeasure int, tempo float64) []model.Chord {
	if len(notes) == 0 {
		return nil
	}

	secondsPerBeat := 60.0 / tempo
	measureDuration := secondsPerBeat * float64(beatsPerMeasure)
	totalDuration := model.LastEnd(notes)
	measureCount := int(math.Ceil(totalDuration / measureDuration))
	if measureCount < 1 {
		measureCount = 1
	}

	chords := make([]model.Chord, 0, measureCount)
	for m := 0; m < measureCount; m++ {
		start := float64(m) * measureDuration
		end := float64(m+1) * measureDuration
		weights := pitchClassWeights(notes, start, end)
		chords = append(chords, matchChord(weights, start, end))
	}
	return chords
}

// pitchClassWeights sums, per pitch class, the seconds each note overlaps
// the [start, end) window. Invalid notes contribute nothing.
func pitchClassWeights(notes []model.NoteEvent, start, end float64) [12]float64 {
	var weights [12]float64
	for _, n := range notes {
		if !n.Valid() {
			continue
		}
		if n.End <= start || n.Start >= end {
			continue
		}
		overlapStart := math.Max(n.Start, start)
		overlapEnd := math.Min(n.End, end)
		pc := ((n.Pitch % 12) + 12) % 12
		weights[pc] += overlapEnd - overlapStart
	}
	return weights
}

// matchChord scores every (root, template) pair and keeps the first
// maximum. Roots ascend and templates are scanned in declaration order,
// so a silent measure deterministically resolves to C major.
func matchChord(weights [12]float64, start, end float64) model.Chord {
	var total float64
	for _, w := range weights {
		total += w
	}

	bestScore := -1.0
	bestRoot := 0
	bestQuality := model.Major

	for root := 0; root < 12; root++ {
		for _, tmpl := range model.ChordTemplates {
			var chordWeight float64
			for _, iv := range tmpl.Intervals {
				chordWeight += weights[(root+iv)%12]
			}
			score := chordWeight - nonChordPenalty*(total-chordWeight)
			if tmpl.Quality == model.Major || tmpl.Quality == model.Minor {
				score *= simpleChordBias
			}
			if score > bestScore {
				bestScore = score
				bestRoot = root
				bestQuality = tmpl.Quality
			}
		}
	}

	return model.Chord{
		Root:    bestRoot,
		Quality: bestQuality,
		Start:   start,
		End:     end,
	}
}
