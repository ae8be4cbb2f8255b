package convert

import (
	"math"
	"sort"

	"github.com/noteflow/noteflow/arrange"
	"github.com/noteflow/noteflow/chord"
	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/util"
)

// SplitHands partitions notes into treble and bass by the split pitch.
func SplitHands(notes []model.NoteEvent, splitPitch int) (treble, bass []model.NoteEvent) {
	for _, n := range notes {
		if !n.Valid() {
			continue
		}
		if n.Pitch >= splitPitch {
			treble = append(treble, n)
		} else {
			bass = append(bass, n)
		}
	}
	return treble, bass
}

// CreateTwoHand builds the two-staff arrangement: the right hand keeps
// the original treble notes sorted by onset, the left hand is synthesized
// from the detected chord progression with the treble as context.
func CreateTwoHand(
	notes []model.NoteEvent,
	tempo float64,
	splitPitch int,
	pattern model.PatternType,
	octave int,
	velocity int,
) (right, left []model.NoteEvent) {
	treble, _ := SplitHands(notes, splitPitch)

	chords := chord.Detect(notes, constants.BeatsPerMeasure, tempo)
	left = arrange.Generate(chords, pattern, tempo, constants.BeatsPerMeasure, octave, velocity, treble)

	right = append([]model.NoteEvent{}, treble...)
	sort.SliceStable(right, func(i, j int) bool {
		return right[i].Start < right[j].Start
	})
	return right, left
}

// gridDivisor maps a grid name to subdivisions of a quarter note.
// Unrecognized names fall back to the sixteenth grid.
func gridDivisor(grid string) float64 {
	switch grid {
	case "32nd":
		return 8
	case "16th":
		return 4
	case "8th":
		return 2
	case "quarter":
		return 1
	default:
		return 4
	}
}

// standardSixteenths is the duration ladder in sixteenth-note units:
// whole down to half a sixteenth.
var standardSixteenths = []float64{16, 12, 8, 6, 4, 3, 2, 1, 0.5}

// Quantize snaps note timing to the grid, one pitch track at a time:
// consecutive same-pitch notes separated by less than a beat merge into
// one, and the merged duration rounds to the nearest standard value.
func Quantize(notes []model.NoteEvent, grid string, tempo float64) []model.NoteEvent {
	quarterDuration := 60.0 / tempo
	gridDuration := quarterDuration / gridDivisor(grid)

	byPitch := make(map[int][]model.NoteEvent)
	for _, n := range notes {
		if !n.Valid() {
			continue
		}
		byPitch[n.Pitch] = append(byPitch[n.Pitch], n)
	}

	var result []model.NoteEvent
	for _, pitch := range util.GetKeysSorted(byPitch) {
		track := byPitch[pitch]
		sort.SliceStable(track, func(i, j int) bool {
			return track[i].Start < track[j].Start
		})
		result = append(result, quantizeTrack(track, pitch, gridDuration, quarterDuration)...)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Start != result[j].Start {
			return result[i].Start < result[j].Start
		}
		return result[i].Pitch < result[j].Pitch
	})
	return result
}

// quantizeTrack merges and rounds one pitch's notes. The merge threshold
// is a full beat: anything closer is treated as a re-articulation of the
// same sustained note.
func quantizeTrack(track []model.NoteEvent, pitch int, gridDuration, quarterDuration float64) []model.NoteEvent {
	minDuration := gridDuration * 0.5

	var result []model.NoteEvent
	i := 0
	for i < len(track) {
		current := track[i]

		start := math.Round(current.Start/gridDuration) * gridDuration
		end := math.Round(current.End/gridDuration) * gridDuration
		if end <= start {
			end = start + gridDuration
		}

		mergeEnd := end
		j := i + 1
		for j < len(track) {
			gap := track[j].Start - track[j-1].End
			if gap >= quarterDuration {
				break
			}
			nextEnd := math.Round(track[j].End/gridDuration) * gridDuration
			if nextEnd > mergeEnd {
				mergeEnd = nextEnd
			}
			j++
		}

		duration := mergeEnd - start
		if duration < minDuration {
			duration = minDuration
		}
		duration = roundToStandard(duration, quarterDuration)

		result = append(result, model.NoteEvent{
			Pitch:    pitch,
			Start:    start,
			End:      start + duration,
			Velocity: current.Velocity,
		})
		i = j
	}
	return result
}

// roundToStandard rounds a duration to the nearest ladder value. Ties go
// to the longer duration.
func roundToStandard(duration, quarterDuration float64) float64 {
	sixteenths := duration / quarterDuration * 4

	closest := standardSixteenths[0]
	best := math.Abs(closest - sixteenths)
	for _, s := range standardSixteenths[1:] {
		if d := math.Abs(s - sixteenths); d < best {
			best = d
			closest = s
		}
	}
	return closest * quarterDuration / 4
}
