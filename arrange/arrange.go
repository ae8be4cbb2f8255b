package arrange

import (
	"math"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/util"
)

// defaultAvgVelocity stands in when a measure has no right-hand notes.
const defaultAvgVelocity = 70.0

// Generate synthesizes the left-hand accompaniment for the chord
// sequence, one measure per chord, concatenated in chord order. With
// pattern == model.Adaptive the per-measure style is chosen from the
// measure's context; otherwise the fixed pattern is used throughout.
// rightHand supplies the context features and may be nil.
func Generate(
	chords []model.Chord,
	pattern model.PatternType,
	tempo float64,
	beatsPerMeasure int,
	octave int,
	velocity int,
	rightHand []model.NoteEvent,
) []model.NoteEvent {
	secondsPerBeat := 60.0 / tempo
	contexts := analyzeContexts(chords, rightHand, tempo, beatsPerMeasure)

	var events []model.NoteEvent
	prev := model.PatternType("")
	for i, c := range chords {
		ctx := contexts[i]

		chosen := pattern
		if pattern == model.Adaptive {
			chosen = choosePattern(ctx, prev)
		}

		adjusted := adjustVelocity(velocity, ctx)
		events = append(events, generate(chosen, c, secondsPerBeat, beatsPerMeasure, octave, adjusted)...)
		prev = chosen
	}
	return events
}

// analyzeContexts derives the per-measure features once for the whole
// call. Each context carries the previous measure's density and velocity
// so the selector can spot section transitions.
func analyzeContexts(
	chords []model.Chord,
	rightHand []model.NoteEvent,
	tempo float64,
	beatsPerMeasure int,
) []model.MeasureContext {
	total := len(chords)
	contexts := make([]model.MeasureContext, 0, total)
	prevDensity := 0.0
	prevVelocity := 0.0
	sustainThreshold := 60.0 / tempo * 2

	for i, c := range chords {
		rh := notesStartingIn(rightHand, c.Start, c.End)

		density := float64(len(rh)) / math.Max(float64(beatsPerMeasure), 1)

		avgVelocity := defaultAvgVelocity
		if len(rh) > 0 {
			var sum float64
			for _, n := range rh {
				sum += float64(n.Velocity)
			}
			avgVelocity = sum / float64(len(rh))
		}

		pitchRange := 0
		if len(rh) > 1 {
			lo, hi := rh[0].Pitch, rh[0].Pitch
			for _, n := range rh[1:] {
				lo = util.Min(lo, n.Pitch)
				hi = util.Max(hi, n.Pitch)
			}
			pitchRange = hi - lo
		}

		hasSustained := false
		for _, n := range rh {
			if n.Duration() > sustainThreshold {
				hasSustained = true
				break
			}
		}

		contexts = append(contexts, model.MeasureContext{
			MeasureIndex:  i,
			NoteDensity:   density,
			AvgVelocity:   avgVelocity,
			PitchRange:    pitchRange,
			HasSustained:  hasSustained,
			Tempo:         tempo,
			IsFirst:       i == 0,
			IsLast:        i == total-1,
			TotalMeasures: total,
			PrevDensity:   prevDensity,
			PrevVelocity:  prevVelocity,
		})
		prevDensity = density
		prevVelocity = avgVelocity
	}
	return contexts
}

// notesStartingIn returns the notes whose onset falls in [start, end),
// with a small tolerance on the left edge for quantization jitter.
func notesStartingIn(notes []model.NoteEvent, start, end float64) []model.NoteEvent {
	var res []model.NoteEvent
	for _, n := range notes {
		if n.Start >= start-0.01 && n.Start < end {
			res = append(res, n)
		}
	}
	return res
}

// adjustVelocity shapes the dynamics across the piece: fade in over the
// intro, fade out over the outro, push a little harder under loud
// right-hand sections.
func adjustVelocity(base int, ctx model.MeasureContext) int {
	ratio := ctx.PositionRatio()

	if ratio < constants.IntroRatio {
		return util.Max(40, base-15)
	}

	if ratio > constants.OutroRatio {
		fade := int((ratio - constants.OutroRatio) / (1.0 - constants.OutroRatio) * 20)
		return util.Max(35, base-fade)
	}

	if ctx.AvgVelocity > constants.ChorusVelocityThreshold {
		return util.Min(100, base+10)
	}

	return base
}

func isSectionTransition(ctx model.MeasureContext) bool {
	densityJump := math.Abs(ctx.NoteDensity-ctx.PrevDensity) > constants.DensityJumpThreshold
	velocityJump := math.Abs(ctx.AvgVelocity-ctx.PrevVelocity) > constants.VelocityJumpThreshold
	return densityJump || velocityJump
}

// choosePattern picks the accompaniment style for one measure. Checks run
// in priority order and the first match wins; the tempo bands and
// thresholds live in constants and are not tunable.
func choosePattern(ctx model.MeasureContext, prev model.PatternType) model.PatternType {
	tempo := ctx.Tempo
	density := ctx.NoteDensity
	velocity := ctx.AvgVelocity
	position := ctx.PositionRatio()

	// intro: sparse opening
	if position < constants.IntroRatio {
		if ctx.IsFirst {
			return model.RootFifth
		}
		return model.OctaveRoot
	}

	// outro: arpeggiated wind-down, block chord on the final measure
	if position > constants.OutroRatio {
		if ctx.IsLast {
			return model.BlockChord
		}
		return model.ArpeggioUp
	}

	// section boundary: sixteenth-note fill
	if isSectionTransition(ctx) {
		return model.Ostinato
	}

	// slow ballad
	if tempo < constants.TempoSlowMax {
		if ctx.HasSustained {
			return model.ArpeggioUp
		}
		if velocity > constants.ChorusVelocityThreshold {
			return model.PowerOctave
		}
		return model.OctaveRoot
	}

	// medium-slow
	if tempo < constants.TempoMediumMax {
		if velocity > 80 && density > constants.ChorusDensityThreshold {
			return model.PowerOctave
		}
		if velocity > 75 {
			return model.Stride
		}
		if density < 1.5 {
			return model.ArpeggioUp
		}
		return model.BrokenChord
	}

	// medium: the common pop range
	if tempo < constants.TempoFastMax {
		if velocity > constants.ChorusVelocityThreshold && density > constants.ChorusDensityThreshold {
			return model.PowerOctave
		}
		if density > ctx.PrevDensity+0.5 && velocity > 65 {
			return model.OomPah
		}
		if density < constants.ChorusDensityThreshold {
			return model.BrokenChord
		}
		return model.AlbertiBass
	}

	// fast
	if velocity > 80 && density > 3.0 {
		return model.TremoloChord
	}
	if density > 3.0 {
		return model.Ostinato
	}
	if velocity > 80 {
		return model.Stride
	}
	return model.AlbertiBass
}
