package arrange

import (
	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/util"
)

// generate dispatches to the generator for one pattern. The variant set
// is closed: extend the switch, never register at runtime. Unknown
// patterns fall back to the broken chord.
func generate(p model.PatternType, c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	switch p {
	case model.BrokenChord:
		return brokenChord(c, spb, beats, octave, velocity)
	case model.AlbertiBass:
		return albertiBass(c, spb, beats, octave, velocity)
	case model.OctaveRoot:
		return octaveRoot(c, spb, beats, octave, velocity)
	case model.BlockChord:
		return blockChord(c, spb, beats, octave, velocity)
	case model.ArpeggioUp:
		return arpeggioUp(c, spb, beats, octave, velocity)
	case model.RootFifth:
		return rootFifth(c, spb, beats, octave, velocity)
	case model.Stride:
		return stride(c, spb, beats, octave, velocity)
	case model.WalkingBass:
		return walkingBass(c, spb, beats, octave, velocity)
	case model.OomPah:
		return oomPah(c, spb, beats, octave, velocity)
	case model.Ostinato:
		return ostinato(c, spb, beats, octave, velocity)
	case model.PowerOctave:
		return powerOctave(c, spb, beats, octave, velocity)
	case model.TremoloChord:
		return tremoloChord(c, spb, beats, octave, velocity)
	default:
		return brokenChord(c, spb, beats, octave, velocity)
	}
}

func lowRoot(c model.Chord, octave int) int {
	return (octave+1)*12 + c.Root
}

// brokenChord plays root-third-fifth-third on the quarter-note grid.
func brokenChord(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	pitches := c.PitchesInOctave(octave)
	if len(pitches) < 3 {
		return rootFifth(c, spb, beats, octave, velocity)
	}

	sequence := []int{pitches[0], pitches[1], pitches[2], pitches[1]}
	var events []model.NoteEvent
	for i, pitch := range sequence[:util.Min(beats, len(sequence))] {
		vel := velocity
		if i%2 == 1 {
			vel -= 5
		}
		events = append(events, model.NoteEvent{
			Pitch:    pitch,
			Start:    c.Start + float64(i)*spb,
			End:      c.Start + (float64(i)+0.9)*spb,
			Velocity: vel,
		})
	}
	return events
}

// albertiBass plays low-high-mid-high eighths, the classical figuration.
func albertiBass(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	pitches := c.PitchesInOctave(octave)
	if len(pitches) < 3 {
		return brokenChord(c, spb, beats, octave, velocity)
	}

	low, mid, high := pitches[0], pitches[1], pitches[2]
	sequence := []int{low, high, mid, high, low, high, mid, high}
	eighth := spb / 2
	totalEighths := beats * 2

	var events []model.NoteEvent
	for i := 0; i < util.Min(totalEighths, len(sequence)); i++ {
		vel := velocity
		if i%2 == 1 {
			vel -= 8
		}
		events = append(events, model.NoteEvent{
			Pitch:    sequence[i%len(sequence)],
			Start:    c.Start + float64(i)*eighth,
			End:      c.Start + (float64(i)+0.85)*eighth,
			Velocity: vel,
		})
	}
	return events
}

// octaveRoot holds a long low root, answered by the upper octave on
// beat 3.
func octaveRoot(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	rootLow := lowRoot(c, octave)

	events := []model.NoteEvent{{
		Pitch:    rootLow,
		Start:    c.Start,
		End:      c.Start + spb*1.8,
		Velocity: velocity,
	}}
	if beats >= 3 {
		events = append(events, model.NoteEvent{
			Pitch:    rootLow + 12,
			Start:    c.Start + 2*spb,
			End:      c.Start + spb*3.8,
			Velocity: velocity - 10,
		})
	}
	return events
}

// blockChord strikes the full chord on beats 1 and 3.
func blockChord(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	pitches := c.PitchesInOctave(octave)

	positions := []float64{0}
	if beats >= 4 {
		positions = []float64{0, 2 * spb}
	}

	var events []model.NoteEvent
	for _, pos := range positions {
		start := c.Start + pos
		end := start + spb*1.8
		if end > c.End {
			end = c.End
		}
		for _, p := range pitches {
			events = append(events, model.NoteEvent{
				Pitch:    p,
				Start:    start,
				End:      end,
				Velocity: velocity,
			})
		}
	}
	return events
}

// arpeggioUp spreads root-third-fifth-octave evenly across the measure.
func arpeggioUp(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	pitches := c.PitchesInOctave(octave)
	arp := append(append([]int{}, pitches...), pitches[0]+12)
	noteDur := spb * float64(beats) / float64(len(arp))

	var events []model.NoteEvent
	for i, p := range arp {
		events = append(events, model.NoteEvent{
			Pitch:    p,
			Start:    c.Start + float64(i)*noteDur,
			End:      c.Start + (float64(i)+0.9)*noteDur,
			Velocity: velocity - 5 + i*2,
		})
	}
	return events
}

// rootFifth sustains root+fifth, restating the root on beat 3.
func rootFifth(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	root := lowRoot(c, octave)

	var events []model.NoteEvent
	for _, p := range []int{root, root + 7} {
		events = append(events, model.NoteEvent{
			Pitch:    p,
			Start:    c.Start,
			End:      c.Start + spb*1.8,
			Velocity: velocity,
		})
	}
	if beats >= 4 {
		events = append(events, model.NoteEvent{
			Pitch:    root,
			Start:    c.Start + 2*spb,
			End:      c.Start + spb*3.5,
			Velocity: velocity - 10,
		})
	}
	return events
}

// stride jumps between a low root octave on odd beats and chord tones an
// octave up on even beats.
func stride(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	rootLow := lowRoot(c, octave)
	chordPitches := c.PitchesInOctave(octave + 1)

	var events []model.NoteEvent
	for beat := 0; beat < util.Min(beats, 4); beat++ {
		start := c.Start + float64(beat)*spb
		if beat%2 == 0 {
			for _, p := range []int{rootLow, rootLow + 12} {
				events = append(events, model.NoteEvent{
					Pitch:    p,
					Start:    start,
					End:      start + spb*0.85,
					Velocity: velocity,
				})
			}
		} else {
			for _, p := range chordPitches[:util.Min(3, len(chordPitches))] {
				events = append(events, model.NoteEvent{
					Pitch:    p,
					Start:    start,
					End:      start + spb*0.75,
					Velocity: velocity - 8,
				})
			}
		}
	}
	return events
}

// walkingBass walks root-third-fifth then a chromatic approach to the
// upper root, one note per beat.
func walkingBass(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	root := lowRoot(c, octave)
	pitches := c.PitchesInOctave(octave)

	third := root + 4
	if len(pitches) > 1 {
		third = pitches[1]
	}
	fifth := root + 7
	if len(pitches) > 2 {
		fifth = pitches[2]
	}
	walk := []int{pitches[0], third, fifth, pitches[0] + 11}

	var events []model.NoteEvent
	for i := 0; i < util.Min(beats, len(walk)); i++ {
		vel := velocity
		if i%2 == 1 {
			vel -= 3
		}
		events = append(events, model.NoteEvent{
			Pitch:    walk[i],
			Start:    c.Start + float64(i)*spb,
			End:      c.Start + (float64(i)+0.85)*spb,
			Velocity: vel,
		})
	}
	return events
}

// oomPah alternates the root on odd beats with chord tones on even beats.
func oomPah(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	root := lowRoot(c, octave)
	chordPitches := c.PitchesInOctave(octave)

	var events []model.NoteEvent
	for beat := 0; beat < util.Min(beats, 4); beat++ {
		start := c.Start + float64(beat)*spb
		if beat%2 == 0 {
			events = append(events, model.NoteEvent{
				Pitch:    root,
				Start:    start,
				End:      start + spb*0.8,
				Velocity: velocity,
			})
		} else {
			for _, p := range chordPitches[:util.Min(3, len(chordPitches))] {
				events = append(events, model.NoteEvent{
					Pitch:    p,
					Start:    start,
					End:      start + spb*0.7,
					Velocity: velocity - 10,
				})
			}
		}
	}
	return events
}

// ostinato is a sixteenth-note root/fifth/octave cell whose velocity
// ramps up across the cell for a fill effect.
func ostinato(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	root := lowRoot(c, octave)
	fifth := root + 7
	octaveUp := root + 12

	sequence := []int{root, root, fifth, root, octaveUp, root, fifth, root}
	sixteenth := spb / 4
	totalSixteenths := beats * 4

	var events []model.NoteEvent
	for i := 0; i < util.Min(totalSixteenths, 16); i++ {
		velOffset := util.Min(i, 8)
		events = append(events, model.NoteEvent{
			Pitch:    sequence[i%len(sequence)],
			Start:    c.Start + float64(i)*sixteenth,
			End:      c.Start + (float64(i)+0.8)*sixteenth,
			Velocity: util.Min(100, velocity-10+velOffset),
		})
	}
	return events
}

// powerOctave lays octave roots on beats 1 and 3 with third/fifth fills
// on the off-beats, the full-chorus texture.
func powerOctave(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	rootLow := lowRoot(c, octave)
	rootHigh := rootLow + 12
	pitches := c.PitchesInOctave(octave)

	third := rootLow + 4
	if len(pitches) > 1 {
		third = pitches[1]
	}
	fifth := rootLow + 7
	if len(pitches) > 2 {
		fifth = pitches[2]
	}

	var events []model.NoteEvent

	// beat 1: octave root
	for _, p := range []int{rootLow, rootHigh} {
		events = append(events, model.NoteEvent{
			Pitch:    p,
			Start:    c.Start,
			End:      c.Start + spb*0.9,
			Velocity: velocity,
		})
	}

	// beat 1.5: third fill
	events = append(events, model.NoteEvent{
		Pitch:    third,
		Start:    c.Start + spb*0.5,
		End:      c.Start + spb*0.9,
		Velocity: velocity - 12,
	})

	// beat 2: fifth fill
	events = append(events, model.NoteEvent{
		Pitch:    fifth,
		Start:    c.Start + spb,
		End:      c.Start + spb*1.85,
		Velocity: velocity - 8,
	})

	if beats >= 4 {
		// beat 3: octave root again, slightly softer
		for _, p := range []int{rootLow, rootHigh} {
			events = append(events, model.NoteEvent{
				Pitch:    p,
				Start:    c.Start + 2*spb,
				End:      c.Start + spb*2.9,
				Velocity: velocity - 5,
			})
		}

		// beat 3.5: third fill
		events = append(events, model.NoteEvent{
			Pitch:    third,
			Start:    c.Start + spb*2.5,
			End:      c.Start + spb*2.9,
			Velocity: velocity - 15,
		})

		// beat 4: fifth fill
		events = append(events, model.NoteEvent{
			Pitch:    fifth,
			Start:    c.Start + 3*spb,
			End:      c.Start + spb*3.85,
			Velocity: velocity - 10,
		})
	}

	return events
}

// tremoloChord splits the chord into two dyads alternated at the
// eighth-note rate.
func tremoloChord(c model.Chord, spb float64, beats, octave, velocity int) []model.NoteEvent {
	pitches := c.PitchesInOctave(octave)
	if len(pitches) < 3 {
		return powerOctave(c, spb, beats, octave, velocity)
	}

	root := pitches[0]
	groupA := []int{root, pitches[2]}
	groupB := []int{pitches[1], root + 12}

	eighth := spb / 2
	totalEighths := beats * 2

	var events []model.NoteEvent
	for i := 0; i < util.Min(totalEighths, 8); i++ {
		group := groupA
		vel := velocity
		if i%2 == 1 {
			group = groupB
			vel -= 5
		}
		start := c.Start + float64(i)*eighth
		for _, p := range group {
			events = append(events, model.NoteEvent{
				Pitch:    p,
				Start:    start,
				End:      start + eighth*0.8,
				Velocity: vel,
			})
		}
	}
	return events
}
