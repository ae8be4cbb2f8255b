package notation

import (
	"fmt"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/util"
)

var typeForTicks = map[int]string{
	constants.DivisionsPerQuarter * 4: "whole",
	constants.DivisionsPerQuarter * 2: "half",
	constants.DivisionsPerQuarter:     "quarter",
	constants.DivisionsPerQuarter / 2: "eighth",
	constants.DivisionsPerQuarter / 4: "16th",
}

// durationToType maps a ladder duration to its note type and dot flag.
func durationToType(ticks int) (string, bool) {
	if t, ok := typeForTicks[ticks]; ok {
		return t, false
	}
	if t, ok := typeForTicks[ticks*2/3]; ok {
		return t, true
	}
	return "quarter", false
}

// floorToLadder returns the longest writable duration that fits in
// ticks. Every grid-aligned span fits at least a sixteenth.
func floorToLadder(ticks int) int {
	for _, d := range standardTicks {
		if d <= ticks {
			return d
		}
	}
	return standardTicks[len(standardTicks)-1]
}

func dynamicsAttr(velocity int) string {
	return fmt.Sprintf("%.2f", float64(velocity)/127.0*100.0)
}

// eventsInMeasure selects tick events starting inside measure m.
func eventsInMeasure(events []model.TickEvent, m int) []model.TickEvent {
	start := m * constants.TicksPerMeasure
	end := start + constants.TicksPerMeasure
	var out []model.TickEvent
	for _, e := range events {
		if e.StartTick >= start && e.StartTick < end {
			out = append(out, e)
		}
	}
	return out
}

// buildVoice renders one measure of one voice as a sequential note list.
// Simultaneous onsets become a chord sharing one duration. Gaps and the
// measure tail are filled with rests so each voice always sums to a full
// measure; a note running into the next onset or past the measure end is
// shortened to the longest duration that fits.
func buildVoice(events []model.TickEvent, m, voice, staff, keyFifths int) []Note {
	measureStart := m * constants.TicksPerMeasure
	tpm := constants.TicksPerMeasure

	if len(events) == 0 {
		return []Note{wholeRest(voice, staff)}
	}

	// Events are already sorted; collect chord groups by onset.
	var groups [][]model.TickEvent
	for _, e := range events {
		rel := e.StartTick - measureStart
		if n := len(groups); n > 0 && groups[n-1][0].StartTick-measureStart == rel {
			groups[n-1] = append(groups[n-1], e)
			continue
		}
		groups = append(groups, []model.TickEvent{e})
	}

	stem := "up"
	if staff > 1 {
		stem = "down"
	}

	var notes []Note
	cursor := 0
	for gi, group := range groups {
		rel := group[0].StartTick - measureStart
		if rel > cursor {
			notes = append(notes, restsFor(rel-cursor, voice, staff)...)
			cursor = rel
		}

		limit := tpm - rel
		if gi+1 < len(groups) {
			limit = util.Min(limit, groups[gi+1][0].StartTick-measureStart-rel)
		}
		dur := util.Min(group[0].DurationTicks, limit)
		dur = floorToLadder(dur)

		noteType, dotted := durationToType(dur)
		for i, e := range group {
			step, alter, octave := spellPitch(e.Pitch, keyFifths)
			n := Note{
				Dynamics: dynamicsAttr(e.Velocity),
				Pitch:    &Pitch{Step: step, Alter: alter, Octave: octave},
				Duration: dur,
				Voice:    voice,
				Type:     noteType,
				Stem:     stem,
				Staff:    staff,
			}
			if i > 0 {
				n.Chord = &Empty{}
			}
			if dotted {
				n.Dot = &Empty{}
			}
			if e.TieStart {
				n.Ties = append(n.Ties, Tie{Type: "start"})
			}
			if e.TieStop {
				n.Ties = append(n.Ties, Tie{Type: "stop"})
			}
			if len(n.Ties) > 0 {
				tieds := make([]Tied, len(n.Ties))
				for ti, t := range n.Ties {
					tieds[ti] = Tied{Type: t.Type}
				}
				n.Notations = &Notations{Tieds: tieds}
			}
			notes = append(notes, n)
		}
		cursor = rel + dur
	}

	if cursor < tpm {
		notes = append(notes, restsFor(tpm-cursor, voice, staff)...)
	}

	applyBeams(notes)
	return notes
}

func wholeRest(voice, staff int) Note {
	return Note{
		Rest:     &Empty{},
		Duration: constants.TicksPerMeasure,
		Voice:    voice,
		Type:     "whole",
		Staff:    staff,
	}
}

// restsFor fills a gap with the fewest rests, longest first.
func restsFor(gap, voice, staff int) []Note {
	var rests []Note
	for gap >= constants.TicksPerSixteenth {
		d := floorToLadder(gap)
		noteType, dotted := durationToType(d)
		r := Note{
			Rest:     &Empty{},
			Duration: d,
			Voice:    voice,
			Type:     noteType,
			Staff:    staff,
		}
		if dotted {
			r.Dot = &Empty{}
		}
		rests = append(rests, r)
		gap -= d
	}
	return rests
}
