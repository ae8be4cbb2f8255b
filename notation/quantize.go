package notation

import (
	"math"
	"sort"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/util"
)

// standardTicks is the writable duration ladder, longest first: whole,
// dotted half, half, dotted quarter, quarter, dotted eighth, eighth,
// sixteenth. Only single dots are representable.
var standardTicks = []int{
	constants.DivisionsPerQuarter * 4,
	constants.DivisionsPerQuarter * 3,
	constants.DivisionsPerQuarter * 2,
	constants.DivisionsPerQuarter * 3 / 2,
	constants.DivisionsPerQuarter,
	constants.DivisionsPerQuarter * 3 / 4,
	constants.DivisionsPerQuarter / 2,
	constants.DivisionsPerQuarter / 4,
}

// standardEighths is the same ladder in eighth-note units, used by the
// pre-grid merge pass.
var standardEighths = []float64{8, 6, 4, 3, 2, 1.5, 1, 0.5}

// quantizeDuration snaps ticks to the nearest ladder value; ties go to
// the longer duration.
func quantizeDuration(ticks int) int {
	closest := standardTicks[0]
	best := abs(closest - ticks)
	for _, d := range standardTicks[1:] {
		if diff := abs(d - ticks); diff < best {
			best = diff
			closest = d
		}
	}
	return closest
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mergeConsecutive merges same-pitch notes that re-articulate within a
// quarter note (or overlap), keeping the loudest velocity, then rounds
// the merged duration UP to the ladder so nothing is clipped short.
func mergeConsecutive(notes []model.NoteEvent, eighthDuration float64) []model.NoteEvent {
	if len(notes) == 0 {
		return notes
	}

	byPitch := make(map[int][]model.NoteEvent)
	for _, n := range notes {
		byPitch[n.Pitch] = append(byPitch[n.Pitch], n)
	}

	mergeThreshold := eighthDuration * 2

	var merged []model.NoteEvent
	for _, pitch := range util.GetKeysSorted(byPitch) {
		track := byPitch[pitch]
		sort.SliceStable(track, func(i, j int) bool {
			return track[i].Start < track[j].Start
		})

		i := 0
		for i < len(track) {
			start := track[i].Start
			end := track[i].End
			velocity := track[i].Velocity

			j := i + 1
			for j < len(track) {
				next := track[j]
				if next.Start-end >= mergeThreshold {
					break
				}
				end = math.Max(end, next.End)
				velocity = util.Max(velocity, next.Velocity)
				j++
			}

			durationEighths := (end - start) / eighthDuration
			rounded := standardEighths[0]
			for k := len(standardEighths) - 1; k >= 0; k-- {
				if standardEighths[k] >= durationEighths {
					rounded = standardEighths[k]
					break
				}
			}

			merged = append(merged, model.NoteEvent{
				Pitch:    pitch,
				Start:    start,
				End:      start + rounded*eighthDuration,
				Velocity: velocity,
			})
			i = j
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].Pitch < merged[j].Pitch
	})
	return merged
}

// quantizeToTicks filters noise, merges re-articulations, snaps onsets
// and offsets to the sixteenth grid and splits anything that crosses a
// measure boundary into a tie chain. Fragment durations are re-quantized
// to the ladder independently.
func quantizeToTicks(notes []model.NoteEvent, tempo float64) []model.TickEvent {
	quarterDuration := 60.0 / tempo
	sixteenthDuration := quarterDuration / 4

	minDuration := sixteenthDuration * constants.NoiseFloorSixteenths
	var kept []model.NoteEvent
	for _, n := range notes {
		if n.Valid() && n.Duration() >= minDuration {
			kept = append(kept, n)
		}
	}

	kept = mergeConsecutive(kept, quarterDuration/2)

	var events []model.TickEvent
	for _, n := range kept {
		startSixteenth := int(math.Round(n.Start / sixteenthDuration))
		endSixteenth := int(math.Round(n.End / sixteenthDuration))
		if endSixteenth <= startSixteenth {
			endSixteenth = startSixteenth + 1
		}

		startTick := startSixteenth * constants.TicksPerSixteenth
		durationTicks := quantizeDuration((endSixteenth - startSixteenth) * constants.TicksPerSixteenth)
		events = append(events, splitAtMeasures(n, startTick, durationTicks)...)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTick != events[j].StartTick {
			return events[i].StartTick < events[j].StartTick
		}
		return events[i].Pitch < events[j].Pitch
	})
	return events
}

// splitAtMeasures expands one quantized note into tick events, splitting
// at measure boundaries with tie flags. Interior fragments carry both
// flags; the chain conserves the quantized duration.
func splitAtMeasures(n model.NoteEvent, startTick, durationTicks int) []model.TickEvent {
	tpm := constants.TicksPerMeasure
	measureEnd := (startTick/tpm)*tpm + tpm
	endTick := startTick + durationTicks

	if endTick <= measureEnd {
		return []model.TickEvent{{
			Pitch:         n.Pitch,
			Velocity:      n.Velocity,
			StartTick:     startTick,
			DurationTicks: durationTicks,
		}}
	}

	events := []model.TickEvent{{
		Pitch:         n.Pitch,
		Velocity:      n.Velocity,
		StartTick:     startTick,
		DurationTicks: quantizeDuration(measureEnd - startTick),
		TieStart:      true,
	}}

	remaining := endTick - measureEnd
	currentTick := measureEnd
	for remaining > 0 {
		chunk := util.Min(remaining, tpm)
		isLast := remaining <= tpm
		events = append(events, model.TickEvent{
			Pitch:         n.Pitch,
			Velocity:      n.Velocity,
			StartTick:     currentTick,
			DurationTicks: quantizeDuration(chunk),
			TieStart:      !isLast,
			TieStop:       true,
		})
		remaining -= chunk
		currentTick += tpm
	}
	return events
}
