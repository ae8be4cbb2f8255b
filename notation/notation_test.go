package notation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/model"
)

func scaleNotes(pitches ...int) []model.NoteEvent {
	var notes []model.NoteEvent
	for i, p := range pitches {
		notes = append(notes, model.NoteEvent{
			Pitch:    p,
			Start:    float64(i) * 0.5,
			End:      float64(i)*0.5 + 0.5,
			Velocity: 80,
		})
	}
	return notes
}

func TestDetectKeyCMajor(t *testing.T) {
	root, fifths := DetectKey(scaleNotes(60, 62, 64, 65, 67, 69, 71))
	assert.Equal(t, 0, root)
	assert.Equal(t, 0, fifths)
}

func TestDetectKeyGMajor(t *testing.T) {
	root, fifths := DetectKey(scaleNotes(67, 69, 71, 72, 74, 76, 78))
	assert.Equal(t, 7, root)
	assert.Equal(t, 1, fifths)
}

func TestDetectKeyEmptyDefaultsToCMajor(t *testing.T) {
	root, fifths := DetectKey(nil)
	assert.Equal(t, 0, root)
	assert.Equal(t, 0, fifths)
}

func TestSpellPitchUsesKeySignature(t *testing.T) {
	step, alter, octave := spellPitch(61, 1)
	assert.Equal(t, "C", step)
	assert.Equal(t, 1, alter)
	assert.Equal(t, 4, octave)

	step, alter, octave = spellPitch(61, -1)
	assert.Equal(t, "D", step)
	assert.Equal(t, -1, alter)
	assert.Equal(t, 4, octave)
}

func TestQuantizeDurationTiesGoToLonger(t *testing.T) {
	// 3780 is equidistant from a sixteenth (2520) and an eighth (5040).
	assert.Equal(t, 5040, quantizeDuration(3780))
	assert.Equal(t, constants.DivisionsPerQuarter, quantizeDuration(10000))
	assert.Equal(t, constants.TicksPerMeasure, quantizeDuration(99999999))
}

func TestDurationToType(t *testing.T) {
	noteType, dotted := durationToType(constants.TicksPerMeasure)
	assert.Equal(t, "whole", noteType)
	assert.False(t, dotted)

	noteType, dotted = durationToType(7560)
	assert.Equal(t, "eighth", noteType)
	assert.True(t, dotted)
}

func TestQuantizeSplitsTieAcrossMeasureBoundary(t *testing.T) {
	// At 120 bpm a sixteenth is 0.125s. The merge pass rounds the
	// 0.4s note up to a full beat, so it runs from sixteenth 15 to
	// sixteenth 19 and crosses into measure two.
	events := quantizeToTicks([]model.NoteEvent{
		{Pitch: 60, Start: 1.9, End: 2.3, Velocity: 80},
	}, 120)

	assert.Len(t, events, 2)

	assert.Equal(t, 15*constants.TicksPerSixteenth, events[0].StartTick)
	assert.Equal(t, constants.TicksPerSixteenth, events[0].DurationTicks)
	assert.True(t, events[0].TieStart)
	assert.False(t, events[0].TieStop)

	assert.Equal(t, constants.TicksPerMeasure, events[1].StartTick)
	assert.Equal(t, 3*constants.TicksPerSixteenth, events[1].DurationTicks)
	assert.False(t, events[1].TieStart)
	assert.True(t, events[1].TieStop)
}

func TestQuantizeDropsNoise(t *testing.T) {
	// 0.05s at 120 bpm is under three quarters of a sixteenth.
	events := quantizeToTicks([]model.NoteEvent{
		{Pitch: 60, Start: 0, End: 0.05, Velocity: 80},
	}, 120)
	assert.Empty(t, events)
}

func TestMergeConsecutiveRoundsUpAndKeepsLoudest(t *testing.T) {
	eighth := 0.25 // 120 bpm
	merged := mergeConsecutive([]model.NoteEvent{
		{Pitch: 60, Start: 0, End: 0.2, Velocity: 60},
		{Pitch: 60, Start: 0.25, End: 0.45, Velocity: 90},
	}, eighth)

	assert.Len(t, merged, 1)
	assert.Equal(t, 0.0, merged[0].Start)
	assert.InDelta(t, 0.5, merged[0].End, 1e-9)
	assert.Equal(t, 90, merged[0].Velocity)
}

func TestMergeConsecutiveKeepsSeparatedNotes(t *testing.T) {
	eighth := 0.25
	merged := mergeConsecutive([]model.NoteEvent{
		{Pitch: 60, Start: 0, End: 0.25, Velocity: 80},
		{Pitch: 60, Start: 1.0, End: 1.25, Velocity: 80},
	}, eighth)
	assert.Len(t, merged, 2)
}

func voiceDuration(notes []Note) int {
	total := 0
	for _, n := range notes {
		if n.Chord == nil {
			total += n.Duration
		}
	}
	return total
}

func TestBuildVoiceAlwaysFillsTheMeasure(t *testing.T) {
	notes := buildVoice([]model.TickEvent{
		{Pitch: 72, Velocity: 80, StartTick: 0, DurationTicks: constants.DivisionsPerQuarter},
	}, 0, 1, 1, 0)

	assert.Equal(t, constants.TicksPerMeasure, voiceDuration(notes))
	assert.NotNil(t, notes[0].Pitch)
	assert.Equal(t, "C", notes[0].Pitch.Step)
	assert.Equal(t, 5, notes[0].Pitch.Octave)
	for _, n := range notes[1:] {
		assert.NotNil(t, n.Rest)
	}
}

func TestBuildVoiceEmptyIsWholeRest(t *testing.T) {
	notes := buildVoice(nil, 3, 2, 2, 0)
	assert.Len(t, notes, 1)
	assert.NotNil(t, notes[0].Rest)
	assert.Equal(t, constants.TicksPerMeasure, notes[0].Duration)
	assert.Equal(t, "whole", notes[0].Type)
	assert.Equal(t, 2, notes[0].Voice)
}

func TestBuildVoiceGroupsChords(t *testing.T) {
	notes := buildVoice([]model.TickEvent{
		{Pitch: 60, Velocity: 80, StartTick: 0, DurationTicks: constants.DivisionsPerQuarter},
		{Pitch: 64, Velocity: 80, StartTick: 0, DurationTicks: constants.DivisionsPerQuarter},
	}, 0, 1, 1, 0)

	assert.Nil(t, notes[0].Chord)
	assert.NotNil(t, notes[1].Chord)
	assert.Equal(t, notes[0].Duration, notes[1].Duration)
}

func TestBuildVoiceShortensOverlapIntoNextOnset(t *testing.T) {
	notes := buildVoice([]model.TickEvent{
		{Pitch: 60, Velocity: 80, StartTick: 0, DurationTicks: constants.DivisionsPerQuarter * 2},
		{Pitch: 62, Velocity: 80, StartTick: constants.DivisionsPerQuarter, DurationTicks: constants.DivisionsPerQuarter},
	}, 0, 1, 1, 0)

	assert.Equal(t, constants.DivisionsPerQuarter, notes[0].Duration)
	assert.Equal(t, constants.TicksPerMeasure, voiceDuration(notes))
}

func eighthNote(pitch int) Note {
	return Note{
		Pitch:    &Pitch{Step: "C", Octave: 4},
		Duration: constants.DivisionsPerQuarter / 2,
		Type:     "eighth",
	}
}

func primaryBeams(notes []Note) []string {
	var values []string
	for _, n := range notes {
		for _, b := range n.Beams {
			if b.Number == 1 {
				values = append(values, b.Value)
			}
		}
	}
	return values
}

func TestApplyBeamsGroupsOfFour(t *testing.T) {
	notes := []Note{eighthNote(60), eighthNote(62), eighthNote(64), eighthNote(65)}
	applyBeams(notes)
	assert.Equal(t, []string{"begin", "continue", "continue", "end"}, primaryBeams(notes))
}

func TestApplyBeamsRestBreaksRun(t *testing.T) {
	rest := Note{Rest: &Empty{}, Duration: constants.DivisionsPerQuarter / 2, Type: "eighth"}
	notes := []Note{eighthNote(60), eighthNote(62), rest, eighthNote(64), eighthNote(65)}
	applyBeams(notes)
	assert.Equal(t, []string{"begin", "end", "begin", "end"}, primaryBeams(notes))
	assert.Empty(t, notes[2].Beams)
}

func TestApplyBeamsSixteenthHooks(t *testing.T) {
	sixteenth := Note{
		Pitch:    &Pitch{Step: "D", Octave: 4},
		Duration: constants.TicksPerSixteenth,
		Type:     "16th",
	}
	notes := []Note{eighthNote(60), sixteenth, eighthNote(64)}
	applyBeams(notes)

	assert.Len(t, notes[1].Beams, 2)
	assert.Equal(t, 2, notes[1].Beams[1].Number)
	assert.Equal(t, "forward hook", notes[1].Beams[1].Value)

	notes = []Note{eighthNote(60), sixteenth}
	applyBeams(notes)
	assert.Equal(t, "backward hook", notes[1].Beams[1].Value)
}

func TestBuildScoreLayout(t *testing.T) {
	right := []model.NoteEvent{{Pitch: 72, Start: 0, End: 0.5, Velocity: 80}}
	score := BuildScore(right, nil, 120, model.ScoreMetadata{Title: "Test Piece"})

	assert.Equal(t, "4.0", score.Version)
	assert.Equal(t, "Test Piece", score.MovementTitle)
	assert.Len(t, score.Parts, 1)
	assert.Len(t, score.Parts[0].Measures, 1)

	m := score.Parts[0].Measures[0]
	assert.NotNil(t, m.Attributes)
	assert.Equal(t, constants.DivisionsPerQuarter, m.Attributes.Divisions)
	assert.Equal(t, 2, m.Attributes.Staves)
	assert.Equal(t, constants.TicksPerMeasure, m.Backup.Duration)

	assert.Equal(t, constants.TicksPerMeasure, voiceDuration(m.Voice1))
	assert.Len(t, m.Voice2, 1)
	assert.NotNil(t, m.Voice2[0].Rest)
}

func TestBuildScoreEmptyInputStillHasOneMeasure(t *testing.T) {
	score := BuildScore(nil, nil, 120, model.ScoreMetadata{})
	assert.Equal(t, "Piano Arrangement", score.MovementTitle)
	assert.Len(t, score.Parts[0].Measures, 1)
}

func TestWriteDocumentEmitsDeclarationAndDoctype(t *testing.T) {
	score := BuildScore(nil, nil, 120, model.ScoreMetadata{})
	var buf bytes.Buffer
	err := WriteDocument(score, &buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<!DOCTYPE score-partwise")
	assert.Contains(t, out, `<score-partwise version="4.0">`)
	assert.Contains(t, out, "<rest></rest>")
}

func TestWriteDocumentOrdersVoicesAroundBackup(t *testing.T) {
	right := []model.NoteEvent{{Pitch: 72, Start: 0, End: 2, Velocity: 80}}
	left := []model.NoteEvent{{Pitch: 48, Start: 0, End: 2, Velocity: 70}}
	score := BuildScore(right, left, 120, model.ScoreMetadata{})

	var buf bytes.Buffer
	err := WriteDocument(score, &buf)
	assert.NoError(t, err)

	out := buf.String()
	backup := strings.Index(out, "<backup>")
	assert.True(t, backup >= 0)

	// Both voices carry notes, on their own side of the backup.
	assert.Contains(t, out[:backup], "<step>C</step>")
	assert.Contains(t, out[:backup], "<voice>1</voice>")
	assert.Contains(t, out[backup:], "<note>")
	assert.Contains(t, out[backup:], "<voice>2</voice>")
	assert.Contains(t, out, `<measure number="1">`)
}
