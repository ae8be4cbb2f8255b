package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/noteflow/noteflow/model"
)

func roundTrip(t *testing.T, s *smf.SMF) *smf.SMF {
	var buf bytes.Buffer
	err := WriteTo(s, &buf)
	assert.NoError(t, err)

	read, err := ReadMidi(&buf)
	assert.NoError(t, err)
	return read
}

func TestBuildTwoHandRoundTrip(t *testing.T) {
	assert := assert.New(t)

	right := []model.NoteEvent{{Pitch: 72, Start: 0, End: 0.5, Velocity: 80}}
	left := []model.NoteEvent{{Pitch: 48, Start: 0, End: 1.0, Velocity: 70}}

	read := roundTrip(t, BuildTwoHand(right, left, 120))

	assert.Equal(120.0, EstimateTempo(read))

	notes := ExtractNotes(read)
	assert.Len(notes, 2)

	assert.Equal(48, notes[0].Pitch)
	assert.Equal(70, notes[0].Velocity)
	assert.InDelta(0.0, notes[0].Start, 1e-6)
	assert.InDelta(1.0, notes[0].End, 1e-6)

	assert.Equal(72, notes[1].Pitch)
	assert.Equal(80, notes[1].Velocity)
	assert.InDelta(0.5, notes[1].End, 1e-6)
}

func TestBuildTwoHandDropsInvalidNotes(t *testing.T) {
	right := []model.NoteEvent{
		{Pitch: 60, Start: 1.0, End: 0.5, Velocity: 80},
		{Pitch: 64, Start: 0, End: 0.5, Velocity: 80},
	}

	notes := ExtractNotes(roundTrip(t, BuildTwoHand(right, nil, 120)))
	assert.Len(t, notes, 1)
	assert.Equal(t, 64, notes[0].Pitch)
}

func TestExtractNotesTreatsZeroVelocityOnAsOff(t *testing.T) {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(960)

	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	track.Add(0, smf.Message(gomidi.NoteOn(0, 60, 90)))
	track.Add(960, smf.Message(gomidi.NoteOn(0, 60, 0)))
	track.Close(0)
	s.Add(track)

	notes := ExtractNotes(roundTrip(t, s))
	assert.Len(t, notes, 1)
	assert.Equal(t, 60, notes[0].Pitch)
	assert.Equal(t, 90, notes[0].Velocity)
	assert.InDelta(t, 0.5, notes[0].End, 1e-6)
}

func TestExtractNotesDropsUnclosedNotes(t *testing.T) {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(960)

	var track smf.Track
	track.Add(0, smf.Message(gomidi.NoteOn(0, 60, 90)))
	track.Close(960)
	s.Add(track)

	assert.Empty(t, ExtractNotes(roundTrip(t, s)))
}

func TestEstimateTempoDefaultsTo120(t *testing.T) {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(960)

	var track smf.Track
	track.Close(0)
	s.Add(track)

	assert.Equal(t, 120.0, EstimateTempo(s))
}
