package chord

import (
	"testing"

	"github.com/noteflow/noteflow/model"
	"github.com/stretchr/testify/assert"
)

func TestDetectEmptyInputReturnsNoChords(t *testing.T) {
	chords := Detect(nil, 4, 120)

	assert := assert.New(t)
	assert.Empty(chords)
}

func TestDetectCMajorTriad(t *testing.T) {
	// C4, E4, G4 held for a full measure at 120 BPM
	notes := []model.NoteEvent{
		{Pitch: 60, Start: 0, End: 2, Velocity: 80},
		{Pitch: 64, Start: 0, End: 2, Velocity: 80},
		{Pitch: 67, Start: 0, End: 2, Velocity: 80},
	}
	chords := Detect(notes, 4, 120)

	assert := assert.New(t)
	assert.Len(chords, 1)
	assert.Equal(0, chords[0].Root)
	assert.Equal(model.Major, chords[0].Quality)
	assert.Equal("C", chords[0].Name())
}

func TestDetectMinorChord(t *testing.T) {
	// A minor: A2, C3, E3
	notes := []model.NoteEvent{
		{Pitch: 45, Start: 0, End: 2, Velocity: 70},
		{Pitch: 48, Start: 0, End: 2, Velocity: 70},
		{Pitch: 52, Start: 0, End: 2, Velocity: 70},
	}
	chords := Detect(notes, 4, 120)

	assert := assert.New(t)
	assert.Len(chords, 1)
	assert.Equal(9, chords[0].Root)
	assert.Equal(model.Minor, chords[0].Quality)
	assert.Equal("Aminor", chords[0].Name())
}

func TestDetectTilesWholeDurationWithoutGaps(t *testing.T) {
	// 4/4 at 120 BPM: measure length = 2s. 7.5s of notes => 4 measures.
	notes := []model.NoteEvent{
		{Pitch: 60, Start: 0, End: 7.5, Velocity: 80},
	}
	chords := Detect(notes, 4, 120)

	assert := assert.New(t)
	assert.Len(chords, 4)
	for i, c := range chords {
		assert.Equal(float64(i)*2.0, c.Start)
		assert.Equal(float64(i+1)*2.0, c.End)
	}
}

func TestDetectSilentMeasureResolvesToCMajor(t *testing.T) {
	// Note only in measure 1; measure 0 is silent.
	notes := []model.NoteEvent{
		{Pitch: 62, Start: 2.0, End: 3.9, Velocity: 80},
	}
	chords := Detect(notes, 4, 120)

	assert := assert.New(t)
	assert.Len(chords, 2)
	assert.Equal(0, chords[0].Root)
	assert.Equal(model.Major, chords[0].Quality)
}

func TestDetectDropsMalformedNotes(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 65, Start: 1.0, End: 0.5, Velocity: 80}, // end before start
		{Pitch: 60, Start: 0, End: 2, Velocity: 80},
		{Pitch: 64, Start: 0, End: 2, Velocity: 80},
		{Pitch: 67, Start: 0, End: 2, Velocity: 80},
	}
	chords := Detect(notes, 4, 120)

	assert := assert.New(t)
	assert.Len(chords, 1)
	assert.Equal(0, chords[0].Root)
	assert.Equal(model.Major, chords[0].Quality)
}

func TestDetectDominantSeventh(t *testing.T) {
	// G7: G2 B2 D3 F3, all equally weighted
	notes := []model.NoteEvent{
		{Pitch: 43, Start: 0, End: 2, Velocity: 75},
		{Pitch: 47, Start: 0, End: 2, Velocity: 75},
		{Pitch: 50, Start: 0, End: 2, Velocity: 75},
		{Pitch: 53, Start: 0, End: 2, Velocity: 75},
	}
	chords := Detect(notes, 4, 120)

	assert := assert.New(t)
	assert.Len(chords, 1)
	assert.Equal(7, chords[0].Root)
	assert.Equal(model.Dominant7, chords[0].Quality)
}

func TestPitchesInOctave(t *testing.T) {
	c := model.Chord{Root: 0, Quality: model.Major}

	assert := assert.New(t)
	assert.Equal([]int{48, 52, 55}, c.PitchesInOctave(3))
}
