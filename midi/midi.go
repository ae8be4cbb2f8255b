package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	res, err := smf.ReadFrom(r)

	if err != nil {
		errText := fmt.Sprintf("Error parsing midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return res, nil
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	var blank smf.SMF

	dat, err := os.ReadFile(filepath)
	if err != nil {
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return ReadMidi(bytes.NewReader(dat))
}

type openNote struct {
	start    float64
	velocity uint8
}

// ExtractNotes walks every track, pairs note-on/note-off messages and
// returns the notes with times in seconds. A note-on with velocity 0
// counts as a note-off. Unclosed notes are dropped.
func ExtractNotes(s *smf.SMF) []model.NoteEvent {
	var notes []model.NoteEvent
	for _, track := range s.Tracks {
		var absTicks int64
		open := make(map[uint8]openNote)
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				seconds := float64(s.TimeAt(absTicks)) / 1e6
				if velocity == 0 {
					notes = closeNote(notes, open, key, seconds)
					continue
				}
				open[key] = openNote{start: seconds, velocity: velocity}
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				seconds := float64(s.TimeAt(absTicks)) / 1e6
				notes = closeNote(notes, open, key, seconds)
			}
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		return notes[i].Pitch < notes[j].Pitch
	})
	return notes
}

func closeNote(notes []model.NoteEvent, open map[uint8]openNote, key uint8, end float64) []model.NoteEvent {
	on, ok := open[key]
	if !ok {
		return notes
	}
	delete(open, key)
	n := model.NoteEvent{
		Pitch:    int(key),
		Start:    on.start,
		End:      end,
		Velocity: int(on.velocity),
	}
	if !n.Valid() {
		return notes
	}
	return append(notes, n)
}

// EstimateTempo returns the first tempo marking in the file, or the
// 120 BPM default when there is none.
func EstimateTempo(s *smf.SMF) float64 {
	for _, track := range s.Tracks {
		for _, event := range track {
			var bpm float64
			if event.Message.GetMetaTempo(&bpm) {
				return bpm
			}
		}
	}
	return constants.DefaultTempo
}
