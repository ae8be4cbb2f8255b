package midi

import (
	"io"
	"math"
	"os"
	"sort"

	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ticksPerQuarter is the resolution of written files. Unrelated to the
// notation export tick grid.
const ticksPerQuarter = 960

type timedMessage struct {
	tick    uint32
	off     bool
	message smf.Message
}

// BuildTwoHand assembles the two-staff output file: a tempo/meter header
// on the right-hand track, one track per hand.
func BuildTwoHand(right, left []model.NoteEvent, tempo float64) *smf.SMF {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	s.Add(noteTrack("Right Hand", right, tempo, true))
	s.Add(noteTrack("Left Hand", left, tempo, false))
	return s
}

func noteTrack(name string, notes []model.NoteEvent, tempo float64, header bool) smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	if header {
		track.Add(0, smf.MetaTempo(tempo))
		track.Add(0, smf.MetaMeter(4, 4))
	}

	secondsPerTick := 60.0 / tempo / ticksPerQuarter
	var timed []timedMessage
	for _, n := range notes {
		if !n.Valid() {
			continue
		}
		key := uint8(util.Clamp(n.Pitch, 0, 127))
		velocity := uint8(util.Clamp(n.Velocity, 1, 127))
		onTick := uint32(math.Round(n.Start / secondsPerTick))
		offTick := uint32(math.Round(n.End / secondsPerTick))
		if offTick <= onTick {
			offTick = onTick + 1
		}
		timed = append(timed, timedMessage{tick: onTick, message: smf.Message(gomidi.NoteOn(0, key, velocity))})
		timed = append(timed, timedMessage{tick: offTick, off: true, message: smf.Message(gomidi.NoteOff(0, key))})
	}

	// offs before ons at the same tick so retriggered pitches stay paired
	sort.SliceStable(timed, func(i, j int) bool {
		if timed[i].tick != timed[j].tick {
			return timed[i].tick < timed[j].tick
		}
		return timed[i].off && !timed[j].off
	})

	var lastTick uint32
	for _, tm := range timed {
		track.Add(tm.tick-lastTick, tm.message)
		lastTick = tm.tick
	}
	track.Close(0)
	return track
}

// WriteTo serializes the file to w.
func WriteTo(s *smf.SMF, w io.Writer) error {
	_, err := s.WriteTo(w)
	return err
}

// WriteMidiFile writes the file to disk.
func WriteMidiFile(s *smf.SMF, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTo(s, f)
}
