package notation

import (
	"encoding/xml"
	"io"
	"math"
	"os"
	"time"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/model"
)

const doctype = `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 4.0 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">` + "\n"

// BuildScore renders a two-hand arrangement as a single grand-staff
// piano part. The right hand becomes voice 1 on the treble staff, the
// left hand voice 2 on the bass staff, with a full-measure backup
// between them. The key signature is detected from both hands together.
func BuildScore(right, left []model.NoteEvent, tempo float64, meta model.ScoreMetadata) *ScorePartwise {
	rightTicks := quantizeToTicks(right, tempo)
	leftTicks := quantizeToTicks(left, tempo)

	all := make([]model.NoteEvent, 0, len(right)+len(left))
	all = append(all, right...)
	all = append(all, left...)
	_, fifths := DetectKey(all)

	lastTick := 0
	for _, e := range rightTicks {
		if end := e.StartTick + e.DurationTicks; end > lastTick {
			lastTick = end
		}
	}
	for _, e := range leftTicks {
		if end := e.StartTick + e.DurationTicks; end > lastTick {
			lastTick = end
		}
	}
	numMeasures := int(math.Ceil(float64(lastTick) / float64(constants.TicksPerMeasure)))
	if numMeasures < 1 {
		numMeasures = 1
	}

	measures := make([]Measure, numMeasures)
	for m := 0; m < numMeasures; m++ {
		measures[m] = Measure{
			Number: m + 1,
			Voice1: buildVoice(eventsInMeasure(rightTicks, m), m, 1, 1, fifths),
			Backup: &Backup{Duration: constants.TicksPerMeasure},
			Voice2: buildVoice(eventsInMeasure(leftTicks, m), m, 2, 2, fifths),
		}
	}

	measures[0].Attributes = &Attributes{
		Divisions: constants.DivisionsPerQuarter,
		Key:       Key{Fifths: fifths},
		Time:      Time{Beats: constants.BeatsPerMeasure, BeatType: 4},
		Staves:    2,
		Clefs: []Clef{
			{Number: 1, Sign: "G", Line: 2},
			{Number: 2, Sign: "F", Line: 4},
		},
	}
	measures[0].Direction = &Direction{
		Placement: "above",
		DirectionType: DirectionType{
			Metronome: Metronome{BeatUnit: "quarter", PerMinute: int(math.Round(tempo))},
		},
		Staff: 1,
		Sound: Sound{Tempo: tempo},
	}

	title := meta.Title
	if title == "" {
		title = "Piano Arrangement"
	}
	score := &ScorePartwise{
		Version:       "4.0",
		MovementTitle: title,
		Identification: Identification{
			Creators: []Creator{{Type: "composer", Value: meta.Artist}},
			Rights:   "Crafted with NoteFlow",
			Encoding: Encoding{
				EncodingDate: time.Now().Format("2006-01-02"),
				Software:     "NoteFlow Piano Transcription",
			},
		},
		Defaults: Defaults{
			Scaling: Scaling{Millimeters: "7.05556", Tenths: "40"},
			PageLayout: PageLayout{
				PageHeight: "1683.78",
				PageWidth:  "1190.55",
				PageMargins: PageMargins{
					Left:   "56.6929",
					Right:  "56.6929",
					Top:    "56.6929",
					Bottom: "113.386",
				},
			},
		},
		PartList: PartList{
			ScoreParts: []ScorePart{{
				ID:              "P1",
				PartName:        "Piano",
				ScoreInstrument: ScoreInstrument{ID: "I1", Name: "Piano", Abbreviation: "Pno"},
				MidiInstrument:  MidiInstrument{ID: "I1", Channel: 1, Program: 1},
			}},
		},
		Parts: []Part{{ID: "P1", Measures: measures}},
	}
	return score
}

// WriteDocument serializes the score with the XML declaration and the
// MusicXML partwise doctype.
func WriteDocument(score *ScorePartwise, w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := io.WriteString(w, doctype); err != nil {
		return err
	}
	out, err := xml.MarshalIndent(score, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// ExportFile writes the score to a .musicxml file.
func ExportFile(score *ScorePartwise, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteDocument(score, f)
}
