package notation

import (
	"encoding/xml"
	"strconv"
)

// Empty marks a presence-only element such as <chord/> or <rest/>.
type Empty struct{}

// ScorePartwise is the root element of a MusicXML 4.0 document.
type ScorePartwise struct {
	XMLName        xml.Name       `xml:"score-partwise"`
	Version        string         `xml:"version,attr"`
	MovementTitle  string         `xml:"movement-title,omitempty"`
	Identification Identification `xml:"identification"`
	Defaults       Defaults       `xml:"defaults"`
	PartList       PartList       `xml:"part-list"`
	Parts          []Part         `xml:"part"`
}

type Identification struct {
	Creators []Creator `xml:"creator"`
	Rights   string    `xml:"rights"`
	Encoding Encoding  `xml:"encoding"`
}

type Creator struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type Encoding struct {
	EncodingDate string `xml:"encoding-date"`
	Software     string `xml:"software"`
}

type Defaults struct {
	Scaling    Scaling    `xml:"scaling"`
	PageLayout PageLayout `xml:"page-layout"`
}

type Scaling struct {
	Millimeters string `xml:"millimeters"`
	Tenths      string `xml:"tenths"`
}

type PageLayout struct {
	PageHeight  string      `xml:"page-height"`
	PageWidth   string      `xml:"page-width"`
	PageMargins PageMargins `xml:"page-margins"`
}

type PageMargins struct {
	Left   string `xml:"left-margin"`
	Right  string `xml:"right-margin"`
	Top    string `xml:"top-margin"`
	Bottom string `xml:"bottom-margin"`
}

type PartList struct {
	ScoreParts []ScorePart `xml:"score-part"`
}

type ScorePart struct {
	ID              string          `xml:"id,attr"`
	PartName        string          `xml:"part-name"`
	ScoreInstrument ScoreInstrument `xml:"score-instrument"`
	MidiInstrument  MidiInstrument  `xml:"midi-instrument"`
}

type ScoreInstrument struct {
	ID           string `xml:"id,attr"`
	Name         string `xml:"instrument-name"`
	Abbreviation string `xml:"instrument-abbreviation"`
}

type MidiInstrument struct {
	ID      string `xml:"id,attr"`
	Channel int    `xml:"midi-channel"`
	Program int    `xml:"midi-program"`
}

type Part struct {
	ID       string    `xml:"id,attr"`
	Measures []Measure `xml:"measure"`
}

// Measure holds both piano voices. Two note runs separated by a backup
// cannot be expressed with struct tags (encoding/xml forbids repeated
// element names), so MarshalXML writes the partwise element order by
// hand: attributes, direction, voice 1 notes, backup, voice 2 notes.
type Measure struct {
	Number     int
	Attributes *Attributes
	Direction  *Direction
	Voice1     []Note
	Backup     *Backup
	Voice2     []Note
}

func (m Measure) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "measure"}
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "number"}, Value: strconv.Itoa(m.Number)}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if m.Attributes != nil {
		if err := e.EncodeElement(m.Attributes, xml.StartElement{Name: xml.Name{Local: "attributes"}}); err != nil {
			return err
		}
	}
	if m.Direction != nil {
		if err := e.EncodeElement(m.Direction, xml.StartElement{Name: xml.Name{Local: "direction"}}); err != nil {
			return err
		}
	}
	note := xml.StartElement{Name: xml.Name{Local: "note"}}
	for _, n := range m.Voice1 {
		if err := e.EncodeElement(n, note); err != nil {
			return err
		}
	}
	if m.Backup != nil {
		if err := e.EncodeElement(m.Backup, xml.StartElement{Name: xml.Name{Local: "backup"}}); err != nil {
			return err
		}
	}
	for _, n := range m.Voice2 {
		if err := e.EncodeElement(n, note); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type Attributes struct {
	Divisions int    `xml:"divisions"`
	Key       Key    `xml:"key"`
	Time      Time   `xml:"time"`
	Staves    int    `xml:"staves"`
	Clefs     []Clef `xml:"clef"`
}

type Key struct {
	Fifths int `xml:"fifths"`
}

type Time struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

type Clef struct {
	Number int    `xml:"number,attr"`
	Sign   string `xml:"sign"`
	Line   int    `xml:"line"`
}

type Direction struct {
	Placement     string        `xml:"placement,attr"`
	DirectionType DirectionType `xml:"direction-type"`
	Staff         int           `xml:"staff"`
	Sound         Sound         `xml:"sound"`
}

type DirectionType struct {
	Metronome Metronome `xml:"metronome"`
}

type Metronome struct {
	BeatUnit  string `xml:"beat-unit"`
	PerMinute int    `xml:"per-minute"`
}

type Sound struct {
	Tempo float64 `xml:"tempo,attr"`
}

type Backup struct {
	Duration int `xml:"duration"`
}

// Note covers both pitched notes and rests. Field order follows the
// MusicXML content model for <note>.
type Note struct {
	Dynamics  string     `xml:"dynamics,attr,omitempty"`
	Chord     *Empty     `xml:"chord,omitempty"`
	Pitch     *Pitch     `xml:"pitch,omitempty"`
	Rest      *Empty     `xml:"rest,omitempty"`
	Duration  int        `xml:"duration"`
	Ties      []Tie      `xml:"tie"`
	Voice     int        `xml:"voice"`
	Type      string     `xml:"type,omitempty"`
	Dot       *Empty     `xml:"dot,omitempty"`
	Stem      string     `xml:"stem,omitempty"`
	Staff     int        `xml:"staff"`
	Beams     []Beam     `xml:"beam"`
	Notations *Notations `xml:"notations,omitempty"`
}

type Pitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter,omitempty"`
	Octave int    `xml:"octave"`
}

type Tie struct {
	Type string `xml:"type,attr"`
}

type Beam struct {
	Number int    `xml:"number,attr"`
	Value  string `xml:",chardata"`
}

type Notations struct {
	Tieds []Tied `xml:"tied"`
}

type Tied struct {
	Type string `xml:"type,attr"`
}
