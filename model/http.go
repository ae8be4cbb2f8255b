package model

type ChordsResponse struct {
	Tempo  float64 `json:"tempo"`
	Chords []Chord `json:"chords"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
