package model

// ScoreMetadata is what the metadata table knows about a source file.
type ScoreMetadata struct {
	Title  string
	Artist string
	Year   uint
}
