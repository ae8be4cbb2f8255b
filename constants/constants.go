package constants

import "os"

// DivisionsPerQuarter is the MusicXML tick resolution. 10080 divides
// evenly down to 32nd notes and every single-dotted duration.
const DivisionsPerQuarter = 10080

const TicksPerSixteenth = DivisionsPerQuarter / 4
const TicksPerMeasure = DivisionsPerQuarter * 4 // 4/4 only

const (
	DefaultTempo    = 120.0
	BeatsPerMeasure = 4
	DefaultOctave   = 3
	DefaultVelocity = 65
	SplitPitch      = 60 // middle C
)

// Adaptive-selection thresholds. These were tuned against reference
// output, not derived from a model: changing them changes which pattern a
// measure gets, so they are fixed values rather than config defaults.
const (
	IntroRatio              = 0.08
	OutroRatio              = 0.92
	ChorusVelocityThreshold = 75.0
	ChorusDensityThreshold  = 2.0
	DensityJumpThreshold    = 1.5
	VelocityJumpThreshold   = 15.0

	TempoSlowMax   = 90.0
	TempoMediumMax = 110.0
	TempoFastMax   = 140.0
)

// NoiseFloorSixteenths filters sub-sixteenth blips before notation export.
const NoiseFloorSixteenths = 0.75

func GetMetadataTable() string {
	table := os.Getenv("NOTEFLOW_METADATA_TABLE")
	if table != "" {
		return table
	}
	return "noteflow-metadata"
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("DYNAMO_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}
