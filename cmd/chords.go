package cmd

import (
	"fmt"

	"github.com/noteflow/noteflow/chord"
	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords <input.mid>",
	Short: "Prints the chord progression",
	Long:  `Prints the chord progression detected per measure`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		printChords(args[0])
	},
}

func printChords(path string) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		panic("Could not read MIDI file: " + err.Error())
	}

	notes := midi.ExtractNotes(s)
	tempo := midi.EstimateTempo(s)
	chords := chord.Detect(notes, constants.BeatsPerMeasure, tempo)

	fmt.Printf("tempo: %v\n", tempo)
	for i, c := range chords {
		fmt.Printf("measure %v: %v (%.2fs - %.2fs)\n", i+1, c.Name(), c.Start, c.End)
	}
}
