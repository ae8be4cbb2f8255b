package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/convert"
	"github.com/noteflow/noteflow/db"
	"github.com/noteflow/noteflow/midi"
	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/notation"
	"github.com/spf13/cobra"
)

var (
	exportTitle  string
	exportLookup bool
)

func init() {
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "score title")
	exportCmd.Flags().BoolVar(&exportLookup, "lookup", false, "fetch title and artist from the metadata table")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <input.mid> [output.musicxml]",
	Short: "Exports sheet music",
	Long:  `Exports a MIDI file as a two-staff MusicXML score`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			panic("Need at least 1 arg...")
		}
		out := defaultOutPath(args[0], ".musicxml")
		if len(args) > 1 {
			out = args[1]
		}
		runExport(args[0], out)
	},
}

func runExport(in, out string) {
	s, err := midi.ReadMidiFile(in)
	if err != nil {
		panic("Could not read MIDI file: " + err.Error())
	}

	notes := midi.ExtractNotes(s)
	tempo := midi.EstimateTempo(s)
	right, left := convert.SplitHands(notes, constants.SplitPitch)

	meta := model.ScoreMetadata{Title: exportTitle}
	if exportLookup {
		if found, ok := db.GetScoreMetadata(filepath.Base(in)); ok {
			meta = found
			if exportTitle != "" {
				meta.Title = exportTitle
			}
		}
	}

	score := notation.BuildScore(right, left, tempo, meta)
	if err := notation.ExportFile(score, out); err != nil {
		panic("Could not write MusicXML file: " + err.Error())
	}
	fmt.Printf("Wrote %v measures to %v\n", len(score.Parts[0].Measures), out)
}
