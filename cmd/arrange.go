package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/convert"
	"github.com/noteflow/noteflow/midi"
	"github.com/noteflow/noteflow/model"
	"github.com/spf13/cobra"
)

var (
	arrangePattern  string
	arrangeOctave   int
	arrangeVelocity int
	arrangeGrid     string
)

func init() {
	arrangeCmd.Flags().StringVar(&arrangePattern, "pattern", string(model.Adaptive), "left hand pattern")
	arrangeCmd.Flags().IntVar(&arrangeOctave, "octave", constants.DefaultOctave, "left hand octave")
	arrangeCmd.Flags().IntVar(&arrangeVelocity, "velocity", constants.DefaultVelocity, "base velocity")
	arrangeCmd.Flags().StringVar(&arrangeGrid, "quantize", "", "quantize grid (32nd, 16th, 8th, quarter)")
	rootCmd.AddCommand(arrangeCmd)
}

var arrangeCmd = &cobra.Command{
	Use:   "arrange <input.mid> [output.mid]",
	Short: "Creates a two-hand arrangement",
	Long:  `Creates a two-hand piano arrangement from a melody MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			panic("Need at least 1 arg...")
		}
		out := defaultOutPath(args[0], ".arranged.mid")
		if len(args) > 1 {
			out = args[1]
		}
		runArrange(args[0], out)
	},
}

func defaultOutPath(in, suffix string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + suffix
}

func runArrange(in, out string) {
	s, err := midi.ReadMidiFile(in)
	if err != nil {
		panic("Could not read MIDI file: " + err.Error())
	}

	notes := midi.ExtractNotes(s)
	tempo := midi.EstimateTempo(s)
	pattern := model.ParsePattern(arrangePattern)

	right, left := convert.CreateTwoHand(notes, tempo, constants.SplitPitch, pattern, arrangeOctave, arrangeVelocity)
	if arrangeGrid != "" {
		right = convert.Quantize(right, arrangeGrid, tempo)
		left = convert.Quantize(left, arrangeGrid, tempo)
	}

	arranged := midi.BuildTwoHand(right, left, tempo)
	if err := midi.WriteMidiFile(arranged, out); err != nil {
		panic("Could not write MIDI file: " + err.Error())
	}
	fmt.Printf("Wrote %v right hand and %v left hand notes to %v\n", len(right), len(left), out)
}
