package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "noteflow",
	Short: "Piano arrangement toolkit",
	Long:  `Turns melody MIDI files into two-hand piano arrangements and engravable MusicXML scores.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
