package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/noteflow/noteflow/chord"
	"github.com/noteflow/noteflow/constants"
	"github.com/noteflow/noteflow/convert"
	"github.com/noteflow/noteflow/midi"
	"github.com/noteflow/noteflow/model"
	"github.com/noteflow/noteflow/notation"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the arrangement API",
	Long:  `Serves the arrangement API`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// readUpload parses the "file" part of a multipart MIDI upload.
func readUpload(r *http.Request) (*smf.SMF, error) {
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return midi.ReadMidi(file)
}

func handleArrange(w http.ResponseWriter, r *http.Request) {
	s, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read MIDI upload: "+err.Error())
		return
	}

	pattern := model.ParsePattern(r.FormValue("pattern"))
	if r.FormValue("pattern") == "" {
		pattern = model.Adaptive
	}

	notes := midi.ExtractNotes(s)
	tempo := midi.EstimateTempo(s)
	right, left := convert.CreateTwoHand(notes, tempo, constants.SplitPitch, pattern,
		constants.DefaultOctave, constants.DefaultVelocity)
	arranged := midi.BuildTwoHand(right, left, tempo)

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%v.mid"`, uuid.New().String()))
	if err := midi.WriteTo(arranged, w); err != nil {
		log.Printf("Could not write MIDI response: %v", err)
	}
}

func handleExport(w http.ResponseWriter, r *http.Request) {
	s, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read MIDI upload: "+err.Error())
		return
	}

	notes := midi.ExtractNotes(s)
	tempo := midi.EstimateTempo(s)
	right, left := convert.SplitHands(notes, constants.SplitPitch)

	meta := model.ScoreMetadata{Title: r.FormValue("title")}
	score := notation.BuildScore(right, left, tempo, meta)

	w.Header().Set("Content-Type", "application/vnd.recordare.musicxml+xml")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%v.musicxml"`, uuid.New().String()))
	if err := notation.WriteDocument(score, w); err != nil {
		log.Printf("Could not write MusicXML response: %v", err)
	}
}

func handleChords(w http.ResponseWriter, r *http.Request) {
	s, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read MIDI upload: "+err.Error())
		return
	}

	notes := midi.ExtractNotes(s)
	tempo := midi.EstimateTempo(s)
	chords := chord.Detect(notes, constants.BeatsPerMeasure, tempo)
	if chords == nil {
		chords = []model.Chord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.ChordsResponse{Tempo: tempo, Chords: chords})
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/arrange", handleArrange).Methods("POST")
	router.HandleFunc("/export", handleExport).Methods("POST")
	router.HandleFunc("/chords", handleChords).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
	}).Handler(router)

	log.Printf("Listening on :%v", servePort)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", servePort), handler))
}
