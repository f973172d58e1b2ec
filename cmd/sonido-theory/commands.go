package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	"github.com/RyanBlaney/sonido-theory/algorithms/tonal"
	"github.com/spf13/cobra"
)

var (
	scaleIntervals []int
	scaleDiatonic  bool
	scaleSevenths  bool
	chordOctave    int
	detectMidi     bool
	minScore       float64
	arpeggio       string
	arpeggioSpan   int
	transpose      int
)

var noteCmd = &cobra.Command{
	Use:   "note <note>...",
	Short: "Parse notes and show pitch class, MIDI number and frequency",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNote,
}

var scaleCmd = &cobra.Command{
	Use:   "scale <root> [type]",
	Short: "Build a scale from the catalog or from --intervals",
	Long: `Build a scale and list its notes.

Examples:
  sonido-theory scale C major --diatonic
  sonido-theory scale A harmonic_minor --sevenths
  sonido-theory scale D --intervals 0,2,5,7,9`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScale,
}

var chordCmd = &cobra.Command{
	Use:   "chord <symbol>",
	Short: "Parse a chord symbol and show its tones and voicing",
	Args:  cobra.ExactArgs(1),
	RunE:  runChord,
}

var detectCmd = &cobra.Command{
	Use:   "detect <note>...",
	Short: "Identify a chord from note names, or MIDI numbers with --midi",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

var compatCmd = &cobra.Command{
	Use:   "compat <chord> <root> <scale-type>",
	Short: "Score a chord against a scale",
	Args:  cobra.ExactArgs(3),
	RunE:  runCompat,
}

var scalesCmd = &cobra.Command{
	Use:   "scales <chord>",
	Short: "Rank scales that fit a chord",
	Args:  cobra.ExactArgs(1),
	RunE:  runScales,
}

var chordsCmd = &cobra.Command{
	Use:   "chords <root> <scale-type>",
	Short: "Rank diatonic and borrowed chords for a scale",
	Args:  cobra.ExactArgs(2),
	RunE:  runChords,
}

var progressionCmd = &cobra.Command{
	Use:   "progression <chord>...",
	Short: "Find the key of a chord progression and label it with Roman numerals",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProgression,
}

var numeralsCmd = &cobra.Command{
	Use:   "numerals <root> <scale-type> <numeral>...",
	Short: "Build chords from Roman numerals in a key",
	Long: `Build chords from Roman numerals in a key and analyze them.

Examples:
  sonido-theory numerals C major I vi ii7 V7 I
  sonido-theory numerals A natural_minor i bVI bVII i`,
	Args: cobra.MinimumNArgs(3),
	RunE: runNumerals,
}

var midiCmd = &cobra.Command{
	Use:   "midi <file.mid>",
	Short: "Detect chords at every change of held notes in a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMidi,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog scale types and chord qualities",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	scaleCmd.Flags().IntSliceVar(&scaleIntervals, "intervals", nil, "custom interval set, e.g. 0,2,5,7,9")
	scaleCmd.Flags().BoolVar(&scaleDiatonic, "diatonic", false, "list the diatonic triads")
	scaleCmd.Flags().BoolVar(&scaleSevenths, "sevenths", false, "list the diatonic seventh chords")

	chordCmd.Flags().IntVar(&chordOctave, "octave", 4, "octave of the voicing root")
	scaleCmd.Flags().IntVar(&chordOctave, "octave", 4, "octave of the arpeggio root")
	for _, cmd := range []*cobra.Command{chordCmd, scaleCmd} {
		cmd.Flags().StringVar(&arpeggio, "arpeggio", "", "play tone by tone: up, down, up_down or down_up")
		cmd.Flags().IntVar(&arpeggioSpan, "octaves", 1, "octaves the arpeggio spans")
	}

	progressionCmd.Flags().IntVar(&transpose, "transpose", 0, "semitones to transpose before analysis")

	detectCmd.Flags().BoolVar(&detectMidi, "midi", false, "arguments are MIDI note numbers")

	scalesCmd.Flags().Float64Var(&minScore, "min-score", -1, "minimum combined score (default from config)")
	chordsCmd.Flags().Float64Var(&minScore, "min-score", -1, "minimum combined score (default from config)")

	rootCmd.AddCommand(noteCmd, scaleCmd, chordCmd, detectCmd, compatCmd, scalesCmd,
		chordsCmd, progressionCmd, numeralsCmd, midiCmd, catalogCmd)
}

// render prints v as JSON with --json, otherwise calls text
func render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(out)
	return nil
}

type noteView struct {
	Input      string  `json:"input"`
	Spelling   string  `json:"spelling"`
	PitchClass int     `json:"pitch_class"`
	MIDI       *int    `json:"midi,omitempty"`
	Frequency  float64 `json:"frequency,omitempty"`
}

func runNote(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	views := make([]noteView, 0, len(args))
	for _, arg := range args {
		n, err := e.ParseNote(arg)
		if err != nil {
			return err
		}
		view := noteView{Input: arg, Spelling: n.String(), PitchClass: int(n.PitchClass())}
		if m, ok := n.MIDI(); ok {
			view.MIDI = &m
		}
		if hz, ok := n.Frequency(); ok {
			view.Frequency = hz
		}
		views = append(views, view)
	}

	return render(cmd, views, func(w io.Writer) {
		for _, v := range views {
			fmt.Fprintf(w, "%-6s pitch class %-2d", v.Spelling, v.PitchClass)
			if v.MIDI != nil {
				fmt.Fprintf(w, "  midi %-3d  %.2f Hz", *v.MIDI, v.Frequency)
			}
			fmt.Fprintln(w)
		}
	})
}

func runScale(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	var scale tonal.Scale
	switch {
	case len(scaleIntervals) > 0:
		scale, err = e.BuildCustomScale(args[0], scaleIntervals)
	case len(args) == 2:
		scale, err = e.BuildScale(args[0], args[1])
	default:
		return fmt.Errorf("give a scale type or --intervals")
	}
	if err != nil {
		return err
	}

	var diatonic []tonal.DiatonicChord
	if scaleDiatonic || scaleSevenths {
		diatonic, err = e.DiatonicChords(scale, scaleSevenths)
		if err != nil {
			return err
		}
	}

	var arp []pitch.Note
	if arpeggio != "" {
		arp, err = scale.Arpeggio(chordOctave, arpeggioSpan, tonal.ArpeggioDirection(arpeggio))
		if err != nil {
			return err
		}
	}

	type scaleView struct {
		Scale    tonal.ScaleInfo       `json:"scale"`
		Diatonic []tonal.DiatonicChord `json:"diatonic,omitempty"`
		Arpeggio []string              `json:"arpeggio,omitempty"`
	}
	view := scaleView{Scale: scale.Info(), Diatonic: diatonic, Arpeggio: noteStrings(arp)}
	return render(cmd, view, func(w io.Writer) {
		fmt.Fprintf(w, "%s: %s\n", scale.Name(), joinNotes(scale.Notes()))
		for _, dc := range diatonic {
			fmt.Fprintf(w, "  %-7s %s\n", dc.Numeral, dc.Chord.Symbol())
		}
		if len(arp) > 0 {
			fmt.Fprintf(w, "arpeggio: %s\n", joinNotes(arp))
		}
	})
}

func runChord(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	chord, err := e.ParseChord(args[0])
	if err != nil {
		return err
	}
	voicing, err := chord.Voicing(chordOctave)
	if err != nil {
		return err
	}

	var arp []pitch.Note
	if arpeggio != "" {
		arp, err = chord.Arpeggio(chordOctave, arpeggioSpan, tonal.ArpeggioDirection(arpeggio))
		if err != nil {
			return err
		}
	}

	type chordView struct {
		Chord    tonal.ChordInfo `json:"chord"`
		Voicing  []string        `json:"voicing"`
		Arpeggio []string        `json:"arpeggio,omitempty"`
	}
	view := chordView{Chord: chord.Info(), Voicing: noteStrings(voicing), Arpeggio: noteStrings(arp)}
	return render(cmd, view, func(w io.Writer) {
		fmt.Fprintf(w, "%s (%s): %s\n", chord.Symbol(), chord.Name(), joinNotes(chord.Notes()))
		fmt.Fprintf(w, "voicing: %s\n", strings.Join(view.Voicing, " "))
		if len(arp) > 0 {
			fmt.Fprintf(w, "arpeggio: %s\n", joinNotes(arp))
		}
	})
}

func runDetect(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	var result tonal.DetectionResult
	if detectMidi {
		keys, err := parseMidiArgs(args)
		if err != nil {
			return err
		}
		result, err = e.DetectChordFromMidi(keys)
		if err != nil {
			return err
		}
	} else {
		result, err = e.DetectChordFromNames(args)
		if err != nil {
			return err
		}
	}

	return render(cmd, result, func(w io.Writer) {
		writeDetection(w, result)
		for _, c := range result.Candidates {
			fmt.Fprintf(w, "  %-10s confidence %.2f coverage %.2f\n", c.ChordName, c.Confidence, c.Coverage)
		}
	})
}

func writeDetection(w io.Writer, result tonal.DetectionResult) {
	switch result.Kind {
	case tonal.KindChord:
		fmt.Fprintf(w, "%s (%s, inversion %d, confidence %.2f)\n", result.ChordName, result.Quality, result.Inversion, result.Confidence)
	case tonal.KindInterval:
		fmt.Fprintf(w, "%s from %s\n", result.Interval, result.RootName)
	case tonal.KindSingleNote:
		fmt.Fprintf(w, "%s\n", result.RootName)
	default:
		fmt.Fprintln(w, "no chord detected")
	}
}

func runCompat(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	chord, err := e.ParseChord(args[0])
	if err != nil {
		return err
	}
	scale, err := e.BuildScale(args[1], args[2])
	if err != nil {
		return err
	}

	res := e.TonalCompatibility(chord, scale)
	return render(cmd, res, func(w io.Writer) {
		writeCompatibility(w, res)
	})
}

func writeCompatibility(w io.Writer, res tonal.CompatibilityResult) {
	fmt.Fprintf(w, "%-8s in %-24s tonal %.2f  modal %.2f  combined %.2f  %s\n",
		res.ChordSymbol, res.ScaleName, res.TonalScore, res.ModalScore, res.CombinedScore, res.Relationship)
}

func runScales(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	chord, err := e.ParseChord(args[0])
	if err != nil {
		return err
	}

	results := e.FindCompatibleScales(chord, minScore)
	return render(cmd, results, func(w io.Writer) {
		for _, res := range results {
			writeCompatibility(w, res)
		}
	})
}

func runChords(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	scale, err := e.BuildScale(args[0], args[1])
	if err != nil {
		return err
	}

	results := e.FindCompatibleChords(scale, minScore)
	return render(cmd, results, func(w io.Writer) {
		for _, res := range results {
			writeCompatibility(w, res)
		}
	})
}

func runProgression(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	chords, err := tonal.ParseProgression(args)
	if err != nil {
		return err
	}
	if transpose != 0 {
		chords = tonal.TransposeProgression(chords, transpose)
	}
	analysis, err := e.AnalyzeProgression(chords)
	if err != nil {
		return err
	}
	return renderProgression(cmd, analysis)
}

func runNumerals(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	key, err := e.BuildScale(args[0], args[1])
	if err != nil {
		return err
	}
	chords, err := e.ChordsFromNumerals(args[2:], key)
	if err != nil {
		return err
	}
	analysis, err := e.AnalyzeProgression(chords)
	if err != nil {
		return err
	}
	return renderProgression(cmd, analysis)
}

func renderProgression(cmd *cobra.Command, analysis tonal.ProgressionAnalysis) error {
	return render(cmd, analysis, func(w io.Writer) {
		fmt.Fprintf(w, "key: %s (confidence %.2f)\n", analysis.Key, analysis.KeyConfidence)
		for i, symbol := range analysis.Chords {
			fmt.Fprintf(w, "  %-8s %-8s %s\n", symbol, analysis.RomanNumerals[i], analysis.Functions[i])
		}
		fmt.Fprintf(w, "complexity: %s\n", analysis.Complexity)
		if m := analysis.Movement; len(m.RootMotions) > 0 {
			fmt.Fprintf(w, "movement: fifths %.2f  smoothness %.2f  tonnetz %.2f\n",
				m.FifthsMotionRatio, m.Smoothness, m.Tonnetz.TotalDistance)
		}
		for _, c := range analysis.Cadences {
			fmt.Fprintf(w, "cadence: %s %s at chord %d\n", c.Type, c.Numerals, c.Index+1)
		}
		for _, s := range analysis.ScaleSuggestions {
			fmt.Fprintf(w, "  scale %-24s coverage %.2f\n", s.Name, s.Coverage)
		}
	})
}

func runMidi(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	detections, err := e.DetectMidiFile(args[0])
	if err != nil {
		return err
	}

	return render(cmd, detections, func(w io.Writer) {
		for _, d := range detections {
			fmt.Fprintf(w, "%8.3fs  ", float64(d.Offset)/1e6)
			writeDetection(w, d.Detection)
		}
	})
}

func runCatalog(cmd *cobra.Command, args []string) error {
	type catalogView struct {
		Scales []catalog.ScaleType    `json:"scales"`
		Chords []catalog.ChordQuality `json:"chords"`
	}
	view := catalogView{Scales: catalog.Scales(), Chords: catalog.Chords()}
	return render(cmd, view, func(w io.Writer) {
		fmt.Fprintln(w, "scales:")
		for _, st := range view.Scales {
			fmt.Fprintf(w, "  %-18s %v\n", st.Name, []int(st.Intervals))
		}
		fmt.Fprintln(w, "chords:")
		for _, cq := range view.Chords {
			fmt.Fprintf(w, "  %-10s %-16s %v\n", cq.Name, cq.Family, []int(cq.Intervals))
		}
	})
}

func parseMidiArgs(args []string) ([]int, error) {
	keys := make([]int, len(args))
	for i, arg := range args {
		k, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("midi note %q: %w", arg, err)
		}
		keys[i] = k
	}
	return keys, nil
}

func noteStrings(notes []pitch.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.String()
	}
	return out
}

func joinNotes(notes []pitch.Note) string {
	return strings.Join(noteStrings(notes), " ")
}
