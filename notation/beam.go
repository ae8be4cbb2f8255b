package notation

func beamable(n Note) bool {
	if n.Rest != nil || n.Chord != nil {
		return false
	}
	return n.Type == "eighth" || n.Type == "16th"
}

// applyBeams marks beam runs in a rendered voice. Chord-continuation
// notes ride along under the primary note's beam and never break a run;
// rests and longer values flush it. Runs split into groups of at most
// four, the usual one-beat look in 4/4.
func applyBeams(notes []Note) {
	var run []int
	flush := func() {
		beamRun(notes, run)
		run = run[:0]
	}

	for i := range notes {
		if notes[i].Chord != nil {
			continue
		}
		if beamable(notes[i]) {
			run = append(run, i)
			continue
		}
		flush()
	}
	flush()
}

func beamRun(notes []Note, run []int) {
	for i := 0; i < len(run); i += 4 {
		end := i + 4
		if end > len(run) {
			end = len(run)
		}
		beamGroup(notes, run[i:end])
	}
}

// beamGroup assigns the primary beam plus the sixteenth tier. A lone
// sixteenth under the primary beam gets a hook pointing at its
// neighbor.
func beamGroup(notes []Note, group []int) {
	if len(group) < 2 {
		return
	}

	for k, idx := range group {
		var primary string
		switch k {
		case 0:
			primary = "begin"
		case len(group) - 1:
			primary = "end"
		default:
			primary = "continue"
		}
		notes[idx].Beams = append(notes[idx].Beams, Beam{Number: 1, Value: primary})

		if notes[idx].Type != "16th" {
			continue
		}
		prev16 := k > 0 && notes[group[k-1]].Type == "16th"
		next16 := k < len(group)-1 && notes[group[k+1]].Type == "16th"

		var secondary string
		switch {
		case prev16 && next16:
			secondary = "continue"
		case next16:
			secondary = "begin"
		case prev16:
			secondary = "end"
		case k < len(group)-1:
			secondary = "forward hook"
		default:
			secondary = "backward hook"
		}
		notes[idx].Beams = append(notes[idx].Beams, Beam{Number: 2, Value: secondary})
	}
}
