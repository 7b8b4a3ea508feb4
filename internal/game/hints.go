package game

// Hints maps a letter to the best verdict it has earned across all
// submitted guesses. It backs the keyboard colouring.
type Hints map[rune]Verdict

// MergeHint resolves an existing hint with a new verdict. Correct always
// wins, Present beats Absent, and nothing ever downgrades.
func MergeHint(existing, next Verdict) Verdict {
	if next > existing {
		return next
	}
	return existing
}

// Apply merges the verdicts of one submitted guess. Unknown verdicts are
// ignored and never create an entry.
func (h Hints) Apply(guess []rune, verdicts []Verdict) {
	for i, r := range guess {
		if i >= len(verdicts) {
			return
		}
		v := verdicts[i]
		if v == Unknown {
			continue
		}
		h[r] = MergeHint(h[r], v)
	}
}

// Of returns the hint for r, or Unknown if the letter was never submitted.
func (h Hints) Of(r rune) Verdict { return h[r] }

func (h Hints) clone() Hints {
	out := make(Hints, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
