package game

import "strings"

// Evaluate scores guess against secret with the two-pass algorithm.
//
// Pass 1 marks exact position matches Correct and consumes one copy of the
// letter from the secret's counts. Pass 2 walks the remaining positions and
// marks a letter Present while unclaimed copies remain, Absent otherwise.
// Exact matches are therefore claimed before any duplicate can be marked
// Present.
//
// Comparison is case-insensitive. Inputs of different length return nil.
func Evaluate(secret, guess string) []Verdict {
	s := []rune(strings.ToUpper(secret))
	g := []rune(strings.ToUpper(guess))
	if len(s) != len(g) {
		return nil
	}

	remaining := make(map[rune]int, len(s))
	for _, r := range s {
		remaining[r]++
	}

	out := make([]Verdict, len(g))
	for i := range g {
		if g[i] == s[i] {
			out[i] = Correct
			remaining[g[i]]--
		}
	}

	for i := range g {
		if out[i] == Correct {
			continue
		}
		if remaining[g[i]] > 0 {
			out[i] = Present
			remaining[g[i]]--
		} else {
			out[i] = Absent
		}
	}
	return out
}
