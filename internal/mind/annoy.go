package mind

import "strings"

// The annoyance predicates work over a user's short-memory history: lines of
// the form "username: text". All of them are pure so they can be tested with
// literal history slices.

// stripSpeaker drops the "username: " prefix from a stored line.
func stripSpeaker(line string) string {
	if idx := strings.Index(line, ": "); idx >= 0 {
		return line[idx+2:]
	}
	return line
}

// RepeatedRecent reports whether the last lastN stored lines carry the same
// text, case-insensitively. Fewer than two lines never count as repetition.
func RepeatedRecent(history []string, lastN int) bool {
	if len(history) == 0 {
		return false
	}
	arr := history
	if len(arr) > lastN {
		arr = arr[len(arr)-lastN:]
	}
	if len(arr) < 2 {
		return false
	}
	first := strings.ToLower(stripSpeaker(arr[0]))
	if first == "" {
		return false
	}
	for _, line := range arr[1:] {
		if strings.ToLower(stripSpeaker(line)) != first {
			return false
		}
	}
	return true
}

// Burst reports a spam burst: the last n lines are all throwaway-short
// (three words or fewer).
func Burst(history []string, n int) bool {
	if len(history) < n || n < 2 {
		return false
	}
	for _, line := range history[len(history)-n:] {
		if len(strings.Fields(stripSpeaker(line))) > 3 {
			return false
		}
	}
	return true
}

var pokePhrases = []string{
	"wake up", "answer me", "are you there", "hello?", "respond already", "oi bot",
}

// PokeDetector reports repeated attempts to poke the bot into answering:
// three or more poke phrases within the last eight lines.
func PokeDetector(history []string) bool {
	recent := history
	if len(recent) > 8 {
		recent = recent[len(recent)-8:]
	}
	count := 0
	for _, line := range recent {
		text := strings.ToLower(stripSpeaker(line))
		for _, p := range pokePhrases {
			if strings.Contains(text, p) {
				count++
				break
			}
		}
	}
	return count >= 3
}

var nitpickPhrases = []string{
	"you're wrong", "no you", "but ", "actually", "that's wrong",
	"stop acting", "not like this", "fix your",
}

// NitpickDetector reports chronic contrarianism: six or more contrarian
// phrases within the last 24 lines.
func NitpickDetector(history []string) bool {
	recent := history
	if len(recent) > 24 {
		recent = recent[len(recent)-24:]
	}
	count := 0
	for _, line := range recent {
		idx := strings.Index(line, ": ")
		if idx < 0 {
			continue
		}
		text := strings.ToLower(line[idx+2:])
		for _, p := range nitpickPhrases {
			if strings.Contains(text, p) {
				count++
				break
			}
		}
	}
	return count >= 6
}

// Detector combines the predicates behind a random sampling gate so the
// ignore action stays rare even when a predicate fires.
type Detector struct {
	// Rand returns a sample in [0,1). Injectable so tests can force both
	// branches.
	Rand func() float64
	// Probability is the sampling gate; a predicate firing triggers the
	// ignore action only when Rand() < Probability.
	Probability float64
	// MinHistory is the minimum stored-line count before any predicate is
	// consulted.
	MinHistory int
}

// NewDetector returns a detector with the production tuning.
func NewDetector(rnd func() float64) *Detector {
	return &Detector{Rand: rnd, Probability: 0.04, MinHistory: 24}
}

// ShouldIgnore evaluates the predicates over history and rolls the gate.
func (d *Detector) ShouldIgnore(history []string) bool {
	if len(history) < d.MinHistory {
		return false
	}
	repeated := RepeatedRecent(history, 4) && len(history) >= 30
	fired := repeated || Burst(history, 12) || PokeDetector(history) || NitpickDetector(history)
	if !fired {
		return false
	}
	return d.Rand() < d.Probability
}
