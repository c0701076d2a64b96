// Package lang guesses the language of a page from function-word counts.
// It is deliberately crude: good enough to pick a date-format locale, not
// a general language identifier.
package lang

import "regexp"

// Default is returned for ties and low-signal text.
const Default = "en"

// Counts below this floor are treated as noise.
const minSignal = 5

type profile struct {
	code  string
	words *regexp.Regexp
}

var profiles = []profile{
	{"en", regexp.MustCompile(`\b(he|she|it|is|was|the|a|an)\b`)},
	{"de", regexp.MustCompile(`\b(er|sie|es|das|ein|eine|war|ist)\b`)},
	{"it", regexp.MustCompile(`\b(è|una|della|la|nel|si|su|una|di)\b`)},
	{"fr", regexp.MustCompile(`\b(est|un|une|et|la|il|a|de|par)\b`)},
	{"es", regexp.MustCompile(`\b(el|es|un|de|a|la|es|conlas|dos)\b`)},
}

// Guess classifies text into one of {en, de, it, fr, es}. The language
// with the strictly highest hit count wins; ties fall back to Default.
func Guess(text string) string {
	best := minSignal
	bestCode := Default
	tied := false
	for _, p := range profiles {
		n := len(p.words.FindAllStringIndex(text, -1))
		switch {
		case n > best:
			best = n
			bestCode = p.code
			tied = false
		case n == best && n > minSignal:
			tied = true
		}
	}
	if tied {
		return Default
	}
	return bestCode
}
