package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessEnglish(t *testing.T) {
	text := strings.Repeat("he was the first person to do it and she was an expert ", 3)
	assert.Equal(t, "en", Guess(text))
}

func TestGuessGerman(t *testing.T) {
	text := strings.Repeat("er war ein Maler und sie ist eine Autorin das ist es ", 3)
	assert.Equal(t, "de", Guess(text))
}

func TestGuessFrench(t *testing.T) {
	text := strings.Repeat("il est un peintre et la maison est par une riviere ", 3)
	assert.Equal(t, "fr", Guess(text))
}

func TestGuessLowSignalDefaultsToEnglish(t *testing.T) {
	assert.Equal(t, Default, Guess("xyzzy plugh 12345"))
	assert.Equal(t, Default, Guess(""))
}
