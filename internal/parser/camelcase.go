package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const flagDivider = "-"

const (
	classLower = 1
	classUpper = 2
	classDigit = 3
	classOther = 4
)

// CamelToFlag transforms s from CamelCase to flag-case.
func CamelToFlag(s, divider string) string {
	return strings.ToLower(strings.Join(split(s), divider))
}

// split cuts a Go identifier into its words: "HTTPServerPort"
// gives "HTTP", "Server", "Port". Digits stick to the word before them.
func split(src string) []string {
	if !utf8.ValidString(src) {
		return []string{src}
	}

	var words [][]rune

	lastClass := 0
	for _, r := range src {
		class := runeClass(r)
		if lastClass != 0 && (class == lastClass || class == classDigit) {
			words[len(words)-1] = append(words[len(words)-1], r)
		} else {
			words = append(words, []rune{r})
		}
		lastClass = class
	}

	// Move the last upper case rune of an acronym to the word it starts.
	for i := range len(words) - 1 {
		if unicode.IsUpper(words[i][0]) && unicode.IsLower(words[i+1][0]) {
			words[i+1] = append([]rune{words[i][len(words[i])-1]}, words[i+1]...)
			words[i] = words[i][:len(words[i])-1]
		}
	}

	entries := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 0 && word[0] != '_' {
			entries = append(entries, string(word))
		}
	}

	return entries
}

func runeClass(r rune) int {
	switch {
	case unicode.IsLower(r):
		return classLower
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classOther
	}
}
