package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name into a title-cased label:
// "dateOfBirth" becomes "Date Of Birth".
func DefaultLabeler(name string) string {
	return strings.Join(labelWords(name, titleCase), " ")
}

// SentenceLabeler converts a field name into a sentence-cased label used in
// messages: "dateOfBirth" becomes "Date of birth".
func SentenceLabeler(name string) string {
	words := labelWords(name, strings.ToLower)
	if len(words) == 0 {
		return ""
	}
	words[0] = titleCase(words[0])
	return strings.Join(words, " ")
}

func labelWords(name string, transform func(string) string) []string {
	if name == "" {
		return nil
	}
	var out []string
	for _, chunk := range splitWordsPattern.Split(name, -1) {
		for _, word := range strings.Fields(splitCamel(chunk)) {
			out = append(out, transform(word))
		}
	}
	return out
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
