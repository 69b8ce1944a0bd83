// Package normalize canonicalizes free-text university, course and subject names
// so that records coming from different sources can be deduplicated.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// parenthetical matches a "(" and everything up to the first ")" after it.
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	nonAlnum      = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Name folds case, drops every parenthesized segment and trims surrounding whitespace.
// "University Of Somewhere (UOS)" becomes "university of somewhere".
func Name(raw string) string {
	// Casers keep state, so one is built per call.
	folded := cases.Lower(language.Und).String(raw)
	return strings.TrimSpace(parenthetical.ReplaceAllString(folded, ""))
}

// University normalizes an institution name.
func University(name string) string {
	return Name(name)
}

// Course normalizes a course name.
func Course(name string) string {
	return Name(name)
}

// Slug builds a URL-safe identifier: accents stripped, lowercased, and every run of
// characters outside [a-z0-9] collapsed to a single "-".
func Slug(name string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripAccents, strings.ToLower(name))
	if err != nil {
		plain = strings.ToLower(name)
	}
	return strings.Trim(nonAlnum.ReplaceAllString(plain, "-"), "-")
}

// CourseCode takes the first letter of every word, uppercased: "Bachelor of Science" -> "BOS".
func CourseCode(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		first := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(first))
	}
	return b.String()
}

// SubjectCode lowercases a subject name and joins its words with "_".
func SubjectCode(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}
