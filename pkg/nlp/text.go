// Package nlp holds the small rule-based text helpers used by the minutes,
// action-item and agenda stages.
package nlp

import (
	"regexp"
	"strings"
)

var (
	sentenceEnd   = regexp.MustCompile(`[.!?]+(\s+|$)`)
	whitespace    = regexp.MustCompile(`\s+`)
	speakerLabel  = regexp.MustCompile(`(?m)^[ \t]*(?:\[[0-9:.]+\][ \t]*)?[A-Z][A-Za-z0-9.'\-]*(?: [A-Z0-9][A-Za-z0-9.'\-]*){0,2}:[ \t]+`)
	timestampMark = regexp.MustCompile(`\[\d{1,2}:\d{2}(?::\d{2})?(?:\.\d+)?\]`)
	wordToken     = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9'\-]*`)
)

// SplitSentences splits on runs of . ! ? and drops empty fragments.
// Terminal punctuation is kept on each sentence.
func SplitSentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[last:loc[1]]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(text[last:]); s != "" {
		out = append(out, s)
	}
	return out
}

// CleanTranscript strips speaker labels and timestamps and collapses whitespace
func CleanTranscript(text string) string {
	text = speakerLabel.ReplaceAllString(text, "")
	text = timestampMark.ReplaceAllString(text, " ")
	return CollapseWhitespace(text)
}

// CollapseWhitespace trims and folds every whitespace run into one space
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// Words returns the word tokens of text in order
func Words(text string) []string {
	return wordToken.FindAllString(text, -1)
}

// TruncateWords keeps the first limit whitespace-separated tokens.
// It reports whether anything was cut.
func TruncateWords(text string, limit int) (string, bool) {
	fields := strings.Fields(text)
	if limit <= 0 || len(fields) <= limit {
		return strings.Join(fields, " "), false
	}
	return strings.Join(fields[:limit], " "), true
}

// ContainsAny reports whether the lowercased text contains any keyword as a substring
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether any keyword occurs in text as a whole word, case-insensitively
func ContainsWord(text string, keywords []string) bool {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[strings.ToLower(k)] = struct{}{}
	}
	for _, w := range Words(text) {
		if _, ok := set[strings.ToLower(w)]; ok {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first letter
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
