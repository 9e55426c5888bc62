// Package actionitem extracts action items from minutes and schedules them.
package actionitem

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/Samadhi-12/MinuteMe/pkg/nlp"
)

// Candidate is an action item found in text, before it is persisted
type Candidate struct {
	Task     string
	Owner    string
	Deadline string
	Sentence string
}

var (
	modalExpr = regexp.MustCompile(`(?i)\b(will|should|must|shall|needs?\s+to|ha(?:s|ve)\s+to)\b`)

	// Statements that pass the owner/modal/verb test but are not tasks
	denylist = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bwe\s+(?:will|should)\s+(?:have|focus\s+on|continue|keep|see|talk|discuss|look\s+at|be|need)\b`),
		regexp.MustCompile(`(?i)\bthere\s+(?:will|should|must)\b`),
		regexp.MustCompile(`(?i)\b(?:everyone|everybody|nobody)\s+(?:will|should|must)\b`),
		regexp.MustCompile(`(?i)\bwill\s+(?:not|never)\b`),
	}

	// Owner labels for pronouns; there is no link back to diarized speakers
	pronounOwners = map[string]string{
		"we":  "Team",
		"us":  "Team",
		"i":   "Speaker",
		"you": "Attendee",
	}

	// Capitalized words that open a sentence without naming anyone
	notNames = map[string]struct{}{
		"the": {}, "this": {}, "that": {}, "it": {}, "they": {}, "he": {}, "she": {},
		"also": {}, "then": {}, "so": {}, "and": {}, "but": {}, "everyone": {}, "someone": {},
		"there": {}, "which": {}, "who": {}, "what": {}, "nobody": {},
		"next": {}, "first": {}, "finally": {}, "however": {}, "meanwhile": {}, "additionally": {},
		"yes": {}, "okay": {}, "ok": {}, "now": {},
	}

	// Words between the modal and the action verb that are skipped
	verbModifiers = map[string]struct{}{
		"also": {}, "then": {}, "now": {}, "still": {}, "first": {}, "soon": {}, "again": {},
		"immediately": {}, "personally": {}, "quickly": {}, "definitely": {}, "probably": {},
	}
)

// Extract returns the action items found in text. Deadlines are resolved
// relative to ref; a candidate without one has an empty Deadline.
func Extract(text string, ref time.Time) []Candidate {
	var out []Candidate
	var seen []string
	for _, sentence := range nlp.SplitSentences(text) {
		c, ok := extractSentence(sentence, ref)
		if !ok {
			continue
		}
		key := strings.ToLower(c.Task)
		dup := false
		for _, s := range seen {
			if fuzzy.Ratio(key, s) >= 90 {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, key)
		out = append(out, c)
	}
	return out
}

// extractSentence applies the owner AND modal AND action-verb rule
func extractSentence(sentence string, ref time.Time) (Candidate, bool) {
	for _, d := range denylist {
		if d.MatchString(sentence) {
			return Candidate{}, false
		}
	}

	loc := modalExpr.FindStringIndex(sentence)
	if loc == nil {
		return Candidate{}, false
	}

	owner := detectOwner(sentence[:loc[0]])
	if owner == "" {
		return Candidate{}, false
	}

	rest := sentence[loc[1]:]
	verbAt := actionVerbIndex(rest)
	if verbAt < 0 {
		return Candidate{}, false
	}

	task := strings.TrimSpace(rest[verbAt:])
	deadline := ""
	if m, ok := nlp.FindDate(task, ref); ok {
		deadline = m.Formatted()
		task = nlp.StripPhrase(task, m.Phrase)
	}
	task = strings.TrimRight(strings.TrimSpace(task), ".!?;:, ")
	if task == "" {
		return Candidate{}, false
	}

	return Candidate{
		Task:     nlp.Capitalize(task),
		Owner:    owner,
		Deadline: deadline,
		Sentence: sentence,
	}, true
}

// detectOwner looks at the words right before the modal
func detectOwner(prefix string) string {
	words := nlp.Words(prefix)
	if len(words) == 0 {
		return ""
	}
	last := words[len(words)-1]
	lower := strings.ToLower(last)

	if len(words) >= 2 && lower == "team" {
		switch strings.ToLower(words[len(words)-2]) {
		case "the", "our":
			return "Team"
		}
	}
	if label, ok := pronounOwners[lower]; ok {
		return label
	}
	if !isName(last) {
		return ""
	}

	// collect "Mary", "Mary Jane" or "John and Mary"
	start := len(words) - 1
	for start > 0 && len(words)-start < 4 {
		prev := words[start-1]
		if isName(prev) || (strings.EqualFold(prev, "and") && start >= 2 && isName(words[start-2])) {
			start--
			continue
		}
		break
	}
	if strings.EqualFold(words[start], "and") {
		start++
	}
	return strings.Join(words[start:], " ")
}

func isName(w string) bool {
	if w == "" || !unicode.IsUpper(rune(w[0])) {
		return false
	}
	if _, ok := notNames[strings.ToLower(w)]; ok {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}

// actionVerbIndex returns the byte offset of the action verb following a modal, or -1
func actionVerbIndex(rest string) int {
	offset := 0
	for _, w := range strings.Fields(rest) {
		at := strings.Index(rest[offset:], w) + offset
		offset = at + len(w)

		word := strings.ToLower(strings.Trim(w, ".,;:!?\"'()"))
		if _, skip := verbModifiers[word]; skip || strings.HasSuffix(word, "ly") {
			continue
		}
		if word == "to" {
			continue
		}
		if isActionVerb(word) {
			return at
		}
		return -1
	}
	return -1
}

func isActionVerb(word string) bool {
	if len(word) < 2 || nlp.IsStopword(word) {
		return false
	}
	for _, r := range word {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}
