package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the YYYY-MM-DD format produced by the date helpers
const DateLayout = "2006-01-02"

// DateMatch is a calendar date found in free text
type DateMatch struct {
	Date time.Time
	// Phrase is the matched span including a leading "by"/"on"/"before"/"until"
	Phrase string
}

// Formatted returns the date as YYYY-MM-DD
func (m DateMatch) Formatted() string {
	return m.Date.Format(DateLayout)
}

const lead = `(?:(?:by|on|before|until|due|for)\s+)?`

var (
	isoDate     = regexp.MustCompile(`(?i)\b` + lead + `(\d{4})-(\d{2})-(\d{2})\b`)
	monthDay    = regexp.MustCompile(`(?i)\b` + lead + `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	inN         = regexp.MustCompile(`(?i)\b` + lead + `in\s+(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s+(day|week)s?\b`)
	endOfWeek   = regexp.MustCompile(`(?i)\b` + lead + `(?:the\s+)?end\s+of\s+(?:the\s+|this\s+)?week\b`)
	endOfMonth  = regexp.MustCompile(`(?i)\b` + lead + `(?:the\s+)?end\s+of\s+(?:the\s+|this\s+)?month\b`)
	tomorrow    = regexp.MustCompile(`(?i)\b` + lead + `tomorrow\b`)
	today       = regexp.MustCompile(`(?i)\b` + lead + `(?:today|end\s+of\s+(?:the\s+)?day|eod)\b`)
	nextWeek    = regexp.MustCompile(`(?i)\b` + lead + `next\s+week\b`)
	weekdayExpr = regexp.MustCompile(`(?i)\b` + lead + `(?:(this|next)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// nextWeekday returns the first wd strictly after ref
func nextWeekday(ref time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(ref.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDate(0, 0, delta)
}

func monthNumber(name string) time.Month {
	prefix := strings.ToLower(name)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()[:3]) == prefix {
			return m
		}
	}
	return 0
}

// FindDate returns the first recognizable date expression in text, relative to ref.
// Absolute forms are checked before relative ones.
func FindDate(text string, ref time.Time) (DateMatch, bool) {
	ref = day(ref)

	if m := isoDate.FindStringSubmatch(text); m != nil {
		if d, err := time.ParseInLocation(DateLayout, m[1]+"-"+m[2]+"-"+m[3], ref.Location()); err == nil {
			return DateMatch{Date: d, Phrase: m[0]}, true
		}
	}

	if m := monthDay.FindStringSubmatch(text); m != nil {
		month := monthNumber(m[1])
		dd, _ := strconv.Atoi(m[2])
		if month != 0 && dd >= 1 && dd <= 31 {
			year := ref.Year()
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			d := time.Date(year, month, dd, 0, 0, 0, 0, ref.Location())
			if m[3] == "" && d.Before(ref) {
				d = d.AddDate(1, 0, 0)
			}
			return DateMatch{Date: d, Phrase: m[0]}, true
		}
	}

	if m := inN.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			n = numberWords[strings.ToLower(m[1])]
		}
		if strings.EqualFold(m[2], "week") {
			n *= 7
		}
		return DateMatch{Date: ref.AddDate(0, 0, n), Phrase: m[0]}, true
	}

	if m := endOfWeek.FindString(text); m != "" {
		d := ref
		if ref.Weekday() != time.Friday {
			d = nextWeekday(ref, time.Friday)
		}
		return DateMatch{Date: d, Phrase: m}, true
	}

	if m := endOfMonth.FindString(text); m != "" {
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return DateMatch{Date: first.AddDate(0, 1, -1), Phrase: m}, true
	}

	if m := tomorrow.FindString(text); m != "" {
		return DateMatch{Date: ref.AddDate(0, 0, 1), Phrase: m}, true
	}

	if m := nextWeek.FindString(text); m != "" {
		return DateMatch{Date: ref.AddDate(0, 0, 7), Phrase: m}, true
	}

	if m := weekdayExpr.FindStringSubmatch(text); m != nil {
		d := nextWeekday(ref, weekdays[strings.ToLower(m[2])])
		// "next friday" said on a monday is the friday of the following week
		if strings.EqualFold(m[1], "next") && ref.Weekday() < d.Weekday() {
			d = d.AddDate(0, 0, 7)
		}
		return DateMatch{Date: d, Phrase: m[0]}, true
	}

	if m := today.FindString(text); m != "" {
		return DateMatch{Date: ref, Phrase: m}, true
	}

	return DateMatch{}, false
}

// StripPhrase removes phrase from text and tidies the remaining punctuation
func StripPhrase(text, phrase string) string {
	if phrase == "" {
		return text
	}
	out := strings.Replace(text, phrase, "", 1)
	out = CollapseWhitespace(out)
	out = strings.TrimRight(out, " ,;:-")
	return strings.ReplaceAll(out, " ,", ",")
}
