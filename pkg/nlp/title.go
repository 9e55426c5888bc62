package nlp

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every word
func TitleCase(s string) string {
	return cases.Title(language.English).String(CollapseWhitespace(s))
}
