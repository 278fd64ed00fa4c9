package internal

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoLower keeps acronyms such as "ETag" or "WWW-Authenticate" intact.
var titleCaser = cases.Title(language.English, cases.NoLower)

func TitleCase(content string) string {
	return titleCaser.String(content)
}
