package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// initialisms are upper-cased as a whole instead of title-cased.
var initialisms = map[string]string{
	"id":   "ID",
	"ids":  "IDs",
	"uuid": "UUID",
	"nbt":  "NBT",
	"url":  "URL",
	"json": "JSON",
	"ui":   "UI",
	"xp":   "XP",
	"hp":   "HP",
	"ip":   "IP",
	"api":  "API",
}

// Tokens splits a name into its words.
// Examples:
//   - "set_protocol" -> ["set", "protocol"]
//   - "entityId" -> ["entity", "Id"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "minecraft:item" -> ["minecraft", "item"]
func Tokens(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && current.Len() > 0 && startsToken(runes, i) {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator reports runes that cannot appear in an identifier.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func startsToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	// "entityId": split before 'I'.
	if unicode.IsUpper(r) && !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": split before 'P'.
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && hasNextLower
}

// Pascal joins the title-cased tokens of s. The result may start with a
// digit; it is empty when s has no letters or digits.
func Pascal(s string) string {
	tokens := Tokens(s)
	if len(tokens) == 0 {
		return ""
	}

	// Casers keep state and are not shared.
	title := cases.Title(language.Und)

	var b strings.Builder

	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if init, ok := initialisms[lower]; ok {
			b.WriteString(init)

			continue
		}

		b.WriteString(title.String(lower))
	}

	return b.String()
}

// GoName returns the exported identifier for s, or "" when s has no letters
// or digits. Names starting with a digit get an "N" prefix.
func GoName(s string) string {
	name := Pascal(s)
	if name == "" {
		return ""
	}

	if unicode.IsDigit([]rune(name)[0]) {
		return "N" + name
	}

	return name
}
