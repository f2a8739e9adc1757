package i18n

import "strings"

// Lang is the per-user language mode: English only, Amharic only, or both.
type Lang string

const (
	LangEN Lang = "en"
	LangAM Lang = "am"
	LangBI Lang = "bi"
)

// Default is the mode used before a user picks one.
const Default = LangBI

// Parse maps a user-supplied language argument to a Lang.
func Parse(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case LangEN:
		return LangEN, true
	case LangAM:
		return LangAM, true
	case LangBI:
		return LangBI, true
	}
	return Default, false
}

// Valid reports whether l is one of the three supported modes.
func (l Lang) Valid() bool {
	switch l {
	case LangEN, LangAM, LangBI:
		return true
	}
	return false
}

// Format returns the English text, the Amharic text, or both separated by
// a blank line (English first), depending on the language mode. Unknown
// modes fall back to bilingual output.
func Format(en, am string, lang Lang) string {
	en = strings.TrimSpace(en)
	am = strings.TrimSpace(am)
	switch lang {
	case LangEN:
		return en
	case LangAM:
		return am
	}
	return en + "\n\n" + am
}
