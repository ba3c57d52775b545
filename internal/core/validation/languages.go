package validation

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Language is a language users can translate from.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`

	lang   whatlanggo.Lang
	script *unicode.RangeTable
}

var supported = []Language{
	{Code: "fi", Name: "Finnish", lang: whatlanggo.Fin, script: unicode.Latin},
	{Code: "ko", Name: "Korean", lang: whatlanggo.Kor, script: unicode.Hangul},
	{Code: "el", Name: "Greek", lang: whatlanggo.Ell, script: unicode.Greek},
	{Code: "vi", Name: "Vietnamese", lang: whatlanggo.Vie, script: unicode.Latin},
	{Code: "zh", Name: "Chinese", lang: whatlanggo.Cmn, script: unicode.Han},
}

// Supported returns the supported languages.
func Supported() []Language {
	return append([]Language(nil), supported...)
}

// Lookup finds a supported language by ISO 639-1 code or English name.
func Lookup(codeOrName string) (Language, bool) {
	key := strings.TrimSpace(codeOrName)
	for _, l := range supported {
		if strings.EqualFold(l.Code, key) || strings.EqualFold(l.Name, key) {
			return l, true
		}
	}
	return Language{}, false
}

func supportedNames() string {
	names := make([]string, len(supported))
	for i, l := range supported {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}
