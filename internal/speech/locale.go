package speech

import "golang.org/x/text/language"

// DefaultLocale is the fallback when the configured locale is absent,
// malformed, or matches nothing supported.
var DefaultLocale = language.AmericanEnglish

var supportedLocales = []language.Tag{
	language.AmericanEnglish, // first entry doubles as the matcher fallback
	language.BritishEnglish,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.BrazilianPortuguese,
	language.Dutch,
	language.Japanese,
	language.Korean,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Negotiate maps a configured locale string onto the closest supported
// tag. Unparseable or unmatched input negotiates to DefaultLocale.
func Negotiate(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLocale
	}
	matched, _, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return DefaultLocale
	}
	return matched
}

// ShortCode returns the two-letter language code whisper-family tools
// expect for the given tag.
func ShortCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
