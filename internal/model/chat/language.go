package chat

import "strings"

// Language selects the persona template and the downstream voice path.
// The set is closed; anything unrecognized resolves to the default.
type Language string

const (
	LanguageEnglish            Language = "en"
	LanguageTraditionalChinese Language = "zh-TW"
)

// DefaultLanguage serves requests that omit or mangle the language field.
const DefaultLanguage = LanguageEnglish

// ParseLanguage maps a client-supplied tag onto the closed set, falling
// back to the default rather than failing the request.
func ParseLanguage(tag string) Language {
	switch Language(strings.TrimSpace(tag)) {
	case LanguageTraditionalChinese:
		return LanguageTraditionalChinese
	default:
		return DefaultLanguage
	}
}
