package model

// Language selects the language of generated explanations
type Language string

const (
	LanguageZhTW Language = "zh-TW" // Traditional Chinese (default)
	LanguageEn   Language = "en"    // English
	LanguageAuto Language = "auto"  // Follow the input text
)

// Normalize maps unknown language codes to the default
func (l Language) Normalize() Language {
	switch l {
	case LanguageZhTW, LanguageEn, LanguageAuto:
		return l
	default:
		return LanguageZhTW
	}
}
