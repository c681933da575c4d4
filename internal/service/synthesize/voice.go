package synthesize

import "github.com/telliex/ai-swift/internal/model/chat"

// Profile pairs a Cartesia model with a voice id.
type Profile struct {
	ModelID string
	VoiceID string
}

// voiceProfiles is the closed (model, voice) lookup table. The default
// entry is guaranteed; adding a language is a data change here plus a
// persona template in the prompt package.
var voiceProfiles = map[chat.Language]Profile{
	chat.LanguageEnglish: {
		ModelID: "sonic-english",
		VoiceID: "79a125e8-cd45-4c13-8a67-188112f4dd22",
	},
	chat.LanguageTraditionalChinese: {
		ModelID: "sonic-chinese",
		VoiceID: "chinese-caller-id",
	},
}

// ProfileFor resolves the voice profile for a language, falling back to the
// default profile for anything outside the table.
func ProfileFor(lang chat.Language) Profile {
	if profile, ok := voiceProfiles[lang]; ok {
		return profile
	}
	return voiceProfiles[chat.DefaultLanguage]
}
