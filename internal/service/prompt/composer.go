package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/telliex/ai-swift/internal/model/chat"
	"github.com/telliex/ai-swift/internal/model/literature"
)

// abstractExcerptLimit bounds the abstract excerpt appended per reference.
const abstractExcerptLimit = 200

// englishPersona and chinesePersona interpolate two values, in order: the
// resolved location string and the current-time string. The constraints are
// spoken-output constraints: brevity, no real-time data claims, no markdown
// or emoji.
const englishPersona = `- You are Swift, a friendly and helpful voice assistant.
- Respond briefly to the user's request, and do not provide unnecessary information.
- If you don't understand the user's request, ask for clarification.
- You do not have access to up-to-date information, so you should not provide real-time data.
- You are not capable of performing actions other than responding to the user.
- Do not use markdown, emojis, or other formatting in your responses. Respond in a way easily spoken by text-to-speech software.
- User location is %s.
- The current time is %s.
- Your large language model is Llama 3, created by Meta, the 8 billion parameter version. It is hosted on Groq, an AI infrastructure company that builds fast inference technology.
- Your text-to-speech model is Sonic, created and hosted by Cartesia, a company that builds fast and realistic speech synthesis technology.`

const chinesePersona = `- 你是 Swift，一個友善且樂於助人的語音助手。
- 請使用繁體中文回應用戶的請求，並保持簡潔。
- 如果你不理解用戶的請求，請尋求澄清。
- 你沒有獲取即時信息的能力，所以不應提供實時數據。
- 你不能執行回應以外的其他操作。
- 請使用適合語音播放的自然中文，避免使用標記語言、表情符號或其他格式。
- 用戶位置是 %s。
- 現在的時間是 %s。
- 你的大型語言模型是 Llama 3，由 Meta 創建的 80 億參數版本。它託管在 Groq 上，這是一家開發快速推理技術的 AI 基礎設施公司。
- 你的文字轉語音模型是 Sonic，由 Cartesia 創建和託管，這是一家開發快速且逼真的語音合成技術的公司。`

// personaTemplates is the closed persona lookup table. Adding a language is
// a data change here plus a voice table entry in the synthesize package.
var personaTemplates = map[chat.Language]string{
	chat.LanguageEnglish:            englishPersona,
	chat.LanguageTraditionalChinese: chinesePersona,
}

// Composer builds the system prompt sent with every completion request.
type Composer struct {
	// Now supplies the current time; overridable in tests.
	Now func() time.Time
}

// NewComposer returns a composer using the wall clock.
func NewComposer() *Composer {
	return &Composer{Now: time.Now}
}

// Compose selects the persona template for lang, interpolates the location
// and current-time context, and appends a numbered reference block when
// literature records are present. Records keep the order the search client
// returned them in; a nil or empty slice yields a prompt byte-identical to
// the unaugmented one.
func (c *Composer) Compose(lang chat.Language, rc RequestContext, records []literature.Record) string {
	template, ok := personaTemplates[lang]
	if !ok {
		template = personaTemplates[chat.DefaultLanguage]
	}

	var b strings.Builder
	fmt.Fprintf(&b, template, rc.Location(), rc.LocalTime(c.Now()))

	if len(records) > 0 {
		b.WriteString("\n\nReferenced research:\n")
		for i, record := range records {
			fmt.Fprintf(&b, "%d. \"%s\" (%s)\n   Key findings: %s...\n",
				i+1, record.Title, record.PubDate, excerpt(record.Abstract))
		}
	}

	return b.String()
}

// excerpt truncates an abstract to the fixed excerpt length without
// splitting a multi-byte rune.
func excerpt(abstract string) string {
	runes := []rune(abstract)
	if len(runes) <= abstractExcerptLimit {
		return abstract
	}
	return string(runes[:abstractExcerptLimit])
}
