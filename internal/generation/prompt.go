package generation

import (
	"fmt"
	"strings"
)

// DefaultSystemPrompt is used when a request supplies no system prompt of its
// own.
const DefaultSystemPrompt = "You are an expert tarot reader and astrologer. " +
	"Always answer with a single valid JSON object and nothing else."

// language holds the directive wording for one recognized response language.
type language struct {
	// name is the Russian prepositional-case name used inside the Russian
	// directive ("на английском языке").
	name    string
	english bool
}

// languages maps accepted codes and names (lowercase) to their directive
// wording. The set is deliberately small and fixed.
var languages = map[string]language{
	"en":         {name: "английском", english: true},
	"eng":        {name: "английском", english: true},
	"english":    {name: "английском", english: true},
	"ru":         {name: "русском"},
	"rus":        {name: "русском"},
	"russian":    {name: "русском"},
	"es":         {name: "испанском"},
	"spanish":    {name: "испанском"},
	"fr":         {name: "французском"},
	"french":     {name: "французском"},
	"de":         {name: "немецком"},
	"german":     {name: "немецком"},
	"it":         {name: "итальянском"},
	"italian":    {name: "итальянском"},
	"pt":         {name: "португальском"},
	"portuguese": {name: "португальском"},
}

// englishDirective demands the target language for EVERY field. Providers
// have been observed to mix languages inside structured JSON fields (card
// names, colors) when the instruction is any weaker than this.
const englishDirective = "\n\nIMPORTANT: Respond strictly in English. " +
	"ALL fields of the JSON response, including any color and name fields, must be in English."

// russianDirectiveFormat is the same demand, written in Russian and naming
// the target language.
const russianDirectiveFormat = "\n\nВАЖНО: отвечай строго на %s языке. " +
	"ВСЕ поля JSON-ответа, включая поля цветов и названий, должны быть на %s языке."

// AssemblePrompts builds the final (systemPrompt, userPrompt) pair for a
// request. Pure function: no I/O, deterministic given inputs.
//
// The user prompt is the request prompt with contextual lines prepended in a
// fixed order (zodiac sign, date, week, month, each only when present) and
// the language directive appended when the response language is recognized.
func AssemblePrompts(req *GenerationRequest) (systemPrompt, userPrompt string) {
	systemPrompt = req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	var b strings.Builder
	if req.ZodiacSign != "" {
		fmt.Fprintf(&b, "Zodiac sign: %s\n", req.ZodiacSign)
	}
	if req.HoroscopeDate != "" {
		fmt.Fprintf(&b, "Date: %s\n", req.HoroscopeDate)
	}
	if req.HoroscopeWeek != "" {
		fmt.Fprintf(&b, "Week: %s\n", req.HoroscopeWeek)
	}
	if req.HoroscopeMonth != "" {
		fmt.Fprintf(&b, "Month: %s\n", req.HoroscopeMonth)
	}
	b.WriteString(req.Prompt)

	if lang, ok := languages[strings.ToLower(strings.TrimSpace(req.ResponseLang))]; ok {
		if lang.english {
			b.WriteString(englishDirective)
		} else {
			fmt.Fprintf(&b, russianDirectiveFormat, lang.name, lang.name)
		}
	}

	return systemPrompt, b.String()
}
