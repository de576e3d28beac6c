package generation

import "strings"

// Default call parameters applied when a request leaves them unset.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 800

	// ChatDefaultMaxTokens is the default budget for the plain chat
	// passthrough, which has its own defaults and no retry semantics.
	ChatDefaultMaxTokens = 1000
)

// GenerationRequest is the immutable input to one generation call. It is
// constructed per incoming request and discarded once the call completes.
type GenerationRequest struct {
	Prompt       string   `json:"prompt"                  validate:"required"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"   validate:"omitempty,gte=0,lte=2"`
	MaxTokens    *int     `json:"max_tokens,omitempty"    validate:"omitempty,gte=1,lte=4096"`

	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=deepseek openai grok qwen google"`

	// Per-provider model overrides; the override matching the resolved
	// provider wins over its configured default model.
	DeepSeekModel string `json:"deepseek_model,omitempty"`
	OpenAIModel   string `json:"openai_model,omitempty"`
	GrokModel     string `json:"grok_model,omitempty"`
	QwenModel     string `json:"qwen_model,omitempty"`
	GoogleModel   string `json:"google_model,omitempty"`

	// ResponseLang selects the language directive appended to the prompt.
	ResponseLang string `json:"response_lang,omitempty"`

	// Contextual fields, prepended to the prompt as labeled lines in this
	// fixed order when present.
	ZodiacSign     string `json:"zodiac_sign,omitempty"`
	HoroscopeDate  string `json:"horoscope_date,omitempty"`
	HoroscopeWeek  string `json:"horoscope_week,omitempty"`
	HoroscopeMonth string `json:"horoscope_month,omitempty"`
}

// Validate rejects requests whose prompt is empty or whitespace-only.
// Struct-tag validation covers ranges; this covers what tags cannot.
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// temperature resolves the effective sampling temperature.
func (r *GenerationRequest) temperature() float64 {
	if r.Temperature != nil {
		return *r.Temperature
	}
	return DefaultTemperature
}

// maxTokens resolves the effective token budget.
func (r *GenerationRequest) maxTokens() int {
	if r.MaxTokens != nil {
		return *r.MaxTokens
	}
	return DefaultMaxTokens
}

// modelOverride returns the per-request model override for the given provider,
// or "" when none was supplied.
func (r *GenerationRequest) modelOverride(id ProviderID) string {
	switch id {
	case ProviderDeepSeek:
		return r.DeepSeekModel
	case ProviderOpenAI:
		return r.OpenAIModel
	case ProviderGrok:
		return r.GrokModel
	case ProviderQwen:
		return r.QwenModel
	case ProviderGoogle:
		return r.GoogleModel
	}
	return ""
}

// ChatRequest is the simplified single-message variant served by the chat
// passthrough endpoint.
type ChatRequest struct {
	Message      string   `json:"message"                 validate:"required"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"   validate:"omitempty,gte=0,lte=2"`
	MaxTokens    *int     `json:"max_tokens,omitempty"    validate:"omitempty,gte=1,lte=4096"`
	Provider     string   `json:"provider,omitempty"      validate:"omitempty,oneof=deepseek openai grok qwen google"`
	Model        string   `json:"model,omitempty"`
}
