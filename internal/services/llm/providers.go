package llm

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tagwise/internal/config"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/"

// ProviderInfo describes a supported provider for display and defaults.
type ProviderInfo struct {
	Provider    config.Provider `json:"provider"`
	DisplayName string          `json:"display_name"`
	Endpoint    string          `json:"endpoint"`
	Model       string          `json:"model"`
	KeyURL      string          `json:"key_url,omitempty"`
	FreeTier    string          `json:"free_tier,omitempty"`
}

var providerTable = map[config.Provider]ProviderInfo{
	config.ProviderGemini: {
		DisplayName: "Google Gemini 2.0 Flash",
		Endpoint:    geminiBaseURL + "gemini-2.0-flash-exp:generateContent",
		Model:       "gemini-2.0-flash-exp",
		KeyURL:      "https://aistudio.google.com/app/apikey",
		FreeTier:    "15 RPM, 1M tokens/day",
	},
	config.ProviderOpenRouter: {
		DisplayName: "OpenRouter",
		Endpoint:    "https://openrouter.ai/api/v1/chat/completions",
		Model:       "openchat/openchat-7b:free",
		KeyURL:      "https://openrouter.ai/keys",
		FreeTier:    "20 RPM",
	},
	config.ProviderGroq: {
		DisplayName: "Groq",
		Endpoint:    "https://api.groq.com/openai/v1/chat/completions",
		Model:       "llama-3.2-3b-preview",
		KeyURL:      "https://console.groq.com/keys",
		FreeTier:    "30 RPM, 14,400/day",
	},
	config.ProviderTogetherAI: {
		DisplayName: "Together AI",
		Endpoint:    "https://api.together.xyz/v1/chat/completions",
		Model:       "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo",
		KeyURL:      "https://api.together.xyz/settings/api-keys",
		FreeTier:    "$25 free credits/month",
	},
	config.ProviderOpenAI: {
		DisplayName: "OpenAI",
		Endpoint:    "https://api.openai.com/v1/chat/completions",
		Model:       "gpt-3.5-turbo",
		KeyURL:      "https://platform.openai.com/api-keys",
		FreeTier:    "Requires paid API key",
	},
	config.ProviderCustom: {
		DisplayName: "Custom Endpoint",
	},
}

// Lookup returns metadata for a provider.
func Lookup(p config.Provider) (ProviderInfo, bool) {
	info, ok := providerTable[p]
	if !ok {
		return ProviderInfo{}, false
	}
	info.Provider = p
	return info, true
}

// Info returns metadata for a provider, synthesizing a display name for
// providers without an entry.
func Info(p config.Provider) ProviderInfo {
	if info, ok := Lookup(p); ok {
		return info
	}
	return ProviderInfo{
		Provider:    p,
		DisplayName: cases.Title(language.English).String(string(p)),
	}
}

// All lists metadata for every provider in display order.
func All() []ProviderInfo {
	providers := config.Providers()
	out := make([]ProviderInfo, 0, len(providers))
	for _, p := range providers {
		out = append(out, Info(p))
	}
	return out
}

// geminiEndpoint returns the generateContent URL for model.
func geminiEndpoint(model string) string {
	return geminiBaseURL + model + ":generateContent"
}
