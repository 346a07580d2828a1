package config

import (
	"fmt"
	"strings"
)

// Provider names a remote text-generation API.
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGroq       Provider = "groq"
	ProviderTogetherAI Provider = "together"
	ProviderOpenAI     Provider = "openai"
	ProviderCustom     Provider = "custom"
)

// Providers lists every supported provider in display order.
func Providers() []Provider {
	return []Provider{
		ProviderGemini,
		ProviderOpenRouter,
		ProviderGroq,
		ProviderTogetherAI,
		ProviderOpenAI,
		ProviderCustom,
	}
}

// ParseProvider maps user input onto a canonical provider name.
func ParseProvider(value string) (Provider, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	switch normalized {
	case "", "gemini", "google":
		return ProviderGemini, nil
	case "openrouter":
		return ProviderOpenRouter, nil
	case "groq":
		return ProviderGroq, nil
	case "together", "togetherai":
		return ProviderTogetherAI, nil
	case "openai":
		return ProviderOpenAI, nil
	case "custom":
		return ProviderCustom, nil
	default:
		return "", fmt.Errorf("unknown provider %q", value)
	}
}

// APIKeyEnv returns the provider-specific environment variable consulted
// when no key is configured. The custom provider has none.
func (p Provider) APIKeyEnv() string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderGroq:
		return "GROQ_API_KEY"
	case ProviderTogetherAI:
		return "TOGETHER_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
