package llm

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// GeminiClient talks to the Gemini generateContent API.
type GeminiClient struct {
	clientBase
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate posts prompt as a single content part and returns the first
// candidate's text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.checkReady(); err != nil {
		return "", err
	}
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxTokens,
		},
	}
	endpoint, err := c.requestURL()
	if err != nil {
		return "", err
	}

	data, err := c.postJSON(ctx, endpoint, nil, payload)
	if err != nil {
		return "", err
	}
	return decodeGemini(string(c.cfg.Provider), data)
}

// requestURL resolves the model into the endpoint when the endpoint is the
// stock one, then appends the key query parameter.
func (c *GeminiClient) requestURL() (string, error) {
	endpoint := c.cfg.Endpoint
	if info, ok := Lookup(c.cfg.Provider); ok && endpoint == info.Endpoint && c.cfg.Model != "" {
		endpoint = geminiEndpoint(c.cfg.Model)
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", ErrMissingEndpoint
	}
	query := parsed.Query()
	query.Set("key", c.cfg.APIKey)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func decodeGemini(provider string, data []byte) (string, error) {
	var decoded geminiResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", noResponse(provider, "decode response: "+summarizePayloadSnippet(string(data)))
	}
	if decoded.Error != nil && strings.TrimSpace(decoded.Error.Message) != "" {
		return "", noResponse(provider, "api error: "+decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 {
		return "", noResponse(provider, "empty candidates")
	}
	parts := decoded.Candidates[0].Content.Parts
	if len(parts) == 0 || strings.TrimSpace(parts[0].Text) == "" {
		return "", noResponse(provider, "empty content")
	}
	return parts[0].Text, nil
}
