package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// ChatClient talks to OpenAI-compatible chat completion endpoints.
type ChatClient struct {
	clientBase
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends prompt as a single user message and returns the first
// choice's content.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.checkReady(); err != nil {
		return "", err
	}
	payload := chatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	data, err := c.postJSON(ctx, c.cfg.Endpoint, headers, payload)
	if err != nil {
		return "", err
	}
	return decodeChat(string(c.cfg.Provider), data)
}

func decodeChat(provider string, data []byte) (string, error) {
	var decoded chatCompletionResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", noResponse(provider, "decode response: "+summarizePayloadSnippet(string(data)))
	}
	if decoded.Error != nil && strings.TrimSpace(decoded.Error.Message) != "" {
		return "", noResponse(provider, "api error: "+decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", noResponse(provider, "empty choices")
	}
	choice := decoded.Choices[0]
	content := firstNonEmpty(choice.Message.Content, choice.Delta.Content, choice.Text)
	if content == "" {
		return "", noResponse(provider, "empty content")
	}
	return content, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
