package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI translator.
type OpenAIConfig struct {
	APIKey      string
	Model       string  // default: "gpt-4o-mini"
	Temperature float32 // default: 0.2
	BaseURL     string
	Timeout     time.Duration // default: 60s
}

// OpenAITranslator translates through a chat completion with a JSON response.
type OpenAITranslator struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAITranslator(cfg OpenAIConfig) *OpenAITranslator {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAITranslator{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

func (o *OpenAITranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(source, target)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: o.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &TranslationError{Message: "OpenAI API call failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &TranslationError{Message: "no response from OpenAI"}
	}

	return parseOpenAIResponse(resp.Choices[0].Message.Content)
}

// CheckHealth lists models, which needs a valid key but no tokens.
func (o *OpenAITranslator) CheckHealth(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return &TranslationError{Message: "OpenAI health check failed", Cause: err}
	}
	return nil
}

func buildSystemPrompt(source, target string) string {
	from := "the detected source language"
	if source != "" && source != AutoDetect {
		from = source
	}
	return fmt.Sprintf(`You are a professional translator. Translate the user's text from %s into the language with ISO code %q.
Keep the meaning and the emotional tone of the original. Do not add commentary.

Return a valid JSON object with a single key "translation" holding the translated text.
Example: { "translation": "translated text" }
Do NOT wrap in Markdown code blocks.`, from, target)
}

func parseOpenAIResponse(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var payload struct {
		Translation *string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return "", &TranslationError{Message: "failed to parse OpenAI response", Cause: err}
	}
	if payload.Translation == nil {
		return "", &TranslationError{Message: `OpenAI response missing "translation" key`}
	}
	return *payload.Translation, nil
}

var _ Translator = (*OpenAITranslator)(nil)
