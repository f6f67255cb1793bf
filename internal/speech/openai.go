package speech

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer uses the OpenAI text-to-speech endpoint. The voice
// handles any language, so lang is ignored.
type OpenAISynthesizer struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

type OpenAIOptions struct {
	APIKey  string
	BaseURL string
	Voice   string        // default: "alloy"
	Timeout time.Duration // default: 60s
}

func NewOpenAISynthesizer(opts OpenAIOptions) *OpenAISynthesizer {
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	voice := opts.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(config),
		voice:  openai.SpeechVoice(voice),
	}
}

func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text, _ string) ([]byte, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, &SynthesisError{Message: "OpenAI speech call failed", Cause: err}
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, &SynthesisError{Message: "read OpenAI audio", Cause: err}
	}
	return audio, nil
}

var _ Synthesizer = (*OpenAISynthesizer)(nil)
