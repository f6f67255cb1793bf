// Package speech renders short sentences as MP3 audio.
package speech

import (
	"context"
	"fmt"
)

// Synthesizer turns text into MP3 bytes spoken in lang.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// SynthesisError wraps a backend failure.
type SynthesisError struct {
	Message string
	Cause   error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("speech synthesis: %s: %v", e.Message, e.Cause)
	}
	return "speech synthesis: " + e.Message
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}
