// Package translation turns arbitrary-language text into the analysis
// language before it is scored.
package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// AutoDetect asks the backend to detect the source language.
const AutoDetect = "auto"

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
	CheckHealth(ctx context.Context) error
}

// TranslationError wraps a backend failure.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// CacheKey identifies a translation of text from source into target.
func CacheKey(text, source, target string) string {
	return HashText(text) + ":" + source + ":" + target
}
