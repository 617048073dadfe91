package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates no valid access credential was supplied. It is
// surfaced immediately and never retried.
var ErrUnauthorized = errors.New("domain: missing access credential")

// ErrTranslationFailed indicates vibe-to-spec translation exhausted its retry
// budget. The request cannot proceed; the caller may retry with the same or
// an edited vibe.
var ErrTranslationFailed = errors.New("domain: vibe translation failed")

// TranslationError wraps the last failure after all translation attempts.
type TranslationError struct {
	Attempts int
	Err      error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("domain: vibe translation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

func (e *TranslationError) Is(target error) bool {
	return target == ErrTranslationFailed
}
