package cards

import (
	"errors"
	"fmt"
)

// ValidationError reports the first malformed or missing option field.
// It is returned before any asset fetch: a bad options object produces
// zero partial output and zero network calls.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Field, e.Reason)
}

// AvatarError reports a failure loading or masking the subject's avatar.
// This is the one fatal asset failure: a card without its subject is not a
// meaningful output. Subject is the username or server name the card was
// being rendered for.
type AvatarError struct {
	Subject string
	Err     error
}

func (e *AvatarError) Error() string {
	return fmt.Sprintf("process avatar for %q: %v", e.Subject, e.Err)
}

func (e *AvatarError) Unwrap() error { return e.Err }

// EncodeError reports a failure serializing the finished surface.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "encode card: " + e.Err.Error() }

func (e *EncodeError) Unwrap() error { return e.Err }

// withSubject attaches the card subject to err for operator debuggability.
// Avatar errors already carry their subject and pass through unchanged.
func withSubject(err error, subject string) error {
	if err == nil {
		return nil
	}
	var ae *AvatarError
	if errors.As(err, &ae) {
		return err
	}
	return fmt.Errorf("render card for %q: %w", subject, err)
}
