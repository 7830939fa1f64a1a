// Package errors maps Go errors onto stable class names for metric tags.
package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/hirelens/hirelens/internal/errors"
)

// Classify returns a normalized error class suitable for tagging metrics and
// logs. Application errors classify by their code so that, say, every HTTP
// 4xx from a job board lands in one bucket regardless of provider. Anything
// else falls back to the innermost concrete type name.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var app *apperrors.AppError
	if goerrors.As(err, &app) && app.Code != "" {
		return string(app.Code)
	}

	// Bare context errors share buckets with their AppError twins.
	if goerrors.Is(err, context.Canceled) {
		return string(apperrors.ErrCodeCanceled)
	}
	if goerrors.Is(err, context.DeadlineExceeded) {
		return string(apperrors.ErrCodeTimeout)
	}

	// Unwrap to the innermost error for better signal.
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
