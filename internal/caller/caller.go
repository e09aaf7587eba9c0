package caller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// HeaderKey — заголовок HTTP и ключ gRPC-метаданных с идентификатором вызывающего.
const HeaderKey = "user-id"

var (
	ErrMissingCaller   = errors.New("missing user-id")
	ErrInvalidCallerID = errors.New("invalid user-id")
)

type ctxKey struct{}

// ParseID разбирает значение заголовка user-id.
func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrMissingCaller
	}

	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidCallerID, raw)
	}
	return id, nil
}

// WithID кладёт идентификатор вызывающего в контекст.
func WithID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext достаёт идентификатор, положенный WithID.
func FromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrMissingCaller
	}
	return id, nil
}
