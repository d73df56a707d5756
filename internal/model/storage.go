package model

import (
	"context"
	"io"
)

// Archive keeps copies of outbound messages.
type Archive interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Exists(ctx context.Context, key string) (bool, error)
}
