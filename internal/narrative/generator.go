package narrative

import (
	"context"
	"errors"
)

// ErrGeneration wraps any narrative backend failure. The caller shows the
// error text in place of the verdict; nothing else stops working.
var ErrGeneration = errors.New("narrative generation failed")

// Generator turns a prepared prompt into free-text market commentary.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
