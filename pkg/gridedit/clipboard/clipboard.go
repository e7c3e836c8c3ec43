// Package clipboard provides the clipboard I/O collaborator used by the grid
// controller: the system clipboard, an in-process buffer, and a combination
// that falls back to the buffer when the system clipboard fails.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable indicates no clipboard could serve the request.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// System is the operating system clipboard.
type System struct{}

// ReadText reads the system clipboard.
func (System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}

// WriteText writes the system clipboard.
func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Buffer is an in-process clipboard.
type Buffer struct {
	mu   sync.Mutex
	text string
	set  bool
}

// ReadText returns the last written text, or ErrUnavailable if nothing was
// written yet.
func (b *Buffer) ReadText(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.set {
		return "", ErrUnavailable
	}
	return b.text, nil
}

// WriteText stores text.
func (b *Buffer) WriteText(ctx context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.set = true
	return nil
}

// Fallback writes to the primary clipboard and keeps a copy in an
// in-process buffer. Reads use the buffer when the primary fails.
type Fallback struct {
	primary Clipboard
	buffer  Buffer
	logger  *slog.Logger
}

// NewFallback wraps primary. A nil logger discards warnings.
func NewFallback(primary Clipboard, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fallback{primary: primary, logger: logger}
}

// Default returns the system clipboard with an in-process fallback.
func Default(logger *slog.Logger) *Fallback {
	return NewFallback(System{}, logger)
}

// ReadText reads the primary clipboard, then the buffer.
func (f *Fallback) ReadText(ctx context.Context) (string, error) {
	text, err := f.primary.ReadText(ctx)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", err
	}
	f.logger.Warn("system clipboard read failed, using fallback buffer", "error", err)
	text, bufErr := f.buffer.ReadText(ctx)
	if bufErr != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}

// WriteText writes the primary clipboard and the buffer. A primary failure
// is logged; the write still succeeds through the buffer.
func (f *Fallback) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.primary.WriteText(ctx, text); err != nil {
		f.logger.Warn("system clipboard write failed, using fallback buffer", "error", err)
	}
	return f.buffer.WriteText(ctx, text)
}
