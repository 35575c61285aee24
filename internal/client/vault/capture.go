package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrCameraUnsupported is returned by capturers on platforms without a
	// camera.
	ErrCameraUnsupported = errors.New("camera is not available on this platform")
	// ErrCancelled is returned when the user dismisses the picker.
	ErrCancelled = errors.New("capture cancelled")
)

// Capture is a picked or photographed file.
type Capture struct {
	Name string
	Data []byte
}

// Capturer produces one file, usually after user interaction.
type Capturer interface {
	Capture(ctx context.Context) (Capture, error)
}

// Camera stands for the device camera. Terminals have none.
type Camera struct{}

func (Camera) Capture(context.Context) (Capture, error) {
	return Capture{}, ErrCameraUnsupported
}

// FilePicker asks for a path and reads the file behind it.
type FilePicker struct {
	// Ask returns the chosen path; an empty answer cancels.
	Ask      func(ctx context.Context) (string, error)
	ReadFile func(name string) ([]byte, error)
}

// NewFilePicker returns a picker reading from the local filesystem.
func NewFilePicker(ask func(ctx context.Context) (string, error)) *FilePicker {
	return &FilePicker{Ask: ask, ReadFile: os.ReadFile}
}

func (p *FilePicker) Capture(ctx context.Context) (Capture, error) {
	path, err := p.Ask(ctx)
	if err != nil {
		return Capture{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Capture{}, ErrCancelled
	}
	data, err := p.ReadFile(path)
	if err != nil {
		return Capture{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Capture{Name: filepath.Base(path), Data: data}, nil
}

// WithFallback tries primary first and uses fallback when primary reports
// ErrCameraUnsupported. Other errors, including cancellation, are returned
// as is.
func WithFallback(primary, fallback Capturer) Capturer {
	return fallbackCapturer{primary: primary, fallback: fallback}
}

type fallbackCapturer struct {
	primary, fallback Capturer
}

func (f fallbackCapturer) Capture(ctx context.Context) (Capture, error) {
	c, err := f.primary.Capture(ctx)
	if errors.Is(err, ErrCameraUnsupported) {
		return f.fallback.Capture(ctx)
	}
	return c, err
}
