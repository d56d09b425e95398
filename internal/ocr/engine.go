// engine.go - Contract for the local OCR engine

package ocr

import "context"

// ProgressEvent is one progress notification emitted while the engine works
// through an image.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
}

// Engine is the local OCR capability: given image bytes it produces progress
// events and a final plain-text result. Engines are black boxes - their
// errors are opaque and non-recoverable beyond retrying with a clearer image.
type Engine interface {
	Recognize(ctx context.Context, image []byte, progress func(ProgressEvent)) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, image []byte, progress func(ProgressEvent)) (string, error)

func (f EngineFunc) Recognize(ctx context.Context, image []byte, progress func(ProgressEvent)) (string, error) {
	return f(ctx, image, progress)
}
