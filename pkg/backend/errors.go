package backend

import "fmt"

// ErrorKind classifies a DrawingError.
type ErrorKind int

const (
	// KindDrawing wraps an error raised by the backend itself.
	KindDrawing ErrorKind = iota
	// KindFont reports a font that could not be loaded or measured.
	KindFont
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindDrawing:
		return "drawing"
	case KindFont:
		return "font"
	default:
		return "unknown"
	}
}

// DrawingError is the error type every DrawingBackend method reports.
type DrawingError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface.
func (e *DrawingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s error", e.Kind)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

// Unwrap returns the wrapped backend error.
func (e *DrawingError) Unwrap() error {
	return e.Err
}

// NewDrawingError wraps err as a KindDrawing error.
func NewDrawingError(err error) *DrawingError {
	return &DrawingError{Kind: KindDrawing, Err: err}
}

// NewFontError wraps err as a KindFont error.
func NewFontError(err error) *DrawingError {
	return &DrawingError{Kind: KindFont, Err: err}
}
