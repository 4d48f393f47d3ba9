package plotui

import (
	"errors"
	"fmt"
)

// ErrContextReleased is the panic value raised when a PlottingCtx is used
// after the paint call that created it has returned.
var ErrContextReleased = errors.New("plotting context used outside its paint call")

// NoThrow is the error kind declared by the PlottingCtx backend. It carries
// no information and no PlottingCtx operation returns it.
type NoThrow struct{}

func (NoThrow) Error() string { return "no error" }

// paintAbort is the panic value used to abandon the current paint when the
// toolkit fails. Widget.Paint recovers it.
type paintAbort struct {
	op  string
	err error
}

func (a paintAbort) Error() string {
	return fmt.Sprintf("%s: %v", a.op, a.err)
}

func (a paintAbort) Unwrap() error { return a.err }

func abortPaint(op string, err error) {
	panic(paintAbort{op: op, err: err})
}
