package mock

import "github.com/fwojciec/vidinfo"

var _ vidinfo.Warner = (*Warner)(nil)

// Warner is a mock implementation of vidinfo.Warner.
type Warner struct {
	WarnFn func(msg string)
}

func (w *Warner) Warn(msg string) {
	w.WarnFn(msg)
}
