package mock

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of vidinfo.Extractor.
type Extractor struct {
	NameFn       func() string
	URLPatternFn func() vidinfo.Pattern
	ValidateFn   func(url string) bool
	ExtractFn    func(ctx context.Context, url string, env *vidinfo.Env) (*vidinfo.Result, error)
}

func (e *Extractor) Name() string {
	return e.NameFn()
}

func (e *Extractor) URLPattern() vidinfo.Pattern {
	return e.URLPatternFn()
}

func (e *Extractor) Validate(url string) bool {
	return e.ValidateFn(url)
}

func (e *Extractor) Extract(ctx context.Context, url string, env *vidinfo.Env) (*vidinfo.Result, error) {
	return e.ExtractFn(ctx, url, env)
}

var _ vidinfo.Dispatcher = (*Dispatcher)(nil)

// Dispatcher is a mock implementation of vidinfo.Dispatcher.
type Dispatcher struct {
	ResolveFn func(url string) (vidinfo.Extractor, error)
	LookupFn  func(name string) (vidinfo.Extractor, bool)
	ListFn    func() []vidinfo.Extractor
}

func (d *Dispatcher) Resolve(url string) (vidinfo.Extractor, error) {
	return d.ResolveFn(url)
}

func (d *Dispatcher) Lookup(name string) (vidinfo.Extractor, bool) {
	return d.LookupFn(name)
}

func (d *Dispatcher) List() []vidinfo.Extractor {
	return d.ListFn()
}
