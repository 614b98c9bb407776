package extract_test

import (
	"context"
	"sync"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/mock"
	"github.com/fwojciec/vidinfo/regexp2"
)

// warnings records warnings; safe for concurrent use.
type warnings struct {
	mu   sync.Mutex
	msgs []string
}

func (w *warnings) warner() *mock.Warner {
	return &mock.Warner{WarnFn: func(msg string) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.msgs = append(w.msgs, msg)
	}}
}

func (w *warnings) all() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.msgs...)
}

// newExtractor returns a mock extractor whose Validate agrees with expr.
func newExtractor(name, expr string, fn func(ctx context.Context, url string, env *vidinfo.Env) (*vidinfo.Result, error)) *mock.Extractor {
	p := vidinfo.NewPattern(expr)
	m := regexp2.MustURLMatcher(p)
	return &mock.Extractor{
		NameFn:       func() string { return name },
		URLPatternFn: func() vidinfo.Pattern { return p },
		ValidateFn:   m.Match,
		ExtractFn:    fn,
	}
}

func media(id string) *vidinfo.Result {
	return vidinfo.MediaResult(&vidinfo.MediaRecord{
		ID:    id,
		Title: "Title " + id,
		Formats: vidinfo.Formats{
			{URL: "http://cdn.example.com/" + id + ".mp4", Ext: "mp4", FormatID: "sd"},
		},
	})
}

func noFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url, note string) (string, error) {
			panic("unexpected fetch of " + url)
		},
		CloseFn: func() error { return nil },
	}
}
