package site_test

import (
	"context"
	"sync"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/mock"
	"github.com/fwojciec/vidinfo/regexp2"
)

// pages serves canned bodies by URL and records each request.
type pages struct {
	bodies map[string]string

	mu        sync.Mutex
	requested []string
	notes     []string
}

func (p *pages) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url, note string) (string, error) {
			p.mu.Lock()
			p.requested = append(p.requested, url)
			p.notes = append(p.notes, note)
			p.mu.Unlock()
			body, ok := p.bodies[url]
			if !ok {
				return "", vidinfo.Errorf(vidinfo.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return body, nil
		},
		CloseFn: func() error { return nil },
	}
}

// env returns an Env over p and the warnings slice it appends to.
func (p *pages) env() (*vidinfo.Env, *[]string) {
	var (
		mu   sync.Mutex
		msgs []string
	)
	w := &mock.Warner{WarnFn: func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		msgs = append(msgs, msg)
	}}
	return &vidinfo.Env{Fetcher: p.fetcher(), Warner: w}, &msgs
}

func searcher() *regexp2.Searcher {
	return regexp2.NewSearcher()
}
