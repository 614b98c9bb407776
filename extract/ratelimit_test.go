package extract_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
	"github.com/fwojciec/vidinfo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements vidinfo.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ vidinfo.DomainLimiter = extract.NewDomainLimiter(1)
	})

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same domain", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(10)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different domains have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(10)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "other.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different domain should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(1)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "example.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests are serialized per domain", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "example.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}

func TestLimitedFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("waits on the url host before fetching", func(t *testing.T) {
		t.Parallel()

		var domains []string
		limiter := &mock.DomainLimiter{WaitFn: func(ctx context.Context, domain string) error {
			domains = append(domains, domain)
			return nil
		}}
		inner := &mock.Fetcher{FetchFn: func(ctx context.Context, url, note string) (string, error) {
			return "body", nil
		}}

		body, err := extract.NewLimitedFetcher(inner, limiter).Fetch(context.Background(), "http://www.imdb.com/list/x", "list")

		require.NoError(t, err)
		assert.Equal(t, "body", body)
		assert.Equal(t, []string{"www.imdb.com"}, domains)
	})

	t.Run("does not fetch when wait fails", func(t *testing.T) {
		t.Parallel()

		limiter := &mock.DomainLimiter{WaitFn: func(ctx context.Context, domain string) error {
			return errors.New("canceled")
		}}

		_, err := extract.NewLimitedFetcher(noFetcher(), limiter).Fetch(context.Background(), "http://a.test/", "page")

		require.Error(t, err)
	})
}
