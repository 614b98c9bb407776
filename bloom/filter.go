// Package bloom provides a probabilistic set of string keys.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter. It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds key to the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test reports whether key might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}
