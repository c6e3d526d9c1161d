package circuitbreaker

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BlobFetcher is the blob store capability being protected.
type BlobFetcher interface {
	Fetch(ctx context.Context, key string) (text string, found bool, err error)
}

// BlobCircuitBreaker guards a blob store. A missing object is a successful call.
type BlobCircuitBreaker struct {
	cb    *CircuitBreaker
	inner BlobFetcher
}

// BlobConfig trips at a 60% failure ratio over at least 10 fetches.
func BlobConfig() Config {
	return Config{
		Name:             "blob-store",
		MaxRequests:      2,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      10,
	}
}

func NewBlobCircuitBreaker(inner BlobFetcher, cfg Config) *BlobCircuitBreaker {
	return &BlobCircuitBreaker{cb: New(cfg), inner: inner}
}

type fetchResult struct {
	text  string
	found bool
}

func (b *BlobCircuitBreaker) Fetch(ctx context.Context, key string) (string, bool, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		text, found, err := b.inner.Fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		return fetchResult{text: text, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	r := result.(fetchResult)
	return r.text, r.found, nil
}

func (b *BlobCircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *BlobCircuitBreaker) IsOpen() bool {
	return b.cb.IsOpen()
}
