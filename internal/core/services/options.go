package services

import (
	"time"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
)

// options holds settings shared by the request-issuing services.
type options struct {
	observer  driven.Observer
	now       func() time.Time
	threshold time.Duration
}

// Option configures AuthSessionService and APIClient.
type Option func(*options)

// WithObserver records requests, refreshes and logouts.
func WithObserver(o driven.Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(opts *options) {
		opts.now = now
	}
}

// WithRefreshThreshold overrides domain.AuthRefreshThreshold.
func WithRefreshThreshold(d time.Duration) Option {
	return func(opts *options) {
		opts.threshold = d
	}
}

func newOptions(opts []Option) options {
	o := options{
		observer:  nopObserver{},
		now:       time.Now,
		threshold: domain.AuthRefreshThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	return o
}

// nopObserver discards all observations.
type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, time.Duration) {}
func (nopObserver) ObserveRefresh(error)                         {}
func (nopObserver) ObserveLogout()                               {}
