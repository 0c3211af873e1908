// SPDX-License-Identifier: MIT

// Package extract: functional configuration for the builders.
// This file defines:
//   - documented defaults (constants),
//   - Option / Options,
//   - WithX constructors (panic only on nonsensical values),
//   - gatherOptions, the single place where defaults are applied.
//
// Notes:
//   - The sentinel is stored as int64 and checked against the destination
//     width when a build starts (ErrConfiguration), because Option is not
//     generic over T.
//   - Options never carry state between builds.
package extract

import (
	"io"
	"log/slog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSentinel is the value written for missing cells: an out-of-band
	// negative value, as in the historical byte/int extractors.
	DefaultSentinel int64 = -1

	// DefaultOverflow keeps plain narrowing semantics.
	DefaultOverflow = OverflowWrap

	// DefaultRounding matches the host's round function (ties toward +∞).
	DefaultRounding = RoundHalfUp

	// DefaultWorkers builds datasets on the calling goroutine.
	DefaultWorkers = 1
)

const (
	panicWorkersInvalid = "extract: WithWorkers: n must be >= 1"
	panicLoggerNil      = "extract: WithLogger: nil logger"
)

// Option mutates Options. Options are applied in order; last writer wins.
type Option func(*Options)

// Options is the effective configuration of one build. Fields are unexported;
// use the WithX constructors.
type Options struct {
	sentinel int64
	overflow OverflowPolicy
	rounding RoundingMode
	workers  int
	logger   *slog.Logger
}

// WithSentinel sets the value substituted for missing cells. It must be
// representable in the destination width, otherwise the build fails with
// ErrConfiguration before any cell is read.
func WithSentinel(v int64) Option {
	return func(o *Options) { o.sentinel = v }
}

// WithOverflow selects what happens to rounded values outside the destination
// range. Unknown policies fail the build with ErrConfiguration.
func WithOverflow(p OverflowPolicy) Option {
	return func(o *Options) { o.overflow = p }
}

// WithRounding selects the tie-breaking rule. Unknown modes fail the build
// with ErrConfiguration.
func WithRounding(m RoundingMode) Option {
	return func(o *Options) { o.rounding = m }
}

// WithWorkers splits BuildDataset across up to n goroutines, each owning a
// contiguous range of rows. Accessors that do not implement source.Reentrant
// are serialized behind a mutex. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger routes build diagnostics to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

// NewOptions resolves opts on top of the defaults. Exposed for callers that
// want to inspect an effective configuration.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Sentinel returns the configured sentinel.
func (o Options) Sentinel() int64 { return o.sentinel }

// Overflow returns the configured overflow policy.
func (o Options) Overflow() OverflowPolicy { return o.overflow }

// Rounding returns the configured rounding mode.
func (o Options) Rounding() RoundingMode { return o.rounding }

// Workers returns the configured worker count.
func (o Options) Workers() int { return o.workers }

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// gatherOptions applies user setters on top of the defaults.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		sentinel: DefaultSentinel,
		overflow: DefaultOverflow,
		rounding: DefaultRounding,
		workers:  DefaultWorkers,
		logger:   discardLogger,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
