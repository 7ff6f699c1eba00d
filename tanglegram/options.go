// SPDX-License-Identifier: MIT

package tanglegram

import "math"

const (
	// DefaultPower is the exponent L applied to each leaf displacement.
	DefaultPower = 1.5

	// MinPower is the smallest accepted L. For L < 1 the displacement cost
	// is concave and a reversed order is no longer the worst case, so the
	// normalized score could exceed 1.
	MinPower = 1.0

	// DefaultMaxPasses caps the sweeps of Untangle and the rounds of UntangleBoth.
	DefaultMaxPasses = 10
)

const (
	panicPowerInvalid     = "tanglegram: WithPower: L must be finite and ≥ 1"
	panicMaxPassesInvalid = "tanglegram: WithMaxPasses: n must be > 0"
)

// Option configures entanglement and untangling.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	power     float64
	maxPasses int
}

// WithPower sets the displacement exponent L. Panics unless ValidPower(l).
func WithPower(l float64) Option {
	if !ValidPower(l) {
		panic(panicPowerInvalid)
	}

	return func(o *Options) { o.power = l }
}

// WithMaxPasses caps untangling sweeps. Panics when n < 1.
func WithMaxPasses(n int) Option {
	if n < 1 {
		panic(panicMaxPassesInvalid)
	}

	return func(o *Options) { o.maxPasses = n }
}

// ValidPower reports whether l is finite and at least MinPower.
func ValidPower(l float64) bool { return l >= MinPower && !math.IsInf(l, 1) }

func gatherOptions(opts ...Option) Options {
	o := Options{power: DefaultPower, maxPasses: DefaultMaxPasses}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
