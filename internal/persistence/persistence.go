// Package persistence computes the multiplicative persistence of
// arbitrary-precision integers: how many times a number must be replaced by
// the product of its decimal digits before it becomes a single digit.
//
// Example: 277777788888899 has persistence 11.
//
//	calc, _ := persistence.New()
//	n, _ := persistence.ParseNumber("277777788888899")
//	calc.Persistence(n) // 11
package persistence

import (
	"fmt"
	"math/big"
)

// Strategy selects how digit products are computed for multi-word numbers.
type Strategy int

const (
	// StrategyFold multiplies digits directly, left to right.
	StrategyFold Strategy = iota
	// StrategyDivideAndConquer splits long digit sequences and memoizes halves.
	StrategyDivideAndConquer
)

func (s Strategy) String() string {
	switch s {
	case StrategyFold:
		return "fold"
	case StrategyDivideAndConquer:
		return "divide-and-conquer"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

var ten = big.NewInt(10)

// Stats reports memoization activity of a Calculator.
type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// Calculator computes multiplicative persistence. It owns one memo cache and
// is not safe for concurrent use.
type Calculator struct {
	strategy  Strategy
	policy    CachePolicy
	capacity  int
	threshold int
	cache     Cache
	engine    *Engine
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithStrategy selects the digit product strategy.
func WithStrategy(s Strategy) Option {
	return func(c *Calculator) { c.strategy = s }
}

// WithCachePolicy selects the memoization policy for the divide-and-conquer
// strategy. capacity only applies to PolicyLRU.
func WithCachePolicy(policy CachePolicy, capacity int) Option {
	return func(c *Calculator) {
		c.policy = policy
		c.capacity = capacity
	}
}

// WithCache supplies a ready-made cache and overrides WithCachePolicy.
func WithCache(cache Cache) Option {
	return func(c *Calculator) { c.cache = cache }
}

// WithFoldThreshold sets the longest sequence multiplied without splitting.
func WithFoldThreshold(n int) Option {
	return func(c *Calculator) { c.threshold = n }
}

// New builds a Calculator. Without options it folds digits directly and
// keeps no cache.
func New(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		strategy:  StrategyFold,
		policy:    PolicyLRU,
		threshold: DefaultFoldThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch c.strategy {
	case StrategyFold:
	case StrategyDivideAndConquer:
		if c.cache == nil {
			cache, err := NewCache(c.policy, c.capacity)
			if err != nil {
				return nil, err
			}
			c.cache = cache
		}
		c.engine = NewEngine(c.cache, c.threshold)
	default:
		return nil, fmt.Errorf("unknown strategy %v", c.strategy)
	}
	return c, nil
}

// Strategy returns the configured product strategy.
func (c *Calculator) Strategy() Strategy { return c.strategy }

// Policy returns the configured cache policy.
func (c *Calculator) Policy() CachePolicy { return c.policy }

// Persistence returns the number of digit-product steps needed to bring n
// down to a single digit. n is not modified and must be non-negative.
func (c *Calculator) Persistence(n *big.Int) int {
	checksTotal.Inc()
	if n.Sign() < 0 {
		panic("persistence: negative input")
	}

	count := 0
	v := n
	for v.Cmp(ten) >= 0 {
		if v.IsUint64() {
			count += persistenceUint64(v.Uint64())
			break
		}
		v = c.product(DigitsOf(v))
		count++
	}
	stepsTotal.Add(float64(count))
	return count
}

// Steps returns the reduction trajectory of n, starting with n itself and
// ending with a single digit. len(Steps(n))-1 == Persistence(n).
func (c *Calculator) Steps(n *big.Int) []*big.Int {
	steps := []*big.Int{new(big.Int).Set(n)}
	v := n
	for v.Cmp(ten) >= 0 {
		v = c.product(DigitsOf(v))
		steps = append(steps, new(big.Int).Set(v))
	}
	return steps
}

// Product returns the digit product of d using the configured strategy,
// including the zero short-circuit.
func (c *Calculator) Product(d Digits) *big.Int {
	return new(big.Int).Set(c.product(d))
}

// product may return a cached value; it must not be modified.
func (c *Calculator) product(d Digits) *big.Int {
	if d.HasZero() {
		return new(big.Int)
	}
	if c.engine != nil {
		return c.engine.product(d)
	}
	return FoldProduct(d)
}

// ResetCache drops every memoized product.
func (c *Calculator) ResetCache() {
	if c.engine != nil {
		c.engine.Reset()
	}
}

// Stats returns cache hit, miss, and size counters.
func (c *Calculator) Stats() Stats {
	if c.engine == nil {
		return Stats{}
	}
	return Stats{Hits: c.engine.hits, Misses: c.engine.misses, Size: c.cache.Len()}
}

// persistenceUint64 is the machine-word path. Every uint64 has at most 20
// digits and a leading 1 when it has 20, so the digit product fits in a word.
func persistenceUint64(x uint64) int {
	count := 0
	for x >= 10 {
		p := uint64(1)
		for y := x; y > 0 && p != 0; y /= 10 {
			p *= y % 10
		}
		x = p
		count++
	}
	return count
}
