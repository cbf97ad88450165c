package persistence

import (
	"math/big"
)

// DefaultFoldThreshold is the longest digit sequence multiplied directly
// instead of being split.
const DefaultFoldThreshold = 8

// wordDigits is how many digits fit in a uint64 accumulator: 9^19 < 2^64.
const wordDigits = 19

var one = big.NewInt(1)

// FoldProduct multiplies the digits left to right starting from 1.
// The zero short-circuit is not applied here; callers that care use Product.
func FoldProduct(d Digits) *big.Int {
	acc := big.NewInt(1)
	var scratch big.Int
	word, n := uint64(1), 0
	for _, v := range d {
		word *= uint64(mustDigit(v))
		n++
		if n == wordDigits {
			acc.Mul(acc, scratch.SetUint64(word))
			word, n = 1, 0
		}
	}
	if n > 0 {
		acc.Mul(acc, scratch.SetUint64(word))
	}
	return acc
}

// Engine computes digit products by splitting long sequences in half and
// memoizing the halves. An Engine is not safe for concurrent use.
type Engine struct {
	cache     Cache
	threshold int

	hits   uint64
	misses uint64
}

// NewEngine returns a divide-and-conquer engine backed by cache.
// threshold <= 0 selects DefaultFoldThreshold.
func NewEngine(cache Cache, threshold int) *Engine {
	if cache == nil {
		cache = noCache{}
	}
	if threshold <= 0 {
		threshold = DefaultFoldThreshold
	}
	return &Engine{cache: cache, threshold: threshold}
}

// Product returns the product of d. Any zero digit yields 0 without
// multiplying. The result is owned by the caller.
func (e *Engine) Product(d Digits) *big.Int {
	if d.HasZero() {
		return new(big.Int)
	}
	return new(big.Int).Set(e.product(d))
}

// product may return a value that lives in the cache; it must not be modified.
func (e *Engine) product(d Digits) *big.Int {
	switch {
	case len(d) == 0:
		return one
	case len(d) == 1:
		return big.NewInt(int64(mustDigit(d[0])))
	case len(d) <= e.threshold:
		return FoldProduct(d)
	}

	key := d.Key()
	if p, ok := e.cache.Get(key); ok {
		e.hits++
		cacheLookups.WithLabelValues("hit").Inc()
		return p
	}
	e.misses++
	cacheLookups.WithLabelValues("miss").Inc()

	mid := len(d) / 2
	lhs, rhs := d[:mid], d[mid:]
	left := e.product(lhs)
	right := e.product(rhs)
	e.cache.Add(lhs.Key(), left)
	e.cache.Add(rhs.Key(), right)

	p := new(big.Int).Mul(left, right)
	e.cache.Add(key, p)
	return p
}

// Reset drops every memoized product.
func (e *Engine) Reset() {
	e.cache.Purge()
}
