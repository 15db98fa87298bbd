// Package amount represents possibly random quantities, such as die rolls and
// fixed values, and computes their expected values and success probabilities
// exactly.
package amount

import (
	"math/big"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// Failure reasons reported by this package
const (
	ReasonInvalidRange         = "INVALID_RANGE"
	ReasonPointNotInRange      = "POINT_NOT_IN_RANGE"
	ReasonCompositeProbability = "COMPOSITE_PROBABILITY"
	ReasonInvalidNotation      = "INVALID_NOTATION"
)

// Sentinel errors for use with errors.Is
var (
	ErrInvalidRange         = errors.InvalidArgument("invalid amount range").WithReason(ReasonInvalidRange)
	ErrPointNotInRange      = errors.OutOfRange("point not in amount range").WithReason(ReasonPointNotInRange)
	ErrCompositeProbability = errors.FailedPrecondition("probability of a composite amount").WithReason(ReasonCompositeProbability)
	ErrInvalidNotation      = errors.InvalidArgument("invalid dice notation").WithReason(ReasonInvalidNotation)
)

// MaxParts bounds the number of simple parts Scale may produce
const MaxParts = 1000

var (
	// D3 is a three sided die
	D3 = MustNew(1, 3)
	// D6 is a six sided die
	D6 = MustNew(1, 6)
)

// Amount is an immutable, possibly random quantity. A simple amount picks
// uniformly from the inclusive range [start, stop]; when start == stop it is
// just that value. A composite amount is the sum of independent simple
// amounts, such as 2D6+1.
//
// The zero value is the empty sum, which is always 0.
type Amount struct {
	// start and stop are nil for composites
	start *big.Rat
	stop  *big.Rat
	parts []Amount
}

// New creates a simple amount over the inclusive integer range [start, stop]
func New(start, stop int64) (Amount, error) {
	return NewRat(big.NewRat(start, 1), big.NewRat(stop, 1))
}

// NewRat creates a simple amount over the inclusive range [start, stop]
func NewRat(start, stop *big.Rat) (Amount, error) {
	if start == nil || stop == nil {
		return Amount{}, errors.InvalidArgument("start and stop are required").WithReason(ReasonInvalidRange)
	}
	if stop.Cmp(start) < 0 {
		return Amount{}, errors.InvalidArgumentf(
			"stop %s must not be smaller than start %s", stop.RatString(), start.RatString(),
		).WithReason(ReasonInvalidRange)
	}

	return Amount{
		start: new(big.Rat).Set(start),
		stop:  new(big.Rat).Set(stop),
	}, nil
}

// MustNew is like New but panics on an invalid range. It is meant for
// package level dice definitions.
func MustNew(start, stop int64) Amount {
	a, err := New(start, stop)
	if err != nil {
		panic(err)
	}
	return a
}

// Die creates a die numbered 1 to sides
func Die(sides int64) (Amount, error) {
	return New(1, sides)
}

// Fixed creates an amount that is always n
func Fixed(n int64) Amount {
	return FixedRat(big.NewRat(n, 1))
}

// FixedRat creates an amount that is always r
func FixedRat(r *big.Rat) Amount {
	return Amount{
		start: new(big.Rat).Set(r),
		stop:  new(big.Rat).Set(r),
	}
}

// IsSimple reports whether the amount is a single uniform range
func (a Amount) IsSimple() bool {
	return a.start != nil
}

// IsFixed reports whether the amount is a single constant value
func (a Amount) IsFixed() bool {
	return a.IsSimple() && a.start.Cmp(a.stop) == 0
}

// Start returns the lowest value of a simple amount, or nil for a composite
func (a Amount) Start() *big.Rat {
	if !a.IsSimple() {
		return nil
	}
	return new(big.Rat).Set(a.start)
}

// Stop returns the highest value of a simple amount, or nil for a composite
func (a Amount) Stop() *big.Rat {
	if !a.IsSimple() {
		return nil
	}
	return new(big.Rat).Set(a.stop)
}

// Parts returns the simple amounts summed by a, in the order they were added
func (a Amount) Parts() []Amount {
	if a.IsSimple() {
		return []Amount{a}
	}
	parts := make([]Amount, len(a.parts))
	copy(parts, a.parts)
	return parts
}

// ExpectedValue returns the average value of the amount
func (a Amount) ExpectedValue() *big.Rat {
	if a.IsSimple() {
		half := new(big.Rat).Sub(a.stop, a.start)
		half.Quo(half, big.NewRat(2, 1))
		return half.Add(half, a.start)
	}

	total := new(big.Rat)
	for _, part := range a.parts {
		total.Add(total, part.ExpectedValue())
	}
	return total
}

// ProbabilityAtLeast returns the probability that a roll of a simple amount is
// at least threshold, when results at or below rerollAtOrBelow are rolled
// again once. Only failures are rerolled: a reroll value at or above the
// threshold is treated as threshold - 1. A nil reroll value means no rerolls.
func (a Amount) ProbabilityAtLeast(threshold, rerollAtOrBelow *big.Rat) (*big.Rat, error) {
	if !a.IsSimple() {
		return nil, errors.FailedPreconditionf(
			"probability is only defined for a single range, not %s", a,
		).WithReason(ReasonCompositeProbability)
	}
	if threshold == nil {
		return nil, errors.InvalidArgument("threshold is required").WithReason(ReasonPointNotInRange)
	}
	reroll := new(big.Rat)
	if rerollAtOrBelow != nil {
		reroll.Set(rerollAtOrBelow)
	}

	if threshold.Cmp(a.start) < 0 || threshold.Cmp(a.stop) > 0 {
		return nil, errors.OutOfRangef(
			"threshold %s must be between %s and %s", threshold.RatString(), a.start.RatString(), a.stop.RatString(),
		).WithReason(ReasonPointNotInRange)
	}

	one := big.NewRat(1, 1)
	rerollEdge := new(big.Rat).Add(reroll, one)
	if rerollEdge.Cmp(a.start) < 0 {
		return nil, errors.OutOfRangef(
			"reroll value %s + 1 must be at least %s", reroll.RatString(), a.start.RatString(),
		).WithReason(ReasonPointNotInRange)
	}
	if reroll.Cmp(threshold) >= 0 {
		reroll.Sub(threshold, one)
		rerollEdge.Set(threshold)
	}

	// +1 as the range includes stop
	spread := new(big.Rat).Sub(a.stop, a.start)
	spread.Add(spread, one)

	succeeding := new(big.Rat).Sub(a.stop, threshold)
	succeeding.Add(succeeding, one)
	succeeding.Quo(succeeding, spread)

	rerolled := new(big.Rat).Sub(rerollEdge, a.start)
	rerolled.Quo(rerolled, spread)
	rerolled.Add(rerolled, one)

	return succeeding.Mul(succeeding, rerolled), nil
}

// Add returns the sum of a and other as a composite amount
func (a Amount) Add(other Amount) Amount {
	left, right := a.Parts(), other.Parts()
	parts := make([]Amount, 0, len(left)+len(right))
	parts = append(parts, left...)
	parts = append(parts, right...)
	return Amount{parts: parts}
}

// AddRat returns a plus the constant r
func (a Amount) AddRat(r *big.Rat) Amount {
	return a.Add(FixedRat(r))
}

// Scale returns the sum of n independent copies of a. The result may hold
// at most MaxParts simple parts.
func (a Amount) Scale(n int64) (Amount, error) {
	if n < 0 {
		return Amount{}, errors.InvalidArgumentf("cannot repeat an amount %d times", n).WithReason(ReasonInvalidRange)
	}

	src := a.Parts()
	if len(src) > 0 && n > int64(MaxParts/len(src)) {
		return Amount{}, errors.InvalidArgumentf(
			"repeating %d parts %d times exceeds %d parts", len(src), n, MaxParts,
		).WithReason(ReasonInvalidRange)
	}
	parts := make([]Amount, 0, len(src)*int(n))
	for i := int64(0); i < n; i++ {
		parts = append(parts, src...)
	}
	return Amount{parts: parts}, nil
}
