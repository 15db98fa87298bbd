package engine

import "math/big"

var (
	ratTwo  = big.NewRat(2, 1)
	ratOne  = big.NewRat(1, 1)
	ratHalf = big.NewRat(1, 2)
)

// WoundRollThreshold returns the D6 result needed to wound, comparing the
// ratio of strength to toughness exactly. Zero toughness always wounds on 2+.
func WoundRollThreshold(strength, toughness *big.Rat) int64 {
	if toughness.Sign() == 0 {
		return 2
	}

	ratio := new(big.Rat).Quo(strength, toughness)
	switch {
	case ratio.Cmp(ratTwo) >= 0:
		return 2
	case ratio.Cmp(ratHalf) <= 0:
		return 6
	case ratio.Cmp(ratOne) > 0:
		return 3
	case ratio.Cmp(ratOne) < 0:
		return 5
	default:
		return 4
	}
}
