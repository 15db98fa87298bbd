package loadout

import (
	"math/big"

	"github.com/KirkDiggler/loadout-efficiency/internal/amount"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// ModificationType is how an ability combines its changes with a stat line
type ModificationType string

// Modification types, in the order they resolve
const (
	ModificationMultiply ModificationType = "multiply"
	ModificationAdd      ModificationType = "add"
	ModificationSet      ModificationType = "set"
)

// ModificationOrder returns the modification types in resolution order:
// scaling, then flat changes, then overrides.
func ModificationOrder() []ModificationType {
	return []ModificationType{ModificationMultiply, ModificationAdd, ModificationSet}
}

// IsValid reports whether t is one of the recognised modification types
func (t ModificationType) IsValid() bool {
	switch t {
	case ModificationMultiply, ModificationAdd, ModificationSet:
		return true
	default:
		return false
	}
}

// Apply combines current with delta
func (t ModificationType) Apply(current, delta StatValue) (StatValue, error) {
	switch t {
	case ModificationSet:
		return delta, nil
	case ModificationAdd:
		return add(current, delta)
	case ModificationMultiply:
		return multiply(current, delta)
	default:
		return StatValue{}, errors.InvalidArgumentf("unknown modification type %q", string(t)).
			WithReason(ReasonInvalidModificationType)
	}
}

func add(current, delta StatValue) (StatValue, error) {
	switch {
	case current.kind == KindNumber && delta.kind == KindNumber:
		return NumberRat(new(big.Rat).Add(current.number, delta.number)), nil
	case current.kind == KindAmount && delta.kind == KindNumber:
		return AmountValue(current.amount.AddRat(delta.number)), nil
	case current.kind == KindNumber && delta.kind == KindAmount:
		return AmountValue(amount.FixedRat(current.number).Add(delta.amount)), nil
	case current.kind == KindAmount && delta.kind == KindAmount:
		return AmountValue(current.amount.Add(delta.amount)), nil
	default:
		return StatValue{}, incompatible(ModificationAdd, current, delta)
	}
}

func multiply(current, delta StatValue) (StatValue, error) {
	switch {
	case current.kind == KindNumber && delta.kind == KindNumber:
		return NumberRat(new(big.Rat).Mul(current.number, delta.number)), nil
	case current.kind == KindAmount && delta.kind == KindNumber:
		return scale(current.amount, delta.number, current, delta)
	case current.kind == KindNumber && delta.kind == KindAmount:
		return scale(delta.amount, current.number, current, delta)
	default:
		return StatValue{}, incompatible(ModificationMultiply, current, delta)
	}
}

// scale repeats a by a whole, non-negative number of times
func scale(a amount.Amount, times *big.Rat, current, delta StatValue) (StatValue, error) {
	if !times.IsInt() || times.Sign() < 0 || !times.Num().IsInt64() {
		return StatValue{}, incompatible(ModificationMultiply, current, delta)
	}
	scaled, err := a.Scale(times.Num().Int64())
	if err != nil {
		return StatValue{}, err
	}
	return AmountValue(scaled), nil
}

func incompatible(t ModificationType, current, delta StatValue) error {
	return errors.FailedPreconditionf("cannot %s %s (%s) by %s (%s)",
		string(t), current, current.Kind(), delta, delta.Kind(),
	).WithReason(ReasonIncompatibleStat)
}
