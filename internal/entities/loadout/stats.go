// Package loadout holds the value types describing models, their wargear and
// weapons: stat lines, abilities and points costs.
package loadout

import (
	"encoding/json"
	"math/big"
	"sort"
	"strings"

	"github.com/KirkDiggler/loadout-efficiency/internal/amount"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// StatName names an entry of a stat line. The set is open: catalogs may use
// any name, the constants below are the ones the rules read.
type StatName string

// Stats read by the damage rules
const (
	StatWeaponSkill         StatName = "WS"
	StatBallisticSkill      StatName = "BS"
	StatStrength            StatName = "S"
	StatToughness           StatName = "T"
	StatAttacks             StatName = "A"
	StatWounds              StatName = "W"
	StatSave                StatName = "Sv"
	StatArmourPenetration   StatName = "AP"
	StatDamage              StatName = "D"
	StatIsMelee             StatName = "is_melee"
	StatToWoundRollModifier StatName = "to_wound_roll_modifier"
)

// ValueKind tags the content of a StatValue
type ValueKind int

// Value kinds
const (
	KindNumber ValueKind = iota + 1
	KindAmount
	KindFlag
)

// String returns the name of the kind
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindAmount:
		return "amount"
	case KindFlag:
		return "flag"
	default:
		return "unset"
	}
}

// StatValue is an immutable stat entry: an exact number, a random Amount, or
// a flag such as is_melee.
type StatValue struct {
	kind   ValueKind
	number *big.Rat
	amount amount.Amount
	flag   bool
}

// Number creates a whole number stat value
func Number(n int64) StatValue {
	return NumberRat(big.NewRat(n, 1))
}

// NumberRat creates an exact rational stat value
func NumberRat(r *big.Rat) StatValue {
	return StatValue{kind: KindNumber, number: new(big.Rat).Set(r)}
}

// AmountValue creates a stat value from an amount. Fixed amounts are stored
// as plain numbers.
func AmountValue(a amount.Amount) StatValue {
	if a.IsFixed() {
		return NumberRat(a.Start())
	}
	return StatValue{kind: KindAmount, amount: a}
}

// Flag creates a boolean stat value
func Flag(b bool) StatValue {
	return StatValue{kind: KindFlag, flag: b}
}

// Kind returns what the value holds
func (v StatValue) Kind() ValueKind {
	return v.kind
}

// Number returns the value if it is a number
func (v StatValue) Number() (*big.Rat, bool) {
	if v.kind != KindNumber {
		return nil, false
	}
	return new(big.Rat).Set(v.number), true
}

// Amount returns the value if it is a random amount
func (v StatValue) Amount() (amount.Amount, bool) {
	if v.kind != KindAmount {
		return amount.Amount{}, false
	}
	return v.amount, true
}

// Flag returns the value if it is a flag
func (v StatValue) Flag() (bool, bool) {
	if v.kind != KindFlag {
		return false, false
	}
	return v.flag, true
}

// Expected returns the number, or the expected value of an amount
func (v StatValue) Expected() (*big.Rat, error) {
	switch v.kind {
	case KindNumber:
		return new(big.Rat).Set(v.number), nil
	case KindAmount:
		return v.amount.ExpectedValue(), nil
	default:
		return nil, errors.FailedPreconditionf("a %s has no numeric value", v.kind).WithReason(ReasonIncompatibleStat)
	}
}

// Abs returns the absolute expected value. Amounts resolve to their average.
func (v StatValue) Abs() (*big.Rat, error) {
	expected, err := v.Expected()
	if err != nil {
		return nil, err
	}
	return expected.Abs(expected), nil
}

// Equal reports whether two values hold the same content. Amounts compare by
// notation.
func (v StatValue) Equal(other StatValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.number.Cmp(other.number) == 0
	case KindAmount:
		return v.amount.String() == other.amount.String()
	case KindFlag:
		return v.flag == other.flag
	default:
		return true
	}
}

// String renders the value as it would be written in a catalog
func (v StatValue) String() string {
	switch v.kind {
	case KindNumber:
		return v.number.RatString()
	case KindAmount:
		return v.amount.String()
	case KindFlag:
		if v.flag {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// MarshalJSON writes flags as booleans, whole numbers as JSON numbers and
// everything else as notation strings.
func (v StatValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindFlag:
		return json.Marshal(v.flag)
	case KindNumber:
		if v.number.IsInt() {
			return []byte(v.number.RatString()), nil
		}
		return json.Marshal(v.number.RatString())
	case KindAmount:
		return json.Marshal(v.amount.String())
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON reads the forms written by MarshalJSON
func (v *StatValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "true" || raw == "false":
		*v = Flag(raw == "true")
		return nil
	case strings.HasPrefix(raw, `"`):
		var notation string
		if err := json.Unmarshal(data, &notation); err != nil {
			return errors.Wrap(err, "invalid stat value")
		}
		parsed, err := ParseValue(notation)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	default:
		r, ok := new(big.Rat).SetString(raw)
		if !ok {
			return errors.InvalidArgumentf("invalid stat value %s", raw)
		}
		*v = NumberRat(r)
		return nil
	}
}

// ParseValue reads a catalog value: "true"/"false", a number such as "3",
// "3.5" or "13/2", or dice notation such as "2D3+1".
func ParseValue(s string) (StatValue, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "true":
		return Flag(true), nil
	case "false":
		return Flag(false), nil
	}
	if r, ok := new(big.Rat).SetString(trimmed); ok {
		return NumberRat(r), nil
	}
	a, err := amount.Parse(s)
	if err != nil {
		return StatValue{}, errors.Wrapf(err, "invalid stat value %q", s)
	}
	return AmountValue(a), nil
}

// StatLine maps stat names to values
type StatLine map[StatName]StatValue

// Clone returns a copy that can be modified independently
func (s StatLine) Clone() StatLine {
	clone := make(StatLine, len(s))
	for name, value := range s {
		clone[name] = value
	}
	return clone
}

// Names returns the stat names in sorted order
func (s StatLine) Names() []StatName {
	names := make([]StatName, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Get returns a stat, failing with ErrUnknownStat when it is missing
func (s StatLine) Get(name StatName) (StatValue, error) {
	value, ok := s[name]
	if !ok {
		return StatValue{}, errors.FailedPreconditionf("stat %s does not exist", name).
			WithReason(ReasonUnknownStat).
			WithMeta("stat", string(name))
	}
	return value, nil
}

// Number returns a stat that must hold a number
func (s StatLine) Number(name StatName) (*big.Rat, error) {
	value, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	n, ok := value.Number()
	if !ok {
		return nil, errors.FailedPreconditionf("stat %s must be a fixed number, not a %s", name, value.Kind()).
			WithReason(ReasonIncompatibleStat).
			WithMeta("stat", string(name))
	}
	return n, nil
}

// Equal reports whether both lines hold the same stats and values
func (s StatLine) Equal(other StatLine) bool {
	if len(s) != len(other) {
		return false
	}
	for name, value := range s {
		otherValue, ok := other[name]
		if !ok || !value.Equal(otherValue) {
			return false
		}
	}
	return true
}
