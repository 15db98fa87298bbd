package loadout

import "github.com/KirkDiggler/loadout-efficiency/internal/errors"

// AbilityTarget selects which stat line an ability modifies
type AbilityTarget string

// Ability targets
const (
	TargetModel  AbilityTarget = "model"
	TargetWeapon AbilityTarget = "weapon"
)

// AbilityConfig holds the values an ability is built from
type AbilityConfig struct {
	Name string
	// Target defaults to TargetModel
	Target          AbilityTarget
	StatLineChanges StatLine
	// ModificationType defaults to ModificationAdd
	ModificationType ModificationType
	// A reroll value of 6 rerolls every failure
	RerollHitsAtOrBelow   int64
	RerollWoundsAtOrBelow int64
}

// Ability is a special rule of a model, weapon or piece of wargear that
// modifies a stat line. Abilities are immutable once built.
type Ability struct {
	name                  string
	target                AbilityTarget
	changes               StatLine
	modificationType      ModificationType
	rerollHitsAtOrBelow   int64
	rerollWoundsAtOrBelow int64
}

// NewAbility validates cfg and builds an ability from it
func NewAbility(cfg *AbilityConfig) (*Ability, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("ability config is required")
	}

	modificationType := cfg.ModificationType
	if modificationType == "" {
		modificationType = ModificationAdd
	}
	if !modificationType.IsValid() {
		return nil, errors.InvalidArgumentf(
			"modification type must be one of multiply, add or set, got %q", string(modificationType),
		).WithReason(ReasonInvalidModificationType).WithMeta("ability", cfg.Name)
	}

	target := cfg.Target
	if target == "" {
		target = TargetModel
	}
	if target != TargetModel && target != TargetWeapon {
		return nil, errors.InvalidArgumentf("ability target must be model or weapon, got %q", string(target)).
			WithMeta("ability", cfg.Name)
	}

	if cfg.RerollHitsAtOrBelow < 0 || cfg.RerollWoundsAtOrBelow < 0 {
		return nil, errors.InvalidArgumentf(
			"reroll values must not be negative, got hits %d wounds %d",
			cfg.RerollHitsAtOrBelow, cfg.RerollWoundsAtOrBelow,
		).WithReason(ReasonInvalidRerolls).WithMeta("ability", cfg.Name)
	}

	return &Ability{
		name:                  cfg.Name,
		target:                target,
		changes:               cfg.StatLineChanges.Clone(),
		modificationType:      modificationType,
		rerollHitsAtOrBelow:   cfg.RerollHitsAtOrBelow,
		rerollWoundsAtOrBelow: cfg.RerollWoundsAtOrBelow,
	}, nil
}

// Name returns the display name, which may be empty
func (a *Ability) Name() string { return a.name }

// Target returns the stat line the ability modifies
func (a *Ability) Target() AbilityTarget { return a.target }

// AffectsModel reports whether the ability modifies the wielding model
func (a *Ability) AffectsModel() bool { return a.target == TargetModel }

// ModificationType returns how the changes combine with the stat line
func (a *Ability) ModificationType() ModificationType { return a.modificationType }

// StatLineChanges returns a copy of the changes
func (a *Ability) StatLineChanges() StatLine { return a.changes.Clone() }

// ChangedStats returns the names of the changed stats in sorted order
func (a *Ability) ChangedStats() []StatName { return a.changes.Names() }

// RerollHitsAtOrBelow returns the hit roll reroll value
func (a *Ability) RerollHitsAtOrBelow() int64 { return a.rerollHitsAtOrBelow }

// RerollWoundsAtOrBelow returns the wound roll reroll value
func (a *Ability) RerollWoundsAtOrBelow() int64 { return a.rerollWoundsAtOrBelow }

// ApplyTo folds the ability's changes into line. Changes are applied in
// stat name order; a missing stat fails with ErrUnknownStat.
func (a *Ability) ApplyTo(line StatLine) error {
	for _, name := range a.ChangedStats() {
		current, err := line.Get(name)
		if err != nil {
			return errors.Wrapf(err, "ability %q", a.name)
		}
		updated, err := a.modificationType.Apply(current, a.changes[name])
		if err != nil {
			return errors.Wrapf(err, "ability %q on stat %s", a.name, name)
		}
		line[name] = updated
	}
	return nil
}
