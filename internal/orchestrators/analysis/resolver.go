package analysis

import (
	"context"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog"
)

// resolver fetches catalog entries once per request
type resolver struct {
	repo        catalog.Repository
	modelsByID  map[string]*loadout.Model
	weaponsByID map[string]*loadout.Weapon
}

func (o *orchestrator) newResolver() *resolver {
	return &resolver{
		repo:        o.catalogRepo,
		modelsByID:  make(map[string]*loadout.Model),
		weaponsByID: make(map[string]*loadout.Weapon),
	}
}

func (r *resolver) model(ctx context.Context, id string) (*loadout.Model, error) {
	if model, ok := r.modelsByID[id]; ok {
		return model, nil
	}

	out, err := r.repo.GetModel(ctx, catalog.GetModelInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get model %s", id)
	}
	r.modelsByID[id] = out.Model
	return out.Model, nil
}

func (r *resolver) weapon(ctx context.Context, id string) (*loadout.Weapon, error) {
	if weapon, ok := r.weaponsByID[id]; ok {
		return weapon, nil
	}

	out, err := r.repo.GetWeapon(ctx, catalog.GetWeaponInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get weapon %s", id)
	}
	r.weaponsByID[id] = out.Weapon
	return out.Weapon, nil
}

func (r *resolver) weapons(ctx context.Context, ids []string) ([]*loadout.Weapon, error) {
	weapons := make([]*loadout.Weapon, 0, len(ids))
	for _, id := range ids {
		weapon, err := r.weapon(ctx, id)
		if err != nil {
			return nil, err
		}
		weapons = append(weapons, weapon)
	}
	return weapons, nil
}

func (r *resolver) loadout(ctx context.Context, def loadout.LoadoutDefinition) (*loadout.Loadout, error) {
	model, err := r.model(ctx, def.Model)
	if err != nil {
		return nil, errors.Wrapf(err, "loadout %s", def.ID())
	}
	weapons, err := r.weapons(ctx, def.Weapons)
	if err != nil {
		return nil, errors.Wrapf(err, "loadout %s", def.ID())
	}
	return &loadout.Loadout{Name: def.Name, Model: model, Weapons: weapons}, nil
}
