package analysis

import (
	"github.com/KirkDiggler/loadout-efficiency/internal/clients/catalogfile"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// NewImportCatalogInput lists the entries of a loaded catalog file in file
// order, attackers before targets
func NewImportCatalogInput(cat *catalogfile.Catalog) *ImportCatalogInput {
	input := &ImportCatalogInput{Loadouts: cat.LoadoutDefinitions}
	for _, def := range cat.ModelDefinitions {
		input.Models = append(input.Models, cat.Models[def.Name])
	}
	input.Models = append(input.Models, cat.Targets...)
	for _, def := range cat.WeaponDefinitions {
		input.Weapons = append(input.Weapons, cat.Weapons[def.Name])
	}
	return input
}

// RankCatalog ranks the loadouts of a catalog file without any repository.
// LoadoutIDs and TargetIDs select by label and name; with neither TargetIDs
// nor TargetGrid every catalog target is used. Persist is ignored.
func RankCatalog(cat *catalogfile.Catalog, input *RankLoadoutsInput) ([]*TargetRanking, error) {
	if cat == nil || input == nil {
		return nil, errors.InvalidArgument("catalog and input are required")
	}

	loadouts := cat.Loadouts
	if len(input.LoadoutIDs) > 0 {
		byLabel := make(map[string]*loadout.Loadout, len(cat.Loadouts))
		for _, l := range cat.Loadouts {
			byLabel[l.Label()] = l
		}
		loadouts = make([]*loadout.Loadout, 0, len(input.LoadoutIDs))
		for _, id := range input.LoadoutIDs {
			l, ok := byLabel[id]
			if !ok {
				return nil, errors.NotFoundf("loadout %s not found", id)
			}
			loadouts = append(loadouts, l)
		}
	}

	targets := cat.Targets
	if len(input.TargetIDs) > 0 || input.TargetGrid != nil {
		targets = nil
		byName := make(map[string]*loadout.Model, len(cat.Targets)+len(cat.Models))
		for name, model := range cat.Models {
			byName[name] = model
		}
		for _, target := range cat.Targets {
			byName[target.Name()] = target
		}
		for _, id := range input.TargetIDs {
			target, ok := byName[id]
			if !ok {
				return nil, errors.NotFoundf("target %s not found", id)
			}
			targets = append(targets, target)
		}
		if input.TargetGrid != nil {
			generated, err := loadout.NewTargetGrid(input.TargetGrid)
			if err != nil {
				return nil, errors.Wrap(err, "invalid target grid")
			}
			targets = append(targets, generated...)
		}
	}
	if len(targets) == 0 {
		generated, err := loadout.NewTargetGrid(loadout.DefaultTargetGrid())
		if err != nil {
			return nil, err
		}
		targets = generated
	}

	return Rank(loadouts, targets, input.BestOnly)
}
