// Package catalogfile loads models, weapons, wargear and loadouts from YAML
// catalog files.
package catalogfile

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// Catalog is everything a catalog file defines. Models holds attackers only;
// generated and listed targets are in Targets.
type Catalog struct {
	Models   map[string]*loadout.Model
	Weapons  map[string]*loadout.Weapon
	Targets  []*loadout.Model
	Loadouts []*loadout.Loadout

	// Definitions are the serialized entities, with wargear inlined, ready to
	// be stored.
	ModelDefinitions   []loadout.ModelDefinition
	WeaponDefinitions  []loadout.ItemDefinition
	TargetDefinitions  []loadout.ModelDefinition
	LoadoutDefinitions []loadout.LoadoutDefinition
}

// Load reads the catalog file at path
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("catalog file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
	}

	catalog, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog file %s", path)
	}
	return catalog, nil
}

// Parse reads a catalog document
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && err != io.EOF {
		var coded *errors.Error
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode catalog")
	}

	b := &builder{
		catalog: &Catalog{
			Models:  make(map[string]*loadout.Model),
			Weapons: make(map[string]*loadout.Weapon),
		},
		wargear: make(map[string]loadout.ItemDefinition),
	}
	if err := b.build(&doc); err != nil {
		return nil, err
	}
	return b.catalog, nil
}

type builder struct {
	catalog *Catalog
	wargear map[string]loadout.ItemDefinition
}

func (b *builder) build(doc *document) error {
	for i := range doc.Wargear {
		def, err := doc.Wargear[i].definition()
		if err != nil {
			return err
		}
		_, defined := b.wargear[def.Name]
		if err := requireName("wargear", def.Name, i, defined); err != nil {
			return err
		}
		if _, err := def.BuildItem(); err != nil {
			return errors.Wrapf(err, "wargear %s", def.Name)
		}
		b.wargear[def.Name] = def
	}

	for i := range doc.Weapons {
		def, err := doc.Weapons[i].definition()
		if err != nil {
			return err
		}
		_, defined := b.catalog.Weapons[def.Name]
		if err := requireName("weapon", def.Name, i, defined); err != nil {
			return err
		}
		weapon, err := def.BuildWeapon()
		if err != nil {
			return errors.Wrapf(err, "weapon %s", def.Name)
		}
		b.catalog.Weapons[def.Name] = weapon
		b.catalog.WeaponDefinitions = append(b.catalog.WeaponDefinitions, def)
	}

	for i := range doc.Models {
		def, model, err := b.model(&doc.Models[i])
		if err != nil {
			return err
		}
		_, defined := b.catalog.Models[def.Name]
		if err := requireName("model", def.Name, i, defined); err != nil {
			return err
		}
		b.catalog.Models[def.Name] = model
		b.catalog.ModelDefinitions = append(b.catalog.ModelDefinitions, def)
	}

	for i := range doc.Targets {
		def, target, err := b.model(&doc.Targets[i])
		if err != nil {
			return err
		}
		b.catalog.Targets = append(b.catalog.Targets, target)
		b.catalog.TargetDefinitions = append(b.catalog.TargetDefinitions, def)
	}
	if doc.TargetGrid != nil {
		grid, err := loadout.NewTargetGrid(doc.TargetGrid)
		if err != nil {
			return errors.Wrap(err, "invalid target grid")
		}
		for _, target := range grid {
			b.catalog.Targets = append(b.catalog.Targets, target)
			b.catalog.TargetDefinitions = append(b.catalog.TargetDefinitions, target.Definition())
		}
	}

	for i := range doc.Loadouts {
		if err := b.loadout(&doc.Loadouts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) model(doc *modelDocument) (loadout.ModelDefinition, *loadout.Model, error) {
	item, err := doc.definition()
	if err != nil {
		return loadout.ModelDefinition{}, nil, err
	}

	def := loadout.ModelDefinition{ItemDefinition: item}
	for _, name := range doc.Wargear {
		piece, ok := b.wargear[name]
		if !ok {
			return loadout.ModelDefinition{}, nil, errors.NotFoundf("model %s carries unknown wargear %s", doc.Name, name).
				WithMeta("wargear", name)
		}
		def.Wargear = append(def.Wargear, piece)
	}

	model, err := def.Build()
	if err != nil {
		return loadout.ModelDefinition{}, nil, errors.Wrapf(err, "model %s", doc.Name)
	}
	return def, model, nil
}

func (b *builder) loadout(doc *loadoutDocument) error {
	model, ok := b.catalog.Models[doc.Model]
	if !ok {
		return errors.NotFoundf("loadout refers to unknown model %s", doc.Model).WithMeta("model", doc.Model)
	}
	if len(doc.Weapons) == 0 {
		return errors.InvalidArgumentf("loadout of %s has no weapons", doc.Model).WithReason(loadout.ReasonInvalidWeapon)
	}

	l := &loadout.Loadout{Name: doc.Name, Model: model}
	for _, name := range doc.Weapons {
		weapon, ok := b.catalog.Weapons[name]
		if !ok {
			return errors.NotFoundf("loadout of %s refers to unknown weapon %s", doc.Model, name).WithMeta("weapon", name)
		}
		l.Weapons = append(l.Weapons, weapon)
	}

	b.catalog.Loadouts = append(b.catalog.Loadouts, l)
	b.catalog.LoadoutDefinitions = append(b.catalog.LoadoutDefinitions, l.Definition())
	return nil
}

func requireName(kind, name string, index int, defined bool) error {
	if name == "" {
		return errors.InvalidArgumentf("%s %d has no name", kind, index)
	}
	if defined {
		return errors.AlreadyExistsf("%s %s is defined twice", kind, name)
	}
	return nil
}
