package catalogfile

import (
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// document is the layout of a catalog file
type document struct {
	Wargear    []itemDocument            `yaml:"wargear"`
	Models     []modelDocument           `yaml:"models"`
	Weapons    []itemDocument            `yaml:"weapons"`
	Targets    []modelDocument           `yaml:"targets"`
	TargetGrid *loadout.TargetGridConfig `yaml:"target_grid"`
	Loadouts   []loadoutDocument         `yaml:"loadouts"`
}

type abilityDocument struct {
	Name                  string        `yaml:"name"`
	Target                string        `yaml:"target"`
	Modification          string        `yaml:"modification"`
	Changes               statsDocument `yaml:"changes"`
	RerollHitsAtOrBelow   int64         `yaml:"reroll_hits_at_or_below"`
	RerollWoundsAtOrBelow int64         `yaml:"reroll_wounds_at_or_below"`
}

type itemDocument struct {
	Name      string            `yaml:"name"`
	Points    yaml.Node         `yaml:"points"`
	Stats     statsDocument     `yaml:"stats"`
	Abilities []abilityDocument `yaml:"abilities"`
}

type modelDocument struct {
	itemDocument `yaml:",inline"`
	// Wargear names entries of the top level wargear list
	Wargear []string `yaml:"wargear"`
}

type loadoutDocument struct {
	Name    string   `yaml:"name"`
	Model   string   `yaml:"model"`
	Weapons []string `yaml:"weapons"`
}

// statsDocument decodes a mapping of stat names to booleans, numbers or dice
type statsDocument loadout.StatLine

// UnmarshalYAML implements yaml.Unmarshaler
func (s *statsDocument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.InvalidArgumentf("line %d: stats must be a mapping", node.Line)
	}

	stats := make(statsDocument, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return errors.InvalidArgumentf("line %d: stat %s must be a single value", value.Line, key.Value)
		}

		var parsed loadout.StatValue
		if value.Tag == "!!bool" {
			var flag bool
			if err := value.Decode(&flag); err != nil {
				return errors.Wrapf(err, "line %d: stat %s", value.Line, key.Value)
			}
			parsed = loadout.Flag(flag)
		} else {
			var err error
			if parsed, err = loadout.ParseValue(value.Value); err != nil {
				return errors.Wrapf(err, "line %d: stat %s", value.Line, key.Value)
			}
		}
		stats[loadout.StatName(key.Value)] = parsed
	}

	*s = stats
	return nil
}

func (d *abilityDocument) definition() loadout.AbilityDefinition {
	return loadout.AbilityDefinition{
		Name:                  d.Name,
		Target:                loadout.AbilityTarget(d.Target),
		Modification:          loadout.ModificationType(d.Modification),
		Changes:               loadout.StatLine(d.Changes),
		RerollHitsAtOrBelow:   d.RerollHitsAtOrBelow,
		RerollWoundsAtOrBelow: d.RerollWoundsAtOrBelow,
	}
}

func (d *itemDocument) definition() (loadout.ItemDefinition, error) {
	def := loadout.ItemDefinition{
		Name:  d.Name,
		Stats: loadout.StatLine(d.Stats),
	}
	if d.Points.Kind != 0 {
		if d.Points.Kind != yaml.ScalarNode {
			return loadout.ItemDefinition{}, errors.InvalidArgumentf("line %d: points of %s must be a number", d.Points.Line, d.Name)
		}
		points, err := loadout.ParsePoints(d.Points.Value)
		if err != nil {
			return loadout.ItemDefinition{}, errors.Wrapf(err, "line %d", d.Points.Line)
		}
		def.Points = points.RatString()
	}
	for i := range d.Abilities {
		def.Abilities = append(def.Abilities, d.Abilities[i].definition())
	}
	return def, nil
}
