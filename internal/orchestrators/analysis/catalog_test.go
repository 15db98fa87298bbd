package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/loadout-efficiency/internal/clients/catalogfile"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
)

const smallCatalog = `
models:
  - name: veteran
    points: 18
    stats: {WS: 3, BS: 3, S: 4, T: 4, W: 2, A: 2, Sv: 3}
weapons:
  - name: power_sword
    points: 4
    stats: {is_melee: true, D: 1}
  - name: thunder_hammer
    points: 16
    stats: {is_melee: true, D: 3}
    abilities:
      - modification: multiply
        changes: {S: 2}
targets:
  - name: marine
    stats: {W: 1, T: 4, Sv: 3}
loadouts:
  - name: sword
    model: veteran
    weapons: [power_sword]
  - model: veteran
    weapons: [thunder_hammer]
`

type CatalogRankTestSuite struct {
	suite.Suite
	catalog *catalogfile.Catalog
}

func TestCatalogRankSuite(t *testing.T) {
	suite.Run(t, new(CatalogRankTestSuite))
}

func (s *CatalogRankTestSuite) SetupTest() {
	cat, err := catalogfile.Parse(strings.NewReader(smallCatalog))
	s.Require().NoError(err)
	s.catalog = cat
}

func (s *CatalogRankTestSuite) TestCatalogTargets() {
	rankings, err := analysis.RankCatalog(s.catalog, &analysis.RankLoadoutsInput{})
	s.Require().NoError(err)
	s.Require().Len(rankings, 1)
	s.Equal("marine", rankings[0].Target)
	s.Require().Len(rankings[0].Rows, 2)
	s.Equal("veteran with thunder_hammer", rankings[0].Rows[0].Loadout)
	s.Equal("sword", rankings[0].Rows[1].Loadout)
}

func (s *CatalogRankTestSuite) TestSelection() {
	s.Run("by label and grid", func() {
		rankings, err := analysis.RankCatalog(s.catalog, &analysis.RankLoadoutsInput{
			LoadoutIDs: []string{"sword"},
			TargetGrid: &loadout.TargetGridConfig{
				Wounds:    loadout.Range{Min: 1, Max: 1},
				Toughness: loadout.Range{Min: 3, Max: 5},
				Saves:     loadout.Range{Min: 2, Max: 2},
			},
		})
		s.Require().NoError(err)
		s.Len(rankings, 3)
		s.Len(analysis.Rows(rankings), 3)
	})

	s.Run("unknown loadout", func() {
		_, err := analysis.RankCatalog(s.catalog, &analysis.RankLoadoutsInput{LoadoutIDs: []string{"axe"}})
		s.True(errors.IsNotFound(err))
	})

	s.Run("unknown target", func() {
		_, err := analysis.RankCatalog(s.catalog, &analysis.RankLoadoutsInput{TargetIDs: []string{"ork"}})
		s.True(errors.IsNotFound(err))
	})

	s.Run("models can be targets", func() {
		rankings, err := analysis.RankCatalog(s.catalog, &analysis.RankLoadoutsInput{TargetIDs: []string{"veteran"}})
		s.Require().NoError(err)
		s.Equal("veteran", rankings[0].Target)
	})
}

func (s *CatalogRankTestSuite) TestImportInput() {
	input := analysis.NewImportCatalogInput(s.catalog)
	s.Require().Len(input.Models, 2)
	s.Equal("veteran", input.Models[0].Name())
	s.Equal("marine", input.Models[1].Name())
	s.Require().Len(input.Weapons, 2)
	s.Equal("power_sword", input.Weapons[0].Name())
	s.Len(input.Loadouts, 2)
}
