package analysis_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog"
	catalogmock "github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog/mock"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/report"
	reportmock "github.com/KirkDiggler/loadout-efficiency/internal/repositories/report/mock"
	"github.com/KirkDiggler/loadout-efficiency/internal/testutils"
	"github.com/KirkDiggler/loadout-efficiency/internal/testutils/builders"
	"github.com/KirkDiggler/loadout-efficiency/internal/testutils/mocks"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockCatalogRepo *catalogmock.MockRepository
	mockReportRepo  *reportmock.MockRepository
	orchestrator    analysis.Service
	ctx             context.Context

	veteran       *loadout.Model
	marine        *loadout.Model
	powerSword    *loadout.Weapon
	thunderHammer *loadout.Weapon
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCatalogRepo = catalogmock.NewMockRepository(s.ctrl)
	s.mockReportRepo = reportmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	orchestrator, err := analysis.NewOrchestrator(&analysis.Config{
		CatalogRepo: s.mockCatalogRepo,
		ReportRepo:  s.mockReportRepo,
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator

	s.veteran = testutils.Veteran(s.T())
	s.marine = testutils.MarineTarget(s.T())
	s.powerSword = testutils.PowerSword(s.T())
	s.thunderHammer = testutils.ThunderHammer(s.T())
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) swordLoadout() *loadout.Loadout {
	return &loadout.Loadout{Model: s.veteran, Weapons: []*loadout.Weapon{s.powerSword}}
}

func (s *OrchestratorTestSuite) hammerLoadout() *loadout.Loadout {
	return &loadout.Loadout{Model: s.veteran, Weapons: []*loadout.Weapon{s.thunderHammer}}
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_MissingCatalog() {
	orchestrator, err := analysis.NewOrchestrator(&analysis.Config{})
	s.Nil(orchestrator)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "CatalogRepo")
}

func (s *OrchestratorTestSuite) TestCalculateDamage_Success() {
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.veteran)
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)
	mocks.ExpectWeaponGet(s.ctx, s.mockCatalogRepo, s.thunderHammer)

	output, err := s.orchestrator.CalculateDamage(s.ctx, &analysis.CalculateDamageInput{
		AttackerID: testutils.VeteranName,
		TargetID:   testutils.MarineTargetName,
		WeaponIDs:  []string{testutils.ThunderHammerName},
	})

	s.Require().NoError(err)
	s.Equal(testutils.VeteranName, output.Attacker)
	s.Equal(0, big.NewRat(34, 1).Cmp(output.Points))
	s.Equal(0, big.NewRat(10, 3).Cmp(output.Output))
	s.Equal(0, big.NewRat(5, 51).Cmp(output.Efficiency))
	s.Require().Len(output.Breakdowns, 1)
	s.Equal(loadout.StatWeaponSkill, output.Breakdowns[0].HitStat)
}

func (s *OrchestratorTestSuite) TestCalculateDamage_SameWeaponTwice() {
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.veteran)
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)
	// fetched once, counted twice
	mocks.ExpectWeaponGet(s.ctx, s.mockCatalogRepo, s.powerSword)

	output, err := s.orchestrator.CalculateDamage(s.ctx, &analysis.CalculateDamageInput{
		AttackerID: testutils.VeteranName,
		TargetID:   testutils.MarineTargetName,
		WeaponIDs:  []string{testutils.PowerSwordName, testutils.PowerSwordName},
	})

	s.Require().NoError(err)
	s.Equal(0, big.NewRat(4, 3).Cmp(output.Output))
	s.Equal(0, big.NewRat(26, 1).Cmp(output.Points))
	s.Len(output.Breakdowns, 2)
}

func (s *OrchestratorTestSuite) TestCalculateDamage_Validation() {
	testCases := []struct {
		name   string
		input  *analysis.CalculateDamageInput
		errMsg string
	}{
		{name: "nil input", input: nil, errMsg: "input is required"},
		{
			name:   "missing attacker",
			input:  &analysis.CalculateDamageInput{TargetID: "t", WeaponIDs: []string{"w"}},
			errMsg: "AttackerID",
		},
		{
			name:   "missing weapons",
			input:  &analysis.CalculateDamageInput{AttackerID: "a", TargetID: "t"},
			errMsg: "WeaponIDs",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			output, err := s.orchestrator.CalculateDamage(s.ctx, tc.input)
			s.Nil(output)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *OrchestratorTestSuite) TestCalculateDamage_WeaponNotFound() {
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.veteran)
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)
	mocks.ExpectCatalogGetError(s.ctx, s.mockCatalogRepo, loadout.EntityTypeWeapon, "lascannon",
		errors.NotFound("weapon lascannon not found"))

	output, err := s.orchestrator.CalculateDamage(s.ctx, &analysis.CalculateDamageInput{
		AttackerID: testutils.VeteranName,
		TargetID:   testutils.MarineTargetName,
		WeaponIDs:  []string{"lascannon"},
	})

	s.Nil(output)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "failed to get weapon lascannon")
}

func (s *OrchestratorTestSuite) TestCalculateDamage_ZeroCost() {
	conscript := builders.NewModelBuilder("conscript").
		WithStat(loadout.StatBallisticSkill, 4).
		WithStat(loadout.StatStrength, 3).
		WithStat(loadout.StatAttacks, 1).
		Build(s.T())
	grenadier := &loadout.Loadout{Model: conscript, Weapons: []*loadout.Weapon{testutils.FragGrenade(s.T())}}
	mocks.ExpectLoadoutResolution(s.ctx, s.mockCatalogRepo, grenadier)
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)

	output, err := s.orchestrator.CalculateDamage(s.ctx, &analysis.CalculateDamageInput{
		AttackerID: "conscript",
		TargetID:   testutils.MarineTargetName,
		WeaponIDs:  []string{testutils.FragGrenadeName},
	})
	s.Nil(output)
	s.True(errors.Is(err, engine.ErrZeroCost))
}

func (s *OrchestratorTestSuite) TestCalculateDamage_AttackerWithoutProfile() {
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)
	mocks.ExpectWeaponGet(s.ctx, s.mockCatalogRepo, s.powerSword)

	// the marine fixture has no WS to hit with
	_, err := s.orchestrator.CalculateDamage(s.ctx, &analysis.CalculateDamageInput{
		AttackerID: testutils.MarineTargetName,
		TargetID:   testutils.MarineTargetName,
		WeaponIDs:  []string{testutils.PowerSwordName},
	})
	s.Require().Error(err)
	s.True(errors.Is(err, loadout.ErrUnknownStat))
}

func (s *OrchestratorTestSuite) TestRankLoadouts_OrdersByEfficiency() {
	mocks.ExpectLoadoutList(s.ctx, s.mockCatalogRepo, s.swordLoadout(), s.hammerLoadout())
	mocks.ExpectLoadoutResolution(s.ctx, s.mockCatalogRepo, s.swordLoadout(), s.hammerLoadout())
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)

	output, err := s.orchestrator.RankLoadouts(s.ctx, &analysis.RankLoadoutsInput{
		TargetIDs: []string{testutils.MarineTargetName},
	})

	s.Require().NoError(err)
	s.Empty(output.ReportID)
	s.Require().Len(output.Rankings, 1)
	ranking := output.Rankings[0]
	s.Equal(testutils.MarineTargetName, ranking.Target)
	s.Require().Len(ranking.Rows, 2)
	s.Equal(s.hammerLoadout().Label(), ranking.Rows[0].Loadout)
	s.Equal(0, big.NewRat(5, 51).Cmp(ranking.Rows[0].Efficiency))
	s.Equal(s.swordLoadout().Label(), ranking.Rows[1].Loadout)
	s.Equal(0, big.NewRat(1, 33).Cmp(ranking.Rows[1].Efficiency))
}

func (s *OrchestratorTestSuite) TestRankLoadouts_BestOnlyWithGrid() {
	sword := s.swordLoadout()
	sword.Name = "sword"
	s.mockCatalogRepo.EXPECT().
		GetLoadout(s.ctx, catalog.GetLoadoutInput{ID: "sword"}).
		Return(&catalog.GetLoadoutOutput{Loadout: sword.Definition()}, nil)
	mocks.ExpectLoadoutResolution(s.ctx, s.mockCatalogRepo, sword)

	output, err := s.orchestrator.RankLoadouts(s.ctx, &analysis.RankLoadoutsInput{
		LoadoutIDs: []string{"sword"},
		TargetGrid: &loadout.TargetGridConfig{
			Wounds:    loadout.Range{Min: 1, Max: 2},
			Toughness: loadout.Range{Min: 4, Max: 4},
			Saves:     loadout.Range{Min: 3, Max: 3},
		},
		BestOnly: true,
	})

	s.Require().NoError(err)
	s.Require().Len(output.Rankings, 2)
	s.Equal(loadout.TargetName(1, 4, 3), output.Rankings[0].Target)
	s.Equal(loadout.TargetName(2, 4, 3), output.Rankings[1].Target)
	for _, ranking := range output.Rankings {
		s.Require().Len(ranking.Rows, 1)
		s.Equal("sword", ranking.Rows[0].Loadout)
	}
}

func (s *OrchestratorTestSuite) TestRankLoadouts_Persist() {
	mocks.ExpectLoadoutList(s.ctx, s.mockCatalogRepo, s.swordLoadout())
	mocks.ExpectLoadoutResolution(s.ctx, s.mockCatalogRepo, s.swordLoadout())
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)

	s.mockReportRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input report.CreateInput) (*report.CreateOutput, error) {
			s.Equal("melee", input.Name)
			s.Require().Len(input.Rows, 1)
			s.Equal(testutils.MarineTargetName, input.Rows[0].Target)
			return &report.CreateOutput{Report: &loadout.Report{ID: "report_1", Rows: input.Rows}}, nil
		})

	output, err := s.orchestrator.RankLoadouts(s.ctx, &analysis.RankLoadoutsInput{
		TargetIDs:  []string{testutils.MarineTargetName},
		Persist:    true,
		ReportName: "melee",
	})

	s.Require().NoError(err)
	s.Equal("report_1", output.ReportID)
}

func (s *OrchestratorTestSuite) TestRankLoadouts_PersistWithoutReportRepo() {
	orchestrator, err := analysis.NewOrchestrator(&analysis.Config{CatalogRepo: s.mockCatalogRepo})
	s.Require().NoError(err)

	output, err := orchestrator.RankLoadouts(s.ctx, &analysis.RankLoadoutsInput{Persist: true})
	s.Nil(output)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestRankLoadouts_ListFails() {
	s.mockCatalogRepo.EXPECT().
		ListLoadouts(s.ctx, catalog.ListLoadoutsInput{}).
		Return(nil, errors.Unavailable("redis is down"))

	output, err := s.orchestrator.RankLoadouts(s.ctx, &analysis.RankLoadoutsInput{})
	s.Nil(output)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
	s.Contains(err.Error(), "failed to list loadouts")
}

func (s *OrchestratorTestSuite) TestRankLoadouts_NoLoadouts() {
	mocks.ExpectLoadoutList(s.ctx, s.mockCatalogRepo)

	output, err := s.orchestrator.RankLoadouts(s.ctx, &analysis.RankLoadoutsInput{})
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestImportCatalog() {
	hammer := s.hammerLoadout()

	gomock.InOrder(
		s.mockCatalogRepo.EXPECT().
			PutModel(s.ctx, catalog.PutModelInput{Model: s.veteran}).
			Return(&catalog.PutModelOutput{ID: testutils.VeteranName}, nil),
		s.mockCatalogRepo.EXPECT().
			PutWeapon(s.ctx, catalog.PutWeaponInput{Weapon: s.thunderHammer}).
			Return(&catalog.PutWeaponOutput{ID: testutils.ThunderHammerName}, nil),
		s.mockCatalogRepo.EXPECT().
			PutLoadout(s.ctx, catalog.PutLoadoutInput{Loadout: hammer.Definition()}).
			Return(&catalog.PutLoadoutOutput{ID: hammer.Label()}, nil),
	)

	output, err := s.orchestrator.ImportCatalog(s.ctx, &analysis.ImportCatalogInput{
		Models:   []*loadout.Model{s.veteran},
		Weapons:  []*loadout.Weapon{s.thunderHammer},
		Loadouts: []loadout.LoadoutDefinition{hammer.Definition()},
	})

	s.Require().NoError(err)
	s.Equal(&analysis.ImportCatalogOutput{ModelsStored: 1, WeaponsStored: 1, LoadoutsStored: 1}, output)
}

func (s *OrchestratorTestSuite) TestImportCatalog_MissingReference() {
	def := loadout.LoadoutDefinition{Model: "ghost", Weapons: []string{"nothing"}}
	s.mockCatalogRepo.EXPECT().
		PutLoadout(s.ctx, catalog.PutLoadoutInput{Loadout: def}).
		Return(nil, errors.NotFound("model ghost not found"))

	output, err := s.orchestrator.ImportCatalog(s.ctx, &analysis.ImportCatalogInput{
		Loadouts: []loadout.LoadoutDefinition{def},
	})
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetReport() {
	stored := &loadout.Report{ID: "report_1", Name: "melee"}
	s.mockReportRepo.EXPECT().
		Get(s.ctx, report.GetInput{ID: "report_1"}).
		Return(&report.GetOutput{Report: stored}, nil)

	output, err := s.orchestrator.GetReport(s.ctx, &analysis.GetReportInput{ReportID: "report_1"})
	s.Require().NoError(err)
	s.Equal(stored, output.Report)

	s.mockReportRepo.EXPECT().
		Get(s.ctx, report.GetInput{ID: "missing"}).
		Return(nil, errors.NotFound("report missing not found"))

	_, err = s.orchestrator.GetReport(s.ctx, &analysis.GetReportInput{ReportID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListReports() {
	s.mockReportRepo.EXPECT().
		List(s.ctx, report.ListInput{Limit: 5}).
		Return(&report.ListOutput{Reports: []*loadout.Report{{ID: "report_2"}, {ID: "report_1"}}}, nil)

	output, err := s.orchestrator.ListReports(s.ctx, &analysis.ListReportsInput{Limit: 5})
	s.Require().NoError(err)
	s.Len(output.Reports, 2)
}

func (s *OrchestratorTestSuite) TestCalculateDamage_MatchesEngine() {
	expected, err := engine.AverageDamageEfficiency(s.veteran, s.marine, s.powerSword)
	s.Require().NoError(err)

	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.veteran)
	mocks.ExpectModelGet(s.ctx, s.mockCatalogRepo, s.marine)
	mocks.ExpectWeaponGet(s.ctx, s.mockCatalogRepo, s.powerSword)

	output, err := s.orchestrator.CalculateDamage(s.ctx, &analysis.CalculateDamageInput{
		AttackerID: testutils.VeteranName,
		TargetID:   testutils.MarineTargetName,
		WeaponIDs:  []string{testutils.PowerSwordName},
	})
	s.Require().NoError(err)
	s.Equal(0, expected.Cmp(output.Efficiency))
}
