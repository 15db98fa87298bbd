package v1_test

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	v1 "github.com/KirkDiggler/loadout-efficiency/internal/handlers/api/v1"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
	analysismock "github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *analysismock.MockService
	server      *httptest.Server
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = analysismock.NewMockService(s.ctrl)

	handler, err := v1.NewHandler(&v1.HandlerConfig{AnalysisService: s.mockService})
	s.Require().NoError(err)
	s.server = httptest.NewServer(handler.Routes())
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, path, body string) *http.Response {
	req, err := http.NewRequestWithContext(context.Background(), method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *HandlerTestSuite) decode(resp *http.Response, v any) {
	s.Equal("application/json", resp.Header.Get("Content-Type"))
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *HandlerTestSuite) TestNewHandler_MissingService() {
	handler, err := v1.NewHandler(&v1.HandlerConfig{})
	s.Nil(handler)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestHealth() {
	resp := s.do(http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.decode(resp, &body)
	s.Equal("ok", body["status"])
}

func (s *HandlerTestSuite) TestCalculateDamage() {
	s.mockService.EXPECT().
		CalculateDamage(gomock.Any(), &analysis.CalculateDamageInput{
			AttackerID: "veteran",
			TargetID:   "marine",
			WeaponIDs:  []string{"thunder_hammer"},
		}).
		Return(&analysis.CalculateDamageOutput{
			Attacker:   "veteran",
			Target:     "marine",
			Points:     big.NewRat(34, 1),
			Output:     big.NewRat(10, 3),
			Efficiency: big.NewRat(5, 51),
			Breakdowns: []*engine.DamageBreakdown{{
				Weapon:    "thunder_hammer",
				HitStat:   loadout.StatWeaponSkill,
				HitChance: big.NewRat(2, 3),
				Output:    big.NewRat(10, 3),
			}},
		}, nil)

	resp := s.do(http.MethodPost, "/v1/damage",
		`{"attacker":"veteran","target":"marine","weapons":["thunder_hammer"]}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body v1.DamageResponse
	s.decode(resp, &body)
	s.Equal("10/3", body.Output)
	s.Equal("5/51", body.Efficiency)
	s.InDelta(5.0/51.0, body.EfficiencyFloat, 1e-12)
	s.Require().Len(body.Breakdowns, 1)
	s.Equal("WS", body.Breakdowns[0].HitStat)
	s.Equal("2/3", body.Breakdowns[0].HitChance)
}

func (s *HandlerTestSuite) TestCalculateDamage_BadBody() {
	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `attacker=veteran`},
		{name: "unknown field", body: `{"attacker":"veteran","shooter":"x"}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp := s.do(http.MethodPost, "/v1/damage", tc.body)
			s.Equal(http.StatusBadRequest, resp.StatusCode)

			var body v1.ErrorResponse
			s.decode(resp, &body)
			s.Equal("INVALID_ARGUMENT", body.Code)
		})
	}
}

func (s *HandlerTestSuite) TestErrorStatusMapping() {
	testCases := []struct {
		name     string
		err      error
		status   int
		grpcCode string
		reason   string
	}{
		{
			name:     "not found",
			err:      errors.NotFound("model ghost not found"),
			status:   http.StatusNotFound,
			grpcCode: "NotFound",
		},
		{
			name:     "zero cost",
			err:      errors.Wrap(engine.ErrZeroCost, "failed to calculate efficiency"),
			status:   http.StatusUnprocessableEntity,
			grpcCode: "FailedPrecondition",
			reason:   engine.ReasonZeroCost,
		},
		{
			name:     "threshold out of range",
			err:      errors.OutOfRange("point not in range").WithReason("POINT_NOT_IN_RANGE"),
			status:   http.StatusBadRequest,
			grpcCode: "OutOfRange",
			reason:   "POINT_NOT_IN_RANGE",
		},
		{
			name:     "unavailable",
			err:      errors.Unavailable("redis is down"),
			status:   http.StatusServiceUnavailable,
			grpcCode: "Unavailable",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().
				CalculateDamage(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			resp := s.do(http.MethodPost, "/v1/damage", `{"attacker":"a","target":"t","weapons":["w"]}`)
			s.Equal(tc.status, resp.StatusCode)

			var body v1.ErrorResponse
			s.decode(resp, &body)
			s.Equal(errors.GetCode(tc.err).String(), body.Code)
			s.Equal(tc.grpcCode, body.GRPCCode)
			s.Equal(tc.reason, body.Reason)
		})
	}
}

func (s *HandlerTestSuite) TestInternalErrorsAreHidden() {
	s.mockService.EXPECT().
		GetReport(gomock.Any(), &analysis.GetReportInput{ReportID: "r1"}).
		Return(nil, errors.Internal("database file is corrupt"))

	resp := s.do(http.MethodGet, "/v1/reports/r1", "")
	s.Equal(http.StatusInternalServerError, resp.StatusCode)

	var body v1.ErrorResponse
	s.decode(resp, &body)
	s.Equal("internal error", body.Message)
	s.Equal("Internal", body.GRPCCode)
}

func (s *HandlerTestSuite) TestRankLoadouts() {
	s.mockService.EXPECT().
		RankLoadouts(gomock.Any(), &analysis.RankLoadoutsInput{
			TargetGrid: &loadout.TargetGridConfig{
				Wounds:    loadout.Range{Min: 1, Max: 1},
				Toughness: loadout.Range{Min: 4, Max: 4},
				Saves:     loadout.Range{Min: 3, Max: 3},
			},
			BestOnly:   true,
			Persist:    true,
			ReportName: "melee",
		}).
		Return(&analysis.RankLoadoutsOutput{
			ReportID: "report_1",
			Rankings: []*analysis.TargetRanking{{
				Target: "W1 T4 Sv3+",
				Rows: []*loadout.RankingRow{{
					Target:     "W1 T4 Sv3+",
					Loadout:    "hammer",
					Points:     big.NewRat(34, 1),
					Output:     big.NewRat(10, 3),
					Efficiency: big.NewRat(5, 51),
				}},
			}},
		}, nil)

	resp := s.do(http.MethodPost, "/v1/rankings", `{
		"target_grid": {"wounds": {"min": 1, "max": 1}, "toughness": {"min": 4, "max": 4}, "saves": {"min": 3, "max": 3}},
		"best_only": true,
		"persist": true,
		"report_name": "melee"
	}`)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var body v1.RankingResponse
	s.decode(resp, &body)
	s.Equal("report_1", body.ReportID)
	s.Require().Len(body.Rankings, 1)
	s.Require().Len(body.Rankings[0].Rows, 1)
	s.Equal("hammer", body.Rankings[0].Rows[0].Loadout)
	s.Equal("34", body.Rankings[0].Rows[0].Points)
}

func (s *HandlerTestSuite) TestImportCatalog() {
	s.mockService.EXPECT().
		ImportCatalog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *analysis.ImportCatalogInput) (*analysis.ImportCatalogOutput, error) {
			s.Require().Len(input.Weapons, 1)
			s.Equal("power_sword", input.Weapons[0].Name())
			return &analysis.ImportCatalogOutput{ModelsStored: 1, WeaponsStored: 1, LoadoutsStored: 1}, nil
		})

	resp := s.do(http.MethodPut, "/v1/catalog", `
models:
  - name: veteran
    points: 18
    stats: {WS: 3, S: 4, A: 2}
weapons:
  - name: power_sword
    points: 4
    stats: {is_melee: true, D: 1}
loadouts:
  - model: veteran
    weapons: [power_sword]
`)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body v1.ImportResponse
	s.decode(resp, &body)
	s.Equal(v1.ImportResponse{Models: 1, Weapons: 1, Loadouts: 1}, body)
}

func (s *HandlerTestSuite) TestImportCatalog_UnknownWeapon() {
	resp := s.do(http.MethodPut, "/v1/catalog", `
models:
  - name: veteran
    stats: {WS: 3}
loadouts:
  - model: veteran
    weapons: [lascannon]
`)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestReports() {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Run("get", func() {
		s.mockService.EXPECT().
			GetReport(gomock.Any(), &analysis.GetReportInput{ReportID: "report_1"}).
			Return(&analysis.GetReportOutput{Report: &loadout.Report{
				ID:        "report_1",
				Name:      "melee",
				CreatedAt: created,
				Rows: []*loadout.RankingRow{{
					Target: "marine", Loadout: "sword",
					Points: big.NewRat(22, 1), Output: big.NewRat(2, 3), Efficiency: big.NewRat(1, 33),
				}},
			}}, nil)

		resp := s.do(http.MethodGet, "/v1/reports/report_1", "")
		s.Equal(http.StatusOK, resp.StatusCode)

		var body v1.Report
		s.decode(resp, &body)
		s.Equal("melee", body.Name)
		s.True(created.Equal(body.CreatedAt))
		s.Require().Len(body.Rows, 1)
		s.Equal("1/33", body.Rows[0].Efficiency)
	})

	s.Run("missing", func() {
		s.mockService.EXPECT().
			GetReport(gomock.Any(), &analysis.GetReportInput{ReportID: "nope"}).
			Return(nil, errors.NotFound("report nope not found"))

		resp := s.do(http.MethodGet, "/v1/reports/nope", "")
		s.Equal(http.StatusNotFound, resp.StatusCode)
	})

	s.Run("list", func() {
		s.mockService.EXPECT().
			ListReports(gomock.Any(), &analysis.ListReportsInput{Limit: 2}).
			Return(&analysis.ListReportsOutput{Reports: []*loadout.Report{{ID: "report_2"}, {ID: "report_1"}}}, nil)

		resp := s.do(http.MethodGet, "/v1/reports?limit=2", "")
		s.Equal(http.StatusOK, resp.StatusCode)

		var body v1.ReportListResponse
		s.decode(resp, &body)
		s.Len(body.Reports, 2)
	})

	s.Run("bad limit", func() {
		resp := s.do(http.MethodGet, "/v1/reports?limit=many", "")
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *HandlerTestSuite) TestRouting() {
	resp := s.do(http.MethodGet, "/v1/damage", "")
	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)

	resp = s.do(http.MethodGet, "/v2/anything", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestRecoversFromPanics() {
	s.mockService.EXPECT().
		ListReports(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *analysis.ListReportsInput) (*analysis.ListReportsOutput, error) {
			panic("boom")
		})

	resp := s.do(http.MethodGet, "/v1/reports", "")
	s.Equal(http.StatusInternalServerError, resp.StatusCode)
}
