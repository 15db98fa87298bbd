// Package v1 serves the analysis API over HTTP with JSON bodies
package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/KirkDiggler/loadout-efficiency/internal/clients/catalogfile"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
)

// maxBodyBytes bounds request bodies, catalog uploads included
const maxBodyBytes = 4 << 20

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	AnalysisService analysis.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.AnalysisService == nil {
		return errors.InvalidArgument("analysis service is required")
	}
	return nil
}

// Handler implements the HTTP API
type Handler struct {
	analysisService analysis.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		analysisService: cfg.AnalysisService,
	}, nil
}

// Routes returns the router serving every endpoint, wrapped in logging and
// panic recovery
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/damage", h.CalculateDamage).Methods(http.MethodPost)
	api.HandleFunc("/rankings", h.RankLoadouts).Methods(http.MethodPost)
	api.HandleFunc("/catalog", h.ImportCatalog).Methods(http.MethodPut)
	api.HandleFunc("/reports", h.ListReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id}", h.GetReport).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, errors.NotFoundf("no route for %s %s", req.Method, req.URL.Path))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeStatusError(w, http.StatusMethodNotAllowed, errors.InvalidArgumentf("%s not allowed on %s", req.Method, req.URL.Path))
	})

	r.Use(recoverPanics, logRequests)
	return r
}

// Health reports that the server is up
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CalculateDamage computes the expected damage of one attacker against one
// target
func (h *Handler) CalculateDamage(w http.ResponseWriter, r *http.Request) {
	var req DamageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	output, err := h.analysisService.CalculateDamage(r.Context(), &analysis.CalculateDamageInput{
		AttackerID: req.Attacker,
		TargetID:   req.Target,
		WeaponIDs:  req.Weapons,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, damageResponseFromOutput(output))
}

// RankLoadouts ranks stored loadouts against targets
func (h *Handler) RankLoadouts(w http.ResponseWriter, r *http.Request) {
	var req RankingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	output, err := h.analysisService.RankLoadouts(r.Context(), &analysis.RankLoadoutsInput{
		LoadoutIDs: req.Loadouts,
		TargetIDs:  req.Targets,
		TargetGrid: req.TargetGrid,
		BestOnly:   req.BestOnly,
		Persist:    req.Persist,
		ReportName: req.ReportName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if output.ReportID != "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, rankingResponseFromOutput(output))
}

// ImportCatalog stores every entry of a YAML catalog document
func (h *Handler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := catalogfile.Parse(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}

	output, err := h.analysisService.ImportCatalog(r.Context(), analysis.NewImportCatalogInput(cat))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ImportResponse{
		Models:   output.ModelsStored,
		Weapons:  output.WeaponsStored,
		Loadouts: output.LoadoutsStored,
	})
}

// GetReport returns a stored ranking
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	output, err := h.analysisService.GetReport(r.Context(), &analysis.GetReportInput{
		ReportID: mux.Vars(r)["id"],
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reportFromEntity(output.Report))
}

// ListReports lists stored rankings, newest first
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	input := &analysis.ListReportsInput{}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			writeError(w, r, errors.InvalidArgumentf("limit %q is not a number", limit))
			return
		}
		input.Limit = n
	}

	output, err := h.analysisService.ListReports(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := ReportListResponse{Reports: make([]Report, 0, len(output.Reports))}
	for _, report := range output.Reports {
		resp.Reports = append(resp.Reports, reportFromEntity(report))
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body")
	}
	return nil
}
