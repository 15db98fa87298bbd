package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the error code to an HTTP status. Internal details are
// logged, never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetCode(err).HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeStatusError(w, status, err)
}

func writeStatusError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{
		Code:     errors.GetCode(err).String(),
		GRPCCode: errors.Status(err).Code().String(),
		Message:  errors.GetMessage(err),
		Reason:   errors.GetReason(err),
	}
	if status >= http.StatusInternalServerError && errors.GetCode(err) == errors.CodeInternal {
		resp.Message = "internal error"
	}
	writeJSON(w, status, resp)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Info("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				writeError(w, r, errors.Internal(fmt.Sprintf("panic: %v", p)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
