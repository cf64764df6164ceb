// Package triageapi exposes the triage service over HTTP.
package triageapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/linnemanlabs/voxa/internal/symptom"
	"github.com/linnemanlabs/voxa/internal/triage"
)

// TriageService defines the business operations triageapi needs.
type TriageService interface {
	Classify(ctx context.Context, in *triage.Input) (*triage.Result, error)
	Strategy() string
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger  log.Logger
	svc     TriageService
	catalog *symptom.Catalog
}

// New creates a new API handler.
func New(logger log.Logger, svc TriageService) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("triage service is required"))
	}
	return &API{
		logger:  logger,
		svc:     svc,
		catalog: symptom.DefaultCatalog(),
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/triage", a.handleClassify)
		r.Get("/catalog", a.handleCatalog)
	})
}

// catalogResponse lists the selectable flags, sorted.
type catalogResponse struct {
	Red      []symptom.Flag `json:"red"`
	Yellow   []symptom.Flag `json:"yellow"`
	Strategy string         `json:"strategy"`
}

func (a *API) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Red:      a.catalog.Red().Sorted(),
		Yellow:   a.catalog.Yellow().Sorted(),
		Strategy: a.svc.Strategy(),
	})
}

func (a *API) handleClassify(w http.ResponseWriter, r *http.Request) {
	var in triage.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	span := trace.SpanFromContext(r.Context())

	result, err := a.svc.Classify(r.Context(), &in)
	if err != nil {
		var ve *triage.ValidationError
		if errors.As(err, &ve) {
			span.SetAttributes(attribute.String("voxa.triage.invalid_field", ve.Field))
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		a.logger.Error(r.Context(), err, "failed to classify submission")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	span.SetAttributes(
		attribute.String("voxa.triage.id", result.ID),
		attribute.String("voxa.triage.tier", string(result.Tier)),
	)

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nothing to do with errors here
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
