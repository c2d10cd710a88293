package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/skillrate/internal/app"
	"github.com/okian/skillrate/internal/domain/conversion"
	"github.com/okian/skillrate/internal/domain/model"
)

// CatalogDependencies describes the read-only system catalog.
type CatalogDependencies interface {
	Default(ctx context.Context, sys model.System) (model.Rating, error)
	Systems(ctx context.Context) []service.SystemInfo
	Conversions(ctx context.Context) []conversion.Pair
}

// SystemsHandler serves the system catalog.
type SystemsHandler struct {
	deps CatalogDependencies
}

// NewSystemsHandler creates a new systems handler.
func NewSystemsHandler(deps CatalogDependencies) *SystemsHandler {
	return &SystemsHandler{deps: deps}
}

type systemsResponse struct {
	Systems []service.SystemInfo `json:"systems"`
}

type conversionsResponse struct {
	Conversions []conversion.Pair `json:"conversions"`
}

// HandleSystems handles GET /api/v1/systems requests.
func (h *SystemsHandler) HandleSystems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, systemsResponse{Systems: h.deps.Systems(r.Context())})
}

// HandleDefault handles GET /api/v1/systems/{system}/default requests.
func (h *SystemsHandler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	sys, err := model.ParseSystem(chi.URLParam(r, "system"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeUnknownSystem, err)
		return
	}
	rt, err := h.deps.Default(r.Context(), sys)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// HandleConversions handles GET /api/v1/conversions requests.
func (h *SystemsHandler) HandleConversions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, conversionsResponse{Conversions: h.deps.Conversions(r.Context())})
}
