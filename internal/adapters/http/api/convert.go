package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	service "github.com/okian/skillrate/internal/app"
	"github.com/okian/skillrate/internal/domain/model"
	"github.com/okian/skillrate/pkg/logger"
	"github.com/okian/skillrate/pkg/metrics"
)

// ConvertDependencies defines the conversion operations used by handlers.
type ConvertDependencies interface {
	Convert(ctx context.Context, in model.Rating, to model.System) (model.Rating, error)
	ConvertBatch(ctx context.Context, reqs []service.Request) (service.BatchResult, error)
}

// ConvertHandler handles single and batch conversions.
type ConvertHandler struct {
	deps     ConvertDependencies
	maxBytes int64
	logger   logger.Logger
}

// NewConvertHandler creates a new convert handler.
func NewConvertHandler(deps ConvertDependencies, maxBytes int64, l logger.Logger) *ConvertHandler {
	return &ConvertHandler{deps: deps, maxBytes: maxBytes, logger: l}
}

// convertRequest mirrors the OpenAPI schema for POST /api/v1/convert.
type convertRequest struct {
	Rating *model.Rating `json:"rating"`
	To     string        `json:"to"`
}

func (c convertRequest) validate() error {
	switch {
	case c.Rating == nil:
		return errors.New("missing rating")
	case strings.TrimSpace(string(c.Rating.System)) == "":
		return errors.New("missing rating.system")
	case strings.TrimSpace(c.To) == "":
		return errors.New("missing to")
	}
	return nil
}

// request normalizes system names so "Glicko-2" and "glicko2" are equal.
// Unparseable names are passed through for the service to reject.
func (c convertRequest) request() service.Request {
	in := *c.Rating
	in.System = normalize(string(in.System))
	return service.Request{Rating: in, To: normalize(c.To)}
}

func normalize(name string) model.System {
	if sys, err := model.ParseSystem(name); err == nil {
		return sys
	}
	return model.System(name)
}

type batchRequest struct {
	Items []convertRequest `json:"items"`
}

type batchItem struct {
	Rating *model.Rating `json:"rating,omitempty"`
	Error  *errorBody    `json:"error,omitempty"`
}

type batchResponse struct {
	BatchID string      `json:"batch_id"`
	Results []batchItem `json:"results"`
}

// HandleConvert handles POST /api/v1/convert requests.
func (h *ConvertHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := h.decode(w, r, &req); err != nil {
		status, code := decodeStatus(err)
		writeError(w, status, code, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	sr := req.request()
	out, err := h.deps.Convert(r.Context(), sr.Rating, sr.To)
	if err != nil {
		status, code := classify(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error(r.Context(), "conversion failed", logger.Error(err))
			metrics.RecordErrorByComponent("http", code)
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleBatch handles POST /api/v1/convert/batch requests.
func (h *ConvertHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := h.decode(w, r, &req); err != nil {
		status, code := decodeStatus(err)
		writeError(w, status, code, err)
		return
	}

	reqs := make([]service.Request, len(req.Items))
	for i, item := range req.Items {
		if err := item.validate(); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Errorf("items[%d]: %w", i, err))
			return
		}
		reqs[i] = item.request()
	}

	res, err := h.deps.ConvertBatch(r.Context(), reqs)
	if err != nil {
		status, code := classify(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error(r.Context(), "batch conversion failed", logger.Error(err))
			metrics.RecordErrorByComponent("http", code)
		}
		writeError(w, status, code, err)
		return
	}

	out := batchResponse{BatchID: res.BatchID, Results: make([]batchItem, len(res.Results))}
	for i, item := range res.Results {
		if item.Err != nil {
			_, code := classify(item.Err)
			out.Results[i] = batchItem{Error: &errorBody{Code: code, Message: item.Err.Error()}}
			continue
		}
		out.Results[i] = batchItem{Rating: item.Rating}
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeStatus maps a body that overran the size limit to 413 and any other
// decode failure to 400.
func decodeStatus(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, codeBodyTooLarge
	}
	return http.StatusBadRequest, codeBadRequest
}

// decode reads one JSON document from the body, rejecting unknown fields
// and trailing data.
func (h *ConvertHandler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %w", ErrBadRequest, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after json body", ErrBadRequest)
	}
	return nil
}
