package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/fasbooks/src/assembler"
	"github.com/username/fasbooks/src/classifier"
	"github.com/username/fasbooks/src/engine"
	"github.com/username/fasbooks/src/logger"
	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/services"
	"github.com/username/fasbooks/src/utils"
)

// processRequest is the wire shape of POST /api/process. The facts must
// already be normalized by the external extraction layer; this service never
// consumes raw text.
type processRequest struct {
	Facts     *models.TransactionFacts `json:"facts"`
	Visualize *bool                    `json:"visualize,omitempty"`
}

type ProcessHandler struct {
	service  services.ProcessingService
	maxBytes int64
}

func NewProcessHandler(service services.ProcessingService, maxBytes int64) *ProcessHandler {
	return &ProcessHandler{service: service, maxBytes: maxBytes}
}

func (h *ProcessHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	var req processRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Facts == nil {
		utils.SendJSONError(w, "missing facts", "request body must carry a facts object", http.StatusBadRequest)
		return
	}
	visualize := true
	if req.Visualize != nil {
		visualize = *req.Visualize
	}

	result, err := h.service.Process(req.Facts, visualize)
	if err != nil {
		h.writeProcessError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(result); encodeErr != nil {
		logger.L.Error("Failed to encode processing result", "error", encodeErr)
	}
}

// writeProcessError maps the core's error taxonomy onto HTTP statuses:
// input and classification failures are 400s with the descriptive message;
// an internal consistency failure is logged in full and answered with a
// generic 500.
func (h *ProcessHandler) writeProcessError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var validationErr *models.ValidationError
	var classificationErr *classifier.ClassificationError
	var unsupportedErr *engine.UnsupportedFactsError
	var consistencyErr *assembler.InternalConsistencyError

	switch {
	case errors.As(err, &validationErr):
		utils.SendJSONError(w, "invalid transaction facts", validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &classificationErr):
		utils.SendJSONError(w, "unsupported transaction type", classificationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &unsupportedErr):
		utils.SendJSONError(w, "insufficient transaction facts", unsupportedErr.Error(), http.StatusBadRequest)
	case errors.As(err, &consistencyErr):
		// Strategy defect. Log the detail, never expose it.
		log.Error("Internal consistency failure", "error", consistencyErr)
		utils.SendJSONError(w, "internal processing error", "", http.StatusInternalServerError)
	default:
		log.Error("Unexpected processing error", "error", err)
		utils.SendJSONError(w, "internal processing error", "", http.StatusInternalServerError)
	}
}
