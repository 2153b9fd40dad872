package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/fasbooks/src/logger"
	"github.com/username/fasbooks/src/services"
	"github.com/username/fasbooks/src/utils"
)

const ckStandardsInfo = "standards_info_response"

// cachedStandards is the precomputed /api/standards response body.
type cachedStandards struct {
	Body []byte
	ETag string
}

type StandardsHandler struct {
	service       services.ProcessingService
	responseCache *cache.Cache
	ttl           time.Duration
}

func NewStandardsHandler(service services.ProcessingService, responseCache *cache.Cache, ttl time.Duration) *StandardsHandler {
	return &StandardsHandler{service: service, responseCache: responseCache, ttl: ttl}
}

// HandleGetStandards serves the catalog metadata. The catalog is immutable
// for the process lifetime, so the serialized response is cached and served
// with an ETag for conditional requests.
func (h *StandardsHandler) HandleGetStandards(w http.ResponseWriter, r *http.Request) {
	entry, err := h.getCachedResponse()
	if err != nil {
		utils.SendJSONError(w, "failed to serialize standards", "", http.StatusInternalServerError)
		return
	}

	if match := r.Header.Get("If-None-Match"); match != "" && match == entry.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", entry.ETag)
	if _, writeErr := w.Write(entry.Body); writeErr != nil {
		logger.L.Error("Failed to write standards response", "error", writeErr)
	}
}

func (h *StandardsHandler) getCachedResponse() (*cachedStandards, error) {
	if cached, found := h.responseCache.Get(ckStandardsInfo); found {
		logger.L.Debug("Cache hit for standards info")
		return cached.(*cachedStandards), nil
	}
	logger.L.Info("Cache miss for standards info, serializing catalog")

	infos := h.service.StandardsInfo()
	body, err := json.Marshal(infos)
	if err != nil {
		return nil, err
	}
	etag, err := utils.GenerateETag(infos)
	if err != nil {
		return nil, err
	}

	entry := &cachedStandards{Body: body, ETag: etag}
	h.responseCache.Set(ckStandardsInfo, entry, h.ttl)
	return entry, nil
}
