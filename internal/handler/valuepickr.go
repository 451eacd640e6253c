package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/cache"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/intel"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/scraper"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/util"

	"github.com/gin-gonic/gin"
)

// ValuePickrHandler refreshes and clears the social-sentiment field group,
// delegating the actual forum scrape to the external service.
type ValuePickrHandler struct {
	Intel   *intel.Store
	Scraper scraper.Service
	Cache   *cache.Client
}

func NewValuePickrHandler(store *intel.Store, svc scraper.Service, c *cache.Client) *ValuePickrHandler {
	return &ValuePickrHandler{Intel: store, Scraper: svc, Cache: c}
}

type refreshReq struct {
	URL string `json:"url"`
}

// Refresh scrapes ValuePickr for a symbol and upserts the result as the
// symbol's social sentiment. Source priority: explicit url from the body,
// then the topic_url stored in the existing social sentiment, then a forum
// search by symbol.
func (h *ValuePickrHandler) Refresh(c *gin.Context) {
	symbol, err := util.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "symbol is required")
		return
	}

	// body is optional; an absent or empty body means no explicit url
	var req refreshReq
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.URL != "" {
		if err := util.ValidateURL(req.URL); err != nil {
			util.Error(c, http.StatusBadRequest, "invalid url")
			return
		}
	}

	ctx := c.Request.Context()

	data, err := h.scrape(ctx, symbol, req.URL)
	if err != nil {
		log.Printf("valuepickr scrape %s: %v", symbol, err)
		util.Error(c, http.StatusInternalServerError, "scrape failed")
		return
	}
	if data == nil {
		util.Error(c, http.StatusNotFound, "no research found")
		return
	}

	if err := h.Intel.UpsertField(symbol, intel.FieldSocialSentiment, data); err != nil {
		log.Printf("upsert social sentiment %s: %v", symbol, err)
		util.Error(c, http.StatusInternalServerError, "could not save research")
		return
	}

	// drop any cached copy of the old record
	if err := h.Cache.Delete(ctx, intelCacheKey(symbol)); err != nil {
		log.Printf("invalidate cache %s: %v", symbol, err)
	}

	util.Success(c, util.Response{"data": json.RawMessage(data)})
}

// scrape picks the research source. An explicit url always wins over the
// stored topic_url.
func (h *ValuePickrHandler) scrape(ctx context.Context, symbol, explicitURL string) (json.RawMessage, error) {
	if explicitURL != "" {
		return h.Scraper.ResearchFromURL(ctx, explicitURL)
	}

	rec, err := h.Intel.Get(symbol)
	if err != nil && !errors.Is(err, intel.ErrNotFound) {
		return nil, err
	}
	if rec != nil {
		if topicURL := intel.TopicURL(rec.SocialSentiment); topicURL != "" {
			return h.Scraper.ResearchFromURL(ctx, topicURL)
		}
	}

	return h.Scraper.Research(ctx, symbol)
}

// Clear removes the social sentiment for a symbol, leaving fundamentals and
// news sentiment in place.
func (h *ValuePickrHandler) Clear(c *gin.Context) {
	symbol, err := util.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "symbol is required")
		return
	}

	if err := h.Intel.ClearSocialSentiment(symbol); err != nil {
		if errors.Is(err, intel.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "symbol not found")
			return
		}
		log.Printf("clear social sentiment %s: %v", symbol, err)
		util.Error(c, http.StatusInternalServerError, "could not clear research")
		return
	}

	if err := h.Cache.Delete(c.Request.Context(), intelCacheKey(symbol)); err != nil {
		log.Printf("invalidate cache %s: %v", symbol, err)
	}

	util.Success(c, nil)
}
