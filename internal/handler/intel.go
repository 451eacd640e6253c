package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/cache"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/intel"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/util"

	"github.com/gin-gonic/gin"
)

// IntelHandler serves reads and per-field writes on intel records.
type IntelHandler struct {
	Intel *intel.Store
	Cache *cache.Client
}

func NewIntelHandler(store *intel.Store, c *cache.Client) *IntelHandler {
	return &IntelHandler{Intel: store, Cache: c}
}

func intelCacheKey(symbol string) string {
	return "intel:" + symbol
}

type intelResp struct {
	Symbol          string          `json:"symbol"`
	Fundamentals    json.RawMessage `json:"fundamentals,omitempty"`
	NewsSentiment   json.RawMessage `json:"news_sentiment,omitempty"`
	SocialSentiment json.RawMessage `json:"social_sentiment,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toIntelResp(rec *models.StockIntel) intelResp {
	resp := intelResp{
		Symbol:        rec.Symbol,
		Fundamentals:  json.RawMessage(rec.Fundamentals),
		NewsSentiment: json.RawMessage(rec.NewsSentiment),
		UpdatedAt:     rec.UpdatedAt,
	}
	if rec.SocialSentiment != nil {
		resp.SocialSentiment = json.RawMessage(*rec.SocialSentiment)
	}
	return resp
}

// Get returns one intel record, served from the redis cache when possible.
func (h *IntelHandler) Get(c *gin.Context) {
	symbol, err := util.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "symbol is required")
		return
	}

	ctx := c.Request.Context()

	var cached intelResp
	hit, err := h.Cache.Get(ctx, intelCacheKey(symbol), &cached)
	if err != nil {
		log.Printf("cache get %s: %v", symbol, err)
	}
	if hit {
		util.Success(c, util.Response{"data": cached})
		return
	}

	rec, err := h.Intel.Get(symbol)
	if err != nil {
		if errors.Is(err, intel.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "symbol not found")
			return
		}
		log.Printf("get intel %s: %v", symbol, err)
		util.Error(c, http.StatusInternalServerError, "could not load intel")
		return
	}

	resp := toIntelResp(rec)
	if err := h.Cache.Set(ctx, intelCacheKey(symbol), resp); err != nil {
		log.Printf("cache set %s: %v", symbol, err)
	}

	util.Success(c, util.Response{"data": resp})
}

// List returns all intel records ordered by symbol.
func (h *IntelHandler) List(c *gin.Context) {
	recs, err := h.Intel.List()
	if err != nil {
		log.Printf("list intel: %v", err)
		util.Error(c, http.StatusInternalServerError, "could not load intel")
		return
	}

	out := make([]intelResp, 0, len(recs))
	for i := range recs {
		out = append(out, toIntelResp(&recs[i]))
	}
	util.Success(c, util.Response{"data": out})
}

// PutFundamentals stores a caller-supplied fundamentals payload for a symbol.
func (h *IntelHandler) PutFundamentals(c *gin.Context) {
	h.putField(c, intel.FieldFundamentals)
}

// PutNewsSentiment stores a caller-supplied news-sentiment payload.
func (h *IntelHandler) PutNewsSentiment(c *gin.Context) {
	h.putField(c, intel.FieldNewsSentiment)
}

// putField upserts one JSON field group from the raw request body. The
// payload is opaque; only well-formedness is checked.
func (h *IntelHandler) putField(c *gin.Context, field intel.Field) {
	symbol, err := util.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "symbol is required")
		return
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 || !json.Valid(body) {
		util.Error(c, http.StatusBadRequest, "body must be a JSON document")
		return
	}

	if err := h.Intel.UpsertField(symbol, field, body); err != nil {
		log.Printf("upsert %s %s: %v", field, symbol, err)
		util.Error(c, http.StatusInternalServerError, "could not save intel")
		return
	}

	if err := h.Cache.Delete(c.Request.Context(), intelCacheKey(symbol)); err != nil {
		log.Printf("invalidate cache %s: %v", symbol, err)
	}

	util.Success(c, nil)
}
