// Package intel persists per-symbol stock research. Each of the three JSON
// field groups is written independently; writes to the same symbol are
// last-write-wins.
package intel

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no intel row exists for a symbol.
var ErrNotFound = errors.New("no intel for symbol")

// Field names one of the independently-upserted JSON column groups.
type Field string

const (
	FieldFundamentals    Field = "fundamentals"
	FieldNewsSentiment   Field = "news_sentiment"
	FieldSocialSentiment Field = "social_sentiment"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Get loads the intel row for a symbol.
func (s *Store) Get(symbol string) (*models.StockIntel, error) {
	var rec models.StockIntel
	if err := s.DB.First(&rec, "symbol = ?", symbol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query intel: %w", err)
	}
	return &rec, nil
}

// List returns all intel rows ordered by symbol.
func (s *Store) List() ([]models.StockIntel, error) {
	var recs []models.StockIntel
	if err := s.DB.Order("symbol").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list intel: %w", err)
	}
	return recs, nil
}

// UpsertField writes one JSON field group for a symbol, inserting the row if
// it does not exist and leaving the other field groups untouched.
func (s *Store) UpsertField(symbol string, field Field, data json.RawMessage) error {
	rec := models.StockIntel{Symbol: symbol, UpdatedAt: time.Now()}
	js := datatypes.JSON(data)
	switch field {
	case FieldFundamentals:
		rec.Fundamentals = js
	case FieldNewsSentiment:
		rec.NewsSentiment = js
	case FieldSocialSentiment:
		rec.SocialSentiment = &js
	default:
		return fmt.Errorf("unknown intel field %q", field)
	}

	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{string(field), "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", field, err)
	}
	return nil
}

// ClearSocialSentiment sets the social sentiment column to NULL for a symbol.
// Fundamentals and news sentiment are untouched. Returns ErrNotFound when no
// row exists.
func (s *Store) ClearSocialSentiment(symbol string) error {
	res := s.DB.Model(&models.StockIntel{}).
		Where("symbol = ?", symbol).
		Updates(map[string]interface{}{
			"social_sentiment": nil,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("clear social sentiment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TopicURL extracts the stored forum thread URL from a social sentiment
// payload, if present. An empty string means no usable URL.
func TopicURL(social *datatypes.JSON) string {
	if social == nil || len(*social) == 0 {
		return ""
	}
	var payload struct {
		TopicURL string `json:"topic_url"`
	}
	if err := json.Unmarshal(*social, &payload); err != nil {
		return ""
	}
	return payload.TopicURL
}
