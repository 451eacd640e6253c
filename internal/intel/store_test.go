package intel

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.StockIntel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func TestUpsertField_InsertThenUpdate(t *testing.T) {
	store := newTestStore(t)

	if err := store.UpsertField("TCS", FieldFundamentals, json.RawMessage(`{"pe":28}`)); err != nil {
		t.Fatalf("UpsertField(insert) error = %v", err)
	}
	if err := store.UpsertField("TCS", FieldFundamentals, json.RawMessage(`{"pe":30}`)); err != nil {
		t.Fatalf("UpsertField(update) error = %v", err)
	}

	rec, err := store.Get("TCS")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	var got struct {
		PE float64 `json:"pe"`
	}
	if err := json.Unmarshal(rec.Fundamentals, &got); err != nil {
		t.Fatalf("unmarshal fundamentals: %v", err)
	}
	if got.PE != 30 {
		t.Errorf("fundamentals pe = %v, want 30", got.PE)
	}
}

func TestUpsertField_LeavesOtherFieldsUntouched(t *testing.T) {
	store := newTestStore(t)

	if err := store.UpsertField("INFY", FieldFundamentals, json.RawMessage(`{"pe":22}`)); err != nil {
		t.Fatalf("UpsertField(fundamentals) error = %v", err)
	}
	if err := store.UpsertField("INFY", FieldNewsSentiment, json.RawMessage(`{"score":0.4}`)); err != nil {
		t.Fatalf("UpsertField(news) error = %v", err)
	}
	if err := store.UpsertField("INFY", FieldSocialSentiment, json.RawMessage(`{"score":-0.1}`)); err != nil {
		t.Fatalf("UpsertField(social) error = %v", err)
	}

	rec, err := store.Get("INFY")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(rec.Fundamentals) == 0 {
		t.Error("fundamentals cleared by unrelated upsert")
	}
	if len(rec.NewsSentiment) == 0 {
		t.Error("news sentiment cleared by unrelated upsert")
	}
	if rec.SocialSentiment == nil || len(*rec.SocialSentiment) == 0 {
		t.Error("social sentiment missing after upsert")
	}
}

func TestUpsertField_UnknownField(t *testing.T) {
	store := newTestStore(t)
	if err := store.UpsertField("TCS", Field("bogus"), json.RawMessage(`{}`)); err == nil {
		t.Error("UpsertField(bogus) error = nil, want error")
	}
}

func TestClearSocialSentiment(t *testing.T) {
	store := newTestStore(t)

	if err := store.UpsertField("TCS", FieldFundamentals, json.RawMessage(`{"pe":28}`)); err != nil {
		t.Fatalf("UpsertField() error = %v", err)
	}
	if err := store.UpsertField("TCS", FieldSocialSentiment, json.RawMessage(`{"score":0.8}`)); err != nil {
		t.Fatalf("UpsertField() error = %v", err)
	}

	if err := store.ClearSocialSentiment("TCS"); err != nil {
		t.Fatalf("ClearSocialSentiment() error = %v", err)
	}

	rec, err := store.Get("TCS")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.SocialSentiment != nil && len(*rec.SocialSentiment) > 0 {
		t.Errorf("social sentiment = %s, want cleared", *rec.SocialSentiment)
	}
	if len(rec.Fundamentals) == 0 {
		t.Error("fundamentals cleared alongside social sentiment")
	}
}

func TestClearSocialSentiment_NotFound(t *testing.T) {
	store := newTestStore(t)
	if err := store.ClearSocialSentiment("NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ClearSocialSentiment(missing) error = %v, want ErrNotFound", err)
	}
}

func TestTopicURL(t *testing.T) {
	js := datatypes.JSON(`{"topic_url":"https://forum.valuepickr.com/t/tcs/123","score":0.5}`)
	if got := TopicURL(&js); got != "https://forum.valuepickr.com/t/tcs/123" {
		t.Errorf("TopicURL() = %q", got)
	}

	empty := datatypes.JSON(`{"score":0.5}`)
	if got := TopicURL(&empty); got != "" {
		t.Errorf("TopicURL(no url) = %q, want empty", got)
	}
	if got := TopicURL(nil); got != "" {
		t.Errorf("TopicURL(nil) = %q, want empty", got)
	}
	bad := datatypes.JSON(`not json`)
	if got := TopicURL(&bad); got != "" {
		t.Errorf("TopicURL(garbage) = %q, want empty", got)
	}
}
